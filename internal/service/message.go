package service

import (
	"errors"

	"campus_hub/internal/errs"
	"campus_hub/internal/models"
	"campus_hub/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// messageDraft 是訊息管線中逐步累積的上下文
type messageDraft struct {
	roomID        uint
	senderID      uint
	content       string
	attachmentRef string

	sender    *models.User
	mentioned []models.User
	message   *models.Message
}

// stage 是管線中的一個階段：成功時繼續，失敗時中止後續階段
type stage struct {
	name string
	run  func(d *messageDraft) error
}

// MessageService 以固定順序的階段處理訊息：
// 驗證 → 授權 → 解析提及 → 持久化
// 任一階段失敗就帶著分類錯誤返回，不留下部分結果
type MessageService struct {
	messageRepo repository.MessageRepository
	memberRepo  repository.RoomMemberRepository
	roomRepo    repository.RoomRepository
	userRepo    repository.UserRepository
	resolver    *MentionResolver
	hub         *Hub
	logger      *zap.Logger

	stages []stage
}

func NewMessageService(
	messageRepo repository.MessageRepository,
	memberRepo repository.RoomMemberRepository,
	roomRepo repository.RoomRepository,
	userRepo repository.UserRepository,
	resolver *MentionResolver,
	hub *Hub,
	logger *zap.Logger,
) *MessageService {
	s := &MessageService{
		messageRepo: messageRepo,
		memberRepo:  memberRepo,
		roomRepo:    roomRepo,
		userRepo:    userRepo,
		resolver:    resolver,
		hub:         hub,
		logger:      logger,
	}
	s.stages = []stage{
		{name: "validate", run: s.validate},
		{name: "authorize", run: s.authorize},
		{name: "resolve_mentions", run: s.resolveMentions},
		{name: "persist", run: s.persist},
	}
	return s
}

// CreateMessage 執行完整管線，回傳持久化後的訊息或第一個遇到的分類錯誤
func (s *MessageService) CreateMessage(roomID, senderID uint, content, attachmentRef string) (*models.Message, error) {
	draft := &messageDraft{
		roomID:        roomID,
		senderID:      senderID,
		content:       content,
		attachmentRef: attachmentRef,
	}

	for _, st := range s.stages {
		if err := st.run(draft); err != nil {
			s.logger.Info("message rejected",
				zap.String("stage", st.name),
				zap.Uint("room_id", roomID),
				zap.Uint("sender_id", senderID),
				zap.Error(err))
			return nil, err
		}
	}
	return draft.message, nil
}

// validate 檢查輸入格式並載入發送者
func (s *MessageService) validate(d *messageDraft) error {
	if d.roomID == 0 || d.senderID == 0 {
		return errs.New(errs.ValidationFailed, "缺少房間或發送者")
	}
	if d.content == "" && d.attachmentRef == "" {
		return errs.New(errs.ValidationFailed, "訊息內容不可為空")
	}

	sender, err := s.userRepo.FindByID(d.senderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.New(errs.NotFound, "發送者不存在")
	}
	if err != nil {
		return errs.New(errs.PersistenceFailed, "無法讀取發送者")
	}
	d.sender = sender
	return nil
}

// authorize 確認發送者在目標房間有有效的成員資格
// 助理身份視為所有房間的成員，不做成員檢查
func (s *MessageService) authorize(d *messageDraft) error {
	if _, err := s.roomRepo.FindByID(d.roomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.New(errs.NotFound, "房間不存在")
		}
		return errs.New(errs.PersistenceFailed, "無法讀取房間")
	}

	if d.sender.Role == models.RoleAssistant {
		return nil
	}

	if _, err := s.memberRepo.Find(d.roomID, d.senderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.New(errs.PermissionDenied, "不是房間成員")
		}
		return errs.New(errs.PersistenceFailed, "無法讀取成員資格")
	}
	return nil
}

// resolveMentions 解析提及但先不發事件
// 事件延後到持久化成功之後，避免通知一則最後沒有寫入的訊息
func (s *MessageService) resolveMentions(d *messageDraft) error {
	d.mentioned = s.resolver.Resolve(d.content, d.senderID)
	return nil
}

// persist 寫入訊息與提及紀錄，成功後才對外發布事件
func (s *MessageService) persist(d *messageDraft) error {
	message := &models.Message{
		RoomID:        d.roomID,
		UserID:        d.senderID,
		Content:       d.content,
		AttachmentRef: d.attachmentRef,
	}

	mentionIDs := make([]uint, 0, len(d.mentioned))
	for _, user := range d.mentioned {
		mentionIDs = append(mentionIDs, user.ID)
	}

	if err := s.messageRepo.CreateWithMentions(message, mentionIDs); err != nil {
		return errs.New(errs.PersistenceFailed, "訊息寫入失敗")
	}
	d.message = message

	s.hub.Publish(Event{
		Kind:    EventMessageCreated,
		RoomID:  message.RoomID,
		ActorID: message.UserID,
		Message: message,
	})
	for _, user := range d.mentioned {
		s.hub.Publish(Event{
			Kind:     EventMention,
			RoomID:   message.RoomID,
			ActorID:  message.UserID,
			TargetID: user.ID,
			Message:  message,
		})
	}
	return nil
}

// ListRoomMessages 依序號列出房間訊息，cursor 為上一批最後一則的 ID
func (s *MessageService) ListRoomMessages(roomID uint, limit int, cursor uint) ([]models.Message, error) {
	if _, err := s.roomRepo.FindByID(roomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.New(errs.NotFound, "房間不存在")
		}
		return nil, errs.New(errs.PersistenceFailed, "無法讀取房間")
	}

	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}

	messages, err := s.messageRepo.ListByRoom(roomID, limit, cursor)
	if err != nil {
		return nil, errs.New(errs.PersistenceFailed, "無法讀取訊息")
	}
	return messages, nil
}

// DeleteMessage 刪除訊息，只允許發送者本人或房間管理員
func (s *MessageService) DeleteMessage(messageID, actorID uint) error {
	message, err := s.messageRepo.FindByID(messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.New(errs.NotFound, "訊息不存在")
		}
		return errs.New(errs.PersistenceFailed, "無法讀取訊息")
	}

	if message.UserID != actorID {
		member, err := s.memberRepo.Find(message.RoomID, actorID)
		if err != nil || member.Role != models.MemberRoleAdmin {
			return errs.New(errs.PermissionDenied, "只有發送者或房間管理員可以刪除訊息")
		}
	}

	if err := s.messageRepo.Delete(messageID); err != nil {
		return errs.New(errs.PersistenceFailed, "訊息刪除失敗")
	}
	return nil
}
