package service

import (
	"encoding/json"

	"campus_hub/internal/errs"
	"campus_hub/internal/models"
	"campus_hub/internal/repository"

	"go.uber.org/zap"
)

// NotificationService 提供通知的查詢與已讀操作
type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

func (s *NotificationService) List(userID uint, unreadOnly bool) ([]models.Notification, error) {
	notifications, err := s.notificationRepo.ListByUser(userID, unreadOnly)
	if err != nil {
		return nil, errs.New(errs.PersistenceFailed, "無法讀取通知")
	}
	return notifications, nil
}

func (s *NotificationService) MarkRead(id, userID uint) error {
	ok, err := s.notificationRepo.MarkRead(id, userID)
	if err != nil {
		return errs.New(errs.PersistenceFailed, "通知更新失敗")
	}
	if !ok {
		return errs.New(errs.NotFound, "通知不存在")
	}
	return nil
}

// notificationPayload 是寫進通知 Payload 欄位的事件快照
type notificationPayload struct {
	RoomID       uint   `json:"room_id"`
	MessageID    uint   `json:"message_id,omitempty"`
	ActorID      uint   `json:"actor_id"`
	ReactionType string `json:"reaction_type,omitempty"`
	OldType      string `json:"old_type,omitempty"`
	Preview      string `json:"preview,omitempty"`
}

// NotificationObserver 訂閱通知中心，把跟個人相關的事件寫成通知紀錄
type NotificationObserver struct {
	notificationRepo repository.NotificationRepository
	logger           *zap.Logger
}

func NewNotificationObserver(notificationRepo repository.NotificationRepository, logger *zap.Logger) *NotificationObserver {
	return &NotificationObserver{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

func (o *NotificationObserver) Name() string {
	return "notification_store"
}

func (o *NotificationObserver) HandleEvent(event Event) error {
	// message_created 是房間層級的事件，沒有單一接收者，這裡不落通知
	if event.Kind == EventMessageCreated {
		return nil
	}
	// 自己觸發的事件不用通知自己
	if event.TargetID == 0 || event.TargetID == event.ActorID {
		return nil
	}

	payload := notificationPayload{
		RoomID:       event.RoomID,
		ActorID:      event.ActorID,
		ReactionType: event.ReactionType,
		OldType:      event.OldReactionType,
	}
	if event.Message != nil {
		payload.MessageID = event.Message.ID
		payload.Preview = preview(event.Message.Content)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return o.notificationRepo.Create(&models.Notification{
		UserID:  event.TargetID,
		Kind:    string(event.Kind),
		Payload: string(raw),
	})
}

// preview 截斷過長的訊息內容，通知不需要完整正文
func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= 80 {
		return content
	}
	return string(runes[:80]) + "..."
}
