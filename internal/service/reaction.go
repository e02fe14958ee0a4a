package service

import (
	"errors"

	"campus_hub/internal/errs"
	"campus_hub/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReactionService 管理每個 (訊息, 身份) 上唯一的一筆回應
type ReactionService struct {
	reactionRepo repository.ReactionRepository
	messageRepo  repository.MessageRepository
	points       *PointService
	hub          *Hub
	logger       *zap.Logger

	creditedType string // 會觸發積分的回應類型
	likeCredit   int
}

func NewReactionService(
	reactionRepo repository.ReactionRepository,
	messageRepo repository.MessageRepository,
	points *PointService,
	hub *Hub,
	logger *zap.Logger,
	creditedType string,
	likeCredit int,
) *ReactionService {
	return &ReactionService{
		reactionRepo: reactionRepo,
		messageRepo:  messageRepo,
		points:       points,
		hub:          hub,
		logger:       logger,
		creditedType: creditedType,
		likeCredit:   likeCredit,
	}
}

// SetReaction 新增或改寫回應
// 不存在則新增、類型不同則改寫、完全相同則回報 DuplicateReaction 且不產生任何狀態變化或事件
func (s *ReactionService) SetReaction(messageID, userID uint, reactionType string) (repository.ReactionAction, error) {
	if reactionType == "" {
		return "", errs.New(errs.ValidationFailed, "缺少回應類型")
	}

	message, err := s.messageRepo.FindByID(messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errs.New(errs.NotFound, "訊息不存在")
		}
		return "", errs.New(errs.PersistenceFailed, "無法讀取訊息")
	}

	result, err := s.reactionRepo.Set(messageID, userID, reactionType)
	if err != nil {
		return "", errs.New(errs.PersistenceFailed, "回應寫入失敗")
	}

	switch result.Action {
	case repository.ReactionActionDuplicate:
		return "", errs.New(errs.DuplicateReaction, "已經送出過相同的回應")

	case repository.ReactionActionAdded:
		s.hub.Publish(Event{
			Kind:         EventReactionAdded,
			RoomID:       message.RoomID,
			ActorID:      userID,
			TargetID:     message.UserID,
			Message:      message,
			ReactionType: reactionType,
		})
		// 只有別人的按讚會幫貼文擁有者加分，自己讚自己不算
		if reactionType == s.creditedType && userID != message.UserID {
			s.points.Award(message.UserID, s.likeCredit, "reaction:"+reactionType)
		}

	case repository.ReactionActionChanged:
		s.hub.Publish(Event{
			Kind:            EventReactionChanged,
			RoomID:          message.RoomID,
			ActorID:         userID,
			TargetID:        message.UserID,
			Message:         message,
			ReactionType:    reactionType,
			OldReactionType: result.OldType,
		})
	}

	return result.Action, nil
}

// RemoveReaction 只在現有回應類型與要求相同時刪除
// 類型不符或本來就沒有回應時視為 no-op，回傳 false 而不是錯誤
func (s *ReactionService) RemoveReaction(messageID, userID uint, reactionType string) (bool, error) {
	if _, err := s.messageRepo.FindByID(messageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, errs.New(errs.NotFound, "訊息不存在")
		}
		return false, errs.New(errs.PersistenceFailed, "無法讀取訊息")
	}

	removed, err := s.reactionRepo.Remove(messageID, userID, reactionType)
	if err != nil {
		return false, errs.New(errs.PersistenceFailed, "回應刪除失敗")
	}
	return removed, nil
}
