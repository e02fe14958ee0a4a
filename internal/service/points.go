package service

import (
	"campus_hub/internal/models"
	"campus_hub/internal/repository"

	"go.uber.org/zap"
)

// PointService 維護只增不改的積分帳本
type PointService struct {
	pointRepo repository.PointRepository
	userRepo  repository.UserRepository
	logger    *zap.Logger
}

func NewPointService(pointRepo repository.PointRepository, userRepo repository.UserRepository, logger *zap.Logger) *PointService {
	return &PointService{
		pointRepo: pointRepo,
		userRepo:  userRepo,
		logger:    logger,
	}
}

// Award 追加一筆積分異動，盡力而為：
// 身份不存在或角色不參與積分時記錄後略過，寫入失敗也只記錄，
// 永遠不把錯誤回傳給觸發積分的操作
func (s *PointService) Award(userID uint, delta int, reason string) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		s.logger.Info("points skipped: user not found",
			zap.Uint("user_id", userID),
			zap.String("reason", reason))
		return
	}
	if !user.Role.PointEligible() {
		s.logger.Info("points skipped: role not eligible",
			zap.Uint("user_id", userID),
			zap.String("role", string(user.Role)),
			zap.String("reason", reason))
		return
	}

	tx := &models.PointTransaction{
		UserID: userID,
		Delta:  delta,
		Reason: reason,
	}
	if err := s.pointRepo.Create(tx); err != nil {
		s.logger.Error("points write failed",
			zap.Uint("user_id", userID),
			zap.Int("delta", delta),
			zap.Error(err))
	}
}

// Balance 回傳目前積分總和與最近的異動紀錄
func (s *PointService) Balance(userID uint) (int, []models.PointTransaction, error) {
	total, err := s.pointRepo.SumByUser(userID)
	if err != nil {
		return 0, nil, err
	}
	recent, err := s.pointRepo.ListByUser(userID, 20)
	if err != nil {
		return 0, nil, err
	}
	return total, recent, nil
}
