package repository

import (
	"campus_hub/internal/models"
	"campus_hub/internal/storage"
)

type PointRepository interface {
	Create(tx *models.PointTransaction) error
	SumByUser(userID uint) (int, error)
	ListByUser(userID uint, limit int) ([]models.PointTransaction, error)
}

type pointRepository struct {
	db *storage.PostgresDB
}

func NewPointRepository(db *storage.PostgresDB) PointRepository {
	return &pointRepository{db: db}
}

func (r *pointRepository) Create(tx *models.PointTransaction) error {
	return r.db.Create(tx).Error
}

func (r *pointRepository) SumByUser(userID uint) (int, error) {
	var total int
	err := r.db.Model(&models.PointTransaction{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(delta), 0)").
		Scan(&total).Error
	return total, err
}

func (r *pointRepository) ListByUser(userID uint, limit int) ([]models.PointTransaction, error) {
	var txs []models.PointTransaction
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&txs).Error
	return txs, err
}
