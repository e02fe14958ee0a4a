package repository

import (
	"campus_hub/internal/models"
	"campus_hub/internal/storage"
)

type RoomMemberRepository interface {
	Create(member *models.RoomMember) error
	Find(roomID, userID uint) (*models.RoomMember, error)
	Delete(roomID, userID uint) error
	ListByRoom(roomID uint) ([]models.RoomMember, error)
}

type roomMemberRepository struct {
	db *storage.PostgresDB
}

func NewRoomMemberRepository(db *storage.PostgresDB) RoomMemberRepository {
	return &roomMemberRepository{db: db}
}

func (r *roomMemberRepository) Create(member *models.RoomMember) error {
	return r.db.Create(member).Error
}

func (r *roomMemberRepository) Find(roomID, userID uint) (*models.RoomMember, error) {
	var member models.RoomMember
	err := r.db.Where("room_id = ? AND user_id = ?", roomID, userID).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// Delete 移除成員資格，硬刪除以免之後重新加入撞到唯一索引
func (r *roomMemberRepository) Delete(roomID, userID uint) error {
	return r.db.Unscoped().
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Delete(&models.RoomMember{}).Error
}

func (r *roomMemberRepository) ListByRoom(roomID uint) ([]models.RoomMember, error) {
	var members []models.RoomMember
	err := r.db.Where("room_id = ?", roomID).Find(&members).Error
	return members, err
}
