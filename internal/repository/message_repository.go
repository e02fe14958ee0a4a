package repository

import (
	"campus_hub/internal/models"
	"campus_hub/internal/storage"

	"gorm.io/gorm"
)

type MessageRepository interface {
	// CreateWithMentions 在同一個交易中寫入訊息與提及紀錄
	// 任一筆寫入失敗時全部回滾，不留下部分結果
	CreateWithMentions(message *models.Message, mentionUserIDs []uint) error
	FindByID(id uint) (*models.Message, error)
	// ListByRoom 依序號遞增列出房間訊息，cursor 為上一頁最後一則的 ID，0 表示從頭開始
	ListByRoom(roomID uint, limit int, cursor uint) ([]models.Message, error)
	Delete(id uint) error
}

type messageRepository struct {
	db *storage.PostgresDB
}

func NewMessageRepository(db *storage.PostgresDB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) CreateWithMentions(message *models.Message, mentionUserIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		for _, userID := range mentionUserIDs {
			mention := models.MessageMention{
				MessageID: message.ID,
				UserID:    userID,
			}
			if err := tx.Create(&mention).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *messageRepository) FindByID(id uint) (*models.Message, error) {
	var message models.Message
	err := r.db.First(&message, id).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) ListByRoom(roomID uint, limit int, cursor uint) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where("room_id = ? AND id > ?", roomID, cursor).
		Order("id asc").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

func (r *messageRepository) Delete(id uint) error {
	return r.db.Delete(&models.Message{}, id).Error
}
