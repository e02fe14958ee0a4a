package repository

import (
	"errors"

	"campus_hub/internal/models"
	"campus_hub/internal/storage"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReactionAction 是一次 Set 的結果分類
type ReactionAction string

const (
	ReactionActionAdded     ReactionAction = "added"
	ReactionActionChanged   ReactionAction = "changed"
	ReactionActionDuplicate ReactionAction = "duplicate"
)

// SetResult 描述 Set 實際做了什麼
type SetResult struct {
	Action  ReactionAction
	OldType string // Action 為 changed 時的原類型
}

type ReactionRepository interface {
	// Set 對 (message, user) 做條件寫入：不存在則新增、類型不同則改寫、相同則回報重複
	// 同一組鍵的並發呼叫會在資料庫層序列化，恰好一個新增成功
	Set(messageID, userID uint, reactionType string) (SetResult, error)
	// Remove 只在現有類型與要求相同時刪除，回報是否有刪除
	Remove(messageID, userID uint, reactionType string) (bool, error)
	Find(messageID, userID uint) (*models.Reaction, error)
}

type reactionRepository struct {
	db *storage.PostgresDB
}

func NewReactionRepository(db *storage.PostgresDB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) Set(messageID, userID uint, reactionType string) (SetResult, error) {
	var result SetResult
	set := func() error {
		return r.db.Transaction(func(tx *gorm.DB) error {
			var existing models.Reaction
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("message_id = ? AND user_id = ?", messageID, userID).
				First(&existing).Error

			if errors.Is(err, gorm.ErrRecordNotFound) {
				reaction := models.Reaction{
					MessageID: messageID,
					UserID:    userID,
					Type:      reactionType,
				}
				if err := tx.Create(&reaction).Error; err != nil {
					return err
				}
				result = SetResult{Action: ReactionActionAdded}
				return nil
			}
			if err != nil {
				return err
			}

			if existing.Type == reactionType {
				result = SetResult{Action: ReactionActionDuplicate, OldType: existing.Type}
				return nil
			}

			result = SetResult{Action: ReactionActionChanged, OldType: existing.Type}
			return tx.Model(&existing).Update("type", reactionType).Error
		})
	}

	err := set()
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// 並發新增時輸的一方撞到唯一索引，重跑一次讓它看到贏家寫入的狀態
		err = set()
	}
	if err != nil {
		return SetResult{}, err
	}
	return result, nil
}

func (r *reactionRepository) Remove(messageID, userID uint, reactionType string) (bool, error) {
	// 硬刪除，之後重新回應才不會撞到唯一索引
	res := r.db.Unscoped().
		Where("message_id = ? AND user_id = ? AND type = ?", messageID, userID, reactionType).
		Delete(&models.Reaction{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *reactionRepository) Find(messageID, userID uint) (*models.Reaction, error) {
	var reaction models.Reaction
	err := r.db.Where("message_id = ? AND user_id = ?", messageID, userID).First(&reaction).Error
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}
