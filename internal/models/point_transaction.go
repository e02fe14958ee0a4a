package models

import (
	"gorm.io/gorm"
)

// PointTransaction 表示一筆積分異動
// 只增不改：寫入後永遠不會被更新或刪除
type PointTransaction struct {
	gorm.Model
	UserID uint   `gorm:"index;not null" json:"user_id"`
	Delta  int    `gorm:"not null" json:"delta"`
	Reason string `gorm:"type:varchar(100)" json:"reason"`
}
