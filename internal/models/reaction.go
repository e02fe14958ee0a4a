package models

import (
	"gorm.io/gorm"
)

// Reaction 表示一個身份對一則訊息的回應
// 唯一索引保證同一個 (message, user) 最多只有一筆有效紀錄
type Reaction struct {
	gorm.Model
	MessageID uint   `gorm:"uniqueIndex:idx_message_user;not null" json:"message_id"`
	UserID    uint   `gorm:"uniqueIndex:idx_message_user;not null" json:"user_id"`
	Type      string `gorm:"type:varchar(20);not null" json:"type"`
}

// 常用的回應類型，實際允許的類型由呼叫端決定
const (
	ReactionLike = "like"
	ReactionLove = "love"
)
