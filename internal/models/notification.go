package models

import (
	"gorm.io/gorm"
)

// Notification 表示一筆持久化的通知
// 由通知中心的觀察者寫入，之後只會翻轉已讀標記，核心流程不會刪除它
type Notification struct {
	gorm.Model
	UserID  uint   `gorm:"index;not null" json:"user_id"` // 接收者
	Kind    string `gorm:"type:varchar(50);not null" json:"kind"`
	Payload string `gorm:"type:jsonb" json:"payload"` // 事件內容的 JSON 快照
	Read    bool   `gorm:"default:false" json:"read"`
}
