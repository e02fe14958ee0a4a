package models

import (
	"gorm.io/gorm"
)

// Message 表示一則房間訊息
// 建立後內容不可修改，只能由發送者或房間管理員刪除（軟刪除）
// ID 同時作為房間內訊息排序的序號
type Message struct {
	gorm.Model
	RoomID        uint   `gorm:"index;not null" json:"room_id"`
	UserID        uint   `gorm:"not null" json:"user_id"`
	Content       string `gorm:"type:text" json:"content"`
	AttachmentRef string `json:"attachment_ref,omitempty"` // 附件引用，由外部上傳服務產生，這裡視為不透明字串
}

// MessageMention 表示訊息中一次成功解析的 @提及
// 在訊息持久化時一併寫入，之後不再變動
type MessageMention struct {
	gorm.Model
	MessageID uint `gorm:"index;not null" json:"message_id"`
	UserID    uint `gorm:"not null" json:"user_id"` // 被提及的身份
}
