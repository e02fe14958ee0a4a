package models

import (
	"gorm.io/gorm"
)

// User 表示系統中的一個身份（學生、教師或自動助理）
type User struct {
	gorm.Model           // 內嵌 gorm.Model，提供 ID、CreatedAt、UpdatedAt 和 DeletedAt 字段
	Handle      string   `gorm:"uniqueIndex;not null" json:"handle"` // 帳號代稱，必須唯一，@提及時使用
	Password    string   `gorm:"not null" json:"-"`                  // 密碼，json 序列化時會被忽略
	DisplayName string   `json:"display_name"`                       // 顯示名稱
	Role        UserRole `gorm:"not null" json:"role"`               // 身份角色
}

// UserRole 定義身份角色的類型
type UserRole string

const (
	RoleStudent   UserRole = "student"   // 學生
	RoleTeacher   UserRole = "teacher"   // 教師
	RoleAssistant UserRole = "assistant" // 自動助理，不參與積分
)

// PointEligible 回報該角色是否可以累積積分
func (r UserRole) PointEligible() bool {
	return r != RoleAssistant
}
