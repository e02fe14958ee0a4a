package models

import (
	"gorm.io/gorm"
)

// Room 表示一個聊天室（課程或社團的討論空間）
type Room struct {
	gorm.Model
	Name        string       `gorm:"not null" json:"name"`
	Description string       `json:"description"`
	Members     []RoomMember `gorm:"foreignKey:RoomID" json:"-"`
}

// RoomMember 表示一筆房間成員資格
// 同一個 (room, user) 最多只能有一筆
type RoomMember struct {
	gorm.Model
	RoomID uint       `gorm:"uniqueIndex:idx_room_user;not null" json:"room_id"`
	UserID uint       `gorm:"uniqueIndex:idx_room_user;not null" json:"user_id"`
	Role   MemberRole `gorm:"not null" json:"role"`
}

// MemberRole 定義成員在房間內的角色
type MemberRole string

const (
	MemberRoleAdmin  MemberRole = "admin"  // 房間管理員
	MemberRoleNormal MemberRole = "member" // 一般成員
)
