package service

import (
	"errors"

	"campus_hub/internal/errs"
	"campus_hub/internal/models"
	"campus_hub/internal/repository"

	"gorm.io/gorm"
)

// RoomService 管理房間與成員資格
type RoomService struct {
	roomRepo   repository.RoomRepository
	memberRepo repository.RoomMemberRepository
}

func NewRoomService(roomRepo repository.RoomRepository, memberRepo repository.RoomMemberRepository) *RoomService {
	return &RoomService{
		roomRepo:   roomRepo,
		memberRepo: memberRepo,
	}
}

// CreateRoom 建立房間並讓建立者成為管理員成員
func (s *RoomService) CreateRoom(name, description string, creatorID uint) (*models.Room, error) {
	if name == "" {
		return nil, errs.New(errs.ValidationFailed, "房間名稱不可為空")
	}

	room := &models.Room{
		Name:        name,
		Description: description,
	}
	if err := s.roomRepo.Create(room); err != nil {
		return nil, errs.New(errs.PersistenceFailed, "房間建立失敗")
	}

	member := &models.RoomMember{
		RoomID: room.ID,
		UserID: creatorID,
		Role:   models.MemberRoleAdmin,
	}
	if err := s.memberRepo.Create(member); err != nil {
		return nil, errs.New(errs.PersistenceFailed, "管理員成員建立失敗")
	}

	return room, nil
}

func (s *RoomService) GetRoom(roomID uint) (*models.Room, error) {
	room, err := s.roomRepo.FindByID(roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.New(errs.NotFound, "房間不存在")
		}
		return nil, errs.New(errs.PersistenceFailed, "無法讀取房間")
	}
	return room, nil
}

func (s *RoomService) ListRooms() ([]models.Room, error) {
	rooms, err := s.roomRepo.FindAll()
	if err != nil {
		return nil, errs.New(errs.PersistenceFailed, "無法讀取房間列表")
	}
	return rooms, nil
}

// JoinRoom 以一般成員身份加入房間
func (s *RoomService) JoinRoom(roomID, userID uint) error {
	if _, err := s.GetRoom(roomID); err != nil {
		return err
	}

	if _, err := s.memberRepo.Find(roomID, userID); err == nil {
		return errs.New(errs.ValidationFailed, "已經是房間成員")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.New(errs.PersistenceFailed, "無法讀取成員資格")
	}

	member := &models.RoomMember{
		RoomID: roomID,
		UserID: userID,
		Role:   models.MemberRoleNormal,
	}
	if err := s.memberRepo.Create(member); err != nil {
		return errs.New(errs.PersistenceFailed, "加入房間失敗")
	}
	return nil
}

// LeaveRoom 離開房間，成員資格紀錄會被移除
func (s *RoomService) LeaveRoom(roomID, userID uint) error {
	if _, err := s.memberRepo.Find(roomID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.New(errs.NotFound, "不是房間成員")
		}
		return errs.New(errs.PersistenceFailed, "無法讀取成員資格")
	}

	if err := s.memberRepo.Delete(roomID, userID); err != nil {
		return errs.New(errs.PersistenceFailed, "離開房間失敗")
	}
	return nil
}

// IsMember 回報身份在房間是否有有效成員資格
func (s *RoomService) IsMember(roomID, userID uint) (bool, error) {
	_, err := s.memberRepo.Find(roomID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// IsRoomAdmin 回報身份是否為房間管理員
func (s *RoomService) IsRoomAdmin(roomID, userID uint) (bool, error) {
	member, err := s.memberRepo.Find(roomID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return member.Role == models.MemberRoleAdmin, nil
}
