package service

import (
	"errors"

	"campus_hub/internal/models"
	"campus_hub/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) CreateUser(user *models.User) error {
	return s.userRepo.Create(user)
}

func (s *UserService) GetUserByHandle(handle string) (*models.User, error) {
	return s.userRepo.FindByHandle(handle)
}

func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	return s.userRepo.FindByID(id)
}

// EnsureAssistant 確保保留的助理身份存在，啟動時呼叫
// 助理帳號不能登入，密碼只是為了滿足欄位而隨機雜湊
func (s *UserService) EnsureAssistant(handle string) (*models.User, error) {
	user, err := s.userRepo.FindByHandle(handle)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(handle+"-no-login"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	assistant := &models.User{
		Handle:      handle,
		Password:    string(hashed),
		DisplayName: "課程助理",
		Role:        models.RoleAssistant,
	}
	if err := s.userRepo.Create(assistant); err != nil {
		return nil, err
	}
	return assistant, nil
}
