package service

import (
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) GetByID(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.NewNotFoundError("用户不存在")
	} else if err != nil {
		return nil, util.NewUnexpectedError(err)
	}
	return user, nil
}

// UpdateProfile 仅允许修改本人资料的可编辑字段
func (s *UserService) UpdateProfile(userID uint, name, avatar, bio string) (*model.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if avatar != "" {
		user.Avatar = avatar
	}
	user.Bio = bio

	if err := s.UserRepo.Update(user); err != nil {
		return nil, util.NewUnexpectedError(err)
	}
	return user, nil
}

// SetStatus 管理员封禁/解封用户
func (s *UserService) SetStatus(userID uint, status model.UserStatus) error {
	if _, err := s.GetByID(userID); err != nil {
		return err
	}
	if err := s.UserRepo.UpdateStatus(userID, status); err != nil {
		return util.NewUnexpectedError(err)
	}
	return nil
}

func (s *UserService) List(page, limit int) ([]model.User, int64, error) {
	users, total, err := s.UserRepo.List(page, limit)
	if err != nil {
		return nil, 0, util.NewUnexpectedError(err)
	}
	return users, total, nil
}
