package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"fitsync_backend/internal/model"
	"fitsync_backend/internal/repository"
	"fitsync_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	UserRepo *repository.UserRepository
	Storage  *StorageService
}

func NewUserService(userRepo *repository.UserRepository, storage *StorageService) *UserService {
	return &UserService{UserRepo: userRepo, Storage: storage}
}

func (s *UserService) GetProfile(userID uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

type UpdateProfileInput struct {
	Username     string
	Gender       string
	Birthdate    *time.Time
	HeightCM     *float64
	WeightKG     *float64
	FitnessLevel string
	Region       string
}

func (s *UserService) UpdateProfile(userID uint, input UpdateProfileInput) (*model.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	if input.Username != "" {
		user.Username = input.Username
	}
	if input.Gender != "" {
		user.Gender = input.Gender
	}
	if input.Birthdate != nil {
		user.Birthdate = input.Birthdate
	}
	if input.HeightCM != nil {
		user.HeightCM = *input.HeightCM
	}
	if input.WeightKG != nil {
		user.WeightKG = *input.WeightKG
	}
	if input.FitnessLevel != "" {
		user.FitnessLevel = model.FitnessLevel(input.FitnessLevel)
	}
	if input.Region != "" {
		user.Region = input.Region
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UploadAvatar 上传头像并更新用户记录
func (s *UserService) UploadAvatar(ctx context.Context, userID uint, file *multipart.FileHeader) (string, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	mimeType, err := util.ValidateMimeType(src, []string{util.MimeImage})
	if err != nil {
		return "", util.ErrUnsupportedMediaType
	}
	if _, err := src.Seek(0, 0); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("avatars/%d_%d%s", userID, time.Now().Unix(), filepath.Ext(file.Filename))
	url, err := s.Storage.Upload(ctx, filename, src, file.Size, mimeType)
	if err != nil {
		return "", err
	}

	user.Avatar = url
	if err := s.UserRepo.Update(user); err != nil {
		return "", err
	}
	return url, nil
}

// 管理端用户管理

func (s *UserService) ListUsers(page, limit int, search string) ([]model.User, int64, error) {
	return s.UserRepo.List(page, limit, search)
}

type AdminUpdateUserInput struct {
	Username string
	Role     string
	Verified *bool
}

func (s *UserService) AdminUpdateUser(userID uint, input AdminUpdateUserInput) (*model.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	if input.Username != "" {
		user.Username = input.Username
	}
	if input.Role != "" {
		user.Role = model.UserRole(input.Role)
	}
	if input.Verified != nil {
		user.Verified = *input.Verified
	}
	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) SetDisabled(userID uint, disabled bool) error {
	user, err := s.GetProfile(userID)
	if err != nil {
		return err
	}
	user.Disabled = disabled
	return s.UserRepo.Update(user)
}

func (s *UserService) ResetPassword(userID uint, newPassword string) error {
	user, err := s.GetProfile(userID)
	if err != nil {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return s.UserRepo.Update(user)
}

func (s *UserService) DeleteUser(userID uint) error {
	if _, err := s.GetProfile(userID); err != nil {
		return err
	}
	return s.UserRepo.Delete(userID)
}
