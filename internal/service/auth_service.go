package service

import (
	"errors"

	"fitsync_backend/internal/config"
	"fitsync_backend/internal/model"
	"fitsync_backend/internal/repository"
	"fitsync_backend/internal/util"
	"fitsync_backend/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	JWT      config.JWTConfig
}

func NewAuthService(userRepo *repository.UserRepository, jwtCfg config.JWTConfig) *AuthService {
	return &AuthService{UserRepo: userRepo, JWT: jwtCfg}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

func (s *AuthService) Register(input RegisterInput) (*model.User, error) {
	exists, err := s.UserRepo.ExistsByEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrEmailRegistered
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: input.Username,
		Email:    input.Email,
		Password: string(hashed),
		Role:     model.RoleUser,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}

	logger.Log.Info("新用户注册", zap.Uint("userID", user.ID), zap.String("email", user.Email))
	return user, nil
}

// Login 校验邮箱密码并签发 JWT
func (s *AuthService) Login(email, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, util.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if user.Disabled {
		return "", nil, util.ErrAccountDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.JWT.Secret, s.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}

	if err := s.UserRepo.UpdateLastLogin(user.ID); err != nil {
		logger.Log.Warn("更新最后登录时间失败", zap.Error(err))
	}
	return token, user, nil
}
