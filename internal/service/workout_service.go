package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fitsync_backend/internal/model"
	"fitsync_backend/internal/repository"
	"fitsync_backend/internal/util"
	"fitsync_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type WorkoutService struct {
	Repo    *repository.WorkoutRepository
	Storage *StorageService
}

func NewWorkoutService(repo *repository.WorkoutRepository, storage *StorageService) *WorkoutService {
	return &WorkoutService{Repo: repo, Storage: storage}
}

type WorkoutInput struct {
	Category        model.WorkoutCategory `json:"category" binding:"required,oneof=bodyweight equipment"`
	Type            model.WorkoutType     `json:"type" binding:"required"`
	Name            string                `json:"name" binding:"required"`
	Description     string                `json:"description"`
	EquipmentNeeded string                `json:"equipmentNeeded"`
}

func (s *WorkoutService) Create(input WorkoutInput) (*model.Workout, error) {
	w := &model.Workout{
		Category:        input.Category,
		Type:            input.Type,
		Name:            input.Name,
		Description:     input.Description,
		EquipmentNeeded: input.EquipmentNeeded,
	}
	if err := s.Repo.Create(w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *WorkoutService) Get(id uint) (*model.Workout, error) {
	w, err := s.Repo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrWorkoutNotFound
		}
		return nil, err
	}
	return w, nil
}

func (s *WorkoutService) Update(id uint, input WorkoutInput) (*model.Workout, error) {
	w, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	w.Category = input.Category
	w.Type = input.Type
	w.Name = input.Name
	w.Description = input.Description
	w.EquipmentNeeded = input.EquipmentNeeded
	if err := s.Repo.Update(w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *WorkoutService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}

func (s *WorkoutService) List(category, workoutType string, page, limit int) ([]model.Workout, int64, error) {
	return s.Repo.List(category, workoutType, page, limit)
}

// UploadAnimation 上传动作示范动画：先落盘临时文件做探测和截帧，
// 再把动画和缩略图写入存储后端
func (s *WorkoutService) UploadAnimation(ctx context.Context, workoutID uint, file *multipart.FileHeader) (*model.Workout, error) {
	w, err := s.Get(workoutID)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := false
	for _, e := range util.AllowedAnimationExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, util.ErrUnsupportedMediaType
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "animation-*"+ext)
	if err != nil {
		return nil, err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.ReadFrom(src); err != nil {
		tmp.Close()
		return nil, err
	}
	tmp.Close()

	info, err := util.ProbeAnimation(tmpPath)
	if err != nil {
		return nil, err
	}

	thumbPath := tmpPath + ".jpg"
	defer os.Remove(thumbPath)
	if err := util.GenerateThumbnail(tmpPath, thumbPath, "00:00:01"); err != nil {
		logger.Log.Warn("生成缩略图失败", zap.Uint("workoutID", workoutID), zap.Error(err))
		thumbPath = ""
	}

	base := fmt.Sprintf("workouts/%d_%d", workoutID, time.Now().Unix())
	animationURL, err := s.Storage.UploadFile(ctx, base+ext, tmpPath, "video/mp4")
	if err != nil {
		return nil, err
	}

	w.AnimationURL = animationURL
	w.DurationSeconds = info.Duration
	if thumbPath != "" {
		thumbURL, err := s.Storage.UploadFile(ctx, base+"_thumb.jpg", thumbPath, "image/jpeg")
		if err == nil {
			w.ThumbnailURL = thumbURL
		}
	}

	if err := s.Repo.Update(w); err != nil {
		return nil, err
	}
	return w, nil
}
