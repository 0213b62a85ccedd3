package repository

import (
	"fitsync_backend/internal/model"

	"gorm.io/gorm"
)

type WorkoutRepository struct {
	DB *gorm.DB
}

func NewWorkoutRepository(db *gorm.DB) *WorkoutRepository {
	return &WorkoutRepository{DB: db}
}

func (r *WorkoutRepository) Create(w *model.Workout) error {
	return r.DB.Create(w).Error
}

func (r *WorkoutRepository) FindByID(id uint) (*model.Workout, error) {
	var w model.Workout
	err := r.DB.First(&w, id).Error
	return &w, err
}

func (r *WorkoutRepository) Update(w *model.Workout) error {
	return r.DB.Save(w).Error
}

func (r *WorkoutRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Workout{}, id).Error
}

func (r *WorkoutRepository) List(category, workoutType string, page, limit int) ([]model.Workout, int64, error) {
	var ws []model.Workout
	var total int64
	query := r.DB.Model(&model.Workout{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if workoutType != "" {
		query = query.Where("type = ?", workoutType)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("name asc").Offset(offset).Limit(limit).Find(&ws).Error
	return ws, total, err
}
