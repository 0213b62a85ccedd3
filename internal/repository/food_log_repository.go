package repository

import (
	"fitsync_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type FoodLogRepository struct {
	DB *gorm.DB
}

func NewFoodLogRepository(db *gorm.DB) *FoodLogRepository {
	return &FoodLogRepository{DB: db}
}

func (r *FoodLogRepository) Create(log *model.FoodLog) error {
	return r.DB.Create(log).Error
}

func (r *FoodLogRepository) FindByID(id uint) (*model.FoodLog, error) {
	var log model.FoodLog
	err := r.DB.First(&log, id).Error
	return &log, err
}

func (r *FoodLogRepository) Update(log *model.FoodLog) error {
	return r.DB.Save(log).Error
}

func (r *FoodLogRepository) Delete(id uint) error {
	return r.DB.Delete(&model.FoodLog{}, id).Error
}

func (r *FoodLogRepository) List(userID uint, page, limit int, from, to *time.Time) ([]model.FoodLog, int64, error) {
	var logs []model.FoodLog
	var total int64
	query := r.DB.Model(&model.FoodLog{}).Where("user_id = ?", userID)
	if from != nil {
		query = query.Where("analyzed_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("analyzed_at < ?", *to)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("analyzed_at desc").Offset(offset).Limit(limit).Find(&logs).Error
	return logs, total, err
}

func (r *FoodLogRepository) ListBetween(userID uint, from, to time.Time) ([]model.FoodLog, error) {
	var logs []model.FoodLog
	err := r.DB.Where("user_id = ? AND analyzed_at >= ? AND analyzed_at < ?", userID, from, to).
		Order("analyzed_at asc").Find(&logs).Error
	return logs, err
}

// DailyTotals 某时间段内的热量与三大营养素合计
type DailyTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Meals    int64   `json:"meals"`
}

func (r *FoodLogRepository) TotalsBetween(userID uint, from, to time.Time) (*DailyTotals, error) {
	var totals DailyTotals
	err := r.DB.Model(&model.FoodLog{}).
		Select("COALESCE(SUM(calories),0) as calories, COALESCE(SUM(nutrient_protein),0) as protein, COALESCE(SUM(nutrient_carbs),0) as carbs, COALESCE(SUM(nutrient_fat),0) as fat, COUNT(*) as meals").
		Where("user_id = ? AND analyzed_at >= ? AND analyzed_at < ?", userID, from, to).
		Scan(&totals).Error
	return &totals, err
}
