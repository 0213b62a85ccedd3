package repository

import (
	"errors"
	"fitsync_backend/internal/model"

	"gorm.io/gorm"
)

type LeaderboardRepository struct {
	DB *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) *LeaderboardRepository {
	return &LeaderboardRepository{DB: db}
}

// Upsert 按用户写入或更新聚合统计
func (r *LeaderboardRepository) Upsert(stats *model.LeaderboardStats) error {
	var existing model.LeaderboardStats
	err := r.DB.Where("user_id = ?", stats.UserID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.DB.Create(stats).Error
	}
	if err != nil {
		return err
	}
	stats.ID = existing.ID
	stats.CreatedAt = existing.CreatedAt
	return r.DB.Save(stats).Error
}

func (r *LeaderboardRepository) FindByUser(userID uint) (*model.LeaderboardStats, error) {
	var stats model.LeaderboardStats
	err := r.DB.Where("user_id = ?", userID).First(&stats).Error
	return &stats, err
}

func (r *LeaderboardRepository) FindByUsers(userIDs []uint) ([]model.LeaderboardStats, error) {
	var stats []model.LeaderboardStats
	err := r.DB.Preload("User").Where("user_id IN ?", userIDs).Find(&stats).Error
	return stats, err
}
