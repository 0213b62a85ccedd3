package repository

import (
	"fitsync_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type MoodCheckinRepository struct {
	DB *gorm.DB
}

func NewMoodCheckinRepository(db *gorm.DB) *MoodCheckinRepository {
	return &MoodCheckinRepository{DB: db}
}

func (r *MoodCheckinRepository) Create(c *model.MoodCheckin) error {
	return r.DB.Create(c).Error
}

func (r *MoodCheckinRepository) ExistsForPeriod(userID uint, date time.Time, period model.CheckinPeriod) (bool, error) {
	var count int64
	err := r.DB.Model(&model.MoodCheckin{}).
		Where("user_id = ? AND date = ? AND checkin_type = ?", userID, date.Format("2006-01-02"), period).
		Count(&count).Error
	return count > 0, err
}

func (r *MoodCheckinRepository) ListByDate(userID uint, date time.Time) ([]model.MoodCheckin, error) {
	var cs []model.MoodCheckin
	err := r.DB.Where("user_id = ? AND date = ?", userID, date.Format("2006-01-02")).
		Order("created_at asc").Find(&cs).Error
	return cs, err
}

func (r *MoodCheckinRepository) History(userID uint, since time.Time) ([]model.MoodCheckin, error) {
	var cs []model.MoodCheckin
	err := r.DB.Where("user_id = ? AND date >= ?", userID, since.Format("2006-01-02")).
		Order("created_at desc").Find(&cs).Error
	return cs, err
}
