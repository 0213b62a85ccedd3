package repository

import (
	"fitsync_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type ProgramRepository struct {
	DB *gorm.DB
}

func NewProgramRepository(db *gorm.DB) *ProgramRepository {
	return &ProgramRepository{DB: db}
}

func (r *ProgramRepository) Create(p *model.Program) error {
	return r.DB.Create(p).Error
}

func (r *ProgramRepository) FindByID(id uint) (*model.Program, error) {
	var p model.Program
	err := r.DB.First(&p, id).Error
	return &p, err
}

func (r *ProgramRepository) Update(p *model.Program) error {
	return r.DB.Save(p).Error
}

func (r *ProgramRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Program{}, id).Error
}

func (r *ProgramRepository) ListByUser(userID uint) ([]model.Program, error) {
	var ps []model.Program
	err := r.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&ps).Error
	return ps, err
}

// 训练完成记录

func (r *ProgramRepository) CreateSession(s *model.ProgramSession) error {
	return r.DB.Create(s).Error
}

func (r *ProgramRepository) SessionsBetween(userID uint, from, to time.Time) ([]model.ProgramSession, error) {
	var ss []model.ProgramSession
	err := r.DB.Where("user_id = ? AND completed_at >= ? AND completed_at < ?", userID, from, to).
		Order("completed_at asc").Find(&ss).Error
	return ss, err
}

// SessionTotals 某时间段内的训练量合计
type SessionTotals struct {
	CaloriesBurned  float64 `json:"caloriesBurned"`
	ActivityMinutes float64 `json:"activityMinutes"`
	Workouts        int64   `json:"workouts"`
}

func (r *ProgramRepository) SessionTotalsBetween(userID uint, from, to time.Time) (*SessionTotals, error) {
	var totals SessionTotals
	err := r.DB.Model(&model.ProgramSession{}).
		Select("COALESCE(SUM(calories_burned),0) as calories_burned, COALESCE(SUM(duration_minutes),0) as activity_minutes, COUNT(*) as workouts").
		Where("user_id = ? AND completed_at >= ? AND completed_at < ?", userID, from, to).
		Scan(&totals).Error
	return &totals, err
}
