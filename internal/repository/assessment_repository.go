package repository

import (
	"fitsync_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func (r *AssessmentRepository) Create(a *model.Assessment) error {
	return r.DB.Create(a).Error
}

func (r *AssessmentRepository) FindByID(id uint) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.First(&a, id).Error
	return &a, err
}

func (r *AssessmentRepository) Update(a *model.Assessment) error {
	return r.DB.Save(a).Error
}

// ListActive 当前未作答的题目，最新在前，最多 limit 条
func (r *AssessmentRepository) ListActive(userID uint, category string, limit int) ([]model.Assessment, error) {
	var as []model.Assessment
	query := r.DB.Where("user_id = ? AND is_active = ?", userID, true)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Order("generated_at desc").Limit(limit).Find(&as).Error
	return as, err
}

func (r *AssessmentRepository) CountActive(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Assessment{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&count).Error
	return count, err
}

// ActiveQuestionSet 当前活跃题目的题面集合，用于生成时去重
func (r *AssessmentRepository) ActiveQuestionSet(userID uint) (map[string]bool, error) {
	var questions []string
	err := r.DB.Model(&model.Assessment{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Pluck("question", &questions).Error
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(questions))
	for _, q := range questions {
		set[q] = true
	}
	return set, nil
}

func (r *AssessmentRepository) CompletedSince(userID uint, since time.Time) ([]model.Assessment, error) {
	var as []model.Assessment
	err := r.DB.Where("user_id = ? AND completed_at IS NOT NULL AND completed_at >= ?", userID, since).
		Order("completed_at desc").Find(&as).Error
	return as, err
}

func (r *AssessmentRepository) CountCompletedSince(userID uint, since time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Assessment{}).
		Where("user_id = ? AND completed_at IS NOT NULL AND completed_at >= ?", userID, since).
		Count(&count).Error
	return count, err
}

func (r *AssessmentRepository) RecentCompleted(userID uint, limit int) ([]model.Assessment, error) {
	var as []model.Assessment
	err := r.DB.Where("user_id = ? AND completed_at IS NOT NULL", userID).
		Order("completed_at desc").Limit(limit).Find(&as).Error
	return as, err
}

func (r *AssessmentRepository) ListHistory(userID uint, page, limit int, category string) ([]model.Assessment, int64, error) {
	var as []model.Assessment
	var total int64
	query := r.DB.Model(&model.Assessment{}).
		Where("user_id = ? AND completed_at IS NOT NULL", userID)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("completed_at desc").Offset(offset).Limit(limit).Find(&as).Error
	return as, total, err
}

// 题库模板

func (r *AssessmentRepository) CreateTemplate(t *model.AssessmentQuestionTemplate) error {
	return r.DB.Create(t).Error
}

func (r *AssessmentRepository) FindTemplateByID(id uint) (*model.AssessmentQuestionTemplate, error) {
	var t model.AssessmentQuestionTemplate
	err := r.DB.First(&t, id).Error
	return &t, err
}

func (r *AssessmentRepository) ListTemplates(page, limit int, category string, enabledOnly bool) ([]model.AssessmentQuestionTemplate, int64, error) {
	var ts []model.AssessmentQuestionTemplate
	var total int64
	query := r.DB.Model(&model.AssessmentQuestionTemplate{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if enabledOnly {
		query = query.Where("enabled = ?", true)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&ts).Error
	return ts, total, err
}

func (r *AssessmentRepository) ListEnabledTemplates() ([]model.AssessmentQuestionTemplate, error) {
	var ts []model.AssessmentQuestionTemplate
	err := r.DB.Where("enabled = ?", true).Find(&ts).Error
	return ts, err
}

func (r *AssessmentRepository) UpdateTemplate(t *model.AssessmentQuestionTemplate) error {
	return r.DB.Save(t).Error
}

func (r *AssessmentRepository) DeleteTemplate(id uint) error {
	return r.DB.Delete(&model.AssessmentQuestionTemplate{}, id).Error
}

// ListSubmissions 管理端查询所有用户的作答记录
func (r *AssessmentRepository) ListSubmissions(page, limit int, userID uint) ([]model.Assessment, int64, error) {
	var as []model.Assessment
	var total int64
	query := r.DB.Model(&model.Assessment{}).Where("completed_at IS NOT NULL")
	if userID > 0 {
		query = query.Where("user_id = ?", userID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("completed_at desc").Offset(offset).Limit(limit).Find(&as).Error
	return as, total, err
}
