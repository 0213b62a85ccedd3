package model

import (
	"encoding/json"
	"time"
)

type AssessmentCategory string

const (
	CategoryGeneral   AssessmentCategory = "general_wellbeing"
	CategorySentiment AssessmentCategory = "sentiment_analysis"
	CategoryHealth    AssessmentCategory = "health_assessment"
	CategoryLifestyle AssessmentCategory = "lifestyle_assessment"
)

// Choice 每日评估题目的一个选项，value 为该选项的分值
type Choice struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Value int    `json:"value"`
}

// SentimentRecord 用户作答后的记录，含逐题分析结果
type SentimentRecord struct {
	SelectedChoice *Choice         `json:"selectedChoice,omitempty"`
	UserResponse   string          `json:"userResponse,omitempty"`
	Analysis       *AnalysisResult `json:"analysis,omitempty"`
	Timestamp      time.Time       `json:"timestamp"`
}

// UserProgress 逐题进度统计
type UserProgress struct {
	TotalAttempts  int    `gorm:"default:0" json:"totalAttempts"`
	CorrectAnswers int    `gorm:"default:0" json:"correctAnswers"`
	Score          int    `gorm:"default:0" json:"score"`
	Insights       string `gorm:"size:500" json:"insights,omitempty"`
}

// swagger:model Assessment
// Assessment 每日评估题目，每行对应为某个用户生成的一道题
type Assessment struct {
	BaseModel
	UserID          uint               `gorm:"not null;index:idx_assessments_user_created" json:"userId"`
	Question        string             `gorm:"size:500;not null" json:"question"`
	Choices         json.RawMessage    `gorm:"type:json" json:"choices"` // JSON: []Choice
	Suggestion      string             `gorm:"size:500;not null" json:"suggestion"`
	Sentiment       string             `gorm:"type:enum('very_sad','sad','neutral','happy','very_happy');default:'neutral'" json:"sentiment"`
	ReminderTime    string             `gorm:"size:5;default:'09:00'" json:"reminderTime"`
	SentimentResult json.RawMessage    `gorm:"type:json" json:"sentimentResult,omitempty"` // JSON: SentimentRecord
	IsActive        bool               `gorm:"default:true;index" json:"isActive"`
	Category        AssessmentCategory `gorm:"type:enum('general_wellbeing','sentiment_analysis','health_assessment','lifestyle_assessment');default:'general_wellbeing'" json:"category"`
	Difficulty      string             `gorm:"type:enum('easy','medium','hard');default:'medium'" json:"difficulty"`
	GeneratedAt     time.Time          `gorm:"default:CURRENT_TIMESTAMP(3)" json:"generatedAt"`
	CompletedAt     *time.Time         `json:"completedAt,omitempty"`
	UserProgress    UserProgress       `gorm:"embedded;embeddedPrefix:progress_" json:"userProgress"`
}

func (Assessment) TableName() string {
	return "assessments"
}

// DecodeChoices 解析选项 JSON
func (a *Assessment) DecodeChoices() ([]Choice, error) {
	var choices []Choice
	if len(a.Choices) == 0 {
		return choices, nil
	}
	err := json.Unmarshal(a.Choices, &choices)
	return choices, err
}

// DecodeSentimentResult 解析作答记录 JSON，未作答时返回 nil
func (a *Assessment) DecodeSentimentResult() (*SentimentRecord, error) {
	if len(a.SentimentResult) == 0 {
		return nil, nil
	}
	var rec SentimentRecord
	if err := json.Unmarshal(a.SentimentResult, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// swagger:model AssessmentQuestionTemplate
// AssessmentQuestionTemplate 题库模板，每日题目从启用的模板中抽取
type AssessmentQuestionTemplate struct {
	BaseModel
	Question   string             `gorm:"size:500;not null" json:"question"`
	Choices    json.RawMessage    `gorm:"type:json" json:"choices"` // JSON: []Choice
	Suggestion string             `gorm:"size:500" json:"suggestion"`
	Sentiment  string             `gorm:"type:enum('very_sad','sad','neutral','happy','very_happy');default:'neutral'" json:"sentiment"`
	Category   AssessmentCategory `gorm:"type:enum('general_wellbeing','sentiment_analysis','health_assessment','lifestyle_assessment');default:'general_wellbeing'" json:"category"`
	Difficulty string             `gorm:"type:enum('easy','medium','hard');default:'medium'" json:"difficulty"`
	Enabled    bool               `gorm:"default:true;index" json:"enabled"`
}

func (AssessmentQuestionTemplate) TableName() string {
	return "assessment_question_templates"
}
