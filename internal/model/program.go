package model

import (
	"encoding/json"
	"time"
)

// ProgramSet 单组训练参数，原始输入保留为字符串
type ProgramSet struct {
	Reps        string `json:"reps,omitempty"`
	TimeSeconds string `json:"timeSeconds,omitempty"`
	WeightKG    string `json:"weightKg,omitempty"`
}

// ProgramWorkout 计划中的一个动作及其组次安排
type ProgramWorkout struct {
	WorkoutID uint         `json:"workoutId"`
	Sets      []ProgramSet `json:"sets,omitempty"`
}

// GeoActivityPref 户外活动偏好
type GeoActivityPref struct {
	ActivityID       uint   `json:"activityId"`
	DistanceKM       string `json:"distanceKm,omitempty"`
	AvgPace          string `json:"avgPace,omitempty"`
	CountdownSeconds string `json:"countdownSeconds,omitempty"`
}

// swagger:model Program
// Program 用户自建训练计划
type Program struct {
	BaseModel
	UserID        uint            `gorm:"not null;index" json:"userId"`
	GroupID       *uint           `gorm:"index" json:"groupId,omitempty"`
	Name          string          `gorm:"size:200;not null" json:"name"`
	Description   string          `gorm:"size:1000" json:"description,omitempty"`
	Workouts      json.RawMessage `gorm:"type:json" json:"workouts,omitempty"`      // JSON: []ProgramWorkout
	GeoActivities json.RawMessage `gorm:"type:json" json:"geoActivities,omitempty"` // JSON: []GeoActivityPref
}

func (Program) TableName() string {
	return "programs"
}

// swagger:model ProgramSession
// ProgramSession 一次完成的训练，排行榜按此统计训练量
type ProgramSession struct {
	BaseModel
	UserID          uint      `gorm:"not null;index:idx_program_sessions_user_completed" json:"userId"`
	ProgramID       uint      `gorm:"not null;index" json:"programId"`
	DurationMinutes float64   `gorm:"default:0" json:"durationMinutes"`
	CaloriesBurned  float64   `gorm:"default:0" json:"caloriesBurned"`
	CompletedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP(3);index:idx_program_sessions_user_completed" json:"completedAt"`
	Notes           string    `gorm:"size:500" json:"notes,omitempty"`
}

func (ProgramSession) TableName() string {
	return "program_sessions"
}
