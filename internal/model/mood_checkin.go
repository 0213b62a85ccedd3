package model

import (
	"encoding/json"
	"time"
)

type CheckinPeriod string

const (
	PeriodMorning   CheckinPeriod = "morning"
	PeriodAfternoon CheckinPeriod = "afternoon"
	PeriodEvening   CheckinPeriod = "evening"
)

// MoodLabels 心情分值到标签/表情的映射，1: 😢 terrible ... 5: 😊 great
var MoodLabels = map[int]struct {
	Emoji string
	Label string
}{
	1: {"😢", "terrible"},
	2: {"😔", "bad"},
	3: {"😐", "okay"},
	4: {"🙂", "good"},
	5: {"😊", "great"},
}

// ContributingFactors 允许的心情影响因素标签
var ContributingFactors = []string{
	"exercise", "diet", "sleep", "mood", "work",
	"social", "health", "weather", "stress", "relaxation",
}

// swagger:model MoodCheckin
// MoodCheckin 心情打卡，每个时段每天最多一次
type MoodCheckin struct {
	BaseModel
	UserID      uint            `gorm:"not null;uniqueIndex:uniq_checkin_user_date_period" json:"userId"`
	MoodValue   int             `gorm:"not null" json:"moodValue"` // 1-5
	MoodEmoji   string          `gorm:"size:10;not null" json:"moodEmoji"`
	MoodLabel   string          `gorm:"type:enum('terrible','bad','okay','good','great');not null" json:"moodLabel"`
	Factors     json.RawMessage `gorm:"type:json" json:"factors,omitempty"` // JSON: []string
	CheckinType CheckinPeriod   `gorm:"type:enum('morning','afternoon','evening');not null;uniqueIndex:uniq_checkin_user_date_period" json:"checkInType"`
	Notes       string          `gorm:"size:200" json:"notes,omitempty"`
	Date        time.Time       `gorm:"type:date;not null;uniqueIndex:uniq_checkin_user_date_period" json:"date"`
}

func (MoodCheckin) TableName() string {
	return "mood_checkins"
}

// CurrentPeriod 按小时划分当前时段：<12 早、<17 午、其余晚
func CurrentPeriod(t time.Time) CheckinPeriod {
	hour := t.Hour()
	switch {
	case hour < 12:
		return PeriodMorning
	case hour < 17:
		return PeriodAfternoon
	default:
		return PeriodEvening
	}
}
