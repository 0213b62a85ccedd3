package model

import (
	"time"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type FitnessLevel string

const (
	FitnessBeginner     FitnessLevel = "beginner"
	FitnessIntermediate FitnessLevel = "intermediate"
	FitnessAdvanced     FitnessLevel = "advanced"
)

// swagger:model User
type User struct {
	BaseModel
	Username     string       `gorm:"size:100;not null" json:"username"`
	Email        string       `gorm:"size:100;unique;not null" json:"email"`
	Password     string       `gorm:"size:100;not null" json:"-"`
	Role         UserRole     `gorm:"type:enum('user','admin');default:'user'" json:"role"`
	Avatar       string       `gorm:"size:255" json:"avatar"`
	Verified     bool         `gorm:"default:false" json:"verified"`
	Disabled     bool         `gorm:"default:false" json:"disabled"`
	Gender       string       `gorm:"size:20;default:'prefer_not_to_say'" json:"gender"`
	Birthdate    *time.Time   `json:"birthdate,omitempty"`
	HeightCM     float64      `gorm:"default:0" json:"heightCm"`
	WeightKG     float64      `gorm:"default:0" json:"weightKg"`
	FitnessLevel FitnessLevel `gorm:"type:enum('beginner','intermediate','advanced');default:'beginner'" json:"fitnessLevel"`
	Region       string       `gorm:"size:50;default:'global'" json:"region"`
	LastLogin    time.Time    `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen     time.Time    `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

// AgeGroup 按出生日期计算排行榜年龄分组
func (u *User) AgeGroup() string {
	if u.Birthdate == nil {
		return "unknown"
	}
	age := int(time.Since(*u.Birthdate).Hours() / 24 / 365.25)
	switch {
	case age < 18:
		return "unknown"
	case age <= 24:
		return "18-24"
	case age <= 34:
		return "25-34"
	case age <= 44:
		return "35-44"
	case age <= 54:
		return "45-54"
	default:
		return "55+"
	}
}
