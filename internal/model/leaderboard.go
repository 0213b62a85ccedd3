package model

import "time"

// PeriodStats 单个统计周期内的累计量
type PeriodStats struct {
	CaloriesConsumed  float64 `gorm:"default:0" json:"caloriesConsumed"`
	CaloriesBurned    float64 `gorm:"default:0" json:"caloriesBurned"`
	NetCalories       float64 `gorm:"default:0" json:"netCalories"`
	ActivityMinutes   float64 `gorm:"default:0" json:"activityMinutes"`
	MealsLogged       int     `gorm:"default:0" json:"mealsLogged"`
	WorkoutsCompleted int     `gorm:"default:0" json:"workoutsCompleted"`
}

// swagger:model LeaderboardStats
// LeaderboardStats 排行榜聚合统计，由后台任务周期性重算
type LeaderboardStats struct {
	BaseModel
	UserID       uint         `gorm:"not null;uniqueIndex" json:"userId"`
	Gender       string       `gorm:"size:20;default:'prefer_not_to_say'" json:"gender"`
	AgeGroup     string       `gorm:"size:10;default:'unknown'" json:"ageGroup"`
	FitnessLevel FitnessLevel `gorm:"type:enum('beginner','intermediate','advanced');default:'beginner'" json:"fitnessLevel"`
	Region       string       `gorm:"size:50;default:'global'" json:"region"`
	DailyDate    time.Time    `gorm:"type:date" json:"dailyDate"`
	Daily        PeriodStats  `gorm:"embedded;embeddedPrefix:daily_" json:"daily"`
	WeekStart    time.Time    `gorm:"type:date" json:"weekStart"`
	Weekly       PeriodStats  `gorm:"embedded;embeddedPrefix:weekly_" json:"weekly"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (LeaderboardStats) TableName() string {
	return "leaderboard_stats"
}

// 排行榜周期与指标的合法取值，Redis 有序集合键为 leaderboard:{period}:{metric}
var (
	LeaderboardPeriods = []string{"daily", "weekly"}
	LeaderboardMetrics = []string{
		"calories_burned", "activity_minutes", "meals_logged", "workouts_completed",
	}
)
