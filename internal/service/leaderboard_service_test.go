package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekStartIsMonday(t *testing.T) {
	// 2025-06-18 是周三
	wednesday := time.Date(2025, 6, 18, 15, 30, 0, 0, time.UTC)
	start := weekStart(wednesday)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Monday, start.Weekday())

	// 周一本身
	monday := time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), weekStart(monday))

	// 周日归属上一个周一
	sunday := time.Date(2025, 6, 22, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC), weekStart(sunday))
}

func TestValidPeriodMetric(t *testing.T) {
	assert.True(t, validPeriodMetric("daily", "calories_burned"))
	assert.True(t, validPeriodMetric("weekly", "workouts_completed"))
	assert.False(t, validPeriodMetric("monthly", "calories_burned"))
	assert.False(t, validPeriodMetric("daily", "steps"))
	assert.False(t, validPeriodMetric("", ""))
}

func TestLeaderboardKey(t *testing.T) {
	assert.Equal(t, "leaderboard:daily:meals_logged", leaderboardKey("daily", "meals_logged"))
}
