package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCurrentPeriod(t *testing.T) {
	at := func(hour int) time.Time {
		return time.Date(2025, 6, 15, hour, 30, 0, 0, time.UTC)
	}

	assert.Equal(t, PeriodMorning, CurrentPeriod(at(0)))
	assert.Equal(t, PeriodMorning, CurrentPeriod(at(11)))
	assert.Equal(t, PeriodAfternoon, CurrentPeriod(at(12)))
	assert.Equal(t, PeriodAfternoon, CurrentPeriod(at(16)))
	assert.Equal(t, PeriodEvening, CurrentPeriod(at(17)))
	assert.Equal(t, PeriodEvening, CurrentPeriod(at(23)))
}

func TestMoodLabelsCoverAllValues(t *testing.T) {
	for v := 1; v <= 5; v++ {
		mood, ok := MoodLabels[v]
		assert.True(t, ok, "mood value %d", v)
		assert.NotEmpty(t, mood.Emoji)
		assert.NotEmpty(t, mood.Label)
	}
}
