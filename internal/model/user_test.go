package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAgeGroup(t *testing.T) {
	birth := func(yearsAgo int) *time.Time {
		t := time.Now().AddDate(-yearsAgo, 0, -30)
		return &t
	}

	assert.Equal(t, "unknown", (&User{}).AgeGroup())
	assert.Equal(t, "unknown", (&User{Birthdate: birth(15)}).AgeGroup())
	assert.Equal(t, "18-24", (&User{Birthdate: birth(20)}).AgeGroup())
	assert.Equal(t, "25-34", (&User{Birthdate: birth(30)}).AgeGroup())
	assert.Equal(t, "35-44", (&User{Birthdate: birth(40)}).AgeGroup())
	assert.Equal(t, "45-54", (&User{Birthdate: birth(50)}).AgeGroup())
	assert.Equal(t, "55+", (&User{Birthdate: birth(70)}).AgeGroup())
}
