package service

import (
	"testing"

	"fitsync_backend/internal/model"
	"fitsync_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchChoice(t *testing.T) {
	choices := []model.Choice{
		{ID: "a", Text: "Great", Value: 10},
		{ID: "b", Text: "Okay", Value: 5},
	}

	choice, err := matchChoice(choices, "b")
	require.NoError(t, err)
	assert.Equal(t, "Okay", choice.Text)
	assert.Equal(t, 5, choice.Value)

	// 不存在的选项 ID 返回非法选项错误，而不是空作答错误
	_, err = matchChoice(choices, "z")
	assert.ErrorIs(t, err, util.ErrInvalidChoice)

	_, err = matchChoice(nil, "a")
	assert.ErrorIs(t, err, util.ErrInvalidChoice)
}

func TestSentimentOrNeutral(t *testing.T) {
	assert.Equal(t, "neutral", sentimentOrNeutral(""))
	assert.Equal(t, "happy", sentimentOrNeutral("happy"))
	assert.Equal(t, "very_sad", sentimentOrNeutral("very_sad"))
}
