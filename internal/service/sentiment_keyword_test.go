package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordSentimentPositive(t *testing.T) {
	result := KeywordSentiment("I feel great and happy today")

	assert.Equal(t, "positive", result.Primary)
	assert.InDelta(t, 0.7, result.Positive, 1e-9)
	assert.InDelta(t, 0.3, result.Negative, 1e-9)
	assert.InDelta(t, 0.6, result.Confidence, 1e-9)
}

func TestKeywordSentimentNegative(t *testing.T) {
	result := KeywordSentiment("This is terrible and sad")

	assert.Equal(t, "negative", result.Primary)
	assert.InDelta(t, 0.7, result.Negative, 1e-9)
	assert.InDelta(t, 0.3, result.Positive, 1e-9)
}

func TestKeywordSentimentNeutralWhenNoMatches(t *testing.T) {
	result := KeywordSentiment("the weather exists")

	assert.Equal(t, "neutral", result.Primary)
	assert.InDelta(t, 0.33, result.Positive, 1e-9)
	assert.InDelta(t, 0.33, result.Negative, 1e-9)
	assert.InDelta(t, 0.34, result.Neutral, 1e-9)
}

func TestKeywordSentimentCapsAtPoint8(t *testing.T) {
	result := KeywordSentiment("good great excellent happy wonderful love amazing awesome best")

	assert.Equal(t, "positive", result.Primary)
	assert.InDelta(t, 0.8, result.Positive, 1e-9)
	assert.InDelta(t, 0.1, result.Negative, 1e-9)
}

func TestKeywordSentimentTagalog(t *testing.T) {
	result := KeywordSentiment("masaya at maganda ang araw ko")

	assert.Equal(t, "positive", result.Primary)
}

func TestKeywordEmotionJoy(t *testing.T) {
	result := KeywordEmotion("I smile and laugh all day")

	assert.Equal(t, "joy", result.Primary)
	assert.InDelta(t, 1.0, result.Breakdown["joy"], 1e-9)
	assert.InDelta(t, 0.9, result.Confidence, 1e-9)
}

func TestKeywordEmotionDefaultsToNeutral(t *testing.T) {
	result := KeywordEmotion("")

	assert.Equal(t, "neutral", result.Primary)
	assert.InDelta(t, 0.0, result.Confidence, 1e-9)
}

func TestKeywordStressHigh(t *testing.T) {
	result := KeywordStress("I am so stressed and overwhelmed")

	assert.Equal(t, "high", result.Level)
	assert.InDelta(t, 0.95, result.Score, 1e-9)
	require.NotNil(t, result.Anxiety)
	assert.Equal(t, "low", result.Anxiety.Level)
}

func TestKeywordStressMedium(t *testing.T) {
	result := KeywordStress("I am worried about work")

	assert.Equal(t, "medium", result.Level)
	assert.InDelta(t, 0.55, result.Score, 1e-9)
	require.NotNil(t, result.Anxiety)
	assert.Equal(t, "medium", result.Anxiety.Level)
	assert.InDelta(t, 0.6, result.Anxiety.Score, 1e-9)
}

func TestKeywordStressCalm(t *testing.T) {
	result := KeywordStress("I feel calm and peaceful")

	assert.Equal(t, "low", result.Level)
	assert.InDelta(t, 0.1, result.Score, 1e-9)
}

func TestKeywordStressDefault(t *testing.T) {
	result := KeywordStress("nothing in particular")

	assert.Equal(t, "low", result.Level)
	assert.InDelta(t, 0.2, result.Score, 1e-9)
}

func TestKeywordStressAnxietyHigh(t *testing.T) {
	result := KeywordStress("I am anxious and scared")

	require.NotNil(t, result.Anxiety)
	assert.Equal(t, "high", result.Anxiety.Level)
	assert.InDelta(t, 0.95, result.Anxiety.Score, 1e-9)
}
