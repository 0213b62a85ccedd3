package service

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"fitsync_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOfflineSentimentService() *SentimentService {
	// 不配置 API key，走关键词降级，不发起任何网络请求
	return NewSentimentService(config.AnalysisConfig{})
}

func TestComprehensiveAnalysisEmptyTextIsNeutral(t *testing.T) {
	s := newOfflineSentimentService()

	result := s.ComprehensiveAnalysis(context.Background(), "   ")

	require.NotNil(t, result.Sentiment)
	assert.Equal(t, "neutral", result.Sentiment.Primary)
	assert.InDelta(t, 1.0, result.Sentiment.Neutral, 1e-9)
	require.NotNil(t, result.Emotion)
	assert.Equal(t, "neutral", result.Emotion.Primary)
	require.NotNil(t, result.Stress)
	assert.Equal(t, "low", result.Stress.Level)
	require.NotNil(t, result.Stress.Anxiety)
	assert.Equal(t, "low", result.Stress.Anxiety.Level)
	assert.Empty(t, result.Text)
}

func TestComprehensiveAnalysisKeywordFallback(t *testing.T) {
	s := newOfflineSentimentService()

	result := s.ComprehensiveAnalysis(context.Background(), "I feel happy and grateful, I smile a lot")

	require.NotNil(t, result.Sentiment)
	assert.Equal(t, "positive", result.Sentiment.Primary)
	require.NotNil(t, result.Emotion)
	assert.Equal(t, "joy", result.Emotion.Primary)
	require.NotNil(t, result.Stress)
	assert.Equal(t, "low", result.Stress.Level)
	assert.Equal(t, "I feel happy and grateful, I smile a lot", result.Text)
}

func TestComprehensiveAnalysisTruncatesSnippet(t *testing.T) {
	s := newOfflineSentimentService()

	long := ""
	for i := 0; i < 30; i++ {
		long += "happy day "
	}
	result := s.ComprehensiveAnalysis(context.Background(), long)

	assert.Len(t, result.Text, 100)
}

func TestTruncateSnippetRuneBoundary(t *testing.T) {
	// 多字节字符不能被截成半个
	long := strings.Repeat("压", 40) // 120 字节
	got := truncateSnippet(long, 100)

	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 99, len(got)) // 33 个汉字
	assert.Equal(t, strings.Repeat("压", 33), got)

	short := "平静"
	assert.Equal(t, short, truncateSnippet(short, 100))
}

func TestNewSentimentServiceDefaults(t *testing.T) {
	s := NewSentimentService(config.AnalysisConfig{})

	assert.Equal(t, "https://api-inference.huggingface.co/models", s.cfg.BaseURL)
	assert.Equal(t, "nlptown/bert-base-multilingual-uncased-sentiment", s.cfg.SentimentModel)
	assert.Equal(t, "j-hartmann/emotion-english-distilroberta-base", s.cfg.EmotionModel)
	assert.Equal(t, "facebook/bart-large-mnli", s.cfg.StressModel)
}

func TestStressLevelThresholds(t *testing.T) {
	assert.Equal(t, "high", stressLevel(0.61))
	assert.Equal(t, "medium", stressLevel(0.6))
	assert.Equal(t, "medium", stressLevel(0.31))
	assert.Equal(t, "low", stressLevel(0.3))
	assert.Equal(t, "low", stressLevel(0))
}

func TestRetryableStatuses(t *testing.T) {
	assert.True(t, retryable(&statusError{status: 410}))
	assert.True(t, retryable(&statusError{status: 429}))
	assert.False(t, retryable(&statusError{status: 500}))
	assert.False(t, retryable(context.DeadlineExceeded))
}
