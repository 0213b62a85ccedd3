package service

import (
	"math/rand"
	"testing"

	"fitsync_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entryWith(sent *model.SentimentScores, emo *model.EmotionScores, stress *model.StressScores) model.BatchEntry {
	return model.BatchEntry{
		Question: "How are you feeling today?",
		Analysis: &model.AnalysisResult{Sentiment: sent, Emotion: emo, Stress: stress},
	}
}

func TestCombineAnalysisResultsAveragesSentiment(t *testing.T) {
	entries := []model.BatchEntry{
		entryWith(&model.SentimentScores{Positive: 0.8, Negative: 0.1, Neutral: 0.1, Confidence: 0.9}, nil, nil),
		entryWith(&model.SentimentScores{Positive: 0.6, Negative: 0.3, Neutral: 0.1, Confidence: 0.7}, nil, nil),
	}

	result := CombineAnalysisResults(entries)

	assert.InDelta(t, 0.7, result.Sentiment.Positive, 1e-9)
	assert.InDelta(t, 0.2, result.Sentiment.Negative, 1e-9)
	assert.InDelta(t, 0.1, result.Sentiment.Neutral, 1e-9)
	assert.InDelta(t, 0.8, result.Sentiment.Confidence, 1e-9)
	assert.Equal(t, "positive", result.Sentiment.Primary)
	assert.Equal(t, 2, result.BatchSize)
}

func TestCombineAnalysisResultsOrderIndependent(t *testing.T) {
	entries := []model.BatchEntry{
		entryWith(&model.SentimentScores{Positive: 0.8, Negative: 0.1, Neutral: 0.1, Confidence: 0.9},
			&model.EmotionScores{Breakdown: map[string]float64{"joy": 0.7, "sadness": 0.1}},
			&model.StressScores{Score: 0.4, Anxiety: &model.AnxietyScores{Score: 0.2}}),
		entryWith(&model.SentimentScores{Positive: 0.2, Negative: 0.5, Neutral: 0.3, Confidence: 0.6},
			&model.EmotionScores{Breakdown: map[string]float64{"sadness": 0.6}},
			&model.StressScores{Score: 0.8, Anxiety: &model.AnxietyScores{Score: 0.7}}),
		entryWith(&model.SentimentScores{Positive: 0.3, Negative: 0.3, Neutral: 0.4, Confidence: 0.5},
			&model.EmotionScores{Breakdown: map[string]float64{"fear": 0.5}},
			&model.StressScores{Score: 0.1, Anxiety: &model.AnxietyScores{Score: 0.1}}),
	}

	base := CombineAnalysisResults(entries)

	shuffled := make([]model.BatchEntry, len(entries))
	copy(shuffled, entries)
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		got := CombineAnalysisResults(shuffled)
		assert.Equal(t, base.Sentiment, got.Sentiment)
		assert.Equal(t, base.Emotion, got.Emotion)
		assert.Equal(t, base.Stress, got.Stress)
		assert.Equal(t, base.BatchSize, got.BatchSize)
	}
}

func TestCombineAnalysisResultsMissingPiecesCountAsZero(t *testing.T) {
	// 第二条缺 Sentiment，均值分母仍是携带分析的条目数
	entries := []model.BatchEntry{
		entryWith(&model.SentimentScores{Positive: 0.8, Negative: 0.1, Neutral: 0.1, Confidence: 0.9}, nil, nil),
		entryWith(nil, &model.EmotionScores{Breakdown: map[string]float64{"joy": 0.4}}, nil),
	}

	result := CombineAnalysisResults(entries)

	assert.Equal(t, 2, result.BatchSize)
	assert.InDelta(t, 0.4, result.Sentiment.Positive, 1e-9)
	assert.InDelta(t, 0.2, result.Emotion.Breakdown["joy"], 1e-9)
}

func TestCombineAnalysisResultsSkipsEntriesWithoutAnalysis(t *testing.T) {
	entries := []model.BatchEntry{
		{Question: "skipped", Analysis: nil},
		entryWith(&model.SentimentScores{Positive: 0.6, Negative: 0.2, Neutral: 0.2, Confidence: 0.8}, nil, nil),
	}

	result := CombineAnalysisResults(entries)

	assert.Equal(t, 1, result.BatchSize)
	assert.InDelta(t, 0.6, result.Sentiment.Positive, 1e-9)
}

func TestCombineAnalysisResultsEmptyBatch(t *testing.T) {
	result := CombineAnalysisResults(nil)

	assert.Equal(t, 1, result.BatchSize)
	assert.Equal(t, "neutral", result.Sentiment.Primary)
	assert.Equal(t, "neutral", result.Emotion.Primary)
	assert.InDelta(t, 0.5, result.Emotion.Confidence, 1e-9)
	assert.Equal(t, "low", result.Stress.Level)
	require.NotNil(t, result.Stress.Anxiety)
	assert.Equal(t, "low", result.Stress.Anxiety.Level)
}

func TestCombineAnalysisResultsSentimentTieIsNeutral(t *testing.T) {
	// 严格大于才改判：三路并列保持 neutral
	entries := []model.BatchEntry{
		entryWith(&model.SentimentScores{Positive: 0.3, Negative: 0.3, Neutral: 0.3, Confidence: 0.5}, nil, nil),
	}
	result := CombineAnalysisResults(entries)
	assert.Equal(t, "neutral", result.Sentiment.Primary)

	// 负面与中性并列也保持 neutral
	entries = []model.BatchEntry{
		entryWith(&model.SentimentScores{Positive: 0.2, Negative: 0.4, Neutral: 0.4, Confidence: 0.5}, nil, nil),
	}
	result = CombineAnalysisResults(entries)
	assert.Equal(t, "neutral", result.Sentiment.Primary)

	// 负面严格大于中性才判负面
	entries = []model.BatchEntry{
		entryWith(&model.SentimentScores{Positive: 0.1, Negative: 0.5, Neutral: 0.4, Confidence: 0.5}, nil, nil),
	}
	result = CombineAnalysisResults(entries)
	assert.Equal(t, "negative", result.Sentiment.Primary)
}

func TestCombineAnalysisResultsStressThresholds(t *testing.T) {
	cases := []struct {
		score float64
		level string
	}{
		{0.61, "high"},
		{0.6, "medium"}, // 阈值本身不算 high
		{0.31, "medium"},
		{0.3, "low"},
		{0.0, "low"},
	}
	for _, tc := range cases {
		entries := []model.BatchEntry{
			entryWith(nil, nil, &model.StressScores{Score: tc.score, Anxiety: &model.AnxietyScores{Score: tc.score}}),
		}
		result := CombineAnalysisResults(entries)
		assert.Equal(t, tc.level, result.Stress.Level, "stress score %v", tc.score)
		assert.Equal(t, tc.level, result.Stress.Anxiety.Level, "anxiety score %v", tc.score)
	}
}

func TestCombineAnalysisResultsEmotionFloor(t *testing.T) {
	entries := []model.BatchEntry{
		entryWith(nil, &model.EmotionScores{Breakdown: map[string]float64{"joy": 0.3, "sadness": 0.1}}, nil),
	}

	result := CombineAnalysisResults(entries)

	assert.Equal(t, "joy", result.Emotion.Primary)
	// 最大均值低于 0.5 时置信度取下限 0.5
	assert.InDelta(t, 0.5, result.Emotion.Confidence, 1e-9)

	entries = []model.BatchEntry{
		entryWith(nil, &model.EmotionScores{Breakdown: map[string]float64{"joy": 0.8}}, nil),
	}
	result = CombineAnalysisResults(entries)
	assert.InDelta(t, 0.8, result.Emotion.Confidence, 1e-9)
}

func TestCombineAnalysisResultsFullWeek(t *testing.T) {
	// 一批十条混合回答的整体结论
	entries := make([]model.BatchEntry, 0, 10)
	for i := 0; i < 6; i++ {
		entries = append(entries, entryWith(
			&model.SentimentScores{Positive: 0.7, Negative: 0.1, Neutral: 0.2, Confidence: 0.85},
			&model.EmotionScores{Breakdown: map[string]float64{"joy": 0.75}},
			&model.StressScores{Score: 0.2, Anxiety: &model.AnxietyScores{Score: 0.1}}))
	}
	for i := 0; i < 4; i++ {
		entries = append(entries, entryWith(
			&model.SentimentScores{Positive: 0.1, Negative: 0.6, Neutral: 0.3, Confidence: 0.8},
			&model.EmotionScores{Breakdown: map[string]float64{"sadness": 0.65}},
			&model.StressScores{Score: 0.7, Anxiety: &model.AnxietyScores{Score: 0.5}}))
	}

	result := CombineAnalysisResults(entries)

	assert.Equal(t, 10, result.BatchSize)
	assert.Equal(t, "positive", result.Sentiment.Primary)
	assert.Equal(t, "joy", result.Emotion.Primary)
	assert.Equal(t, "medium", result.Stress.Level)     // (6*0.2+4*0.7)/10 = 0.4
	assert.Equal(t, "low", result.Stress.Anxiety.Level) // (6*0.1+4*0.5)/10 = 0.26
}
