package service

import (
	"sort"
	"time"

	"fitsync_backend/internal/model"
)

// CombineAnalysisResults 将一批逐题分析结果聚合为整体结论。
// 缺失的子项按零贡献计入，均值分母为携带分析结果的条目数，至少为 1。
func CombineAnalysisResults(entries []model.BatchEntry) model.AggregatedResult {
	var (
		sumPositive   float64
		sumNegative   float64
		sumNeutral    float64
		sumConfidence float64
		sumStress     float64
		sumAnxiety    float64
	)
	emotions := make(map[string]float64)

	count := 0
	for _, entry := range entries {
		if entry.Analysis == nil {
			continue
		}
		count++

		if s := entry.Analysis.Sentiment; s != nil {
			sumPositive += s.Positive
			sumNegative += s.Negative
			sumNeutral += s.Neutral
			sumConfidence += s.Confidence
		}
		if e := entry.Analysis.Emotion; e != nil {
			for key, v := range e.Breakdown {
				emotions[key] += v
			}
		}
		if st := entry.Analysis.Stress; st != nil {
			sumStress += st.Score
			if st.Anxiety != nil {
				sumAnxiety += st.Anxiety.Score
			}
		}
	}
	if count == 0 {
		count = 1
	}

	n := float64(count)
	avgPositive := sumPositive / n
	avgNegative := sumNegative / n
	avgNeutral := sumNeutral / n
	avgConfidence := sumConfidence / n
	avgStress := sumStress / n
	avgAnxiety := sumAnxiety / n
	for key := range emotions {
		emotions[key] /= n
	}

	// 正面需严格大于负面和中性才判为正面，负面需严格大于中性才判为负面，否则中性
	primarySentiment := "neutral"
	if avgPositive > avgNegative && avgPositive > avgNeutral {
		primarySentiment = "positive"
	} else if avgNegative > avgNeutral {
		primarySentiment = "negative"
	}

	primaryEmotion := "neutral"
	maxEmotion := 0.0
	keys := make([]string, 0, len(emotions))
	for key := range emotions {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if emotions[key] > maxEmotion {
			maxEmotion = emotions[key]
			primaryEmotion = key
		}
	}
	emotionConfidence := maxFloat(maxEmotion, 0.5)

	return model.AggregatedResult{
		Sentiment: model.SentimentScores{
			Primary:    primarySentiment,
			Positive:   avgPositive,
			Negative:   avgNegative,
			Neutral:    avgNeutral,
			Confidence: avgConfidence,
		},
		Emotion: model.EmotionScores{
			Primary:    primaryEmotion,
			Confidence: emotionConfidence,
			Breakdown:  emotions,
		},
		Stress: model.StressScores{
			Level: stressLevel(avgStress),
			Score: avgStress,
			Anxiety: &model.AnxietyScores{
				Level: stressLevel(avgAnxiety),
				Score: avgAnxiety,
			},
		},
		BatchSize: count,
		Timestamp: time.Now(),
	}
}
