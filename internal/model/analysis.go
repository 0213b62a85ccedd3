package model

import "time"

// SentimentScores 情感分析分值
type SentimentScores struct {
	Primary    string  `json:"primary"`
	Positive   float64 `json:"positive"`
	Negative   float64 `json:"negative"`
	Neutral    float64 `json:"neutral"`
	Confidence float64 `json:"confidence"`
}

// EmotionScores 情绪分析分值，Breakdown 为各情绪的强度
type EmotionScores struct {
	Primary    string             `json:"primary"`
	Confidence float64            `json:"confidence"`
	Breakdown  map[string]float64 `json:"breakdown,omitempty"`
}

type AnxietyScores struct {
	Level string  `json:"level"`
	Score float64 `json:"score"`
}

type StressScores struct {
	Level   string         `json:"level"`
	Score   float64        `json:"score"`
	Anxiety *AnxietyScores `json:"anxiety,omitempty"`
}

// AnalysisResult 单条文本的综合分析结果，所有子项均可缺省
type AnalysisResult struct {
	Sentiment *SentimentScores `json:"sentiment,omitempty"`
	Emotion   *EmotionScores   `json:"emotion,omitempty"`
	Stress    *StressScores    `json:"stress,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
	Text      string           `json:"text,omitempty"`
}

// BatchEntry 一批回答中的一条，Analysis 可能整体缺失
type BatchEntry struct {
	AssessmentID uint            `json:"assessmentId"`
	Question     string          `json:"question"`
	Analysis     *AnalysisResult `json:"analysis,omitempty"`
}

// AggregatedResult 批量聚合后的整体结果
type AggregatedResult struct {
	Sentiment SentimentScores `json:"sentiment"`
	Emotion   EmotionScores   `json:"emotion"`
	Stress    StressScores    `json:"stress"`
	BatchSize int             `json:"batchSize"`
	Timestamp time.Time       `json:"timestamp"`
}
