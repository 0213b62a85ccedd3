package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"fitsync_backend/internal/config"
	"fitsync_backend/internal/model"
	"fitsync_backend/pkg/logger"
	"fitsync_backend/pkg/monitoring"

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"
)

// SentimentService 调用外部推理服务做文本分析，失败时退回关键词分析
type SentimentService struct {
	cfg    config.AnalysisConfig
	client *http.Client
}

func NewSentimentService(cfg config.AnalysisConfig) *SentimentService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api-inference.huggingface.co/models"
	}
	if cfg.SentimentModel == "" {
		cfg.SentimentModel = "nlptown/bert-base-multilingual-uncased-sentiment"
	}
	if cfg.EmotionModel == "" {
		cfg.EmotionModel = "j-hartmann/emotion-english-distilroberta-base"
	}
	if cfg.StressModel == "" {
		cfg.StressModel = "facebook/bart-large-mnli"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &SentimentService{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

type statusError struct {
	status int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("inference api returned status %d", e.status)
}

// 410 表示模型加载中，429 表示限流，仅这两种状态重试
func retryable(err error) bool {
	se, ok := err.(*statusError)
	return ok && (se.status == http.StatusGone || se.status == http.StatusTooManyRequests)
}

type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func (s *SentimentService) post(ctx context.Context, modelName string, payload interface{}) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() {
		monitoring.AnalysisRequestDuration.WithLabelValues(modelName).Observe(time.Since(start).Seconds())
	}()

	var respBody []byte
	err = retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodPost,
				s.cfg.BaseURL+"/"+modelName, bytes.NewReader(body))
			if err != nil {
				return err
			}
			req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
			req.Header.Set("Content-Type", "application/json")

			resp, err := s.client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				io.Copy(io.Discard, resp.Body)
				return &statusError{status: resp.StatusCode}
			}

			respBody, err = io.ReadAll(resp.Body)
			return err
		},
		retry.Attempts(3),
		retry.Delay(2*time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(retryable),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	return respBody, err
}

// AnalyzeSentiment 情感倾向分析
func (s *SentimentService) AnalyzeSentiment(ctx context.Context, text string) *model.SentimentScores {
	if strings.TrimSpace(text) == "" {
		return &model.SentimentScores{Primary: "neutral", Neutral: 1}
	}
	if s.cfg.APIKey == "" {
		monitoring.AnalysisFallbackCounter.WithLabelValues("sentiment").Inc()
		return KeywordSentiment(text)
	}

	respBody, err := s.post(ctx, s.cfg.SentimentModel, map[string]string{"inputs": text})
	if err != nil {
		logger.Log.Warn("情感分析调用失败，使用关键词降级", zap.Error(err))
		monitoring.AnalysisFallbackCounter.WithLabelValues("sentiment").Inc()
		return KeywordSentiment(text)
	}

	var result [][]labelScore
	if err := json.Unmarshal(respBody, &result); err != nil || len(result) == 0 || len(result[0]) == 0 {
		monitoring.AnalysisFallbackCounter.WithLabelValues("sentiment").Inc()
		return KeywordSentiment(text)
	}

	scores := &model.SentimentScores{}
	top := result[0][0]
	for _, item := range result[0] {
		label := strings.ToLower(item.Label)
		switch {
		case strings.Contains(label, "positive"):
			scores.Positive = item.Score
		case strings.Contains(label, "negative"):
			scores.Negative = item.Score
		case strings.Contains(label, "neutral"):
			scores.Neutral = item.Score
		}
		if item.Score > top.Score {
			top = item
		}
	}

	scores.Primary = "neutral"
	if scores.Positive > scores.Negative && scores.Positive > scores.Neutral {
		scores.Primary = "positive"
	} else if scores.Negative > scores.Neutral {
		scores.Primary = "negative"
	}
	scores.Confidence = top.Score
	return scores
}

// DetectEmotion 情绪识别
func (s *SentimentService) DetectEmotion(ctx context.Context, text string) *model.EmotionScores {
	if strings.TrimSpace(text) == "" {
		return &model.EmotionScores{Primary: "neutral", Breakdown: map[string]float64{}}
	}
	if s.cfg.APIKey == "" {
		monitoring.AnalysisFallbackCounter.WithLabelValues("emotion").Inc()
		return KeywordEmotion(text)
	}

	respBody, err := s.post(ctx, s.cfg.EmotionModel, map[string]string{"inputs": text})
	if err != nil {
		logger.Log.Warn("情绪识别调用失败，使用关键词降级", zap.Error(err))
		monitoring.AnalysisFallbackCounter.WithLabelValues("emotion").Inc()
		return KeywordEmotion(text)
	}

	var result [][]labelScore
	if err := json.Unmarshal(respBody, &result); err != nil || len(result) == 0 || len(result[0]) == 0 {
		monitoring.AnalysisFallbackCounter.WithLabelValues("emotion").Inc()
		return KeywordEmotion(text)
	}

	breakdown := make(map[string]float64, len(result[0]))
	top := result[0][0]
	for _, e := range result[0] {
		breakdown[strings.ToLower(e.Label)] = e.Score
		if e.Score > top.Score {
			top = e
		}
	}

	return &model.EmotionScores{
		Primary:    strings.ToLower(top.Label),
		Confidence: top.Score,
		Breakdown:  breakdown,
	}
}

// 零样本分类的压力档位标签
var stressLabels = []string{
	"highly stressed and anxious",
	"moderately stressed",
	"slightly stressed",
	"calm and relaxed",
}

// DetectStress 压力与焦虑识别，使用零样本分类
func (s *SentimentService) DetectStress(ctx context.Context, text string) *model.StressScores {
	if strings.TrimSpace(text) == "" {
		return &model.StressScores{Level: "low", Anxiety: &model.AnxietyScores{Level: "low"}}
	}
	if s.cfg.APIKey == "" {
		monitoring.AnalysisFallbackCounter.WithLabelValues("stress").Inc()
		return KeywordStress(text)
	}

	payload := map[string]interface{}{
		"inputs": text,
		"parameters": map[string]interface{}{
			"candidate_labels": stressLabels,
		},
	}
	respBody, err := s.post(ctx, s.cfg.StressModel, payload)
	if err != nil {
		logger.Log.Warn("压力识别调用失败，使用关键词降级", zap.Error(err))
		monitoring.AnalysisFallbackCounter.WithLabelValues("stress").Inc()
		return KeywordStress(text)
	}

	var result struct {
		Labels []string  `json:"labels"`
		Scores []float64 `json:"scores"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil || len(result.Scores) == 0 || len(result.Labels) != len(result.Scores) {
		monitoring.AnalysisFallbackCounter.WithLabelValues("stress").Inc()
		return KeywordStress(text)
	}

	// 返回的标签按分值降序排列，需按标签名取值
	byLabel := make(map[string]float64, len(result.Labels))
	for i, label := range result.Labels {
		byLabel[label] = result.Scores[i]
	}
	anxietyScore := byLabel["highly stressed and anxious"]
	stressScore := maxFloat(anxietyScore, byLabel["moderately stressed"])

	return &model.StressScores{
		Level: stressLevel(stressScore),
		Score: stressScore,
		Anxiety: &model.AnxietyScores{
			Level: stressLevel(anxietyScore),
			Score: anxietyScore,
		},
	}
}

func stressLevel(score float64) string {
	switch {
	case score > 0.6:
		return "high"
	case score > 0.3:
		return "medium"
	default:
		return "low"
	}
}

// ComprehensiveAnalysis 三项分析并行执行后汇总
func (s *SentimentService) ComprehensiveAnalysis(ctx context.Context, text string) *model.AnalysisResult {
	if strings.TrimSpace(text) == "" {
		return &model.AnalysisResult{
			Sentiment: &model.SentimentScores{Primary: "neutral", Neutral: 1},
			Emotion:   &model.EmotionScores{Primary: "neutral", Breakdown: map[string]float64{}},
			Stress:    &model.StressScores{Level: "low", Anxiety: &model.AnxietyScores{Level: "low"}},
			Timestamp: time.Now(),
		}
	}

	var (
		wg        sync.WaitGroup
		sentiment *model.SentimentScores
		emotion   *model.EmotionScores
		stress    *model.StressScores
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		sentiment = s.AnalyzeSentiment(ctx, text)
	}()
	go func() {
		defer wg.Done()
		emotion = s.DetectEmotion(ctx, text)
	}()
	go func() {
		defer wg.Done()
		stress = s.DetectStress(ctx, text)
	}()
	wg.Wait()

	snippet := truncateSnippet(text, 100)

	return &model.AnalysisResult{
		Sentiment: sentiment,
		Emotion:   emotion,
		Stress:    stress,
		Timestamp: time.Now(),
		Text:      snippet,
	}
}

// truncateSnippet 按字节上限截断存档文本，退到 UTF-8 字符边界上，避免截出半个字符
func truncateSnippet(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
