package service

import (
	"strings"

	"fitsync_backend/internal/model"
)

// 关键词降级分析。外部推理服务不可用时使用，词表含英语和塔加洛语。

var positiveWords = []string{
	"good", "great", "excellent", "happy", "wonderful", "love", "amazing", "awesome", "best",
	"mabuti", "maganda", "masaya", "mahusay", "napakaganda", "napakagandang", "yey", "nice", "cool",
	"grateful", "blessed", "wonderful", "fantastic", "beautiful", "proud", "content", "joyful", "delighted",
}

var negativeWords = []string{
	"bad", "terrible", "awful", "sad", "hate", "horrible", "angry", "frustrated", "worst",
	"masama", "nakakapagod", "lungkot", "lungkutan", "galit", "mainit", "mainis", "sarado",
	"alone", "lonely", "depressed", "miserable", "upset", "worried", "anxious", "scared", "fear",
	"suffering", "crying", "crying", "devastated", "helpless", "desperate", "hopeless", "broken",
	"alone", "abandoned", "rejected", "unwanted", "unloved",
}

var emotionKeywords = map[string][]string{
	"joy":      {"happy", "masaya", "saya", "smile", "laugh", "yey", "great", "wonderful", "grateful", "blessed", "delighted"},
	"sadness":  {"sad", "lungkot", "nawala", "malungkot", "cry", "down", "alone", "lonely", "depressed", "miserable", "heartbroken"},
	"anger":    {"angry", "galit", "mainit", "furious", "mainis", "frustrated", "upset", "irritated"},
	"fear":     {"afraid", "scared", "takot", "nervous", "panic", "anxious", "worried", "terrified"},
	"surprise": {"wow", "amazing", "shock", "surprised", "unexpected", "astonished"},
	"neutral":  {"normal", "okay", "fine", "alright", "meh"},
}

var highStressKeywords = []string{
	"stress", "stressed", "stressful", "anxiety", "anxious", "panic", "panicking", "overwhelmed", "overwhelming",
	"depressed", "depression", "exhausted", "burnout", "burnt out", "breakdown", "crisis", "disaster",
	"terrible", "awful", "horrible", "unbearable", "miserable", "devastated", "desperate", "hopeless",
	"angry", "anger", "furious", "enraged", "livid",
	"alalahanin", "mabigat", "napakahirap", "napakabigat", "sirang-sira", "pagod na pagod", "giyaw", "kahirapan", "galit", "init",
}

var mediumStressKeywords = []string{
	"worried", "worry", "concerned", "concern", "nervous", "pressured", "pressure", "tense",
	"tension", "busy", "overwhelm", "challenge", "challenged", "difficult", "struggling", "struggle",
	"tired", "fatigue", "worn out", "uneasy", "uncomfortable", "irritable", "frustrated", "frustration",
	"upset", "irritated", "annoyed", "annoying", "mainis", "upset", "mainit",
	"alalahanin", "takot", "mainit", "frustrated", "galit", "problema", "kabaguhan",
}

var calmKeywords = []string{
	"calm", "peaceful", "peace", "relax", "relaxed", "rest", "rested", "okay", "fine", "good", "great",
	"wonderful", "happy", "masaya", "okay lang", "ayos", "okay na", "peaceful", "serene", "tranquil",
}

var anxietyKeywords = []string{
	"anxious", "anxiety", "panic", "panicking", "nervous", "uneasy", "worried", "afraid", "fear", "scared",
	"angry", "anger", "furious", "upset", "irritated", "annoyed",
	"takot", "takot na takot", "concerned", "galit", "init", "mainit",
}

func countMatches(textLower string, words []string) int {
	count := 0
	for _, w := range words {
		if strings.Contains(textLower, w) {
			count++
		}
	}
	return count
}

// KeywordSentiment 基于关键词的情感倾向分析
func KeywordSentiment(text string) *model.SentimentScores {
	textLower := strings.ToLower(text)

	positiveCount := countMatches(textLower, positiveWords)
	negativeCount := countMatches(textLower, negativeWords)

	primary := "neutral"
	positive, negative, neutral := 0.33, 0.33, 0.34

	if positiveCount > negativeCount {
		primary = "positive"
		positive = minFloat(0.5+float64(positiveCount)*0.1, 0.8)
		negative = maxFloat(0.1, 0.5-float64(positiveCount)*0.1)
		neutral = 1 - positive - negative
	} else if negativeCount > positiveCount {
		primary = "negative"
		negative = minFloat(0.5+float64(negativeCount)*0.1, 0.8)
		positive = maxFloat(0.1, 0.5-float64(negativeCount)*0.1)
		neutral = 1 - positive - negative
	}

	return &model.SentimentScores{
		Primary:    primary,
		Positive:   positive,
		Negative:   negative,
		Neutral:    neutral,
		Confidence: 0.6,
	}
}

// KeywordEmotion 基于关键词的情绪识别
func KeywordEmotion(text string) *model.EmotionScores {
	textLower := strings.ToLower(text)

	scores := make(map[string]int, len(emotionKeywords))
	total := 0
	for emotion, keywords := range emotionKeywords {
		n := countMatches(textLower, keywords)
		scores[emotion] = n
		total += n
	}
	if total == 0 {
		total = 1
	}

	breakdown := make(map[string]float64, len(scores))
	maxEmotion := "neutral"
	maxScore := 0
	for emotion, count := range scores {
		breakdown[emotion] = float64(count) / float64(total)
		if count > maxScore {
			maxScore = count
			maxEmotion = emotion
		}
	}

	return &model.EmotionScores{
		Primary:    maxEmotion,
		Confidence: minFloat(float64(maxScore)/float64(total), 0.9),
		Breakdown:  breakdown,
	}
}

// KeywordStress 基于关键词的压力与焦虑识别
func KeywordStress(text string) *model.StressScores {
	textLower := strings.ToLower(text)

	highCount := countMatches(textLower, highStressKeywords)
	mediumCount := countMatches(textLower, mediumStressKeywords)
	calmCount := countMatches(textLower, calmKeywords)

	level := "low"
	score := 0.2

	switch {
	case highCount >= 1:
		level = "high"
		score = minFloat(0.75+float64(highCount)*0.1, 0.95)
	case mediumCount >= 1 && calmCount == 0:
		level = "medium"
		score = minFloat(0.45+float64(mediumCount)*0.1, 0.65)
	case calmCount > 0 && highCount+mediumCount == 0:
		level = "low"
		score = 0.1
	}

	anxietyCount := countMatches(textLower, anxietyKeywords)
	anxietyLevel := "low"
	anxietyScore := 0.2
	if anxietyCount >= 2 {
		anxietyLevel = "high"
		anxietyScore = minFloat(0.75+float64(anxietyCount)*0.1, 0.95)
	} else if anxietyCount >= 1 {
		anxietyLevel = "medium"
		anxietyScore = minFloat(0.45+float64(anxietyCount)*0.15, 0.65)
	}

	return &model.StressScores{
		Level: level,
		Score: score,
		Anxiety: &model.AnxietyScores{
			Level: anxietyLevel,
			Score: anxietyScore,
		},
	}
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
