package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"fitsync_backend/internal/model"
	"fitsync_backend/internal/repository"
	"fitsync_backend/internal/util"
	"fitsync_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AssessmentService struct {
	Repo      *repository.AssessmentRepository
	UserRepo  *repository.UserRepository
	Sentiment *SentimentService
	Flows     *FlowStore
}

func NewAssessmentService(
	repo *repository.AssessmentRepository,
	userRepo *repository.UserRepository,
	sentiment *SentimentService,
	flows *FlowStore,
) *AssessmentService {
	return &AssessmentService{
		Repo:      repo,
		UserRepo:  userRepo,
		Sentiment: sentiment,
		Flows:     flows,
	}
}

// GenerateDailyQuestions 从启用的题库模板中为用户生成每日题目，最多 10 道，
// 跳过当前仍未作答的同题面模板
func (s *AssessmentService) GenerateDailyQuestions(ctx context.Context, userID uint) ([]model.Assessment, error) {
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	templates, err := s.Repo.ListEnabledTemplates()
	if err != nil {
		return nil, err
	}
	activeSet, err := s.Repo.ActiveQuestionSet(userID)
	if err != nil {
		return nil, err
	}

	candidates := make([]model.AssessmentQuestionTemplate, 0, len(templates))
	for _, t := range templates {
		if !activeSet[t.Question] {
			candidates = append(candidates, t)
		}
	}
	rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if len(candidates) > MaxBatchSize {
		candidates = candidates[:MaxBatchSize]
	}

	saved := make([]model.Assessment, 0, len(candidates))
	for _, t := range candidates {
		a := model.Assessment{
			UserID:      userID,
			Question:    t.Question,
			Choices:     t.Choices,
			Suggestion:  t.Suggestion,
			Sentiment:   sentimentOrNeutral(t.Sentiment),
			Category:    t.Category,
			Difficulty:  t.Difficulty,
			IsActive:    true,
			GeneratedAt: time.Now(),
		}
		if err := s.Repo.Create(&a); err != nil {
			return nil, err
		}
		saved = append(saved, a)
	}

	logger.Log.Info("生成每日评估题目",
		zap.Uint("userID", userID),
		zap.Int("count", len(saved)))

	// 新题目生成后重置答题流程
	ids := make([]uint, len(saved))
	for i, a := range saved {
		ids[i] = a.ID
	}
	if len(ids) > 0 {
		if err := s.Flows.Save(ctx, userID, NewFlowState(ids)); err != nil {
			return nil, err
		}
	}

	return saved, nil
}

// ActiveQuestionsResult 活跃题目响应
type ActiveQuestionsResult struct {
	Questions []model.Assessment `json:"questions"`
	Total     int                `json:"total"`
	Flow      *FlowState         `json:"flow,omitempty"`
}

// GetActiveQuestions 获取当前未作答题目，没有答题流程时按取到的题目初始化一个
func (s *AssessmentService) GetActiveQuestions(ctx context.Context, userID uint, category string) (*ActiveQuestionsResult, error) {
	questions, err := s.Repo.ListActive(userID, category, MaxBatchSize)
	if err != nil {
		return nil, err
	}

	flow, err := s.Flows.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if flow == nil && len(questions) > 0 {
		ids := make([]uint, len(questions))
		for i, q := range questions {
			ids[i] = q.ID
		}
		flow = NewFlowState(ids)
		if err := s.Flows.Save(ctx, userID, flow); err != nil {
			return nil, err
		}
	}

	return &ActiveQuestionsResult{
		Questions: questions,
		Total:     len(questions),
		Flow:      flow,
	}, nil
}

// DailyStatusResult 每日评估完成状态
type DailyStatusResult struct {
	Completed               bool      `json:"completed"`
	NextAvailable           time.Time `json:"nextAvailable"`
	HoursUntilNextAvailable int       `json:"hoursUntilNextAvailable"`
}

func (s *AssessmentService) DailyStatus(userID uint) (*DailyStatusResult, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	count, err := s.Repo.CountCompletedSince(userID, startOfDay)
	if err != nil {
		return nil, err
	}

	nextAvailable := startOfDay.AddDate(0, 0, 1)
	hours := int(math.Ceil(nextAvailable.Sub(now).Hours()))
	if hours < 0 {
		hours = 0
	}

	return &DailyStatusResult{
		Completed:               count > 0,
		NextAvailable:           nextAvailable,
		HoursUntilNextAvailable: hours,
	}, nil
}

// SubmitResponseInput 提交作答
type SubmitResponseInput struct {
	AssessmentID   uint
	SelectedChoice string
	UserTextInput  string
}

// SubmitResponseResult 提交后的返回：逐题分析、流程状态，批量聚合结果仅在
// 进入结果展示阶段时出现
type SubmitResponseResult struct {
	Assessment        *model.Assessment       `json:"assessment"`
	SentimentAnalysis *model.AnalysisResult   `json:"sentimentAnalysis,omitempty"`
	Flow              *FlowState              `json:"flow"`
	BatchResult       *model.AggregatedResult `json:"batchResult,omitempty"`
}

// SubmitResponse 提交一道题的作答。选项和文字输入同时为空时在发起任何
// 分析调用之前拒绝；提交失败不会改变流程状态。
func (s *AssessmentService) SubmitResponse(ctx context.Context, userID uint, input SubmitResponseInput) (*SubmitResponseResult, error) {
	if input.SelectedChoice == "" && strings.TrimSpace(input.UserTextInput) == "" {
		return nil, util.ErrEmptyResponse
	}

	assessment, err := s.Repo.FindByID(input.AssessmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssessmentNotFound
		}
		return nil, err
	}
	if assessment.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	if assessment.CompletedAt != nil {
		return nil, util.ErrAssessmentCompleted
	}

	var choice *model.Choice
	if input.SelectedChoice != "" {
		choices, err := assessment.DecodeChoices()
		if err != nil {
			return nil, err
		}
		choice, err = matchChoice(choices, input.SelectedChoice)
		if err != nil {
			return nil, err
		}
	}

	// 选项文本与自由输入拼接后做分析
	var parts []string
	if choice != nil {
		parts = append(parts, choice.Text)
	}
	if strings.TrimSpace(input.UserTextInput) != "" {
		parts = append(parts, input.UserTextInput)
	}
	analysis := s.Sentiment.ComprehensiveAnalysis(ctx, strings.Join(parts, ". "))

	record := model.SentimentRecord{
		SelectedChoice: choice,
		UserResponse:   input.UserTextInput,
		Analysis:       analysis,
		Timestamp:      time.Now(),
	}
	rawRecord, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	assessment.SentimentResult = rawRecord
	assessment.CompletedAt = &now
	assessment.IsActive = false
	assessment.UserProgress.TotalAttempts++
	if choice != nil {
		assessment.UserProgress.Score = choice.Value
		if choice.Value > 0 {
			assessment.UserProgress.CorrectAnswers++
		}
	}
	if err := s.Repo.Update(assessment); err != nil {
		return nil, err
	}

	flow, err := s.Flows.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if flow == nil {
		// 流程丢失时以剩余活跃题目重建，当前题排在首位
		ids := []uint{assessment.ID}
		if active, err := s.Repo.ListActive(userID, "", MaxBatchSize); err == nil {
			for _, q := range active {
				ids = append(ids, q.ID)
			}
		}
		flow = NewFlowState(ids)
	}

	entry := model.BatchEntry{
		AssessmentID: assessment.ID,
		Question:     assessment.Question,
		Analysis:     analysis,
	}
	showResults := flow.ApplySubmission(entry)

	var batchResult *model.AggregatedResult
	if showResults {
		combined := CombineAnalysisResults(flow.Batch)
		batchResult = &combined
	}
	if err := s.Flows.Save(ctx, userID, flow); err != nil {
		return nil, err
	}

	return &SubmitResponseResult{
		Assessment:        assessment,
		SentimentAnalysis: analysis,
		Flow:              flow,
		BatchResult:       batchResult,
	}, nil
}

// SkipQuestion 跳过当前题目，最后一题跳过时流程直接完成
func (s *AssessmentService) SkipQuestion(ctx context.Context, userID uint) (*FlowState, error) {
	flow, err := s.Flows.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if flow == nil {
		return nil, util.ErrNoActiveFlow
	}
	flow.ApplySkip()
	if err := s.Flows.Save(ctx, userID, flow); err != nil {
		return nil, err
	}
	return flow, nil
}

// ContinueFlow 结果展示后继续作答
func (s *AssessmentService) ContinueFlow(ctx context.Context, userID uint) (*FlowState, error) {
	flow, err := s.Flows.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if flow == nil {
		return nil, util.ErrNoActiveFlow
	}
	flow.ApplyContinue()
	if err := s.Flows.Save(ctx, userID, flow); err != nil {
		return nil, err
	}
	return flow, nil
}

// CategoryProgress 分类维度的完成统计
type CategoryProgress struct {
	Total     int     `json:"total"`
	Completed int     `json:"completed"`
	AvgScore  float64 `json:"avgScore"`
}

// ProgressResult 作答进度
type ProgressResult struct {
	TotalAssessments     int                                              `json:"totalAssessments"`
	CompletedAssessments int                                              `json:"completedAssessments"`
	CompletionRate       int                                              `json:"completionRate"`
	AverageScore         float64                                          `json:"averageScore"`
	CategoryBreakdown    map[model.AssessmentCategory]*CategoryProgress   `json:"categoryBreakdown"`
	RecentResponses      []model.Assessment                               `json:"recentResponses"`
}

func (s *AssessmentService) Progress(userID uint, days int) (*ProgressResult, error) {
	since := time.Now().AddDate(0, 0, -days)
	var all []model.Assessment
	err := s.Repo.DB.Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at desc").Find(&all).Error
	if err != nil {
		return nil, err
	}

	result := &ProgressResult{
		TotalAssessments:  len(all),
		CategoryBreakdown: make(map[model.AssessmentCategory]*CategoryProgress),
	}

	var scoreSum float64
	for _, a := range all {
		rec, err := a.DecodeSentimentResult()
		if err != nil || rec == nil || rec.SelectedChoice == nil {
			continue
		}
		result.CompletedAssessments++
		scoreSum += float64(rec.SelectedChoice.Value)

		cb := result.CategoryBreakdown[a.Category]
		if cb == nil {
			cb = &CategoryProgress{}
			result.CategoryBreakdown[a.Category] = cb
		}
		cb.Total++
		cb.Completed++
		cb.AvgScore += float64(rec.SelectedChoice.Value)

		if len(result.RecentResponses) < 10 {
			result.RecentResponses = append(result.RecentResponses, a)
		}
	}

	for _, cb := range result.CategoryBreakdown {
		if cb.Completed > 0 {
			cb.AvgScore = math.Round(cb.AvgScore/float64(cb.Completed)*100) / 100
		}
	}
	if len(all) > 0 {
		result.CompletionRate = int(math.Round(float64(result.CompletedAssessments) / float64(len(all)) * 100))
	}
	if result.CompletedAssessments > 0 {
		result.AverageScore = math.Round(scoreSum/float64(result.CompletedAssessments)*100) / 100
	}
	return result, nil
}

func (s *AssessmentService) History(userID uint, page, limit int, category string) ([]model.Assessment, int64, error) {
	return s.Repo.ListHistory(userID, page, limit, category)
}

// TrendPoint 情感趋势中的一个数据点
type TrendPoint struct {
	Date      time.Time `json:"date"`
	Sentiment string    `json:"sentiment"`
	Score     int       `json:"score"`
	Question  string    `json:"question"`
}

// TrendResult 一段时间内的情感趋势
type TrendResult struct {
	Trend                 []TrendPoint   `json:"trend"`
	TotalAssessments      int            `json:"totalAssessments"`
	SentimentDistribution map[string]int `json:"sentimentDistribution"`
	AverageSentimentScore float64        `json:"averageSentimentScore"`
	MostCommonSentiment   string         `json:"mostCommonSentiment"`
}

func (s *AssessmentService) SentimentTrend(userID uint, days int) (*TrendResult, error) {
	since := time.Now().AddDate(0, 0, -days)
	assessments, err := s.Repo.CompletedSince(userID, since)
	if err != nil {
		return nil, err
	}

	result := &TrendResult{
		Trend: make([]TrendPoint, 0, len(assessments)),
		SentimentDistribution: map[string]int{
			"very_sad": 0, "sad": 0, "neutral": 0, "happy": 0, "very_happy": 0,
		},
	}

	var scoreSum float64
	counted := 0
	for i := len(assessments) - 1; i >= 0; i-- { // 时间升序
		a := assessments[i]
		rec, err := a.DecodeSentimentResult()
		if err != nil || rec == nil || rec.SelectedChoice == nil {
			continue
		}
		result.Trend = append(result.Trend, TrendPoint{
			Date:      a.CreatedAt,
			Sentiment: a.Sentiment,
			Score:     rec.SelectedChoice.Value,
			Question:  a.Question,
		})
		result.SentimentDistribution[a.Sentiment]++
		scoreSum += float64(rec.SelectedChoice.Value)
		counted++
	}

	result.TotalAssessments = counted
	if counted > 0 {
		result.AverageSentimentScore = math.Round(scoreSum/float64(counted)*100) / 100
	}

	result.MostCommonSentiment = "neutral"
	maxCount := -1
	for _, label := range []string{"very_sad", "sad", "neutral", "happy", "very_happy"} {
		if result.SentimentDistribution[label] > maxCount {
			maxCount = result.SentimentDistribution[label]
			result.MostCommonSentiment = label
		}
	}
	return result, nil
}

// Recommendation 基于近期作答的个性化建议
type Recommendation struct {
	Priority    string `json:"priority"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Action      string `json:"action"`
	Category    string `json:"category"`
}

// Recommendations 基于最近 10 次已完成作答生成建议，最多 5 条：
// 低分占比超过 30% 给出高优先级身心健康建议，分类均分低于 5 给出分类建议
func (s *AssessmentService) Recommendations(userID uint) ([]Recommendation, error) {
	recent, err := s.Repo.RecentCompleted(userID, 10)
	if err != nil {
		return nil, err
	}
	if len(recent) == 0 {
		return []Recommendation{}, nil
	}

	type scored struct {
		category model.AssessmentCategory
		value    float64
	}
	var entries []scored
	lowCount := 0
	for _, a := range recent {
		rec, err := a.DecodeSentimentResult()
		if err != nil || rec == nil || rec.SelectedChoice == nil {
			continue
		}
		v := float64(rec.SelectedChoice.Value)
		entries = append(entries, scored{category: a.Category, value: v})
		if v < 5 {
			lowCount++
		}
	}

	var recommendations []Recommendation
	if float64(lowCount) > float64(len(recent))*0.3 {
		recommendations = append(recommendations, Recommendation{
			Priority:    "high",
			Title:       "Improve Emotional Well-being",
			Description: "Recent assessments show lower scores. Consider engaging in stress-relief activities.",
			Action:      "Start a mindfulness or meditation session",
			Category:    "mental_health",
		})
	}

	categoryScores := make(map[model.AssessmentCategory][]float64)
	for _, e := range entries {
		categoryScores[e.category] = append(categoryScores[e.category], e.value)
	}
	for _, category := range []model.AssessmentCategory{
		model.CategoryGeneral, model.CategorySentiment, model.CategoryHealth, model.CategoryLifestyle,
	} {
		scores, ok := categoryScores[category]
		if !ok {
			continue
		}
		var sum float64
		for _, v := range scores {
			sum += v
		}
		avg := sum / float64(len(scores))
		if avg < 5 {
			priority := "medium"
			if avg < 3 {
				priority = "high"
			}
			label := strings.ReplaceAll(string(category), "_", " ")
			recommendations = append(recommendations, Recommendation{
				Priority:    priority,
				Title:       "Improve " + label,
				Description: "Your recent " + label + " assessments average " + formatScore(avg) + "/10",
				Action:      "Take actions to improve your " + label,
				Category:    string(category),
			})
		}
	}

	if len(recommendations) > 5 {
		recommendations = recommendations[:5]
	}
	return recommendations, nil
}

func formatScore(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

// sentimentOrNeutral 模板未标注情感标签时回落到 neutral
func sentimentOrNeutral(s string) string {
	if s == "" {
		return "neutral"
	}
	return s
}

// matchChoice 在题目选项中查找所选项，找不到视为非法选项
func matchChoice(choices []model.Choice, id string) (*model.Choice, error) {
	for i := range choices {
		if choices[i].ID == id {
			return &choices[i], nil
		}
	}
	return nil, util.ErrInvalidChoice
}
