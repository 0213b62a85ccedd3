package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fitsync_backend/internal/model"

	"github.com/go-redis/redis/v8"
)

// FlowPhase 每日评估答题流程所处阶段
type FlowPhase string

const (
	PhaseAnswering      FlowPhase = "answering"
	PhaseShowingResults FlowPhase = "showingResults"
	PhaseCompleted      FlowPhase = "completed"
)

// MaxBatchSize 一批最多聚合的题数
const MaxBatchSize = 10

// FlowState 答题流程状态，按用户持久化在 Redis
type FlowState struct {
	QuestionIDs []uint             `json:"questionIds"`
	Index       int                `json:"index"`
	Batch       []model.BatchEntry `json:"batch"`
	Phase       FlowPhase          `json:"phase"`
}

func NewFlowState(questionIDs []uint) *FlowState {
	return &FlowState{
		QuestionIDs: questionIDs,
		Index:       0,
		Batch:       nil,
		Phase:       PhaseAnswering,
	}
}

// EffectiveBatchSize 实际批大小：题目总数不足上限时取总数
func (f *FlowState) EffectiveBatchSize() int {
	if len(f.QuestionIDs) < MaxBatchSize {
		return len(f.QuestionIDs)
	}
	return MaxBatchSize
}

func (f *FlowState) IsLastQuestion() bool {
	return f.Index >= len(f.QuestionIDs)-1
}

// CurrentQuestionID 当前题目ID，流程结束后返回 0
func (f *FlowState) CurrentQuestionID() uint {
	if f.Index < 0 || f.Index >= len(f.QuestionIDs) {
		return 0
	}
	return f.QuestionIDs[f.Index]
}

// ApplySubmission 记录一次成功提交。返回 true 表示该批聚合结果应当展示。
// 批量满或到达最后一题时：批内任一条目带有分析结果则进入展示阶段，
// 否则整批丢弃并前进（最后一题则直接完成）。
func (f *FlowState) ApplySubmission(entry model.BatchEntry) bool {
	if f.Phase != PhaseAnswering {
		return false
	}
	f.Batch = append(f.Batch, entry)

	if len(f.Batch) < f.EffectiveBatchSize() && !f.IsLastQuestion() {
		f.Index++
		return false
	}

	for _, e := range f.Batch {
		if e.Analysis != nil {
			f.Phase = PhaseShowingResults
			return true
		}
	}

	// 整批无分析结果
	f.Batch = nil
	if f.IsLastQuestion() {
		f.Phase = PhaseCompleted
	} else {
		f.Index++
	}
	return false
}

// ApplySkip 跳过当前题，不计入批。最后一题跳过直接完成，不展示结果。
// 仅在作答阶段生效。
func (f *FlowState) ApplySkip() {
	if f.Phase != PhaseAnswering {
		return
	}
	if f.IsLastQuestion() {
		f.Phase = PhaseCompleted
		return
	}
	f.Index++
}

// ApplyContinue 结果展示后继续：按实际批大小前跳，越过末尾则完成。
// 仅在结果展示阶段生效，作答中调用不改变状态。
func (f *FlowState) ApplyContinue() {
	if f.Phase != PhaseShowingResults {
		return
	}
	if f.IsLastQuestion() {
		f.Phase = PhaseCompleted
		return
	}
	resume := f.Index + f.EffectiveBatchSize()
	last := len(f.QuestionIDs) - 1
	if resume > last {
		resume = last
	}
	f.Index = resume
	f.Batch = nil
	f.Phase = PhaseAnswering
}

// FlowStore 流程状态的 Redis 存取，24 小时过期
type FlowStore struct {
	rdb *redis.Client
}

func NewFlowStore(rdb *redis.Client) *FlowStore {
	return &FlowStore{rdb: rdb}
}

const flowTTL = 24 * time.Hour

func flowKey(userID uint) string {
	return fmt.Sprintf("assessment:flow:%d", userID)
}

func (s *FlowStore) Load(ctx context.Context, userID uint) (*FlowState, error) {
	data, err := s.rdb.Get(ctx, flowKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var state FlowState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *FlowStore) Save(ctx context.Context, userID uint, state *FlowState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, flowKey(userID), data, flowTTL).Err()
}

func (s *FlowStore) Clear(ctx context.Context, userID uint) error {
	return s.rdb.Del(ctx, flowKey(userID)).Err()
}
