package service

import (
	"testing"

	"fitsync_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func analyzedEntry(id uint) model.BatchEntry {
	return model.BatchEntry{
		AssessmentID: id,
		Analysis: &model.AnalysisResult{
			Sentiment: &model.SentimentScores{Primary: "neutral", Neutral: 1},
		},
	}
}

func nullEntry(id uint) model.BatchEntry {
	return model.BatchEntry{AssessmentID: id}
}

func questionIDs(n int) []uint {
	ids := make([]uint, n)
	for i := range ids {
		ids[i] = uint(i + 1)
	}
	return ids
}

func TestEffectiveBatchSize(t *testing.T) {
	assert.Equal(t, 3, NewFlowState(questionIDs(3)).EffectiveBatchSize())
	assert.Equal(t, 10, NewFlowState(questionIDs(10)).EffectiveBatchSize())
	assert.Equal(t, 10, NewFlowState(questionIDs(25)).EffectiveBatchSize())
	assert.Equal(t, 0, NewFlowState(nil).EffectiveBatchSize())
}

func TestApplySubmissionAdvancesUntilBatchFull(t *testing.T) {
	f := NewFlowState(questionIDs(10))

	for i := 0; i < 9; i++ {
		show := f.ApplySubmission(analyzedEntry(uint(i + 1)))
		assert.False(t, show, "question %d should not trigger results", i+1)
		assert.Equal(t, i+1, f.Index)
		assert.Equal(t, PhaseAnswering, f.Phase)
	}

	show := f.ApplySubmission(analyzedEntry(10))
	assert.True(t, show)
	assert.Equal(t, PhaseShowingResults, f.Phase)
	assert.Len(t, f.Batch, 10)
}

func TestApplySubmissionSmallQuestionSet(t *testing.T) {
	// 题目不足上限时按总数成批
	f := NewFlowState(questionIDs(3))

	assert.False(t, f.ApplySubmission(analyzedEntry(1)))
	assert.False(t, f.ApplySubmission(analyzedEntry(2)))
	assert.True(t, f.ApplySubmission(analyzedEntry(3)))
	assert.Equal(t, PhaseShowingResults, f.Phase)
}

func TestApplySubmissionAllNullBatchAdvancesWithoutResults(t *testing.T) {
	f := NewFlowState(questionIDs(12))

	for i := 0; i < 10; i++ {
		show := f.ApplySubmission(nullEntry(uint(i + 1)))
		assert.False(t, show)
	}

	// 整批无分析结果：丢弃并继续作答，不展示
	assert.Equal(t, PhaseAnswering, f.Phase)
	assert.Empty(t, f.Batch)
	assert.Equal(t, 10, f.Index)
}

func TestApplySubmissionAllNullFinalBatchCompletes(t *testing.T) {
	f := NewFlowState(questionIDs(2))

	assert.False(t, f.ApplySubmission(nullEntry(1)))
	assert.False(t, f.ApplySubmission(nullEntry(2)))
	assert.Equal(t, PhaseCompleted, f.Phase)
	assert.Empty(t, f.Batch)
}

func TestApplySubmissionLastQuestionShortBatch(t *testing.T) {
	// 最后一题提交时批未满也要结算
	f := NewFlowState(questionIDs(12))
	for i := 0; i < 10; i++ {
		f.ApplySubmission(analyzedEntry(uint(i + 1)))
	}
	f.ApplyContinue()
	assert.Equal(t, 11, f.Index)

	assert.True(t, f.ApplySubmission(analyzedEntry(12)))
	assert.Equal(t, PhaseShowingResults, f.Phase)
	assert.Len(t, f.Batch, 1)
}

func TestApplySkipDoesNotJoinBatch(t *testing.T) {
	f := NewFlowState(questionIDs(5))

	f.ApplySubmission(analyzedEntry(1))
	f.ApplySkip()

	assert.Equal(t, 2, f.Index)
	assert.Len(t, f.Batch, 1)
	assert.Equal(t, PhaseAnswering, f.Phase)
}

func TestApplySkipOnLastQuestionCompletes(t *testing.T) {
	f := NewFlowState(questionIDs(3))
	f.Index = 2

	f.ApplySkip()

	assert.Equal(t, PhaseCompleted, f.Phase)
}

func TestApplyContinueResumesAfterBatch(t *testing.T) {
	f := NewFlowState(questionIDs(25))
	for i := 0; i < 10; i++ {
		f.ApplySubmission(analyzedEntry(uint(i + 1)))
	}
	assert.Equal(t, PhaseShowingResults, f.Phase)
	assert.Equal(t, 9, f.Index)

	f.ApplyContinue()

	assert.Equal(t, 19, f.Index)
	assert.Equal(t, PhaseAnswering, f.Phase)
	assert.Empty(t, f.Batch)
}

func TestApplyContinueClampsToLastQuestion(t *testing.T) {
	f := NewFlowState(questionIDs(12))
	for i := 0; i < 10; i++ {
		f.ApplySubmission(analyzedEntry(uint(i + 1)))
	}
	assert.Equal(t, 9, f.Index)

	// 9 + 10 超过末尾，钳制到最后一题
	f.ApplyContinue()
	assert.Equal(t, 11, f.Index)
}

func TestApplyContinueOnLastQuestionCompletes(t *testing.T) {
	f := NewFlowState(questionIDs(3))
	f.ApplySubmission(analyzedEntry(1))
	f.ApplySubmission(analyzedEntry(2))
	f.ApplySubmission(analyzedEntry(3))
	assert.Equal(t, PhaseShowingResults, f.Phase)
	assert.Equal(t, 2, f.Index)

	f.ApplyContinue()
	assert.Equal(t, PhaseCompleted, f.Phase)
}

func TestApplyContinueIgnoredWhileAnswering(t *testing.T) {
	// 作答中途调用 continue 不能跳题、不能清批
	f := NewFlowState(questionIDs(10))
	f.ApplySubmission(analyzedEntry(1))
	assert.Equal(t, 1, f.Index)

	f.ApplyContinue()

	assert.Equal(t, 1, f.Index)
	assert.Len(t, f.Batch, 1)
	assert.Equal(t, PhaseAnswering, f.Phase)
}

func TestApplySkipIgnoredWhileShowingResults(t *testing.T) {
	f := NewFlowState(questionIDs(3))
	f.ApplySubmission(analyzedEntry(1))
	f.ApplySubmission(analyzedEntry(2))
	f.ApplySubmission(analyzedEntry(3))
	assert.Equal(t, PhaseShowingResults, f.Phase)

	f.ApplySkip()

	assert.Equal(t, PhaseShowingResults, f.Phase)
	assert.Equal(t, 2, f.Index)
	assert.Len(t, f.Batch, 3)
}

func TestApplySubmissionIgnoredAfterCompletion(t *testing.T) {
	f := NewFlowState(questionIDs(2))
	f.ApplySubmission(nullEntry(1))
	f.ApplySubmission(nullEntry(2))
	assert.Equal(t, PhaseCompleted, f.Phase)

	show := f.ApplySubmission(analyzedEntry(2))

	assert.False(t, show)
	assert.Empty(t, f.Batch)
	assert.Equal(t, PhaseCompleted, f.Phase)
}

func TestCurrentQuestionID(t *testing.T) {
	f := NewFlowState([]uint{7, 8, 9})
	assert.Equal(t, uint(7), f.CurrentQuestionID())

	f.Index = 2
	assert.Equal(t, uint(9), f.CurrentQuestionID())

	f.Index = 3
	assert.Equal(t, uint(0), f.CurrentQuestionID())
}
