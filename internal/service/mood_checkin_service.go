package service

import (
	"encoding/json"
	"sort"
	"time"

	"fitsync_backend/internal/model"
	"fitsync_backend/internal/repository"
	"fitsync_backend/internal/util"
)

type MoodCheckinService struct {
	Repo *repository.MoodCheckinRepository
}

func NewMoodCheckinService(repo *repository.MoodCheckinRepository) *MoodCheckinService {
	return &MoodCheckinService{Repo: repo}
}

type CheckinInput struct {
	MoodValue int      `json:"moodValue" binding:"required,min=1,max=5"`
	Factors   []string `json:"factors"`
	Notes     string   `json:"notes" binding:"max=200"`
}

// Create 当前时段打卡，同一时段重复打卡返回冲突
func (s *MoodCheckinService) Create(userID uint, input CheckinInput) (*model.MoodCheckin, error) {
	now := time.Now()
	period := model.CurrentPeriod(now)
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	exists, err := s.Repo.ExistsForPeriod(userID, date, period)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrCheckinExists
	}

	mood := model.MoodLabels[input.MoodValue]
	c := &model.MoodCheckin{
		UserID:      userID,
		MoodValue:   input.MoodValue,
		MoodEmoji:   mood.Emoji,
		MoodLabel:   mood.Label,
		CheckinType: period,
		Notes:       input.Notes,
		Date:        date,
	}
	if len(input.Factors) > 0 {
		valid := make(map[string]bool, len(model.ContributingFactors))
		for _, f := range model.ContributingFactors {
			valid[f] = true
		}
		var factors []string
		for _, f := range input.Factors {
			if valid[f] {
				factors = append(factors, f)
			}
		}
		if len(factors) > 0 {
			c.Factors, _ = json.Marshal(factors)
		}
	}

	if err := s.Repo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *MoodCheckinService) Today(userID uint) ([]model.MoodCheckin, error) {
	now := time.Now()
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.Repo.ListByDate(userID, date)
}

// CheckinStatus 今日打卡状态
type CheckinStatus struct {
	CompletedTypes []model.CheckinPeriod `json:"completedTypes"`
	CurrentPeriod  model.CheckinPeriod   `json:"currentPeriod"`
	IsDue          bool                  `json:"isDue"`
	TotalCompleted int                   `json:"totalCompleted"`
	Checkins       []model.MoodCheckin   `json:"checkins"`
}

func (s *MoodCheckinService) Status(userID uint) (*CheckinStatus, error) {
	checkins, err := s.Today(userID)
	if err != nil {
		return nil, err
	}

	current := model.CurrentPeriod(time.Now())
	completed := make([]model.CheckinPeriod, 0, len(checkins))
	currentDone := false
	for _, c := range checkins {
		completed = append(completed, c.CheckinType)
		if c.CheckinType == current {
			currentDone = true
		}
	}

	return &CheckinStatus{
		CompletedTypes: completed,
		CurrentPeriod:  current,
		IsDue:          !currentDone,
		TotalCompleted: len(checkins),
		Checkins:       checkins,
	}, nil
}

// MoodHistory 一段时间的打卡历史与统计
type MoodHistory struct {
	Checkins    []model.MoodCheckin `json:"checkins"`
	AverageMood float64             `json:"averageMood"`
	TopFactors  []string            `json:"topFactors"`
}

func (s *MoodCheckinService) History(userID uint, days int) (*MoodHistory, error) {
	since := time.Now().AddDate(0, 0, -days)
	checkins, err := s.Repo.History(userID, since)
	if err != nil {
		return nil, err
	}

	result := &MoodHistory{Checkins: checkins}
	if len(checkins) == 0 {
		return result, nil
	}

	var sum float64
	factorCounts := make(map[string]int)
	for _, c := range checkins {
		sum += float64(c.MoodValue)
		if len(c.Factors) > 0 {
			var factors []string
			if err := json.Unmarshal(c.Factors, &factors); err == nil {
				for _, f := range factors {
					factorCounts[f]++
				}
			}
		}
	}
	result.AverageMood = sum / float64(len(checkins))

	type fc struct {
		factor string
		count  int
	}
	var ranked []fc
	for f, n := range factorCounts {
		ranked = append(ranked, fc{f, n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].factor < ranked[j].factor
	})
	for i, r := range ranked {
		if i >= 3 {
			break
		}
		result.TopFactors = append(result.TopFactors, r.factor)
	}
	return result, nil
}
