package service

import (
	"encoding/json"
	"errors"
	"time"

	"fitsync_backend/internal/model"
	"fitsync_backend/internal/repository"
	"fitsync_backend/internal/util"

	"gorm.io/gorm"
)

type ProgramService struct {
	Repo        *repository.ProgramRepository
	WorkoutRepo *repository.WorkoutRepository
}

func NewProgramService(repo *repository.ProgramRepository, workoutRepo *repository.WorkoutRepository) *ProgramService {
	return &ProgramService{Repo: repo, WorkoutRepo: workoutRepo}
}

type ProgramInput struct {
	Name          string                  `json:"name" binding:"required"`
	Description   string                  `json:"description"`
	GroupID       *uint                   `json:"groupId"`
	Workouts      []model.ProgramWorkout  `json:"workouts"`
	GeoActivities []model.GeoActivityPref `json:"geoActivities"`
}

func (s *ProgramService) Create(userID uint, input ProgramInput) (*model.Program, error) {
	// 校验引用的动作存在
	for _, pw := range input.Workouts {
		if _, err := s.WorkoutRepo.FindByID(pw.WorkoutID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrWorkoutNotFound
			}
			return nil, err
		}
	}

	p := &model.Program{
		UserID:      userID,
		GroupID:     input.GroupID,
		Name:        input.Name,
		Description: input.Description,
	}
	if len(input.Workouts) > 0 {
		p.Workouts, _ = json.Marshal(input.Workouts)
	}
	if len(input.GeoActivities) > 0 {
		p.GeoActivities, _ = json.Marshal(input.GeoActivities)
	}
	if err := s.Repo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProgramService) findOwned(userID, programID uint) (*model.Program, error) {
	p, err := s.Repo.FindByID(programID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProgramNotFound
		}
		return nil, err
	}
	if p.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return p, nil
}

func (s *ProgramService) Get(userID, programID uint) (*model.Program, error) {
	return s.findOwned(userID, programID)
}

func (s *ProgramService) Update(userID, programID uint, input ProgramInput) (*model.Program, error) {
	p, err := s.findOwned(userID, programID)
	if err != nil {
		return nil, err
	}
	p.Name = input.Name
	p.Description = input.Description
	p.GroupID = input.GroupID
	if len(input.Workouts) > 0 {
		p.Workouts, _ = json.Marshal(input.Workouts)
	}
	if len(input.GeoActivities) > 0 {
		p.GeoActivities, _ = json.Marshal(input.GeoActivities)
	}
	if err := s.Repo.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProgramService) Delete(userID, programID uint) error {
	p, err := s.findOwned(userID, programID)
	if err != nil {
		return err
	}
	return s.Repo.Delete(p.ID)
}

func (s *ProgramService) List(userID uint) ([]model.Program, error) {
	return s.Repo.ListByUser(userID)
}

type CompleteSessionInput struct {
	ProgramID       uint    `json:"programId" binding:"required"`
	DurationMinutes float64 `json:"durationMinutes" binding:"gte=0"`
	CaloriesBurned  float64 `json:"caloriesBurned" binding:"gte=0"`
	Notes           string  `json:"notes"`
}

// CompleteSession 记录一次完成的训练
func (s *ProgramService) CompleteSession(userID uint, input CompleteSessionInput) (*model.ProgramSession, error) {
	if _, err := s.findOwned(userID, input.ProgramID); err != nil {
		return nil, err
	}

	session := &model.ProgramSession{
		UserID:          userID,
		ProgramID:       input.ProgramID,
		DurationMinutes: input.DurationMinutes,
		CaloriesBurned:  input.CaloriesBurned,
		CompletedAt:     time.Now(),
		Notes:           input.Notes,
	}
	if err := s.Repo.CreateSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *ProgramService) Sessions(userID uint, days int) ([]model.ProgramSession, error) {
	to := time.Now()
	from := to.AddDate(0, 0, -days)
	return s.Repo.SessionsBetween(userID, from, to)
}
