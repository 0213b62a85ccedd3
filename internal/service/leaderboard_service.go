package service

import (
	"context"
	"fmt"
	"time"

	"fitsync_backend/internal/model"
	"fitsync_backend/internal/repository"
	"fitsync_backend/internal/util"
	"fitsync_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type LeaderboardService struct {
	Repo        *repository.LeaderboardRepository
	UserRepo    *repository.UserRepository
	FoodRepo    *repository.FoodLogRepository
	ProgramRepo *repository.ProgramRepository
	RDB         *redis.Client
}

func NewLeaderboardService(
	repo *repository.LeaderboardRepository,
	userRepo *repository.UserRepository,
	foodRepo *repository.FoodLogRepository,
	programRepo *repository.ProgramRepository,
	rdb *redis.Client,
) *LeaderboardService {
	return &LeaderboardService{
		Repo:        repo,
		UserRepo:    userRepo,
		FoodRepo:    foodRepo,
		ProgramRepo: programRepo,
		RDB:         rdb,
	}
}

func leaderboardKey(period, metric string) string {
	return fmt.Sprintf("leaderboard:%s:%s", period, metric)
}

// weekStart 本周周一零点
func weekStart(now time.Time) time.Time {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekday := int(start.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return start.AddDate(0, 0, -(weekday - 1))
}

// RecomputeAll 重算全部用户的聚合统计并刷新 Redis 有序集合
func (s *LeaderboardService) RecomputeAll(ctx context.Context) error {
	users, err := s.UserRepo.ListAll()
	if err != nil {
		return err
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	wkStart := weekStart(now)

	pipe := s.RDB.Pipeline()
	for _, period := range model.LeaderboardPeriods {
		for _, metric := range model.LeaderboardMetrics {
			pipe.Del(ctx, leaderboardKey(period, metric))
		}
	}

	for _, user := range users {
		daily, err := s.periodStats(user.ID, dayStart, now)
		if err != nil {
			return err
		}
		weekly, err := s.periodStats(user.ID, wkStart, now)
		if err != nil {
			return err
		}

		stats := &model.LeaderboardStats{
			UserID:       user.ID,
			Gender:       user.Gender,
			AgeGroup:     user.AgeGroup(),
			FitnessLevel: user.FitnessLevel,
			Region:       user.Region,
			DailyDate:    dayStart,
			Daily:        *daily,
			WeekStart:    wkStart,
			Weekly:       *weekly,
		}
		if err := s.Repo.Upsert(stats); err != nil {
			return err
		}

		member := fmt.Sprintf("%d", user.ID)
		for period, ps := range map[string]*model.PeriodStats{"daily": daily, "weekly": weekly} {
			metricValues := map[string]float64{
				"calories_burned":    ps.CaloriesBurned,
				"activity_minutes":   ps.ActivityMinutes,
				"meals_logged":       float64(ps.MealsLogged),
				"workouts_completed": float64(ps.WorkoutsCompleted),
			}
			for metric, score := range metricValues {
				pipe.ZAdd(ctx, leaderboardKey(period, metric), &redis.Z{Score: score, Member: member})
			}
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}
	logger.Log.Info("排行榜重算完成", zap.Int("users", len(users)))
	return nil
}

func (s *LeaderboardService) periodStats(userID uint, from, to time.Time) (*model.PeriodStats, error) {
	food, err := s.FoodRepo.TotalsBetween(userID, from, to)
	if err != nil {
		return nil, err
	}
	sessions, err := s.ProgramRepo.SessionTotalsBetween(userID, from, to)
	if err != nil {
		return nil, err
	}

	return &model.PeriodStats{
		CaloriesConsumed:  food.Calories,
		CaloriesBurned:    sessions.CaloriesBurned,
		NetCalories:       food.Calories - sessions.CaloriesBurned,
		ActivityMinutes:   sessions.ActivityMinutes,
		MealsLogged:       int(food.Meals),
		WorkoutsCompleted: int(sessions.Workouts),
	}, nil
}

// StartScheduler 启动后台重算任务，ctx 取消时退出
func (s *LeaderboardService) StartScheduler(ctx context.Context, interval time.Duration) {
	go func() {
		if err := s.RecomputeAll(ctx); err != nil {
			logger.Log.Error("排行榜初始重算失败", zap.Error(err))
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.RecomputeAll(ctx); err != nil {
					logger.Log.Error("排行榜重算失败", zap.Error(err))
				}
			}
		}
	}()
}

// LeaderboardEntry 榜单条目
type LeaderboardEntry struct {
	Rank     int     `json:"rank"`
	UserID   uint    `json:"userId"`
	Username string  `json:"username"`
	Avatar   string  `json:"avatar"`
	Score    float64 `json:"score"`
}

func validPeriodMetric(period, metric string) bool {
	okPeriod, okMetric := false, false
	for _, p := range model.LeaderboardPeriods {
		if p == period {
			okPeriod = true
		}
	}
	for _, m := range model.LeaderboardMetrics {
		if m == metric {
			okMetric = true
		}
	}
	return okPeriod && okMetric
}

// Top 读取榜单前 limit 名并补全用户名
func (s *LeaderboardService) Top(ctx context.Context, period, metric string, limit int) ([]LeaderboardEntry, error) {
	if !validPeriodMetric(period, metric) {
		return nil, fmt.Errorf("invalid leaderboard period %q or metric %q", period, metric)
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	zs, err := s.RDB.ZRevRangeWithScores(ctx, leaderboardKey(period, metric), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(zs))
	ids := make([]uint, 0, len(zs))
	for _, z := range zs {
		id := util.MustParseUint(fmt.Sprintf("%v", z.Member))
		ids = append(ids, id)
	}

	userByID := make(map[uint]model.User, len(ids))
	if len(ids) > 0 {
		stats, err := s.Repo.FindByUsers(ids)
		if err != nil {
			return nil, err
		}
		for _, st := range stats {
			if st.User != nil {
				userByID[st.UserID] = *st.User
			}
		}
	}

	for i, z := range zs {
		entry := LeaderboardEntry{
			Rank:   i + 1,
			UserID: ids[i],
			Score:  z.Score,
		}
		if u, ok := userByID[ids[i]]; ok {
			entry.Username = u.Username
			entry.Avatar = u.Avatar
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// MyRankResult 当前用户的排名
type MyRankResult struct {
	Rank  int64   `json:"rank"`
	Score float64 `json:"score"`
	Total int64   `json:"total"`
}

func (s *LeaderboardService) MyRank(ctx context.Context, userID uint, period, metric string) (*MyRankResult, error) {
	if !validPeriodMetric(period, metric) {
		return nil, fmt.Errorf("invalid leaderboard period %q or metric %q", period, metric)
	}

	key := leaderboardKey(period, metric)
	member := fmt.Sprintf("%d", userID)

	rank, err := s.RDB.ZRevRank(ctx, key, member).Result()
	if err == redis.Nil {
		return &MyRankResult{Rank: -1}, nil
	}
	if err != nil {
		return nil, err
	}
	score, err := s.RDB.ZScore(ctx, key, member).Result()
	if err != nil {
		return nil, err
	}
	total, err := s.RDB.ZCard(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	return &MyRankResult{Rank: rank + 1, Score: score, Total: total}, nil
}
