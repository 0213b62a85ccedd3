package app

import (
	"testing"

	"fitsync_backend/internal/config"
	"fitsync_backend/internal/controller"
	"fitsync_backend/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func registeredRoutes() map[string]bool {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	a := &App{}
	c := &controllers{
		auth:        &controller.AuthController{},
		user:        &controller.UserController{},
		assessment:  &controller.AssessmentController{},
		foodLog:     &controller.FoodLogController{},
		workout:     &controller.WorkoutController{},
		program:     &controller.ProgramController{},
		feed:        &controller.FeedController{},
		moodCheckin: &controller.MoodCheckinController{},
		leaderboard: &controller.LeaderboardController{},
		report:      &controller.ReportController{},
		health:      &controller.HealthController{},
	}
	repos := &repositories{user: &repository.UserRepository{}}
	a.registerRoutes(router, c, repos, &config.Config{})

	routes := make(map[string]bool)
	for _, r := range router.Routes() {
		routes[r.Method+" "+r.Path] = true
	}
	return routes
}

func TestAssessmentRoutePaths(t *testing.T) {
	routes := registeredRoutes()

	for _, want := range []string{
		"POST /api/assessment/generate-daily-questions",
		"GET /api/assessment/active-questions",
		"GET /api/assessment/daily-status",
		"POST /api/assessment/submit-response",
		"POST /api/assessment/skip",
		"POST /api/assessment/continue",
		"GET /api/assessment/progress",
		"GET /api/assessment/history",
		"GET /api/assessment/sentiment-trend",
		"GET /api/assessment/recommendations",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}
}

func TestAdminUserRoutePaths(t *testing.T) {
	routes := registeredRoutes()

	for _, want := range []string{
		"GET /api/admin/users",
		"GET /api/admin/users/:id",
		"PUT /api/admin/users/:id",
		"PUT /api/admin/users/:id/disabled",
		"PUT /api/admin/users/:id/password",
		"DELETE /api/admin/users/:id",
	} {
		assert.True(t, routes[want], "missing route %s", want)
	}
}
