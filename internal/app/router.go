package app

import (
	"fitsync_backend/docs"
	"fitsync_backend/internal/config"
	"fitsync_backend/internal/middleware"
	"fitsync_backend/internal/model"
	"fitsync_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
		public.GET("/checkins/factors", c.moodCheckin.Factors)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerUserRoutes(authGroup, c)
		a.registerAssessmentRoutes(authGroup, c)
		a.registerTrackingRoutes(authGroup, c)
		a.registerSocialRoutes(authGroup, c)
	}

	// 管理员相关接口
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerUserRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/users/profile", c.user.GetProfile)
	rg.PUT("/users/profile", c.user.UpdateProfile)
	rg.POST("/users/avatar", c.user.UploadAvatar)

	rg.GET("/reports/weekly", c.report.Weekly)
}

func (a *App) registerAssessmentRoutes(rg *gin.RouterGroup, c *controllers) {
	assessment := rg.Group("/assessment")
	{
		assessment.POST("/generate-daily-questions", c.assessment.GenerateDaily)
		assessment.GET("/daily-status", c.assessment.DailyStatus)
		assessment.GET("/active-questions", c.assessment.GetActiveQuestions)
		assessment.POST("/submit-response", c.assessment.SubmitResponse)
		assessment.POST("/skip", c.assessment.SkipQuestion)
		assessment.POST("/continue", c.assessment.ContinueFlow)
		assessment.GET("/progress", c.assessment.Progress)
		assessment.GET("/history", c.assessment.History)
		assessment.GET("/sentiment-trend", c.assessment.SentimentTrend)
		assessment.GET("/recommendations", c.assessment.Recommendations)
	}
}

func (a *App) registerTrackingRoutes(rg *gin.RouterGroup, c *controllers) {
	foodLogs := rg.Group("/food-logs")
	{
		foodLogs.POST("", c.foodLog.Create)
		foodLogs.GET("", c.foodLog.List)
		foodLogs.GET("/summary", c.foodLog.Summary)
		foodLogs.POST("/image", c.foodLog.UploadImage)
		foodLogs.GET("/:id", c.foodLog.Get)
		foodLogs.PUT("/:id", c.foodLog.Update)
		foodLogs.DELETE("/:id", c.foodLog.Delete)
	}

	rg.GET("/workouts", c.workout.List)
	rg.GET("/workouts/:id", c.workout.Get)

	programs := rg.Group("/programs")
	{
		programs.POST("", c.program.Create)
		programs.GET("", c.program.List)
		programs.POST("/sessions", c.program.CompleteSession)
		programs.GET("/sessions", c.program.Sessions)
		programs.GET("/:id", c.program.Get)
		programs.PUT("/:id", c.program.Update)
		programs.DELETE("/:id", c.program.Delete)
	}

	checkins := rg.Group("/checkins")
	{
		checkins.POST("", c.moodCheckin.Create)
		checkins.GET("/status", c.moodCheckin.Status)
		checkins.GET("/history", c.moodCheckin.History)
	}
}

func (a *App) registerSocialRoutes(rg *gin.RouterGroup, c *controllers) {
	feed := rg.Group("/feed")
	{
		feed.POST("/posts", c.feed.CreatePost)
		feed.GET("/posts", c.feed.ListFeed)
		feed.GET("/posts/:id", c.feed.GetPost)
		feed.PUT("/posts/:id", c.feed.UpdatePost)
		feed.DELETE("/posts/:id", c.feed.DeletePost)
		feed.POST("/posts/:id/comments", c.feed.CreateComment)
		feed.DELETE("/comments/:id", c.feed.DeleteComment)
		feed.POST("/reactions", c.feed.React)
		feed.POST("/votes", c.feed.Vote)
	}

	leaderboard := rg.Group("/leaderboard")
	{
		leaderboard.GET("", c.leaderboard.Top)
		leaderboard.GET("/me", c.leaderboard.MyRank)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.GET("/users", c.user.ListUsers)
		admin.GET("/users/:id", c.user.AdminGetUser)
		admin.PUT("/users/:id", c.user.AdminUpdateUser)
		admin.PUT("/users/:id/disabled", c.user.SetDisabled)
		admin.PUT("/users/:id/password", c.user.ResetPassword)
		admin.DELETE("/users/:id", c.user.DeleteUser)

		admin.POST("/assessment/templates", c.assessment.CreateTemplate)
		admin.GET("/assessment/templates", c.assessment.ListTemplates)
		admin.PUT("/assessment/templates/:id", c.assessment.UpdateTemplate)
		admin.DELETE("/assessment/templates/:id", c.assessment.DeleteTemplate)
		admin.GET("/assessment/submissions", c.assessment.ListSubmissions)

		admin.POST("/workouts", c.workout.Create)
		admin.PUT("/workouts/:id", c.workout.Update)
		admin.DELETE("/workouts/:id", c.workout.Delete)
		admin.POST("/workouts/:id/animation", c.workout.UploadAnimation)

		admin.POST("/leaderboard/recompute", c.leaderboard.Recompute)
	}
}
