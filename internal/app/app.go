package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitsync_backend/internal/config"
	"fitsync_backend/internal/controller"
	"fitsync_backend/internal/repository"
	"fitsync_backend/internal/service"
	"fitsync_backend/pkg/database"
	"fitsync_backend/pkg/logger"
	"fitsync_backend/pkg/monitoring"
	"fitsync_backend/pkg/security"
	"fitsync_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	cancelTasks     context.CancelFunc
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user        *repository.UserRepository
	assessment  *repository.AssessmentRepository
	foodLog     *repository.FoodLogRepository
	workout     *repository.WorkoutRepository
	program     *repository.ProgramRepository
	feed        *repository.FeedRepository
	moodCheckin *repository.MoodCheckinRepository
	leaderboard *repository.LeaderboardRepository
}

type services struct {
	auth        *service.AuthService
	storage     *service.StorageService
	user        *service.UserService
	sentiment   *service.SentimentService
	assessment  *service.AssessmentService
	foodLog     *service.FoodLogService
	workout     *service.WorkoutService
	program     *service.ProgramService
	feed        *service.FeedService
	moodCheckin *service.MoodCheckinService
	leaderboard *service.LeaderboardService
	report      *service.ReportService
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	assessment  *controller.AssessmentController
	foodLog     *controller.FoodLogController
	workout     *controller.WorkoutController
	program     *controller.ProgramController
	feed        *controller.FeedController
	moodCheckin *controller.MoodCheckinController
	leaderboard *controller.LeaderboardController
	report      *controller.ReportController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		assessment:  repository.NewAssessmentRepository(db),
		foodLog:     repository.NewFoodLogRepository(db),
		workout:     repository.NewWorkoutRepository(db),
		program:     repository.NewProgramRepository(db),
		feed:        repository.NewFeedRepository(db),
		moodCheckin: repository.NewMoodCheckinRepository(db),
		leaderboard: repository.NewLeaderboardRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg.JWT)
	s.user = service.NewUserService(repos.user, s.storage)
	s.sentiment = service.NewSentimentService(cfg.Analysis)
	s.assessment = service.NewAssessmentService(repos.assessment, repos.user, s.sentiment, service.NewFlowStore(rdb))
	s.foodLog = service.NewFoodLogService(repos.foodLog, s.storage)
	s.workout = service.NewWorkoutService(repos.workout, s.storage)
	s.program = service.NewProgramService(repos.program, repos.workout)
	s.feed = service.NewFeedService(repos.feed, rdb)
	s.moodCheckin = service.NewMoodCheckinService(repos.moodCheckin)
	s.leaderboard = service.NewLeaderboardService(repos.leaderboard, repos.user, repos.foodLog, repos.program, rdb)
	s.report = service.NewReportService(repos.user, repos.foodLog, repos.program, repos.moodCheckin, repos.assessment)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		user:        controller.NewUserController(s.user),
		assessment:  controller.NewAssessmentController(s.assessment),
		foodLog:     controller.NewFoodLogController(s.foodLog),
		workout:     controller.NewWorkoutController(s.workout),
		program:     controller.NewProgramController(s.program),
		feed:        controller.NewFeedController(s.feed),
		moodCheckin: controller.NewMoodCheckinController(s.moodCheckin),
		leaderboard: controller.NewLeaderboardController(s.leaderboard),
		report:      controller.NewReportController(s.report),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 6000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startBackgroundTasks(ctx context.Context, s *services) {
	// 排行榜定时重算
	s.leaderboard.StartScheduler(ctx, 10*time.Minute)
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("fitsync-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
		router.Static("/api/uploads", cfg.Storage.LocalPath)
	}

	tasksCtx, cancel := context.WithCancel(context.Background())
	app.cancelTasks = cancel
	app.startBackgroundTasks(tasksCtx, services)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// 停掉后台任务
	if a.cancelTasks != nil {
		a.cancelTasks()
	}

	// 关闭服务
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
