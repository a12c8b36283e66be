package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learnhub_backend/internal/config"
	"learnhub_backend/internal/controller"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/service"
	"learnhub_backend/pkg/configwatcher"
	"learnhub_backend/pkg/database"
	"learnhub_backend/pkg/logger"
	"learnhub_backend/pkg/monitoring"
	"learnhub_backend/pkg/security"
	"learnhub_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

type repositories struct {
	user         *repository.UserRepository
	course       *repository.CourseRepository
	module       *repository.ModuleRepository
	enrollment   *repository.EnrollmentRepository
	payment      *repository.PaymentRepository
	quiz         *repository.QuizRepository
	community    *repository.CommunityRepository
	marketplace  *repository.MarketplaceRepository
	notification *repository.NotificationRepository
	transcode    *repository.TranscodeRepository
}

type services struct {
	auth         *service.AuthService
	user         *service.UserService
	course       *service.CourseService
	module       *service.ModuleService
	quiz         *service.QuizService
	enrollment   *service.EnrollmentService
	payment      *service.PaymentService
	notification *service.NotificationService
	community    *service.CommunityService
	marketplace  *service.MarketplaceService
	storage      *service.StorageService
	media        *service.MediaService
	sweep        *service.SweepService
}

type controllers struct {
	auth         *controller.AuthController
	user         *controller.UserController
	course       *controller.CourseController
	module       *controller.ModuleController
	quiz         *controller.QuizController
	enrollment   *controller.EnrollmentController
	payment      *controller.PaymentController
	community    *controller.CommunityController
	marketplace  *controller.MarketplaceController
	notification *controller.NotificationController
	upload       *controller.UploadController
	health       *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		course:       repository.NewCourseRepository(db),
		module:       repository.NewModuleRepository(db),
		enrollment:   repository.NewEnrollmentRepository(db),
		payment:      repository.NewPaymentRepository(db),
		quiz:         repository.NewQuizRepository(db),
		community:    repository.NewCommunityRepository(db, rdb),
		marketplace:  repository.NewMarketplaceRepository(db),
		notification: repository.NewNotificationRepository(db),
		transcode:    repository.NewTranscodeRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	s := &services{}

	storage, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}
	s.storage = storage

	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.notification = service.NewNotificationService(repos.notification, repos.user, cfg)
	s.course = service.NewCourseService(repos.course, rdb)
	s.module = service.NewModuleService(repos.module, repos.course, repos.enrollment, s.notification)
	s.quiz = service.NewQuizService(repos.quiz, repos.module, s.module)
	s.payment = service.NewPaymentService(repos.payment, repos.enrollment, s.notification, cfg)
	s.enrollment = service.NewEnrollmentService(repos.enrollment, repos.course, repos.payment, repos.user, s.payment, s.notification)
	s.community = service.NewCommunityService(repos.community, s.notification)
	s.marketplace = service.NewMarketplaceService(repos.marketplace, s.notification)
	s.media = service.NewMediaService(repos.transcode, repos.module, s.storage)
	s.sweep = service.NewSweepService(repos.enrollment, repos.module, repos.payment, repos.community, s.notification)

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		user:         controller.NewUserController(s.user),
		course:       controller.NewCourseController(s.course),
		module:       controller.NewModuleController(s.module),
		quiz:         controller.NewQuizController(s.quiz),
		enrollment:   controller.NewEnrollmentController(s.enrollment),
		payment:      controller.NewPaymentController(s.payment),
		community:    controller.NewCommunityController(s.community),
		marketplace:  controller.NewMarketplaceController(s.marketplace),
		notification: controller.NewNotificationController(s.notification),
		upload:       controller.NewUploadController(s.storage, s.media, s.module),
		health:       controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	// release 模式默认跳过迁移，除非显式传 -migrate
	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode != "release" || cfg.ForceMigrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb)
	svcs, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	app.services = svcs
	ctrls := app.initControllers(svcs, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("learnhub-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, ctrls, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	svcs.media.Start()
	if err := svcs.sweep.Start(); err != nil {
		logger.Log.Fatal("Failed to start sweep scheduler", zap.Error(err))
	}

	// 配置热更新：目前仅限流和 CORS 之外的轻量项，其余需重启生效
	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		app.Config.RateLimit = newCfg.RateLimit
		app.Config.Mail = newCfg.Mail
		logger.Log.Info("config reloaded")
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

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

	if a.services != nil {
		a.services.media.Stop()
		a.services.sweep.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
