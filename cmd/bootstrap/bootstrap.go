package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yashsaxena18/curesight-server/config"
	deliveryHttp "github.com/yashsaxena18/curesight-server/internal/delivery/http"
	"github.com/yashsaxena18/curesight-server/internal/delivery/http/handler"
	"github.com/yashsaxena18/curesight-server/internal/delivery/http/middleware"
	"github.com/yashsaxena18/curesight-server/internal/delivery/ws"
	"github.com/yashsaxena18/curesight-server/internal/infrastructure/cache"
	"github.com/yashsaxena18/curesight-server/internal/infrastructure/database"
	"github.com/yashsaxena18/curesight-server/internal/repository"
	"github.com/yashsaxena18/curesight-server/internal/service"
	"github.com/yashsaxena18/curesight-server/internal/usecase"
	"github.com/yashsaxena18/curesight-server/pkg/jwt"
	"github.com/yashsaxena18/curesight-server/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server

	slotService *service.SlotService
	processor   *service.ScreeningProcessor
	cronService *service.CronService
	hub         *ws.Hub
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	setupLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	app.initialize()

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initialize wires repositories, services, usecases, handlers, and the
// router into the HTTP server.
func (app *App) initialize() {
	cfg := app.Config
	db := app.DB
	redisClient := app.RedisClient
	log := logrus.StandardLogger()

	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()

	// Repositories
	userRepo := repository.NewUserRepository()
	doctorProfileRepo := repository.NewDoctorProfileRepository()
	patientProfileRepo := repository.NewPatientProfileRepository()
	adminProfileRepo := repository.NewAdminProfileRepository()
	scheduleRepo := repository.NewDoctorScheduleRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	prescriptionRepo := repository.NewPrescriptionItemRepository()
	messageRepo := repository.NewMessageRepository()
	dailyLogRepo := repository.NewDailyHealthLogRepository()
	healthRecordRepo := repository.NewHealthRecordRepository()
	screeningRepo := repository.NewScreeningJobRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Services
	auditService := service.NewAuditService(log, auditLogRepo)
	app.slotService = service.NewSlotService(db, redisClient, log)
	analyzer := service.NewAnalyzerClient(cfg.Screening.AnalyzerURL)
	app.processor = service.NewScreeningProcessor(db, log, screeningRepo, redisClient, analyzer, cfg.Screening)
	app.hub = ws.NewHub(log)
	app.cronService = service.NewCronService(db, log, appointmentRepo, app.hub, app.processor)

	// Usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, doctorProfileRepo, patientProfileRepo, auditService, jwtService, redisClient)
	doctorProfileUsecase := usecase.NewDoctorProfileUsecase(db, log, doctorProfileRepo)
	verificationUsecase := usecase.NewDoctorVerificationUsecase(db, log, doctorProfileRepo, adminProfileRepo, auditService)
	scheduleUsecase := usecase.NewDoctorScheduleUsecase(db, log, scheduleRepo, doctorProfileRepo, app.slotService, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, appointmentRepo, prescriptionRepo, scheduleRepo, app.slotService, auditService)
	messageUsecase := usecase.NewMessageUsecase(db, log, messageRepo, userRepo, app.hub)
	healthUsecase := usecase.NewHealthUsecase(db, log, dailyLogRepo, healthRecordRepo)
	screeningUsecase := usecase.NewScreeningUsecase(db, log, cfg.Screening, screeningRepo, app.processor, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// The hub persists chat frames through the message usecase
	if saver, ok := messageUsecase.(ws.ChatSaver); ok {
		app.hub.SetChatSaver(saver)
	}

	// Handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	doctorHandler := handler.NewDoctorHandler(doctorProfileUsecase, verificationUsecase, customValidator)
	scheduleHandler := handler.NewDoctorScheduleHandler(scheduleUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	messageHandler := handler.NewMessageHandler(messageUsecase, customValidator)
	healthHandler := handler.NewHealthHandler(healthUsecase, customValidator)
	screeningHandler := handler.NewScreeningHandler(screeningUsecase)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)
	wsHandler := handler.NewWSHandler(app.hub)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	router := deliveryHttp.NewRouter(
		authHandler, doctorHandler, scheduleHandler, appointmentHandler,
		messageHandler, healthHandler, screeningHandler, auditLogHandler,
		wsHandler, authMiddleware, corsMiddleware,
	)

	app.Server = &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.App.Port),
		Handler: router.Setup(),
	}
}

// Run starts background services and the HTTP server, then blocks until
// shutdown.
func (app *App) Run() {
	// Rebuild Redis slot quotas from the DB before taking traffic
	syncCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	if err := app.slotService.SyncOnStartup(syncCtx); err != nil {
		logrus.Errorf("Failed to sync slot quotas from DB: %v", err)
	}
	cancel()

	app.processor.Start()
	app.cronService.Start()

	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	app.cronService.Stop()
	app.processor.Stop()
	app.slotService.Stop()

	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
