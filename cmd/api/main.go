package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"matchgo-backend/config"
	_ "matchgo-backend/docs" // Important for Swagger
	v1 "matchgo-backend/internal/delivery/http/v1"
	"matchgo-backend/internal/repository/postgres"
	"matchgo-backend/internal/usecase"
	"matchgo-backend/pkg/auth"
	"matchgo-backend/pkg/database"
	"matchgo-backend/pkg/email"
	"matchgo-backend/pkg/logger"
	"matchgo-backend/pkg/monitoring"
	"matchgo-backend/pkg/notify"
	"matchgo-backend/pkg/redis"
	"matchgo-backend/pkg/storage"

	"github.com/go-playground/validator/v10"
)

// @title           Match&Go Assessment API
// @version         1.0
// @description     Application lifecycle and quiz assessment backend.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting assessment backend", "port", cfg.Port)

	// 3. Setup Metrics
	monitoring.Init()

	// 4. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 5. Setup Redis (rate limiting; the middleware falls back to in-memory)
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, rate limiting falls back to in-memory", "error", err)
		}
		defer redis.Close()
	}

	// 6. Setup Document Storage
	var fileStore storage.FileStore
	storageCfg := storage.NewConfigFromEnv()
	if storageCfg.IsConfigured() {
		fileStore, err = storage.NewS3Store(context.Background(), storageCfg)
		if err != nil {
			logger.Log.Error("Failed to initialize document storage", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Log.Warn("Document storage not configured - applications cannot be submitted")
	}

	// 7. Setup Email Service
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - candidate emails will be skipped")
	}

	// 8. Setup Notification Publisher
	var publisher notify.Publisher
	if cfg.RabbitURL != "" {
		publisher, err = notify.NewRabbitPublisher(cfg.RabbitURL, cfg.NotificationQueue)
		if err != nil {
			logger.Log.Warn("RabbitMQ unavailable, notifications will be dropped", "error", err)
			publisher = notify.NewDummy()
		}
	} else {
		publisher = notify.NewDummy()
	}
	defer publisher.Close()

	// 9. Setup Repositories
	offerRepo := postgres.NewOfferRepository(dbPool)
	quizRepo := postgres.NewQuizRepository(dbPool)
	questionRepo := postgres.NewQuestionRepository(dbPool)
	submissionRepo := postgres.NewSubmissionRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	interviewRepo := postgres.NewInterviewRepository(dbPool)

	// 10. Setup UseCases
	validate := validator.New()
	quizUC := usecase.NewQuizUsecase(quizRepo, questionRepo, offerRepo, emailService)
	questionUC := usecase.NewQuestionUsecase(questionRepo, quizRepo, offerRepo)
	submissionUC := usecase.NewSubmissionUsecase(submissionRepo, quizRepo, questionRepo, offerRepo)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, offerRepo, quizRepo, submissionRepo, fileStore, validate)
	interviewUC := usecase.NewInterviewUsecase(interviewRepo, applicationRepo, offerRepo, emailService, publisher)

	// 11. Setup Auth Provider (JWKS)
	jwksProvider := auth.NewProvider(cfg.JWKSUrl)

	// 12. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		QuizUC:        quizUC,
		QuestionUC:    questionUC,
		SubmissionUC:  submissionUC,
		ApplicationUC: applicationUC,
		InterviewUC:   interviewUC,
		FileStore:     fileStore,
		JWKSProvider:  jwksProvider,
		Config:        cfg,
	})

	// 13. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
