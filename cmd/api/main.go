package main

import (
	"context"
	"go-interview-backend/config"
	_ "go-interview-backend/docs" // Important for Swagger
	v1 "go-interview-backend/internal/delivery/http/v1"
	"go-interview-backend/internal/evaluator"
	"go-interview-backend/internal/repository/postgres"
	"go-interview-backend/internal/usecase"
	"go-interview-backend/pkg/database"
	"go-interview-backend/pkg/logger"
	"go-interview-backend/pkg/redis"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	goredis "github.com/redis/go-redis/v9"
)

// @title           Interview Backend API
// @version         1.0
// @description     AI-assisted mock interview backend using Clean Architecture.
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
	logger.Log.Info("Starting interview backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional, stats cache only)
	var cache *goredis.Client
	if cfg.RedisURL != "" {
		cache, err = redis.NewClient(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
		if err != nil {
			logger.Log.Warn("Redis unavailable, stats caching disabled", "error", err)
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	// 5. Setup Repositories
	interviewRepo := postgres.NewInterviewRepository(dbPool)
	userRepo := postgres.NewUserRepository(dbPool)

	// 6. Setup Evaluator Gateway
	openaiClient := evaluator.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
	gateway := evaluator.New(openaiClient, evaluator.Config{
		Model:           cfg.OpenAIModel,
		MaxRetries:      cfg.OpenAIMaxRetries,
		Timeout:         time.Duration(cfg.OpenAITimeoutSecs) * time.Second,
		MinAnswerLength: cfg.MinAnswerLength,
	})

	// 7. Setup UseCases
	validate := validator.New()
	interviewUC := usecase.NewInterviewUsecase(interviewRepo, userRepo, gateway, logger.Log)
	userUC := usecase.NewUserUsecase(userRepo, validate)
	statsUC := usecase.NewStatsUsecase(interviewRepo, cache, time.Duration(cfg.StatsCacheTTLSecs)*time.Second, logger.Log)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		InterviewUC: interviewUC,
		UserUC:      userUC,
		StatsUC:     statsUC,
		Cache:       cache,
		Config:      cfg,
	})

	// 9. Start Server
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
