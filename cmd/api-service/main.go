package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gary-picks-engine/internal/api/config"
	delivery "gary-picks-engine/internal/api/delivery/http"
	_ "gary-picks-engine/internal/api/docs"
	"gary-picks-engine/internal/api/repository"
	"gary-picks-engine/internal/api/service"
	"gary-picks-engine/pkg/logger"
	"gary-picks-engine/pkg/postgres"
	"gary-picks-engine/pkg/redis"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the API service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting API Service", logger.Field("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		TimeZone:        cfg.Database.TimeZone,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Database.LogLevel,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize Redis
	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	// Initialize repositories
	jobRepo := repository.NewJobRepository(db.DB)
	scheduleRepo := repository.NewJobScheduleRepository(db.DB)
	runRepo := repository.NewJobRunRepository(db.DB)
	pickRepo := repository.NewPickRepository(db.DB)
	decisionRepo := repository.NewUserDecisionRepository(db.DB)
	statsRepo := repository.NewUserStatsRepository(db.DB)
	subscriptionRepo := repository.NewSubscriptionRepository(db.DB)
	webhookEventRepo := repository.NewWebhookEventRepository(db.DB)
	notificationRepo := repository.NewNotificationRepository(db.DB)

	// Initialize services
	pollingInterval, err := time.ParseDuration(cfg.Scheduler.PollingInterval)
	if err != nil {
		appLogger.Fatal("Invalid polling interval", logger.ErrorField(err))
	}
	schedulerSvc := service.NewSchedulerService(jobRepo, scheduleRepo, runRepo, redisClient.Client, appLogger, pollingInterval, cfg)
	jobSvc := service.NewJobService(jobRepo, appLogger)
	scheduleSvc := service.NewScheduleService(scheduleRepo, appLogger)
	runSvc := service.NewJobRunService(runRepo, appLogger)
	pickSvc := service.NewPickService(pickRepo, appLogger)
	decisionSvc := service.NewDecisionService(decisionRepo, pickRepo, appLogger)
	statsSvc := service.NewStatsService(statsRepo, appLogger)
	billingSvc := service.NewBillingService(subscriptionRepo, webhookEventRepo, cfg, appLogger)
	notificationSvc := service.NewNotificationService(notificationRepo, appLogger)

	// Start scheduler service
	go schedulerSvc.Start(ctx)

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	// Initialize handlers and routes
	apiV1 := e.Group("/api/v1")

	jobHandler := delivery.NewJobHandler(jobSvc, appLogger)
	jobsGroup := apiV1.Group("/jobs")
	jobHandler.RegisterRoutes(jobsGroup)

	scheduleHandler := delivery.NewScheduleHandler(scheduleSvc, appLogger)
	schedulesGroup := apiV1.Group("/schedules")
	scheduleHandler.RegisterRoutes(schedulesGroup)

	runHandler := delivery.NewJobRunHandler(runSvc, appLogger)
	runsGroup := apiV1.Group("/runs")
	runHandler.RegisterRoutes(runsGroup)
	runHandler.RegisterJobRoutes(jobsGroup)

	pickHandler := delivery.NewPickHandler(pickSvc, appLogger)
	picksGroup := apiV1.Group("/picks")
	pickHandler.RegisterRoutes(picksGroup)

	decisionHandler := delivery.NewDecisionHandler(decisionSvc, appLogger)
	decisionsGroup := apiV1.Group("/decisions")
	decisionHandler.RegisterRoutes(decisionsGroup)

	statsHandler := delivery.NewStatsHandler(statsSvc, appLogger)
	statsGroup := apiV1.Group("/stats")
	statsHandler.RegisterRoutes(statsGroup)

	billingHandler := delivery.NewBillingHandler(billingSvc, appLogger)
	billingGroup := apiV1.Group("/billing")
	billingHandler.RegisterRoutes(billingGroup)

	notificationHandler := delivery.NewNotificationHandler(notificationSvc, appLogger)
	notificationsGroup := apiV1.Group("/notifications")
	notificationHandler.RegisterRoutes(notificationsGroup)

	e.GET("/swagger/*", swagger.WrapHandler)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// @title Gary Picks Engine API
// @version 1.0
// @description API for AI-generated betting picks, user decisions, stats, and billing.
// @termsOfService http://swagger.io/terms/
// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "api-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-api.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing api-service CLI: %s\n", err)
		os.Exit(1)
	}
}
