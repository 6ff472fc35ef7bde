package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gary-picks-engine/internal/worker/config"
	"gary-picks-engine/internal/worker/delivery/consumer"
	"gary-picks-engine/internal/worker/repository"
	"gary-picks-engine/internal/worker/resolver"
	"gary-picks-engine/internal/worker/service"
	"gary-picks-engine/internal/worker/strategy"
	"gary-picks-engine/pkg/common"
	"gary-picks-engine/pkg/decoder"
	"gary-picks-engine/pkg/logger"
	"gary-picks-engine/pkg/postgres"
	"gary-picks-engine/pkg/redis"
	"gary-picks-engine/pkg/telegram"

	"google.golang.org/genai"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configPath string

// statConfidenceFloor is the minimum confidence an LLM stat answer must carry
// before a prop is graded from it.
const statConfidenceFloor = 0.7

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the worker service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

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

	appLogger.Info("Starting Worker Service", zap.String("name", cfg.App.Name))

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
		appLogger.Fatal("Failed to initialize database", zap.Error(err))
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
		appLogger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Create the consumer groups if they don't exist
	// MKSTREAM creates the stream if it doesn't exist
	if err := redisClient.XGroupCreateMkStream(context.Background(), common.RedisStreamSchedulerTaskExecution, common.RedisStreamGroup, "0").Err(); err != nil {
		if err.Error() != "BUSYGROUP Consumer Group name already exists" {
			appLogger.Fatal("Failed to create consumer group", logger.ErrorField(err))
		}
	}
	if err := redisClient.XGroupCreateMkStream(context.Background(), common.RedisStreamPickGeneration, common.RedisStreamGroup, "0").Err(); err != nil {
		if err.Error() != "BUSYGROUP Consumer Group name already exists" {
			appLogger.Fatal("Failed to create consumer group", logger.ErrorField(err))
		}
	}
	if err := redisClient.XGroupCreateMkStream(context.Background(), common.RedisStreamPropResults, common.RedisStreamGroup, "0").Err(); err != nil {
		if err.Error() != "BUSYGROUP Consumer Group name already exists" {
			appLogger.Fatal("Failed to create consumer group", logger.ErrorField(err))
		}
	}

	// Initialize repositories
	jobRepo := repository.NewJobRepository(db.DB)
	jobRunRepo := repository.NewJobRunRepository(db.DB)
	pickRepo := repository.NewPickRepository(db.DB)
	propPickRepo := repository.NewPropPickRepository(db.DB)
	decisionRepo := repository.NewUserDecisionRepository(db.DB)
	statsRepo := repository.NewUserStatsRepository(db.DB)
	wagerRepo := repository.NewWagerRepository(db.DB)
	notificationRepo := repository.NewNotificationRepository(db.DB)
	teamRepo := repository.NewTeamRepository(db.DB)
	teamNewsRepo := repository.NewTeamNewsRepository(db.DB)
	newsSummaryRepo := repository.NewNewsSummaryRepository(db.DB)

	oddsRepo := repository.NewOddsAPIRepository(cfg, appLogger)
	scoreboardRepo := repository.NewESPNRepository(cfg, appLogger)
	ballDontLieRepo := repository.NewBallDontLieRepository(cfg, appLogger)
	sportsDBRepo := repository.NewSportsDBRepository(cfg, appLogger)

	// Initialize AI providers. OpenAI and Perplexity always back the stat
	// resolver chain; the primary provider drives generation and analysis.
	openAIRepo := repository.NewOpenAIRepository(cfg, appLogger)
	perplexityRepo := repository.NewPerplexityRepository(cfg, appLogger)

	var aiRepo repository.AIRepository
	switch cfg.AI.Provider {
	case "openai":
		aiRepo = openAIRepo
	case "perplexity":
		aiRepo = perplexityRepo
	case "gemini":
		genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey: cfg.Gemini.APIKey,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI client", zap.Error(err))
		}
		repo, err := repository.NewGeminiAIRepository(cfg, appLogger, genAiClient)
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI repository", zap.Error(err))
		}
		aiRepo = repo
	default:
		appLogger.Fatal("Invalid AI provider specified in config", zap.String("provider", cfg.AI.Provider))
	}

	telegramNotifier, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if err != nil {
		appLogger.Fatal("Failed to initialize Telegram notifier", zap.Error(err))
	}

	// Initialize decoder
	googleDecoder := decoder.NewGoogleDecoder(appLogger)

	// Build the stat resolver chain. TheSportsDB gates on game completion,
	// box scores answer first, LLM providers cover the rest.
	statResolver := resolver.NewResolver(
		appLogger,
		sportsDBRepo,
		resolver.NewBoxScoreProvider(ballDontLieRepo),
		resolver.NewLLMProvider("perplexity", perplexityRepo, statConfidenceFloor),
		resolver.NewLLMProvider("openai", openAIRepo, statConfidenceFloor),
	)

	// Initialize Strategies
	strategies := []strategy.JobExecutionStrategy{
		strategy.NewHTTPStrategy(appLogger),
		strategy.NewPickGenerationStrategy(appLogger, redisClient),
		strategy.NewPropGenerationStrategy(
			appLogger,
			oddsRepo,
			newsSummaryRepo,
			propPickRepo,
			aiRepo,
			cfg.AI.Provider,
		),
		strategy.NewResultsCheckStrategy(
			appLogger,
			pickRepo,
			decisionRepo,
			statsRepo,
			wagerRepo,
			notificationRepo,
			scoreboardRepo,
			sportsDBRepo,
			telegramNotifier,
		),
		strategy.NewPropResultsStrategy(appLogger, redisClient, propPickRepo),
		strategy.NewTeamNewsScraperStrategy(
			cfg,
			appLogger,
			googleDecoder,
			teamRepo,
			teamNewsRepo,
			aiRepo,
		),
		strategy.NewNewsSummaryStrategy(
			appLogger,
			teamRepo,
			teamNewsRepo,
			newsSummaryRepo,
			aiRepo,
		),
	}

	// Initialize services
	executorSvc := service.NewExecutorService(redisClient.Client, jobRepo, jobRunRepo, appLogger, strategies)
	pickGenerationSvc := service.NewPickGenerationService(cfg, appLogger, redisClient.Client, oddsRepo, newsSummaryRepo, pickRepo, aiRepo, cfg.AI.Provider, telegramNotifier)
	propResultsSvc := service.NewPropResultsService(cfg, appLogger, redisClient.Client, propPickRepo, statResolver, telegramNotifier)

	// Initialize and start the Redis consumer
	redisConsumer := consumer.NewRedisConsumer(cfg, redisClient.Client, executorSvc, pickGenerationSvc, propResultsSvc, appLogger)
	redisConsumer.Start(ctx)

	appLogger.Info("Worker service started. Waiting for tasks...")

	// Wait for interrupt signal to gracefully shut down the service
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down worker service...")
	cancel()
	redisConsumer.Stop()
	appLogger.Info("Worker service stopped.")
}

func main() {
	rootCmd := &cobra.Command{Use: "worker-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-worker.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing worker-service CLI: %s\n", err)
		os.Exit(1)
	}
}
