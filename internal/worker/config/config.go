package config

import (
	"time"

	"gary-picks-engine/pkg/config"
)

// Executor holds worker-specific stream consumption configuration.
type Executor struct {
	MaxConcurrentTasks              int           `mapstructure:"max_concurrent_tasks"`
	RedisStreamTaskExecutionTimeout time.Duration `mapstructure:"redis_stream_task_execution_timeout"`

	// Pick generation
	RedisStreamPickGenerationTimeout         time.Duration `mapstructure:"redis_stream_pick_generation_timeout"`
	RedisStreamPickGenerationRetryInterval   time.Duration `mapstructure:"redis_stream_pick_generation_retry_interval"`
	RedisStreamPickGenerationMaxIdleDuration time.Duration `mapstructure:"redis_stream_pick_generation_max_idle_duration"`
	RedisStreamPickGenerationMaxRetry        int           `mapstructure:"redis_stream_pick_generation_max_retry"`

	// Prop results resolution
	RedisStreamPropResultsTimeout         time.Duration `mapstructure:"redis_stream_prop_results_timeout"`
	RedisStreamPropResultsRetryInterval   time.Duration `mapstructure:"redis_stream_prop_results_retry_interval"`
	RedisStreamPropResultsMaxIdleDuration time.Duration `mapstructure:"redis_stream_prop_results_max_idle_duration"`
	RedisStreamPropResultsMaxRetry        int           `mapstructure:"redis_stream_prop_results_max_retry"`
}

// OpenAI holds the configuration for the OpenAI API.
type OpenAI struct {
	BaseURL             string `mapstructure:"base_url"`
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int    `mapstructure:"max_token_per_minute"`
}

// Perplexity holds the configuration for the Perplexity API.
type Perplexity struct {
	BaseURL             string `mapstructure:"base_url"`
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int    `mapstructure:"max_token_per_minute"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	BaseURL             string `mapstructure:"base_url"`
	APIKey              string `mapstructure:"api_key"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int    `mapstructure:"max_token_per_minute"`
}

// AI holds configuration for AI providers.
type AI struct {
	Provider string `mapstructure:"provider"`
}

// OddsAPI holds the configuration for the odds provider.
type OddsAPI struct {
	BaseURL             string        `mapstructure:"base_url"`
	APIKey              string        `mapstructure:"api_key"`
	Regions             string        `mapstructure:"regions"`
	Bookmaker           string        `mapstructure:"bookmaker"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	CacheTTL            time.Duration `mapstructure:"cache_ttl"`
}

// ESPN holds the configuration for the ESPN scoreboard API.
type ESPN struct {
	BaseURL string `mapstructure:"base_url"`
}

// BallDontLie holds the configuration for the BallDontLie stats API.
type BallDontLie struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

// SportsDB holds the configuration for TheSportsDB stats API.
type SportsDB struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

// News holds the configuration for team news scraping.
type News struct {
	MaxArticlesPerTeam int           `mapstructure:"max_articles_per_team"`
	MaxArticleAge      time.Duration `mapstructure:"max_article_age"`
	RequestDelay       time.Duration `mapstructure:"request_delay"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the worker service.
type Config struct {
	App         config.App      `mapstructure:"app"`
	Logger      config.Logger   `mapstructure:"logger"`
	Database    config.Database `mapstructure:"database"`
	Redis       config.Redis    `mapstructure:"redis"`
	Executor    Executor        `mapstructure:"executor"`
	OpenAI      OpenAI          `mapstructure:"openai"`
	Perplexity  Perplexity      `mapstructure:"perplexity"`
	Gemini      Gemini          `mapstructure:"gemini"`
	AI          AI              `mapstructure:"ai"`
	OddsAPI     OddsAPI         `mapstructure:"odds_api"`
	ESPN        ESPN            `mapstructure:"espn"`
	BallDontLie BallDontLie     `mapstructure:"balldontlie"`
	SportsDB    SportsDB        `mapstructure:"sportsdb"`
	News        News            `mapstructure:"news"`
	Telegram    Telegram        `mapstructure:"telegram"`
}

// Load loads the worker configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
