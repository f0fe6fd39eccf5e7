// internal/config/config.go

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	NATS        NATSConfig
	Reddit      RedditConfig
	OpenAI      OpenAIConfig
	Scoring     ScoringConfig
	Pipeline    PipelineConfig
	WordCloud   WordCloudConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CorsOrigins     []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Database     string
	MaxOpenConns int
	SSLMode      string
}

// NATSConfig holds NATS configuration
type NATSConfig struct {
	URL            string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectTimeout time.Duration
}

// RedditConfig holds Reddit API client configuration
type RedditConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// OpenAIConfig holds judgment provider configuration. An empty APIKey
// disables the provider; the pipeline then runs on local signals only.
type OpenAIConfig struct {
	APIKey       string
	Model        string
	BatchTimeout time.Duration
	MaxTokens    int
}

// ScoringConfig holds relevance scoring configuration. The weights and
// threshold are calibration defaults, not measured optima.
type ScoringConfig struct {
	LexicalWeight    float64
	SubredditWeight  float64
	EngagementWeight float64
	Threshold        float64
	RelevanceBlend   float64
	JudgmentBlend    float64
}

// PipelineConfig holds analysis pipeline configuration
type PipelineConfig struct {
	BatchSize     int
	FetchLimit    int
	TimeFilter    string
	ReportSubject string
}

// WordCloudConfig holds word-frequency extraction configuration
type WordCloudConfig struct {
	BatchSize      int
	ExtraStopwords []string
}

// Load loads configuration from environment variables
func Load() (Config, error) {
	config := Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			CorsOrigins:     getEnvAsSlice("SERVER_CORS_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnvAsInt("DB_PORT", 5432),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Database:     getEnv("DB_NAME", "trendlens"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
		},
		NATS: NATSConfig{
			URL:            getEnv("NATS_URL", "nats://localhost:4222"),
			MaxReconnects:  getEnvAsInt("NATS_MAX_RECONNECTS", 10),
			ReconnectWait:  getEnvAsDuration("NATS_RECONNECT_WAIT", 1*time.Second),
			ConnectTimeout: getEnvAsDuration("NATS_CONNECT_TIMEOUT", 2*time.Second),
		},
		Reddit: RedditConfig{
			BaseURL:   getEnv("REDDIT_BASE_URL", "https://www.reddit.com"),
			UserAgent: getEnv("REDDIT_USER_AGENT", "trendlens/1.0"),
			Timeout:   getEnvAsDuration("REDDIT_TIMEOUT", 10*time.Second),
		},
		OpenAI: OpenAIConfig{
			APIKey:       getEnv("OPENAI_API_KEY", ""),
			Model:        getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			BatchTimeout: getEnvAsDuration("OPENAI_BATCH_TIMEOUT", 30*time.Second),
			MaxTokens:    getEnvAsInt("OPENAI_MAX_TOKENS", 2000),
		},
		Scoring: ScoringConfig{
			LexicalWeight:    getEnvAsFloat("SCORING_LEXICAL_WEIGHT", 0.5),
			SubredditWeight:  getEnvAsFloat("SCORING_SUBREDDIT_WEIGHT", 0.3),
			EngagementWeight: getEnvAsFloat("SCORING_ENGAGEMENT_WEIGHT", 0.2),
			Threshold:        getEnvAsFloat("SCORING_THRESHOLD", 0.3),
			RelevanceBlend:   getEnvAsFloat("SCORING_RELEVANCE_BLEND", 0.6),
			JudgmentBlend:    getEnvAsFloat("SCORING_JUDGMENT_BLEND", 0.4),
		},
		Pipeline: PipelineConfig{
			BatchSize:     getEnvAsInt("PIPELINE_BATCH_SIZE", 20),
			FetchLimit:    getEnvAsInt("PIPELINE_FETCH_LIMIT", 50),
			TimeFilter:    getEnv("PIPELINE_TIME_FILTER", "week"),
			ReportSubject: getEnv("PIPELINE_REPORT_SUBJECT", "trends.reports"),
		},
		WordCloud: WordCloudConfig{
			BatchSize:      getEnvAsInt("WORDCLOUD_BATCH_SIZE", 100),
			ExtraStopwords: getEnvAsSlice("WORDCLOUD_EXTRA_STOPWORDS", nil),
		},
	}

	return config, validate(config)
}

// validate checks if config is valid
func validate(config Config) error {
	if config.Scoring.Threshold < 0 || config.Scoring.Threshold > 1 {
		return fmt.Errorf("scoring threshold must be in [0,1], got %v", config.Scoring.Threshold)
	}
	if config.Scoring.RelevanceBlend+config.Scoring.JudgmentBlend <= 0 {
		return fmt.Errorf("blend weights must sum to a positive value")
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	return strings.Split(valueStr, ",")
}
