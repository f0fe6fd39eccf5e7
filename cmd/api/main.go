// cmd/api/main.go

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"

	"trendlens/internal/adapter/social"
	"trendlens/internal/adapter/storage"
	"trendlens/internal/config"
	"trendlens/internal/domain/trend"
	"trendlens/internal/server"
	"trendlens/internal/service/analysis"
	"trendlens/internal/service/judgment"
	"trendlens/internal/service/relevance"
	"trendlens/internal/service/wordcloud"
)

func main() {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Environment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Initialize dependencies
	db, err := initDatabase(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	natsConn, err := initNATS(cfg.NATS, logger)
	if err != nil {
		logger.Fatal("Failed to connect to NATS", zap.Error(err))
	}
	defer natsConn.Close()

	// Judgment provider is optional; without an API key the pipeline runs
	// on local signals only.
	var judge trend.Judge
	if cfg.OpenAI.APIKey != "" {
		client := openai.NewClient(option.WithAPIKey(cfg.OpenAI.APIKey))
		judge = judgment.NewAdapter(&client, judgment.Config{
			Model:        cfg.OpenAI.Model,
			BatchTimeout: cfg.OpenAI.BatchTimeout,
			MaxTokens:    cfg.OpenAI.MaxTokens,
		}, logger)
	} else {
		logger.Warn("no judgment provider configured, running on local signals only")
	}

	// Initialize adapters
	redditClient := social.NewRedditClient(social.Config{
		BaseURL:   cfg.Reddit.BaseURL,
		UserAgent: cfg.Reddit.UserAgent,
		Timeout:   cfg.Reddit.Timeout,
	}, logger)
	reportStore := storage.NewReportStore(db)

	// Initialize services
	composer := relevance.NewComposer(relevance.Config{
		Weights: relevance.Weights{
			Lexical:    cfg.Scoring.LexicalWeight,
			Subreddit:  cfg.Scoring.SubredditWeight,
			Engagement: cfg.Scoring.EngagementWeight,
		},
		Threshold: cfg.Scoring.Threshold,
	}, logger)

	pipeline := analysis.NewPipeline(
		judge,
		redditClient,
		composer,
		reportStore,
		natsConn,
		analysis.Config{
			BatchSize: cfg.Pipeline.BatchSize,
			Blend: analysis.Blend{
				Relevance: cfg.Scoring.RelevanceBlend,
				Judgment:  cfg.Scoring.JudgmentBlend,
			},
			FetchLimit: cfg.Pipeline.FetchLimit,
			TimeFilter: cfg.Pipeline.TimeFilter,
			Subject:    cfg.Pipeline.ReportSubject,
		},
		logger,
	)

	extractor := wordcloud.NewExtractor(judge, wordcloud.Config{
		BatchSize:      cfg.WordCloud.BatchSize,
		ExtraStopwords: cfg.WordCloud.ExtraStopwords,
	}, logger)

	// Initialize HTTP server
	httpServer := server.NewServer(
		cfg.Server,
		natsConn,
		cfg.Pipeline.ReportSubject,
		pipeline,
		extractor,
		redditClient,
		reportStore,
		logger,
	)

	// Start HTTP server
	go func() {
		logger.Info("Starting HTTP server",
			zap.String("host", cfg.Server.Host),
			zap.Int("port", cfg.Server.Port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	<-shutdown
	logger.Info("Shutdown signal received")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Graceful shutdown
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	logger.Info("Shutdown complete")
}

// Initialize the logger
func initLogger(environment string) (*zap.Logger, error) {
	if environment == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// Initialize database connection
func initDatabase(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	connString := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns)

	db, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	// Test connection
	if err := db.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return db, nil
}

// Initialize NATS connection
func initNATS(cfg config.NATSConfig, logger *zap.Logger) (*nats.Conn, error) {
	options := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.ConnectTimeout),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn("NATS disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, err := nats.Connect(cfg.URL, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to NATS: %w", err)
	}

	return nc, nil
}
