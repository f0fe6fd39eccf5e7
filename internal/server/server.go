// internal/server/server.go

package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"trendlens/internal/config"
	"trendlens/internal/domain/trend"
	"trendlens/internal/server/handlers"
)

// Server represents the HTTP server
type Server struct {
	server *http.Server
	router *chi.Mux
}

// NewServer creates a new HTTP server
func NewServer(
	cfg config.ServerConfig,
	natsConn *nats.Conn,
	reportSubject string,
	analyzer handlers.Analyzer,
	extractor handlers.WordExtractor,
	fetcher trend.Fetcher,
	store trend.ReportStore,
	logger *zap.Logger,
) *Server {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// CORS configuration
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Create handler dependencies
	analysisHandler := handlers.NewAnalysisHandler(analyzer, extractor, logger)

	// Routes
	router.Route("/api", func(r chi.Router) {
		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})

		// API version
		r.Route("/v1", func(r chi.Router) {
			r.Post("/analyze", analysisHandler.Analyze)
			r.Post("/wordcloud", analysisHandler.WordCloud)

			if fetcher != nil {
				postsHandler := handlers.NewPostsHandler(fetcher, logger)
				r.Get("/posts/trending", postsHandler.GetTrending)
			}

			if store != nil {
				reportsHandler := handlers.NewReportsHandler(store, logger)
				r.Get("/reports/{id}", reportsHandler.GetReport)
			}
		})
	})

	// WebSocket endpoint for the live report stream
	if natsConn != nil {
		router.Get("/ws/trends", handlers.TrendsWebSocketHandler(natsConn, reportSubject, logger))
	}

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &Server{
		server: httpServer,
		router: router,
	}
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
