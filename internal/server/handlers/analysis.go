// internal/server/handlers/analysis.go

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"trendlens/internal/domain/trend"
	"trendlens/internal/service/analysis"
)

// Analyzer runs one analysis pipeline request.
type Analyzer interface {
	Analyze(ctx context.Context, req analysis.Request) (*trend.Report, error)
}

// WordExtractor builds word-cloud frequency tables from posts.
type WordExtractor interface {
	Extract(ctx context.Context, posts []trend.Post) (trend.WordTables, error)
}

// AnalysisHandler handles analysis and word-cloud HTTP requests
type AnalysisHandler struct {
	analyzer  Analyzer
	extractor WordExtractor
	logger    *zap.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analyzer Analyzer, extractor WordExtractor, logger *zap.Logger) *AnalysisHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalysisHandler{
		analyzer:  analyzer,
		extractor: extractor,
		logger:    logger,
	}
}

// Analyze runs the trend analysis pipeline for a product description
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analysis.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Description == "" && len(req.Posts) == 0 {
		respondWithError(w, http.StatusBadRequest, "Either description or posts must be provided")
		return
	}

	report, err := h.analyzer.Analyze(r.Context(), req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		h.logger.Error("analysis run failed", zap.Error(err))
		respondWithError(w, http.StatusBadGateway, "Analysis failed")
		return
	}

	respondWithJSON(w, http.StatusOK, report)
}

type wordCloudRequest struct {
	Posts []trend.Post `json:"posts"`
}

// WordCloud builds emotion and demand frequency tables from posts
func (h *AnalysisHandler) WordCloud(w http.ResponseWriter, r *http.Request) {
	var req wordCloudRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tables, err := h.extractor.Extract(r.Context(), req.Posts)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		h.logger.Error("word extraction failed", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Word extraction failed")
		return
	}

	respondWithJSON(w, http.StatusOK, tables)
}
