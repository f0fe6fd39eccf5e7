// internal/server/handlers/reports.go

package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"trendlens/internal/domain/trend"
)

// ReportsHandler handles stored report HTTP requests
type ReportsHandler struct {
	store  trend.ReportStore
	logger *zap.Logger
}

// NewReportsHandler creates a new reports handler
func NewReportsHandler(store trend.ReportStore, logger *zap.Logger) *ReportsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportsHandler{
		store:  store,
		logger: logger,
	}
}

// GetReport returns a previously emitted report by ID
func (h *ReportsHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "Missing report ID")
		return
	}

	report, err := h.store.GetReport(r.Context(), id)
	if err != nil {
		if errors.Is(err, trend.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Report not found")
			return
		}
		h.logger.Error("report lookup failed",
			zap.String("report_id", id),
			zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to get report")
		return
	}

	respondWithJSON(w, http.StatusOK, report)
}
