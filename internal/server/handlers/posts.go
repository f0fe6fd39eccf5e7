// internal/server/handlers/posts.go

package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"trendlens/internal/domain/trend"
)

// PostsHandler handles post listing HTTP requests
type PostsHandler struct {
	fetcher trend.Fetcher
	logger  *zap.Logger
}

// NewPostsHandler creates a new posts handler
func NewPostsHandler(fetcher trend.Fetcher, logger *zap.Logger) *PostsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostsHandler{
		fetcher: fetcher,
		logger:  logger,
	}
}

// GetTrending returns current top posts for the requested subreddits
func (h *PostsHandler) GetTrending(w http.ResponseWriter, r *http.Request) {
	var subreddits []string
	if raw := r.URL.Query().Get("subreddits"); raw != "" {
		subreddits = strings.Split(raw, ",")
	}

	limit := 25
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	timeRange := r.URL.Query().Get("t")

	posts, err := h.fetcher.TrendingPosts(r.Context(), subreddits, limit, timeRange)
	if err != nil {
		h.logger.Error("trending fetch failed", zap.Error(err))
		respondWithError(w, http.StatusBadGateway, "Failed to fetch trending posts")
		return
	}

	respondWithJSON(w, http.StatusOK, posts)
}
