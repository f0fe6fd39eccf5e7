// internal/adapter/social/reddit.go

package social

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"trendlens/internal/domain/trend"
)

// Config carries the Reddit client settings.
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// DefaultConfig returns the public-API defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:   "https://www.reddit.com",
		UserAgent: "trendlens/1.0",
		Timeout:   10 * time.Second,
	}
}

// RedditClient fetches post listings from the public Reddit JSON API.
// It implements trend.Fetcher. Listing rows missing an id are skipped and
// logged, never surfaced as errors.
type RedditClient struct {
	httpClient *http.Client
	cfg        Config
	logger     *zap.Logger
}

var _ trend.Fetcher = (*RedditClient)(nil)

// NewRedditClient creates a Reddit API client.
func NewRedditClient(cfg Config, logger *zap.Logger) *RedditClient {
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedditClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cfg:        cfg,
		logger:     logger,
	}
}

// listingPost is the wire shape of one post row in a Reddit listing.
type listingPost struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	SelfText    string  `json:"selftext"`
	Author      string  `json:"author"`
	Subreddit   string  `json:"subreddit"`
	Score       int     `json:"score"`
	NumComments int     `json:"num_comments"`
	UpvoteRatio float64 `json:"upvote_ratio"`
	URL         string  `json:"url"`
	Permalink   string  `json:"permalink"`
	CreatedUTC  float64 `json:"created_utc"`
}

type listingResponse struct {
	Data struct {
		After    string `json:"after"`
		Children []struct {
			Data listingPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// TrendingPosts fetches the current top posts for the given subreddits.
// timeRange is one of hour, day, week, month, year, all.
func (c *RedditClient) TrendingPosts(ctx context.Context, subreddits []string, limit int, timeRange string) ([]trend.Post, error) {
	if limit <= 0 {
		limit = 25
	}
	if timeRange == "" {
		timeRange = "day"
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("t", timeRange)
	endpoint := fmt.Sprintf("%s/r/%s/top.json?%s", c.cfg.BaseURL, subredditPath(subreddits), q.Encode())

	return c.fetchListing(ctx, endpoint)
}

// SearchPosts searches the given subreddits for posts matching the keywords.
// sort is one of relevance, hot, top, new, comments.
func (c *RedditClient) SearchPosts(ctx context.Context, keywords, subreddits []string, limit int, sort, timeFilter string) ([]trend.Post, error) {
	if limit <= 0 {
		limit = 25
	}
	if sort == "" {
		sort = "relevance"
	}
	if timeFilter == "" {
		timeFilter = "week"
	}

	q := url.Values{}
	q.Set("q", strings.Join(keywords, " "))
	q.Set("limit", strconv.Itoa(limit))
	q.Set("sort", sort)
	q.Set("t", timeFilter)
	q.Set("restrict_sr", "on")
	endpoint := fmt.Sprintf("%s/r/%s/search.json?%s", c.cfg.BaseURL, subredditPath(subreddits), q.Encode())

	return c.fetchListing(ctx, endpoint)
}

func (c *RedditClient) fetchListing(ctx context.Context, endpoint string) ([]trend.Post, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	// Reddit throttles default Go user agents aggressively.
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling reddit api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reddit api returned status %d", resp.StatusCode)
	}

	var listing listingResponse
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("decoding reddit listing: %w", err)
	}

	posts := make([]trend.Post, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		row := child.Data
		if row.ID == "" {
			c.logger.Warn("skipping listing row without id",
				zap.String("title", row.Title))
			continue
		}
		posts = append(posts, trend.Post{
			ID:          row.ID,
			Title:       row.Title,
			Body:        row.SelfText,
			Author:      row.Author,
			Subreddit:   row.Subreddit,
			Score:       row.Score,
			NumComments: row.NumComments,
			UpvoteRatio: row.UpvoteRatio,
			URL:         row.URL,
			Permalink:   row.Permalink,
			CreatedAt:   time.Unix(int64(row.CreatedUTC), 0).UTC(),
		})
	}

	c.logger.Debug("fetched reddit listing",
		zap.String("endpoint", endpoint),
		zap.Int("posts", len(posts)))
	return posts, nil
}

// subredditPath joins subreddits into a multireddit path segment; empty
// input falls back to r/all.
func subredditPath(subreddits []string) string {
	cleaned := make([]string, 0, len(subreddits))
	for _, s := range subreddits {
		s = strings.TrimPrefix(strings.TrimSpace(s), "r/")
		if s != "" {
			cleaned = append(cleaned, s)
		}
	}
	if len(cleaned) == 0 {
		return "all"
	}
	return strings.Join(cleaned, "+")
}
