// internal/adapter/social/reddit_test.go

package social

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trendingListing = `{
	"kind": "Listing",
	"data": {
		"after": "t3_abc",
		"children": [
			{"kind": "t3", "data": {
				"id": "abc",
				"title": "AI analytics tool",
				"selftext": "body text",
				"author": "tester",
				"subreddit": "MachineLearning",
				"score": 42,
				"num_comments": 7,
				"upvote_ratio": 0.94,
				"permalink": "/r/MachineLearning/comments/abc",
				"created_utc": 1704153600
			}},
			{"kind": "t3", "data": {
				"title": "row without id",
				"subreddit": "MachineLearning"
			}}
		]
	}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *RedditClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.UserAgent = "trendlens-test/1.0"
	return NewRedditClient(cfg, nil)
}

func TestTrendingPosts(t *testing.T) {
	var gotPath, gotAgent, gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(trendingListing))
	})

	posts, err := c.TrendingPosts(context.Background(), []string{"MachineLearning", "r/startups"}, 10, "day")
	require.NoError(t, err)

	assert.Equal(t, "/r/MachineLearning+startups/top.json", gotPath)
	assert.Contains(t, gotQuery, "limit=10")
	assert.Contains(t, gotQuery, "t=day")
	assert.Equal(t, "trendlens-test/1.0", gotAgent)

	// Malformed row skipped, valid row mapped field for field.
	require.Len(t, posts, 1)
	p := posts[0]
	assert.Equal(t, "abc", p.ID)
	assert.Equal(t, "AI analytics tool", p.Title)
	assert.Equal(t, "body text", p.Body)
	assert.Equal(t, "tester", p.Author)
	assert.Equal(t, "MachineLearning", p.Subreddit)
	assert.Equal(t, 42, p.Score)
	assert.Equal(t, 7, p.NumComments)
	assert.Equal(t, 0.94, p.UpvoteRatio)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), p.CreatedAt)
}

func TestSearchPosts(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(trendingListing))
	})

	posts, err := c.SearchPosts(context.Background(), []string{"ai", "analytics"}, []string{"MachineLearning"}, 25, "", "")
	require.NoError(t, err)
	require.Len(t, posts, 1)

	assert.Equal(t, "/r/MachineLearning/search.json", gotPath)
	assert.Equal(t, []string{"ai analytics"}, gotQuery["q"])
	assert.Equal(t, []string{"relevance"}, gotQuery["sort"])
	assert.Equal(t, []string{"week"}, gotQuery["t"])
	assert.Equal(t, []string{"on"}, gotQuery["restrict_sr"])
}

func TestTrendingPosts_DefaultsToAll(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"data":{"children":[]}}`))
	})

	posts, err := c.TrendingPosts(context.Background(), nil, 0, "")
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Equal(t, "/r/all/top.json", gotPath)
}

func TestFetchListing_NonOKStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	})

	_, err := c.TrendingPosts(context.Background(), []string{"golang"}, 5, "day")
	require.Error(t, err)
	assert.ErrorContains(t, err, "status 429")
}

func TestFetchListing_ContextCancellation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.TrendingPosts(ctx, []string{"golang"}, 5, "day")
	require.Error(t, err)
}
