// internal/service/relevance/composer_test.go

package relevance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendlens/internal/domain/trend"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return ts
}

func TestRank_PartitionIsDisjointAndComplete(t *testing.T) {
	t.Parallel()

	posts := []trend.Post{
		{ID: "a", Title: "AI analytics", Subreddit: "MachineLearning", Score: 50, CreatedAt: time.Now()},
		{ID: "b", Title: "cat pictures", Subreddit: "aww", Score: 500, CreatedAt: time.Now()},
		{ID: "c", Title: "analytics deep dive", Subreddit: "dataengineering", Score: 5, CreatedAt: time.Now()},
		{ID: "", Title: "broken"},
	}

	c := NewComposer(DefaultConfig(), nil)
	report := c.Rank(posts, "AI analytics", []string{"AI", "analytics"}, nil)

	assert.Equal(t, []string{""}, report.SkippedIDs)
	assert.Len(t, report.Retained, 2)
	assert.Len(t, report.Excluded, 1)

	seen := map[string]int{}
	for _, sp := range report.Retained {
		seen[sp.Post.ID]++
	}
	for _, sp := range report.Excluded {
		seen[sp.Post.ID]++
	}
	assert.Equal(t, map[string]int{"a": 1, "b": 1, "c": 1}, seen)
}

func TestRank_ProductScenario(t *testing.T) {
	t.Parallel()

	posts := []trend.Post{
		{ID: "a", Title: "AI analytics tool", Subreddit: "MachineLearning", Score: 50, CreatedAt: mustTime(t, "2024-01-02")},
		{ID: "b", Title: "cat pictures", Subreddit: "aww", Score: 500, CreatedAt: mustTime(t, "2024-01-01")},
	}

	c := NewComposer(DefaultConfig(), nil)
	report := c.Rank(posts, "AI powered analytics", []string{"AI", "analytics", "powered"}, nil)

	require.Len(t, report.Retained, 1)
	require.Len(t, report.Excluded, 1)
	assert.Equal(t, "a", report.Retained[0].Post.ID)
	assert.Equal(t, "b", report.Excluded[0].Post.ID)
	assert.Greater(t, report.Retained[0].Final, report.Excluded[0].Final)
	assert.Less(t, report.Excluded[0].Final, 0.3)
}

func TestRank_BoundaryScoreIsRetained(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	// A full title match under a 0.3 lexical weight lands exactly on the
	// threshold.
	cfg.Weights = Weights{Lexical: 0.3, Subreddit: 0, Engagement: 0}

	posts := []trend.Post{
		{ID: "edge", Title: "exact keyword", Subreddit: "test", CreatedAt: time.Now()},
	}

	report := NewComposer(cfg, nil).Rank(posts, "desc", []string{"keyword"}, nil)

	require.Len(t, report.Retained, 1)
	assert.InDelta(t, 0.3, report.Retained[0].Final, 1e-9)
	assert.Empty(t, report.Excluded)
}

func TestRank_EmptyDescriptionPassThrough(t *testing.T) {
	t.Parallel()

	posts := []trend.Post{
		{ID: "z", Title: "third created, listed first", Score: 1, CreatedAt: mustTime(t, "2024-03-03")},
		{ID: "a", Title: "first created", Score: 900, CreatedAt: mustTime(t, "2024-01-01")},
		{ID: "m", Title: "second created", Score: 5, CreatedAt: mustTime(t, "2024-02-02")},
	}

	report := NewComposer(DefaultConfig(), nil).Rank(posts, "", nil, nil)

	require.Len(t, report.Retained, 3)
	assert.Empty(t, report.Excluded)
	for i, want := range []string{"z", "a", "m"} {
		assert.Equal(t, want, report.Retained[i].Post.ID)
		assert.Equal(t, 1.0, report.Retained[i].Relevance)
	}
}

func TestRank_EmptyInput(t *testing.T) {
	t.Parallel()

	report := NewComposer(DefaultConfig(), nil).Rank(nil, "some product", []string{"kw"}, nil)

	assert.Empty(t, report.Retained)
	assert.Empty(t, report.Excluded)
	assert.Empty(t, report.SkippedIDs)
}

func TestRank_OrderingInvariant(t *testing.T) {
	t.Parallel()

	created := mustTime(t, "2024-05-01")
	posts := []trend.Post{
		{ID: "d", Title: "analytics", Subreddit: "x", Score: 10, CreatedAt: created},
		{ID: "c", Title: "analytics", Subreddit: "x", Score: 10, CreatedAt: created},
		{ID: "b", Title: "analytics", Subreddit: "x", Score: 10, CreatedAt: created.Add(time.Hour)},
		{ID: "a", Title: "other analytics heavy post", Subreddit: "x", Score: 90000, NumComments: 5000, CreatedAt: created},
	}

	report := NewComposer(DefaultConfig(), nil).Rank(posts, "analytics", []string{"analytics"}, nil)

	require.Len(t, report.Retained, 4)
	for i := 1; i < len(report.Retained); i++ {
		prev, cur := report.Retained[i-1], report.Retained[i]
		assert.GreaterOrEqual(t, prev.Final, cur.Final)
		if prev.Final == cur.Final {
			assert.False(t, prev.Post.CreatedAt.Before(cur.Post.CreatedAt))
			if prev.Post.CreatedAt.Equal(cur.Post.CreatedAt) {
				assert.Less(t, prev.Post.ID, cur.Post.ID)
			}
		}
	}
	// Newer post wins the score tie; equal timestamps fall back to id.
	assert.Equal(t, "b", report.Retained[1].Post.ID)
	assert.Equal(t, "c", report.Retained[2].Post.ID)
	assert.Equal(t, "d", report.Retained[3].Post.ID)
}

func TestRank_InputPostsNotMutated(t *testing.T) {
	t.Parallel()

	original := trend.Post{
		ID: "keep", Title: "Analytics", Body: "body", Author: "u1",
		Subreddit: "MachineLearning", Score: 42, NumComments: 7,
		UpvoteRatio: 0.93, URL: "https://x", Permalink: "/r/x",
		CreatedAt: mustTime(t, "2024-04-04"),
	}
	posts := []trend.Post{original}

	report := NewComposer(DefaultConfig(), nil).Rank(posts, "analytics", []string{"analytics"}, nil)

	require.Len(t, report.Retained, 1)
	assert.Equal(t, original, posts[0])
	assert.Equal(t, original, report.Retained[0].Post)
}

func TestViralSignalFor_Bands(t *testing.T) {
	t.Parallel()

	now := time.Now()

	hot := ViralSignalFor(trend.Post{ID: "hot", Score: 2000, NumComments: 800, CreatedAt: now.Add(-2 * time.Hour)}, now)
	cold := ViralSignalFor(trend.Post{ID: "cold", Score: 3, NumComments: 1, CreatedAt: now.Add(-100 * time.Hour)}, now)

	assert.Equal(t, BandHigh, hot.Band)
	assert.Equal(t, BandLow, cold.Band)
	assert.LessOrEqual(t, hot.Score, 100.0)
	assert.GreaterOrEqual(t, cold.Score, 0.0)

	label := FallbackLabel(hot)
	assert.Equal(t, BandHigh, label.Class)
	assert.InDelta(t, hot.Score/100, label.Adjustment, 1e-9)
}
