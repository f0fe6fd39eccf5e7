// internal/service/wordcloud/extractor_test.go

package wordcloud

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendlens/internal/domain/trend"
)

// bucketJudge classifies via fixed buckets; judgeErr always fails.
type bucketJudge struct {
	emotion map[string]bool
	demand  map[string]bool
	calls   int
}

func (j *bucketJudge) ExtractKeywords(ctx context.Context, description string) (trend.KeywordSet, error) {
	return trend.KeywordSet{}, nil
}

func (j *bucketJudge) PartitionRelevance(ctx context.Context, description string, posts []trend.Post) (trend.Partition, error) {
	return trend.Partition{}, nil
}

func (j *bucketJudge) LabelTrends(ctx context.Context, description string, posts []trend.Post) (map[string]trend.TrendLabel, error) {
	return nil, nil
}

func (j *bucketJudge) ClassifyWords(ctx context.Context, tokens []string) (trend.WordClassification, error) {
	j.calls++
	out := trend.WordClassification{Emotion: []string{}, Demand: []string{}}
	for _, tok := range tokens {
		switch {
		case j.emotion[tok]:
			out.Emotion = append(out.Emotion, tok)
		case j.demand[tok]:
			out.Demand = append(out.Demand, tok)
		}
	}
	return out, nil
}

type failingJudge struct {
	bucketJudge
}

func (j *failingJudge) ClassifyWords(ctx context.Context, tokens []string) (trend.WordClassification, error) {
	j.calls++
	return trend.WordClassification{}, errors.New("provider down")
}

func TestExtract_FeedbackScenario(t *testing.T) {
	t.Parallel()

	posts := []trend.Post{
		{ID: "p1", Title: "feedback", Body: "This app is frustrating, please add dark mode"},
	}

	e := NewExtractor(nil, DefaultConfig(), nil)
	tables, err := e.Extract(context.Background(), posts)
	require.NoError(t, err)

	assert.Contains(t, tables.Emotion, trend.WordCount{Word: "frustrating", Count: 1})
	assert.Contains(t, tables.Demand, trend.WordCount{Word: "dark mode", Count: 1})
	assert.Contains(t, tables.Demand, trend.WordCount{Word: "add", Count: 1})
	assert.False(t, tables.Degraded)
}

func TestExtract_MergesCountsAcrossPosts(t *testing.T) {
	t.Parallel()

	posts := []trend.Post{
		{ID: "p1", Title: "Frustrating bug", Body: "so frustrating"},
		{ID: "p2", Body: "FRUSTRATING experience, need dark mode"},
		{ID: "p3", Body: "need offline support"},
	}

	e := NewExtractor(nil, DefaultConfig(), nil)
	tables, err := e.Extract(context.Background(), posts)
	require.NoError(t, err)

	assert.Contains(t, tables.Emotion, trend.WordCount{Word: "frustrating", Count: 3})
	assert.Contains(t, tables.Demand, trend.WordCount{Word: "need", Count: 2})

	// No duplicate words in either table.
	seen := map[string]bool{}
	for _, wc := range append(append([]trend.WordCount{}, tables.Emotion...), tables.Demand...) {
		assert.False(t, seen[wc.Word], "duplicate word %q", wc.Word)
		assert.GreaterOrEqual(t, wc.Count, 1)
		seen[wc.Word] = true
	}
}

func TestExtract_SortedByCountThenWord(t *testing.T) {
	t.Parallel()

	posts := []trend.Post{
		{ID: "p1", Body: "add export add sync export add"},
	}

	e := NewExtractor(nil, DefaultConfig(), nil)
	tables, err := e.Extract(context.Background(), posts)
	require.NoError(t, err)

	require.Equal(t, []trend.WordCount{
		{Word: "add", Count: 3},
		{Word: "export", Count: 2},
		{Word: "sync", Count: 1},
	}, tables.Demand)
}

func TestExtract_Deterministic(t *testing.T) {
	t.Parallel()

	posts := []trend.Post{
		{ID: "p1", Title: "Need dark mode", Body: "love it but the sync is broken and frustrating"},
		{ID: "p2", Body: "wish for export, import and offline support"},
	}

	e := NewExtractor(nil, DefaultConfig(), nil)
	first, err := e.Extract(context.Background(), posts)
	require.NoError(t, err)
	second, err := e.Extract(context.Background(), posts)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExtract_CodeAndLinksExcluded(t *testing.T) {
	t.Parallel()

	posts := []trend.Post{
		{ID: "p1", Body: "need this fixed\n```go\nfrustrating := \"add\"\n```\nsee [broken docs](https://example.com/frustrating) and `add`"},
	}

	e := NewExtractor(nil, DefaultConfig(), nil)
	tables, err := e.Extract(context.Background(), posts)
	require.NoError(t, err)

	// Tokens inside code and URLs never reach the tables; the link label
	// does.
	assert.NotContains(t, tables.Emotion, trend.WordCount{Word: "frustrating", Count: 1})
	assert.Contains(t, tables.Emotion, trend.WordCount{Word: "broken", Count: 1})
	assert.Contains(t, tables.Demand, trend.WordCount{Word: "need", Count: 1})
	for _, wc := range tables.Demand {
		assert.NotEqual(t, "add", wc.Word)
	}
}

func TestExtract_EmptyInput(t *testing.T) {
	t.Parallel()

	e := NewExtractor(nil, DefaultConfig(), nil)
	tables, err := e.Extract(context.Background(), nil)
	require.NoError(t, err)

	assert.Empty(t, tables.Emotion)
	assert.Empty(t, tables.Demand)
	assert.False(t, tables.Degraded)
}

func TestExtract_JudgeClassificationUsed(t *testing.T) {
	t.Parallel()

	j := &bucketJudge{
		emotion: map[string]bool{"delightful": true},
		demand:  map[string]bool{"webhook": true},
	}
	posts := []trend.Post{{ID: "p1", Body: "delightful webhook delightful"}}

	e := NewExtractor(j, DefaultConfig(), nil)
	tables, err := e.Extract(context.Background(), posts)
	require.NoError(t, err)

	assert.Equal(t, []trend.WordCount{{Word: "delightful", Count: 2}}, tables.Emotion)
	assert.Equal(t, []trend.WordCount{{Word: "webhook", Count: 1}}, tables.Demand)
	assert.False(t, tables.Degraded)
	assert.Equal(t, 1, j.calls)
}

func TestExtract_JudgeBatching(t *testing.T) {
	t.Parallel()

	j := &bucketJudge{}
	posts := []trend.Post{{ID: "p1", Body: "alpha beta gamma delta epsilon zeta"}}

	cfg := DefaultConfig()
	cfg.BatchSize = 2
	e := NewExtractor(j, cfg, nil)
	_, err := e.Extract(context.Background(), posts)
	require.NoError(t, err)

	assert.Equal(t, 3, j.calls)
}

func TestExtract_DegradesToLocalLexicon(t *testing.T) {
	t.Parallel()

	j := &failingJudge{}
	posts := []trend.Post{{ID: "p1", Body: "frustrating, please add dark mode"}}

	e := NewExtractor(j, DefaultConfig(), nil)
	tables, err := e.Extract(context.Background(), posts)
	require.NoError(t, err)

	assert.True(t, tables.Degraded)
	assert.Contains(t, tables.Emotion, trend.WordCount{Word: "frustrating", Count: 1})
	assert.Contains(t, tables.Demand, trend.WordCount{Word: "dark mode", Count: 1})
	assert.Contains(t, tables.Demand, trend.WordCount{Word: "add", Count: 1})
}

func TestSingularize(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"apps":      "app",
		"stories":   "story",
		"boxes":     "box",
		"branches":  "branch",
		"classes":   "class",
		"analytics": "analytics",
		"status":    "status",
		"analysis":  "analysis",
		"mode":      "mode",
	}
	for in, want := range tests {
		assert.Equal(t, want, singularize(in), "singularize(%q)", in)
	}
}
