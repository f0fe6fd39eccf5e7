// internal/service/analysis/aggregator_test.go

package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trendlens/internal/domain/trend"
)

func TestAggregate_BlendsAndResorts(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	report := trend.Report{
		Retained: []trend.ScoredPost{
			{Post: trend.Post{ID: "x", CreatedAt: created}, Relevance: 0.9, Final: 0.9},
			{Post: trend.Post{ID: "y", CreatedAt: created}, Relevance: 0.7, Final: 0.7},
		},
		Excluded: []trend.ScoredPost{},
	}
	labels := map[string]trend.TrendLabel{
		"x": {Class: "steady", Adjustment: 0.0},
		"y": {Class: "viral", Adjustment: 1.0},
	}

	out := Aggregate(report, labels, DefaultBlend())

	// y: 0.6*0.7 + 0.4*1.0 = 0.82 now outranks x: 0.6*0.9 = 0.54.
	require.Len(t, out.Retained, 2)
	assert.Equal(t, "y", out.Retained[0].Post.ID)
	assert.InDelta(t, 0.82, out.Retained[0].Final, 1e-9)
	assert.Equal(t, "x", out.Retained[1].Post.ID)
	assert.InDelta(t, 0.54, out.Retained[1].Final, 1e-9)

	// Relevance scores survive the blend unchanged.
	assert.Equal(t, 0.7, out.Retained[0].Relevance)
	assert.Equal(t, 0.9, out.Retained[1].Relevance)
}

func TestAggregate_MissingLabelKeepsRelevanceScore(t *testing.T) {
	t.Parallel()

	report := trend.Report{
		Retained: []trend.ScoredPost{
			{Post: trend.Post{ID: "x"}, Relevance: 0.5, Final: 0.5},
		},
		Excluded: []trend.ScoredPost{},
	}

	out := Aggregate(report, map[string]trend.TrendLabel{}, DefaultBlend())

	require.Len(t, out.Retained, 1)
	assert.Equal(t, 0.5, out.Retained[0].Final)
	assert.Nil(t, out.Retained[0].Label)
}

func TestAggregate_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	retained := []trend.ScoredPost{
		{Post: trend.Post{ID: "x"}, Relevance: 0.9, Final: 0.9},
	}
	report := trend.Report{Retained: retained, Excluded: []trend.ScoredPost{}}

	_ = Aggregate(report, map[string]trend.TrendLabel{
		"x": {Class: "viral", Adjustment: 1.0},
	}, DefaultBlend())

	assert.Equal(t, 0.9, retained[0].Final)
	assert.Nil(t, retained[0].Label)
}
