// internal/service/judgment/validate_test.go

package judgment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trendlens/internal/domain/trend"
)

func batchPosts(ids ...string) []trend.Post {
	posts := make([]trend.Post, 0, len(ids))
	for _, id := range ids {
		posts = append(posts, trend.Post{ID: id})
	}
	return posts
}

func TestCrossCheckPartition_DropsFabricatedIDs(t *testing.T) {
	t.Parallel()

	got := CrossCheckPartition(batchPosts("a", "b"), trend.Partition{
		Relevant:    []string{"a", "ghost"},
		NotRelevant: []string{"b", "phantom"},
	})

	assert.Equal(t, []string{"a"}, got.Relevant)
	assert.Equal(t, []string{"b"}, got.NotRelevant)
}

func TestCrossCheckPartition_MissingIDsImplicitlyExcluded(t *testing.T) {
	t.Parallel()

	got := CrossCheckPartition(batchPosts("a", "b", "c"), trend.Partition{
		Relevant: []string{"a"},
	})

	assert.Equal(t, []string{"a"}, got.Relevant)
	assert.Equal(t, []string{"b", "c"}, got.NotRelevant)
}

func TestCrossCheckPartition_DuplicateKeepsFirstPlacement(t *testing.T) {
	t.Parallel()

	got := CrossCheckPartition(batchPosts("a", "b"), trend.Partition{
		Relevant:    []string{"a", "a"},
		NotRelevant: []string{"a", "b"},
	})

	assert.Equal(t, []string{"a"}, got.Relevant)
	assert.Equal(t, []string{"b"}, got.NotRelevant)
}

func TestCrossCheckLabels(t *testing.T) {
	t.Parallel()

	adj := func(v float64) *float64 { return &v }
	entries := []labelEntry{
		{ID: "a", Class: "Viral", Adjustment: adj(1.4)},
		{ID: "b", Class: "", Adjustment: adj(0.5)},
		{ID: "ghost", Class: "rising", Adjustment: adj(0.5)},
		{ID: "c", Class: "fading", Adjustment: adj(-0.3)},
	}

	got := crossCheckLabels(batchPosts("a", "b", "c"), entries)

	assert.Equal(t, map[string]trend.TrendLabel{
		"a": {Class: "viral", Adjustment: 1},
		"c": {Class: "fading", Adjustment: 0},
	}, got)
}

func TestCrossCheckTokens(t *testing.T) {
	t.Parallel()

	got := crossCheckTokens(
		[]string{"frustrating", "dark mode", "add"},
		[]string{"Frustrating", "frustrating", "invented", "dark mode", ""},
	)

	assert.Equal(t, []string{"frustrating", "dark mode"}, got)
}
