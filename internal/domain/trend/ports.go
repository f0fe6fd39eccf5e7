// internal/domain/trend/ports.go

package trend

import (
	"context"
)

// Judge is the boundary to an external text-judgment provider. All methods
// operate on one bounded batch; implementations own per-batch timeouts and
// single-retry semantics. Errors from a Judge are never fatal to a pipeline
// run: callers degrade to local fallbacks and flag the result.
type Judge interface {
	// ExtractKeywords derives search keywords and candidate subreddits
	// from a free-text product description.
	ExtractKeywords(ctx context.Context, description string) (KeywordSet, error)

	// PartitionRelevance splits a batch of posts into relevant and
	// not-relevant id sets with respect to the description.
	PartitionRelevance(ctx context.Context, description string, posts []Post) (Partition, error)

	// LabelTrends attaches a sentiment/virality label to each post in the
	// batch, keyed by post id. Posts missing from the result keep their
	// relevance-only score.
	LabelTrends(ctx context.Context, description string, posts []Post) (map[string]TrendLabel, error)

	// ClassifyWords buckets normalized tokens into emotion and demand
	// vocabularies.
	ClassifyWords(ctx context.Context, tokens []string) (WordClassification, error)
}

// Fetcher retrieves posts from a social platform.
type Fetcher interface {
	// TrendingPosts returns current top posts for the given subreddits.
	TrendingPosts(ctx context.Context, subreddits []string, limit int, timeRange string) ([]Post, error)

	// SearchPosts returns posts matching the keywords within the given
	// subreddits.
	SearchPosts(ctx context.Context, keywords, subreddits []string, limit int, sort, timeFilter string) ([]Post, error)
}

// ReportStore persists emitted trend reports for later inspection.
type ReportStore interface {
	SaveReport(ctx context.Context, r Report) error
	GetReport(ctx context.Context, id string) (*Report, error)
}
