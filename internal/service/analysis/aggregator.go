// internal/service/analysis/aggregator.go

package analysis

import (
	"trendlens/internal/domain/trend"
	"trendlens/internal/service/relevance"
)

// Blend is the fixed weighting between the relevance score and the
// judgment-derived trend adjustment when composing the final score.
type Blend struct {
	Relevance float64
	Judgment  float64
}

// DefaultBlend returns the documented default blend: relevance dominates,
// judgment adjusts.
func DefaultBlend() Blend {
	return Blend{Relevance: 0.6, Judgment: 0.4}
}

// Aggregate merges per-post trend labels into a relevance-only report.
// A labeled post's final score becomes the blend of its relevance score and
// the label's adjustment; posts without a label keep their relevance-only
// score. Both partitions are re-sorted under the usual total order. The
// input report's slices are not modified.
func Aggregate(report trend.Report, labels map[string]trend.TrendLabel, b Blend) trend.Report {
	report.Retained = blendPosts(report.Retained, labels, b)
	report.Excluded = blendPosts(report.Excluded, labels, b)
	relevance.SortScored(report.Retained)
	relevance.SortScored(report.Excluded)
	return report
}

func blendPosts(posts []trend.ScoredPost, labels map[string]trend.TrendLabel, b Blend) []trend.ScoredPost {
	out := make([]trend.ScoredPost, len(posts))
	for i, sp := range posts {
		label, ok := labels[sp.Post.ID]
		if !ok {
			out[i] = sp
			continue
		}
		l := label
		sp.Label = &l
		sp.Final = clamp01(b.Relevance*sp.Relevance + b.Judgment*l.Adjustment)
		out[i] = sp
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
