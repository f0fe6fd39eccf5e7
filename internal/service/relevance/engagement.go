// internal/service/relevance/engagement.go

package relevance

import (
	"math"
)

// engagementHalfway controls how fast the saturating transform approaches 1:
// a post with raw log-engagement equal to this value normalizes to 0.5.
const engagementHalfway = 4.0

// NormalizeEngagement maps raw engagement counters into a [0,1] trend
// contribution. Score and comment counts are log-compressed so runaway
// posts cannot dominate the composite score; comments weigh half of score.
// A positive upvote ratio scales the result down proportionally. Zero
// engagement maps to exactly 0.
func NormalizeEngagement(score, comments int, ratio float64) float64 {
	if score < 0 {
		score = 0
	}
	if comments < 0 {
		comments = 0
	}

	raw := math.Log1p(float64(score)) + 0.5*math.Log1p(float64(comments))
	if raw == 0 {
		return 0
	}

	// raw+engagementHalfway is strictly positive here.
	norm := raw / (raw + engagementHalfway)
	if ratio > 0 && ratio <= 1 {
		norm *= ratio
	}

	if norm > 1 {
		return 1
	}
	return norm
}
