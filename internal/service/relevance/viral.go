// internal/service/relevance/viral.go

package relevance

import (
	"math"
	"time"

	"trendlens/internal/domain/trend"
)

// Viral potential bands.
const (
	BandHigh   = "high"
	BandMedium = "medium"
	BandLow    = "low"
)

// ViralSignal is the per-post virality breakdown used as engagement
// metadata in reports and as the local trend-label fallback when the
// judgment provider is unavailable.
type ViralSignal struct {
	PostID        string  `json:"post_id"`
	Score         float64 `json:"viral_score"`
	Velocity      float64 `json:"viral_velocity"`
	Interaction   float64 `json:"interaction_intensity"`
	EarlyMomentum float64 `json:"early_momentum"`
	AgeHours      float64 `json:"age_hours"`
	Band          string  `json:"band"`
}

// ViralSignalFor computes a [0,100] viral potential score for a post from
// its spread velocity (score per hour), interaction intensity (comments per
// score) and early momentum (velocity doubled within the first six hours).
// Each term contributes a fixed share and the total is capped at 100.
func ViralSignalFor(p trend.Post, now time.Time) ViralSignal {
	ageHours := now.Sub(p.CreatedAt).Hours()
	if ageHours < 0.1 {
		ageHours = 0.1
	}

	score := float64(p.Score)
	if score < 0 {
		score = 0
	}
	comments := float64(p.NumComments)
	if comments < 0 {
		comments = 0
	}

	velocity := score / ageHours
	interaction := comments / math.Max(score, 1)

	momentum := velocity
	if ageHours <= 6 {
		momentum *= 2
	}

	viral := velocity*0.4 +
		interaction*20*0.3 +
		momentum*0.2 +
		math.Min(score/100, 10)*0.1
	if viral > 100 {
		viral = 100
	}

	return ViralSignal{
		PostID:        p.ID,
		Score:         round2(viral),
		Velocity:      round2(velocity),
		Interaction:   round3(interaction),
		EarlyMomentum: round2(momentum),
		AgeHours:      round1(ageHours),
		Band:          ViralBand(viral),
	}
}

// ViralBand classifies a viral score into high (>=70), medium (>=40) or low.
func ViralBand(score float64) string {
	switch {
	case score >= 70:
		return BandHigh
	case score >= 40:
		return BandMedium
	default:
		return BandLow
	}
}

// FallbackLabel converts a viral signal into a degraded-mode trend label.
// The adjustment is the viral score rescaled to [0,1].
func FallbackLabel(sig ViralSignal) trend.TrendLabel {
	return trend.TrendLabel{
		Class:      sig.Band,
		Adjustment: sig.Score / 100,
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
