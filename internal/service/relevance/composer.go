// internal/service/relevance/composer.go

package relevance

import (
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"trendlens/internal/domain/trend"
)

// Weights is the fixed priority weighting over the composite score terms.
// Lexical match weighs highest, subreddit affinity next, engagement last.
type Weights struct {
	Lexical    float64
	Subreddit  float64
	Engagement float64
}

// Config carries the composer's tunables. The defaults are calibration
// defaults, not measured optima.
type Config struct {
	Weights   Weights
	Threshold float64
}

// DefaultConfig returns the documented default weighting and the 0.3
// retention threshold.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Lexical:    0.5,
			Subreddit:  0.3,
			Engagement: 0.2,
		},
		Threshold: 0.3,
	}
}

// Composer turns raw posts plus a derived keyword set into a relevance-only
// trend report: composite scoring, thresholding, partitioning and a stable
// total order.
type Composer struct {
	cfg    Config
	logger *zap.Logger
}

// NewComposer creates a composer with the given configuration.
func NewComposer(cfg Config, logger *zap.Logger) *Composer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Composer{cfg: cfg, logger: logger}
}

// Rank scores every valid post and partitions the set at the retention
// threshold (boundary scores are retained). Posts missing an id or carrying
// negative counters are skipped and reported, never silently dropped.
//
// An empty description is a pass-through sentinel: every valid post is
// retained with score 1.0 in its original input order. Otherwise both
// partitions are sorted by descending score, then descending creation time,
// then ascending id.
func (c *Composer) Rank(posts []trend.Post, description string, keywords, subreddits []string) trend.Report {
	report := trend.Report{
		Description: description,
		Keywords:    keywords,
		Subreddits:  subreddits,
		Retained:    []trend.ScoredPost{},
		Excluded:    []trend.ScoredPost{},
		GeneratedAt: time.Now().UTC(),
	}

	valid := make([]trend.Post, 0, len(posts))
	for _, p := range posts {
		if err := validatePost(p); err != nil {
			c.logger.Warn("skipping malformed post",
				zap.String("post_id", p.ID),
				zap.Error(err))
			report.SkippedIDs = append(report.SkippedIDs, p.ID)
			continue
		}
		valid = append(valid, p)
	}

	if description == "" {
		for _, p := range valid {
			report.Retained = append(report.Retained, trend.ScoredPost{
				Post:      p,
				Relevance: 1.0,
				Final:     1.0,
			})
		}
		return report
	}

	// Per-post scoring is a pure map with no ordering dependency, so it
	// runs across posts in parallel and joins before sorting.
	scores := make([]float64, len(valid))
	var wg sync.WaitGroup
	for i := range valid {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			scores[i] = c.compositeScore(valid[i], keywords, subreddits)
		}(i)
	}
	wg.Wait()

	for i, p := range valid {
		sp := trend.ScoredPost{Post: p, Relevance: scores[i], Final: scores[i]}
		if scores[i] >= c.cfg.Threshold {
			report.Retained = append(report.Retained, sp)
		} else {
			c.logger.Debug("post below relevance threshold",
				zap.String("post_id", p.ID),
				zap.Float64("score", scores[i]),
				zap.Float64("threshold", c.cfg.Threshold))
			report.Excluded = append(report.Excluded, sp)
		}
	}

	SortScored(report.Retained)
	SortScored(report.Excluded)
	return report
}

func (c *Composer) compositeScore(p trend.Post, keywords, subreddits []string) float64 {
	w := c.cfg.Weights
	score := w.Lexical*KeywordScore(p, keywords) +
		w.Subreddit*SubredditAffinity(p.Subreddit, subreddits) +
		w.Engagement*NormalizeEngagement(p.Score, p.NumComments, p.UpvoteRatio)
	if score > 1 {
		return 1
	}
	if score < 0 {
		return 0
	}
	return score
}

// SortScored orders scored posts by descending final score, then descending
// creation time (newer first), then ascending id. The id tie-break makes
// the order total, so repeated runs are byte-identical.
func SortScored(posts []trend.ScoredPost) {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].Final != posts[j].Final {
			return posts[i].Final > posts[j].Final
		}
		if !posts[i].Post.CreatedAt.Equal(posts[j].Post.CreatedAt) {
			return posts[i].Post.CreatedAt.After(posts[j].Post.CreatedAt)
		}
		return posts[i].Post.ID < posts[j].Post.ID
	})
}

func validatePost(p trend.Post) error {
	if p.ID == "" {
		return errMissingID
	}
	if p.Score < 0 || p.NumComments < 0 {
		return errNegativeCounters
	}
	return nil
}
