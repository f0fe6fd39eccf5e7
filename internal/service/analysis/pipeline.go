// internal/service/analysis/pipeline.go

package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"trendlens/internal/domain/trend"
	"trendlens/internal/service/relevance"
)

// Publisher emits completed reports to the event bus. Satisfied by
// *nats.Conn.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Config carries the pipeline's tunables.
type Config struct {
	// BatchSize caps how many posts one judgment batch carries.
	BatchSize int
	// Blend weights relevance against judgment adjustments.
	Blend Blend
	// FetchLimit is the default post count when the caller does not set one.
	FetchLimit int
	// TimeFilter is the default listing time window.
	TimeFilter string
	// Subject is the event-bus subject completed reports are published on.
	Subject string
}

// DefaultConfig returns the default pipeline settings.
func DefaultConfig() Config {
	return Config{
		BatchSize:  20,
		Blend:      DefaultBlend(),
		FetchLimit: 50,
		TimeFilter: "week",
		Subject:    "trends.reports",
	}
}

// Request is one analysis run. Posts may be supplied directly; when absent
// they are fetched using the derived keywords and subreddits. Caller-supplied
// keywords and subreddits are merged with the derived set.
type Request struct {
	Description string       `json:"description"`
	Keywords    []string     `json:"keywords,omitempty"`
	Subreddits  []string     `json:"subreddits,omitempty"`
	Posts       []trend.Post `json:"posts,omitempty"`
	Limit       int          `json:"limit,omitempty"`
	TimeFilter  string       `json:"time_filter,omitempty"`
}

// Pipeline orchestrates one analysis run: keyword derivation, post
// collection, relevance ranking, judgment refinement and trend aggregation.
// Judgment failures degrade the run to local signals and flag the report;
// they never fail it. Fetcher, judge, store and publisher are all optional.
type Pipeline struct {
	judge    trend.Judge
	fetcher  trend.Fetcher
	composer *relevance.Composer
	store    trend.ReportStore
	pub      Publisher
	cfg      Config
	logger   *zap.Logger
	now      func() time.Time
}

// NewPipeline assembles a pipeline from its collaborators. Nil judge selects
// local scoring outright without marking reports degraded.
func NewPipeline(judge trend.Judge, fetcher trend.Fetcher, composer *relevance.Composer, store trend.ReportStore, pub Publisher, cfg Config, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultConfig().BatchSize
	}
	if cfg.FetchLimit <= 0 {
		cfg.FetchLimit = DefaultConfig().FetchLimit
	}
	if cfg.TimeFilter == "" {
		cfg.TimeFilter = DefaultConfig().TimeFilter
	}
	if cfg.Subject == "" {
		cfg.Subject = DefaultConfig().Subject
	}
	return &Pipeline{
		judge:    judge,
		fetcher:  fetcher,
		composer: composer,
		store:    store,
		pub:      pub,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// Analyze runs the full pipeline and returns the ranked report. The run is
// all-or-nothing with respect to cancellation: a canceled context returns an
// error and emits nothing, while judgment failures complete the run in
// degraded mode.
func (p *Pipeline) Analyze(ctx context.Context, req Request) (*trend.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	keywords, subreddits, degraded := p.deriveVocabulary(ctx, req)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	posts := req.Posts
	if len(posts) == 0 && p.fetcher != nil {
		fetched, err := p.collectPosts(ctx, keywords, subreddits, req)
		if err != nil {
			return nil, fmt.Errorf("collecting posts: %w", err)
		}
		posts = fetched
	}

	report := p.composer.Rank(posts, req.Description, keywords, subreddits)
	report.ID = uuid.NewString()
	report.Degraded = degraded

	if req.Description != "" && len(report.Retained) > 0 {
		if p.judge != nil {
			if p.refinePartition(ctx, req.Description, &report) {
				report.Degraded = true
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		labels, labelsDegraded := p.labelPosts(ctx, req.Description, report.Retained)
		if labelsDegraded {
			report.Degraded = true
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report = Aggregate(report, labels, p.cfg.Blend)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.emit(ctx, report)
	return &report, nil
}

// deriveVocabulary resolves the keyword and subreddit lists for the run.
// Judgment extraction failures fall back to local tokenization of the
// description and mark the run degraded.
func (p *Pipeline) deriveVocabulary(ctx context.Context, req Request) (keywords, subreddits []string, degraded bool) {
	keywords = req.Keywords
	subreddits = req.Subreddits
	if req.Description == "" {
		return keywords, subreddits, false
	}

	if p.judge == nil {
		return mergeUnique(keywords, localKeywords(req.Description)), subreddits, false
	}

	ks, err := p.judge.ExtractKeywords(ctx, req.Description)
	if err != nil {
		if ctx.Err() != nil {
			return keywords, subreddits, false
		}
		p.logger.Warn("keyword extraction degraded to local tokenization",
			zap.Error(err))
		return mergeUnique(keywords, localKeywords(req.Description)), subreddits, true
	}
	return mergeUnique(keywords, ks.Keywords), mergeUnique(subreddits, ks.Subreddits), false
}

func (p *Pipeline) collectPosts(ctx context.Context, keywords, subreddits []string, req Request) ([]trend.Post, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = p.cfg.FetchLimit
	}
	timeFilter := req.TimeFilter
	if timeFilter == "" {
		timeFilter = p.cfg.TimeFilter
	}

	if len(keywords) > 0 {
		return p.fetcher.SearchPosts(ctx, keywords, subreddits, limit, "relevance", timeFilter)
	}
	return p.fetcher.TrendingPosts(ctx, subreddits, limit, timeFilter)
}

// refinePartition asks the judgment provider which retained posts are
// actually relevant to the description and demotes the rest to the excluded
// list. On judgment failure the lexical partition stands and the report is
// flagged. Returns whether the run degraded.
func (p *Pipeline) refinePartition(ctx context.Context, description string, report *trend.Report) bool {
	notRelevant := map[string]bool{}
	for start := 0; start < len(report.Retained); start += p.cfg.BatchSize {
		end := start + p.cfg.BatchSize
		if end > len(report.Retained) {
			end = len(report.Retained)
		}
		batch := make([]trend.Post, 0, end-start)
		for _, sp := range report.Retained[start:end] {
			batch = append(batch, sp.Post)
		}

		part, err := p.judge.PartitionRelevance(ctx, description, batch)
		if err != nil {
			if ctx.Err() != nil {
				return false
			}
			p.logger.Warn("relevance refinement degraded, keeping lexical partition",
				zap.Error(err))
			return true
		}
		for _, id := range part.NotRelevant {
			notRelevant[id] = true
		}
	}

	if len(notRelevant) == 0 {
		return false
	}
	retained := make([]trend.ScoredPost, 0, len(report.Retained))
	for _, sp := range report.Retained {
		if notRelevant[sp.Post.ID] {
			report.Excluded = append(report.Excluded, sp)
			continue
		}
		retained = append(retained, sp)
	}
	report.Retained = retained
	relevance.SortScored(report.Excluded)
	return false
}

// labelPosts attaches a trend label to each retained post. With no judgment
// provider the local viral-potential signal supplies the labels. A judgment
// failure mid-run marks the run degraded and leaves the remaining posts
// unlabeled, so they keep their relevance-only score.
func (p *Pipeline) labelPosts(ctx context.Context, description string, retained []trend.ScoredPost) (map[string]trend.TrendLabel, bool) {
	labels := make(map[string]trend.TrendLabel, len(retained))
	now := p.now()

	if p.judge == nil {
		for _, sp := range retained {
			labels[sp.Post.ID] = relevance.FallbackLabel(relevance.ViralSignalFor(sp.Post, now))
		}
		return labels, false
	}

	for start := 0; start < len(retained); start += p.cfg.BatchSize {
		end := start + p.cfg.BatchSize
		if end > len(retained) {
			end = len(retained)
		}
		batch := make([]trend.Post, 0, end-start)
		for _, sp := range retained[start:end] {
			batch = append(batch, sp.Post)
		}

		judged, err := p.judge.LabelTrends(ctx, description, batch)
		if err != nil {
			if ctx.Err() != nil {
				return labels, false
			}
			p.logger.Warn("trend labeling degraded, keeping relevance-only scores",
				zap.Error(err))
			return labels, true
		}
		for id, label := range judged {
			labels[id] = label
		}
	}
	return labels, false
}

// emit persists and publishes a completed report. Both paths are
// best-effort; failures are logged and the report is still returned.
func (p *Pipeline) emit(ctx context.Context, report trend.Report) {
	if p.store != nil {
		if err := p.store.SaveReport(ctx, report); err != nil {
			p.logger.Warn("report persistence failed",
				zap.String("report_id", report.ID),
				zap.Error(err))
		}
	}
	if p.pub != nil {
		data, err := json.Marshal(report)
		if err != nil {
			p.logger.Warn("report serialization failed",
				zap.String("report_id", report.ID),
				zap.Error(err))
			return
		}
		if err := p.pub.Publish(p.cfg.Subject, data); err != nil {
			p.logger.Warn("report publish failed",
				zap.String("report_id", report.ID),
				zap.Error(err))
		}
	}
}

var keywordNoise = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"for": true, "with": true, "that": true, "this": true, "of": true,
	"to": true, "in": true, "on": true, "is": true, "are": true,
	"powered": true, "based": true, "using": true,
}

// localKeywords tokenizes a description into a small search vocabulary. It
// backs keyword derivation when no judgment provider is available.
func localKeywords(description string) []string {
	fields := strings.FieldsFunc(strings.ToLower(description), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	out := make([]string, 0, len(fields))
	seen := map[string]bool{}
	for _, f := range fields {
		if keywordNoise[f] || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
		if len(out) == 10 {
			break
		}
	}
	return out
}

// mergeUnique appends extra onto base, dropping case-insensitive duplicates
// and blanks while preserving first-seen order.
func mergeUnique(base, extra []string) []string {
	out := make([]string, 0, len(base)+len(extra))
	seen := map[string]bool{}
	for _, v := range append(append([]string{}, base...), extra...) {
		key := strings.ToLower(strings.TrimSpace(v))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, strings.TrimSpace(v))
	}
	return out
}
