// internal/service/wordcloud/extractor.go

package wordcloud

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"trendlens/internal/domain/trend"
)

// Config carries the extractor's tunables.
type Config struct {
	// BatchSize caps how many tokens one judgment batch carries.
	BatchSize int
	// ExtraStopwords are merged into the built-in stop-word set.
	ExtraStopwords []string
}

// DefaultConfig returns the default extraction settings.
func DefaultConfig() Config {
	return Config{BatchSize: 100}
}

// Extractor turns post text into the two word-cloud frequency tables.
// Token classification goes through the judgment provider when available
// and falls back to the local lexicon when it is not.
type Extractor struct {
	judge  trend.Judge
	cfg    Config
	logger *zap.Logger
	stop   map[string]bool
}

// NewExtractor creates an extractor. A nil judge selects the local
// classifier outright without marking results degraded.
func NewExtractor(judge trend.Judge, cfg Config, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultConfig().BatchSize
	}

	stop := make(map[string]bool, len(stopwords)+len(cfg.ExtraStopwords))
	for w := range stopwords {
		stop[w] = true
	}
	for _, w := range cfg.ExtraStopwords {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			stop[w] = true
		}
	}

	return &Extractor{judge: judge, cfg: cfg, logger: logger, stop: stop}
}

// Extract tokenizes every post's title and body, classifies the surviving
// tokens into emotion and demand buckets, and returns the two merged
// frequency tables. Counts merge case-insensitively across the whole post
// set; tables are sorted by descending count then ascending word, so
// repeated runs over the same input are identical.
func (e *Extractor) Extract(ctx context.Context, posts []trend.Post) (trend.WordTables, error) {
	tables := trend.WordTables{Emotion: []trend.WordCount{}, Demand: []trend.WordCount{}}
	if len(posts) == 0 {
		return tables, nil
	}

	counts := map[string]int{}
	for _, p := range posts {
		e.countTokens(p.Title, counts)
		e.countTokens(p.Body, counts)
	}
	if len(counts) == 0 {
		return tables, nil
	}

	tokens := make([]string, 0, len(counts))
	for tok := range counts {
		tokens = append(tokens, tok)
	}
	sort.Strings(tokens)

	class, degraded := e.classify(ctx, tokens)
	tables.Degraded = degraded

	tables.Emotion = buildTable(class.Emotion, counts)
	tables.Demand = buildTable(class.Demand, counts)
	return tables, nil
}

// countTokens normalizes one text fragment and accumulates token counts.
func (e *Extractor) countTokens(text string, counts map[string]int) {
	text = strings.ToLower(stripMarkup(text))
	if text == "" {
		return
	}

	// Known phrases are counted atomically and masked out so their
	// component words are not double counted.
	for _, phrase := range phrases {
		n := strings.Count(text, phrase)
		if n == 0 {
			continue
		}
		counts[phrase] += n
		text = strings.ReplaceAll(text, phrase, " ")
	}

	for _, tok := range splitTokens(text) {
		tok = singularize(tok)
		if e.stop[tok] {
			continue
		}
		counts[tok]++
	}
}

// classify resolves the token buckets, degrading to the local lexicon when
// the judgment provider fails or is absent.
func (e *Extractor) classify(ctx context.Context, tokens []string) (trend.WordClassification, bool) {
	if e.judge == nil {
		return localClassify(tokens), false
	}

	merged := trend.WordClassification{Emotion: []string{}, Demand: []string{}}
	for start := 0; start < len(tokens); start += e.cfg.BatchSize {
		end := start + e.cfg.BatchSize
		if end > len(tokens) {
			end = len(tokens)
		}
		part, err := e.judge.ClassifyWords(ctx, tokens[start:end])
		if err != nil {
			e.logger.Warn("word classification degraded to local lexicon", zap.Error(err))
			return localClassify(tokens), true
		}
		merged.Emotion = append(merged.Emotion, part.Emotion...)
		merged.Demand = append(merged.Demand, part.Demand...)
	}
	return merged, false
}

func localClassify(tokens []string) trend.WordClassification {
	out := trend.WordClassification{Emotion: []string{}, Demand: []string{}}
	for _, tok := range tokens {
		switch {
		case emotionLexicon[tok]:
			out.Emotion = append(out.Emotion, tok)
		case demandLexicon[tok]:
			out.Demand = append(out.Demand, tok)
		}
	}
	return out
}

// buildTable assembles one sorted frequency table from a token bucket.
// Words never repeat and counts are always at least 1.
func buildTable(bucket []string, counts map[string]int) []trend.WordCount {
	seen := map[string]bool{}
	table := make([]trend.WordCount, 0, len(bucket))
	for _, word := range bucket {
		word = strings.ToLower(word)
		if seen[word] || counts[word] < 1 {
			continue
		}
		seen[word] = true
		table = append(table, trend.WordCount{Word: word, Count: counts[word]})
	}

	sort.Slice(table, func(i, j int) bool {
		if table[i].Count != table[j].Count {
			return table[i].Count > table[j].Count
		}
		return table[i].Word < table[j].Word
	})
	return table
}

var (
	fencedCodeRe = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRe = regexp.MustCompile("`[^`]*`")
	mdLinkRe     = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	urlRe        = regexp.MustCompile(`https?://\S+`)
)

// stripMarkup removes code fragments and markdown artifacts before
// tokenization: fenced and inline code disappear entirely, links keep
// their label, bare URLs disappear.
func stripMarkup(text string) string {
	text = fencedCodeRe.ReplaceAllString(text, " ")
	text = inlineCodeRe.ReplaceAllString(text, " ")
	text = mdLinkRe.ReplaceAllString(text, "$1")
	text = urlRe.ReplaceAllString(text, " ")
	return text
}

// splitTokens breaks text into letter/digit runs. CJK runs survive as
// single tokens; single-rune Latin fragments are noise and dropped.
func splitTokens(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	out := make([]string, 0, len(fields))
	for _, f := range fields {
		runes := []rune(f)
		if len(runes) < 2 && runes[0] < 0x2E80 {
			continue
		}
		out = append(out, f)
	}
	return out
}

// singularize folds recognized English plural forms onto their singular.
func singularize(tok string) string {
	switch {
	case strings.HasSuffix(tok, "ies") && len(tok) > 4:
		return tok[:len(tok)-3] + "y"
	case strings.HasSuffix(tok, "xes") || strings.HasSuffix(tok, "ches") ||
		strings.HasSuffix(tok, "shes") || strings.HasSuffix(tok, "sses"):
		return tok[:len(tok)-2]
	case strings.HasSuffix(tok, "s") && len(tok) > 3 &&
		!strings.HasSuffix(tok, "ss") && !strings.HasSuffix(tok, "us") &&
		!strings.HasSuffix(tok, "is") && !strings.HasSuffix(tok, "ics"):
		return tok[:len(tok)-1]
	default:
		return tok
	}
}
