// internal/service/relevance/lexical.go

package relevance

import (
	"strings"

	"trendlens/internal/domain/trend"
)

const (
	titleHit = 1.0
	bodyHit  = 0.5

	exactAffinity  = 1.0
	prefixAffinity = 0.5
)

// KeywordScore returns the case-insensitive match fraction of keywords
// against the post's title and body, in [0,1]. A keyword found in the title
// counts full weight; one found only in the body counts half. The result is
// independent of keyword order and an empty keyword list scores 0.
func KeywordScore(p trend.Post, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}

	title := strings.ToLower(p.Title)
	body := strings.ToLower(p.Body)

	var sum float64
	var counted int
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		counted++
		switch {
		case strings.Contains(title, kw):
			sum += titleHit
		case strings.Contains(body, kw):
			sum += bodyHit
		}
	}
	if counted == 0 {
		return 0
	}
	return sum / float64(counted)
}

// SubredditAffinity scores how well the post's subreddit matches the
// requested list: 1.0 for a case-insensitive exact match, 0.5 when one name
// prefixes the other, 0 otherwise. The best match over the list wins. An
// empty list (or the catch-all "all") scores 0.
func SubredditAffinity(subreddit string, requested []string) float64 {
	sub := strings.ToLower(strings.TrimSpace(subreddit))
	if sub == "" {
		return 0
	}

	var best float64
	for _, want := range requested {
		want = strings.ToLower(strings.TrimSpace(want))
		if want == "" || want == "all" {
			continue
		}
		switch {
		case want == sub:
			return exactAffinity
		case strings.HasPrefix(sub, want) || strings.HasPrefix(want, sub):
			if prefixAffinity > best {
				best = prefixAffinity
			}
		}
	}
	return best
}
