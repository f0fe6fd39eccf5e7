// internal/service/judgment/validate.go

package judgment

import (
	"strings"

	"trendlens/internal/domain/trend"
)

// CrossCheckPartition reconciles a provider partition against the input
// batch: ids the batch never contained are dropped, duplicates keep their
// first placement, and input ids the provider omitted are treated as
// implicitly excluded. The result therefore always covers exactly the
// input ids, with nothing fabricated.
func CrossCheckPartition(posts []trend.Post, p trend.Partition) trend.Partition {
	known := make(map[string]bool, len(posts))
	for _, post := range posts {
		known[post.ID] = true
	}

	placed := make(map[string]bool, len(posts))
	out := trend.Partition{Relevant: []string{}, NotRelevant: []string{}}

	for _, id := range p.Relevant {
		if known[id] && !placed[id] {
			out.Relevant = append(out.Relevant, id)
			placed[id] = true
		}
	}
	for _, id := range p.NotRelevant {
		if known[id] && !placed[id] {
			out.NotRelevant = append(out.NotRelevant, id)
			placed[id] = true
		}
	}
	for _, post := range posts {
		if !placed[post.ID] {
			out.NotRelevant = append(out.NotRelevant, post.ID)
		}
	}
	return out
}

// crossCheckLabels keeps only labels for ids present in the batch, with a
// validated class and an adjustment clamped to [0,1].
func crossCheckLabels(posts []trend.Post, entries []labelEntry) map[string]trend.TrendLabel {
	known := make(map[string]bool, len(posts))
	for _, post := range posts {
		known[post.ID] = true
	}

	labels := make(map[string]trend.TrendLabel, len(entries))
	for _, e := range entries {
		if e.ID == "" || !known[e.ID] {
			continue
		}
		class := strings.ToLower(strings.TrimSpace(e.Class))
		if class == "" {
			continue
		}
		adj := *e.Adjustment
		if adj < 0 {
			adj = 0
		}
		if adj > 1 {
			adj = 1
		}
		labels[e.ID] = trend.TrendLabel{Class: class, Adjustment: adj}
	}
	return labels
}

// crossCheckTokens lowercases, dedupes and restricts a returned token list
// to the tokens that were actually sent.
func crossCheckTokens(sent, returned []string) []string {
	known := make(map[string]bool, len(sent))
	for _, tok := range sent {
		known[strings.ToLower(tok)] = true
	}

	seen := make(map[string]bool, len(returned))
	out := make([]string, 0, len(returned))
	for _, tok := range returned {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok == "" || !known[tok] || seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}
