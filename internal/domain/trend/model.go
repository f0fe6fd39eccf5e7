// internal/domain/trend/model.go

package trend

import (
	"time"
)

// Post is an immutable Reddit post record flowing through the pipeline.
// Identity is the ID field; every other field must survive the pipeline
// unmodified wherever the post resurfaces.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"selftext,omitempty"`
	Author      string    `json:"author,omitempty"`
	Subreddit   string    `json:"subreddit"`
	Score       int       `json:"score"`
	NumComments int       `json:"num_comments"`
	UpvoteRatio float64   `json:"upvote_ratio,omitempty"`
	URL         string    `json:"url,omitempty"`
	Permalink   string    `json:"permalink,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TrendLabel is a sentiment/virality classification attached to a post.
// Class is an open set ("viral", "rising", "steady", "negative", ...);
// Adjustment is a normalized [0,1] trend contribution.
type TrendLabel struct {
	Class      string  `json:"class"`
	Adjustment float64 `json:"adjustment"`
}

// ScoredPost pairs a post with its scores for one pipeline run. Relevance
// is kept alongside the post rather than on it so input records stay intact.
type ScoredPost struct {
	Post      Post        `json:"post"`
	Relevance float64     `json:"relevance"`
	Final     float64     `json:"final"`
	Label     *TrendLabel `json:"label,omitempty"`
}

// Report is the ranked output of one analysis run. Retained and Excluded are
// disjoint; both are sorted by descending final score, then descending
// creation time, then ascending id. Degraded marks runs where judgment
// signals were unavailable and relevance-only scoring was used.
type Report struct {
	ID          string       `json:"id"`
	Description string       `json:"description,omitempty"`
	Keywords    []string     `json:"keywords,omitempty"`
	Subreddits  []string     `json:"subreddits,omitempty"`
	Retained    []ScoredPost `json:"retained"`
	Excluded    []ScoredPost `json:"excluded"`
	SkippedIDs  []string     `json:"skipped_ids,omitempty"`
	Degraded    bool         `json:"degraded"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// WordCount is one row of a word-cloud table.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// WordTables holds the two word-cloud frequency tables. Each table has
// unique (case-insensitive) words sorted by descending count, then
// ascending lexicographic order.
type WordTables struct {
	Emotion  []WordCount `json:"emotion"`
	Demand   []WordCount `json:"demand"`
	Degraded bool        `json:"degraded"`
}

// KeywordSet is the search vocabulary derived from a product description.
type KeywordSet struct {
	Keywords   []string `json:"keywords"`
	Subreddits []string `json:"subreddits"`
}

// Partition is a relevance split of a judged batch, by post id.
type Partition struct {
	Relevant    []string `json:"r_data"`
	NotRelevant []string `json:"nr_data"`
}

// WordClassification buckets tokens into emotion and demand vocabularies.
// Tokens absent from both buckets are discarded.
type WordClassification struct {
	Emotion []string `json:"emotion"`
	Demand  []string `json:"demand"`
}
