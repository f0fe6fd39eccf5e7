// internal/service/judgment/adapter.go

package judgment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/responses"
	"go.uber.org/zap"

	"trendlens/internal/domain/trend"
)

// Config carries the adapter's tunables.
type Config struct {
	Model        string
	BatchTimeout time.Duration
	MaxTokens    int
}

// DefaultConfig returns the default provider settings.
func DefaultConfig() Config {
	return Config{
		Model:        "gpt-4o-mini",
		BatchTimeout: 30 * time.Second,
		MaxTokens:    2000,
	}
}

// completer abstracts one structured-output provider round-trip.
type completer interface {
	complete(ctx context.Context, instructions, input, schemaName string, schema map[string]interface{}) (string, error)
}

// Adapter implements trend.Judge against an OpenAI-compatible provider.
// Every call is one bounded batch with a per-batch deadline; malformed or
// timed-out responses are retried once with the same batch and then
// surfaced as ErrMalformed/ErrTimeout so callers can degrade.
type Adapter struct {
	completer completer
	cfg       Config
	logger    *zap.Logger
}

var _ trend.Judge = (*Adapter)(nil)

// NewAdapter creates a judgment adapter backed by the given OpenAI client.
func NewAdapter(client *openai.Client, cfg Config, logger *zap.Logger) *Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BatchTimeout <= 0 {
		cfg.BatchTimeout = DefaultConfig().BatchTimeout
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultConfig().MaxTokens
	}
	return &Adapter{
		completer: &openAICompleter{client: client, model: cfg.Model, maxTokens: cfg.MaxTokens},
		cfg:       cfg,
		logger:    logger,
	}
}

// Response shapes expected from the provider.

type keywordResponse struct {
	Keywords   []string `json:"keywords"`
	Subreddits []string `json:"subreddits"`
}

type partitionEntry struct {
	ID string `json:"id"`
}

type partitionResponse struct {
	RData  []partitionEntry `json:"r_data"`
	NRData []partitionEntry `json:"nr_data"`
}

type labelEntry struct {
	ID         string   `json:"id"`
	Class      string   `json:"class"`
	Adjustment *float64 `json:"adjustment"`
}

type labelResponse struct {
	Labels []labelEntry `json:"labels"`
}

type wordResponse struct {
	Emotion []string `json:"emotion"`
	Demand  []string `json:"demand"`
}

var (
	keywordSchema   = generateSchema[keywordResponse]()
	partitionSchema = generateSchema[partitionResponse]()
	labelSchema     = generateSchema[labelResponse]()
	wordSchema      = generateSchema[wordResponse]()
)

// ExtractKeywords derives search keywords and candidate subreddits from a
// product description. Missing lists default to empty.
func (a *Adapter) ExtractKeywords(ctx context.Context, description string) (trend.KeywordSet, error) {
	var out keywordResponse
	err := a.callJSON(ctx, keywordInstructions, description, "KeywordSet", keywordSchema, func(raw string) error {
		out = keywordResponse{}
		return decodeModelJSON(raw, &out)
	})
	if err != nil {
		return trend.KeywordSet{}, err
	}
	return trend.KeywordSet{
		Keywords:   nonNil(out.Keywords),
		Subreddits: nonNil(out.Subreddits),
	}, nil
}

// PartitionRelevance asks the provider to split the batch by relevance to
// the description, then reconciles the answer against the input ids.
func (a *Adapter) PartitionRelevance(ctx context.Context, description string, posts []trend.Post) (trend.Partition, error) {
	if len(posts) == 0 {
		return trend.Partition{Relevant: []string{}, NotRelevant: []string{}}, nil
	}

	input, err := batchInput(description, posts)
	if err != nil {
		return trend.Partition{}, err
	}

	var out partitionResponse
	err = a.callJSON(ctx, partitionInstructions, input, "RelevancePartition", partitionSchema, func(raw string) error {
		out = partitionResponse{}
		return decodeModelJSON(raw, &out)
	})
	if err != nil {
		return trend.Partition{}, err
	}

	raw := trend.Partition{}
	for _, e := range out.RData {
		raw.Relevant = append(raw.Relevant, e.ID)
	}
	for _, e := range out.NRData {
		raw.NotRelevant = append(raw.NotRelevant, e.ID)
	}
	return CrossCheckPartition(posts, raw), nil
}

// LabelTrends asks the provider for per-post trend labels. Entries with
// fabricated ids are dropped; a missing adjustment rejects the whole batch
// as malformed.
func (a *Adapter) LabelTrends(ctx context.Context, description string, posts []trend.Post) (map[string]trend.TrendLabel, error) {
	if len(posts) == 0 {
		return map[string]trend.TrendLabel{}, nil
	}

	input, err := batchInput(description, posts)
	if err != nil {
		return nil, err
	}

	var out labelResponse
	err = a.callJSON(ctx, labelInstructions, input, "TrendLabels", labelSchema, func(raw string) error {
		out = labelResponse{}
		if err := decodeModelJSON(raw, &out); err != nil {
			return err
		}
		for _, e := range out.Labels {
			if e.Adjustment == nil {
				return fmt.Errorf("%w: label for %q has no adjustment", ErrMalformed, e.ID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return crossCheckLabels(posts, out.Labels), nil
}

// ClassifyWords buckets tokens into emotion and demand vocabularies,
// restricted to tokens that were actually sent.
func (a *Adapter) ClassifyWords(ctx context.Context, tokens []string) (trend.WordClassification, error) {
	if len(tokens) == 0 {
		return trend.WordClassification{Emotion: []string{}, Demand: []string{}}, nil
	}

	input, err := json.Marshal(tokens)
	if err != nil {
		return trend.WordClassification{}, fmt.Errorf("marshal token batch: %w", err)
	}

	var out wordResponse
	err = a.callJSON(ctx, wordInstructions, string(input), "WordBuckets", wordSchema, func(raw string) error {
		out = wordResponse{}
		return decodeModelJSON(raw, &out)
	})
	if err != nil {
		return trend.WordClassification{}, err
	}
	return trend.WordClassification{
		Emotion: crossCheckTokens(tokens, out.Emotion),
		Demand:  crossCheckTokens(tokens, out.Demand),
	}, nil
}

// callJSON performs one judged batch: provider call under the batch
// deadline, then tolerant extraction and validation via decode. One retry
// with the same batch, then the classified error is returned. A caller
// cancellation is honored immediately and never retried.
func (a *Adapter) callJSON(ctx context.Context, instructions, input, schemaName string, schema map[string]interface{}, decode func(raw string) error) error {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		callCtx, cancel := context.WithTimeout(ctx, a.cfg.BatchTimeout)
		raw, err := a.completer.complete(callCtx, instructions, input, schemaName, schema)
		cancel()

		switch {
		case err == nil:
			if decodeErr := decode(raw); decodeErr != nil {
				lastErr = decodeErr
				a.logger.Warn("judgment response malformed",
					zap.String("schema", schemaName),
					zap.Int("attempt", attempt+1),
					zap.Error(decodeErr))
				continue
			}
			return nil
		case ctx.Err() != nil:
			// Caller abandoned the run; not the provider's fault.
			return ctx.Err()
		case errors.Is(err, context.DeadlineExceeded):
			lastErr = fmt.Errorf("%w: %v", ErrTimeout, err)
		default:
			lastErr = fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		a.logger.Warn("judgment call failed",
			zap.String("schema", schemaName),
			zap.Int("attempt", attempt+1),
			zap.Error(err))
	}
	return lastErr
}

// batchInput serializes the description plus the post batch. Only the
// fields the provider needs are sent; originals stay untouched.
func batchInput(description string, posts []trend.Post) (string, error) {
	type inputPost struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		Body        string `json:"selftext,omitempty"`
		Subreddit   string `json:"subreddit"`
		Score       int    `json:"score"`
		NumComments int    `json:"num_comments"`
	}

	batch := make([]inputPost, 0, len(posts))
	for _, p := range posts {
		batch = append(batch, inputPost{
			ID:          p.ID,
			Title:       p.Title,
			Body:        p.Body,
			Subreddit:   p.Subreddit,
			Score:       p.Score,
			NumComments: p.NumComments,
		})
	}

	payload := struct {
		Description string      `json:"description"`
		Posts       []inputPost `json:"posts"`
	}{Description: description, Posts: batch}

	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal judgment batch: %w", err)
	}
	return string(b), nil
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

// openAICompleter is the real provider transport.
type openAICompleter struct {
	client    *openai.Client
	model     string
	maxTokens int
}

func (o *openAICompleter) complete(ctx context.Context, instructions, input, schemaName string, schema map[string]interface{}) (string, error) {
	format := responses.ResponseFormatTextConfigUnionParam{
		OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
			Name:   schemaName,
			Schema: schema,
			Strict: openai.Bool(true),
			Type:   "json_schema",
		},
	}

	params := responses.ResponseNewParams{
		Model:           o.model,
		MaxOutputTokens: openai.Int(int64(o.maxTokens)),
		Instructions:    openai.String(instructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(input, responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: format,
		},
	}

	resp, err := o.client.Responses.New(ctx, params)
	if err != nil {
		return "", err
	}
	return resp.OutputText(), nil
}
