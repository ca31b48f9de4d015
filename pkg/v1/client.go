package v1

import (
	"context"
	"fmt"

	"github.com/4thel00z/diverse/internal"
)

// Client provides programmatic access to diverse selection and the corpus.
type Client struct {
	uc        *internal.UseCases
	scope     string
	gainRatio float64
	window    int
	embedder  Embedder
}

// New creates a new Client with the given options.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	resolver := internal.NewScopeResolver()

	corpusFor := func(scope internal.Scope) (*internal.Corpus, error) {
		return internal.NewCorpus(scope)
	}

	uc := &internal.UseCases{
		Select:       internal.NewSelectUseCase(resolver),
		SelectCorpus: internal.NewSelectCorpusUseCase(resolver, corpusFor),
		CorpusAdd:    internal.NewCorpusAddUseCase(resolver, corpusFor),
		CorpusList:   internal.NewCorpusListUseCase(resolver, corpusFor),
		CorpusRemove: internal.NewCorpusRemoveUseCase(resolver, corpusFor),
		Similar:      internal.NewSimilarUseCase(resolver, corpusFor),
	}

	return &Client{
		uc:        uc,
		scope:     cfg.scope,
		gainRatio: cfg.gainRatio,
		window:    cfg.window,
		embedder:  cfg.embedder,
	}, nil
}

// Select picks exactly k of the given vectors and returns their original
// indices in pick order.
func (c *Client) Select(ctx context.Context, vectors [][]float32, k int) ([]int, error) {
	out, err := c.uc.Select.Execute(ctx, internal.SelectInput{
		Vectors: vectors, K: k, Scope: c.scope,
	})
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}

	return selectionFrom(out).Indices(), nil
}

// SelectAuto picks vectors until marginal gains saturate and returns the
// picks together with their gains.
func (c *Client) SelectAuto(ctx context.Context, vectors [][]float32) (*Selection, error) {
	out, err := c.uc.Select.Execute(ctx, internal.SelectInput{
		Vectors: vectors, Scope: c.scope,
		GainRatio: c.gainRatio, Window: c.window,
	})
	if err != nil {
		return nil, fmt.Errorf("select auto: %w", err)
	}

	return selectionFrom(out), nil
}

// SelectCorpus runs selection over the corpus; k = 0 means automatic sizing.
func (c *Client) SelectCorpus(ctx context.Context, k int) (*Selection, error) {
	out, err := c.uc.SelectCorpus.Execute(ctx, internal.SelectCorpusInput{
		K: k, Scope: c.scope,
		GainRatio: c.gainRatio, Window: c.window,
	})
	if err != nil {
		return nil, fmt.Errorf("select corpus: %w", err)
	}

	return selectionFrom(out), nil
}

// CorpusAdd stores a vector under the given key.
func (c *Client) CorpusAdd(ctx context.Context, key string, vector []float32) error {
	if err := c.uc.CorpusAdd.Execute(ctx, internal.CorpusAddInput{
		Key: key, Vector: vector, Scope: c.scope,
	}); err != nil {
		return fmt.Errorf("corpus add: %w", err)
	}
	return nil
}

// CorpusAddText embeds text with the configured embedder and stores the
// resulting vector under the given key.
func (c *Client) CorpusAddText(ctx context.Context, key, text string) error {
	if c.embedder == nil {
		return fmt.Errorf("no embedder configured")
	}

	vector, err := c.embedder.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("embed: %w", err)
	}

	return c.CorpusAdd(ctx, key, vector)
}

// CorpusRemove deletes the item with the given key.
func (c *Client) CorpusRemove(ctx context.Context, key string) error {
	if err := c.uc.CorpusRemove.Execute(ctx, internal.CorpusRemoveInput{
		Key: key, Scope: c.scope,
	}); err != nil {
		return fmt.Errorf("corpus remove: %w", err)
	}
	return nil
}

// Similar returns up to n corpus items nearest to the item stored under key.
func (c *Client) Similar(ctx context.Context, key string, n int) ([]Neighbor, error) {
	out, err := c.uc.Similar.Execute(ctx, internal.SimilarInput{
		Key: key, Limit: n, Scope: c.scope,
	})
	if err != nil {
		return nil, fmt.Errorf("similar: %w", err)
	}

	neighbors := make([]Neighbor, len(out.Results))
	for i, r := range out.Results {
		neighbors[i] = Neighbor{Key: r.Key, Score: r.Score}
	}
	return neighbors, nil
}

func selectionFrom(out *internal.SelectOutput) *Selection {
	sel := &Selection{
		Picks: make([]Pick, len(out.Picks)),
		Auto:  out.Auto,
	}
	for i, p := range out.Picks {
		sel.Picks[i] = Pick{Index: p.Index, Key: p.Key, Gain: p.Gain}
	}
	return sel
}
