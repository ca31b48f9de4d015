package internal

import (
	"context"
	"fmt"
	"time"
)

// Use case input/output DTOs

type SelectInput struct {
	Vectors   [][]float32
	Keys      []string // optional, aligned with Vectors
	K         int      // 0 means automatic sizing
	Scope     string
	GainRatio float64 // 0 means config default
	Window    int     // 0 means config default
}

type PickOutput struct {
	Index int
	Key   string
	Gain  float64
}

type SelectOutput struct {
	Picks []PickOutput
	Auto  bool
}

type SelectCorpusInput struct {
	K         int
	Scope     string
	GainRatio float64
	Window    int
}

type CorpusAddInput struct {
	Key    string
	Vector []float32
	Scope  string
}

type CorpusRemoveInput struct {
	Key   string
	Scope string
}

type CorpusListInput struct {
	Scope string
}

type CorpusItemOutput struct {
	Key       string
	Dimension int
	AddedAt   time.Time
}

type CorpusListOutput struct {
	Items []CorpusItemOutput
}

type SimilarInput struct {
	Key   string
	Limit int
	Scope string
}

type SimilarResultOutput struct {
	Key   string
	Score float32
}

type SimilarOutput struct {
	Results []SimilarResultOutput
}

// UseCases bundles the wired use cases for the CLI and the public client.
type UseCases struct {
	Select       *SelectUseCase
	SelectCorpus *SelectCorpusUseCase
	CorpusAdd    *CorpusAddUseCase
	CorpusList   *CorpusListUseCase
	CorpusRemove *CorpusRemoveUseCase
	Similar      *SimilarUseCase
}

// Use cases

type SelectUseCase struct {
	resolver *ScopeResolver
}

func NewSelectUseCase(resolver *ScopeResolver) *SelectUseCase {
	return &SelectUseCase{resolver: resolver}
}

func (uc *SelectUseCase) Execute(ctx context.Context, input SelectInput) (*SelectOutput, error) {
	if input.Keys != nil && len(input.Keys) != len(input.Vectors) {
		return nil, fmt.Errorf("%w: %d keys for %d vectors", ErrInvalidInput, len(input.Keys), len(input.Vectors))
	}

	scope := uc.resolver.Resolve(input.Scope)
	cfg, err := LoadConfig(scope)
	if err != nil {
		return nil, err
	}

	policy := saturationFor(cfg, input.GainRatio, input.Window)
	return runSelection(policy, input.Vectors, input.Keys, input.K)
}

type SelectCorpusUseCase struct {
	resolver  *ScopeResolver
	corpusFor func(Scope) (*Corpus, error)
}

func NewSelectCorpusUseCase(
	resolver *ScopeResolver,
	corpusFor func(Scope) (*Corpus, error),
) *SelectCorpusUseCase {
	return &SelectCorpusUseCase{
		resolver:  resolver,
		corpusFor: corpusFor,
	}
}

func (uc *SelectCorpusUseCase) Execute(ctx context.Context, input SelectCorpusInput) (*SelectOutput, error) {
	scope := uc.resolver.Resolve(input.Scope)

	corpus, err := uc.corpusFor(scope)
	if err != nil {
		return nil, fmt.Errorf("get corpus: %w", err)
	}

	items, err := corpus.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCorpus
	}

	vectors := make([][]float32, len(items))
	keys := make([]string, len(items))
	for i, item := range items {
		vectors[i] = item.Vector
		keys[i] = item.Key.String()
	}

	cfg, err := LoadConfig(scope)
	if err != nil {
		return nil, err
	}

	policy := saturationFor(cfg, input.GainRatio, input.Window)
	return runSelection(policy, vectors, keys, input.K)
}

func saturationFor(cfg *Config, ratio float64, window int) SaturationPolicy {
	policy := cfg.SaturationPolicy()
	if ratio > 0 {
		policy.GainRatio = ratio
	}
	if window > 0 {
		policy.Window = window
	}
	return policy
}

func runSelection(policy SaturationPolicy, vectors [][]float32, keys []string, k int) (*SelectOutput, error) {
	selector := NewSelector(WithSaturation(policy))

	var sel *Selection
	var err error
	if k > 0 {
		sel, err = selector.Select(vectors, k)
	} else {
		sel, err = selector.SelectAuto(vectors)
	}
	if err != nil {
		return nil, err
	}

	picks := make([]PickOutput, len(sel.Indices))
	for i, idx := range sel.Indices {
		pick := PickOutput{Index: idx, Gain: sel.Gains[i]}
		if keys != nil {
			pick.Key = keys[idx]
		}
		picks[i] = pick
	}

	return &SelectOutput{Picks: picks, Auto: sel.Auto}, nil
}

type CorpusAddUseCase struct {
	resolver  *ScopeResolver
	corpusFor func(Scope) (*Corpus, error)
}

func NewCorpusAddUseCase(
	resolver *ScopeResolver,
	corpusFor func(Scope) (*Corpus, error),
) *CorpusAddUseCase {
	return &CorpusAddUseCase{
		resolver:  resolver,
		corpusFor: corpusFor,
	}
}

func (uc *CorpusAddUseCase) Execute(ctx context.Context, input CorpusAddInput) error {
	key, err := NewKey(input.Key)
	if err != nil {
		return err
	}

	scope := uc.resolver.Resolve(input.Scope)
	corpus, err := uc.corpusFor(scope)
	if err != nil {
		return fmt.Errorf("get corpus: %w", err)
	}

	return corpus.Add(ctx, Item{Key: key, Vector: input.Vector})
}

type CorpusListUseCase struct {
	resolver  *ScopeResolver
	corpusFor func(Scope) (*Corpus, error)
}

func NewCorpusListUseCase(
	resolver *ScopeResolver,
	corpusFor func(Scope) (*Corpus, error),
) *CorpusListUseCase {
	return &CorpusListUseCase{
		resolver:  resolver,
		corpusFor: corpusFor,
	}
}

func (uc *CorpusListUseCase) Execute(ctx context.Context, input CorpusListInput) (*CorpusListOutput, error) {
	scope := uc.resolver.Resolve(input.Scope)
	corpus, err := uc.corpusFor(scope)
	if err != nil {
		return nil, fmt.Errorf("get corpus: %w", err)
	}

	items, err := corpus.List(ctx)
	if err != nil {
		return nil, err
	}

	output := &CorpusListOutput{
		Items: make([]CorpusItemOutput, len(items)),
	}
	for i, item := range items {
		output.Items[i] = CorpusItemOutput{
			Key:       item.Key.String(),
			Dimension: len(item.Vector),
			AddedAt:   item.AddedAt,
		}
	}

	return output, nil
}

type CorpusRemoveUseCase struct {
	resolver  *ScopeResolver
	corpusFor func(Scope) (*Corpus, error)
}

func NewCorpusRemoveUseCase(
	resolver *ScopeResolver,
	corpusFor func(Scope) (*Corpus, error),
) *CorpusRemoveUseCase {
	return &CorpusRemoveUseCase{
		resolver:  resolver,
		corpusFor: corpusFor,
	}
}

func (uc *CorpusRemoveUseCase) Execute(ctx context.Context, input CorpusRemoveInput) error {
	key, err := NewKey(input.Key)
	if err != nil {
		return err
	}

	scope := uc.resolver.Resolve(input.Scope)
	corpus, err := uc.corpusFor(scope)
	if err != nil {
		return fmt.Errorf("get corpus: %w", err)
	}

	return corpus.Remove(ctx, key)
}

type SimilarUseCase struct {
	resolver  *ScopeResolver
	corpusFor func(Scope) (*Corpus, error)
}

func NewSimilarUseCase(
	resolver *ScopeResolver,
	corpusFor func(Scope) (*Corpus, error),
) *SimilarUseCase {
	return &SimilarUseCase{
		resolver:  resolver,
		corpusFor: corpusFor,
	}
}

func (uc *SimilarUseCase) Execute(ctx context.Context, input SimilarInput) (*SimilarOutput, error) {
	key, err := NewKey(input.Key)
	if err != nil {
		return nil, err
	}
	if input.Limit < 1 {
		input.Limit = 10
	}

	scope := uc.resolver.Resolve(input.Scope)
	corpus, err := uc.corpusFor(scope)
	if err != nil {
		return nil, fmt.Errorf("get corpus: %w", err)
	}

	item, err := corpus.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	items, err := corpus.List(ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadConfig(scope)
	if err != nil {
		return nil, err
	}

	index, err := BuildNeighborIndex(items, cfg.Corpus.NumTrees)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	// Ask for one extra hit so the query item itself can be dropped.
	neighbors, err := index.Nearest(item.Vector, input.Limit+1)
	if err != nil {
		return nil, err
	}

	output := &SimilarOutput{}
	for _, n := range neighbors {
		if n.Key == key {
			continue
		}
		output.Results = append(output.Results, SimilarResultOutput{
			Key:   n.Key.String(),
			Score: n.Score,
		})
		if len(output.Results) >= input.Limit {
			break
		}
	}

	return output, nil
}
