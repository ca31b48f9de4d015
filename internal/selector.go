package internal

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid selection input")
	ErrNumeric      = errors.New("degenerate vector data")
)

// Selection is the result of one selection call: the chosen original indices
// in pick order and the marginal gain recorded at each pick.
type Selection struct {
	Indices []int
	Gains   []float64
	Auto    bool
}

// Selector picks a diverse subset of embedding vectors by maximizing
// facility-location coverage with an exact lazy-greedy scheduler. A Selector
// holds no per-call state; the same instance may serve concurrent calls.
type Selector struct {
	sat SaturationPolicy
}

type SelectorOption func(*Selector)

// WithSaturation overrides the automatic-sizing stopping rule.
func WithSaturation(policy SaturationPolicy) SelectorOption {
	return func(s *Selector) {
		s.sat = policy
	}
}

func NewSelector(opts ...SelectorOption) *Selector {
	s := &Selector{
		sat: SaturationPolicy{GainRatio: DefaultGainRatio, Window: DefaultWindow},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Select picks exactly k of the given vectors. All vectors must share one
// dimension; k must be in [1, len(vectors)].
func (s *Selector) Select(vectors [][]float32, k int) (*Selection, error) {
	state, err := validate(vectors)
	if err != nil {
		return nil, err
	}

	n := len(vectors)
	if k < 1 || k > n {
		return nil, fmt.Errorf("%w: k must be in [1, %d], got %d", ErrInvalidInput, n, k)
	}

	picks, gains := lazyGreedy(state, k, nil)

	return &Selection{Indices: picks, Gains: gains}, nil
}

// SelectAuto picks vectors until marginal gains saturate per the configured
// policy, returning between 1 and len(vectors) indices plus the full gain
// sequence so callers can audit the cutoff.
func (s *Selector) SelectAuto(vectors [][]float32) (*Selection, error) {
	state, err := validate(vectors)
	if err != nil {
		return nil, err
	}

	detector := newSaturationDetector(s.sat)
	picks, gains := lazyGreedy(state, len(vectors), detector.observe)

	if cut := detector.trailing(); cut > 0 && cut < len(picks) {
		picks = picks[:len(picks)-cut]
		gains = gains[:len(gains)-cut]
	}

	return &Selection{Indices: picks, Gains: gains, Auto: true}, nil
}

func validate(vectors [][]float32) (*coverageState, error) {
	if len(vectors) == 0 {
		return nil, fmt.Errorf("%w: no input vectors", ErrInvalidInput)
	}
	return newCoverageState(vectors)
}
