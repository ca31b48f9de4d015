package internal

import "fmt"

// coverageState holds the working set of one selection call: the input
// vectors, their precomputed norms, and for every item the best similarity
// to any selected item so far. It is created at call start, mutated only by
// the scheduler, and discarded at call end.
type coverageState struct {
	vecs     [][]float32
	norms    []float64
	bestSim  []float64
	selected []int
}

func newCoverageState(vecs [][]float32) (*coverageState, error) {
	dim := len(vecs[0])
	if dim == 0 {
		return nil, fmt.Errorf("%w: vector 0 has dimension 0", ErrInvalidInput)
	}

	norms := make([]float64, len(vecs))
	for i, v := range vecs {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: vector %d has dimension %d, expected %d", ErrInvalidInput, i, len(v), dim)
		}

		norm, err := vectorNorm(v)
		if err != nil {
			return nil, fmt.Errorf("vector %d: %w", i, err)
		}
		norms[i] = norm
	}

	return &coverageState{
		vecs:    vecs,
		norms:   norms,
		bestSim: make([]float64, len(vecs)),
	}, nil
}

// similarity computes the cosine similarity between items i and j using the
// precomputed norms. Inputs were validated at state construction.
func (s *coverageState) similarity(i, j int) float64 {
	a, b := s.vecs[i], s.vecs[j]

	var dot float64
	for n := range a {
		dot += float64(a[n]) * float64(b[n])
	}

	sim := dot / (s.norms[i] * s.norms[j])
	if sim > 1 {
		sim = 1
	}
	if sim < -1 {
		sim = -1
	}
	return sim
}

// gain returns the marginal coverage increase from adding candidate c to the
// current selected set: sum over all items of max(0, sim(i, c) - bestSim(i)).
func (s *coverageState) gain(c int) float64 {
	var total float64
	for i := range s.vecs {
		if d := s.similarity(i, c) - s.bestSim[i]; d > 0 {
			total += d
		}
	}
	return total
}

// accept adds candidate c to the selected set and folds its similarities
// into bestSim.
func (s *coverageState) accept(c int) {
	for i := range s.vecs {
		if sim := s.similarity(i, c); sim > s.bestSim[i] {
			s.bestSim[i] = sim
		}
	}
	s.selected = append(s.selected, c)
}
