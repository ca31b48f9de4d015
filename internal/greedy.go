package internal

import "container/heap"

// gainEntry is one candidate in the scheduler's working set. bound is the
// candidate's last-known marginal gain, an upper bound on its true gain by
// submodularity. round records when the bound was computed; an entry is
// stale once a pick has been accepted since.
type gainEntry struct {
	index int
	bound float64
	round int
}

// gainHeap is a max-heap on bound, ties broken by smaller original index so
// repeated runs over identical input pop candidates in the same order.
type gainHeap []gainEntry

func (h gainHeap) Len() int { return len(h) }

func (h gainHeap) Less(i, j int) bool {
	if h[i].bound != h[j].bound {
		return h[i].bound > h[j].bound
	}
	return h[i].index < h[j].index
}

func (h gainHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *gainHeap) Push(x any) { *h = append(*h, x.(gainEntry)) }

func (h *gainHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// lazyGreedy runs lazy-greedy selection over state until maxPicks items are
// accepted, the candidate pool is exhausted, or stop (if non-nil) reports
// saturation after an accepted pick. It returns the picked indices in
// acceptance order and the marginal gain recorded at each pick.
//
// The result is identical to brute-force greedy: a popped stale entry is
// re-scored and only accepted if it still dominates the next cached bound
// (strictly, or by smaller index on an exact tie).
func lazyGreedy(state *coverageState, maxPicks int, stop func(gain float64) bool) ([]int, []float64) {
	n := len(state.vecs)

	h := make(gainHeap, n)
	for i := 0; i < n; i++ {
		h[i] = gainEntry{index: i, bound: state.gain(i)}
	}
	heap.Init(&h)

	picks := make([]int, 0, maxPicks)
	gains := make([]float64, 0, maxPicks)

	round := 0
	for len(picks) < maxPicks && h.Len() > 0 {
		e := heap.Pop(&h).(gainEntry)

		if e.round != round {
			e.bound = state.gain(e.index)
			e.round = round

			if h.Len() > 0 {
				next := h[0]
				if e.bound < next.bound || (e.bound == next.bound && e.index > next.index) {
					heap.Push(&h, e)
					continue
				}
			}
		}

		state.accept(e.index)
		picks = append(picks, e.index)
		gains = append(gains, e.bound)
		round++

		if stop != nil && stop(e.bound) {
			break
		}
	}

	return picks, gains
}
