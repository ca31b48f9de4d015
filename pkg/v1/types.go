package v1

import "context"

// Pick is one selected item: its original input index, its key when the
// input was keyed, and the marginal coverage gain recorded at pick time.
type Pick struct {
	Index int     `json:"index"`
	Key   string  `json:"key,omitempty"`
	Gain  float64 `json:"gain"`
}

// Selection is the result of a selection call, in pick order.
type Selection struct {
	Picks []Pick `json:"picks"`
	Auto  bool   `json:"auto"`
}

// Indices returns just the original indices of the picks, in pick order.
func (s *Selection) Indices() []int {
	indices := make([]int, len(s.Picks))
	for i, p := range s.Picks {
		indices[i] = p.Index
	}
	return indices
}

// Neighbor is one nearest-neighbor hit against the corpus.
type Neighbor struct {
	Key   string  `json:"key"`
	Score float32 `json:"score"`
}

// Embedder turns text into an embedding vector. Callers supply their own
// implementation via WithEmbedder; the selection engine itself never embeds.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
