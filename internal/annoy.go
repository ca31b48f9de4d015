package internal

import (
	"fmt"

	"github.com/mariotoffia/goannoy/builder"
	"github.com/mariotoffia/goannoy/interfaces"
)

// DefaultNumTrees is the annoy forest size used when the config does not
// override it.
const DefaultNumTrees = 10

// Neighbor is one nearest-neighbor hit against the corpus.
type Neighbor struct {
	Key   Key
	Score float32 // 0-1, higher is better
}

// NeighborIndex answers approximate nearest-neighbor queries over corpus
// items. It is built in memory from a snapshot of the corpus and discarded
// after use; the corpus file stays the source of truth.
type NeighborIndex struct {
	idx       interfaces.AnnoyIndex[float32, uint32]
	dimension int
	keys      []Key
}

func BuildNeighborIndex(items []Item, numTrees int) (*NeighborIndex, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCorpus
	}
	if numTrees < 1 {
		numTrees = DefaultNumTrees
	}

	dimension := len(items[0].Vector)

	idx := builder.Index[float32, uint32]().
		AngularDistance(dimension).
		UseMultiWorkerPolicy().
		MmapIndexAllocator().
		Build()

	keys := make([]Key, len(items))
	for i, item := range items {
		if len(item.Vector) != dimension {
			return nil, fmt.Errorf("%w: item %q has dimension %d, expected %d", ErrInvalidInput, item.Key, len(item.Vector), dimension)
		}
		idx.AddItem(uint32(i), item.Vector)
		keys[i] = item.Key
	}

	idx.Build(numTrees, -1)

	return &NeighborIndex{
		idx:       idx,
		dimension: dimension,
		keys:      keys,
	}, nil
}

// Nearest returns up to k corpus items closest to the query vector by
// angular distance, mapped to a 0-1 similarity score.
func (x *NeighborIndex) Nearest(query []float32, k int) ([]Neighbor, error) {
	if len(query) != x.dimension {
		return nil, fmt.Errorf("%w: dimension mismatch: expected %d, got %d", ErrInvalidInput, x.dimension, len(query))
	}

	if k > len(x.keys) {
		k = len(x.keys)
	}
	if k < 1 {
		return nil, nil
	}

	searchCtx := x.idx.CreateContext()
	ids, distances := x.idx.GetNnsByVector(query, k, -1, searchCtx)

	neighbors := make([]Neighbor, 0, len(ids))
	for i, id := range ids {
		if int(id) >= len(x.keys) {
			continue
		}

		// Angular distance is in [0, 2]; score = 1 - dist/2.
		var score float32
		if i < len(distances) {
			score = 1.0 - distances[i]/2.0
		}

		neighbors = append(neighbors, Neighbor{
			Key:   x.keys[id],
			Score: score,
		})
	}

	return neighbors, nil
}
