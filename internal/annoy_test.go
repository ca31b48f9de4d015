package internal

import (
	"errors"
	"testing"
)

func neighborTestItems() []Item {
	return []Item{
		{Key: "x-axis", Vector: []float32{1, 0, 0}},
		{Key: "y-axis", Vector: []float32{0, 1, 0}},
		{Key: "near-x", Vector: []float32{0.9, 0.1, 0}},
	}
}

func TestBuildNeighborIndexEmpty(t *testing.T) {
	_, err := BuildNeighborIndex(nil, DefaultNumTrees)
	if !errors.Is(err, ErrEmptyCorpus) {
		t.Errorf("expected ErrEmptyCorpus, got %v", err)
	}
}

func TestBuildNeighborIndexDimensionMismatch(t *testing.T) {
	items := []Item{
		{Key: "a", Vector: []float32{1, 0}},
		{Key: "b", Vector: []float32{1, 0, 0}},
	}

	_, err := BuildNeighborIndex(items, DefaultNumTrees)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestNearest(t *testing.T) {
	idx, err := BuildNeighborIndex(neighborTestItems(), DefaultNumTrees)
	if err != nil {
		t.Fatalf("build index: %v", err)
	}

	neighbors, err := idx.Nearest([]float32{1, 0, 0}, 2)
	if err != nil {
		t.Fatalf("nearest: %v", err)
	}
	if len(neighbors) != 2 {
		t.Fatalf("expected 2 neighbors, got %d", len(neighbors))
	}
	if neighbors[0].Key != "x-axis" {
		t.Errorf("expected x-axis first, got %s", neighbors[0].Key)
	}
	if neighbors[1].Key != "near-x" {
		t.Errorf("expected near-x second, got %s", neighbors[1].Key)
	}
	if neighbors[0].Score < neighbors[1].Score {
		t.Errorf("scores not ordered: %v then %v", neighbors[0].Score, neighbors[1].Score)
	}
}

func TestNearestClampsK(t *testing.T) {
	idx, err := BuildNeighborIndex(neighborTestItems(), DefaultNumTrees)
	if err != nil {
		t.Fatalf("build index: %v", err)
	}

	neighbors, err := idx.Nearest([]float32{1, 0, 0}, 50)
	if err != nil {
		t.Fatalf("nearest: %v", err)
	}
	if len(neighbors) > 3 {
		t.Errorf("expected at most 3 neighbors, got %d", len(neighbors))
	}
}

func TestNearestDimensionMismatch(t *testing.T) {
	idx, err := BuildNeighborIndex(neighborTestItems(), DefaultNumTrees)
	if err != nil {
		t.Fatalf("build index: %v", err)
	}

	_, err = idx.Nearest([]float32{1, 0}, 1)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestNearestZeroK(t *testing.T) {
	idx, err := BuildNeighborIndex(neighborTestItems(), DefaultNumTrees)
	if err != nil {
		t.Fatalf("build index: %v", err)
	}

	neighbors, err := idx.Nearest([]float32{1, 0, 0}, 0)
	if err != nil {
		t.Fatalf("nearest: %v", err)
	}
	if neighbors != nil {
		t.Errorf("expected no neighbors for k=0, got %v", neighbors)
	}
}
