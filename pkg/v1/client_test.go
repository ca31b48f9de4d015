package v1

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirProject(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".diverse", "corpus"), 0755))

	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(old) })

	return dir
}

type staticEmbedder struct {
	vector []float32
}

func (e *staticEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return e.vector, nil
}

func TestClientSelect(t *testing.T) {
	chdirProject(t)

	client, err := New()
	require.NoError(t, err)

	indices, err := client.Select(context.Background(), [][]float32{{1, 0}, {1, 0}, {0, 1}}, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, indices)
}

func TestClientSelectInvalidK(t *testing.T) {
	chdirProject(t)

	client, err := New()
	require.NoError(t, err)

	_, err = client.Select(context.Background(), [][]float32{{1, 0}}, 5)
	assert.Error(t, err)
}

func TestClientSelectAuto(t *testing.T) {
	chdirProject(t)

	client, err := New()
	require.NoError(t, err)

	sel, err := client.SelectAuto(context.Background(), [][]float32{{1, 0}, {1, 0}, {0, 1}})
	require.NoError(t, err)

	assert.True(t, sel.Auto)
	assert.Equal(t, []int{0, 2}, sel.Indices())
	require.Len(t, sel.Picks, 2)
	assert.InDelta(t, 2, sel.Picks[0].Gain, 1e-9)
	assert.InDelta(t, 1, sel.Picks[1].Gain, 1e-9)
}

func TestClientSelectAutoWithGainRatio(t *testing.T) {
	chdirProject(t)

	client, err := New(WithGainRatio(0.001))
	require.NoError(t, err)

	sel, err := client.SelectAuto(context.Background(), [][]float32{{1, 0, 0}, {0.9, 0.1, 0}, {0, 0, 1}})
	require.NoError(t, err)
	assert.Len(t, sel.Picks, 3, "loose ratio should keep the near-duplicate")
}

func TestClientCorpusFlow(t *testing.T) {
	chdirProject(t)
	ctx := context.Background()

	client, err := New()
	require.NoError(t, err)

	require.NoError(t, client.CorpusAdd(ctx, "x-axis", []float32{1, 0, 0}))
	require.NoError(t, client.CorpusAdd(ctx, "y-axis", []float32{0, 1, 0}))
	require.NoError(t, client.CorpusAdd(ctx, "near-x", []float32{0.9, 0.1, 0}))

	// near-x partially covers x-axis too, so it leads; y-axis adds the
	// remaining direction.
	sel, err := client.SelectCorpus(ctx, 2)
	require.NoError(t, err)
	require.Len(t, sel.Picks, 2)
	assert.Equal(t, "near-x", sel.Picks[0].Key)
	assert.Equal(t, "y-axis", sel.Picks[1].Key)

	neighbors, err := client.Similar(ctx, "x-axis", 2)
	require.NoError(t, err)
	require.NotEmpty(t, neighbors)
	assert.Equal(t, "near-x", neighbors[0].Key)

	require.NoError(t, client.CorpusRemove(ctx, "near-x"))
	_, err = client.Similar(ctx, "near-x", 2)
	assert.Error(t, err)
}

func TestClientSelectCorpusEmpty(t *testing.T) {
	chdirProject(t)

	client, err := New()
	require.NoError(t, err)

	_, err = client.SelectCorpus(context.Background(), 1)
	assert.Error(t, err)
}

func TestClientCorpusAddText(t *testing.T) {
	chdirProject(t)
	ctx := context.Background()

	client, err := New(WithEmbedder(&staticEmbedder{vector: []float32{1, 0}}))
	require.NoError(t, err)

	require.NoError(t, client.CorpusAddText(ctx, "note-1", "some text"))

	sel, err := client.SelectCorpus(ctx, 1)
	require.NoError(t, err)
	require.Len(t, sel.Picks, 1)
	assert.Equal(t, "note-1", sel.Picks[0].Key)
}

func TestClientCorpusAddTextWithoutEmbedder(t *testing.T) {
	chdirProject(t)

	client, err := New()
	require.NoError(t, err)

	err = client.CorpusAddText(context.Background(), "note-1", "some text")
	assert.Error(t, err)
}

func TestSelectionIndices(t *testing.T) {
	sel := &Selection{Picks: []Pick{{Index: 3}, {Index: 0}, {Index: 7}}}
	assert.Equal(t, []int{3, 0, 7}, sel.Indices())
}
