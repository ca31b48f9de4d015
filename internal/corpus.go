package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

var (
	ErrNotFound    = errors.New("corpus item not found")
	ErrInvalidKey  = errors.New("invalid key")
	ErrEmptyCorpus = errors.New("corpus is empty")
)

var keyPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._/-]*$`)

type Key string

func NewKey(s string) (Key, error) {
	if s == "" {
		return "", ErrInvalidKey
	}
	if !keyPattern.MatchString(s) {
		return "", ErrInvalidKey
	}
	return Key(s), nil
}

func (k Key) String() string {
	return string(k)
}

// Item is one corpus entry: a key and its embedding vector.
type Item struct {
	Key     Key
	Vector  []float32
	AddedAt time.Time
}

const itemsFilename = "items.json"

// Corpus is a small file-backed vector store under a scope's .diverse
// directory. Items keep stable insertion order, which is what selection
// indices refer to.
type Corpus struct {
	path string
}

type storedItem struct {
	Key     string    `json:"key"`
	Vector  []float32 `json:"vector"`
	AddedAt time.Time `json:"added_at"`
}

type corpusFile struct {
	Items []storedItem `json:"items"`
}

func NewCorpus(scope Scope) (*Corpus, error) {
	dir := scope.CorpusPath()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create corpus directory: %w", err)
	}
	return &Corpus{path: filepath.Join(dir, itemsFilename)}, nil
}

func (c *Corpus) load() (*corpusFile, error) {
	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return &corpusFile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}

	var f corpusFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unmarshal corpus: %w", err)
	}
	return &f, nil
}

func (c *Corpus) save(f *corpusFile) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal corpus: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("write corpus: %w", err)
	}
	return nil
}

// Add stores an item, replacing any existing item with the same key. The
// vector must match the dimension of the items already stored.
func (c *Corpus) Add(ctx context.Context, item Item) error {
	if len(item.Vector) == 0 {
		return fmt.Errorf("%w: empty vector for key %q", ErrInvalidInput, item.Key)
	}

	f, err := c.load()
	if err != nil {
		return err
	}

	if len(f.Items) > 0 {
		dim := len(f.Items[0].Vector)
		if len(item.Vector) != dim {
			return fmt.Errorf("%w: dimension mismatch: corpus has %d, got %d", ErrInvalidInput, dim, len(item.Vector))
		}
	}

	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now().UTC()
	}

	stored := storedItem{
		Key:     item.Key.String(),
		Vector:  item.Vector,
		AddedAt: item.AddedAt,
	}

	for i, existing := range f.Items {
		if existing.Key == stored.Key {
			f.Items[i] = stored
			return c.save(f)
		}
	}

	f.Items = append(f.Items, stored)
	return c.save(f)
}

func (c *Corpus) Get(ctx context.Context, key Key) (*Item, error) {
	f, err := c.load()
	if err != nil {
		return nil, err
	}

	for _, stored := range f.Items {
		if stored.Key == key.String() {
			return &Item{
				Key:     Key(stored.Key),
				Vector:  stored.Vector,
				AddedAt: stored.AddedAt,
			}, nil
		}
	}

	return nil, ErrNotFound
}

func (c *Corpus) Remove(ctx context.Context, key Key) error {
	f, err := c.load()
	if err != nil {
		return err
	}

	for i, stored := range f.Items {
		if stored.Key == key.String() {
			f.Items = append(f.Items[:i], f.Items[i+1:]...)
			return c.save(f)
		}
	}

	return ErrNotFound
}

// List returns all items in insertion order.
func (c *Corpus) List(ctx context.Context) ([]Item, error) {
	f, err := c.load()
	if err != nil {
		return nil, err
	}

	items := make([]Item, len(f.Items))
	for i, stored := range f.Items {
		items[i] = Item{
			Key:     Key(stored.Key),
			Vector:  stored.Vector,
			AddedAt: stored.AddedAt,
		}
	}
	return items, nil
}
