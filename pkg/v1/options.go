package v1

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	scope     string
	gainRatio float64
	window    int
	embedder  Embedder
}

// WithScope forces a specific scope (global or project).
func WithScope(scope string) Option {
	return func(c *clientConfig) {
		c.scope = scope
	}
}

// WithGainRatio overrides the saturation gain ratio for automatic sizing.
func WithGainRatio(ratio float64) Option {
	return func(c *clientConfig) {
		c.gainRatio = ratio
	}
}

// WithWindow overrides the saturation window for automatic sizing.
func WithWindow(window int) Option {
	return func(c *clientConfig) {
		c.window = window
	}
}

// WithEmbedder sets the embedder used by CorpusAddText.
func WithEmbedder(embedder Embedder) Option {
	return func(c *clientConfig) {
		c.embedder = embedder
	}
}
