package internal

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type SelectionConfig struct {
	GainRatio float64 `yaml:"gain_ratio"`
	Window    int     `yaml:"window"`
}

type CorpusConfig struct {
	Dimension int `yaml:"dimension,omitempty"` // 0 means infer from first item
	NumTrees  int `yaml:"num_trees,omitempty"`
}

type Config struct {
	Selection SelectionConfig `yaml:"selection"`
	Corpus    CorpusConfig    `yaml:"corpus,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Selection: SelectionConfig{
			GainRatio: DefaultGainRatio,
			Window:    DefaultWindow,
		},
		Corpus: CorpusConfig{
			NumTrees: DefaultNumTrees,
		},
	}
}

func (c *Config) SaturationPolicy() SaturationPolicy {
	return SaturationPolicy{
		GainRatio: c.Selection.GainRatio,
		Window:    c.Selection.Window,
	}
}

func LoadConfig(scope Scope) (*Config, error) {
	path := scope.ConfigPath()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Selection.GainRatio <= 0 {
		cfg.Selection.GainRatio = DefaultGainRatio
	}
	if cfg.Selection.Window < 1 {
		cfg.Selection.Window = DefaultWindow
	}
	if cfg.Corpus.NumTrees < 1 {
		cfg.Corpus.NumTrees = DefaultNumTrees
	}

	return &cfg, nil
}

func SaveConfig(scope Scope, cfg *Config) error {
	path := scope.ConfigPath()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}
