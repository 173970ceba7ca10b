// Package config loads sift configuration from a YAML file with
// environment-variable overrides and turns it into engine options.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/wizenheimer/sift"
)

// Config is the top-level configuration.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Search  SearchConfig  `yaml:"search"`
	Logging LoggingConfig `yaml:"logging"`
}

// EngineConfig controls index construction.
type EngineConfig struct {
	FilterType       string `yaml:"filterType"`
	CorpusFilterBits uint   `yaml:"corpusFilterBits"`
	PostingCapacity  uint   `yaml:"postingCapacity"`
	Tokenizer        string `yaml:"tokenizer"`
}

// SearchConfig holds per-query defaults. DefaultLimit is the maximum number
// of results per query; 0 returns none. Cutoff -1 disables autocut.
type SearchConfig struct {
	DefaultLimit int     `yaml:"defaultLimit"`
	Threshold    float64 `yaml:"threshold"`
	Cutoff       int     `yaml:"cutoff"`
}

// LoggingConfig controls log level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads a YAML config file (if path is not empty) and applies
// environment overrides on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			FilterType:       string(sift.BloomFilterKind),
			CorpusFilterBits: sift.DefaultCorpusFilterBits,
			Tokenizer:        "default",
		},
		Search: SearchConfig{
			DefaultLimit: sift.DefaultLimit,
			Threshold:    0,
			Cutoff:       -1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// applyEnvOverrides reads SIFT_* environment variables and overrides the
// corresponding fields. Unparseable numbers are ignored.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SIFT_FILTER_TYPE"); v != "" {
		cfg.Engine.FilterType = v
	}
	if v := os.Getenv("SIFT_CORPUS_FILTER_BITS"); v != "" {
		if bits, err := strconv.ParseUint(v, 10, 0); err == nil {
			cfg.Engine.CorpusFilterBits = uint(bits)
		}
	}
	if v := os.Getenv("SIFT_POSTING_CAPACITY"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 0); err == nil {
			cfg.Engine.PostingCapacity = uint(n)
		}
	}
	if v := os.Getenv("SIFT_TOKENIZER"); v != "" {
		cfg.Engine.Tokenizer = v
	}
	if v := os.Getenv("SIFT_SEARCH_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Search.DefaultLimit = n
		}
	}
	if v := os.Getenv("SIFT_SEARCH_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Search.Threshold = f
		}
	}
	if v := os.Getenv("SIFT_SEARCH_CUTOFF"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Search.Cutoff = n
		}
	}
	if v := os.Getenv("SIFT_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SIFT_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}

// Validate rejects unknown names and negative limits.
func (c *Config) Validate() error {
	if _, err := sift.ParseFilterKind(c.Engine.FilterType); err != nil {
		return fmt.Errorf("engine.filterType: %w", err)
	}
	if _, err := sift.ParseTokenizer(c.Engine.Tokenizer); err != nil {
		return fmt.Errorf("engine.tokenizer: %w", err)
	}
	if c.Search.DefaultLimit < 0 {
		return fmt.Errorf("search.defaultLimit: must not be negative, got %d", c.Search.DefaultLimit)
	}
	if _, err := logrus.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format: unsupported format %q", c.Logging.Format)
	}
	return nil
}

// EngineOptions converts the engine section to sift options. Call Validate
// first; invalid names fall back to the defaults here.
func (c *Config) EngineOptions() []sift.Option {
	opts := []sift.Option{
		sift.WithPostingCapacity(c.Engine.PostingCapacity),
	}
	if kind, err := sift.ParseFilterKind(c.Engine.FilterType); err == nil {
		opts = append(opts, sift.WithFilterKind(kind))
	}
	if c.Engine.CorpusFilterBits > 0 {
		opts = append(opts, sift.WithCorpusFilterBits(c.Engine.CorpusFilterBits))
	}
	if tokenizer, err := sift.ParseTokenizer(c.Engine.Tokenizer); err == nil {
		opts = append(opts, sift.WithTokenizer(tokenizer))
	}
	return opts
}

// SearchOptions converts the search section to per-query options.
func (c *Config) SearchOptions() []sift.SearchOption {
	return []sift.SearchOption{
		sift.Limit(c.Search.DefaultLimit),
		sift.Threshold(c.Search.Threshold),
		sift.Cutoff(c.Search.Cutoff),
	}
}

// NewLogger builds a logger honouring the logging section.
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	if level, err := logrus.ParseLevel(c.Logging.Level); err == nil {
		logger.SetLevel(level)
	}
	if strings.ToLower(c.Logging.Format) == "json" {
		logger.SetFormatter(new(logrus.JSONFormatter))
	}
	return logger
}
