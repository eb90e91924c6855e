// Package file loads engine configuration from a TOML file, with
// secrets supplied through the environment (optionally via .env).
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/recall-labs/recall/internal/core/domain"
)

// Default configuration values.
const (
	DefaultHTTPAddr         = ":8080"
	DefaultChunkSize        = 1000
	DefaultChunkOverlap     = 200
	DefaultEmbedConcurrency = 4
	DefaultEmbedTimeout     = 30
	DefaultEmbedRPS         = 5.0
	DefaultEmbedBurst       = 10
	DefaultProvider         = "openai"
)

// Config is the process-wide configuration. It is loaded once and
// passed into constructors explicitly; nothing reads it ambiently.
type Config struct {
	// DataDir holds the SQLite database and the blob directory.
	// Defaults to ~/.recall/data.
	DataDir string `toml:"data_dir"`

	// HTTPAddr is the listen address for the HTTP API.
	HTTPAddr string `toml:"http_addr"`

	Chunking  ChunkingConfig  `toml:"chunking"`
	Embedding EmbeddingConfig `toml:"embedding"`
	Search    SearchConfig    `toml:"search"`
}

// ChunkingConfig controls passage splitting.
type ChunkingConfig struct {
	// Size is the chunk size in runes.
	Size int `toml:"size"`

	// Overlap is the overlap between consecutive chunks in runes.
	Overlap int `toml:"overlap"`
}

// EmbeddingConfig selects and tunes the embedding provider.
type EmbeddingConfig struct {
	// Provider is one of "openai", "ollama", "gemini".
	Provider string `toml:"provider"`

	// Model overrides the provider's default embedding model.
	Model string `toml:"model"`

	// BaseURL overrides the provider endpoint (openai, ollama).
	BaseURL string `toml:"base_url"`

	// Dimensions overrides the model's declared vector size.
	Dimensions int `toml:"dimensions"`

	// TimeoutSeconds bounds each embedding call.
	TimeoutSeconds int `toml:"timeout_seconds"`

	// Concurrency bounds parallel chunk embedding during ingestion.
	Concurrency int `toml:"concurrency"`

	// RequestsPerSecond rate-limits calls to the provider.
	RequestsPerSecond float64 `toml:"requests_per_second"`

	// Burst is the rate limiter burst size.
	Burst int `toml:"burst"`

	// APIKey is never read from TOML; it comes from the environment
	// (OPENAI_API_KEY or GEMINI_API_KEY).
	APIKey string `toml:"-"`
}

// Timeout returns the per-call timeout as a duration.
func (c EmbeddingConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SearchConfig tunes retrieval scoring.
type SearchConfig struct {
	// MinSimilarity is the default score cutoff.
	MinSimilarity float64 `toml:"min_similarity"`

	// Bands override the relevance label score bands.
	Bands []BandConfig `toml:"bands"`
}

// BandConfig is one relevance label band.
type BandConfig struct {
	Threshold float64 `toml:"threshold"`
	Label     string  `toml:"label"`
}

// RelevanceBands converts configured bands to domain form, falling
// back to the defaults when none are configured.
func (c SearchConfig) RelevanceBands() []domain.RelevanceBand {
	if len(c.Bands) == 0 {
		return domain.DefaultRelevanceBands
	}
	bands := make([]domain.RelevanceBand, len(c.Bands))
	for i, b := range c.Bands {
		bands[i] = domain.RelevanceBand{Threshold: b.Threshold, Label: b.Label}
	}
	return bands
}

// Load reads configuration from the given path. A missing file yields
// defaults; a present file is merged over them. Secrets load from the
// environment, with .env honoured when present.
func Load(path string) (*Config, error) {
	// Missing .env is fine; explicit env vars still apply.
	_ = godotenv.Load()

	cfg := defaults()

	if path == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, ".recall", "config.toml")
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults only.
		case err != nil:
			return nil, fmt.Errorf("reading config: %w", err)
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	applyDefaults(cfg)
	loadSecrets(cfg)

	return cfg, nil
}

// defaults returns a Config with every field at its default.
func defaults() *Config {
	return &Config{
		HTTPAddr: DefaultHTTPAddr,
		Chunking: ChunkingConfig{
			Size:    DefaultChunkSize,
			Overlap: DefaultChunkOverlap,
		},
		Embedding: EmbeddingConfig{
			Provider:          DefaultProvider,
			TimeoutSeconds:    DefaultEmbedTimeout,
			Concurrency:       DefaultEmbedConcurrency,
			RequestsPerSecond: DefaultEmbedRPS,
			Burst:             DefaultEmbedBurst,
		},
		Search: SearchConfig{
			MinSimilarity: domain.DefaultMinSimilarity,
		},
	}
}

// applyDefaults fills zero values left by a partial TOML file.
func applyDefaults(cfg *Config) {
	if cfg.DataDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.DataDir = filepath.Join(home, ".recall", "data")
		}
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = DefaultHTTPAddr
	}
	if cfg.Chunking.Size <= 0 {
		cfg.Chunking.Size = DefaultChunkSize
	}
	if cfg.Chunking.Overlap < 0 {
		cfg.Chunking.Overlap = DefaultChunkOverlap
	}
	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = DefaultProvider
	}
	if cfg.Embedding.TimeoutSeconds <= 0 {
		cfg.Embedding.TimeoutSeconds = DefaultEmbedTimeout
	}
	if cfg.Embedding.Concurrency <= 0 {
		cfg.Embedding.Concurrency = DefaultEmbedConcurrency
	}
	if cfg.Embedding.RequestsPerSecond <= 0 {
		cfg.Embedding.RequestsPerSecond = DefaultEmbedRPS
	}
	if cfg.Embedding.Burst <= 0 {
		cfg.Embedding.Burst = DefaultEmbedBurst
	}
	if cfg.Search.MinSimilarity <= 0 {
		cfg.Search.MinSimilarity = domain.DefaultMinSimilarity
	}
}

// loadSecrets pulls API keys from the environment by provider.
func loadSecrets(cfg *Config) {
	switch cfg.Embedding.Provider {
	case "openai":
		cfg.Embedding.APIKey = os.Getenv("OPENAI_API_KEY")
	case "gemini":
		cfg.Embedding.APIKey = os.Getenv("GEMINI_API_KEY")
	}
}
