// Package file loads and persists the application's TOML configuration.
package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/hanbit-labs/newsrank-cli/internal/core/domain"
	"github.com/hanbit-labs/newsrank-cli/internal/core/services"
)

// DefaultDirName is the per-user application directory under $HOME.
const DefaultDirName = ".newsrank"

// Config is the typed application configuration. Zero values fall back
// to defaults at load time, so a partial file only overrides the keys
// it names.
type Config struct {
	// DataDir is the root of the per-window stage tables.
	DataDir string `toml:"data_dir"`

	// TaxonomyPath is the taxonomy reference CSV.
	TaxonomyPath string `toml:"taxonomy_path"`

	// Embedding configures the classification embedding provider.
	Embedding EmbeddingConfig `toml:"embedding"`

	// Sentiment configures the criticality sentiment provider.
	Sentiment SentimentConfig `toml:"sentiment"`

	// Pipeline holds the stage tunables.
	Pipeline PipelineConfig `toml:"pipeline"`

	// Criticality holds the criticality blend weights and lexicon.
	Criticality CriticalityConfig `toml:"criticality"`
}

// EmbeddingConfig is the [embedding] section. APIKeyEnv names an
// environment variable consulted when APIKey is unset, keeping the
// literal key out of the file.
type EmbeddingConfig struct {
	Provider  string `toml:"provider"`
	Model     string `toml:"model"`
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	APIKeyEnv string `toml:"api_key_env"`
	RateLimit int    `toml:"rate_limit"`
}

// SentimentConfig is the [sentiment] section.
type SentimentConfig struct {
	Provider  string `toml:"provider"`
	Model     string `toml:"model"`
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	APIKeyEnv string `toml:"api_key_env"`
	RateLimit int    `toml:"rate_limit"`
}

// resolveAPIKey prefers the literal key, falling back to the named
// environment variable.
func resolveAPIKey(key, env string) string {
	if key != "" || env == "" {
		return key
	}
	return os.Getenv(env)
}

// PipelineConfig is the [pipeline] section.
type PipelineConfig struct {
	// ClassifyThreshold is the minimum taxonomy similarity to keep an
	// article.
	ClassifyThreshold float64 `toml:"classify_threshold"`

	// BatchSize is the embedding batch size.
	BatchSize int `toml:"batch_size"`

	// SimilarThreshold marks two articles as the same story.
	SimilarThreshold float64 `toml:"similar_threshold"`

	// SuppressThreshold removes near-duplicates from the report.
	SuppressThreshold float64 `toml:"suppress_threshold"`

	// SelectCount is the report size.
	SelectCount int `toml:"select_count"`

	// ChunkSize is the similarity matrix row-block size.
	ChunkSize int `toml:"chunk_size"`

	// IncludeKeywords keeps only articles mentioning at least one term.
	// Set to an empty list in the file to disable the include filter.
	IncludeKeywords []string `toml:"include_keywords"`

	// ExcludeKeywords drops articles mentioning any term. Set to an
	// empty list in the file to disable the exclude filter.
	ExcludeKeywords []string `toml:"exclude_keywords"`
}

// CriticalityConfig is the [criticality] section.
type CriticalityConfig struct {
	// KeywordWeight scales the lexicon score.
	KeywordWeight float64 `toml:"keyword_weight"`

	// SentimentWeight scales the sentiment severity weight.
	SentimentWeight float64 `toml:"sentiment_weight"`

	// SimilarityWeight scales the classification similarity.
	SimilarityWeight float64 `toml:"similarity_weight"`

	// Lexicon maps policy-intensity terms to weights in (0,1]. A file
	// that sets this replaces the built-in lexicon entirely.
	Lexicon map[string]float64 `toml:"lexicon"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Embedding: EmbeddingConfig{
			Provider: string(domain.AIProviderOllama),
			Model:    "nomic-embed-text",
		},
		Sentiment: SentimentConfig{
			Provider: string(domain.AIProviderHuggingFace),
		},
		Pipeline: PipelineConfig{
			ClassifyThreshold: 0.5,
			BatchSize:         32,
			SimilarThreshold:  0.5,
			SuppressThreshold: 0.7,
			SelectCount:       10,
			ChunkSize:         1000,
			IncludeKeywords:   services.DefaultIncludeKeywords(),
			ExcludeKeywords:   services.DefaultExcludeKeywords(),
		},
		Criticality: CriticalityConfig{
			KeywordWeight:    0.4,
			SentimentWeight:  0.3,
			SimilarityWeight: 0.3,
			Lexicon:          services.DefaultPolicyLexicon(),
		},
	}
}

// DefaultConfigPath returns ~/.newsrank/config.toml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, DefaultDirName, "config.toml"), nil
}

// DefaultDataDir returns ~/.newsrank/data.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, DefaultDirName, "data"), nil
}

// Load reads the configuration from path. A missing file yields the
// defaults; a present file overrides only the keys it sets. List and
// table keys replace their defaults wholesale, so an empty list in the
// file disables the corresponding default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the configuration to path with restricted permissions,
// creating the directory as needed. API keys live in this file.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// applyDefaults restores defaults for keys the file left unset. Lists
// and tables are defaulted only when absent (nil), so files can set
// them empty on purpose.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = def.Embedding.Provider
	}
	if c.Embedding.Model == "" && c.Embedding.Provider == def.Embedding.Provider {
		c.Embedding.Model = def.Embedding.Model
	}
	if c.Sentiment.Provider == "" {
		c.Sentiment.Provider = def.Sentiment.Provider
	}
	if c.Pipeline.ClassifyThreshold == 0 {
		c.Pipeline.ClassifyThreshold = def.Pipeline.ClassifyThreshold
	}
	if c.Pipeline.BatchSize == 0 {
		c.Pipeline.BatchSize = def.Pipeline.BatchSize
	}
	if c.Pipeline.SimilarThreshold == 0 {
		c.Pipeline.SimilarThreshold = def.Pipeline.SimilarThreshold
	}
	if c.Pipeline.SuppressThreshold == 0 {
		c.Pipeline.SuppressThreshold = def.Pipeline.SuppressThreshold
	}
	if c.Pipeline.SelectCount == 0 {
		c.Pipeline.SelectCount = def.Pipeline.SelectCount
	}
	if c.Pipeline.ChunkSize == 0 {
		c.Pipeline.ChunkSize = def.Pipeline.ChunkSize
	}
	if c.Pipeline.IncludeKeywords == nil {
		c.Pipeline.IncludeKeywords = def.Pipeline.IncludeKeywords
	}
	if c.Pipeline.ExcludeKeywords == nil {
		c.Pipeline.ExcludeKeywords = def.Pipeline.ExcludeKeywords
	}
	if c.Criticality.KeywordWeight == 0 {
		c.Criticality.KeywordWeight = def.Criticality.KeywordWeight
	}
	if c.Criticality.SentimentWeight == 0 {
		c.Criticality.SentimentWeight = def.Criticality.SentimentWeight
	}
	if c.Criticality.SimilarityWeight == 0 {
		c.Criticality.SimilarityWeight = def.Criticality.SimilarityWeight
	}
	if c.Criticality.Lexicon == nil {
		c.Criticality.Lexicon = def.Criticality.Lexicon
	}
}

// EmbeddingSettings converts the section into domain settings.
func (c Config) EmbeddingSettings() domain.EmbeddingSettings {
	return domain.EmbeddingSettings{
		Provider:  domain.AIProvider(c.Embedding.Provider),
		Model:     c.Embedding.Model,
		BaseURL:   c.Embedding.BaseURL,
		APIKey:    resolveAPIKey(c.Embedding.APIKey, c.Embedding.APIKeyEnv),
		RateLimit: c.Embedding.RateLimit,
	}
}

// CriticalityScorerConfig converts the section into the scorer's
// service config.
func (c Config) CriticalityScorerConfig() services.CriticalityConfig {
	return services.CriticalityConfig{
		Lexicon:          c.Criticality.Lexicon,
		KeywordWeight:    c.Criticality.KeywordWeight,
		SentimentWeight:  c.Criticality.SentimentWeight,
		SimilarityWeight: c.Criticality.SimilarityWeight,
	}
}

// SentimentSettings converts the section into domain settings.
func (c Config) SentimentSettings() domain.SentimentSettings {
	return domain.SentimentSettings{
		Provider:  domain.AIProvider(c.Sentiment.Provider),
		Model:     c.Sentiment.Model,
		BaseURL:   c.Sentiment.BaseURL,
		APIKey:    resolveAPIKey(c.Sentiment.APIKey, c.Sentiment.APIKeyEnv),
		RateLimit: c.Sentiment.RateLimit,
	}
}
