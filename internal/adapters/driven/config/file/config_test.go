package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanbit-labs/newsrank-cli/internal/core/domain"
	"github.com/hanbit-labs/newsrank-cli/internal/core/services"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 0.5, cfg.Pipeline.ClassifyThreshold)
	assert.Equal(t, 0.7, cfg.Pipeline.SuppressThreshold)
	assert.Equal(t, 10, cfg.Pipeline.SelectCount)
}

func TestLoad_PartialFileKeepsOtherDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_dir = "/srv/newsrank"

[embedding]
provider = "openai"
model = "text-embedding-3-small"
api_key = "sk-test"

[pipeline]
suppress_threshold = 0.5
`), 0o600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "/srv/newsrank", cfg.DataDir)
	assert.Equal(t, "openai", cfg.Embedding.Provider)
	assert.Equal(t, 0.5, cfg.Pipeline.SuppressThreshold)
	// Untouched sections keep their defaults.
	assert.Equal(t, 0.5, cfg.Pipeline.ClassifyThreshold)
	assert.Equal(t, 32, cfg.Pipeline.BatchSize)
	assert.Equal(t, string(domain.AIProviderHuggingFace), cfg.Sentiment.Provider)
	assert.Equal(t, services.DefaultIncludeKeywords(), cfg.Pipeline.IncludeKeywords)
	assert.Equal(t, services.DefaultExcludeKeywords(), cfg.Pipeline.ExcludeKeywords)
	assert.Equal(t, services.DefaultPolicyLexicon(), cfg.Criticality.Lexicon)
}

func TestDefaultConfig_ShipsTopicFilters(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotEmpty(t, cfg.Pipeline.IncludeKeywords)
	assert.NotEmpty(t, cfg.Pipeline.ExcludeKeywords)
	assert.Contains(t, cfg.Pipeline.IncludeKeywords, "교육청")
	assert.Contains(t, cfg.Pipeline.ExcludeKeywords, "연예인")
}

func TestLoad_EmptyListsDisableTopicFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[pipeline]
include_keywords = []
exclude_keywords = []
`), 0o600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Empty(t, cfg.Pipeline.IncludeKeywords)
	assert.Empty(t, cfg.Pipeline.ExcludeKeywords)
	// Absent keys elsewhere still default.
	assert.Equal(t, services.DefaultPolicyLexicon(), cfg.Criticality.Lexicon)
}

func TestLoad_CriticalityOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[criticality]
keyword_weight = 0.6

[criticality.lexicon]
"예산" = 1.0
"삭감" = 0.9
`), 0o600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 0.6, cfg.Criticality.KeywordWeight)
	// Unset weights keep their defaults.
	assert.Equal(t, 0.3, cfg.Criticality.SentimentWeight)
	assert.Equal(t, 0.3, cfg.Criticality.SimilarityWeight)
	// A file lexicon replaces the built-in one wholesale.
	assert.Equal(t, map[string]float64{"예산": 1.0, "삭감": 0.9}, cfg.Criticality.Lexicon)

	scorerCfg := cfg.CriticalityScorerConfig()
	assert.Equal(t, 0.6, scorerCfg.KeywordWeight)
	assert.Equal(t, cfg.Criticality.Lexicon, scorerCfg.Lexicon)
}

func TestLoad_APIKeyEnvFallback(t *testing.T) {
	t.Setenv("NEWSRANK_OPENAI_KEY", "sk-from-env")
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[embedding]
provider = "openai"
model = "text-embedding-3-large"
api_key_env = "NEWSRANK_OPENAI_KEY"
`), 0o600))

	cfg, err := Load(path)

	require.NoError(t, err)
	settings := cfg.EmbeddingSettings()
	assert.Equal(t, "sk-from-env", settings.APIKey)
	assert.True(t, settings.IsConfigured())
}

func TestLoad_LiteralAPIKeyWinsOverEnv(t *testing.T) {
	t.Setenv("NEWSRANK_OPENAI_KEY", "sk-from-env")
	cfg := DefaultConfig()
	cfg.Embedding.APIKey = "sk-literal"
	cfg.Embedding.APIKeyEnv = "NEWSRANK_OPENAI_KEY"

	assert.Equal(t, "sk-literal", cfg.EmbeddingSettings().APIKey)
}

func TestLoad_BadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[embedding\nprovider="), 0o600))

	_, err := Load(path)

	require.Error(t, err)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := DefaultConfig()
	cfg.DataDir = "/data"
	cfg.Embedding.Provider = "openai"
	cfg.Embedding.APIKey = "sk-test"
	cfg.Pipeline.SelectCount = 20
	cfg.Pipeline.IncludeKeywords = []string{"예산", "교육"}
	cfg.Pipeline.ExcludeKeywords = []string{"광고"}

	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)

	// API keys in the file mean restricted permissions.
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestEmbeddingSettings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Embedding.Provider = "ollama"
	cfg.Embedding.Model = "nomic-embed-text"
	cfg.Embedding.RateLimit = 10

	settings := cfg.EmbeddingSettings()

	assert.Equal(t, domain.AIProviderOllama, settings.Provider)
	assert.Equal(t, "nomic-embed-text", settings.Model)
	assert.Equal(t, 10, settings.RateLimit)
	assert.True(t, settings.IsConfigured())
}

func TestSentimentSettings(t *testing.T) {
	cfg := DefaultConfig()

	settings := cfg.SentimentSettings()

	assert.Equal(t, domain.AIProviderHuggingFace, settings.Provider)
	assert.True(t, settings.IsConfigured())
}
