// Package cli implements the command-line interface for newsrank.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hanbit-labs/newsrank-cli/internal/adapters/driven/ai"
	configfile "github.com/hanbit-labs/newsrank-cli/internal/adapters/driven/config/file"
	"github.com/hanbit-labs/newsrank-cli/internal/adapters/driven/dataset/csvfile"
	"github.com/hanbit-labs/newsrank-cli/internal/adapters/driven/storage/sqlite"
	"github.com/hanbit-labs/newsrank-cli/internal/core/ports/driven"
	"github.com/hanbit-labs/newsrank-cli/internal/core/ports/driving"
	"github.com/hanbit-labs/newsrank-cli/internal/core/services"
	"github.com/hanbit-labs/newsrank-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services injected at startup. Commands check for nil so tests can
// swap in mocks.
var (
	pipelineService driving.PipelineService
	rfcService      driving.RFCService
	runStore        driven.RunStore
	datasetStore    driven.DatasetStore

	// rawWatchDir is the collector drop directory the watch command
	// observes.
	rawWatchDir string
)

var (
	flagConfig  string
	flagDataDir string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "newsrank",
	Short: "Score and rank education budget news coverage",
	Long: `newsrank processes collector-exported news article tables through a
four-stage analysis pipeline: normalisation, taxonomy classification,
criticality scoring, and impact ranking. Each analysis window's results
are written as CSV tables alongside the raw input.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)
		return initServices()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file path (default ~/.newsrank/config.toml)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default ~/.newsrank/data)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command. It is the program's entry point after
// flag parsing by main.
func Execute() {
	defer closeServices()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initServices wires the adapters and core services from the loaded
// configuration. It is a no-op when a pipeline service is already
// present, which lets tests inject mocks.
func initServices() error {
	if pipelineService != nil {
		return nil
	}

	configPath := flagConfig
	if configPath == "" {
		var err error
		configPath, err = configfile.DefaultConfigPath()
		if err != nil {
			return err
		}
	}

	cfg, err := configfile.Load(configPath)
	if err != nil {
		return err
	}

	dataDir := flagDataDir
	if dataDir == "" {
		dataDir = cfg.DataDir
	}
	if dataDir == "" {
		dataDir, err = configfile.DefaultDataDir()
		if err != nil {
			return err
		}
	}

	taxonomyPath := cfg.TaxonomyPath
	if taxonomyPath == "" {
		taxonomyPath = filepath.Join(dataDir, "Taxonomy.csv")
	}

	dataset := csvfile.NewStore(dataDir)
	datasetStore = dataset
	rawWatchDir = dataset.RawDir()

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening run store: %w", err)
	}
	runStore = store

	embSettings := cfg.EmbeddingSettings()
	embedder, err := ai.CreateAndValidateEmbeddingService(&embSettings)
	if err != nil {
		return err
	}

	sentSettings := cfg.SentimentSettings()
	sentiment, err := ai.CreateAndValidateSentimentService(&sentSettings)
	if err != nil {
		return err
	}

	classifierCfg := services.DefaultClassifierConfig()
	if cfg.Pipeline.ClassifyThreshold > 0 {
		classifierCfg.Threshold = cfg.Pipeline.ClassifyThreshold
	}
	if cfg.Pipeline.BatchSize > 0 {
		classifierCfg.BatchSize = cfg.Pipeline.BatchSize
	}

	rankerCfg := services.DefaultRankerConfig()
	if cfg.Pipeline.SimilarThreshold > 0 {
		rankerCfg.SimilarThreshold = cfg.Pipeline.SimilarThreshold
	}
	if cfg.Pipeline.SuppressThreshold > 0 {
		rankerCfg.SuppressThreshold = cfg.Pipeline.SuppressThreshold
	}
	if cfg.Pipeline.SelectCount > 0 {
		rankerCfg.SelectCount = cfg.Pipeline.SelectCount
	}
	if cfg.Pipeline.ChunkSize > 0 {
		rankerCfg.ChunkSize = cfg.Pipeline.ChunkSize
	}

	pipelineService = services.NewPipeline(services.PipelineDeps{
		Dataset: dataset,
		Runs:    runStore,
		Normalizer: services.NewNormalizer(services.NormalizerConfig{
			IncludeKeywords: cfg.Pipeline.IncludeKeywords,
			ExcludeKeywords: cfg.Pipeline.ExcludeKeywords,
		}),
		Classifier:   services.NewClassifier(embedder, classifierCfg),
		Scorer:       services.NewCriticalityScorer(sentiment, cfg.CriticalityScorerConfig()),
		Ranker:       services.NewRanker(rankerCfg),
		TaxonomyPath: taxonomyPath,
	})
	rfcService = services.NewRFCAggregator(dataset, services.DefaultRFCConfig())

	return nil
}

// closeServices releases adapter resources on exit.
func closeServices() {
	if runStore != nil {
		if err := runStore.Close(); err != nil {
			logger.Warn("closing run store: %v", err)
		}
	}
}
