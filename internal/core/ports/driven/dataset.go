package driven

import (
	"context"

	"github.com/hanbit-labs/newsrank-cli/internal/core/domain"
)

// DatasetStore reads and writes the per-window stage tables and the
// taxonomy reference file. Each stage reads its predecessor's table and
// writes its own; the store owns file naming and schema, keeping the
// window token a pure formatting concern at this boundary.
//
// Missing files surface as domain.ErrMissingInput and missing required
// columns as domain.ErrMissingColumn; both are fatal for the stage.
// Writing an empty slice must still produce a schema-valid table.
type DatasetStore interface {
	// ReadTaxonomy loads the taxonomy reference file in file order.
	ReadTaxonomy(ctx context.Context, path string) (domain.Taxonomy, error)

	// ReadRaw loads the collector's raw article table for a window.
	ReadRaw(ctx context.Context, window domain.Window) ([]domain.Article, error)

	// WriteCleaned persists the Normalizer's output table.
	WriteCleaned(ctx context.Context, window domain.Window, articles []domain.Article) error

	// ReadCleaned loads the Normalizer's output table.
	ReadCleaned(ctx context.Context, window domain.Window) ([]domain.Article, error)

	// WriteClassified persists the Classifier's output table.
	WriteClassified(ctx context.Context, window domain.Window, results []domain.Classification) error

	// ReadClassified loads the Classifier's output table.
	ReadClassified(ctx context.Context, window domain.Window) ([]domain.Classification, error)

	// WriteCriticality persists the criticality score table.
	WriteCriticality(ctx context.Context, window domain.Window, records []domain.CriticalityRecord) error

	// ReadCriticality loads the criticality score table.
	ReadCriticality(ctx context.Context, window domain.Window) ([]domain.CriticalityRecord, error)

	// WriteImpactReport persists the final ranked report.
	WriteImpactReport(ctx context.Context, window domain.Window, records []domain.ImpactRecord) error

	// ReadImpactReport loads the final ranked report in rank order.
	// SimilarIndices are not persisted and come back empty.
	ReadImpactReport(ctx context.Context, window domain.Window) ([]domain.ImpactRecord, error)

	// WriteCategoryScores persists the RFC aggregate table for a range
	// identified by its boundary windows' combined token.
	WriteCategoryScores(ctx context.Context, token string, scores []domain.CategoryScore) error
}
