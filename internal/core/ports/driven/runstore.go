package driven

import (
	"context"

	"github.com/hanbit-labs/newsrank-cli/internal/core/domain"
)

// RunStore persists pipeline run audit records.
type RunStore interface {
	// SaveRun stores or updates a run.
	SaveRun(ctx context.Context, run domain.Run) error

	// SaveStageResult stores one stage's audit record.
	SaveStageResult(ctx context.Context, result domain.StageResult) error

	// GetRun retrieves a run with its stage results.
	GetRun(ctx context.Context, id string) (*domain.Run, []domain.StageResult, error)

	// ListRuns returns runs ordered by start time, newest first.
	ListRuns(ctx context.Context, limit int) ([]domain.Run, error)

	// Close releases resources.
	Close() error
}
