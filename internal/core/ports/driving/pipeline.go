package driving

import (
	"context"

	"github.com/hanbit-labs/newsrank-cli/internal/core/domain"
)

// StageOutcome reports one stage's counts and timing for progress output.
type StageOutcome struct {
	// Stage is the stage that executed.
	Stage domain.Stage

	// InCount is the number of records read.
	InCount int

	// OutCount is the number of records emitted.
	OutCount int
}

// PipelineService runs the four-stage analysis pipeline.
// Stages execute in strict order with no branching and no retry; a
// stage failure halts the window's run, and completed stages keep
// their output.
type PipelineService interface {
	// RunWindow executes all four stages over one window.
	RunWindow(ctx context.Context, window domain.Window) ([]StageOutcome, error)

	// RunRange executes windows of a YYYYMM-YYYYMM range strictly
	// sequentially, aborting the whole run on the first failure.
	RunRange(ctx context.Context, rangeToken string) error

	// RunStage executes a single named stage over one window.
	RunStage(ctx context.Context, stage domain.Stage, window domain.Window) (StageOutcome, error)
}

// RFCService aggregates category-level Recency/Frequency/Criticality
// scores across a range of completed windows.
type RFCService interface {
	// Aggregate computes CategoryScores over the range's classified and
	// criticality tables, sorted by RFC descending.
	Aggregate(ctx context.Context, rangeToken string) ([]domain.CategoryScore, error)
}
