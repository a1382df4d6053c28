package domain

import "time"

// Stage identifies one pipeline stage.
type Stage string

// Pipeline stages in execution order.
const (
	StageNormalize   Stage = "normalize"
	StageClassify    Stage = "classify"
	StageCriticality Stage = "criticality"
	StageRank        Stage = "rank"
)

// Stages lists the pipeline stages in execution order.
func Stages() []Stage {
	return []Stage{StageNormalize, StageClassify, StageCriticality, StageRank}
}

// RunStatus is the terminal state of a pipeline run.
type RunStatus string

// Run states.
const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run is the audit record of one pipeline execution over one window.
// Completed stages persist their output and are never rolled back; a
// failed run records which stage failed and why.
type Run struct {
	// ID is the unique run identifier.
	ID string

	// Window is the window token the run processed.
	Window string

	// Status is the run's current state.
	Status RunStatus

	// StartedAt is when the run began.
	StartedAt time.Time

	// EndedAt is when the run reached a terminal state.
	EndedAt time.Time

	// Error holds the failing stage's error text for failed runs.
	Error string
}

// StageResult is the audit record of one stage within a run.
type StageResult struct {
	// RunID links to the owning Run.
	RunID string

	// Stage is the stage that executed.
	Stage Stage

	// InCount is the number of records read.
	InCount int

	// OutCount is the number of records emitted.
	OutCount int

	// Duration is the stage's wall-clock time.
	Duration time.Duration

	// Success indicates whether the stage completed.
	Success bool

	// Error contains the failure text when Success is false.
	Error string
}
