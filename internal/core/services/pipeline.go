package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hanbit-labs/newsrank-cli/internal/core/domain"
	"github.com/hanbit-labs/newsrank-cli/internal/core/ports/driven"
	"github.com/hanbit-labs/newsrank-cli/internal/core/ports/driving"
	"github.com/hanbit-labs/newsrank-cli/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driving.PipelineService = (*Pipeline)(nil)

// PipelineDeps wires the stages and stores into the orchestrator.
// RunStore is optional; without it runs are executed but not recorded.
type PipelineDeps struct {
	Dataset      driven.DatasetStore
	Runs         driven.RunStore
	Normalizer   *Normalizer
	Classifier   *Classifier
	Scorer       *CriticalityScorer
	Ranker       *Ranker
	TaxonomyPath string
}

// Pipeline executes the four stages in strict order over one window at
// a time. No branching, no retry: a stage failure halts the window, and
// already completed stages keep their output files.
type Pipeline struct {
	dataset      driven.DatasetStore
	runs         driven.RunStore
	normalizer   *Normalizer
	classifier   *Classifier
	scorer       *CriticalityScorer
	ranker       *Ranker
	taxonomyPath string
}

// NewPipeline creates the pipeline orchestrator.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		dataset:      deps.Dataset,
		runs:         deps.Runs,
		normalizer:   deps.Normalizer,
		classifier:   deps.Classifier,
		scorer:       deps.Scorer,
		ranker:       deps.Ranker,
		taxonomyPath: deps.TaxonomyPath,
	}
}

// RunRange processes each monthly window of a YYYYMM-YYYYMM range
// strictly sequentially, aborting the whole run on the first failure.
func (p *Pipeline) RunRange(ctx context.Context, rangeToken string) error {
	windows, err := domain.MonthlyWindows(rangeToken)
	if err != nil {
		return err
	}
	for _, w := range windows {
		if _, err := p.RunWindow(ctx, w); err != nil {
			return fmt.Errorf("window %s: %w", w.Token(), err)
		}
	}
	return nil
}

// RunWindow executes all four stages over one window and records the
// run audit.
func (p *Pipeline) RunWindow(ctx context.Context, window domain.Window) ([]driving.StageOutcome, error) {
	run := domain.Run{
		ID:        uuid.NewString(),
		Window:    window.Token(),
		Status:    domain.RunStatusRunning,
		StartedAt: time.Now(),
	}
	p.saveRun(ctx, run)

	logger.Info("Run %s: window %s", run.ID, run.Window)

	outcomes := make([]driving.StageOutcome, 0, len(domain.Stages()))
	for _, stage := range domain.Stages() {
		outcome, err := p.executeStage(ctx, run.ID, stage, window)
		if err != nil {
			err = fmt.Errorf("stage %s: %w", stage, err)
			run.Status = domain.RunStatusFailed
			run.EndedAt = time.Now()
			run.Error = err.Error()
			p.saveRun(ctx, run)
			return outcomes, err
		}
		outcomes = append(outcomes, outcome)
	}

	run.Status = domain.RunStatusCompleted
	run.EndedAt = time.Now()
	p.saveRun(ctx, run)
	return outcomes, nil
}

// RunStage executes a single stage over one window, recorded under its
// own run.
func (p *Pipeline) RunStage(ctx context.Context, stage domain.Stage, window domain.Window) (driving.StageOutcome, error) {
	run := domain.Run{
		ID:        uuid.NewString(),
		Window:    window.Token(),
		Status:    domain.RunStatusRunning,
		StartedAt: time.Now(),
	}
	p.saveRun(ctx, run)

	outcome, err := p.executeStage(ctx, run.ID, stage, window)
	run.EndedAt = time.Now()
	if err != nil {
		run.Status = domain.RunStatusFailed
		run.Error = err.Error()
	} else {
		run.Status = domain.RunStatusCompleted
	}
	p.saveRun(ctx, run)
	return outcome, err
}

// executeStage dispatches one stage and records its audit result.
func (p *Pipeline) executeStage(ctx context.Context, runID string, stage domain.Stage, window domain.Window) (driving.StageOutcome, error) {
	started := time.Now()

	var inCount, outCount int
	var err error
	switch stage {
	case domain.StageNormalize:
		inCount, outCount, err = p.normalize(ctx, window)
	case domain.StageClassify:
		inCount, outCount, err = p.classify(ctx, window)
	case domain.StageCriticality:
		inCount, outCount, err = p.criticality(ctx, window)
	case domain.StageRank:
		inCount, outCount, err = p.rank(ctx, window)
	default:
		err = fmt.Errorf("%w: stage %q", domain.ErrInvalidInput, stage)
	}

	elapsed := time.Since(started)
	result := domain.StageResult{
		RunID:    runID,
		Stage:    stage,
		InCount:  inCount,
		OutCount: outCount,
		Duration: elapsed,
		Success:  err == nil,
	}
	if err != nil {
		result.Error = err.Error()
	}
	p.saveStageResult(ctx, result)

	if err == nil {
		logger.Info("Stage %s: %d -> %d in %s", stage, inCount, outCount, elapsed.Round(time.Millisecond))
	}
	return driving.StageOutcome{Stage: stage, InCount: inCount, OutCount: outCount}, err
}

func (p *Pipeline) normalize(ctx context.Context, window domain.Window) (int, int, error) {
	raw, err := p.dataset.ReadRaw(ctx, window)
	if err != nil {
		return 0, 0, err
	}
	cleaned := p.normalizer.Run(raw)
	if err := p.dataset.WriteCleaned(ctx, window, cleaned); err != nil {
		return len(raw), 0, err
	}
	return len(raw), len(cleaned), nil
}

func (p *Pipeline) classify(ctx context.Context, window domain.Window) (int, int, error) {
	taxonomy, err := p.dataset.ReadTaxonomy(ctx, p.taxonomyPath)
	if err != nil {
		return 0, 0, err
	}
	cleaned, err := p.dataset.ReadCleaned(ctx, window)
	if err != nil {
		return 0, 0, err
	}
	results, _, err := p.classifier.Run(ctx, cleaned, taxonomy)
	if err != nil {
		return len(cleaned), 0, err
	}
	if err := p.dataset.WriteClassified(ctx, window, results); err != nil {
		return len(cleaned), 0, err
	}
	return len(cleaned), len(results), nil
}

func (p *Pipeline) criticality(ctx context.Context, window domain.Window) (int, int, error) {
	classified, err := p.dataset.ReadClassified(ctx, window)
	if err != nil {
		return 0, 0, err
	}
	records, err := p.scorer.Run(ctx, classified)
	if err != nil {
		return len(classified), 0, err
	}
	if err := p.dataset.WriteCriticality(ctx, window, records); err != nil {
		return len(classified), 0, err
	}
	return len(classified), len(records), nil
}

func (p *Pipeline) rank(ctx context.Context, window domain.Window) (int, int, error) {
	classified, err := p.dataset.ReadClassified(ctx, window)
	if err != nil {
		return 0, 0, err
	}
	criticality, err := p.dataset.ReadCriticality(ctx, window)
	if err != nil {
		return 0, 0, err
	}
	selected := p.ranker.Run(classified, criticality)
	if err := p.dataset.WriteImpactReport(ctx, window, selected); err != nil {
		return len(classified), 0, err
	}
	return len(classified), len(selected), nil
}

// saveRun records the run when a store is configured. Audit failures
// are logged, never fatal for the pipeline itself.
func (p *Pipeline) saveRun(ctx context.Context, run domain.Run) {
	if p.runs == nil {
		return
	}
	if err := p.runs.SaveRun(ctx, run); err != nil {
		logger.Warn("Recording run %s failed: %v", run.ID, err)
	}
}

func (p *Pipeline) saveStageResult(ctx context.Context, result domain.StageResult) {
	if p.runs == nil {
		return
	}
	if err := p.runs.SaveStageResult(ctx, result); err != nil {
		logger.Warn("Recording stage %s of run %s failed: %v", result.Stage, result.RunID, err)
	}
}
