// Package memory provides in-memory store implementations used by
// tests and by runs that opt out of persistence.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/hanbit-labs/newsrank-cli/internal/core/domain"
	"github.com/hanbit-labs/newsrank-cli/internal/core/ports/driven"
)

// Ensure RunStore implements the interface.
var _ driven.RunStore = (*RunStore)(nil)

// RunStore is an in-memory implementation of driven.RunStore.
type RunStore struct {
	mu      sync.RWMutex
	runs    map[string]domain.Run
	results map[string][]domain.StageResult
}

// NewRunStore creates a new in-memory run store.
func NewRunStore() *RunStore {
	return &RunStore{
		runs:    make(map[string]domain.Run),
		results: make(map[string][]domain.StageResult),
	}
}

// SaveRun stores or updates a run.
func (s *RunStore) SaveRun(_ context.Context, run domain.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
	return nil
}

// SaveStageResult stores one stage's audit record, replacing any
// earlier record for the same stage.
func (s *RunStore) SaveStageResult(_ context.Context, result domain.StageResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := s.results[result.RunID]
	for i, r := range results {
		if r.Stage == result.Stage {
			results[i] = result
			return nil
		}
	}
	s.results[result.RunID] = append(results, result)
	return nil
}

// GetRun retrieves a run with its stage results.
func (s *RunStore) GetRun(_ context.Context, id string) (*domain.Run, []domain.StageResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return nil, nil, domain.ErrNotFound
	}

	results := make([]domain.StageResult, len(s.results[id]))
	copy(results, s.results[id])
	return &run, results, nil
}

// ListRuns returns runs ordered by start time, newest first.
func (s *RunStore) ListRuns(_ context.Context, limit int) ([]domain.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]domain.Run, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})

	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// Close releases resources.
func (s *RunStore) Close() error {
	return nil
}
