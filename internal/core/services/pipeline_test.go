package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanbit-labs/newsrank-cli/internal/core/domain"
	"github.com/hanbit-labs/newsrank-cli/internal/core/ports/driven"
)

func testPipeline(dataset *mockDatasetStore, runs *mockRunStore) *Pipeline {
	embedder := &mockEmbeddingService{
		embedFn: func(string) []float32 { return []float32{1, 1, 1} },
	}
	var runStore driven.RunStore
	if runs != nil {
		runStore = runs
	}
	return NewPipeline(PipelineDeps{
		Dataset:      dataset,
		Runs:         runStore,
		Normalizer:   NewNormalizer(NormalizerConfig{}),
		Classifier:   NewClassifier(embedder, DefaultClassifierConfig()),
		Scorer:       NewCriticalityScorer(&mockSentimentService{}, DefaultCriticalityConfig()),
		Ranker:       NewRanker(DefaultRankerConfig()),
		TaxonomyPath: "taxonomy.csv",
	})
}

func janWindow(t *testing.T) domain.Window {
	t.Helper()
	w, err := domain.ParseWindow("20240101-20240131")
	require.NoError(t, err)
	return w
}

func TestPipeline_RunWindow(t *testing.T) {
	dataset := newMockDatasetStore()
	runs := newMockRunStore()
	w := janWindow(t)

	dataset.taxonomy = budgetTaxonomy()
	dataset.raw[w.Token()] = []domain.Article{
		{ID: "1", Title: "교육부 예산 삭감 논란", Outlet: "outlet-1",
			Features: []string{"예산", "삭감"},
			Date:     time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)},
		{ID: "2", Title: "무상급식 단가 인상", Outlet: "outlet-2",
			Features: []string{"급식", "단가"},
			Date:     time.Date(2024, time.January, 12, 0, 0, 0, 0, time.UTC)},
	}

	p := testPipeline(dataset, runs)
	outcomes, err := p.RunWindow(context.Background(), w)

	require.NoError(t, err)
	require.Len(t, outcomes, 4)
	assert.Equal(t, domain.StageNormalize, outcomes[0].Stage)
	assert.Equal(t, domain.StageRank, outcomes[3].Stage)

	// Every stage table was written.
	assert.Len(t, dataset.cleaned[w.Token()], 2)
	assert.Len(t, dataset.classified[w.Token()], 2)
	assert.Len(t, dataset.criticality[w.Token()], 2)
	assert.Len(t, dataset.reports[w.Token()], 2)

	// One completed run with four successful stage audits.
	require.Len(t, runs.runs, 1)
	for _, run := range runs.runs {
		assert.Equal(t, domain.RunStatusCompleted, run.Status)
		assert.Equal(t, w.Token(), run.Window)
		assert.False(t, run.EndedAt.IsZero())
	}
	require.Len(t, runs.results, 4)
	for _, result := range runs.results {
		assert.True(t, result.Success)
	}
}

func TestPipeline_MissingRawHaltsRun(t *testing.T) {
	dataset := newMockDatasetStore()
	dataset.taxonomy = budgetTaxonomy()
	runs := newMockRunStore()
	w := janWindow(t)

	p := testPipeline(dataset, runs)
	outcomes, err := p.RunWindow(context.Background(), w)

	require.ErrorIs(t, err, domain.ErrMissingInput)
	assert.Empty(t, outcomes)

	require.Len(t, runs.runs, 1)
	for _, run := range runs.runs {
		assert.Equal(t, domain.RunStatusFailed, run.Status)
		assert.Contains(t, run.Error, "normalize")
	}
	require.Len(t, runs.results, 1)
	assert.False(t, runs.results[0].Success)
}

func TestPipeline_FailureKeepsCompletedStageOutput(t *testing.T) {
	dataset := newMockDatasetStore()
	dataset.taxonomyErr = assert.AnError
	runs := newMockRunStore()
	w := janWindow(t)

	dataset.raw[w.Token()] = []domain.Article{
		{ID: "1", Title: "교육부 예산 발표", Outlet: "outlet-1"},
	}

	p := testPipeline(dataset, runs)
	outcomes, err := p.RunWindow(context.Background(), w)

	require.ErrorIs(t, err, assert.AnError)
	// Normalize completed before classify failed; its output stays.
	require.Len(t, outcomes, 1)
	assert.Len(t, dataset.cleaned[w.Token()], 1)

	for _, run := range runs.runs {
		assert.Equal(t, domain.RunStatusFailed, run.Status)
		assert.Contains(t, run.Error, "classify")
	}
}

func TestPipeline_EmptyRawTable(t *testing.T) {
	dataset := newMockDatasetStore()
	dataset.taxonomy = budgetTaxonomy()
	runs := newMockRunStore()
	w := janWindow(t)

	dataset.raw[w.Token()] = []domain.Article{}

	p := testPipeline(dataset, runs)
	outcomes, err := p.RunWindow(context.Background(), w)

	require.NoError(t, err, "an empty window is a valid run, not a failure")
	require.Len(t, outcomes, 4)

	// Every stage still wrote its (empty) table.
	_, ok := dataset.cleaned[w.Token()]
	assert.True(t, ok)
	_, ok = dataset.classified[w.Token()]
	assert.True(t, ok)
	_, ok = dataset.criticality[w.Token()]
	assert.True(t, ok)
	_, ok = dataset.reports[w.Token()]
	assert.True(t, ok)
}

func TestPipeline_RunStage(t *testing.T) {
	dataset := newMockDatasetStore()
	runs := newMockRunStore()
	w := janWindow(t)

	dataset.raw[w.Token()] = []domain.Article{
		{ID: "1", Title: "교육청 감사 결과", Outlet: "outlet-1"},
	}

	p := testPipeline(dataset, runs)
	outcome, err := p.RunStage(context.Background(), domain.StageNormalize, w)

	require.NoError(t, err)
	assert.Equal(t, domain.StageNormalize, outcome.Stage)
	assert.Equal(t, 1, outcome.InCount)
	assert.Equal(t, 1, outcome.OutCount)
	assert.Len(t, dataset.cleaned[w.Token()], 1)

	require.Len(t, runs.runs, 1)
	for _, run := range runs.runs {
		assert.Equal(t, domain.RunStatusCompleted, run.Status)
	}
}

func TestPipeline_UnknownStage(t *testing.T) {
	p := testPipeline(newMockDatasetStore(), newMockRunStore())

	_, err := p.RunStage(context.Background(), domain.Stage("transmogrify"), janWindow(t))

	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPipeline_RunRange(t *testing.T) {
	dataset := newMockDatasetStore()
	dataset.taxonomy = budgetTaxonomy()
	runs := newMockRunStore()

	for _, token := range []string{"20240101-20240131", "20240201-20240229"} {
		dataset.raw[token] = []domain.Article{}
	}

	p := testPipeline(dataset, runs)
	err := p.RunRange(context.Background(), "202401-202402")

	require.NoError(t, err)
	assert.Len(t, runs.runs, 2)
	assert.Contains(t, dataset.reports, "20240101-20240131")
	assert.Contains(t, dataset.reports, "20240201-20240229")
}

func TestPipeline_RunRangeAbortsOnFirstFailure(t *testing.T) {
	dataset := newMockDatasetStore()
	dataset.taxonomy = budgetTaxonomy()
	runs := newMockRunStore()

	// Only February has a raw table; January fails first.
	dataset.raw["20240201-20240229"] = []domain.Article{}

	p := testPipeline(dataset, runs)
	err := p.RunRange(context.Background(), "202401-202402")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "20240101-20240131")
	assert.NotContains(t, dataset.reports, "20240201-20240229", "later windows must not run after a failure")
}

func TestPipeline_NilRunStore(t *testing.T) {
	dataset := newMockDatasetStore()
	dataset.taxonomy = budgetTaxonomy()
	w := janWindow(t)
	dataset.raw[w.Token()] = []domain.Article{}

	p := testPipeline(dataset, nil)
	_, err := p.RunWindow(context.Background(), w)

	require.NoError(t, err, "pipeline must run without an audit store")
}

func TestPipeline_AuditFailureIsNotFatal(t *testing.T) {
	dataset := newMockDatasetStore()
	dataset.taxonomy = budgetTaxonomy()
	runs := newMockRunStore()
	runs.saveErr = assert.AnError
	w := janWindow(t)
	dataset.raw[w.Token()] = []domain.Article{}

	p := testPipeline(dataset, runs)
	_, err := p.RunWindow(context.Background(), w)

	require.NoError(t, err, "audit store failures are logged, never fatal")
}
