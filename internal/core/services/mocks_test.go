package services

import (
	"context"
	"fmt"

	"github.com/hanbit-labs/newsrank-cli/internal/core/domain"
	"github.com/hanbit-labs/newsrank-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockEmbeddingService implements driven.EmbeddingService for testing,
// mapping each text through a deterministic function.
type mockEmbeddingService struct {
	embedFn  func(text string) []float32
	embedErr error
	dims     int
}

func (m *mockEmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.embedFn(text), nil
}

func (m *mockEmbeddingService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	result := make([][]float32, len(texts))
	for i, text := range texts {
		result[i] = m.embedFn(text)
	}
	return result, nil
}

func (m *mockEmbeddingService) Dimensions() int {
	if m.dims > 0 {
		return m.dims
	}
	return 3
}

func (m *mockEmbeddingService) ModelName() string {
	return "mock-embed"
}

func (m *mockEmbeddingService) Ping(_ context.Context) error {
	return nil
}

func (m *mockEmbeddingService) Close() error {
	return nil
}

// mockSentimentService implements driven.SentimentService for testing.
type mockSentimentService struct {
	scores   map[string]float64
	scoreErr error
}

func (m *mockSentimentService) Score(_ context.Context, text string) (float64, error) {
	if m.scoreErr != nil {
		return 0, m.scoreErr
	}
	if p, ok := m.scores[text]; ok {
		return p, nil
	}
	return 0.5, nil
}

func (m *mockSentimentService) ModelName() string {
	return "mock-sentiment"
}

func (m *mockSentimentService) Ping(_ context.Context) error {
	return nil
}

func (m *mockSentimentService) Close() error {
	return nil
}

// mockDatasetStore implements driven.DatasetStore over in-memory maps
// keyed by window token.
type mockDatasetStore struct {
	taxonomy    domain.Taxonomy
	taxonomyErr error

	raw    map[string][]domain.Article
	rawErr error

	cleaned     map[string][]domain.Article
	classified  map[string][]domain.Classification
	criticality map[string][]domain.CriticalityRecord
	reports     map[string][]domain.ImpactRecord
	categories  map[string][]domain.CategoryScore

	writeErr error
}

func newMockDatasetStore() *mockDatasetStore {
	return &mockDatasetStore{
		raw:         make(map[string][]domain.Article),
		cleaned:     make(map[string][]domain.Article),
		classified:  make(map[string][]domain.Classification),
		criticality: make(map[string][]domain.CriticalityRecord),
		reports:     make(map[string][]domain.ImpactRecord),
		categories:  make(map[string][]domain.CategoryScore),
	}
}

func (m *mockDatasetStore) ReadTaxonomy(_ context.Context, _ string) (domain.Taxonomy, error) {
	if m.taxonomyErr != nil {
		return domain.Taxonomy{}, m.taxonomyErr
	}
	return m.taxonomy, nil
}

func (m *mockDatasetStore) ReadRaw(_ context.Context, w domain.Window) ([]domain.Article, error) {
	if m.rawErr != nil {
		return nil, m.rawErr
	}
	arts, ok := m.raw[w.Token()]
	if !ok {
		return nil, fmt.Errorf("%w: raw table for %s", domain.ErrMissingInput, w.Token())
	}
	return arts, nil
}

func (m *mockDatasetStore) WriteCleaned(_ context.Context, w domain.Window, articles []domain.Article) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.cleaned[w.Token()] = articles
	return nil
}

func (m *mockDatasetStore) ReadCleaned(_ context.Context, w domain.Window) ([]domain.Article, error) {
	arts, ok := m.cleaned[w.Token()]
	if !ok {
		return nil, fmt.Errorf("%w: cleaned table for %s", domain.ErrMissingInput, w.Token())
	}
	return arts, nil
}

func (m *mockDatasetStore) WriteClassified(_ context.Context, w domain.Window, results []domain.Classification) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.classified[w.Token()] = results
	return nil
}

func (m *mockDatasetStore) ReadClassified(_ context.Context, w domain.Window) ([]domain.Classification, error) {
	results, ok := m.classified[w.Token()]
	if !ok {
		return nil, fmt.Errorf("%w: classified table for %s", domain.ErrMissingInput, w.Token())
	}
	return results, nil
}

func (m *mockDatasetStore) WriteCriticality(_ context.Context, w domain.Window, records []domain.CriticalityRecord) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.criticality[w.Token()] = records
	return nil
}

func (m *mockDatasetStore) ReadCriticality(_ context.Context, w domain.Window) ([]domain.CriticalityRecord, error) {
	records, ok := m.criticality[w.Token()]
	if !ok {
		return nil, fmt.Errorf("%w: criticality table for %s", domain.ErrMissingInput, w.Token())
	}
	return records, nil
}

func (m *mockDatasetStore) WriteImpactReport(_ context.Context, w domain.Window, records []domain.ImpactRecord) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.reports[w.Token()] = records
	return nil
}

func (m *mockDatasetStore) ReadImpactReport(_ context.Context, w domain.Window) ([]domain.ImpactRecord, error) {
	records, ok := m.reports[w.Token()]
	if !ok {
		return nil, fmt.Errorf("%w: report %s", domain.ErrMissingInput, w.Token())
	}
	return records, nil
}

func (m *mockDatasetStore) WriteCategoryScores(_ context.Context, token string, scores []domain.CategoryScore) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.categories[token] = scores
	return nil
}

// mockRunStore implements driven.RunStore recording calls in memory.
type mockRunStore struct {
	runs    map[string]domain.Run
	results []domain.StageResult
	saveErr error
}

func newMockRunStore() *mockRunStore {
	return &mockRunStore{runs: make(map[string]domain.Run)}
}

func (m *mockRunStore) SaveRun(_ context.Context, run domain.Run) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.runs[run.ID] = run
	return nil
}

func (m *mockRunStore) SaveStageResult(_ context.Context, result domain.StageResult) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.results = append(m.results, result)
	return nil
}

func (m *mockRunStore) GetRun(_ context.Context, id string) (*domain.Run, []domain.StageResult, error) {
	run, ok := m.runs[id]
	if !ok {
		return nil, nil, domain.ErrNotFound
	}
	var results []domain.StageResult
	for _, r := range m.results {
		if r.RunID == id {
			results = append(results, r)
		}
	}
	return &run, results, nil
}

func (m *mockRunStore) ListRuns(_ context.Context, _ int) ([]domain.Run, error) {
	runs := make([]domain.Run, 0, len(m.runs))
	for _, r := range m.runs {
		runs = append(runs, r)
	}
	return runs, nil
}

func (m *mockRunStore) Close() error {
	return nil
}

// Interface checks for the mocks.
var (
	_ driven.EmbeddingService = (*mockEmbeddingService)(nil)
	_ driven.SentimentService = (*mockSentimentService)(nil)
	_ driven.DatasetStore     = (*mockDatasetStore)(nil)
	_ driven.RunStore         = (*mockRunStore)(nil)
)
