package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanbit-labs/newsrank-cli/internal/core/domain"
)

// markerEmbedder returns axis-aligned vectors keyed by a substring
// marker, so cosine similarities between texts are fully controlled.
func markerEmbedder(markers map[string][]float32) *mockEmbeddingService {
	return &mockEmbeddingService{
		embedFn: func(text string) []float32 {
			for marker, vec := range markers {
				if strings.Contains(text, marker) {
					return vec
				}
			}
			return []float32{0, 0, 0}
		},
	}
}

func budgetTaxonomy() domain.Taxonomy {
	return domain.NewTaxonomy([]domain.TaxonomyEntry{
		{
			Major:         "유아 및 초중등교육",
			Middle:        "교육재정",
			Minor:         "교부금",
			Example:       "지방교육재정교부금 개편",
			GeneralPhrase: "교부금 산정 방식에 대한 논의를 다룹니다",
		},
		{
			Major:         "고등교육",
			Middle:        "대학재정",
			Minor:         "등록금",
			Example:       "대학 등록금 동결",
			GeneralPhrase: "등록금 정책에 대한 내용을 다룹니다",
		},
	})
}

func TestClassifier_AssignsBestLeaf(t *testing.T) {
	embedder := markerEmbedder(map[string][]float32{
		"교부금 기사":  {1, 0, 0},
		"등록금 기사":  {0, 1, 0},
		"지방교육재정": {1, 0, 0},
		"대학 등록금":  {0, 1, 0},
	})
	c := NewClassifier(embedder, DefaultClassifierConfig())

	articles := []domain.Article{
		{ID: "1", Title: "교부금 기사"},
		{ID: "2", Title: "등록금 기사"},
	}

	results, summary, err := c.Run(context.Background(), articles, budgetTaxonomy())

	require.NoError(t, err)
	require.Len(t, results, 2)

	byID := make(map[string]domain.Classification)
	for _, r := range results {
		byID[r.Article.ID] = r
	}
	assert.Equal(t, "교부금", byID["1"].Minor)
	assert.Equal(t, "등록금", byID["2"].Minor)
	assert.InDelta(t, 1.0, byID["1"].Similarity, 1e-9)

	require.Len(t, summary, 2)
}

func TestClassifier_DropsBelowThreshold(t *testing.T) {
	// The article embeds orthogonally to every leaf: best similarity 0.
	embedder := markerEmbedder(map[string][]float32{
		"엉뚱한":    {0, 0, 1},
		"지방교육재정": {1, 0, 0},
		"대학 등록금":  {0, 1, 0},
	})
	c := NewClassifier(embedder, DefaultClassifierConfig())

	articles := []domain.Article{{ID: "1", Title: "엉뚱한 기사"}}

	results, _, err := c.Run(context.Background(), articles, budgetTaxonomy())

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestClassifier_TieBreakKeepsEarliestLeaf(t *testing.T) {
	// Every text maps to the same vector, so both leaves tie at
	// similarity 1.0 for every article.
	embedder := &mockEmbeddingService{
		embedFn: func(string) []float32 { return []float32{1, 1, 1} },
	}
	c := NewClassifier(embedder, DefaultClassifierConfig())

	articles := []domain.Article{{ID: "1", Title: "아무 기사"}}
	taxonomy := budgetTaxonomy()

	for i := 0; i < 5; i++ {
		results, _, err := c.Run(context.Background(), articles, taxonomy)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "교부금", results[0].Minor, "exact ties must resolve to the earliest taxonomy leaf")
	}
}

func TestClassifier_SortsBySimilarityDescending(t *testing.T) {
	embedder := markerEmbedder(map[string][]float32{
		"정확히 일치":  {1, 0, 0},
		"비스듬히":    {3, 2, 0},
		"지방교육재정": {1, 0, 0},
		"대학 등록금":  {0, 1, 0},
	})
	c := NewClassifier(embedder, DefaultClassifierConfig())

	articles := []domain.Article{
		{ID: "partial", Title: "비스듬히 겹치는 기사"},
		{ID: "exact", Title: "정확히 일치 기사"},
	}

	results, _, err := c.Run(context.Background(), articles, budgetTaxonomy())

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "exact", results[0].Article.ID)
	assert.Equal(t, "partial", results[1].Article.ID)
	assert.Greater(t, results[0].Similarity, results[1].Similarity)
}

func TestClassifier_BatchSizeInvariant(t *testing.T) {
	embedder := markerEmbedder(map[string][]float32{
		"교부금":    {1, 0, 0},
		"등록금":    {0, 1, 0},
		"지방교육재정": {1, 0, 0},
		"대학":     {0, 1, 0},
	})

	articles := []domain.Article{
		{ID: "1", Title: "교부금 기사 하나"},
		{ID: "2", Title: "등록금 기사 둘"},
		{ID: "3", Title: "교부금 기사 셋"},
	}

	var reference []domain.Classification
	for _, batchSize := range []int{1, 2, 3, 32} {
		cfg := DefaultClassifierConfig()
		cfg.BatchSize = batchSize
		c := NewClassifier(embedder, cfg)

		results, _, err := c.Run(context.Background(), articles, budgetTaxonomy())
		require.NoError(t, err)

		if reference == nil {
			reference = results
			continue
		}
		assert.Equal(t, reference, results, "batch size %d changed results", batchSize)
	}
}

func TestClassifier_EmptyArticles(t *testing.T) {
	c := NewClassifier(&mockEmbeddingService{
		embedFn: func(string) []float32 { return []float32{1, 0, 0} },
	}, DefaultClassifierConfig())

	results, summary, err := c.Run(context.Background(), nil, budgetTaxonomy())

	require.NoError(t, err)
	require.NotNil(t, results)
	assert.Empty(t, results)
	assert.Empty(t, summary)
}

func TestClassifier_NilEmbedder(t *testing.T) {
	c := NewClassifier(nil, DefaultClassifierConfig())

	_, _, err := c.Run(context.Background(), []domain.Article{{ID: "1"}}, budgetTaxonomy())

	require.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}

func TestClassifier_EmptyTaxonomy(t *testing.T) {
	c := NewClassifier(&mockEmbeddingService{
		embedFn: func(string) []float32 { return []float32{1, 0, 0} },
	}, DefaultClassifierConfig())

	_, _, err := c.Run(context.Background(), []domain.Article{{ID: "1"}}, domain.NewTaxonomy(nil))

	require.ErrorIs(t, err, domain.ErrEmptyTaxonomy)
}

func TestClassifier_EmbedErrorIsFatal(t *testing.T) {
	c := NewClassifier(&mockEmbeddingService{
		embedErr: assert.AnError,
	}, DefaultClassifierConfig())

	_, _, err := c.Run(context.Background(), []domain.Article{{ID: "1", Title: "기사"}}, budgetTaxonomy())

	require.ErrorIs(t, err, assert.AnError)
}

func TestClassifier_ArticleSentence(t *testing.T) {
	c := NewClassifier(nil, ClassifierConfig{SentenceKeywords: 2, SentenceFeatures: 2})

	art := domain.Article{
		Title:    "교육부 예산 발표",
		Keywords: []string{"예산", "교육부", "잘림"},
		Features: []string{"편성", "확정", "잘림"},
	}

	sentence := c.articleSentence(art)

	assert.Equal(t, "교육부 예산 발표 이 기사는 예산 교육부 등에 관한 내용을 다룹니다. 주요 특징은 편성 확정 등이 있습니다.", sentence)
}

func TestSummarizeByMajor(t *testing.T) {
	results := []domain.Classification{
		{Major: "고등교육", Similarity: 0.8},
		{Major: "유아 및 초중등교육", Similarity: 0.6},
		{Major: "고등교육", Similarity: 0.6},
		{Major: "평생교육", Similarity: 0.9},
	}

	summary := summarizeByMajor(results)

	require.Len(t, summary, 3)
	assert.Equal(t, "고등교육", summary[0].Major)
	assert.Equal(t, 2, summary[0].Count)
	assert.InDelta(t, 0.7, summary[0].MeanSimilarity, 1e-9)
	// Equal counts fall back to name order.
	assert.Equal(t, "유아 및 초중등교육", summary[1].Major)
	assert.Equal(t, "평생교육", summary[2].Major)
}
