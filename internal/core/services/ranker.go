package services

import (
	"math"
	"sort"

	"github.com/hanbit-labs/newsrank-cli/internal/core/domain"
	"github.com/hanbit-labs/newsrank-cli/internal/logger"
)

// RankerConfig holds the impact ranker's tunables. The weights and
// thresholds are the original analysis' empirical constants.
type RankerConfig struct {
	// SimilarThreshold is the pairwise similarity at which two articles
	// count as covering the same story.
	SimilarThreshold float64

	// SuppressThreshold is the similarity at which a lower-ranked
	// article is removed as a near-duplicate of a selected one.
	SuppressThreshold float64

	// SaturationCount is the assumed maximum number of similar
	// articles, anchoring the logarithmic frequency scale.
	SaturationCount int

	// SelectCount is the maximum number of articles in the report.
	SelectCount int

	// ChunkSize is the row-block size for the pairwise similarity
	// computation. Performance only; never affects results.
	ChunkSize int

	// CriticalityWeight scales the criticality contribution.
	CriticalityWeight float64

	// DiversityWeight scales the media-diversity contribution.
	DiversityWeight float64

	// FrequencyWeight scales the frequency contribution.
	FrequencyWeight float64
}

// DefaultRankerConfig returns the impact ranker defaults.
func DefaultRankerConfig() RankerConfig {
	return RankerConfig{
		SimilarThreshold:  0.5,
		SuppressThreshold: 0.7,
		SaturationCount:   100,
		SelectCount:       10,
		ChunkSize:         1000,
		CriticalityWeight: 0.4,
		DiversityWeight:   0.3,
		FrequencyWeight:   0.3,
	}
}

// Ranker computes composite impact scores across a classified batch and
// greedily selects the top distinct articles.
type Ranker struct {
	cfg RankerConfig
}

// NewRanker creates a new impact ranking stage.
func NewRanker(cfg RankerConfig) *Ranker {
	if cfg.SelectCount <= 0 {
		cfg.SelectCount = 10
	}
	if cfg.SaturationCount <= 0 {
		cfg.SaturationCount = 100
	}
	return &Ranker{cfg: cfg}
}

// Run scores and ranks the batch, returning at most SelectCount
// records with no two selected articles at or above the suppression
// threshold. Criticality scores are joined by article ID; an article
// with no score is treated as 0.0 and logged.
func (r *Ranker) Run(results []domain.Classification, criticality []domain.CriticalityRecord) []domain.ImpactRecord {
	logger.Section("Rank")

	if len(results) == 0 {
		logger.Info("Ranked 0 articles")
		return []domain.ImpactRecord{}
	}

	scoresByID := make(map[string]float64, len(criticality))
	for _, rec := range criticality {
		scoresByID[rec.ArticleID] = rec.Score
	}

	featureLists := make([][]string, len(results))
	for i, res := range results {
		featureLists[i] = res.Article.Features
	}
	matrix := keywordSimilarityMatrix(featureLists, r.cfg.ChunkSize)

	totalOutlets := distinctOutlets(results, nil)

	records := make([]domain.ImpactRecord, len(results))
	for i, res := range results {
		cScore, ok := scoresByID[res.Article.ID]
		if !ok {
			logger.Warn("No criticality score for article %s, using 0.0", res.Article.ID)
		}

		similar := make([]int, 0, 8)
		for j := range results {
			if matrix[i][j] >= r.cfg.SimilarThreshold {
				similar = append(similar, j)
			}
		}

		diversity := 0.0
		if totalOutlets > 0 {
			diversity = float64(distinctOutlets(results, similar)) / float64(totalOutlets)
		}
		frequency := math.Min(1.0,
			math.Log1p(float64(len(similar)))/math.Log1p(float64(r.cfg.SaturationCount)))

		impact := r.cfg.CriticalityWeight*cScore +
			r.cfg.DiversityWeight*diversity +
			r.cfg.FrequencyWeight*frequency

		records[i] = domain.ImpactRecord{
			Classification: res,
			ImpactScore:    impact,
			Criticality:    cScore,
			MediaDiversity: diversity,
			FrequencyScore: frequency,
			SimilarCount:   len(similar),
			SimilarIndices: similar,
		}
	}

	order := make([]int, len(records))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return records[order[a]].ImpactScore > records[order[b]].ImpactScore
	})

	selected := r.selectDistinct(records, order, matrix)
	logger.Info("Ranked %d articles, selected %d", len(records), len(selected))
	return selected
}

// selectDistinct greedily takes the highest-remaining-score article and
// suppresses everything at or above the near-duplicate threshold
// relative to it, until SelectCount articles are chosen or the pool is
// empty.
func (r *Ranker) selectDistinct(records []domain.ImpactRecord, order []int, matrix SimilarityMatrix) []domain.ImpactRecord {
	suppressed := make([]bool, len(records))
	selected := make([]domain.ImpactRecord, 0, r.cfg.SelectCount)

	for _, idx := range order {
		if len(selected) >= r.cfg.SelectCount {
			break
		}
		if suppressed[idx] {
			continue
		}
		selected = append(selected, records[idx])
		for j := range records {
			if matrix[idx][j] >= r.cfg.SuppressThreshold {
				suppressed[j] = true
			}
		}
	}
	return selected
}

// distinctOutlets counts distinct outlet names over the given indices,
// or over the whole batch when indices is nil.
func distinctOutlets(results []domain.Classification, indices []int) int {
	outlets := make(map[string]struct{})
	if indices == nil {
		for _, res := range results {
			outlets[res.Article.Outlet] = struct{}{}
		}
	} else {
		for _, i := range indices {
			outlets[results[i].Article.Outlet] = struct{}{}
		}
	}
	return len(outlets)
}
