package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/hanbit-labs/newsrank-cli/internal/core/domain"
	"github.com/hanbit-labs/newsrank-cli/internal/core/ports/driven"
	"github.com/hanbit-labs/newsrank-cli/internal/core/ports/driving"
	"github.com/hanbit-labs/newsrank-cli/internal/logger"
)

// Ensure RFCAggregator implements the interface.
var _ driving.RFCService = (*RFCAggregator)(nil)

// RFCConfig holds the category aggregate's blend weights.
type RFCConfig struct {
	// RecencyWeight scales mean recency.
	RecencyWeight float64

	// FrequencyWeight scales the blended frequency score.
	FrequencyWeight float64

	// CriticalityWeight scales mean criticality.
	CriticalityWeight float64

	// BaseFrequencyWeight, SourceDiversityWeight and PersistenceWeight
	// blend the frequency sub-scores.
	BaseFrequencyWeight   float64
	SourceDiversityWeight float64
	PersistenceWeight     float64
}

// DefaultRFCConfig returns the RFC aggregate defaults.
func DefaultRFCConfig() RFCConfig {
	return RFCConfig{
		RecencyWeight:         0.2,
		FrequencyWeight:       0.4,
		CriticalityWeight:     0.4,
		BaseFrequencyWeight:   0.5,
		SourceDiversityWeight: 0.3,
		PersistenceWeight:     0.2,
	}
}

// RFCAggregator computes per-major-category Recency/Frequency/
// Criticality scores across the classified and criticality tables of
// one or more completed windows.
type RFCAggregator struct {
	dataset driven.DatasetStore
	cfg     RFCConfig
}

// NewRFCAggregator creates a new category aggregator.
func NewRFCAggregator(dataset driven.DatasetStore, cfg RFCConfig) *RFCAggregator {
	return &RFCAggregator{dataset: dataset, cfg: cfg}
}

// scoredArticle pairs one classified article with its criticality.
type scoredArticle struct {
	classification domain.Classification
	criticality    float64
}

// Aggregate loads every window in the range, joins criticality scores
// by article ID, and scores each major category. Results are sorted by
// RFC descending.
func (a *RFCAggregator) Aggregate(ctx context.Context, rangeToken string) ([]domain.CategoryScore, error) {
	logger.Section("RFC Aggregate")

	windows, err := domain.MonthlyWindows(rangeToken)
	if err != nil {
		return nil, err
	}

	var pool []scoredArticle
	for _, w := range windows {
		classified, err := a.dataset.ReadClassified(ctx, w)
		if err != nil {
			return nil, fmt.Errorf("window %s: %w", w.Token(), err)
		}
		criticality, err := a.dataset.ReadCriticality(ctx, w)
		if err != nil {
			return nil, fmt.Errorf("window %s: %w", w.Token(), err)
		}

		scoresByID := make(map[string]float64, len(criticality))
		for _, rec := range criticality {
			scoresByID[rec.ArticleID] = rec.Score
		}
		for _, c := range classified {
			pool = append(pool, scoredArticle{
				classification: c,
				criticality:    scoresByID[c.Article.ID],
			})
		}
		logger.Debug("Window %s: %d classified articles", w.Token(), len(classified))
	}

	if len(pool) == 0 {
		logger.Info("Aggregated 0 categories over %d windows", len(windows))
		return []domain.CategoryScore{}, nil
	}

	scores := a.scoreCategories(pool)
	if err := a.dataset.WriteCategoryScores(ctx, rangeToken, scores); err != nil {
		return nil, fmt.Errorf("writing category scores: %w", err)
	}
	logger.Info("Aggregated %d categories over %d articles", len(scores), len(pool))
	return scores, nil
}

func (a *RFCAggregator) scoreCategories(pool []scoredArticle) []domain.CategoryScore {
	latest := pool[0].classification.Article.Date
	for _, art := range pool {
		if art.classification.Article.Date.After(latest) {
			latest = art.classification.Article.Date
		}
	}

	totalOutlets := make(map[string]struct{})
	byMajor := make(map[string][]scoredArticle)
	var majors []string
	for _, art := range pool {
		totalOutlets[art.classification.Article.Outlet] = struct{}{}
		major := art.classification.Major
		if _, ok := byMajor[major]; !ok {
			majors = append(majors, major)
		}
		byMajor[major] = append(byMajor[major], art)
	}

	scores := make([]domain.CategoryScore, 0, len(majors))
	for _, major := range majors {
		arts := byMajor[major]

		var recencySum, critSum float64
		outlets := make(map[string]struct{})
		earliest, newest := arts[0].classification.Article.Date, arts[0].classification.Article.Date
		for _, art := range arts {
			date := art.classification.Article.Date
			recencySum += recencyScore(date, latest)
			critSum += art.criticality
			outlets[art.classification.Article.Outlet] = struct{}{}
			if date.Before(earliest) {
				earliest = date
			}
			if date.After(newest) {
				newest = date
			}
		}

		recency := recencySum / float64(len(arts))
		criticality := critSum / float64(len(arts))

		rangeDays := int(newest.Sub(earliest).Hours() / 24)
		persistence := 0.1
		if rangeDays > 0 {
			persistence = math.Min(float64(rangeDays)/365.0, 1.0)
		}
		detail := domain.FrequencyDetail{
			BaseFrequency:   float64(len(arts)) / float64(len(pool)),
			SourceDiversity: float64(len(outlets)) / float64(len(totalOutlets)),
			Persistence:     persistence,
			RangeDays:       rangeDays,
		}
		frequency := a.cfg.BaseFrequencyWeight*detail.BaseFrequency +
			a.cfg.SourceDiversityWeight*detail.SourceDiversity +
			a.cfg.PersistenceWeight*detail.Persistence

		scores = append(scores, domain.CategoryScore{
			Major: major,
			RFC: a.cfg.RecencyWeight*recency +
				a.cfg.FrequencyWeight*frequency +
				a.cfg.CriticalityWeight*criticality,
			Recency:      recency,
			Frequency:    frequency,
			Criticality:  criticality,
			ArticleCount: len(arts),
			Detail:       detail,
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].RFC > scores[j].RFC
	})
	return scores
}

// recencyScore normalises article age against a year, floored at 0.1
// so old coverage keeps some weight.
func recencyScore(date, latest time.Time) float64 {
	days := latest.Sub(date).Hours() / 24
	return math.Max(1.0-days/365.0, 0.1)
}
