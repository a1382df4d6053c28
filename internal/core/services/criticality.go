package services

import (
	"context"
	"math"
	"strings"

	"github.com/hanbit-labs/newsrank-cli/internal/core/domain"
	"github.com/hanbit-labs/newsrank-cli/internal/core/ports/driven"
	"github.com/hanbit-labs/newsrank-cli/internal/logger"
)

// CriticalityConfig holds the criticality blend weights and the
// policy-intensity lexicon. The weights are empirical constants carried
// over unchanged; they are config so a curator can retune them without
// a code change.
type CriticalityConfig struct {
	// Lexicon maps policy-intensity terms to weights in (0,1].
	Lexicon map[string]float64

	// KeywordWeight scales the lexicon score.
	KeywordWeight float64

	// SentimentWeight scales the sentiment severity weight.
	SentimentWeight float64

	// SimilarityWeight scales the classification similarity.
	SimilarityWeight float64
}

// DefaultCriticalityConfig returns the blend defaults with the standard
// policy-intensity lexicon.
func DefaultCriticalityConfig() CriticalityConfig {
	return CriticalityConfig{
		Lexicon:          DefaultPolicyLexicon(),
		KeywordWeight:    0.4,
		SentimentWeight:  0.3,
		SimilarityWeight: 0.3,
	}
}

// CriticalityScorer computes the bounded [0,1] composite severity score
// per classified article.
type CriticalityScorer struct {
	sentiment driven.SentimentService
	cfg       CriticalityConfig
}

// NewCriticalityScorer creates a new criticality stage.
func NewCriticalityScorer(sentiment driven.SentimentService, cfg CriticalityConfig) *CriticalityScorer {
	return &CriticalityScorer{sentiment: sentiment, cfg: cfg}
}

// keywordScore sums lexicon weights for every term found as a substring
// of the title, capped at 1.0.
func (s *CriticalityScorer) keywordScore(title string) float64 {
	var score float64
	for term, weight := range s.cfg.Lexicon {
		if strings.Contains(title, term) {
			score += weight
		}
	}
	return math.Min(score, 1.0)
}

// sentimentWeight maps P(positive) onto a severity weight: strong
// negative coverage signals high criticality, strong positive low, the
// neutral band lowest.
func sentimentWeight(p float64) float64 {
	switch {
	case p < 0.3:
		return 1.0
	case p < 0.5:
		return 0.8
	case p > 0.7:
		return 0.6
	default:
		return 0.4
	}
}

// Run scores every classified article. A single row's failure never
// aborts the batch: a sentiment error falls back to the neutral
// probability, and a non-finite result is recorded as 0.0 - both logged
// with the offending identifier.
func (s *CriticalityScorer) Run(ctx context.Context, results []domain.Classification) ([]domain.CriticalityRecord, error) {
	logger.Section("Criticality")

	if s.sentiment == nil {
		return nil, domain.ErrSentimentUnavailable
	}
	if len(results) == 0 {
		logger.Info("Scored 0 articles")
		return []domain.CriticalityRecord{}, nil
	}

	logger.Debug("Sentiment model: %s", s.sentiment.ModelName())

	records := make([]domain.CriticalityRecord, 0, len(results))
	for _, r := range results {
		title := r.Article.Title

		p := 0.5
		if strings.TrimSpace(title) != "" {
			scored, err := s.sentiment.Score(ctx, title)
			if err != nil {
				logger.Warn("Sentiment failed for article %s, using neutral: %v", r.Article.ID, err)
			} else {
				p = scored
			}
		}

		score := s.cfg.KeywordWeight*s.keywordScore(title) +
			s.cfg.SentimentWeight*sentimentWeight(p) +
			s.cfg.SimilarityWeight*r.Similarity

		if math.IsNaN(score) || math.IsInf(score, 0) {
			logger.Warn("Non-finite criticality for article %s, recording 0.0", r.Article.ID)
			score = 0.0
		}
		score = math.Max(0.0, math.Min(score, 1.0))

		records = append(records, domain.CriticalityRecord{
			ArticleID: r.Article.ID,
			Score:     score,
		})
	}

	logger.Info("Scored %d articles", len(records))
	return records, nil
}
