package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hanbit-labs/newsrank-cli/internal/core/domain"
	"github.com/hanbit-labs/newsrank-cli/internal/core/ports/driven"
	"github.com/hanbit-labs/newsrank-cli/internal/logger"
)

// ClassifierConfig holds the classifier's tunables.
type ClassifierConfig struct {
	// Threshold is the minimum similarity for an article to keep its
	// best-matching leaf; below it the article is dropped entirely.
	Threshold float64

	// BatchSize is the embedding batch size. Throughput only; results
	// must be identical for any value.
	BatchSize int

	// SentenceKeywords caps how many keywords go into the composed
	// article sentence.
	SentenceKeywords int

	// SentenceFeatures caps how many feature tokens go into the
	// composed article sentence.
	SentenceFeatures int
}

// DefaultClassifierConfig returns the classifier defaults.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		Threshold:        0.5,
		BatchSize:        32,
		SentenceKeywords: 10,
		SentenceFeatures: 10,
	}
}

// Classifier assigns each article its best-matching taxonomy leaf by
// embedding cosine similarity.
type Classifier struct {
	embedder driven.EmbeddingService
	cfg      ClassifierConfig
}

// NewClassifier creates a new classification stage.
func NewClassifier(embedder driven.EmbeddingService, cfg ClassifierConfig) *Classifier {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 32
	}
	if cfg.SentenceKeywords <= 0 {
		cfg.SentenceKeywords = 10
	}
	if cfg.SentenceFeatures <= 0 {
		cfg.SentenceFeatures = 10
	}
	return &Classifier{embedder: embedder, cfg: cfg}
}

// articleSentence composes the synthetic sentence embedded for an
// article: the title plus its leading keywords and feature tokens,
// phrased the way the taxonomy exemplars are phrased.
func (c *Classifier) articleSentence(art domain.Article) string {
	keywords := art.Keywords
	if len(keywords) > c.cfg.SentenceKeywords {
		keywords = keywords[:c.cfg.SentenceKeywords]
	}
	features := art.Features
	if len(features) > c.cfg.SentenceFeatures {
		features = features[:c.cfg.SentenceFeatures]
	}
	return fmt.Sprintf("%s 이 기사는 %s 등에 관한 내용을 다룹니다. 주요 특징은 %s 등이 있습니다.",
		art.Title, strings.Join(keywords, " "), strings.Join(features, " "))
}

// Run classifies the batch against the taxonomy. Output is sorted by
// similarity descending (input order breaks ties) together with the
// per-major-category diagnostic summary.
//
// When several leaves share the exact maximum similarity for an
// article, the leaf earliest in taxonomy order wins - deterministic
// across runs.
func (c *Classifier) Run(ctx context.Context, articles []domain.Article, taxonomy domain.Taxonomy) ([]domain.Classification, []domain.CategorySummary, error) {
	logger.Section("Classify")

	if c.embedder == nil {
		return nil, nil, domain.ErrEmbeddingUnavailable
	}
	if taxonomy.Len() == 0 {
		return nil, nil, domain.ErrEmptyTaxonomy
	}
	if len(articles) == 0 {
		logger.Info("Classified 0 -> 0 articles")
		return []domain.Classification{}, nil, nil
	}

	logger.Debug("Embedding model: %s (%d dims), batch size %d",
		c.embedder.ModelName(), c.embedder.Dimensions(), c.cfg.BatchSize)

	articleTexts := make([]string, len(articles))
	for i, art := range articles {
		articleTexts[i] = c.articleSentence(art)
	}
	leaves := taxonomy.Entries()
	leafTexts := make([]string, len(leaves))
	for i, leaf := range leaves {
		leafTexts[i] = leaf.EmbeddingText()
	}

	articleVecs, err := c.embedBatched(ctx, articleTexts)
	if err != nil {
		return nil, nil, fmt.Errorf("embed articles: %w", err)
	}
	leafVecs, err := c.embedBatched(ctx, leafTexts)
	if err != nil {
		return nil, nil, fmt.Errorf("embed taxonomy: %w", err)
	}

	results := make([]domain.Classification, 0, len(articles))
	for i, art := range articles {
		bestIdx := -1
		bestSim := 0.0
		for j := range leafVecs {
			sim := cosine32(articleVecs[i], leafVecs[j])
			// Strict comparison keeps the earliest leaf on exact ties.
			if bestIdx == -1 || sim > bestSim {
				bestIdx = j
				bestSim = sim
			}
		}
		if bestSim < c.cfg.Threshold {
			continue
		}
		leaf := leaves[bestIdx]
		results = append(results, domain.Classification{
			Article:       art,
			Major:         leaf.Major,
			Middle:        leaf.Middle,
			Minor:         leaf.Minor,
			Example:       leaf.Example,
			GeneralPhrase: leaf.GeneralPhrase,
			Similarity:    bestSim,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	summary := summarizeByMajor(results)
	for _, s := range summary {
		logger.Debug("Category %s: %d articles, mean similarity %.4f", s.Major, s.Count, s.MeanSimilarity)
	}
	logger.Info("Classified %d -> %d articles (threshold %.2f)", len(articles), len(results), c.cfg.Threshold)

	return results, summary, nil
}

// embedBatched runs EmbedBatch over fixed-size slices of texts.
func (c *Classifier) embedBatched(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += c.cfg.BatchSize {
		end := start + c.cfg.BatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := c.embedder.EmbedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, batch...)
	}
	return vectors, nil
}

// summarizeByMajor computes the reporting-only distribution of
// assignments per major category, largest first.
func summarizeByMajor(results []domain.Classification) []domain.CategorySummary {
	counts := make(map[string]int)
	sums := make(map[string]float64)
	for _, r := range results {
		counts[r.Major]++
		sums[r.Major] += r.Similarity
	}

	summary := make([]domain.CategorySummary, 0, len(counts))
	for major, count := range counts {
		summary = append(summary, domain.CategorySummary{
			Major:          major,
			Count:          count,
			MeanSimilarity: sums[major] / float64(count),
		})
	}
	sort.Slice(summary, func(i, j int) bool {
		if summary[i].Count != summary[j].Count {
			return summary[i].Count > summary[j].Count
		}
		return summary[i].Major < summary[j].Major
	})
	return summary
}
