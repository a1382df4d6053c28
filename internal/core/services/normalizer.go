package services

import (
	"regexp"
	"strings"

	"github.com/hanbit-labs/newsrank-cli/internal/core/domain"
	"github.com/hanbit-labs/newsrank-cli/internal/logger"
)

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]+>`)
	nonTextPattern    = regexp.MustCompile(`[^가-힣a-zA-Z0-9\s]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// CleanText strips HTML markup, replaces every character outside
// {Hangul syllables, Latin letters, digits, whitespace} with a space,
// collapses whitespace runs, and trims. Idempotent: cleaning already
// cleaned text is a no-op.
func CleanText(text string) string {
	text = htmlTagPattern.ReplaceAllString(text, "")
	text = nonTextPattern.ReplaceAllString(text, " ")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// NormalizerConfig holds the Normalizer's topic filter lexicons.
// Empty lists disable the corresponding filter.
type NormalizerConfig struct {
	// IncludeKeywords keeps only articles whose title or feature text
	// contains at least one of these terms.
	IncludeKeywords []string

	// ExcludeKeywords drops articles whose title or feature text
	// contains any of these terms.
	ExcludeKeywords []string
}

// Normalizer cleans raw article fields, applies the topic filters, and
// removes duplicate articles by cleaned title.
type Normalizer struct {
	cfg NormalizerConfig
}

// NewNormalizer creates a new normalizer stage.
func NewNormalizer(cfg NormalizerConfig) *Normalizer {
	return &Normalizer{cfg: cfg}
}

// Run cleans every article and filters the batch. Input order is
// preserved; when two articles share a cleaned title, the first
// occurrence wins.
func (n *Normalizer) Run(articles []domain.Article) []domain.Article {
	logger.Section("Normalize")
	logger.Debug("Input rows: %d", len(articles))

	cleaned := make([]domain.Article, 0, len(articles))
	seenTitles := make(map[string]struct{}, len(articles))
	var dropped, duplicates int

	for _, art := range articles {
		art.Title = CleanText(art.Title)
		art.Keywords = cleanTokens(art.Keywords)
		art.Features = cleanTokens(art.Features)

		if !n.wanted(art) {
			dropped++
			continue
		}

		if _, dup := seenTitles[art.Title]; dup {
			duplicates++
			continue
		}
		seenTitles[art.Title] = struct{}{}

		cleaned = append(cleaned, art)
	}

	logger.Debug("Filtered off-topic: %d, duplicate titles: %d", dropped, duplicates)
	logger.Info("Normalized %d -> %d articles", len(articles), len(cleaned))
	return cleaned
}

// wanted applies the include then exclude keyword filters over the
// article's title and feature text.
func (n *Normalizer) wanted(art domain.Article) bool {
	text := art.Title + " " + strings.Join(art.Features, " ")

	if len(n.cfg.IncludeKeywords) > 0 && !containsAny(text, n.cfg.IncludeKeywords) {
		return false
	}
	if len(n.cfg.ExcludeKeywords) > 0 && containsAny(text, n.cfg.ExcludeKeywords) {
		return false
	}
	return true
}

// cleanTokens cleans a token list, splitting any token the cleaning
// broke apart and dropping tokens cleaned down to nothing.
func cleanTokens(tokens []string) []string {
	if len(tokens) == 0 {
		return tokens
	}
	joined := CleanText(strings.Join(tokens, " "))
	if joined == "" {
		return nil
	}
	return strings.Fields(joined)
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if k == "" {
			continue
		}
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
