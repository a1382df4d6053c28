// Package csvfile implements the dataset store over per-window CSV
// tables, one directory per pipeline stage.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hanbit-labs/newsrank-cli/internal/core/domain"
	"github.com/hanbit-labs/newsrank-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.DatasetStore = (*Store)(nil)

// Stage table directories under the data root.
const (
	rawDir          = "Raw"
	preprocessedDir = "Preprocessed"
	classifiedDir   = "Classified"
	cscoreDir       = "CScore"
	reportDir       = "ImpactReports"
	rfcDir          = "RFC"
)

// Column headers shared with the collector's export format.
const (
	colID          = "뉴스 식별자"
	colDate        = "일자"
	colOutlet      = "언론사"
	colTitle       = "제목"
	colKeywords    = "키워드"
	colFeatures    = "특성추출(가중치순 상위 50개)"
	colURL         = "URL"
	colMajor       = "대분류"
	colMiddle      = "중분류"
	colMinor       = "소분류"
	colExample     = "세부항목 예시"
	colPhrase      = "뉴스 일반 표현"
	colSimilarity  = "유사도"
	colCriticality = "criticality_score"
)

// dateLayout is how dates are written into stage tables.
const dateLayout = "20060102"

// utf8BOM prefixes every written table so the files open cleanly in
// spreadsheet tools, matching the collector's exports.
const utf8BOM = "\xef\xbb\xbf"

// Store reads and writes stage tables rooted at a data directory.
type Store struct {
	baseDir string
}

// NewStore creates a CSV dataset store rooted at baseDir.
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// RawDir returns the directory the collector drops raw tables into.
func (s *Store) RawDir() string {
	return filepath.Join(s.baseDir, rawDir)
}

// Path helpers for the per-stage file naming scheme.

func (s *Store) rawPath(w domain.Window) string {
	return filepath.Join(s.baseDir, rawDir, w.Token()+".csv")
}

func (s *Store) preprocessedPath(w domain.Window) string {
	return filepath.Join(s.baseDir, preprocessedDir, "Preprocessed_"+w.Token()+".csv")
}

func (s *Store) classifiedPath(w domain.Window) string {
	return filepath.Join(s.baseDir, classifiedDir, "Classified_"+w.Token()+".csv")
}

func (s *Store) cscorePath(w domain.Window) string {
	return filepath.Join(s.baseDir, cscoreDir, "CScore_"+w.Token()+".csv")
}

func (s *Store) reportPath(w domain.Window) string {
	return filepath.Join(s.baseDir, reportDir, "NewsImpactReport_"+w.Token()+".csv")
}

func (s *Store) rfcPath(token string) string {
	return filepath.Join(s.baseDir, rfcDir, "RFCScore_"+token+".csv")
}

// ReadTaxonomy loads the taxonomy reference CSV in file order.
func (s *Store) ReadTaxonomy(_ context.Context, path string) (domain.Taxonomy, error) {
	header, rows, err := s.readTable(path)
	if err != nil {
		return domain.Taxonomy{}, err
	}

	cols, err := columnIndex(path, header, colMajor, colMiddle, colMinor, colExample, colPhrase)
	if err != nil {
		return domain.Taxonomy{}, err
	}

	entries := make([]domain.TaxonomyEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, domain.TaxonomyEntry{
			Major:         row[cols[colMajor]],
			Middle:        row[cols[colMiddle]],
			Minor:         row[cols[colMinor]],
			Example:       row[cols[colExample]],
			GeneralPhrase: row[cols[colPhrase]],
		})
	}
	return domain.NewTaxonomy(entries), nil
}

// ReadRaw loads the collector's raw article table for a window.
func (s *Store) ReadRaw(_ context.Context, window domain.Window) ([]domain.Article, error) {
	return s.readArticles(s.rawPath(window))
}

// WriteCleaned persists the normalized article table.
func (s *Store) WriteCleaned(_ context.Context, window domain.Window, articles []domain.Article) error {
	return s.writeArticles(s.preprocessedPath(window), articles)
}

// ReadCleaned loads the normalized article table.
func (s *Store) ReadCleaned(_ context.Context, window domain.Window) ([]domain.Article, error) {
	return s.readArticles(s.preprocessedPath(window))
}

// WriteClassified persists the classification table.
func (s *Store) WriteClassified(_ context.Context, window domain.Window, results []domain.Classification) error {
	header := append(articleHeader(), colMajor, colMiddle, colMinor, colExample, colPhrase, colSimilarity)
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		row := articleRow(r.Article)
		row = append(row, r.Major, r.Middle, r.Minor, r.Example, r.GeneralPhrase, formatFloat(r.Similarity))
		rows = append(rows, row)
	}
	return s.writeTable(s.classifiedPath(window), header, rows)
}

// ReadClassified loads the classification table.
func (s *Store) ReadClassified(_ context.Context, window domain.Window) ([]domain.Classification, error) {
	path := s.classifiedPath(window)
	header, rows, err := s.readTable(path)
	if err != nil {
		return nil, err
	}

	cols, err := columnIndex(path, header,
		colID, colDate, colOutlet, colTitle, colKeywords, colFeatures,
		colMajor, colMiddle, colMinor, colExample, colPhrase, colSimilarity)
	if err != nil {
		return nil, err
	}
	urlIdx := optionalColumn(header, colURL)

	results := make([]domain.Classification, 0, len(rows))
	for i, row := range rows {
		art, err := articleFromRow(path, i, row, cols, urlIdx)
		if err != nil {
			return nil, err
		}
		similarity, err := parseFloat(path, i, colSimilarity, row[cols[colSimilarity]])
		if err != nil {
			return nil, err
		}
		results = append(results, domain.Classification{
			Article:       art,
			Major:         row[cols[colMajor]],
			Middle:        row[cols[colMiddle]],
			Minor:         row[cols[colMinor]],
			Example:       row[cols[colExample]],
			GeneralPhrase: row[cols[colPhrase]],
			Similarity:    similarity,
		})
	}
	return results, nil
}

// WriteCriticality persists the criticality score table.
func (s *Store) WriteCriticality(_ context.Context, window domain.Window, records []domain.CriticalityRecord) error {
	header := []string{colID, colCriticality}
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{rec.ArticleID, formatFloat(rec.Score)})
	}
	return s.writeTable(s.cscorePath(window), header, rows)
}

// ReadCriticality loads the criticality score table.
func (s *Store) ReadCriticality(_ context.Context, window domain.Window) ([]domain.CriticalityRecord, error) {
	path := s.cscorePath(window)
	header, rows, err := s.readTable(path)
	if err != nil {
		return nil, err
	}

	cols, err := columnIndex(path, header, colID, colCriticality)
	if err != nil {
		return nil, err
	}

	records := make([]domain.CriticalityRecord, 0, len(rows))
	for i, row := range rows {
		score, err := parseFloat(path, i, colCriticality, row[cols[colCriticality]])
		if err != nil {
			return nil, err
		}
		records = append(records, domain.CriticalityRecord{
			ArticleID: row[cols[colID]],
			Score:     score,
		})
	}
	return records, nil
}

// Report-only score columns.
const (
	colImpact         = "impact_score"
	colMediaDiversity = "media_diversity"
	colFrequencyScore = "frequency_score"
	colSimilarCount   = "similar_count"
)

// WriteImpactReport persists the final ranked report.
func (s *Store) WriteImpactReport(_ context.Context, window domain.Window, records []domain.ImpactRecord) error {
	header := append(articleHeader(),
		colMajor, colMiddle, colMinor,
		colImpact, colCriticality, colMediaDiversity, colFrequencyScore, colSimilarCount)
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := articleRow(rec.Classification.Article)
		row = append(row,
			rec.Classification.Major, rec.Classification.Middle, rec.Classification.Minor,
			formatFloat(rec.ImpactScore), formatFloat(rec.Criticality),
			formatFloat(rec.MediaDiversity), formatFloat(rec.FrequencyScore),
			strconv.Itoa(rec.SimilarCount))
		rows = append(rows, row)
	}
	return s.writeTable(s.reportPath(window), header, rows)
}

// ReadImpactReport loads the final ranked report in file order. The
// ranker writes rows sorted by impact, so file order is rank order.
func (s *Store) ReadImpactReport(_ context.Context, window domain.Window) ([]domain.ImpactRecord, error) {
	path := s.reportPath(window)
	header, rows, err := s.readTable(path)
	if err != nil {
		return nil, err
	}

	cols, err := columnIndex(path, header,
		colID, colDate, colOutlet, colTitle, colKeywords, colFeatures,
		colMajor, colMiddle, colMinor,
		colImpact, colCriticality, colMediaDiversity, colFrequencyScore, colSimilarCount)
	if err != nil {
		return nil, err
	}
	urlIdx := optionalColumn(header, colURL)

	records := make([]domain.ImpactRecord, 0, len(rows))
	for i, row := range rows {
		art, err := articleFromRow(path, i, row, cols, urlIdx)
		if err != nil {
			return nil, err
		}
		impact, err := parseFloat(path, i, colImpact, row[cols[colImpact]])
		if err != nil {
			return nil, err
		}
		criticality, err := parseFloat(path, i, colCriticality, row[cols[colCriticality]])
		if err != nil {
			return nil, err
		}
		diversity, err := parseFloat(path, i, colMediaDiversity, row[cols[colMediaDiversity]])
		if err != nil {
			return nil, err
		}
		frequency, err := parseFloat(path, i, colFrequencyScore, row[cols[colFrequencyScore]])
		if err != nil {
			return nil, err
		}
		similarCount, err := strconv.Atoi(strings.TrimSpace(row[cols[colSimilarCount]]))
		if err != nil {
			return nil, fmt.Errorf("%w: %s row %d column %s: %q",
				domain.ErrInvalidInput, filepath.Base(path), i+1, colSimilarCount, row[cols[colSimilarCount]])
		}
		records = append(records, domain.ImpactRecord{
			Classification: domain.Classification{
				Article: art,
				Major:   row[cols[colMajor]],
				Middle:  row[cols[colMiddle]],
				Minor:   row[cols[colMinor]],
			},
			ImpactScore:    impact,
			Criticality:    criticality,
			MediaDiversity: diversity,
			FrequencyScore: frequency,
			SimilarCount:   similarCount,
		})
	}
	return records, nil
}

// WriteCategoryScores persists the RFC aggregate table.
func (s *Store) WriteCategoryScores(_ context.Context, token string, scores []domain.CategoryScore) error {
	header := []string{
		colMajor, "rfc_score", "recency", "frequency", "criticality",
		"article_count", "base_frequency", "source_diversity", "persistence", "range_days",
	}
	rows := make([][]string, 0, len(scores))
	for _, sc := range scores {
		rows = append(rows, []string{
			sc.Major,
			formatFloat(sc.RFC), formatFloat(sc.Recency), formatFloat(sc.Frequency), formatFloat(sc.Criticality),
			strconv.Itoa(sc.ArticleCount),
			formatFloat(sc.Detail.BaseFrequency), formatFloat(sc.Detail.SourceDiversity),
			formatFloat(sc.Detail.Persistence), strconv.Itoa(sc.Detail.RangeDays),
		})
	}
	return s.writeTable(s.rfcPath(token), header, rows)
}

// readArticles loads an article table in the collector's column layout.
func (s *Store) readArticles(path string) ([]domain.Article, error) {
	header, rows, err := s.readTable(path)
	if err != nil {
		return nil, err
	}

	cols, err := columnIndex(path, header, colID, colDate, colOutlet, colTitle, colKeywords, colFeatures)
	if err != nil {
		return nil, err
	}
	urlIdx := optionalColumn(header, colURL)

	articles := make([]domain.Article, 0, len(rows))
	for i, row := range rows {
		art, err := articleFromRow(path, i, row, cols, urlIdx)
		if err != nil {
			return nil, err
		}
		articles = append(articles, art)
	}
	return articles, nil
}

// writeArticles persists an article table in the collector's column layout.
func (s *Store) writeArticles(path string, articles []domain.Article) error {
	rows := make([][]string, 0, len(articles))
	for _, art := range articles {
		rows = append(rows, articleRow(art))
	}
	return s.writeTable(path, articleHeader(), rows)
}

func articleHeader() []string {
	return []string{colID, colDate, colOutlet, colTitle, colKeywords, colFeatures, colURL}
}

func articleRow(art domain.Article) []string {
	return []string{
		art.ID,
		art.Date.Format(dateLayout),
		art.Outlet,
		art.Title,
		strings.Join(art.Keywords, ","),
		strings.Join(art.Features, ","),
		art.URL,
	}
}

func articleFromRow(path string, rowIdx int, row []string, cols map[string]int, urlIdx int) (domain.Article, error) {
	date, err := parseDate(row[cols[colDate]])
	if err != nil {
		return domain.Article{}, fmt.Errorf("%s row %d: %w", filepath.Base(path), rowIdx+1, err)
	}

	art := domain.Article{
		ID:       row[cols[colID]],
		Date:     date,
		Outlet:   row[cols[colOutlet]],
		Title:    row[cols[colTitle]],
		Keywords: splitTokens(row[cols[colKeywords]]),
		Features: splitTokens(row[cols[colFeatures]]),
	}
	if urlIdx >= 0 {
		art.URL = row[urlIdx]
	}
	return art, nil
}

// readTable opens a CSV file and returns its header and data rows.
// A missing file maps to domain.ErrMissingInput.
func (s *Store) readTable(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s", domain.ErrMissingInput, path)
		}
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%w: %s has no header row", domain.ErrInvalidInput, path)
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	return header, records[1:], nil
}

// writeTable writes a CSV file, creating the stage directory as needed.
// An empty row set still produces a header-only table.
func (s *Store) writeTable(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(utf8BOM); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	writer := csv.NewWriter(f)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// columnIndex maps required column names to their positions, reporting
// every missing column at once.
func columnIndex(path string, header []string, required ...string) (map[string]int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		positions[strings.TrimSpace(name)] = i
	}

	cols := make(map[string]int, len(required))
	var missing []string
	for _, name := range required {
		idx, ok := positions[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		cols[name] = idx
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s lacks %s", domain.ErrMissingColumn,
			filepath.Base(path), strings.Join(missing, ", "))
	}
	return cols, nil
}

// optionalColumn returns the column's position or -1.
func optionalColumn(header []string, name string) int {
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

// parseDate accepts the date formats seen across collector exports.
func parseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{dateLayout, "2006-01-02", "2006.01.02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: date %q", domain.ErrInvalidInput, value)
}

// splitTokens splits a comma-joined token list, dropping empties.
func splitTokens(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func parseFloat(path string, rowIdx int, col, value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s row %d column %s: %q",
			domain.ErrInvalidInput, filepath.Base(path), rowIdx+1, col, value)
	}
	return v, nil
}
