package domain

// FrequencyDetail breaks down a category's frequency score.
type FrequencyDetail struct {
	// BaseFrequency is the category's share of all articles.
	BaseFrequency float64

	// SourceDiversity is the category's distinct-outlet ratio.
	SourceDiversity float64

	// Persistence reflects how long the category stayed in the news,
	// normalised against a full year.
	Persistence float64

	// RangeDays is the span in days between the category's earliest and
	// latest articles.
	RangeDays int
}

// CategoryScore is the Recency-Frequency-Criticality aggregate for one
// major category over a range of analysis windows.
type CategoryScore struct {
	// Major is the top-level category.
	Major string

	// RFC is the weighted aggregate score.
	RFC float64

	// Recency is the mean per-article recency score.
	Recency float64

	// Frequency is the blended frequency score.
	Frequency float64

	// Criticality is the mean article criticality.
	Criticality float64

	// ArticleCount is the number of articles in the category.
	ArticleCount int

	// Detail carries the frequency sub-scores for auditability.
	Detail FrequencyDetail
}
