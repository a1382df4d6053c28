package domain

// CriticalityRecord is an article's policy-severity score, joined back
// to its Classification by article ID downstream.
type CriticalityRecord struct {
	// ArticleID is the news identifier.
	ArticleID string

	// Score is the composite criticality score in [0,1].
	Score float64
}
