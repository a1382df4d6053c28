package domain

// Classification is an Article assigned to its best-matching taxonomy
// leaf. Articles whose best similarity falls below the configured
// threshold are dropped, never emitted, so every Classification carries
// Similarity at or above that threshold.
type Classification struct {
	// Article is the classified article with cleaned fields.
	Article Article

	// Major is the assigned top-level category.
	Major string

	// Middle is the assigned mid-level category.
	Middle string

	// Minor is the assigned leaf category.
	Minor string

	// Example is the matched leaf's example phrase.
	Example string

	// GeneralPhrase is the matched leaf's general news phrasing.
	GeneralPhrase string

	// Similarity is the cosine similarity to the matched leaf, in [0,1].
	Similarity float64
}

// CategorySummary is the per-major-category diagnostic distribution
// computed after classification. Reporting-only, not a correctness
// contract.
type CategorySummary struct {
	// Major is the top-level category.
	Major string

	// Count is the number of articles assigned under the category.
	Count int

	// MeanSimilarity is the mean similarity of those assignments.
	MeanSimilarity float64
}
