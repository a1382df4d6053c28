package domain

// ImpactRecord is a classified article with its composite impact score
// and the sub-scores used to compute it. Records exist only in memory
// and in the final ranked report file.
type ImpactRecord struct {
	// Classification is the underlying classified article.
	Classification Classification

	// ImpactScore is the composite score in [0,1].
	ImpactScore float64

	// Criticality is the article's criticality score contribution input.
	Criticality float64

	// MediaDiversity is the distinct-outlet ratio among similar articles.
	MediaDiversity float64

	// FrequencyScore is the log-saturated similar-article frequency.
	FrequencyScore float64

	// SimilarCount is the number of articles at or above the similarity
	// threshold, including the article itself.
	SimilarCount int

	// SimilarIndices are the batch indices of those similar articles.
	SimilarIndices []int
}
