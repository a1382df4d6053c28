package services

import (
	"math"
	"sort"
)

// SimilarityMatrix is a dense symmetric pairwise-similarity matrix over
// one batch of articles. Values are in [0,1]; the diagonal is 1.
// Rebuilt per run, never persisted beyond the ranking stage.
type SimilarityMatrix [][]float64

// cosine32 computes cosine similarity between two dense vectors.
// Returns 0 when either vector has zero norm.
func cosine32(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// featureSets converts each article's feature tokens into a sorted set
// of vocabulary indices. Presence only, not count: the binary
// bag-of-words contract.
func featureSets(featureLists [][]string) [][]int {
	vocab := make(map[string]int)
	for _, features := range featureLists {
		for _, tok := range features {
			if _, ok := vocab[tok]; !ok {
				vocab[tok] = len(vocab)
			}
		}
	}

	sets := make([][]int, len(featureLists))
	for i, features := range featureLists {
		seen := make(map[int]struct{}, len(features))
		for _, tok := range features {
			seen[vocab[tok]] = struct{}{}
		}
		set := make([]int, 0, len(seen))
		for idx := range seen {
			set = append(set, idx)
		}
		sort.Ints(set)
		sets[i] = set
	}
	return sets
}

// binaryCosine computes cosine similarity of two binary vectors given
// as sorted index sets: |A∩B| / sqrt(|A|·|B|).
func binaryCosine(a, b []int) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	var shared int
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			shared++
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	if shared == 0 {
		return 0
	}
	return float64(shared) / math.Sqrt(float64(len(a))*float64(len(b)))
}

// keywordSimilarityMatrix builds the full pairwise matrix over binary
// feature vectors. Rows are computed in fixed-size blocks to bound peak
// working-set growth on large batches and written straight into the
// assembled matrix; block boundaries cannot change any value versus a
// direct full computation. The diagonal is pinned to 1.
func keywordSimilarityMatrix(featureLists [][]string, chunkSize int) SimilarityMatrix {
	n := len(featureLists)
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	sets := featureSets(featureLists)

	matrix := make(SimilarityMatrix, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
	}

	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		for i := start; i < end; i++ {
			matrix[i][i] = 1.0
			for j := i + 1; j < n; j++ {
				sim := binaryCosine(sets[i], sets[j])
				matrix[i][j] = sim
				matrix[j][i] = sim
			}
		}
	}
	return matrix
}
