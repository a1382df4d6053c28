package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingColumn indicates a required column is absent from an
	// input table. Fatal for the stage that needs it.
	ErrMissingColumn = errors.New("missing required column")

	// ErrMissingInput indicates a stage's prerequisite file does not
	// exist. Fatal for the stage; already completed stages keep their
	// output.
	ErrMissingInput = errors.New("missing input file")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Classification cannot run without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrSentimentUnavailable indicates the sentiment service is not
	// configured. Criticality scoring cannot run without it.
	ErrSentimentUnavailable = errors.New("sentiment service unavailable")

	// ErrEmptyTaxonomy indicates the taxonomy file loaded zero leaves.
	ErrEmptyTaxonomy = errors.New("empty taxonomy")

	// ErrUnsupportedProvider indicates an unknown model provider name in
	// the configuration.
	ErrUnsupportedProvider = errors.New("unsupported provider")
)
