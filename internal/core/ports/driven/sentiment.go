package driven

import "context"

// SentimentService classifies text polarity.
// It is consumed as a black box: text in, probability of the positive
// class out. The criticality stage maps that probability onto a severity
// weight; everything model-specific stays behind this interface.
//
// Implementations may include:
//   - HuggingFace-style text-classification inference endpoints
//     (e.g., Korean financial-news sentiment models)
//   - Local classifiers behind an inference server
type SentimentService interface {
	// Score returns P(positive) in [0,1] for the given text.
	// An empty text must return the neutral score 0.5, not an error.
	Score(ctx context.Context, text string) (float64, error)

	// ModelName returns the name of the sentiment model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
