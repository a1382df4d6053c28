package driven

import "context"

// EmbeddingService generates vector embeddings from text.
// The classifier depends only on this capability contract, not on any
// specific model: identical input and identical model must produce
// identical output regardless of batch size or hardware acceleration.
//
// Implementations may include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Ollama (nomic-embed-text, multilingual sentence models)
//   - Local Korean sentence encoders behind an inference server
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	// This is more efficient than calling Embed in a loop for large batches.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 768, 1536).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	// This is used at startup to fail fast before a long batch run.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
