// Package ai provides factory functions for creating model service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamaembed "github.com/hanbit-labs/newsrank-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/hanbit-labs/newsrank-cli/internal/adapters/driven/embedding/openai"
	"github.com/hanbit-labs/newsrank-cli/internal/adapters/driven/sentiment/hfinference"
	"github.com/hanbit-labs/newsrank-cli/internal/core/domain"
	"github.com/hanbit-labs/newsrank-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateAndValidateEmbeddingService creates an embedding service and validates
// connectivity. Returns the service if successful, or an error with guidance.
func CreateAndValidateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Check the [embedding] section of your config",
			domain.ErrEmbeddingUnavailable, err)
	}

	if svc == nil {
		return nil, nil
	}

	// Validate connectivity.
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Check the [embedding] section of your config",
			domain.ErrEmbeddingUnavailable, err)
	}

	return svc, nil
}

// CreateAndValidateSentimentService creates a sentiment service and validates
// connectivity. Returns the service if successful, or an error with guidance.
func CreateAndValidateSentimentService(settings *domain.SentimentSettings) (driven.SentimentService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	svc, err := CreateSentimentService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Check the [sentiment] section of your config",
			domain.ErrSentimentUnavailable, err)
	}

	if svc == nil {
		return nil, nil
	}

	// Validate connectivity.
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Check the [sentiment] section of your config",
			domain.ErrSentimentUnavailable, err)
	}

	return svc, nil
}

// CreateEmbeddingService creates the appropriate embedding service based on
// settings. Returns nil if the provider is not configured.
func CreateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return createOllamaEmbedding(settings), nil

	case domain.AIProviderOpenAI:
		return createOpenAIEmbedding(settings)

	case domain.AIProviderHuggingFace:
		return nil, fmt.Errorf("%w: huggingface embeddings are not supported, use ollama or openai",
			domain.ErrUnsupportedProvider)

	default:
		return nil, fmt.Errorf("%w: embedding provider %q", domain.ErrUnsupportedProvider, settings.Provider)
	}
}

// CreateSentimentService creates the appropriate sentiment service based on
// settings. Returns nil if the provider is not configured.
func CreateSentimentService(settings *domain.SentimentSettings) (driven.SentimentService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderHuggingFace:
		return hfinference.NewSentimentService(hfinference.Config{
			APIKey:    settings.APIKey,
			BaseURL:   settings.BaseURL,
			Model:     settings.Model,
			RateLimit: settings.RateLimit,
		}), nil

	default:
		return nil, fmt.Errorf("%w: sentiment provider %q", domain.ErrUnsupportedProvider, settings.Provider)
	}
}

// createOllamaEmbedding creates an Ollama embedding service.
func createOllamaEmbedding(settings *domain.EmbeddingSettings) driven.EmbeddingService {
	dimensions := domain.EmbeddingDimensions()[settings.Model]
	if dimensions == 0 {
		dimensions = ollamaembed.DefaultDimensions
	}

	return ollamaembed.NewEmbeddingService(ollamaembed.Config{
		BaseURL:    settings.BaseURL,
		Model:      settings.Model,
		Dimensions: dimensions,
		RateLimit:  settings.RateLimit,
	})
}

// createOpenAIEmbedding creates an OpenAI embedding service.
func createOpenAIEmbedding(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	dimensions := domain.EmbeddingDimensions()[settings.Model]

	return openaiembed.NewEmbeddingService(openaiembed.Config{
		APIKey:     settings.APIKey,
		BaseURL:    settings.BaseURL,
		Model:      settings.Model,
		Dimensions: dimensions,
		RateLimit:  settings.RateLimit,
	})
}
