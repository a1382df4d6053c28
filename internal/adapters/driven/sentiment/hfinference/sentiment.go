// Package hfinference provides a sentiment service adapter using the
// Hugging Face Inference API.
package hfinference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/hanbit-labs/newsrank-cli/internal/core/ports/driven"
)

// Ensure SentimentService implements the interface.
var _ driven.SentimentService = (*SentimentService)(nil)

// Default configuration values.
const (
	DefaultBaseURL   = "https://api-inference.huggingface.co"
	DefaultModel     = "sangrimlee/bert-base-multilingual-cased-nsmc"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// Config holds configuration for the Hugging Face sentiment service.
type Config struct {
	// APIKey is the Hugging Face API token (required for hosted models).
	APIKey string

	// BaseURL is the inference API base URL. Point it at a local
	// text-generation-inference deployment to score offline.
	BaseURL string

	// Model is the text-classification model to use. It must emit
	// positive/negative labels; Korean news headlines work well with
	// NSMC-finetuned checkpoints.
	Model string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration

	// RateLimit caps requests per second against the hosted API
	// (default: 5).
	RateLimit int
}

// SentimentService scores headline sentiment via the Hugging Face
// Inference API.
type SentimentService struct {
	client  *http.Client
	limiter *rate.Limiter
	baseURL string
	apiKey  string
	model   string
}

// classifyRequest is the inference API request format.
type classifyRequest struct {
	Inputs  string `json:"inputs"`
	Options struct {
		WaitForModel bool `json:"wait_for_model"`
	} `json:"options"`
}

// labelScore is one label of the classification response.
type labelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// NewSentimentService creates a new Hugging Face sentiment service.
func NewSentimentService(cfg Config) *SentimentService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = DefaultRateLimit
	}

	return &SentimentService{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimit),
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}
}

// Score returns P(positive) in [0,1] for the given text. Empty text is
// the neutral probability 0.5 without an API call.
func (s *SentimentService) Score(ctx context.Context, text string) (float64, error) {
	if strings.TrimSpace(text) == "" {
		return 0.5, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limit: %w", err)
	}

	reqBody := classifyRequest{Inputs: text}
	reqBody.Options.WaitForModel = true

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return 0, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"/models/"+s.model,
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return 0, fmt.Errorf("huggingface error (status %d): failed to read response", resp.StatusCode)
		}
		return 0, fmt.Errorf("huggingface error (status %d): %s", resp.StatusCode, string(body))
	}

	// The API wraps single-input classification in a nested array.
	var labels [][]labelScore
	if err := json.NewDecoder(resp.Body).Decode(&labels); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}
	if len(labels) == 0 || len(labels[0]) == 0 {
		return 0, fmt.Errorf("huggingface: empty classification for %q", text)
	}

	return positiveProbability(labels[0])
}

// positiveProbability extracts P(positive) from the label scores,
// accepting the label conventions of common sentiment checkpoints.
func positiveProbability(labels []labelScore) (float64, error) {
	for _, l := range labels {
		switch strings.ToLower(l.Label) {
		case "positive", "pos", "label_1", "긍정":
			return clamp01(l.Score), nil
		}
	}
	// Fall back to the complement of the negative label.
	for _, l := range labels {
		switch strings.ToLower(l.Label) {
		case "negative", "neg", "label_0", "부정":
			return clamp01(1.0 - l.Score), nil
		}
	}
	return 0, fmt.Errorf("huggingface: no sentiment label in %d-class response", len(labels))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ModelName returns the name of the sentiment model being used.
func (s *SentimentService) ModelName() string {
	return s.model
}

// Ping validates the model endpoint is reachable.
func (s *SentimentService) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/models/"+s.model, http.NoBody)
	if err != nil {
		return fmt.Errorf("huggingface: failed to create ping request: %w", err)
	}
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("huggingface: ping failed: %w", err)
	}
	defer resp.Body.Close()

	// GET on a model returns metadata (200) or 405 on some deployments;
	// both prove the endpoint is alive.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusMethodNotAllowed {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("huggingface: API returned status %d (failed to read body: %w)", resp.StatusCode, err)
		}
		return fmt.Errorf("huggingface: API returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// Close releases resources.
func (s *SentimentService) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
