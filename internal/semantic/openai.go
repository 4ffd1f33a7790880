// Package semantic scores merchants against category labels by embedding similarity.
package semantic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iddobarnoon/BudgetWise/internal/common"
	"github.com/iddobarnoon/BudgetWise/internal/service"
)

// Config holds embedding provider configuration.
type Config struct {
	APIKey            string
	Model             string
	BaseURL           string
	Dimensions        int
	RequestsPerMinute int
	Workers           int
	Timeout           time.Duration
}

// openAIEmbedder implements service.Embedder against the OpenAI embeddings API.
type openAIEmbedder struct {
	httpClient *http.Client
	limiter    *rateLimiter
	apiKey     string
	model      string
	baseURL    string
	dimensions int
}

// NewOpenAIEmbedder creates an embeddings client.
func NewOpenAIEmbedder(cfg Config) (*openAIEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: OpenAI API key", common.ErrMissingConfig)
	}

	model := cfg.Model
	if model == "" {
		model = "text-embedding-3-small"
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	dimensions := cfg.Dimensions
	if dimensions == 0 {
		dimensions = 1536
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &openAIEmbedder{
		apiKey:     cfg.APIKey,
		model:      model,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		dimensions: dimensions,
		limiter:    newRateLimiter(cfg.RequestsPerMinute),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// Close stops the rate limiter's refill goroutine.
func (c *openAIEmbedder) Close() {
	c.limiter.Close()
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

// Embed requests an embedding vector for the given text. Transient API
// failures are retried with backoff; client errors are not.
func (c *openAIEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	if err := c.limiter.wait(ctx); err != nil {
		return nil, err
	}

	requestBody := map[string]any{
		"model":      c.model,
		"input":      text,
		"dimensions": c.dimensions,
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var embedding []float64
	err = common.WithRetry(ctx, func() error {
		var opErr error
		embedding, opErr = c.embedOnce(ctx, jsonBody)
		return opErr
	}, service.RetryOptions{MaxAttempts: 3, InitialDelay: 500 * time.Millisecond, MaxDelay: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrEmbeddingUnavailable, err)
	}

	return embedding, nil
}

func (c *openAIEmbedder) embedOnce(ctx context.Context, jsonBody []byte) ([]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/embeddings", strings.NewReader(string(jsonBody)))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, common.ErrRateLimit
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("OpenAI API error (status %d): %s", resp.StatusCode, string(body))
	default:
		return nil, &common.RetryableError{
			Err:       fmt.Errorf("OpenAI API error (status %d): %s", resp.StatusCode, string(body)),
			Retryable: false,
		}
	}

	var response embeddingResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(response.Data) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}

	return response.Data[0].Embedding, nil
}
