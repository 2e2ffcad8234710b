// Package openai embeds texts through any OpenAI compatible embeddings endpoint.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "text-embedding-3-small"
	embeddingsPath = "/embeddings"
	userAgent      = "spigell/resume-ranker"
)

type Client struct {
	apiKey     string
	model      string
	dimensions int
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

func New(logger *zap.Logger, apiKey, model, baseURL string, dimensions int) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}
	if dimensions < 0 {
		return nil, fmt.Errorf("dimensions must not be negative, got %d", dimensions)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/"); baseURL == "" {
		baseURL = defaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		apiKey:     apiKey,
		model:      model,
		dimensions: dimensions,
		logger:     logger,
		APIURL:     baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		UserAgent: userAgent,
	}, nil
}

type embeddingRequest struct {
	Input          []string `json:"input"`
	Model          string   `json:"model"`
	Dimensions     int      `json:"dimensions,omitempty"`
	EncodingFormat string   `json:"encoding_format,omitempty"`
}

type embeddingResponse struct {
	Data  []embeddingEntry `json:"data"`
	Model string           `json:"model"`
	Usage struct {
		PromptTokens int `json:"prompt_tokens"`
		TotalTokens  int `json:"total_tokens"`
	} `json:"usage"`
	Error *APIError `json:"error,omitempty"`
}

type embeddingEntry struct {
	Embedding []float64 `json:"embedding"`
	Index     int       `json:"index"`
}

// APIError is an error object returned by the endpoint, sometimes with a 200 status.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
	Type       string `json:"type"`
	Code       any    `json:"code"`
}

func (e *APIError) Error() string {
	var b strings.Builder
	b.WriteString("openai api error")
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Type != "" {
		fmt.Fprintf(&b, " %s", e.Type)
	}
	if e.Message != "" {
		fmt.Fprintf(&b, ": %s", e.Message)
	}
	return b.String()
}

// Encode sends all texts in one request and returns the vectors ordered by
// the index reported for every entry.
func (c *Client) Encode(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return [][]float64{}, nil
	}

	var response embeddingResponse
	err := c.postJSON(ctx, c.APIURL+embeddingsPath, embeddingRequest{
		Input:          texts,
		Model:          c.model,
		Dimensions:     c.dimensions,
		EncodingFormat: "float",
	}, &response)
	if err != nil {
		return nil, fmt.Errorf("create embeddings: %w", err)
	}

	if response.Error != nil {
		return nil, response.Error
	}

	if len(response.Data) != len(texts) {
		return nil, fmt.Errorf("openai api returned %d embeddings for %d texts", len(response.Data), len(texts))
	}

	sort.SliceStable(response.Data, func(i, j int) bool {
		return response.Data[i].Index < response.Data[j].Index
	})

	vectors := make([][]float64, 0, len(texts))
	for i, entry := range response.Data {
		if entry.Index != i {
			return nil, fmt.Errorf("openai api returned unexpected embedding index %d", entry.Index)
		}
		if len(entry.Embedding) == 0 {
			return nil, fmt.Errorf("openai api returned empty embedding for text %d", i)
		}
		vectors = append(vectors, entry.Embedding)
	}

	c.logger.Debug("got embeddings",
		zap.String("model", response.Model),
		zap.Int("prompt_tokens", response.Usage.PromptTokens),
		zap.Int("total_tokens", response.Usage.TotalTokens),
	)

	return vectors, nil
}

func (c *Client) Model() string {
	if c == nil {
		return ""
	}
	return c.model
}
