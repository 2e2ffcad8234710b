// Package gemini embeds texts with the Google GenAI embedding models.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	defaultModel = "gemini-embedding-001"
	// maxBatch is the number of texts the Gemini API accepts in one request.
	maxBatch = 100
)

type contentEmbedder interface {
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// Config describes how the encoder talks to Gemini.
type Config struct {
	APIKey string
	Model  string
	// TaskType is passed as is, e.g. SEMANTIC_SIMILARITY.
	TaskType string
	// Dimensions truncates the output vectors when positive.
	Dimensions int
}

// Encoder wraps the Google GenAI client to produce embeddings.
type Encoder struct {
	models     contentEmbedder
	modelName  string
	taskType   string
	dimensions int32
}

// NewEncoder creates a new Encoder configured for the Gemini API backend.
func NewEncoder(ctx context.Context, cfg Config) (*Encoder, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newEncoder(client.Models, cfg)
}

func newEncoder(models contentEmbedder, cfg Config) (*Encoder, error) {
	if models == nil {
		return nil, errors.New("gemini models client is required")
	}
	if cfg.Dimensions < 0 {
		return nil, fmt.Errorf("dimensions must not be negative, got %d", cfg.Dimensions)
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	return &Encoder{
		models:     models,
		modelName:  model,
		taskType:   strings.TrimSpace(cfg.TaskType),
		dimensions: int32(cfg.Dimensions),
	}, nil
}

// Encode embeds texts in batches and returns one vector per text.
func (e *Encoder) Encode(ctx context.Context, texts []string) ([][]float64, error) {
	if e == nil || e.models == nil {
		return nil, errors.New("gemini encoder is not initialized")
	}

	vectors := make([][]float64, 0, len(texts))
	for start := 0; start < len(texts); start += maxBatch {
		end := min(start+maxBatch, len(texts))

		batch, err := e.embed(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		vectors = append(vectors, batch...)
	}

	return vectors, nil
}

func (e *Encoder) embed(ctx context.Context, texts []string) ([][]float64, error) {
	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		contents = append(contents, &genai.Content{
			Parts: []*genai.Part{{Text: text}},
		})
	}

	resp, err := e.models.EmbedContent(ctx, e.modelName, contents, e.config())
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}
	if resp == nil {
		return nil, errors.New("gemini api returned empty response")
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("gemini api returned %d embeddings for %d texts", len(resp.Embeddings), len(texts))
	}

	vectors := make([][]float64, 0, len(texts))
	for i, embedding := range resp.Embeddings {
		if embedding == nil || len(embedding.Values) == 0 {
			return nil, fmt.Errorf("gemini api returned empty embedding for text %d", i)
		}

		vec := make([]float64, len(embedding.Values))
		for j, v := range embedding.Values {
			vec[j] = float64(v)
		}
		vectors = append(vectors, vec)
	}

	return vectors, nil
}

func (e *Encoder) config() *genai.EmbedContentConfig {
	if e.taskType == "" && e.dimensions == 0 {
		return nil
	}

	cfg := &genai.EmbedContentConfig{TaskType: e.taskType}
	if e.dimensions > 0 {
		dims := e.dimensions
		cfg.OutputDimensionality = &dims
	}
	return cfg
}

func (e *Encoder) Model() string {
	if e == nil {
		return ""
	}
	return e.modelName
}
