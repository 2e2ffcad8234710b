package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-ranker/internal/embedding"
	"github.com/spigell/resume-ranker/internal/embedding/gemini"
	"github.com/spigell/resume-ranker/internal/embedding/openai"
	"github.com/spigell/resume-ranker/internal/metrics"
	"github.com/spigell/resume-ranker/internal/secrets"
)

// newEncoder builds the configured provider wrapped with instrumentation and,
// when enabled, the in-memory cache.
func newEncoder(ctx context.Context, cfg *EmbeddingConfig, m *metrics.Metrics, logger *zap.Logger) (embedding.Encoder, error) {
	if cfg == nil {
		return nil, errors.New("embedding configuration is required")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))

	var (
		enc   embedding.Encoder
		model string
	)

	switch provider {
	case embedding.ProviderGemini:
		apiKey, err := resolveAPIKey(cfg, provider)
		if err != nil {
			return nil, fmt.Errorf("loading api key: %w", err)
		}

		g, err := gemini.NewEncoder(ctx, gemini.Config{
			APIKey:     apiKey,
			Model:      cfg.Model,
			TaskType:   cfg.TaskType,
			Dimensions: cfg.Dimensions,
		})
		if err != nil {
			return nil, err
		}
		enc, model = g, g.Model()
	case embedding.ProviderOpenAI:
		apiKey, err := resolveAPIKey(cfg, provider)
		if err != nil {
			return nil, fmt.Errorf("loading api key: %w", err)
		}

		o, err := openai.New(logger.With(zap.String("component", "openai")), apiKey, cfg.Model, cfg.BaseURL, cfg.Dimensions)
		if err != nil {
			return nil, err
		}
		enc, model = o, o.Model()
	case embedding.ProviderLocal:
		h := embedding.NewHashing(cfg.Dimensions)
		enc, model = h, h.Model()
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %q", cfg.Provider)
	}

	enc = embedding.NewInstrumented(enc, provider, model, m, logger, cfg.MaxLogLength)
	if cfg.Cache {
		enc = embedding.NewCached(enc)
	}

	return enc, nil
}

func resolveAPIKey(cfg *EmbeddingConfig, provider string) (string, error) {
	file := strings.TrimSpace(cfg.APIKeyFile)
	if file == "" {
		file = strings.TrimSpace(viper.GetString(provider + "-api-key-file"))
	}

	return secrets.Load(secrets.Source{
		Name:  provider + " api key",
		File:  file,
		Env:   strings.ToUpper(provider) + "_API_KEY",
		Value: cfg.APIKey,
	})
}
