// Package ai provides factory functions for creating embedding
// service adapters from configuration.
package ai

import (
	"context"
	"fmt"
	"time"

	file "github.com/recall-labs/recall/internal/adapters/driven/config/file"
	geminiembed "github.com/recall-labs/recall/internal/adapters/driven/embedding/gemini"
	ollamaembed "github.com/recall-labs/recall/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/recall-labs/recall/internal/adapters/driven/embedding/openai"
	"github.com/recall-labs/recall/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for connectivity validation.
const pingTimeout = 5 * time.Second

// CreateEmbeddingService builds the configured embedding provider.
func CreateEmbeddingService(ctx context.Context, cfg file.EmbeddingConfig) (driven.EmbeddingService, error) {
	switch cfg.Provider {
	case "openai":
		return openaiembed.New(openaiembed.Config{
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Timeout:    cfg.Timeout(),
			Dimensions: cfg.Dimensions,
		})

	case "ollama":
		return ollamaembed.New(ollamaembed.Config{
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Timeout:    cfg.Timeout(),
			Dimensions: cfg.Dimensions,
		}), nil

	case "gemini":
		return geminiembed.New(ctx, geminiembed.Config{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			Timeout:    cfg.Timeout(),
			Dimensions: cfg.Dimensions,
		})

	default:
		return nil, fmt.Errorf("unknown embedding provider: %q", cfg.Provider)
	}
}

// CreateAndValidateEmbeddingService builds the configured provider and
// verifies connectivity before returning it.
func CreateAndValidateEmbeddingService(ctx context.Context, cfg file.EmbeddingConfig) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(ctx, cfg)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := svc.Ping(pingCtx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("embedding provider unreachable: %w", err)
	}

	return svc, nil
}
