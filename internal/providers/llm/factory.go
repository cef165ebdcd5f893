package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/campusrag/internal/config"
	"github.com/sandevgo/campusrag/internal/core"
	"github.com/sandevgo/campusrag/pkg/log"
)

// NewBackends builds the embedding and generation backends for the
// configured provider. The variant is fixed for the life of the process.
func NewBackends(ctx context.Context, cfg *config.EmbeddingsConfig) (core.Embedder, core.Generator, error) {
	switch cfg.Provider {
	case "ollama":
		oc := config.NewOllamaConfig(ctx)
		log.FromCtx(ctx).Info().
			Str("provider", cfg.Provider).
			Str("model", oc.Model).
			Str("embed_model", oc.EmbedModel).
			Msg("starting llm backends")
		o := NewOllama(oc.BaseURL, oc.Model, oc.EmbedModel)
		return o, o, nil
	case "openai":
		oc := config.NewOpenAIConfig(ctx)
		log.FromCtx(ctx).Info().
			Str("provider", cfg.Provider).
			Str("model", oc.Model).
			Str("embed_model", oc.EmbedModel).
			Msg("starting llm backends")
		o, err := NewOpenAI(oc.BaseURL, oc.APIKey, oc.Model, oc.EmbedModel)
		if err != nil {
			return nil, nil, err
		}
		return o, o, nil
	default:
		return nil, nil, fmt.Errorf("unknown embedding provider: %s", cfg.Provider)
	}
}
