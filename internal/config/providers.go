package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/campusrag/pkg/log"
)

// EmbeddingsConfig selects the backend family for embeddings and
// generation. The choice is made once at startup; nothing branches on it
// per call.
type EmbeddingsConfig struct {
	Provider string `env:"EMBEDDING_PROVIDER" envDefault:"ollama"`
}

func NewEmbeddingsConfig(ctx context.Context) *EmbeddingsConfig {
	c := &EmbeddingsConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse embeddings config")
	}
	return c
}

type OllamaConfig struct {
	BaseURL    string `env:"OLLAMA_URL" envDefault:"http://localhost:11434"`
	Model      string `env:"OLLAMA_MODEL" envDefault:"llama3:8b"`
	EmbedModel string `env:"OLLAMA_EMBED_MODEL" envDefault:"nomic-embed-text"`
}

func NewOllamaConfig(ctx context.Context) *OllamaConfig {
	c := &OllamaConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Ollama config")
	}
	return c
}

type OpenAIConfig struct {
	BaseURL    string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com"`
	APIKey     string `env:"OPENAI_API_KEY"`
	Model      string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	EmbedModel string `env:"OPENAI_EMBEDDING_MODEL" envDefault:"text-embedding-3-small"`
}

func NewOpenAIConfig(ctx context.Context) *OpenAIConfig {
	c := &OpenAIConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse OpenAI config")
	}
	return c
}
