package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/campusrag/pkg/log"
)

type QdrantConfig struct {
	URL        string `env:"QDRANT_URL" envDefault:"http://localhost:6333"`
	APIKey     string `env:"QDRANT_API_KEY"`
	Collection string `env:"QDRANT_COLLECTION" envDefault:"course_docs"`
}

func NewQdrantConfig(ctx context.Context) *QdrantConfig {
	c := &QdrantConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Qdrant config")
	}
	return c
}
