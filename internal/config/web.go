package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/campusrag/pkg/log"
)

type WebConfig struct {
	Addr string `env:"WEB_ADDR" envDefault:"127.0.0.1:8080"`
}

func NewWebConfig(ctx context.Context) *WebConfig {
	c := &WebConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse web config")
	}
	return c
}
