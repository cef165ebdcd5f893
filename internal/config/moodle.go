package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/campusrag/pkg/log"
)

type MoodleConfig struct {
	URL          string `env:"MOODLE_URL" envDefault:"http://moodle:8080"`
	Token        string `env:"MOODLE_TOKEN,required,notEmpty"`
	TargetCourse string `env:"MOODLE_TARGET_COURSE,required,notEmpty"`
}

func NewMoodleConfig(ctx context.Context) *MoodleConfig {
	c := &MoodleConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Moodle config")
	}
	return c
}
