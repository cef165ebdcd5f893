package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sandevgo/campusrag/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"CAMPUSRAG_RUNTIME_PATH" envDefault:".campusrag"`

	// ChunkSize bounds the character length of indexed fragments.
	ChunkSize int `env:"CHUNK_SIZE" envDefault:"512"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse app config")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	path := c.RuntimePath
	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.GetRuntimePath(), "campusrag.db")
}

func (c AppConfig) GetExportPath() string {
	return filepath.Join(c.GetRuntimePath(), "fine_tuning")
}

func IsDebug() bool {
	return os.Getenv("CAMPUSRAG_DEBUG") == "1"
}

// LoadFile layers a dotenv-style configuration file under the real
// environment. Variables already set in the environment win, so a config
// file never overrides an explicit export.
func LoadFile(path string) error {
	if path == "" {
		return nil
	}
	return godotenv.Load(path)
}
