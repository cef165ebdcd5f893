package main

import (
	"fmt"
	"os"
	"os/signal"

	envcfg "github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/sandevgo/campusrag/internal/config"
	"github.com/sandevgo/campusrag/pkg/env"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as dotenv",
	Long:  `Dumps the resolved configuration in dotenv format. Required settings without a value appear as empty KEY= lines, so the output doubles as a template.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		sections := []any{
			&config.AppConfig{},
			&config.MoodleConfig{},
			&config.QdrantConfig{},
			&config.EmbeddingsConfig{},
			&config.OllamaConfig{},
			&config.OpenAIConfig{},
			&config.WebConfig{},
		}

		for _, section := range sections {
			// Missing required values are fine here, the dump then
			// contains an empty KEY= line to fill in.
			_ = envcfg.Parse(section)

			out, err := env.MarshalEnv(section)
			if err != nil {
				return err
			}
			fmt.Print(out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
