package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sandevgo/campusrag/internal/config"
	"github.com/sandevgo/campusrag/internal/service/export"
	"github.com/sandevgo/campusrag/pkg/log"
)

var exportProvider string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded conversations as fine-tuning data",
	Long:  `Collects question/answer pairs from the stored chat sessions and writes a training file: OpenAI chat-format JSONL or plain instruction/response JSON for local tooling.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		appCfg := config.NewAppConfig(ctx)

		repo, db := newConversationStore(ctx, appCfg)
		defer db.Close()

		path, err := export.NewService(repo, appCfg.GetExportPath()).Run(ctx, exportProvider)
		if err != nil {
			return err
		}

		log.FromCtx(ctx).Info().Str("path", path).Msg("fine-tuning data exported")
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportProvider, "provider", export.ProviderLocal, "training data format: openai or local")
	rootCmd.AddCommand(exportCmd)
}
