package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sandevgo/campusrag/internal/config"
	"github.com/sandevgo/campusrag/internal/providers/llm"
	"github.com/sandevgo/campusrag/internal/service/chat"
	"github.com/sandevgo/campusrag/internal/transport/cli"
	"github.com/sandevgo/campusrag/pkg/log"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat about the indexed course",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		appCfg := config.NewAppConfig(ctx)

		embedder, generator, err := llm.NewBackends(ctx, config.NewEmbeddingsConfig(ctx))
		if err != nil {
			log.FromCtx(ctx).Fatal().Err(err).Msg("failed to initialize llm backends")
		}

		repo, db := newConversationStore(ctx, appCfg)
		defer db.Close()

		store := newVectorStoreWith(ctx, appCfg, embedder)
		chatSvc := chat.NewService(store, generator, repo)

		rl, err := cli.NewReadLine(chatSvc, appCfg)
		if err != nil {
			return err
		}
		defer rl.Shutdown(ctx)

		return rl.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
