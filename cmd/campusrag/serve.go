package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sandevgo/campusrag/internal/config"
	"github.com/sandevgo/campusrag/internal/providers/llm"
	"github.com/sandevgo/campusrag/internal/service/chat"
	"github.com/sandevgo/campusrag/internal/transport/web"
	"github.com/sandevgo/campusrag/pkg/log"
	"github.com/sandevgo/campusrag/pkg/srv"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the question answering API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting campusrag web server")

		appCfg := config.NewAppConfig(ctx)
		webCfg := config.NewWebConfig(ctx)

		embedder, generator, err := llm.NewBackends(ctx, config.NewEmbeddingsConfig(ctx))
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize llm backends")
		}

		repo, db := newConversationStore(ctx, appCfg)
		store := newVectorStoreWith(ctx, appCfg, embedder)
		chatSvc := chat.NewService(store, generator, repo)

		services := []srv.Service{
			web.NewServer(chatSvc, webCfg.Addr),
			srv.NewCleanup(db.Close),
		}

		srv.StartServices(ctx, services)
		srv.ShutdownServices(ctx, services)

		logger.Info().Msg("campusrag has been shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
