package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sandevgo/campusrag/internal/config"
	"github.com/sandevgo/campusrag/internal/moodle"
	"github.com/sandevgo/campusrag/internal/service/indexer"
	"github.com/sandevgo/campusrag/pkg/log"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Download and index the target Moodle course",
	Long:  `Fetches every file of the configured course, extracts its text and indexes the fragments into the vector store.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting document indexing")

		appCfg := config.NewAppConfig(ctx)
		moodleCfg := config.NewMoodleConfig(ctx)

		store := newVectorStore(ctx, appCfg)
		source := moodle.NewClient(moodleCfg)

		if err := indexer.NewService(source, store).Run(ctx, moodleCfg.TargetCourse); err != nil {
			return err
		}

		logger.Info().Msg("document indexing completed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
