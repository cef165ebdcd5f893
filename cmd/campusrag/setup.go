package main

import (
	"context"
	"database/sql"

	"github.com/sandevgo/campusrag/internal/config"
	"github.com/sandevgo/campusrag/internal/core"
	"github.com/sandevgo/campusrag/internal/providers/llm"
	"github.com/sandevgo/campusrag/internal/storage/sqlite"
	"github.com/sandevgo/campusrag/internal/vectorstore/qdrant"
	"github.com/sandevgo/campusrag/pkg/log"
)

// conversationStore glues the two sqlite repositories into the single
// store interface the services consume.
type conversationStore struct {
	*sqlite.SessionsRepo
	*sqlite.MessagesRepo
}

func newConversationStore(ctx context.Context, appCfg *config.AppConfig) (core.ConversationStore, *sql.DB) {
	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to initialize storage")
	}
	return &conversationStore{
		SessionsRepo: sqlite.NewSessionsRepo(db),
		MessagesRepo: sqlite.NewMessagesRepo(db),
	}, db
}

func newVectorStore(ctx context.Context, appCfg *config.AppConfig) *qdrant.Store {
	embedder, _, err := llm.NewBackends(ctx, config.NewEmbeddingsConfig(ctx))
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to initialize embedding backend")
	}
	return newVectorStoreWith(ctx, appCfg, embedder)
}

func newVectorStoreWith(ctx context.Context, appCfg *config.AppConfig, embedder core.Embedder) *qdrant.Store {
	qc := config.NewQdrantConfig(ctx)
	return qdrant.NewStore(qdrant.Config{
		URL:        qc.URL,
		APIKey:     qc.APIKey,
		Collection: qc.Collection,
		ChunkSize:  appCfg.ChunkSize,
	}, embedder)
}
