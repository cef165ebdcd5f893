package core

import "errors"

// Error categories used across the pipeline. Layers wrap the concrete cause
// together with the matching sentinel so callers can classify failures with
// errors.Is without depending on the failing backend.
var (
	// ErrEmbedding marks failures of the embedding backend: unreachable
	// server, bad credential, malformed response.
	ErrEmbedding = errors.New("embedding failed")

	// ErrVectorStore marks failures of the vector database: unreachable
	// index, missing collection, upsert or search errors.
	ErrVectorStore = errors.New("vector store failed")

	// ErrConversationStore marks failures of the chat transcript store.
	ErrConversationStore = errors.New("conversation store failed")

	// ErrSourceDocument marks per-document ingestion failures: fetch
	// errors, unsupported formats, extraction errors.
	ErrSourceDocument = errors.New("source document failed")
)
