package core

import "time"

const (
	AppName      = "CampusRAG"
	AppUserAgent = "CampusRAG/0.1"
	AppVersion   = "0.1.0"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Fragment is the unit of embedding and retrieval: a bounded slice of a
// document's extracted text plus the metadata it was indexed with. Once
// stored in the vector index a fragment is never mutated.
type Fragment struct {
	ID        string
	Text      string
	Metadata  map[string]any
	Embedding []float64
}

// SearchResult is a per-query match produced by the vector index.
// Results are ephemeral and never persisted.
type SearchResult struct {
	Excerpt  string
	Metadata map[string]any
	Score    float64
}

// Session is a persisted conversation thread.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message is a single turn inside a session. Messages are append-only and
// ordered by timestamp ascending.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
