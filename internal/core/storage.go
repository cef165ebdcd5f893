package core

import "context"

// SessionRepository persists conversation threads.
type SessionRepository interface {
	CreateSession(ctx context.Context) (Session, error)
	GetSession(ctx context.Context, id string) (Session, error)
	ListSessions(ctx context.Context) ([]Session, error)
}

// MessageRepository persists ordered turns inside a session. AddMessage
// advances the session's updated_at in the same transaction, which is what
// keeps per-session ordering monotonic under concurrent requests.
type MessageRepository interface {
	AddMessage(ctx context.Context, sessionID, sender, content string) error
	GetHistory(ctx context.Context, sessionID string) ([]Message, error)
}

// ConversationStore is the full read/write contract the orchestrator and
// the transports need from the relational collaborator.
type ConversationStore interface {
	SessionRepository
	MessageRepository
}
