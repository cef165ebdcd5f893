package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sandevgo/campusrag/internal/core"
	"github.com/sandevgo/campusrag/pkg/log"
)

type SessionsRepo struct {
	db *sql.DB
}

func NewSessionsRepo(db *sql.DB) *SessionsRepo {
	return &SessionsRepo{db: db}
}

func (r *SessionsRepo) CreateSession(ctx context.Context) (core.Session, error) {
	now := time.Now().UTC()
	session := core.Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	query := `INSERT INTO chat_sessions (id, created_at, updated_at) VALUES (?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, session.ID, session.CreatedAt, session.UpdatedAt); err != nil {
		return core.Session{}, fmt.Errorf("%w: failed to insert session: %v", core.ErrConversationStore, err)
	}

	log.FromCtx(ctx).Debug().Str("session_id", session.ID).Msg("created chat session")
	return session, nil
}

func (r *SessionsRepo) GetSession(ctx context.Context, id string) (core.Session, error) {
	query := `SELECT id, created_at, updated_at FROM chat_sessions WHERE id = ?`

	var session core.Session
	err := r.db.QueryRowContext(ctx, query, id).Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		return core.Session{}, fmt.Errorf("%w: failed to load session %s: %v", core.ErrConversationStore, id, err)
	}
	return session, nil
}

// ListSessions returns all sessions, most recently active first.
func (r *SessionsRepo) ListSessions(ctx context.Context) ([]core.Session, error) {
	query := `SELECT id, created_at, updated_at FROM chat_sessions ORDER BY updated_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query sessions: %v", core.ErrConversationStore, err)
	}
	defer rows.Close()

	var sessions []core.Session
	for rows.Next() {
		var session core.Session
		if err := rows.Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: failed to scan session: %v", core.ErrConversationStore, err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrConversationStore, err)
	}

	return sessions, nil
}
