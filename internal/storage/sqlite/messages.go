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

type MessagesRepo struct {
	db *sql.DB
}

func NewMessagesRepo(db *sql.DB) *MessagesRepo {
	return &MessagesRepo{db: db}
}

// AddMessage stores one message and bumps the session's updated_at in the
// same transaction, so session ordering always reflects the latest activity.
func (r *MessagesRepo) AddMessage(ctx context.Context, sessionID, sender, content string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to begin tx: %v", core.ErrConversationStore, err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	query := `INSERT INTO chat_messages (id, session_id, sender, content, timestamp) VALUES (?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, query, uuid.NewString(), sessionID, sender, content, now); err != nil {
		return fmt.Errorf("%w: failed to insert message: %v", core.ErrConversationStore, err)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE chat_sessions SET updated_at = ? WHERE id = ?`, now, sessionID); err != nil {
		return fmt.Errorf("%w: failed to touch session: %v", core.ErrConversationStore, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit message: %v", core.ErrConversationStore, err)
	}
	return nil
}

// GetHistory returns the session's messages in chronological order.
func (r *MessagesRepo) GetHistory(ctx context.Context, sessionID string) ([]core.Message, error) {
	query := `SELECT id, session_id, sender, content, timestamp FROM chat_messages WHERE session_id = ? ORDER BY timestamp ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query messages: %v", core.ErrConversationStore, err)
	}
	defer rows.Close()

	var messages []core.Message
	for rows.Next() {
		var msg core.Message
		if err := rows.Scan(&msg.ID, &msg.SessionID, &msg.Sender, &msg.Content, &msg.Timestamp); err != nil {
			return nil, fmt.Errorf("%w: failed to scan message: %v", core.ErrConversationStore, err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrConversationStore, err)
	}

	log.FromCtx(ctx).Debug().Int("count", len(messages)).Msg("loaded history messages")
	return messages, nil
}
