package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/Avi0425/Paper-Forge-AI/internal/model"
	appErr "github.com/Avi0425/Paper-Forge-AI/internal/pkg/errors"
)

const activeSessionKey = "active_chat_session"

// SessionRepo persists chat sessions and the active-session pointer.
// Every mutation runs inside one transaction, so a crash between calls
// never loses an acknowledged write and readers observe either the
// pre- or post-mutation snapshot.
type SessionRepo struct {
	db *sqlx.DB
}

func NewSessionRepo(db *sqlx.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

func (r *SessionRepo) inTx(ctx context.Context, op string, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return persistErr(op, err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return persistErr(op, err)
	}
	return persistErr(op, tx.Commit())
}

// Create inserts the session and makes it the active one.
func (r *SessionRepo) Create(ctx context.Context, session *model.ChatSession) error {
	return r.inTx(ctx, "create session", func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO chat_sessions (id, title, ctime, mtime) VALUES (?, ?, ?, ?)`,
			session.ID, session.Title, session.Ctime, session.Mtime); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO app_state (key, value) VALUES (?, ?)
			 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
			activeSessionKey, session.ID)
		return err
	})
}

func (r *SessionRepo) Get(ctx context.Context, id string) (*model.ChatSession, error) {
	var session model.ChatSession
	err := r.db.QueryRowxContext(ctx,
		`SELECT id, title, ctime, mtime FROM chat_sessions WHERE id = ?`, id).
		Scan(&session.ID, &session.Title, &session.Ctime, &session.Mtime)
	if err == sql.ErrNoRows {
		return nil, appErr.ErrNotFound
	}
	if err != nil {
		return nil, persistErr("get session", err)
	}
	messages, err := r.listMessages(ctx, id)
	if err != nil {
		return nil, err
	}
	session.Messages = messages
	return &session, nil
}

// List returns all sessions ordered by creation time, without their
// messages.
func (r *SessionRepo) List(ctx context.Context) ([]model.ChatSession, error) {
	rows, err := r.db.QueryxContext(ctx,
		`SELECT id, title, ctime, mtime FROM chat_sessions ORDER BY ctime ASC, id ASC`)
	if err != nil {
		return nil, persistErr("list sessions", err)
	}
	defer rows.Close()
	sessions := make([]model.ChatSession, 0)
	for rows.Next() {
		var session model.ChatSession
		if err := rows.Scan(&session.ID, &session.Title, &session.Ctime, &session.Mtime); err != nil {
			return nil, persistErr("list sessions", err)
		}
		sessions = append(sessions, session)
	}
	return sessions, persistErr("list sessions", rows.Err())
}

func (r *SessionRepo) listMessages(ctx context.Context, sessionID string) ([]model.ChatMessage, error) {
	rows, err := r.db.QueryxContext(ctx,
		`SELECT id, role, content, ctime FROM chat_messages WHERE session_id = ? ORDER BY seq ASC`,
		sessionID)
	if err != nil {
		return nil, persistErr("list messages", err)
	}
	defer rows.Close()
	messages := make([]model.ChatMessage, 0)
	for rows.Next() {
		var msg model.ChatMessage
		if err := rows.Scan(&msg.ID, &msg.Role, &msg.Content, &msg.Ctime); err != nil {
			return nil, persistErr("list messages", err)
		}
		messages = append(messages, msg)
	}
	return messages, persistErr("list messages", rows.Err())
}

// AppendMessage stores msg at the end of the session's message
// sequence and bumps the session mtime.
func (r *SessionRepo) AppendMessage(ctx context.Context, sessionID string, msg model.ChatMessage) error {
	return r.inTx(ctx, "append message", func(tx *sqlx.Tx) error {
		if err := touchSession(ctx, tx, sessionID, msg.Ctime); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO chat_messages (id, session_id, role, content, ctime) VALUES (?, ?, ?, ?, ?)`,
			msg.ID, sessionID, msg.Role, msg.Content, msg.Ctime)
		return err
	})
}

// Clear removes every message of the session. Calling it twice leaves
// the same empty state, only the mtime differs.
func (r *SessionRepo) Clear(ctx context.Context, sessionID string) error {
	return r.inTx(ctx, "clear session", func(tx *sqlx.Tx) error {
		if err := touchSession(ctx, tx, sessionID, time.Now().Unix()); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM chat_messages WHERE session_id = ?`, sessionID)
		return err
	})
}

func (r *SessionRepo) Rename(ctx context.Context, sessionID, title string) error {
	return r.inTx(ctx, "rename session", func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE chat_sessions SET title = ?, mtime = ? WHERE id = ?`,
			title, time.Now().Unix(), sessionID)
		if err != nil {
			return err
		}
		return requireRow(res)
	})
}

// Delete removes the session and its messages. The active pointer is
// cleared when it referenced the deleted session.
func (r *SessionRepo) Delete(ctx context.Context, sessionID string) error {
	return r.inTx(ctx, "delete session", func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM chat_sessions WHERE id = ?`, sessionID)
		if err != nil {
			return err
		}
		if err := requireRow(res); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM chat_messages WHERE session_id = ?`, sessionID); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`DELETE FROM app_state WHERE key = ? AND value = ?`, activeSessionKey, sessionID)
		return err
	})
}

// SetActive points the active-session marker at sessionID; an empty id
// clears it.
func (r *SessionRepo) SetActive(ctx context.Context, sessionID string) error {
	return r.inTx(ctx, "set active session", func(tx *sqlx.Tx) error {
		if sessionID == "" {
			_, err := tx.ExecContext(ctx, `DELETE FROM app_state WHERE key = ?`, activeSessionKey)
			return err
		}
		var exists int
		if err := tx.QueryRowxContext(ctx,
			`SELECT COUNT(1) FROM chat_sessions WHERE id = ?`, sessionID).Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return appErr.ErrNotFound
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO app_state (key, value) VALUES (?, ?)
			 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
			activeSessionKey, sessionID)
		return err
	})
}

// ActiveID returns the active session id, or "" when none is set.
func (r *SessionRepo) ActiveID(ctx context.Context) (string, error) {
	var id string
	err := r.db.QueryRowxContext(ctx,
		`SELECT value FROM app_state WHERE key = ?`, activeSessionKey).Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", persistErr("get active session", err)
	}
	return id, nil
}

// DeleteEmptyBefore removes sessions that never received a message and
// were last touched before cutoff. The active session is spared.
func (r *SessionRepo) DeleteEmptyBefore(ctx context.Context, cutoff int64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM chat_sessions
		 WHERE mtime < ?
		   AND id NOT IN (SELECT DISTINCT session_id FROM chat_messages)
		   AND id NOT IN (SELECT value FROM app_state WHERE key = ?)`,
		cutoff, activeSessionKey)
	if err != nil {
		return 0, persistErr("cleanup sessions", err)
	}
	affected, err := res.RowsAffected()
	return affected, persistErr("cleanup sessions", err)
}

func touchSession(ctx context.Context, tx *sqlx.Tx, sessionID string, mtime int64) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE chat_sessions SET mtime = ? WHERE id = ?`, mtime, sessionID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}
