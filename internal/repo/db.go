package repo

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	appErr "github.com/Avi0425/Paper-Forge-AI/internal/pkg/errors"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS chat_sessions (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		ctime INTEGER NOT NULL,
		mtime INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS chat_messages (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL,
		session_id TEXT NOT NULL,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		ctime INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_chat_messages_session ON chat_messages(session_id)`,
	`CREATE TABLE IF NOT EXISTS app_state (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		author TEXT NOT NULL,
		sections TEXT NOT NULL,
		citations TEXT,
		similarity TEXT,
		ctime INTEGER NOT NULL,
		mtime INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS corpus_sources (
		id TEXT PRIMARY KEY,
		description TEXT NOT NULL,
		content TEXT NOT NULL,
		ctime INTEGER NOT NULL
	)`,
}

// Open opens the sqlite database at dbPath and applies migrations. An
// unreadable or unmigratable file is treated as absent: it is moved
// aside and a fresh database is created in its place, so startup never
// fails on corrupt persisted state.
func Open(dbPath string) (*sqlx.DB, error) {
	db, err := open(dbPath)
	if err == nil {
		return db, nil
	}
	if _, statErr := os.Stat(dbPath); statErr != nil {
		return nil, err
	}
	aside := fmt.Sprintf("%s.corrupt.%d", dbPath, time.Now().Unix())
	logutil.GetLogger(context.Background()).Warn("db unreadable, starting empty",
		zap.String("db_path", dbPath), zap.String("moved_to", aside), zap.Error(err))
	if renameErr := os.Rename(dbPath, aside); renameErr != nil {
		return nil, fmt.Errorf("move corrupt db aside: %w", renameErr)
	}
	return open(dbPath)
}

func open(dbPath string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := applyMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func applyMigrations(db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration: %w", err)
		}
	}
	return nil
}

// persistErr wraps a storage error so callers can classify it without
// depending on driver error types. Sentinel errors pass through.
func persistErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if appErr.IsNotFound(err) || appErr.IsInvalid(err) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", appErr.ErrPersistence, op, err)
}
