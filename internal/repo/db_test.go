package repo

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Avi0425/Paper-Forge-AI/internal/model"
)

func TestOpenCreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.db")
	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(
		`SELECT COUNT(1) FROM sqlite_master WHERE type = 'table' AND name IN
		 ('chat_sessions', 'chat_messages', 'app_state', 'projects', 'corpus_sources')`).Scan(&count))
	require.Equal(t, 5, count)
}

func TestOpenMovesCorruptFileAside(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.db")
	require.NoError(t, os.WriteFile(path, []byte("this is not a sqlite file at all, just junk bytes"), 0o644))

	db, err := Open(path)
	require.NoError(t, err)
	defer db.Close()

	// Fresh database works.
	repo := NewSessionRepo(db)
	session := &model.ChatSession{ID: "s1", Title: "t", Ctime: 1, Mtime: 1}
	require.NoError(t, repo.Create(context.Background(), session))

	// The junk file was moved aside, not destroyed.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	foundAside := false
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), "app.db.corrupt.") {
			foundAside = true
		}
	}
	require.True(t, foundAside)
}

func TestOpenMissingParentDirFails(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing", "deep", "app.db"))
	require.Error(t, err)
}
