package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/Avi0425/Paper-Forge-AI/internal/model"
	appErr "github.com/Avi0425/Paper-Forge-AI/internal/pkg/errors"
	"github.com/Avi0425/Paper-Forge-AI/internal/repo"
)

func openTestDB(t *testing.T) (*sqlx.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := repo.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, path
}

type stubResponder struct {
	mu      sync.Mutex
	reply   string
	err     error
	started chan struct{}
	release chan struct{}
}

func (r *stubResponder) Respond(ctx context.Context, utterance string, paperContext string) (string, error) {
	if r.started != nil {
		close(r.started)
	}
	if r.release != nil {
		<-r.release
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return "", r.err
	}
	if r.reply != "" {
		return r.reply, nil
	}
	return "reply to: " + utterance, nil
}

func newChatService(t *testing.T, responder *stubResponder) *ChatService {
	db, _ := openTestDB(t)
	return NewChatService(repo.NewSessionRepo(db), responder, time.Second)
}

func TestSendMessageCreatesActiveSession(t *testing.T) {
	svc := newChatService(t, &stubResponder{})

	session, err := svc.SendMessage(context.Background(), "hello there", "")
	require.NoError(t, err)
	require.Equal(t, "New Chat", session.Title)
	require.Len(t, session.Messages, 2)
	require.Equal(t, model.RoleUser, session.Messages[0].Role)
	require.Equal(t, "hello there", session.Messages[0].Content)
	require.Equal(t, model.RoleAssistant, session.Messages[1].Role)

	active, err := svc.ActiveSession(context.Background())
	require.NoError(t, err)
	require.NotNil(t, active)
	require.Equal(t, session.ID, active.ID)
}

func TestSendMessageAppendsToActiveSession(t *testing.T) {
	svc := newChatService(t, &stubResponder{})

	first, err := svc.SendMessage(context.Background(), "first", "")
	require.NoError(t, err)
	second, err := svc.SendMessage(context.Background(), "second", "")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Len(t, second.Messages, 4)
	require.Equal(t, "first", second.Messages[0].Content)
	require.Equal(t, "second", second.Messages[2].Content)
}

func TestSendMessageEmptyContent(t *testing.T) {
	svc := newChatService(t, &stubResponder{})
	_, err := svc.SendMessage(context.Background(), "   ", "")
	require.ErrorIs(t, err, appErr.ErrInvalid)
}

func TestSendMessageResponderFailureKeepsUserMessage(t *testing.T) {
	responder := &stubResponder{err: errors.New("model offline")}
	svc := newChatService(t, responder)

	_, err := svc.SendMessage(context.Background(), "will fail", "")
	require.ErrorIs(t, err, appErr.ErrCollaborator)

	active, err := svc.ActiveSession(context.Background())
	require.NoError(t, err)
	require.NotNil(t, active)
	require.Len(t, active.Messages, 1)
	require.Equal(t, model.RoleUser, active.Messages[0].Role)
	require.Equal(t, "will fail", active.Messages[0].Content)
}

func TestGeneratingFlagDuringSend(t *testing.T) {
	responder := &stubResponder{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc := newChatService(t, responder)
	require.False(t, svc.IsGenerating())

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = svc.SendMessage(context.Background(), "slow question", "")
	}()

	<-responder.started
	require.True(t, svc.IsGenerating())
	close(responder.release)
	<-done
	require.False(t, svc.IsGenerating())
}

func TestSessionPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")
	db, err := repo.Open(path)
	require.NoError(t, err)

	svc := NewChatService(repo.NewSessionRepo(db), &stubResponder{}, time.Second)
	session, err := svc.SendMessage(context.Background(), "remember me", "")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = repo.Open(path)
	require.NoError(t, err)
	defer db.Close()

	reopened := NewChatService(repo.NewSessionRepo(db), &stubResponder{}, time.Second)
	active, err := reopened.ActiveSession(context.Background())
	require.NoError(t, err)
	require.NotNil(t, active)
	require.Equal(t, session.ID, active.ID)
	require.Len(t, active.Messages, 2)
	require.Equal(t, "remember me", active.Messages[0].Content)
}

func TestClearSessionIdempotent(t *testing.T) {
	svc := newChatService(t, &stubResponder{})
	session, err := svc.SendMessage(context.Background(), "to be cleared", "")
	require.NoError(t, err)

	require.NoError(t, svc.ClearSession(context.Background(), session.ID))
	cleared, err := svc.GetSession(context.Background(), session.ID)
	require.NoError(t, err)
	require.Empty(t, cleared.Messages)

	require.NoError(t, svc.ClearSession(context.Background(), session.ID))
	cleared, err = svc.GetSession(context.Background(), session.ID)
	require.NoError(t, err)
	require.Empty(t, cleared.Messages)
}

func TestDeleteActiveSessionClearsPointer(t *testing.T) {
	svc := newChatService(t, &stubResponder{})
	session, err := svc.CreateSession(context.Background(), "doomed")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSession(context.Background(), session.ID))
	active, err := svc.ActiveSession(context.Background())
	require.NoError(t, err)
	require.Nil(t, active)

	_, err = svc.GetSession(context.Background(), session.ID)
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestSetActiveValidatesSession(t *testing.T) {
	svc := newChatService(t, &stubResponder{})
	a, err := svc.CreateSession(context.Background(), "a")
	require.NoError(t, err)
	b, err := svc.CreateSession(context.Background(), "b")
	require.NoError(t, err)

	// Creating b made it active; switch back to a.
	require.NoError(t, svc.SetActive(context.Background(), a.ID))
	active, err := svc.ActiveSession(context.Background())
	require.NoError(t, err)
	require.Equal(t, a.ID, active.ID)

	require.ErrorIs(t, svc.SetActive(context.Background(), "no-such-id"), appErr.ErrNotFound)

	require.NoError(t, svc.SetActive(context.Background(), ""))
	active, err = svc.ActiveSession(context.Background())
	require.NoError(t, err)
	require.Nil(t, active)
	_ = b
}

func TestRenameSession(t *testing.T) {
	svc := newChatService(t, &stubResponder{})
	session, err := svc.CreateSession(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, "New Chat", session.Title)

	require.NoError(t, svc.RenameSession(context.Background(), session.ID, "Quantum Draft"))
	renamed, err := svc.GetSession(context.Background(), session.ID)
	require.NoError(t, err)
	require.Equal(t, "Quantum Draft", renamed.Title)

	require.ErrorIs(t, svc.RenameSession(context.Background(), session.ID, "  "), appErr.ErrInvalid)
}

func TestAppendMessageRejectsUnknownRole(t *testing.T) {
	svc := newChatService(t, &stubResponder{})
	session, err := svc.CreateSession(context.Background(), "s")
	require.NoError(t, err)

	_, err = svc.AppendMessage(context.Background(), session.ID, "system", "nope")
	require.ErrorIs(t, err, appErr.ErrInvalid)
}

func TestCleanupStaleSparesActiveAndNonEmpty(t *testing.T) {
	db, _ := openTestDB(t)
	sessions := repo.NewSessionRepo(db)
	svc := NewChatService(sessions, &stubResponder{}, time.Second)

	old := time.Now().Add(-60 * 24 * time.Hour).Unix()
	stale := &model.ChatSession{ID: "stale", Title: "stale", Ctime: old, Mtime: old}
	require.NoError(t, sessions.Create(context.Background(), stale))
	used := &model.ChatSession{ID: "used", Title: "used", Ctime: old, Mtime: old}
	require.NoError(t, sessions.Create(context.Background(), used))
	require.NoError(t, sessions.AppendMessage(context.Background(), used.ID,
		model.ChatMessage{ID: "m1", Role: model.RoleUser, Content: "hi", Ctime: old}))
	active := &model.ChatSession{ID: "active", Title: "active", Ctime: old, Mtime: old}
	require.NoError(t, sessions.Create(context.Background(), active))

	removed, err := svc.CleanupStale(context.Background(), 30*24*time.Hour)
	require.NoError(t, err)
	require.Equal(t, int64(1), removed)

	_, err = sessions.Get(context.Background(), "stale")
	require.ErrorIs(t, err, appErr.ErrNotFound)
	_, err = sessions.Get(context.Background(), "used")
	require.NoError(t, err)
	_, err = sessions.Get(context.Background(), "active")
	require.NoError(t, err)
}

func TestSuggestionsPerSection(t *testing.T) {
	svc := newChatService(t, &stubResponder{})

	base := svc.Suggestions(nil)
	require.Len(t, base, 4)

	extended := svc.Suggestions(map[model.Section]string{
		model.SectionAbstract: "some abstract",
		model.SectionMethods:  "some methods",
	})
	require.Len(t, extended, 6)
	require.Contains(t, extended, "Help me refine my abstract")
	require.Contains(t, extended, "Review my methodology for clarity")
}
