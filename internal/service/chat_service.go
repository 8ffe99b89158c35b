package service

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/Avi0425/Paper-Forge-AI/internal/assistant"
	"github.com/Avi0425/Paper-Forge-AI/internal/model"
	appErr "github.com/Avi0425/Paper-Forge-AI/internal/pkg/errors"
	"github.com/Avi0425/Paper-Forge-AI/internal/repo"
)

const defaultSessionTitle = "New Chat"

// ChatService owns conversational sessions and composes the responder
// into them. The generating flag is a single boolean per service
// instance: overlapping sends against different sessions share it,
// which matches a UI with one conversation surface.
type ChatService struct {
	sessions   *repo.SessionRepo
	responder  assistant.Responder
	timeout    time.Duration
	generating atomic.Bool
}

func NewChatService(sessions *repo.SessionRepo, responder assistant.Responder, timeout time.Duration) *ChatService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ChatService{sessions: sessions, responder: responder, timeout: timeout}
}

// CreateSession stores a fresh empty session and makes it active.
func (s *ChatService) CreateSession(ctx context.Context, title string) (*model.ChatSession, error) {
	if strings.TrimSpace(title) == "" {
		title = defaultSessionTitle
	}
	now := time.Now().Unix()
	session := &model.ChatSession{
		ID:       newID(),
		Title:    title,
		Messages: make([]model.ChatMessage, 0),
		Ctime:    now,
		Mtime:    now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	logutil.GetLogger(ctx).Info("chat session created", zap.String("session_id", session.ID))
	return session, nil
}

func (s *ChatService) ListSessions(ctx context.Context) ([]model.ChatSession, error) {
	return s.sessions.List(ctx)
}

func (s *ChatService) GetSession(ctx context.Context, id string) (*model.ChatSession, error) {
	return s.sessions.Get(ctx, id)
}

// ActiveSession returns the active session with its messages, or nil
// when none is active.
func (s *ChatService) ActiveSession(ctx context.Context) (*model.ChatSession, error) {
	id, err := s.sessions.ActiveID(ctx)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, nil
	}
	return s.sessions.Get(ctx, id)
}

func (s *ChatService) SetActive(ctx context.Context, id string) error {
	return s.sessions.SetActive(ctx, id)
}

func (s *ChatService) AppendMessage(ctx context.Context, sessionID, role, content string) (*model.ChatMessage, error) {
	if role != model.RoleUser && role != model.RoleAssistant {
		return nil, fmt.Errorf("%w: unknown role %q", appErr.ErrInvalid, role)
	}
	msg := model.ChatMessage{
		ID:      newID(),
		Role:    role,
		Content: content,
		Ctime:   time.Now().Unix(),
	}
	if err := s.sessions.AppendMessage(ctx, sessionID, msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (s *ChatService) ClearSession(ctx context.Context, id string) error {
	return s.sessions.Clear(ctx, id)
}

func (s *ChatService) RenameSession(ctx context.Context, id, title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title required", appErr.ErrInvalid)
	}
	return s.sessions.Rename(ctx, id, title)
}

func (s *ChatService) DeleteSession(ctx context.Context, id string) error {
	return s.sessions.Delete(ctx, id)
}

// IsGenerating reports whether a SendMessage call is in flight.
func (s *ChatService) IsGenerating() bool {
	return s.generating.Load()
}

// SendMessage appends the utterance to the active session (creating
// one when none is active), asks the responder for a reply and appends
// that too. The user message stays appended when the responder fails.
func (s *ChatService) SendMessage(ctx context.Context, content, paperContext string) (*model.ChatSession, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: message content required", appErr.ErrInvalid)
	}
	activeID, err := s.sessions.ActiveID(ctx)
	if err != nil {
		return nil, err
	}
	if activeID == "" {
		session, err := s.CreateSession(ctx, defaultSessionTitle)
		if err != nil {
			return nil, err
		}
		activeID = session.ID
	}
	if _, err := s.AppendMessage(ctx, activeID, model.RoleUser, content); err != nil {
		return nil, err
	}

	s.generating.Store(true)
	defer s.generating.Store(false)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	reply, err := s.responder.Respond(callCtx, content, paperContext)
	if err != nil {
		logutil.GetLogger(ctx).Error("assistant respond failed",
			zap.String("session_id", activeID), zap.Error(err))
		return nil, fmt.Errorf("%w: assistant: %v", appErr.ErrCollaborator, err)
	}
	if _, err := s.AppendMessage(ctx, activeID, model.RoleAssistant, reply); err != nil {
		return nil, err
	}
	return s.sessions.Get(ctx, activeID)
}

// Suggestions returns chat prompt suggestions, extended per section
// that already has content.
func (s *ChatService) Suggestions(sections map[model.Section]string) []string {
	suggestions := []string{
		"Find research ideas for quantum machine learning",
		"Explain quantum feature maps in simple terms",
		"Suggest citations for hybrid quantum-classical models",
		"How can I improve the methods section?",
	}
	if sections[model.SectionAbstract] != "" {
		suggestions = append(suggestions, "Help me refine my abstract")
	}
	if sections[model.SectionIntroduction] != "" {
		suggestions = append(suggestions, "Suggest a stronger opening for my introduction")
	}
	if sections[model.SectionMethods] != "" {
		suggestions = append(suggestions, "Review my methodology for clarity")
	}
	return suggestions
}

// CleanupStale deletes never-used sessions older than retention.
func (s *ChatService) CleanupStale(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention).Unix()
	return s.sessions.DeleteEmptyBefore(ctx, cutoff)
}
