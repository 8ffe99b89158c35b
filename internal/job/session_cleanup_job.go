package job

import (
	"context"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/Avi0425/Paper-Forge-AI/internal/service"
)

// SessionCleanupJob removes stale empty chat sessions so abandoned
// "New Chat" shells do not pile up in the picker.
type SessionCleanupJob struct {
	chat      *service.ChatService
	retention time.Duration
}

func NewSessionCleanupJob(chat *service.ChatService, retention time.Duration) *SessionCleanupJob {
	return &SessionCleanupJob{chat: chat, retention: retention}
}

func (j *SessionCleanupJob) Name() string {
	return "session_cleanup"
}

func (j *SessionCleanupJob) Run(ctx context.Context) error {
	if j.chat == nil {
		return nil
	}
	retention := j.retention
	if retention <= 0 {
		retention = 30 * 24 * time.Hour
	}
	removed, err := j.chat.CleanupStale(ctx, retention)
	if err != nil {
		return err
	}
	if removed > 0 {
		logutil.GetLogger(ctx).Info("stale sessions removed", zap.Int64("count", removed))
	}
	return nil
}
