package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/movie-catalog/internal/auth"
)

// SessionAuditWorker periodically enumerates active session records and
// logs them. The scan is unbounded, so it runs here on an interval
// instead of inside the authorization hot path.
type SessionAuditWorker struct {
	sessions *auth.SessionStore
	interval time.Duration
	logger   *zap.Logger
}

// NewSessionAuditWorker builds the worker.
func NewSessionAuditWorker(sessions *auth.SessionStore, interval time.Duration, logger *zap.Logger) *SessionAuditWorker {
	return &SessionAuditWorker{sessions: sessions, interval: interval, logger: logger}
}

// Run blocks until ctx is cancelled, auditing once per interval.
func (w *SessionAuditWorker) Run(ctx context.Context) {
	if w.interval <= 0 {
		return
	}
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.audit(ctx)
		}
	}
}

func (w *SessionAuditWorker) audit(ctx context.Context) {
	sessions, err := w.sessions.ListActive(ctx)
	if err != nil {
		w.logger.Warn("session audit failed", zap.Error(err))
		return
	}

	w.logger.Info("active sessions", zap.Int("count", len(sessions)))
	for _, session := range sessions {
		w.logger.Debug("active session", zap.String("user_id", session.UserID))
	}
}
