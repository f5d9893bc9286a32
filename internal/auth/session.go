package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spec-kit/movie-catalog/internal/kv"
)

const sessionKeyPrefix = "session:"

// ErrNoSession is returned when no session record exists for a user.
var ErrNoSession = errors.New("no active session")

// ActiveSession is a diagnostic view of a stored session record.
type ActiveSession struct {
	UserID string
	Token  string
}

// SessionStore maps a user to its currently valid credential. A signed
// token authorizes a request only while an identical record exists here,
// which makes tokens revocable before their natural expiry.
type SessionStore struct {
	store kv.Store
	ttl   time.Duration
}

// NewSessionStore builds the store.
func NewSessionStore(store kv.Store, ttl time.Duration) *SessionStore {
	return &SessionStore{store: store, ttl: ttl}
}

// Put records token as the single active credential for the user,
// replacing any prior one. Overwrite is the revocation mechanism for
// older, still signature-valid tokens.
func (s *SessionStore) Put(ctx context.Context, userID, token string) error {
	return s.store.Set(ctx, sessionKey(userID), token, s.ttl)
}

// Get returns the active token for the user, or ErrNoSession.
func (s *SessionStore) Get(ctx context.Context, userID string) (string, error) {
	token, err := s.store.Get(ctx, sessionKey(userID))
	if errors.Is(err, kv.ErrNotFound) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

// Delete revokes the user's session.
func (s *SessionStore) Delete(ctx context.Context, userID string) error {
	return s.store.Delete(ctx, sessionKey(userID))
}

// ListActive enumerates all session records. Diagnostic only: the scan is
// unbounded, so callers run it out of band, never per request.
func (s *SessionStore) ListActive(ctx context.Context) ([]ActiveSession, error) {
	entries, err := s.store.Scan(ctx, sessionKeyPrefix)
	if err != nil {
		return nil, err
	}
	sessions := make([]ActiveSession, 0, len(entries))
	for _, entry := range entries {
		sessions = append(sessions, ActiveSession{
			UserID: strings.TrimPrefix(entry.Key, sessionKeyPrefix),
			Token:  entry.Value,
		})
	}
	return sessions, nil
}

func sessionKey(userID string) string {
	return sessionKeyPrefix + userID
}
