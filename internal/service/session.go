package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/accountdemo/accountdemo/internal/domain"
)

// SessionStore tracks the single currently-logged-in username. The value is
// persisted so it survives restarts; the app assumes one active session, so
// concurrent writes are last-write-wins with no extra locking.
type SessionStore struct {
	prefs domain.PrefsStore
}

func NewSessionStore(prefs domain.PrefsStore) *SessionStore {
	return &SessionStore{prefs: prefs}
}

func (s *SessionStore) SetCurrent(ctx context.Context, username string) error {
	return s.prefs.Set(ctx, domain.PrefCurrentUser, username)
}

// Current returns the logged-in username, or empty when nobody is.
func (s *SessionStore) Current(ctx context.Context) (string, error) {
	username, err := s.prefs.Get(ctx, domain.PrefCurrentUser)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load current user: %w", err)
	}
	return username, nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	return s.prefs.Delete(ctx, domain.PrefCurrentUser)
}
