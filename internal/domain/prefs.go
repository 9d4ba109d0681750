package domain

import "context"

// PrefsStore is a flat string-keyed preference store, the durable home of
// the recent-users list, the autofill entries, and the current session.
// Concurrent writers to the same key are last-write-wins.
type PrefsStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Well-known preference keys.
const (
	PrefRecentUsers      = "recent_users"
	PrefRememberPassword = "remember_password"
	PrefSavedUsername    = "saved_username"
	PrefCurrentUser      = "current_user"
)
