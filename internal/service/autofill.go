package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/accountdemo/accountdemo/internal/domain"
)

const (
	// AutofillValidity is how long a remembered password stays usable.
	AutofillValidity = 24 * time.Hour

	// expiringSoonMinutes is the warning threshold for ExpiringSoon.
	expiringSoonMinutes = 60

	autofillKeySuffix = "_password_plain"
)

// AutofillCache stores a plaintext password per user, stamped with its write
// time, so the login form can be pre-filled for a bounded window. The cached
// value is never used to authenticate. Entries are encoded as
// "<password>_<epochMillis>" for compatibility with records written by
// earlier revisions; a password containing an underscore therefore reads
// back as corrupt and is dropped, same as before.
type AutofillCache struct {
	prefs domain.PrefsStore
	now   func() time.Time
}

func NewAutofillCache(prefs domain.PrefsStore) *AutofillCache {
	return NewAutofillCacheWithClock(prefs, time.Now)
}

// NewAutofillCacheWithClock is NewAutofillCache with an injected clock,
// for tests that need to age entries.
func NewAutofillCacheWithClock(prefs domain.PrefsStore, now func() time.Time) *AutofillCache {
	return &AutofillCache{prefs: prefs, now: now}
}

func autofillKey(username string) string {
	return username + autofillKeySuffix
}

// Store remembers the password for username, overwriting any prior entry.
// Empty inputs are ignored.
func (c *AutofillCache) Store(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}
	value := password + "_" + strconv.FormatInt(c.now().UnixMilli(), 10)
	return c.prefs.Set(ctx, autofillKey(username), value)
}

// FetchValid returns the remembered password, or ErrNotFound when there is
// no entry, the entry has expired, or the stored value does not parse.
// Expired and corrupt entries are deleted on detection.
func (c *AutofillCache) FetchValid(ctx context.Context, username string) (string, error) {
	if username == "" {
		return "", domain.ErrNotFound
	}

	raw, err := c.prefs.Get(ctx, autofillKey(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("load autofill entry: %w", err)
	}

	password, writtenAt, ok := parseAutofillValue(raw)
	if !ok {
		if err := c.prefs.Delete(ctx, autofillKey(username)); err != nil {
			return "", fmt.Errorf("drop corrupt autofill entry: %w", err)
		}
		return "", domain.ErrNotFound
	}

	if c.now().UnixMilli()-writtenAt > AutofillValidity.Milliseconds() {
		if err := c.prefs.Delete(ctx, autofillKey(username)); err != nil {
			return "", fmt.Errorf("drop expired autofill entry: %w", err)
		}
		return "", domain.ErrNotFound
	}

	return password, nil
}

// RemainingMinutes reports how many whole minutes the entry has left, or 0
// when it is absent, corrupt, or already expired. Unlike FetchValid this is
// a pure read; it never deletes.
func (c *AutofillCache) RemainingMinutes(ctx context.Context, username string) (int64, error) {
	if username == "" {
		return 0, nil
	}

	raw, err := c.prefs.Get(ctx, autofillKey(username))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("load autofill entry: %w", err)
	}

	_, writtenAt, ok := parseAutofillValue(raw)
	if !ok {
		return 0, nil
	}

	remaining := AutofillValidity.Milliseconds() - (c.now().UnixMilli() - writtenAt)
	if remaining < 0 {
		return 0, nil
	}
	return remaining / (60 * 1000), nil
}

// ExpiringSoon reports whether the entry is still valid but inside its last
// hour.
func (c *AutofillCache) ExpiringSoon(ctx context.Context, username string) (bool, error) {
	remaining, err := c.RemainingMinutes(ctx, username)
	if err != nil {
		return false, err
	}
	return remaining > 0 && remaining <= expiringSoonMinutes, nil
}

// Clear forgets the remembered password. Clearing an absent entry is a
// no-op.
func (c *AutofillCache) Clear(ctx context.Context, username string) error {
	if username == "" {
		return nil
	}
	return c.prefs.Delete(ctx, autofillKey(username))
}

func parseAutofillValue(raw string) (password string, writtenAt int64, ok bool) {
	parts := strings.Split(raw, "_")
	if len(parts) != 2 {
		return "", 0, false
	}
	ts, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", 0, false
	}
	return parts[0], ts, true
}
