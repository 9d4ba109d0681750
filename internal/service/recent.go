package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/accountdemo/accountdemo/internal/domain"
)

// RecentUsersCapacity bounds how many usernames the recent-login list keeps.
const RecentUsersCapacity = 5

// RecentUsers is a bounded, order-preserving list of the usernames that most
// recently logged in, persisted as a JSON array under a single preference
// key. Oldest first, most recent last.
type RecentUsers struct {
	prefs    domain.PrefsStore
	capacity int
}

func NewRecentUsers(prefs domain.PrefsStore) *RecentUsers {
	return &RecentUsers{prefs: prefs, capacity: RecentUsersCapacity}
}

// List returns the current membership, oldest first. An absent or
// undecodable stored list reads as empty; the undecodable case also drops
// the stored value so it cannot poison every later login.
func (r *RecentUsers) List(ctx context.Context) ([]string, error) {
	raw, err := r.prefs.Get(ctx, domain.PrefRecentUsers)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load recent users: %w", err)
	}

	var users []string
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		if derr := r.prefs.Delete(ctx, domain.PrefRecentUsers); derr != nil {
			return nil, fmt.Errorf("drop corrupt recent users: %w", derr)
		}
		return nil, nil
	}
	return users, nil
}

// Add records username as the most recent login. A username already present
// moves to the end; when the list grows past capacity the oldest entry is
// evicted.
func (r *RecentUsers) Add(ctx context.Context, username string) error {
	if username == "" {
		return nil
	}

	users, err := r.List(ctx)
	if err != nil {
		return err
	}

	updated := make([]string, 0, len(users)+1)
	for _, u := range users {
		if u != username {
			updated = append(updated, u)
		}
	}
	updated = append(updated, username)
	if len(updated) > r.capacity {
		updated = updated[len(updated)-r.capacity:]
	}

	raw, err := json.Marshal(updated)
	if err != nil {
		return fmt.Errorf("encode recent users: %w", err)
	}
	return r.prefs.Set(ctx, domain.PrefRecentUsers, string(raw))
}
