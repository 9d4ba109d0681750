package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/accountdemo/accountdemo/internal/domain"
)

// PrefsRepository implements domain.PrefsStore as a flat key-value table.
type PrefsRepository struct {
	db *sql.DB
}

func (r *PrefsRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM prefs WHERE key = ?`, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("query pref %q: %w", key, err)
	}
	return value, nil
}

func (r *PrefsRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO prefs (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set pref %q: %w", key, err)
	}
	return nil
}

// Delete removes the key. Deleting an absent key is not an error.
func (r *PrefsRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM prefs WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete pref %q: %w", key, err)
	}
	return nil
}
