package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/accountdemo/accountdemo/internal/domain"
)

// NoteRepository implements domain.NoteRepository using SQLite.
type NoteRepository struct {
	db *sql.DB
}

func (r *NoteRepository) Save(ctx context.Context, note *domain.Note) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notes (user_id, content, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET content = excluded.content, updated_at = excluded.updated_at`,
		note.UserID, note.Content, now,
	)
	if err != nil {
		return fmt.Errorf("save note: %w", err)
	}
	note.UpdatedAt = now
	return nil
}

func (r *NoteRepository) Get(ctx context.Context, userID int64) (*domain.Note, error) {
	note := &domain.Note{}
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, content, updated_at FROM notes WHERE user_id = ?`,
		userID,
	).Scan(&note.UserID, &note.Content, &note.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query note: %w", err)
	}
	return note, nil
}
