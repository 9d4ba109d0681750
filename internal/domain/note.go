package domain

import (
	"context"
	"time"
)

// Note is a user's single Markdown scratch note.
type Note struct {
	UserID    int64
	Content   string
	UpdatedAt time.Time
}

// NoteRepository persists one note per user.
type NoteRepository interface {
	// Save creates or replaces the user's note.
	Save(ctx context.Context, note *Note) error
	// Get returns the user's note or ErrNotFound.
	Get(ctx context.Context, userID int64) (*Note, error)
}
