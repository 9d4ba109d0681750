package domain

import (
	"context"
	"time"
)

// User represents a registered account. Records are immutable after
// registration; there is no update or delete operation.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create inserts the user and fails with ErrDuplicateUsername if the
	// username is already taken. The insert is atomic; there is no separate
	// existence check.
	Create(ctx context.Context, user *User) error
	// GetByUsername returns the stored record or ErrNotFound. Username
	// matching is case-sensitive and exact.
	GetByUsername(ctx context.Context, username string) (*User, error)
	// GetByID returns the stored record or ErrNotFound.
	GetByID(ctx context.Context, id int64) (*User, error)
}
