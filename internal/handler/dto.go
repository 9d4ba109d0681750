package handler

import (
	"time"

	"github.com/accountdemo/accountdemo/internal/domain"
)

// UserDTO is the JSON representation of a user. The password hash never
// leaves the server.
type UserDTO struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	CreatedAt string `json:"createdAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// NoteDTO is the JSON representation of a note.
type NoteDTO struct {
	Content   string `json:"content"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

func toNoteDTO(n *domain.Note) NoteDTO {
	dto := NoteDTO{Content: n.Content}
	if !n.UpdatedAt.IsZero() {
		dto.UpdatedAt = n.UpdatedAt.Format(time.RFC3339)
	}
	return dto
}
