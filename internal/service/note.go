package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/accountdemo/accountdemo/internal/domain"
)

// NoteService manages each user's single Markdown scratch note and renders
// it for display. Rendered HTML is sanitized because note content is user
// input.
type NoteService struct {
	notes     domain.NoteRepository
	markdown  goldmark.Markdown
	sanitizer *bluemonday.Policy
}

func NewNoteService(notes domain.NoteRepository) *NoteService {
	return &NoteService{
		notes:     notes,
		markdown:  goldmark.New(),
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// Save stores the note content for the user, replacing any prior note.
func (s *NoteService) Save(ctx context.Context, userID int64, content string) (*domain.Note, error) {
	note := &domain.Note{UserID: userID, Content: content}
	if err := s.notes.Save(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// Load returns the user's note. A user who has never saved gets an empty
// note, not an error.
func (s *NoteService) Load(ctx context.Context, userID int64) (*domain.Note, error) {
	note, err := s.notes.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.Note{UserID: userID}, nil
	}
	return note, err
}

// Render converts Markdown to HTML safe to embed in a page.
func (s *NoteService) Render(content string) (string, error) {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return s.sanitizer.Sanitize(buf.String()), nil
}

// ExportFilename names a Markdown export the way the app always has:
// note_<timestamp>.md.
func ExportFilename(now time.Time) string {
	return "note_" + now.Format("20060102_150405") + ".md"
}
