package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/accountdemo/accountdemo/internal/service"
)

// NoteHandler serves the authenticated user's Markdown note.
type NoteHandler struct {
	notes *service.NoteService
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(notes *service.NoteService) *NoteHandler {
	return &NoteHandler{notes: notes}
}

// HandleGet returns the user's note plus its rendered HTML.
// GET /api/note
// Response: {"note": {...}, "html": "..."}
func (h *NoteHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	note, err := h.notes.Load(r.Context(), user.ID)
	if err != nil {
		slog.Error("load note", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	html, err := h.notes.Render(note.Content)
	if err != nil {
		slog.Error("render note", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"note": toNoteDTO(note),
		"html": html,
	})
}

// HandleSave replaces the user's note content.
// PUT /api/note
// Request:  {"content": "..."}
// Response: {"note": {...}}
func (h *NoteHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	note, err := h.notes.Save(r.Context(), user.ID, req.Content)
	if err != nil {
		slog.Error("save note", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"note": toNoteDTO(note),
	})
}

// HandleExport downloads the note as a Markdown file.
// GET /api/note/export
func (h *NoteHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	note, err := h.notes.Load(r.Context(), user.ID)
	if err != nil {
		slog.Error("load note for export", "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+service.ExportFilename(time.Now())+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(note.Content)); err != nil {
		slog.Error("write note export", "error", err)
	}
}
