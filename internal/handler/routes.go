package handler

import (
	"net/http"

	"github.com/accountdemo/accountdemo/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, auth *service.AuthService, movies *service.MovieService, notes *service.NoteService) {
	authHandler := NewAuthHandler(auth)
	movieHandler := NewMovieHandler(movies)
	noteHandler := NewNoteHandler(notes)

	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.HandleFunc("POST /api/auth/register", authHandler.HandleRegister)
	mux.HandleFunc("POST /api/auth/login", authHandler.HandleLogin)
	mux.HandleFunc("POST /api/auth/logout", authHandler.HandleLogout)
	mux.HandleFunc("GET /api/auth/recent", authHandler.HandleRecentUsers)
	mux.HandleFunc("GET /api/auth/autofill", authHandler.HandleAutofill)
	mux.Handle("GET /api/auth/me", RequireAuth(auth, http.HandlerFunc(authHandler.HandleMe)))

	mux.HandleFunc("GET /api/movies", movieHandler.HandleList)

	mux.Handle("GET /api/note", RequireAuth(auth, http.HandlerFunc(noteHandler.HandleGet)))
	mux.Handle("PUT /api/note", RequireAuth(auth, http.HandlerFunc(noteHandler.HandleSave)))
	mux.Handle("GET /api/note/export", RequireAuth(auth, http.HandlerFunc(noteHandler.HandleExport)))
}
