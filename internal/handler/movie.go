package handler

import (
	"net/http"

	"github.com/accountdemo/accountdemo/internal/service"
)

// MovieHandler serves the demo movie catalog.
type MovieHandler struct {
	movies *service.MovieService
}

// NewMovieHandler creates a new MovieHandler.
func NewMovieHandler(movies *service.MovieService) *MovieHandler {
	return &MovieHandler{movies: movies}
}

// HandleList returns the catalog, optionally sorted by rating.
// GET /api/movies?sort=rating&order=asc|desc
// Response: {"movies": [...]}
func (h *MovieHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	sortByRating := r.URL.Query().Get("sort") == "rating"
	ascending := r.URL.Query().Get("order") == "asc"

	writeJSON(w, http.StatusOK, map[string]any{
		"movies": h.movies.List(sortByRating, ascending),
	})
}
