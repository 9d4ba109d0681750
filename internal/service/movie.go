package service

import (
	_ "embed"
	"encoding/json"
	"log/slog"
	"sort"

	"github.com/accountdemo/accountdemo/internal/domain"
)

//go:embed movies.json
var moviesJSON []byte

// MovieService serves the bundled demo movie catalog. The dataset is static
// and read-only; sorting happens on a copy.
type MovieService struct {
	movies []domain.Movie
}

// NewMovieService decodes the embedded catalog. A malformed dataset degrades
// to an empty catalog rather than failing startup.
func NewMovieService() *MovieService {
	var movies []domain.Movie
	if err := json.Unmarshal(moviesJSON, &movies); err != nil {
		slog.Error("decode movie catalog", "error", err)
		movies = nil
	}
	return &MovieService{movies: movies}
}

// List returns a copy of the catalog, optionally sorted by rating. The sort
// is stable, so equal ratings keep their catalog order.
func (s *MovieService) List(sortByRating, ascending bool) []domain.Movie {
	out := make([]domain.Movie, len(s.movies))
	copy(out, s.movies)
	if !sortByRating {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		if ascending {
			return out[i].Rating < out[j].Rating
		}
		return out[i].Rating > out[j].Rating
	})
	return out
}
