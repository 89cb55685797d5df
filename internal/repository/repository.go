package repository

import (
	"errors"

	"github.com/Clark-Hu/movie-catalog/internal/domain"
	"github.com/Clark-Hu/movie-catalog/internal/store"
)

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("repository: not found")

// Repository aggregates all domain-specific repositories.
type Repository struct {
	Movies  *MoviesRepository
	Ratings *RatingsRepository
}

// New constructs a Repository backed by the provided store.
func New(st *store.Store) *Repository {
	return &Repository{
		Movies:  &MoviesRepository{store: st},
		Ratings: &RatingsRepository{store: st},
	}
}

// indexOf returns the position of id in movies, or -1.
func indexOf(movies []domain.Movie, id int) int {
	for i := range movies {
		if movies[i].ID == id {
			return i
		}
	}
	return -1
}
