package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Clark-Hu/movie-catalog/internal/domain"
	"github.com/Clark-Hu/movie-catalog/internal/store"
)

// MoviesRepository provides catalog operations over the in-memory store.
type MoviesRepository struct {
	store *store.Store
}

// MovieCreateParams bundles the fields required to create a movie.
type MovieCreateParams struct {
	Title       string
	Genre       string
	ReleaseYear int
	Rating      float64
}

// Create appends a new movie and returns the stored entity.
//
// The id is the last record's id plus one (1 for an empty catalog), not the
// maximum id in the catalog. Deleting the last record and adding a new one
// therefore reuses its id.
func (r *MoviesRepository) Create(ctx context.Context, params MovieCreateParams) (domain.Movie, error) {
	if err := ctx.Err(); err != nil {
		return domain.Movie{}, err
	}
	title := strings.TrimSpace(params.Title)
	genre := strings.TrimSpace(params.Genre)
	if title == "" || genre == "" {
		return domain.Movie{}, fmt.Errorf("title and genre are required")
	}

	rating := domain.FormatRating(params.Rating)
	var created domain.Movie
	err := r.store.Update(func(movies *[]domain.Movie) error {
		id := 1
		if n := len(*movies); n > 0 {
			id = (*movies)[n-1].ID + 1
		}
		created = domain.Movie{
			ID:          id,
			Title:       title,
			Genre:       genre,
			ReleaseYear: params.ReleaseYear,
			Rating:      &rating,
		}
		*movies = append(*movies, created)
		return nil
	})
	if err != nil {
		return domain.Movie{}, err
	}
	return created.Clone(), nil
}

// List returns every movie in insertion order.
func (r *MoviesRepository) List(ctx context.Context) ([]domain.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var items []domain.Movie
	r.store.View(func(movies []domain.Movie) {
		items = make([]domain.Movie, 0, len(movies))
		for _, movie := range movies {
			items = append(items, movie.Clone())
		}
	})
	return items, nil
}

// GetByID fetches a movie by its identifier.
func (r *MoviesRepository) GetByID(ctx context.Context, id int) (domain.Movie, error) {
	if err := ctx.Err(); err != nil {
		return domain.Movie{}, err
	}
	var (
		movie domain.Movie
		found bool
	)
	r.store.View(func(movies []domain.Movie) {
		if i := indexOf(movies, id); i >= 0 {
			movie = movies[i].Clone()
			found = true
		}
	})
	if !found {
		return domain.Movie{}, ErrNotFound
	}
	return movie, nil
}

// Delete removes the movie with the given id, keeping the order of the rest.
func (r *MoviesRepository) Delete(ctx context.Context, id int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.store.Update(func(movies *[]domain.Movie) error {
		i := indexOf(*movies, id)
		if i < 0 {
			return ErrNotFound
		}
		remaining := make([]domain.Movie, 0, len(*movies)-1)
		remaining = append(remaining, (*movies)[:i]...)
		remaining = append(remaining, (*movies)[i+1:]...)
		*movies = remaining
		return nil
	})
}
