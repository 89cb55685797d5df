package repository

import (
	"context"

	"github.com/Clark-Hu/movie-catalog/internal/domain"
	"github.com/Clark-Hu/movie-catalog/internal/store"
)

// RatingsRepository provides helpers for movie ratings.
type RatingsRepository struct {
	store *store.Store
}

// RatingUpdateParams captures the payload required to replace a rating.
type RatingUpdateParams struct {
	MovieID int
	Value   float64
}

// Update overwrites a movie's rating and returns the updated movie. Other
// fields are left untouched.
func (r *RatingsRepository) Update(ctx context.Context, params RatingUpdateParams) (domain.Movie, error) {
	if err := ctx.Err(); err != nil {
		return domain.Movie{}, err
	}
	rating := domain.FormatRating(params.Value)
	var updated domain.Movie
	err := r.store.Update(func(movies *[]domain.Movie) error {
		i := indexOf(*movies, params.MovieID)
		if i < 0 {
			return ErrNotFound
		}
		(*movies)[i].Rating = &rating
		updated = (*movies)[i].Clone()
		return nil
	})
	if err != nil {
		return domain.Movie{}, err
	}
	return updated, nil
}

// Get returns a movie's formatted rating, or nil when it has none.
func (r *RatingsRepository) Get(ctx context.Context, movieID int) (*string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var (
		rating *string
		found  bool
	)
	r.store.View(func(movies []domain.Movie) {
		if i := indexOf(movies, movieID); i >= 0 {
			found = true
			if movies[i].Rating != nil {
				value := *movies[i].Rating
				rating = &value
			}
		}
	})
	if !found {
		return nil, ErrNotFound
	}
	return rating, nil
}
