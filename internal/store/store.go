package store

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/Clark-Hu/movie-catalog/internal/domain"
)

// Options controls store behaviour.
type Options struct {
	Logger *log.Logger
}

// Store owns the process-wide movie collection. The slice order is the
// insertion order and every access goes through the mutex.
type Store struct {
	mu     sync.RWMutex
	movies []domain.Movie
	logger *log.Logger
	opts   Options
}

// Stat reports collection size for observability.
type Stat struct {
	Movies int `json:"movies"`
	LastID int `json:"lastId"`
}

// New returns an empty store.
func New(opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr)
	}
	return &Store{logger: logger, opts: opts}
}

// Seed replaces the collection with a copy of movies.
func (s *Store) Seed(movies []domain.Movie) {
	seeded := make([]domain.Movie, 0, len(movies))
	for _, movie := range movies {
		seeded = append(seeded, movie.Clone())
	}

	s.mu.Lock()
	s.movies = seeded
	s.mu.Unlock()

	s.logger.Info("store: collection seeded", "movies", len(seeded))
}

// View runs fn with read access to the collection. fn must not retain or
// modify the slice.
func (s *Store) View(fn func(movies []domain.Movie)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.movies)
}

// Update runs fn with exclusive access to the collection. Changes made
// through the pointer become visible once fn returns.
func (s *Store) Update(fn func(movies *[]domain.Movie) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.movies)
}

// Len returns the number of stored movies.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.movies)
}

// HealthCheck reports whether the store is usable.
func (s *Store) HealthCheck(ctx context.Context) error {
	if s == nil {
		return fmt.Errorf("store not initialized")
	}
	return ctx.Err()
}

// Stats exposes collection statistics for the metrics endpoint.
func (s *Store) Stats() Stat {
	if s == nil {
		return Stat{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	stat := Stat{Movies: len(s.movies)}
	if n := len(s.movies); n > 0 {
		stat.LastID = s.movies[n-1].ID
	}
	return stat
}
