package httpserver

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Clark-Hu/movie-catalog/internal/domain"
	"github.com/Clark-Hu/movie-catalog/internal/repository"
	"github.com/Clark-Hu/movie-catalog/internal/trending"
)

const maxRequestBody = 1 << 20 // 1 MiB

var leadingIDPattern = regexp.MustCompile(`^[+-]?\d+`)

// movieForm holds the raw fields of the add-movie form.
type movieForm struct {
	Title       string
	Genre       string
	ReleaseYear string
	Rating      string
}

func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := s.repo.Movies.List(r.Context())
	if err != nil {
		s.logger.Error("list movies", "err", err)
		s.respondError(w, http.StatusInternalServerError, errPageInternal)
		return
	}
	s.render(w, http.StatusOK, pageMovies, moviesPage{Movies: movies})
}

func (s *Server) handleTrendingRating(w http.ResponseWriter, r *http.Request) {
	movie, ok := s.lookupMovie(w, r)
	if !ok {
		return
	}
	page := moviePage{Movie: movie}
	page.Trending = s.fetchTrending(r.Context(), movie.Title)
	s.render(w, http.StatusOK, pageTrending, page)
}

// fetchTrending asks the upstream service for a trending rating. Failures
// are logged and yield nil.
func (s *Server) fetchTrending(ctx context.Context, title string) *trending.Result {
	if s.trending == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.TrendingTimeoutSecs)*time.Second)
	defer cancel()

	result, err := s.trending.Fetch(ctx, title)
	if err != nil {
		if !errors.Is(err, trending.ErrNotFound) {
			s.logger.Warn("trending fetch failed", "title", title, "err", err)
		}
		return nil
	}
	return result
}

func (s *Server) handleDeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := decodeIDParam(r)
	if !ok {
		s.respondError(w, http.StatusNotFound, errPageNotFound)
		return
	}

	if err := s.repo.Movies.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, errPageNotFound)
			return
		}
		s.logger.Error("delete movie", "id", id, "err", err)
		s.respondError(w, http.StatusInternalServerError, errPageInternal)
		return
	}
	http.Redirect(w, r, "/movies", http.StatusFound)
}

func (s *Server) handleAddMovieForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, pageAddMovie, nil)
}

func (s *Server) handleCreateMovie(w http.ResponseWriter, r *http.Request) {
	if err := parseFormBody(w, r); err != nil {
		s.respondError(w, http.StatusBadRequest, errPageInvalidInput)
		return
	}

	form := movieForm{
		Title:       r.PostForm.Get("title"),
		Genre:       r.PostForm.Get("genre"),
		ReleaseYear: r.PostForm.Get("releaseYear"),
		Rating:      r.PostForm.Get("rating"),
	}
	params, ok := buildMovieParams(form)
	if !ok {
		s.respondError(w, http.StatusBadRequest, errPageInvalidInput)
		return
	}

	movie, err := s.repo.Movies.Create(r.Context(), params)
	if err != nil {
		s.logger.Error("create movie", "err", err)
		s.respondError(w, http.StatusInternalServerError, errPageInternal)
		return
	}
	s.logger.Debug("movie created", "id", movie.ID, "title", movie.Title)
	http.Redirect(w, r, "/movies", http.StatusFound)
}

// buildMovieParams validates the add-movie form. Every field is required and
// releaseYear and rating must be numeric.
func buildMovieParams(form movieForm) (repository.MovieCreateParams, bool) {
	var params repository.MovieCreateParams

	title := strings.TrimSpace(form.Title)
	genre := strings.TrimSpace(form.Genre)
	if title == "" || genre == "" {
		return params, false
	}
	year, err := domain.ParseReleaseYear(form.ReleaseYear)
	if err != nil {
		return params, false
	}
	rating, err := domain.ParseNumber(form.Rating)
	if err != nil {
		return params, false
	}

	params.Title = title
	params.Genre = genre
	params.ReleaseYear = year
	params.Rating = rating
	return params, true
}

func (s *Server) handleUpdateRatingForm(w http.ResponseWriter, r *http.Request) {
	movie, ok := s.lookupMovie(w, r)
	if !ok {
		return
	}
	s.render(w, http.StatusOK, pageUpdateRating, moviePage{Movie: movie})
}

func (s *Server) handleUpdateRating(w http.ResponseWriter, r *http.Request) {
	movie, ok := s.lookupMovie(w, r)
	if !ok {
		return
	}

	if err := parseFormBody(w, r); err != nil {
		s.respondError(w, http.StatusBadRequest, errPageInvalidRating)
		return
	}
	value, err := domain.ParseNumber(r.PostForm.Get("newRating"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, errPageInvalidRating)
		return
	}

	if _, err := s.repo.Ratings.Update(r.Context(), repository.RatingUpdateParams{
		MovieID: movie.ID,
		Value:   value,
	}); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Deleted between lookup and update.
			s.respondError(w, http.StatusNotFound, errPageNotFound)
			return
		}
		s.logger.Error("update rating", "id", movie.ID, "err", err)
		s.respondError(w, http.StatusInternalServerError, errPageInternal)
		return
	}
	http.Redirect(w, r, "/movies", http.StatusFound)
}

// lookupMovie resolves the {id} parameter and writes the not-found page when
// there is no such movie.
func (s *Server) lookupMovie(w http.ResponseWriter, r *http.Request) (domain.Movie, bool) {
	id, ok := decodeIDParam(r)
	if !ok {
		s.respondError(w, http.StatusNotFound, errPageNotFound)
		return domain.Movie{}, false
	}

	movie, err := s.repo.Movies.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, errPageNotFound)
			return domain.Movie{}, false
		}
		s.logger.Error("fetch movie", "id", id, "err", err)
		s.respondError(w, http.StatusInternalServerError, errPageInternal)
		return domain.Movie{}, false
	}
	return movie, true
}

// decodeIDParam reads the leading integer of the {id} path segment, so
// "2abc" resolves to 2 and "abc" does not resolve at all.
func decodeIDParam(r *http.Request) (int, bool) {
	raw := strings.TrimSpace(chi.URLParam(r, "id"))
	digits := leadingIDPattern.FindString(raw)
	if digits == "" {
		return 0, false
	}
	id, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return id, true
}

func parseFormBody(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	defer r.Body.Close()
	return r.ParseForm()
}
