package httpserver

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/Clark-Hu/movie-catalog/internal/domain"
	"github.com/Clark-Hu/movie-catalog/internal/trending"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageMovies       = "movies.html"
	pageTrending     = "trending.html"
	pageAddMovie     = "add_movie.html"
	pageUpdateRating = "update_rating.html"
	pageError        = "error.html"
)

var pages = []string{pageMovies, pageTrending, pageAddMovie, pageUpdateRating, pageError}

// layoutData wraps page content in the shared shell.
type layoutData struct {
	ShowNav bool
	Content interface{}
}

type moviesPage struct {
	Movies []domain.Movie
}

type moviePage struct {
	Movie    domain.Movie
	Trending *trending.Result
}

type errorPage struct {
	Title   string
	Message string
}

var (
	errPageNotFound = errorPage{
		Title:   "Movie Not Found",
		Message: "No movie with the specified ID exists.",
	}
	errPageInvalidInput = errorPage{
		Title:   "Invalid Input",
		Message: "All fields are required. Please provide valid input.",
	}
	errPageInvalidRating = errorPage{
		Title:   "Invalid Rating",
		Message: "Please enter a valid numeric rating.",
	}
	errPageTooManyRequests = errorPage{
		Title:   "Too Many Requests",
		Message: "Rate limit exceeded. Please slow down and try again.",
	}
	errPageInternal = errorPage{
		Title:   "Something Went Wrong",
		Message: "The server encountered a problem and could not process your request.",
	}
)

// parseTemplates builds one template set per page, each sharing the layout.
func parseTemplates() (map[string]*template.Template, error) {
	out := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		out[page] = tmpl
	}
	return out, nil
}

func (s *Server) render(w http.ResponseWriter, status int, page string, content interface{}) {
	tmpl, ok := s.templates[page]
	if !ok {
		s.logger.Error("render: unknown page", "page", page)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", layoutData{ShowNav: true, Content: content}); err != nil {
		s.logger.Error("render: execute template", "page", page, "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Debug("render: write response", "err", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, page errorPage) {
	s.render(w, status, pageError, page)
}
