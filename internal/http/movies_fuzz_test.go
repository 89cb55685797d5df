package httpserver

import (
	"strings"
	"testing"
)

func FuzzBuildMovieParams(f *testing.F) {
	seeds := [][4]string{
		{"Inception", "Sci-Fi", "2010", "8.8"},
		{"", "Drama", "abc", "1"},
		{"X", "Y", "1e3", "Infinity"},
		{" ", " ", " ", " "},
	}
	for _, seed := range seeds {
		f.Add(seed[0], seed[1], seed[2], seed[3])
	}

	f.Fuzz(func(t *testing.T, title, genre, year, rating string) {
		params, ok := buildMovieParams(movieForm{Title: title, Genre: genre, ReleaseYear: year, Rating: rating})
		if !ok {
			return
		}
		if strings.TrimSpace(params.Title) == "" || strings.TrimSpace(params.Genre) == "" {
			t.Fatalf("accepted blank title or genre: %+v", params)
		}
	})
}
