package httpserver

import (
	"net/http/httptest"
	"testing"
)

func TestBuildMovieParams(t *testing.T) {
	params, ok := buildMovieParams(movieForm{
		Title:       " Inception ",
		Genre:       "Sci-Fi",
		ReleaseYear: "2010.9",
		Rating:      "8.75",
	})
	if !ok {
		t.Fatalf("buildMovieParams rejected valid form")
	}
	if params.Title != "Inception" {
		t.Fatalf("title not trimmed: %q", params.Title)
	}
	if params.ReleaseYear != 2010 {
		t.Fatalf("ReleaseYear = %d, want 2010", params.ReleaseYear)
	}
	if params.Rating != 8.75 {
		t.Fatalf("Rating = %v, want 8.75", params.Rating)
	}
}

func TestBuildMovieParams_Invalid(t *testing.T) {
	forms := []movieForm{
		{},
		{Title: "A", Genre: "B", ReleaseYear: "2001"},
		{Title: "A", Genre: "B", Rating: "5"},
		{Title: "A", Genre: "B", ReleaseYear: "year", Rating: "5"},
		{Title: "A", Genre: "B", ReleaseYear: "2001", Rating: "five"},
		{Title: "", Genre: "B", ReleaseYear: "2001", Rating: "5"},
	}
	for _, form := range forms {
		if _, ok := buildMovieParams(form); ok {
			t.Fatalf("buildMovieParams(%+v) accepted invalid form", form)
		}
	}
}

func TestDecodeIDParam(t *testing.T) {
	cases := []struct {
		raw  string
		id   int
		want bool
	}{
		{"1", 1, true},
		{"42", 42, true},
		{"2abc", 2, true},
		{"-3", -3, true},
		{"abc", 0, false},
		{"", 0, false},
		{"99999999999999999999999", 0, false},
	}
	for _, c := range cases {
		req := attachIDParam(httptest.NewRequest("GET", "/movies", nil), c.raw)
		id, ok := decodeIDParam(req)
		if ok != c.want || id != c.id {
			t.Fatalf("decodeIDParam(%q) = (%d, %v), want (%d, %v)", c.raw, id, ok, c.id, c.want)
		}
	}
}
