package domain

import (
	"errors"
	"math"
	"testing"
)

func TestFormatRating(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{"integer", 8, "8.0"},
		{"one digit", 8.8, "8.8"},
		{"round-down", 9.04, "9.0"},
		{"round-up", 7.26, "7.3"},
		{"tie quarter", 7.25, "7.3"},
		{"tie three quarters", 6.75, "6.8"},
		{"negative tie", -0.25, "-0.3"},
		{"negative zero", math.Copysign(0, -1), "0.0"},
		{"small negative", -0.04, "-0.0"},
		{"inexact half", 8.05, "8.1"},
		{"infinity", math.Inf(1), "Infinity"},
		{"negative infinity", math.Inf(-1), "-Infinity"},
		{"huge", 1e21, "1e+21"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRating(tt.value); got != tt.want {
				t.Fatalf("FormatRating(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestParseNumber(t *testing.T) {
	valid := map[string]float64{
		"8":         8,
		" 8.5 ":     8.5,
		".5":        0.5,
		"5.":        5,
		"-3":        -3,
		"+2.25":     2.25,
		"1e3":       1000,
		"Infinity":  math.Inf(1),
		"-Infinity": math.Inf(-1),
		"1e400":     math.Inf(1),
	}
	for raw, want := range valid {
		got, err := ParseNumber(raw)
		if err != nil {
			t.Fatalf("ParseNumber(%q) unexpected error: %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseNumber(%q) = %v, want %v", raw, got, want)
		}
	}

	invalid := []string{"", "   ", "abc", "8a", "NaN", "inf", "0x1A", "1_000", "1.2.3", "."}
	for _, raw := range invalid {
		if _, err := ParseNumber(raw); !errors.Is(err, ErrNotNumeric) {
			t.Fatalf("ParseNumber(%q) error = %v, want ErrNotNumeric", raw, err)
		}
	}
}

func TestParseReleaseYear(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"2010", 2010, false},
		{" 1972 ", 1972, false},
		{"2010.7", 2010, false},
		{"1e3", 1, false},
		{"-5", -5, false},
		{"abc", 0, true},
		{"", 0, true},
		{".5", 0, true},
		{"Infinity", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseReleaseYear(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("ParseReleaseYear(%q) expected error, got %d", tt.raw, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseReleaseYear(%q) unexpected error: %v", tt.raw, err)
		}
		if got != tt.want {
			t.Fatalf("ParseReleaseYear(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeRating(t *testing.T) {
	got, err := NormalizeRating("8")
	if err != nil {
		t.Fatalf("NormalizeRating unexpected error: %v", err)
	}
	if got != "8.0" {
		t.Fatalf("NormalizeRating(\"8\") = %q, want 8.0", got)
	}
	if _, err := NormalizeRating("great"); err == nil {
		t.Fatalf("expected error for non-numeric rating")
	}
}

func TestMovieTextFallbacks(t *testing.T) {
	var movie Movie
	if movie.RatingText() != "N/A" {
		t.Fatalf("RatingText() = %q, want N/A", movie.RatingText())
	}
	if movie.CommentText() != "No comments yet" {
		t.Fatalf("CommentText() = %q, want placeholder", movie.CommentText())
	}

	rating := "9.2"
	movie.Rating = &rating
	clone := movie.Clone()
	*clone.Rating = "1.0"
	if *movie.Rating != "9.2" {
		t.Fatalf("Clone shares rating pointer with original")
	}
}
