package store

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/Clark-Hu/movie-catalog/internal/domain"
)

//go:embed seeds.toml
var defaultSeeds []byte

type seedFile struct {
	Movies []seedMovie `toml:"movies"`
}

type seedMovie struct {
	ID          int     `toml:"id"`
	Title       string  `toml:"title"`
	Genre       string  `toml:"genre"`
	ReleaseYear int     `toml:"release_year"`
	Rating      *string `toml:"rating"`
}

// DefaultSeeds returns the catalog's built-in starting records.
func DefaultSeeds() []domain.Movie {
	movies, err := ParseSeeds(defaultSeeds)
	if err != nil {
		panic(fmt.Sprintf("failed to parse embedded seeds: %v", err))
	}
	return movies
}

// LoadSeeds reads seed records from a TOML file. An empty path yields the
// built-in seeds.
func LoadSeeds(path string) ([]domain.Movie, error) {
	if path == "" {
		return DefaultSeeds(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeeds(data)
}

// ParseSeeds decodes a TOML seed document and validates its records.
func ParseSeeds(data []byte) ([]domain.Movie, error) {
	var file seedFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse seeds: %w", err)
	}

	seen := make(map[int]struct{}, len(file.Movies))
	movies := make([]domain.Movie, 0, len(file.Movies))
	for i, entry := range file.Movies {
		if entry.ID <= 0 {
			return nil, fmt.Errorf("seed %d: id must be positive", i)
		}
		if _, dup := seen[entry.ID]; dup {
			return nil, fmt.Errorf("seed %d: duplicate id %d", i, entry.ID)
		}
		seen[entry.ID] = struct{}{}

		title := strings.TrimSpace(entry.Title)
		genre := strings.TrimSpace(entry.Genre)
		if title == "" || genre == "" {
			return nil, fmt.Errorf("seed %d: title and genre are required", i)
		}

		movie := domain.Movie{
			ID:          entry.ID,
			Title:       title,
			Genre:       genre,
			ReleaseYear: entry.ReleaseYear,
		}
		if entry.Rating != nil {
			rating, err := domain.NormalizeRating(*entry.Rating)
			if err != nil {
				return nil, fmt.Errorf("seed %d: invalid rating %q", i, *entry.Rating)
			}
			movie.Rating = &rating
		}
		movies = append(movies, movie)
	}
	return movies, nil
}
