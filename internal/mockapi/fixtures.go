package mockapi

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/tinytelemetry/chuckle/internal/model"
)

//go:embed defaults.yml
var defaultFixtures []byte

// Fixtures is the joke catalogue served by the mock API.
type Fixtures struct {
	jokes      []model.Joke
	categories []string
}

type fixtureFile struct {
	BaseURL    string        `yaml:"base_url"`
	Categories []string      `yaml:"categories"`
	Jokes      []fixtureJoke `yaml:"jokes"`
}

type fixtureJoke struct {
	ID         string   `yaml:"id"`
	Value      string   `yaml:"value"`
	IconURL    string   `yaml:"icon_url"`
	Categories []string `yaml:"categories"`
	CreatedAt  string   `yaml:"created_at"`
}

// DefaultFixtures returns the built-in catalogue.
func DefaultFixtures() (*Fixtures, error) {
	return ParseFixtures(defaultFixtures)
}

// LoadFixtures reads a YAML catalogue from path. An empty path selects the
// built-in catalogue.
func LoadFixtures(path string) (*Fixtures, error) {
	if path == "" {
		return DefaultFixtures()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mockapi: read fixtures: %w", err)
	}
	f, err := ParseFixtures(data)
	if err != nil {
		return nil, fmt.Errorf("mockapi: %s: %w", path, err)
	}
	return f, nil
}

// ParseFixtures decodes a YAML catalogue. When the document lists no
// categories, the categories are collected from the jokes.
func ParseFixtures(data []byte) (*Fixtures, error) {
	var file fixtureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	if len(file.Jokes) == 0 {
		return nil, errors.New("fixtures contain no jokes")
	}

	base := file.BaseURL
	if base == "" {
		base = model.DefaultBaseURL
	}

	f := &Fixtures{jokes: make([]model.Joke, 0, len(file.Jokes))}
	seen := make(map[string]bool, len(file.Jokes))
	for i, fj := range file.Jokes {
		if fj.ID == "" || fj.Value == "" {
			return nil, fmt.Errorf("joke %d: id and value are required", i)
		}
		if seen[fj.ID] {
			return nil, fmt.Errorf("joke %d: duplicate id %q", i, fj.ID)
		}
		seen[fj.ID] = true
		f.jokes = append(f.jokes, fj.toJoke(base))
	}

	if len(file.Categories) > 0 {
		f.categories = slices.Clone(file.Categories)
	} else {
		set := make(map[string]struct{})
		for _, j := range f.jokes {
			for _, c := range j.Categories {
				set[c] = struct{}{}
			}
		}
		for c := range set {
			f.categories = append(f.categories, c)
		}
		sort.Strings(f.categories)
	}
	return f, nil
}

func (fj fixtureJoke) toJoke(base string) model.Joke {
	j := model.Joke{
		ID:         fj.ID,
		URL:        base + "/jokes/" + fj.ID,
		Value:      fj.Value,
		Categories: slices.Clone(fj.Categories),
		CreatedAt:  fj.CreatedAt,
		UpdatedAt:  fj.CreatedAt,
	}
	if fj.IconURL != "" {
		icon := fj.IconURL
		j.IconURL = &icon
	}
	return j
}

// Categories returns the category names in catalogue order.
func (f *Fixtures) Categories() []string {
	return slices.Clone(f.categories)
}

// HasCategory reports whether name is a known category.
func (f *Fixtures) HasCategory(name string) bool {
	return slices.Contains(f.categories, name)
}

// Jokes returns the jokes tagged with category, or every joke when category
// is empty.
func (f *Fixtures) Jokes(category string) []model.Joke {
	if category == "" {
		return slices.Clone(f.jokes)
	}
	var out []model.Joke
	for _, j := range f.jokes {
		if slices.Contains(j.Categories, category) {
			out = append(out, j)
		}
	}
	return out
}

// Len is the number of jokes in the catalogue.
func (f *Fixtures) Len() int { return len(f.jokes) }
