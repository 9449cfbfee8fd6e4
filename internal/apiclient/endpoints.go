package apiclient

import (
	"net/url"
	"strings"

	"github.com/tinytelemetry/chuckle/internal/model"
)

// Endpoints builds request URLs against a joke API base URL.
type Endpoints struct {
	BaseURL string
}

// NewEndpoints returns Endpoints for baseURL, falling back to the public API.
func NewEndpoints(baseURL string) Endpoints {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = model.DefaultBaseURL
	}
	return Endpoints{BaseURL: baseURL}
}

// RandomJoke is the URL of a random joke from any category.
func (e Endpoints) RandomJoke() string {
	return e.BaseURL + "/jokes/random"
}

// RandomJokeInCategory is the URL of a random joke scoped to one category.
func (e Endpoints) RandomJokeInCategory(name string) string {
	return e.BaseURL + "/jokes/random?category=" + url.QueryEscape(name)
}

// Categories is the URL of the list of all category names.
func (e Endpoints) Categories() string {
	return e.BaseURL + "/jokes/categories"
}
