// Package state holds the immutable view states and their pure reducers.
//
// State fields are unexported and only change through a reducer, so a
// snapshot handed to a subscriber can never be modified behind its back.
package state

import (
	"slices"

	"github.com/tinytelemetry/chuckle/internal/model"
)

// HomeState drives the home screen: one random joke plus the filterable
// category list.
type HomeState struct {
	randomJoke         *model.Joke
	randomJokeError    string
	allCategories      []string
	filteredCategories []string
	categoriesError    string
	refreshDisabled    bool
}

// NewHomeState returns the initial state: nothing loaded, refresh disabled.
func NewHomeState() HomeState {
	return HomeState{refreshDisabled: true}
}

// RandomJoke returns the loaded joke, if any.
func (s HomeState) RandomJoke() (model.Joke, bool) {
	if s.randomJoke == nil {
		return model.Joke{}, false
	}
	return *s.randomJoke, true
}

// RandomJokeText is the loaded joke's text, or "" when none is loaded.
func (s HomeState) RandomJokeText() string {
	if s.randomJoke == nil {
		return ""
	}
	return s.randomJoke.Value
}

func (s HomeState) RandomJokeError() string { return s.randomJokeError }
func (s HomeState) AllCategories() []string { return slices.Clone(s.allCategories) }
func (s HomeState) CategoriesError() string { return s.categoriesError }
func (s HomeState) RefreshDisabled() bool   { return s.refreshDisabled }

// FilteredCategories is nil until the first categories result arrives.
func (s HomeState) FilteredCategories() []string { return slices.Clone(s.filteredCategories) }

// HomeEffect describes why HomeState should change.
type HomeEffect interface {
	homeEffect()
}

// LoadingRandomJoke marks the start of a fetch cycle.
type LoadingRandomJoke struct{}

// RandomJokeResult settles the random joke fetch.
type RandomJokeResult struct {
	Joke model.Joke
	Err  error
}

// CategoriesResult settles the categories fetch.
type CategoriesResult struct {
	Categories []string
	Err        error
}

// FilterCategories narrows the visible categories to those matching Text.
type FilterCategories struct {
	Text string
}

func (LoadingRandomJoke) homeEffect() {}
func (RandomJokeResult) homeEffect()  {}
func (CategoriesResult) homeEffect()  {}
func (FilterCategories) homeEffect()  {}

// ReduceHome returns the state that follows s after effect.
func ReduceHome(s HomeState, effect HomeEffect) HomeState {
	switch e := effect.(type) {
	case LoadingRandomJoke:
		s.refreshDisabled = true
		s.randomJoke = nil
		s.randomJokeError = ""

	case RandomJokeResult:
		s.refreshDisabled = false
		if e.Err != nil {
			s.randomJoke = nil
			s.randomJokeError = e.Err.Error()
		} else {
			joke := e.Joke
			s.randomJoke = &joke
			s.randomJokeError = ""
		}

	case CategoriesResult:
		if e.Err != nil {
			s.allCategories = []string{}
			s.filteredCategories = []string{}
			s.categoriesError = e.Err.Error()
		} else {
			s.allCategories = uniqueInOrder(e.Categories)
			s.filteredCategories = append([]string{}, s.allCategories...)
			s.categoriesError = ""
		}

	case FilterCategories:
		s.filteredCategories = filterCategories(s.allCategories, e.Text)
	}
	return s
}
