package state

import (
	"slices"

	"github.com/tinytelemetry/chuckle/internal/model"
)

// CategoryState drives the category screen: a short list of jokes from one
// category.
//
// Two equivalent ways of producing the next state are offered. The method
// style (HandleLoading, HandleJokesResult) names each transition directly;
// ReduceCategory is the effect style used by the store. Both must agree.
type CategoryState struct {
	categoryName    string
	isLoading       bool
	jokes           []string
	errorMessage    string
	refreshDisabled bool
}

// NewCategoryState returns the initial state for name: loading, no jokes.
func NewCategoryState(name string) CategoryState {
	return CategoryState{
		categoryName:    name,
		isLoading:       true,
		jokes:           []string{},
		refreshDisabled: true,
	}
}

func (s CategoryState) CategoryName() string  { return s.categoryName }
func (s CategoryState) IsLoading() bool       { return s.isLoading }
func (s CategoryState) Jokes() []string       { return slices.Clone(s.jokes) }
func (s CategoryState) ErrorMessage() string  { return s.errorMessage }
func (s CategoryState) RefreshDisabled() bool { return s.refreshDisabled }

// HandleLoading returns the loading state.
func (s CategoryState) HandleLoading() CategoryState {
	s.isLoading = true
	s.jokes = []string{}
	s.errorMessage = ""
	s.refreshDisabled = true
	return s
}

// HandleJokesResult returns the settled state for a fetch cycle. On failure
// the jokes already shown are kept.
func (s CategoryState) HandleJokesResult(jokes []model.Joke, err error) CategoryState {
	s.isLoading = false
	s.refreshDisabled = false
	if err != nil {
		s.errorMessage = err.Error()
		return s
	}
	texts := make([]string, 0, len(jokes))
	for _, j := range jokes {
		texts = append(texts, j.Value)
	}
	s.jokes = texts
	s.errorMessage = ""
	return s
}

// CategoryEffect describes why CategoryState should change.
type CategoryEffect interface {
	categoryEffect()
}

// CategoryLoading marks the start of a fetch cycle.
type CategoryLoading struct{}

// CategoryJokesResult settles a fetch cycle.
type CategoryJokesResult struct {
	Jokes []model.Joke
	Err   error
}

func (CategoryLoading) categoryEffect()     {}
func (CategoryJokesResult) categoryEffect() {}

// ReduceCategory returns the state that follows s after effect.
func ReduceCategory(s CategoryState, effect CategoryEffect) CategoryState {
	switch e := effect.(type) {
	case CategoryLoading:
		s.isLoading = true
		s.jokes = []string{}
		s.errorMessage = ""
		s.refreshDisabled = true

	case CategoryJokesResult:
		s.isLoading = false
		s.refreshDisabled = false
		if e.Err != nil {
			s.errorMessage = e.Err.Error()
			break
		}
		s.jokes = make([]string, len(e.Jokes))
		for i, j := range e.Jokes {
			s.jokes[i] = j.Value
		}
		s.errorMessage = ""
	}
	return s
}
