package viewmodel

// HomeEvent is an intent sent by the home screen.
type HomeEvent interface {
	homeEvent()
}

// HomeRefresh re-fetches the random joke and the categories.
type HomeRefresh struct{}

// HomeSelectCategory navigates to a category.
type HomeSelectCategory struct {
	Name string
}

// HomeSearchTextChanged filters the category list.
type HomeSearchTextChanged struct {
	Text string
}

func (HomeRefresh) homeEvent()           {}
func (HomeSelectCategory) homeEvent()    {}
func (HomeSearchTextChanged) homeEvent() {}

// CategoryEvent is an intent sent by the category screen.
type CategoryEvent interface {
	categoryEvent()
}

// CategoryRefresh re-fetches the category's jokes.
type CategoryRefresh struct{}

func (CategoryRefresh) categoryEvent() {}
