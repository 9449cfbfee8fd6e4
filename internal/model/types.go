package model

// Joke is a single entry returned by the joke API.
// It is the canonical item type for transport, state and display.
type Joke struct {
	ID         string   `json:"id"`
	URL        string   `json:"url"`
	Value      string   `json:"value"`
	IconURL    *string  `json:"icon_url"`
	Categories []string `json:"categories,omitempty"`
	CreatedAt  string   `json:"created_at,omitempty"`
	UpdatedAt  string   `json:"updated_at,omitempty"`
}

// RouteKind identifies a navigation destination.
type RouteKind int

const (
	RouteCategory RouteKind = iota + 1 // jokes for one category
)

func (k RouteKind) String() string {
	switch k {
	case RouteCategory:
		return "category"
	default:
		return "unknown"
	}
}

// Route is one entry of the navigation path.
type Route struct {
	Kind RouteKind
	Name string // category name for RouteCategory
}

// CategoryRoute returns the route for the given category.
func CategoryRoute(name string) Route {
	return Route{Kind: RouteCategory, Name: name}
}
