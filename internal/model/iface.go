package model

// Pusher appends a route to the navigation path.
type Pusher interface {
	Push(route Route)
}
