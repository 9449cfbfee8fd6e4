// Package router holds the process-wide navigation path.
package router

import (
	"sync"

	"github.com/tinytelemetry/chuckle/internal/model"
)

// Router is an ordered navigation path. View models push onto it; the
// presentation layer observes it and truncates it when the user goes back.
type Router struct {
	mu   sync.Mutex
	path []model.Route
	subs []chan struct{}
}

// New returns an empty Router.
func New() *Router {
	return &Router{}
}

// Push appends route to the path.
func (r *Router) Push(route model.Route) {
	r.mu.Lock()
	r.path = append(r.path, route)
	r.notifyLocked()
	r.mu.Unlock()
}

// Truncate shortens the path to n entries. Larger n is a no-op.
func (r *Router) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if n >= len(r.path) {
		return
	}
	r.path = r.path[:n:n]
	r.notifyLocked()
}

// Path returns a copy of the current path.
func (r *Router) Path() []model.Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Route, len(r.path))
	copy(out, r.path)
	return out
}

// Top returns the last route, if any.
func (r *Router) Top() (model.Route, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.path) == 0 {
		return model.Route{}, false
	}
	return r.path[len(r.path)-1], true
}

// Changes returns a channel signalled (coalesced) after every path change.
func (r *Router) Changes() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	ch := make(chan struct{}, 1)
	r.subs = append(r.subs, ch)
	return ch
}

func (r *Router) notifyLocked() {
	for _, ch := range r.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
