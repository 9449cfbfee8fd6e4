package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinytelemetry/chuckle/internal/model"
	"github.com/tinytelemetry/chuckle/internal/state"
	"github.com/tinytelemetry/chuckle/internal/viewmodel"
)

type fakeHomeVM struct {
	mu      sync.Mutex
	started bool
	closed  bool
	events  []viewmodel.HomeEvent
	states  chan state.HomeState
	onSend  func(viewmodel.HomeEvent)
}

func newFakeHomeVM() *fakeHomeVM {
	return &fakeHomeVM{states: make(chan state.HomeState, 1)}
}

func (f *fakeHomeVM) Start(context.Context) {
	f.mu.Lock()
	f.started = true
	f.mu.Unlock()
}

func (f *fakeHomeVM) Send(e viewmodel.HomeEvent) {
	f.mu.Lock()
	f.events = append(f.events, e)
	onSend := f.onSend
	f.mu.Unlock()
	if onSend != nil {
		onSend(e)
	}
}

func (f *fakeHomeVM) Subscribe() (<-chan state.HomeState, func()) { return f.states, func() {} }

func (f *fakeHomeVM) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}

func (f *fakeHomeVM) sent() []viewmodel.HomeEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]viewmodel.HomeEvent(nil), f.events...)
}

type fakeCategoryVM struct {
	name    string
	started bool
	closed  bool
	events  []viewmodel.CategoryEvent
	states  chan state.CategoryState
}

func newFakeCategoryVM(name string) *fakeCategoryVM {
	return &fakeCategoryVM{name: name, states: make(chan state.CategoryState, 1)}
}

func (f *fakeCategoryVM) Name() string                   { return f.name }
func (f *fakeCategoryVM) Start(context.Context)          { f.started = true }
func (f *fakeCategoryVM) Send(e viewmodel.CategoryEvent) { f.events = append(f.events, e) }
func (f *fakeCategoryVM) Close()                         { f.closed = true }
func (f *fakeCategoryVM) Subscribe() (<-chan state.CategoryState, func()) {
	return f.states, func() {}
}

// fakeFactory records the category view models it hands out.
type fakeFactory struct {
	built []*fakeCategoryVM
}

func (f *fakeFactory) build(ctx context.Context, route model.Route) (Page, bool) {
	if route.Kind != model.RouteCategory {
		return nil, false
	}
	vm := newFakeCategoryVM(route.Name)
	f.built = append(f.built, vm)
	return NewCategoryPage(ctx, vm), true
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loadedHome(categories ...string) state.HomeState {
	s := state.ReduceHome(state.NewHomeState(), state.CategoriesResult{Categories: categories})
	return state.ReduceHome(s, state.RandomJokeResult{Joke: model.Joke{ID: "1", Value: "Chuck Norris can divide by zero."}})
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}
