package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinytelemetry/chuckle/internal/apiclient"
	"github.com/tinytelemetry/chuckle/internal/state"
	"github.com/tinytelemetry/chuckle/internal/viewmodel"
)

func newStartedHome(t *testing.T) (*HomePage, *fakeHomeVM) {
	t.Helper()
	vm := newFakeHomeVM()
	p := NewHomePage(context.Background(), vm)
	if cmd := p.Init(); cmd == nil {
		t.Fatal("Init returned no command")
	}
	if !vm.started {
		t.Fatal("Init did not start the view model")
	}
	return p, vm
}

func TestHomePage_RendersState(t *testing.T) {
	t.Parallel()

	p, _ := newStartedHome(t)

	if got := p.View(80, 24); !strings.Contains(got, "Fetching a joke") {
		t.Fatalf("initial view missing loading text:\n%s", got)
	}

	p.Update(homeStateMsg{page: p, state: loadedHome("animal", "dev")})
	got := p.View(80, 24)
	for _, want := range []string{"Chuck Norris can divide by zero.", "animal", "dev"} {
		if !strings.Contains(got, want) {
			t.Errorf("view missing %q:\n%s", want, got)
		}
	}
}

func TestHomePage_IgnoresOtherPagesState(t *testing.T) {
	t.Parallel()

	p, _ := newStartedHome(t)
	other := NewHomePage(context.Background(), newFakeHomeVM())

	cmd, _ := p.Update(homeStateMsg{page: other, state: loadedHome("dev")})
	if cmd != nil {
		t.Fatal("foreign state message re-armed the subscription")
	}
	if p.state.FilteredCategories() != nil {
		t.Fatal("foreign state message was applied")
	}
}

func TestHomePage_RendersErrors(t *testing.T) {
	t.Parallel()

	p, _ := newStartedHome(t)
	s := state.ReduceHome(state.NewHomeState(), state.RandomJokeResult{Err: apiclient.ServerResponse(500)})
	s = state.ReduceHome(s, state.CategoriesResult{Err: apiclient.Unexpected("response data is empty")})
	p.Update(homeStateMsg{page: p, state: s})

	got := p.View(80, 24)
	if !strings.Contains(got, "A data request error occurred. (code: 500)") {
		t.Errorf("view missing joke error:\n%s", got)
	}
	if !strings.Contains(got, "response data is empty") {
		t.Errorf("view missing categories error:\n%s", got)
	}
}

func TestHomePage_SelectSendsCategory(t *testing.T) {
	t.Parallel()

	p, vm := newStartedHome(t)
	p.Update(homeStateMsg{page: p, state: loadedHome("animal", "career", "dev")})

	p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p.Update(tea.KeyMsg{Type: tea.KeyUp})
	p.Update(tea.KeyMsg{Type: tea.KeyEnter})

	events := vm.sent()
	if len(events) != 1 {
		t.Fatalf("events = %#v, want one select", events)
	}
	if got, want := events[0], (viewmodel.HomeSelectCategory{Name: "career"}); got != want {
		t.Fatalf("event = %#v, want %#v", got, want)
	}
}

func TestHomePage_RefreshOnlyWhenEnabled(t *testing.T) {
	t.Parallel()

	p, vm := newStartedHome(t)

	p.Update(keyRunes("r"))
	if n := len(vm.sent()); n != 0 {
		t.Fatalf("refresh sent while disabled: %d events", n)
	}

	p.Update(homeStateMsg{page: p, state: loadedHome("dev")})
	p.Update(keyRunes("r"))
	events := vm.sent()
	if len(events) != 1 || events[0] != (viewmodel.HomeRefresh{}) {
		t.Fatalf("events = %#v, want one refresh", events)
	}
}

func TestHomePage_FilterInput(t *testing.T) {
	t.Parallel()

	p, vm := newStartedHome(t)
	p.Update(homeStateMsg{page: p, state: loadedHome("cat01", "cat02")})

	p.Update(keyRunes("/"))
	if !p.filter.Focused() {
		t.Fatal("filter not focused after /")
	}
	p.Update(keyRunes("0"))
	p.Update(keyRunes("2"))
	// While focused, q is text, not quit.
	_, nav := p.Update(keyRunes("q"))
	if nav != nil {
		t.Fatalf("nav = %#v while typing", nav)
	}
	p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if p.filter.Focused() {
		t.Fatal("enter did not leave the filter")
	}

	var texts []string
	for _, e := range vm.sent() {
		if s, ok := e.(viewmodel.HomeSearchTextChanged); ok {
			texts = append(texts, s.Text)
		}
	}
	if got, want := strings.Join(texts, ","), "0,02,02q"; got != want {
		t.Fatalf("search texts = %q, want %q", got, want)
	}

	p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	last := vm.sent()[len(vm.sent())-1]
	if last != (viewmodel.HomeSearchTextChanged{Text: ""}) {
		t.Fatalf("esc did not clear the filter, last event %#v", last)
	}
}

func TestHomePage_Quit(t *testing.T) {
	t.Parallel()

	p, _ := newStartedHome(t)
	_, nav := p.Update(keyRunes("q"))
	if nav == nil || !nav.Quit {
		t.Fatalf("nav = %#v, want quit", nav)
	}
}

func TestHomePage_CursorClampedToFilteredList(t *testing.T) {
	t.Parallel()

	p, _ := newStartedHome(t)
	p.Update(homeStateMsg{page: p, state: loadedHome("a", "b", "c")})
	p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p.Update(tea.KeyMsg{Type: tea.KeyDown})

	filtered := state.ReduceHome(loadedHome("a", "b", "c"), state.FilterCategories{Text: "a"})
	p.Update(homeStateMsg{page: p, state: filtered})
	if p.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", p.cursor)
	}
}

func TestVisibleWindow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n, cursor, rows int
		start, end      int
	}{
		{n: 3, cursor: 0, rows: 10, start: 0, end: 3},
		{n: 20, cursor: 0, rows: 5, start: 0, end: 5},
		{n: 20, cursor: 10, rows: 5, start: 8, end: 13},
		{n: 20, cursor: 19, rows: 5, start: 15, end: 20},
		{n: 20, cursor: 4, rows: 0, start: 4, end: 5},
	}
	for _, tt := range tests {
		start, end := visibleWindow(tt.n, tt.cursor, tt.rows)
		if start != tt.start || end != tt.end {
			t.Errorf("visibleWindow(%d, %d, %d) = %d, %d; want %d, %d", tt.n, tt.cursor, tt.rows, start, end, tt.start, tt.end)
		}
	}
}
