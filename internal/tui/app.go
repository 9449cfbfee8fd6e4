// Package tui is the Bubble Tea front end. Pages only render view model
// state and send intents; navigation follows the shared router path.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/tinytelemetry/chuckle/internal/model"
	"github.com/tinytelemetry/chuckle/internal/router"
)

// PageFactory builds the page for a pushed route. It returns false for
// routes it cannot show.
type PageFactory func(ctx context.Context, route model.Route) (Page, bool)

type routedPage struct {
	route model.Route
	page  Page
}

// App is the top-level Bubble Tea model. The home page is the root; every
// entry of the router path is a page stacked above it.
type App struct {
	ctx     context.Context
	router  *router.Router
	changes <-chan struct{}
	build   PageFactory
	logger  *zap.Logger

	home   Page
	stack  []routedPage
	keys   KeyMap
	width  int
	height int
}

// NewApp creates an App rooted at home.
func NewApp(ctx context.Context, r *router.Router, home Page, build PageFactory, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		ctx:     ctx,
		router:  r,
		changes: r.Changes(),
		build:   build,
		logger:  logger,
		home:    home,
		keys:    DefaultKeyMap(),
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.home.Init(), a.syncPath(), waitForRoute(a.changes))
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case routeChangedMsg:
		return a, tea.Batch(a.syncPath(), waitForRoute(a.changes))

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) {
			return a, tea.Quit
		}
		cmd, nav := a.active().Update(msg)
		return a, tea.Batch(cmd, a.navigate(nav), a.syncPath())
	}

	// Everything else (state snapshots, spinner ticks, cursor blink) goes
	// to every live page; each ignores what is not addressed to it.
	cmds := make([]tea.Cmd, 0, len(a.stack)+1)
	for _, p := range a.pages() {
		cmd, _ := p.Update(msg)
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

func (a *App) View() string {
	if a.width <= 0 || a.height <= 0 {
		return "Initializing..."
	}
	return a.active().View(a.width, a.height)
}

// Close releases every page. Call it after the program exits.
func (a *App) Close() {
	for _, p := range a.pages() {
		p.Close()
	}
	a.stack = nil
}

func (a *App) active() Page {
	if n := len(a.stack); n > 0 {
		return a.stack[n-1].page
	}
	return a.home
}

func (a *App) pages() []Page {
	out := make([]Page, 0, len(a.stack)+1)
	out = append(out, a.home)
	for _, rp := range a.stack {
		out = append(out, rp.page)
	}
	return out
}

func (a *App) navigate(nav *PageNav) tea.Cmd {
	switch {
	case nav == nil:
		return nil
	case nav.Quit:
		return tea.Quit
	case nav.Back:
		a.router.Truncate(len(a.router.Path()) - 1)
	}
	return nil
}

// syncPath reconciles the page stack with the router path: pages past the
// first divergence are closed and pages for new routes are built and started.
func (a *App) syncPath() tea.Cmd {
	path := a.router.Path()

	keep := 0
	for keep < len(path) && keep < len(a.stack) && a.stack[keep].route == path[keep] {
		keep++
	}
	for _, rp := range a.stack[keep:] {
		rp.page.Close()
	}
	a.stack = a.stack[:keep]

	var cmds []tea.Cmd
	for i, route := range path[keep:] {
		page, ok := a.build(a.ctx, route)
		if !ok {
			a.logger.Warn("no page for route", zap.Stringer("kind", route.Kind), zap.String("name", route.Name))
			a.router.Truncate(keep + i)
			break
		}
		a.stack = append(a.stack, routedPage{route: route, page: page})
		cmds = append(cmds, page.Init())
	}
	return tea.Batch(cmds...)
}
