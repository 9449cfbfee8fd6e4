package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/chuckle/internal/state"
	"github.com/tinytelemetry/chuckle/internal/viewmodel"
)

// HomeViewModel is the subset of *viewmodel.Home the home page drives.
type HomeViewModel interface {
	Start(ctx context.Context)
	Send(event viewmodel.HomeEvent)
	Subscribe() (<-chan state.HomeState, func())
	Close()
}

type homeStateMsg struct {
	page  *HomePage
	state state.HomeState
}

// HomePage shows a random joke above a filterable category list.
type HomePage struct {
	vm          HomeViewModel
	ctx         context.Context
	states      <-chan state.HomeState
	unsubscribe func()
	state       state.HomeState

	filter textinput.Model
	cursor int
	loader loader
	keys   KeyMap
	help   help.Model
}

// NewHomePage creates the home page for vm. The view model is started by Init.
func NewHomePage(ctx context.Context, vm HomeViewModel) *HomePage {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "filter categories"
	ti.CharLimit = 64

	p := &HomePage{
		vm:     vm,
		ctx:    ctx,
		filter: ti,
		loader: newLoader(),
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
	p.applyState(state.NewHomeState())
	return p
}

func (p *HomePage) Title() string { return "Home" }

func (p *HomePage) Init() tea.Cmd {
	p.states, p.unsubscribe = p.vm.Subscribe()
	p.vm.Start(p.ctx)
	return tea.Batch(p.wait(), p.loader.start())
}

func (p *HomePage) Close() {
	if p.unsubscribe != nil {
		p.unsubscribe()
	}
	p.vm.Close()
}

func (p *HomePage) wait() tea.Cmd {
	return waitForState(p.states, func(s state.HomeState) tea.Msg {
		return homeStateMsg{page: p, state: s}
	})
}

func (p *HomePage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case homeStateMsg:
		if msg.page != p {
			return nil, nil
		}
		p.applyState(msg.state)
		var cmd tea.Cmd
		if p.state.RefreshDisabled() {
			cmd = p.loader.start()
		}
		return tea.Batch(p.wait(), cmd), nil

	case spinner.TickMsg:
		return p.loader.update(msg, p.state.RefreshDisabled()), nil

	case tea.KeyMsg:
		if p.filter.Focused() {
			return p.updateFilter(msg), nil
		}
		return p.handleKey(msg)
	}

	if p.filter.Focused() {
		var cmd tea.Cmd
		p.filter, cmd = p.filter.Update(msg)
		return cmd, nil
	}
	return nil, nil
}

func (p *HomePage) applyState(s state.HomeState) {
	p.state = s
	p.keys.Refresh.SetEnabled(!s.RefreshDisabled())
	if n := len(s.FilteredCategories()); p.cursor >= n {
		p.cursor = max(n-1, 0)
	}
}

func (p *HomePage) handleKey(msg tea.KeyMsg) (tea.Cmd, *PageNav) {
	categories := p.state.FilteredCategories()

	switch {
	case key.Matches(msg, p.keys.Quit):
		return nil, &PageNav{Quit: true}
	case key.Matches(msg, p.keys.Filter):
		return p.filter.Focus(), nil
	case key.Matches(msg, p.keys.Back):
		if p.filter.Value() != "" {
			p.filter.SetValue("")
			p.vm.Send(viewmodel.HomeSearchTextChanged{Text: ""})
		}
	case key.Matches(msg, p.keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, p.keys.Down):
		if p.cursor < len(categories)-1 {
			p.cursor++
		}
	case key.Matches(msg, p.keys.Select):
		if p.cursor < len(categories) {
			p.vm.Send(viewmodel.HomeSelectCategory{Name: categories[p.cursor]})
		}
	case key.Matches(msg, p.keys.Refresh):
		p.vm.Send(viewmodel.HomeRefresh{})
		return p.loader.start(), nil
	}
	return nil, nil
}

// updateFilter feeds keys to the focused filter input. Enter and esc leave
// the input; every edit is sent as a search.
func (p *HomePage) updateFilter(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		p.filter.Blur()
		return nil
	}

	before := p.filter.Value()
	var cmd tea.Cmd
	p.filter, cmd = p.filter.Update(msg)
	if after := p.filter.Value(); after != before {
		p.vm.Send(viewmodel.HomeSearchTextChanged{Text: after})
		p.cursor = 0
	}
	return cmd
}

func (p *HomePage) View(width, height int) string {
	if width <= 0 {
		width = 80
	}
	var b strings.Builder

	b.WriteString(renderBranding() + titleStyle.Render("home"))
	b.WriteString("\n\n")
	b.WriteString(jokeBoxStyle.Width(boxWidth(width)).Render(p.jokeView()))
	b.WriteString("\n\n")

	b.WriteString(p.filter.View())
	b.WriteString("\n\n")
	b.WriteString(sectionStyle.Render("Categories"))
	b.WriteString("\n")

	header := lipgloss.Height(b.String())
	footer := 2
	b.WriteString(p.categoriesView(height - header - footer))

	b.WriteString("\n")
	b.WriteString(p.help.View(bindings{p.keys.Up, p.keys.Down, p.keys.Select, p.keys.Filter, p.keys.Refresh, p.keys.Quit}))
	return b.String()
}

func (p *HomePage) jokeView() string {
	if text := p.state.RandomJokeText(); text != "" {
		return text
	}
	if msg := p.state.RandomJokeError(); msg != "" {
		return errorStyle.Render(msg)
	}
	if p.state.RefreshDisabled() {
		return p.loader.view("Fetching a joke...")
	}
	return mutedStyle.Render("No joke yet.")
}

func (p *HomePage) categoriesView(rows int) string {
	if msg := p.state.CategoriesError(); msg != "" {
		return errorStyle.Render(msg) + "\n"
	}
	categories := p.state.FilteredCategories()
	if categories == nil {
		return p.loader.view("Fetching categories...") + "\n"
	}
	if len(categories) == 0 {
		return mutedStyle.Render("No matching categories.") + "\n"
	}

	start, end := visibleWindow(len(categories), p.cursor, rows)
	var b strings.Builder
	for i := start; i < end; i++ {
		if i == p.cursor {
			fmt.Fprintf(&b, "%s %s\n", cursorStyle.Render(">"), cursorStyle.Render(categories[i]))
		} else {
			fmt.Fprintf(&b, "  %s\n", categories[i])
		}
	}
	if end-start < len(categories) {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%d/%d", p.cursor+1, len(categories))) + "\n")
	}
	return b.String()
}

// visibleWindow returns the [start, end) slice of n rows that keeps cursor
// on screen when only rows lines fit.
func visibleWindow(n, cursor, rows int) (int, int) {
	if rows < 1 {
		rows = 1
	}
	if n <= rows {
		return 0, n
	}
	start := cursor - rows/2
	if start < 0 {
		start = 0
	}
	if start+rows > n {
		start = n - rows
	}
	return start, start + rows
}
