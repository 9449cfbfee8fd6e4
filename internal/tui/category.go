package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinytelemetry/chuckle/internal/state"
	"github.com/tinytelemetry/chuckle/internal/viewmodel"
)

// CategoryViewModel is the subset of *viewmodel.Category the category page drives.
type CategoryViewModel interface {
	Name() string
	Start(ctx context.Context)
	Send(event viewmodel.CategoryEvent)
	Subscribe() (<-chan state.CategoryState, func())
	Close()
}

type categoryStateMsg struct {
	page  *CategoryPage
	state state.CategoryState
}

// CategoryPage lists a batch of jokes from one category.
type CategoryPage struct {
	vm          CategoryViewModel
	ctx         context.Context
	states      <-chan state.CategoryState
	unsubscribe func()
	state       state.CategoryState

	loader   loader
	keys     KeyMap
	help     help.Model
	markdown jokeRenderer
}

// NewCategoryPage creates the page for vm. The view model is started by Init.
func NewCategoryPage(ctx context.Context, vm CategoryViewModel) *CategoryPage {
	p := &CategoryPage{
		vm:     vm,
		ctx:    ctx,
		loader: newLoader(),
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
	p.applyState(state.NewCategoryState(vm.Name()))
	return p
}

func (p *CategoryPage) Title() string { return p.vm.Name() }

func (p *CategoryPage) Init() tea.Cmd {
	p.states, p.unsubscribe = p.vm.Subscribe()
	p.vm.Start(p.ctx)
	return tea.Batch(p.wait(), p.loader.start())
}

func (p *CategoryPage) Close() {
	if p.unsubscribe != nil {
		p.unsubscribe()
	}
	p.vm.Close()
}

func (p *CategoryPage) wait() tea.Cmd {
	return waitForState(p.states, func(s state.CategoryState) tea.Msg {
		return categoryStateMsg{page: p, state: s}
	})
}

func (p *CategoryPage) applyState(s state.CategoryState) {
	p.state = s
	p.keys.Refresh.SetEnabled(!s.RefreshDisabled())
}

func (p *CategoryPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	switch msg := msg.(type) {
	case categoryStateMsg:
		if msg.page != p {
			return nil, nil
		}
		p.applyState(msg.state)
		var cmd tea.Cmd
		if p.state.IsLoading() {
			cmd = p.loader.start()
		}
		return tea.Batch(p.wait(), cmd), nil

	case spinner.TickMsg:
		return p.loader.update(msg, p.state.IsLoading()), nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Quit):
			return nil, &PageNav{Quit: true}
		case key.Matches(msg, p.keys.Back):
			return nil, &PageNav{Back: true}
		case key.Matches(msg, p.keys.Refresh):
			p.vm.Send(viewmodel.CategoryRefresh{})
			return p.loader.start(), nil
		}
	}
	return nil, nil
}

func (p *CategoryPage) View(width, _ int) string {
	if width <= 0 {
		width = 80
	}
	var b strings.Builder

	b.WriteString(renderBranding() + titleStyle.Render(p.state.CategoryName()))
	b.WriteString("\n\n")

	switch {
	case p.state.IsLoading():
		b.WriteString(p.loader.view("Fetching jokes..."))
		b.WriteString("\n")
	case p.state.ErrorMessage() != "":
		b.WriteString(errorStyle.Render(p.state.ErrorMessage()))
		b.WriteString("\n")
	case len(p.state.Jokes()) == 0:
		b.WriteString(mutedStyle.Render("No jokes in this category."))
		b.WriteString("\n")
	}

	if jokes := p.state.Jokes(); len(jokes) > 0 {
		b.WriteString(p.markdown.render(jokes, boxWidth(width)))
		b.WriteString("\n\n")
	}

	b.WriteString(p.help.View(bindings{p.keys.Refresh, p.keys.Back, p.keys.Quit}))
	return b.String()
}
