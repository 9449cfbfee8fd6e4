package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// loader wraps a spinner that only ticks while something is loading.
type loader struct {
	spinner spinner.Model
	ticking bool
}

func newLoader() loader {
	return loader{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(ColorTeal)),
		),
	}
}

// start schedules the first tick unless the spinner is already running.
func (l *loader) start() tea.Cmd {
	if l.ticking {
		return nil
	}
	l.ticking = true
	return l.spinner.Tick
}

// update advances the spinner for its own ticks. When loading has finished
// the tick is swallowed, which ends the tick chain.
func (l *loader) update(msg spinner.TickMsg, loading bool) tea.Cmd {
	if msg.ID != l.spinner.ID() {
		return nil
	}
	if !loading {
		l.ticking = false
		return nil
	}
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

// view renders the spinner followed by text.
func (l loader) view(text string) string {
	return l.spinner.View() + " " + mutedStyle.Render(text)
}
