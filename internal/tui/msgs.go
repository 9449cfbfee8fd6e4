package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// routeChangedMsg is delivered after the navigation path changes.
type routeChangedMsg struct{}

func waitForRoute(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return routeChangedMsg{}
	}
}

// waitForState delivers the next snapshot from states wrapped by wrap.
// A closed channel ends the wait.
func waitForState[S any](states <-chan S, wrap func(S) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-states
		if !ok {
			return nil
		}
		return wrap(s)
	}
}
