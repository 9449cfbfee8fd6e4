package tui

import tea "github.com/charmbracelet/bubbletea"

// Page represents a screen in the TUI. The App forwards key input to the
// active page only and every other message to all live pages.
type Page interface {
	Title() string
	Init() tea.Cmd
	Update(msg tea.Msg) (tea.Cmd, *PageNav)
	View(width, height int) string
	// Close releases the page's view model.
	Close()
}

// PageNav is returned from Update to request navigation.
type PageNav struct {
	Back bool
	Quit bool
}
