package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorNavy   = lipgloss.Color("#1B2A4A")
	ColorWhite  = lipgloss.Color("#F5F5F5")
	ColorGray   = lipgloss.Color("#8A8F98")
	ColorGreen  = lipgloss.Color("#49E209")
	ColorTeal   = lipgloss.Color("#00CAC7")
	ColorRed    = lipgloss.Color("#FF6666")
	ColorYellow = lipgloss.Color("#FFAA00")
)

var (
	titleStyle = lipgloss.NewStyle().
			Background(ColorNavy).
			Foreground(ColorWhite).
			Bold(true).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Foreground(ColorTeal).
			Bold(true)

	jokeBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorGreen).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Italic(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true)
)

// renderBranding renders the app name with a green to teal gradient.
func renderBranding() string {
	colors := []string{"#49E209", "#35DD2F", "#21D955", "#0DD47B", "#00D0A1", "#00CAC7", "#00C0E0"}
	chars := []string{"c", "h", "u", "c", "k", "l", "e"}

	var result string
	for i, char := range chars {
		style := lipgloss.NewStyle().
			Background(ColorNavy).
			Foreground(lipgloss.Color(colors[i])).Bold(true)
		result += style.Render(char)
	}
	return result
}

// boxWidth is the content width of a bordered box that fits in width.
func boxWidth(width int) int {
	w := width - jokeBoxStyle.GetHorizontalFrameSize()
	if w < 20 {
		w = 20
	}
	return w
}
