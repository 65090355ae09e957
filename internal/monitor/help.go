package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/rileyhilliard/ptop/internal/render"
)

// Help overlay styles
var (
	helpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(render.ColorAccent).
			Padding(1, 2)

	helpTitleStyle = lipgloss.NewStyle().
			Foreground(render.ColorAccent).
			Bold(true)
)

// renderHelpOverlay draws the key bindings in a box centered over the frame area.
func (m Model) renderHelpOverlay() string {
	var lines []string
	lines = append(lines, helpTitleStyle.Render("Keyboard Shortcuts"))
	lines = append(lines, "")
	lines = append(lines, m.help.FullHelpView(m.keys.FullHelp()))
	lines = append(lines, "")
	lines = append(lines, render.MutedStyle.Render("Press ? or esc to close"))

	box := helpBoxStyle.Render(strings.Join(lines, "\n"))

	if m.size.Cols <= 0 || m.size.Rows <= 0 {
		return box
	}
	if lipgloss.Width(box) > m.size.Cols || lipgloss.Height(box) > m.size.Rows {
		// No room for the box: fall back to the one-line summary.
		return ansi.Truncate(m.help.ShortHelpView(m.keys.ShortHelp()), m.size.Cols, render.Ellipsis)
	}
	return lipgloss.Place(m.size.Cols, m.size.Rows, lipgloss.Center, lipgloss.Center, box)
}
