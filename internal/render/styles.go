package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Dashboard color palette
const (
	ColorSurfaceBg = lipgloss.Color("#12121A")
	ColorBorder    = lipgloss.Color("#2A2A4A")

	// Semantic colors for metrics
	ColorHealthy  = lipgloss.Color("#39FF14")
	ColorWarning  = lipgloss.Color("#FFAA00")
	ColorCritical = lipgloss.Color("#FF0055")

	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0")
	ColorTextMuted     = lipgloss.Color("#6B6B8D")

	ColorAccent = lipgloss.Color("#FF2E97")
	ColorGraph  = lipgloss.Color("#00FFFF")
)

// Thresholds holds the percentages where bars turn yellow and red.
type Thresholds struct {
	Warning  int
	Critical int
}

// DefaultThresholds is green below 70%, yellow 70-90%, red from 90%.
var DefaultThresholds = Thresholds{Warning: 70, Critical: 90}

func (t Thresholds) orDefault() Thresholds {
	if t.Warning == 0 && t.Critical == 0 {
		return DefaultThresholds
	}
	return t
}

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	ColumnHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorTextPrimary).
				Background(ColorSurfaceBg).
				Bold(true)

	SortedColumnStyle = lipgloss.NewStyle().
				Foreground(ColorGraph).
				Background(ColorSurfaceBg).
				Bold(true)

	PausedStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	RateStyle = lipgloss.NewStyle().
			Foreground(ColorGraph)
)

// MetricColor returns the color for a percentage using the given thresholds.
func MetricColor(percent float64, th Thresholds) lipgloss.Color {
	th = th.orDefault()
	switch {
	case percent >= float64(th.Critical):
		return ColorCritical
	case percent >= float64(th.Warning):
		return ColorWarning
	default:
		return ColorHealthy
	}
}

// MetricStyle returns a style with the metric's threshold color.
func MetricStyle(percent float64, th Thresholds) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(MetricColor(percent, th))
}

// Bar renders a thin bar of exactly width cells, filled to percent.
// Uses ━ for filled segments and ─ for empty segments.
func Bar(width int, percent float64, th Thresholds) string {
	if width < 1 {
		return ""
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(percent / 100.0 * float64(width))
	if filled > width {
		filled = width
	}

	filledStyle := lipgloss.NewStyle().Foreground(MetricColor(percent, th))
	emptyStyle := lipgloss.NewStyle().Foreground(ColorBorder)

	return filledStyle.Render(strings.Repeat("━", filled)) +
		emptyStyle.Render(strings.Repeat("─", width-filled))
}
