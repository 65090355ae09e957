package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// FormatBytes formats a byte count with IEC units ("512 MiB", "1.5 GiB").
func FormatBytes(bytes uint64) string {
	return humanize.IBytes(bytes)
}

// FormatRate formats a bytes-per-second rate. Non-finite or negative rates read as zero.
func FormatRate(bytesPerSecond float64) string {
	if math.IsNaN(bytesPerSecond) || math.IsInf(bytesPerSecond, 0) || bytesPerSecond < 0 {
		bytesPerSecond = 0
	}
	return humanize.IBytes(uint64(bytesPerSecond)) + "/s"
}

// FormatPercent formats a percentage with one decimal.
func FormatPercent(p float64) string {
	if math.IsNaN(p) || p < 0 {
		p = 0
	}
	return fmt.Sprintf("%.1f", p)
}

// Truncate cuts s to at most width display cells, ending in an ellipsis when cut.
// Widths are grapheme widths, the same measure lipgloss uses for layout.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, Ellipsis)
}

// PadRight truncates or pads s with spaces to exactly width display cells.
func PadRight(s string, width int) string {
	s = Truncate(s, width)
	return s + padding(s, width)
}

// PadLeft truncates or right-aligns s to exactly width display cells.
func PadLeft(s string, width int) string {
	s = Truncate(s, width)
	return padding(s, width) + s
}

// padding fills the cells s leaves short of width. A wide grapheme cut at the
// boundary leaves a gap that this covers.
func padding(s string, width int) string {
	if n := width - ansi.StringWidth(s); n > 0 {
		return strings.Repeat(" ", n)
	}
	return ""
}

// sanitize drops C0 and C1 control characters that would break the frame
// layout or start an escape sequence.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || (r >= 0x7f && r <= 0x9f) {
			return ' '
		}
		return r
	}, s)
}
