// Package render turns a summary and a ranked process list into one frame of
// text. Rendering is pure: the same inputs and color profile always produce
// the same bytes, and the frame never exceeds the given size.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/ptop/internal/proctable"
	"github.com/rileyhilliard/ptop/internal/rates"
)

// MinCols is the narrowest terminal that gets a full frame.
const MinCols = 40

// coreCellWidth is the target width of one per-core bar when laying out automatically.
const coreCellWidth = 24

// MaxCoreRows caps the per-core section so the header stays a fixed height
// however many cores the host has. Past the cap cores fold into one-cell
// gauges, and past that into a single aggregate bar.
const MaxCoreRows = 4

// Size is the terminal size in character cells.
type Size struct {
	Rows int
	Cols int
}

// Options carries display parameters that are not part of the data.
type Options struct {
	SortKey    proctable.SortKey
	Descending bool
	Paused     bool
	Thresholds Thresholds

	// CoresPerRow fixes how many per-core bars share a line. 0 fits the width.
	CoresPerRow int

	// Notice is shown at the end of the title line (last error, help hint).
	Notice string

	// CPUHistory holds recent total CPU percentages, oldest first, drawn as
	// a sparkline after the cpu figure.
	CPUHistory []float64
}

// HeaderRows returns how many lines the summary header takes at this size.
func HeaderRows(summary rates.Summary, size Size, opts Options) int {
	grid := coreLayout(len(summary.CorePercents), size.Cols, opts.CoresPerRow)
	// title + cores + memory + io + column header
	return 1 + grid.rows + 1 + 1 + 1
}

// Render draws one frame. Processes are drawn in the given order, as many as fit.
func Render(summary rates.Summary, processes []proctable.Entry, size Size, opts Options) string {
	header := HeaderRows(summary, size, opts)
	if size.Rows < header+1 || size.Cols < MinCols {
		return tooSmall(size, HeaderRows(summary, Size{Rows: size.Rows, Cols: MinCols}, opts)+1)
	}

	lines := make([]string, 0, size.Rows)
	lines = append(lines, titleLine(summary, size.Cols, opts))
	lines = append(lines, coreLines(summary, size.Cols, opts)...)
	lines = append(lines, memoryLine(summary, size.Cols, opts.Thresholds))
	lines = append(lines, ioLine(summary, size.Cols))

	cols := layoutColumns(size.Cols)
	lines = append(lines, columnHeader(cols, size.Cols, opts.SortKey))

	room := size.Rows - header
	if len(processes) > room {
		processes = processes[:room]
	}
	for _, e := range processes {
		lines = append(lines, processRow(e, cols, size.Cols, opts.Thresholds))
	}

	return strings.Join(lines, "\n")
}

// tooSmall is the degraded frame: a short notice cut to fit whatever room there is.
func tooSmall(size Size, needRows int) string {
	if size.Rows <= 0 || size.Cols <= 0 {
		return ""
	}
	msg := []string{
		"terminal too small",
		fmt.Sprintf("need %dx%d, have %dx%d", MinCols, needRows, size.Cols, size.Rows),
	}
	if len(msg) > size.Rows {
		msg = msg[:size.Rows]
	}
	for i := range msg {
		msg[i] = MutedStyle.Render(Truncate(msg[i], size.Cols))
	}
	return strings.Join(msg, "\n")
}

func titleLine(summary rates.Summary, width int, opts Options) string {
	arrow := "▲"
	if opts.Descending {
		arrow = "▼"
	}

	name := "ptop"
	sort := fmt.Sprintf("  sort: %s %s", opts.SortKey, arrow)
	count := fmt.Sprintf("  procs: %d", summary.ProcessCount)
	cpu := fmt.Sprintf("  cpu: %s%%", FormatPercent(summary.CPUPercent))
	spark := ""
	if s := sparkRunes(opts.CPUHistory, SparklineWidth); s != "" {
		spark = " " + s
	}
	paused := ""
	if opts.Paused {
		paused = "  PAUSED"
	}
	notice := ""
	if opts.Notice != "" {
		notice = "  " + sanitize(opts.Notice)
	}

	plain := name + sort + count + cpu + spark + paused + notice
	if lipgloss.Width(plain) > width {
		return TitleStyle.Render(Truncate(plain, width))
	}

	return TitleStyle.Render(name) +
		LabelStyle.Render(sort+count) +
		MetricStyle(summary.CPUPercent, opts.Thresholds).Render(cpu) +
		sparkTail(spark, opts) +
		PausedStyle.Render(paused) +
		MutedStyle.Render(notice)
}

// sparkTail styles the title sparkline, keeping its leading space unstyled.
func sparkTail(spark string, opts Options) string {
	if spark == "" {
		return ""
	}
	return " " + Sparkline(opts.CPUHistory, SparklineWidth, opts.Thresholds)
}

type coreMode int

const (
	coreBars coreMode = iota
	coreGauges
	coreAggregate
)

// coreGrid is how the per-core section is drawn at a given width.
type coreGrid struct {
	mode   coreMode
	perRow int
	rows   int
}

// coreLayout picks the densest form that fits in MaxCoreRows: one bar per
// core, one gauge cell per core, or a single bar for all of them.
func coreLayout(cores, width, fixed int) coreGrid {
	if cores == 0 {
		return coreGrid{}
	}

	perRow := fixed
	if perRow <= 0 {
		perRow = width / coreCellWidth
	}
	perRow = min(max(perRow, 1), cores)
	if rows := ceilDiv(cores, perRow); rows <= MaxCoreRows {
		return coreGrid{mode: coreBars, perRow: perRow, rows: rows}
	}

	perRow = min(width-coreLabelWidth(cores), cores)
	if perRow >= 1 {
		if rows := ceilDiv(cores, perRow); rows <= MaxCoreRows {
			return coreGrid{mode: coreGauges, perRow: perRow, rows: rows}
		}
	}

	return coreGrid{mode: coreAggregate, perRow: cores, rows: 1}
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// coreLabelWidth fits the highest core index plus a trailing space.
func coreLabelWidth(cores int) int {
	return len(fmt.Sprint(cores-1)) + 1
}

func coreLines(summary rates.Summary, width int, opts Options) []string {
	percents := summary.CorePercents
	grid := coreLayout(len(percents), width, opts.CoresPerRow)

	switch grid.mode {
	case coreGauges:
		return gaugeLines(percents, grid, width, opts.Thresholds)
	case coreAggregate:
		return []string{aggregateLine(summary, width, opts.Thresholds)}
	}
	if grid.rows == 0 {
		return nil
	}

	cellW := width / grid.perRow
	labelW := coreLabelWidth(len(percents))

	lines := make([]string, 0, grid.rows)
	for r := 0; r < grid.rows; r++ {
		var b strings.Builder
		for c := 0; c < grid.perRow; c++ {
			i := r*grid.perRow + c
			if i >= len(percents) {
				break
			}
			b.WriteString(coreCell(i, percents[i], labelW, cellW, opts.Thresholds))
		}
		lines = append(lines, b.String())
	}
	return lines
}

// gaugeLines draws each core as one block character, prefixed by the index
// of the first core on the line.
func gaugeLines(percents []float64, grid coreGrid, width int, th Thresholds) []string {
	labelW := coreLabelWidth(len(percents))

	lines := make([]string, 0, grid.rows)
	for start := 0; start < len(percents); start += grid.perRow {
		end := min(start+grid.perRow, len(percents))

		var b strings.Builder
		b.WriteString(LabelStyle.Render(PadLeft(fmt.Sprint(start), labelW-1) + " "))
		for _, p := range percents[start:end] {
			b.WriteString(MetricStyle(p, th).Render(string(gaugeRune(p))))
		}
		b.WriteString(strings.Repeat(" ", width-labelW-(end-start)))
		lines = append(lines, b.String())
	}
	return lines
}

// aggregateLine is one bar for the whole machine when even gauges don't fit.
func aggregateLine(summary rates.Summary, width int, th Thresholds) string {
	label := "CPU "
	value := fmt.Sprintf(" %5s%% of %d cores", FormatPercent(summary.CPUPercent), len(summary.CorePercents))

	barW := width - lipgloss.Width(label) - lipgloss.Width(value)
	if barW < 2 {
		return LabelStyle.Render(PadRight(label+strings.TrimSpace(value), width))
	}
	return LabelStyle.Render(label) +
		Bar(barW, summary.CPUPercent, th) +
		MetricStyle(summary.CPUPercent, th).Render(value)
}

// coreCell draws "<n> ━━━──── 42.0%" padded to cellW, the last column left blank as a gap.
func coreCell(index int, percent float64, labelW, cellW int, th Thresholds) string {
	label := PadLeft(fmt.Sprint(index), labelW-1) + " "
	value := fmt.Sprintf(" %5s%%", FormatPercent(percent))
	content := cellW - 1

	barW := content - labelW - lipgloss.Width(value)
	if barW < 2 {
		return PadRight(label+strings.TrimSpace(value), cellW)
	}
	return LabelStyle.Render(label) +
		Bar(barW, percent, th) +
		MetricStyle(percent, th).Render(value) +
		" "
}

func memoryLine(summary rates.Summary, width int, th Thresholds) string {
	label := "Mem "
	value := fmt.Sprintf(" %s/%s", FormatBytes(summary.MemUsed), FormatBytes(summary.MemTotal))
	pct := summary.MemPercent()

	barW := width - lipgloss.Width(label) - lipgloss.Width(value)
	if barW < 2 {
		return LabelStyle.Render(Truncate(label+strings.TrimSpace(value), width))
	}
	return LabelStyle.Render(label) + Bar(barW, pct, th) + ValueStyle.Render(value)
}

func ioLine(summary rates.Summary, width int) string {
	text := fmt.Sprintf("Disk R %s  W %s   Net ↓ %s  ↑ %s",
		FormatRate(summary.DiskReadRate),
		FormatRate(summary.DiskWriteRate),
		FormatRate(summary.NetRecvRate),
		FormatRate(summary.NetSendRate),
	)
	return LabelStyle.Render(Truncate(text, width))
}
