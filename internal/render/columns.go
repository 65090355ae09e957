package render

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/ptop/internal/proctable"
)

// MinCommandWidth is the least room the COMMAND column is given before
// optional columns start dropping off.
const MinCommandWidth = 8

type column struct {
	title string
	width int
	// sortKey marks the column Snapshot sorts on; -1 for unsortable columns.
	sortKey proctable.SortKey
	value   func(e proctable.Entry) string
}

const unsortable proctable.SortKey = -1

var fixedColumns = []column{
	{title: "PID", width: 7, sortKey: proctable.SortByPID, value: func(e proctable.Entry) string { return fmt.Sprint(e.PID) }},
	{title: "CPU%", width: 6, sortKey: proctable.SortByCPU, value: func(e proctable.Entry) string { return FormatPercent(e.CPUPercent) }},
	{title: "MEM", width: 9, sortKey: proctable.SortByMemory, value: func(e proctable.Entry) string { return FormatBytes(e.MemoryBytes) }},
}

// optionalColumns are added in order while the terminal is wide enough.
var optionalColumns = []column{
	{title: "READ/s", width: 10, sortKey: unsortable, value: func(e proctable.Entry) string { return FormatRate(e.DiskReadRate) }},
	{title: "WRITE/s", width: 10, sortKey: unsortable, value: func(e proctable.Entry) string { return FormatRate(e.DiskWriteRate) }},
	{title: "RECV/s", width: 10, sortKey: unsortable, value: func(e proctable.Entry) string { return FormatRate(e.NetRecvRate) }},
	{title: "SEND/s", width: 10, sortKey: unsortable, value: func(e proctable.Entry) string { return FormatRate(e.NetSendRate) }},
}

// layoutColumns picks the numeric columns that fit in width, leaving the
// rest of the line to COMMAND.
func layoutColumns(width int) []column {
	cols := append([]column(nil), fixedColumns...)
	used := columnsWidth(cols)
	for _, c := range optionalColumns {
		if used+1+c.width+1+MinCommandWidth > width {
			break
		}
		cols = append(cols, c)
		used += 1 + c.width
	}
	return cols
}

// columnsWidth is the width of the numeric columns including separators,
// not counting the space before COMMAND.
func columnsWidth(cols []column) int {
	w := 0
	for i, c := range cols {
		if i > 0 {
			w++
		}
		w += c.width
	}
	return w
}

func commandWidth(cols []column, width int) int {
	w := width - columnsWidth(cols) - 1
	if w < 0 {
		return 0
	}
	return w
}

func columnHeader(cols []column, width int, key proctable.SortKey) string {
	var b strings.Builder
	for i, c := range cols {
		if i > 0 {
			b.WriteString(ColumnHeaderStyle.Render(" "))
		}
		b.WriteString(headerCell(PadLeft(c.title, c.width), c.sortKey == key))
	}
	b.WriteString(ColumnHeaderStyle.Render(" "))
	b.WriteString(headerCell(PadRight("COMMAND", commandWidth(cols, width)), key == proctable.SortByName))
	return b.String()
}

func headerCell(text string, sorted bool) string {
	if sorted {
		return SortedColumnStyle.Render(text)
	}
	return ColumnHeaderStyle.Render(text)
}

func processRow(e proctable.Entry, cols []column, width int, th Thresholds) string {
	var b strings.Builder
	for i, c := range cols {
		if i > 0 {
			b.WriteByte(' ')
		}
		cell := PadLeft(c.value(e), c.width)
		switch {
		case c.sortKey == proctable.SortByCPU:
			// CPU% spans 0-100 per core; color against one core's worth.
			b.WriteString(MetricStyle(e.CPUPercent, th).Render(cell))
		case c.sortKey == unsortable:
			b.WriteString(RateStyle.Render(cell))
		default:
			b.WriteString(cell)
		}
	}
	b.WriteByte(' ')
	b.WriteString(PadRight(sanitize(e.Name), commandWidth(cols, width)))
	return b.String()
}
