package render

import (
	"math"
	"strings"
)

// SparklineWidth is how many recent readings the title sparkline shows.
const SparklineWidth = 20

// Sparkline block characters representing 8 vertical levels (lowest to highest).
const sparklineBlocks = "▁▂▃▄▅▆▇█"

var sparklineBlockRunes = []rune(sparklineBlocks)

// sparkRunes maps the most recent width percentages onto block characters.
// The scale is fixed at 0..100 so an idle machine reads low, not mid-height.
func sparkRunes(data []float64, width int) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}
	if len(data) > width {
		data = data[len(data)-width:]
	}

	var sb strings.Builder
	sb.Grow(len(data) * 3)

	for _, v := range data {
		sb.WriteRune(gaugeRune(v))
	}
	return sb.String()
}

// gaugeRune is the block character for one percentage on the 0..100 scale.
func gaugeRune(p float64) rune {
	top := len(sparklineBlockRunes) - 1
	return sparklineBlockRunes[int(clampPercent(p)/100*float64(top))]
}

// Sparkline renders recent percentages colored by the latest one.
func Sparkline(data []float64, width int, th Thresholds) string {
	s := sparkRunes(data, width)
	if s == "" {
		return ""
	}
	if len(data) > width {
		data = data[len(data)-width:]
	}
	return MetricStyle(data[len(data)-1], th).Render(s)
}

func clampPercent(p float64) float64 {
	switch {
	case math.IsNaN(p), p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}
