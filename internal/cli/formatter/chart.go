package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/clockwork/internal/export"
	"github.com/charmbracelet/lipgloss"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderBar renders a bar of width cells with share of them filled in the
// given colour.
func RenderBar(share float64, width int, color string) string {
	if share < 0 {
		share = 0
	}
	if share > 1 {
		share = 1
	}
	if width < 1 {
		width = 1
	}
	filled := int(share*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	return HexStyle(color).Render(strings.Repeat(filledBlock, filled)) +
		StyleDim.Render(strings.Repeat(emptyBlock, width-filled))
}

// FormatChart renders one bar per slice with its share and duration, then
// the total.
func FormatChart(title string, slices []export.Slice, width int) string {
	var b strings.Builder
	b.WriteString(Header(title) + "\n\n")

	labelWidth := 0
	var total int64
	for _, s := range slices {
		if w := lipgloss.Width(s.Label); w > labelWidth {
			labelWidth = w
		}
		total += s.Seconds
	}

	for _, s := range slices {
		label := HexStyle(s.Color).Render(s.Label)
		pad := labelWidth - lipgloss.Width(s.Label)
		fmt.Fprintf(&b, "%s%s  %s %5.1f%%  %s\n",
			label, strings.Repeat(" ", pad),
			RenderBar(s.Share, width, s.Color),
			s.Share*100,
			FormatHM(time.Duration(s.Seconds)*time.Second),
		)
	}
	fmt.Fprintf(&b, "\n%s %s\n", Bold("Total:"), FormatHM(time.Duration(total)*time.Second))
	return b.String()
}

// FormatHistogram renders labelled durations as bars scaled to the largest
// value. It is used for the by-day, by-weekday and by-hour dashboard panels.
func FormatHistogram(labels []string, values []time.Duration, width int) string {
	var max time.Duration
	labelWidth := 0
	for i, v := range values {
		if v > max {
			max = v
		}
		if w := lipgloss.Width(labels[i]); w > labelWidth {
			labelWidth = w
		}
	}

	var b strings.Builder
	for i, v := range values {
		share := 0.0
		if max > 0 {
			share = float64(v) / float64(max)
		}
		fmt.Fprintf(&b, "%s%s  %s  %s\n",
			labels[i], strings.Repeat(" ", labelWidth-lipgloss.Width(labels[i])),
			RenderBar(share, width, string(ColorGreen)),
			FormatHM(v),
		)
	}
	return b.String()
}
