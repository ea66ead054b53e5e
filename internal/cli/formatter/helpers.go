package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/clockwork/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/ncruces/go-strftime"
)

// DefaultTimeFormat is the strftime layout used when none is configured.
const DefaultTimeFormat = "%Y-%m-%d %H:%M:%S"

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// FormatDuration renders d as H:MM:SS with uncapped hours. Negative
// durations render as zero.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	s := int64(d / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", s/3600, s/60%60, s%60)
}

// FormatHM renders d as "05h 07m", truncating seconds.
func FormatHM(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	m := int64(d / time.Minute)
	return fmt.Sprintf("%02dh %02dm", m/60, m%60)
}

// FormatClock renders the wall-clock time of t as HH:MM:SS.
func FormatClock(t time.Time) string {
	return t.Format("15:04:05")
}

// FormatTimestamp renders t with a strftime layout such as "%Y-%m-%d %H:%M".
func FormatTimestamp(t time.Time, layout string) string {
	if layout == "" {
		layout = DefaultTimeFormat
	}
	return strftime.Format(layout, t)
}

// FormatRange renders r as its inclusive dates, e.g. "2024-01-15 to
// 2024-01-21", or a single date when r covers one day.
func FormatRange(r domain.TimeRange) string {
	first, last := r.Start.Format("2006-01-02"), r.LastDay().Format("2006-01-02")
	if first == last {
		return first
	}
	return first + " to " + last
}

// Ago describes t relative to now, e.g. "3 hours ago".
func Ago(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Truncate shortens s to max visible runes, ending with "…" when cut.
func Truncate(s string, max int) string {
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}
