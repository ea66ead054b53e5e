package formatter

import (
	"testing"
	"time"

	"github.com/alexanderramin/clockwork/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00:00"},
		{59 * time.Second, "0:00:59"},
		{90 * time.Minute, "1:30:00"},
		{26*time.Hour + 3*time.Minute + 4*time.Second, "26:03:04"},
		{1500 * time.Millisecond, "0:00:01"},
		{-time.Minute, "0:00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.in), "FormatDuration(%v)", tt.in)
	}
}

func TestFormatHM(t *testing.T) {
	assert.Equal(t, "00h 00m", FormatHM(0))
	assert.Equal(t, "00h 45m", FormatHM(45*time.Minute+30*time.Second))
	assert.Equal(t, "05h 07m", FormatHM(5*time.Hour+7*time.Minute))
	assert.Equal(t, "120h 00m", FormatHM(120*time.Hour))
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2024, 1, 15, 9, 5, 7, 0, time.UTC)
	assert.Equal(t, "2024-01-15 09:05:07", FormatTimestamp(ts, ""))
	assert.Equal(t, "15/01 09:05", FormatTimestamp(ts, "%d/%m %H:%M"))
	assert.Equal(t, "09:05:07", FormatClock(ts))
}

func TestAgo(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "3 hours ago", Ago(now.Add(-3*time.Hour), now))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	assert.Equal(t, "…", Truncate("abc", 1))
}

func TestTruncID(t *testing.T) {
	assert.Equal(t, "abcdefgh", stripANSI(TruncID("abcdefghijkl")))
	assert.Equal(t, "abc", stripANSI(TruncID("abc")))
}

func TestRenderTable_Alignment(t *testing.T) {
	out := stripANSI(Table{
		Headers:    []string{"NAME", "TIME"},
		Rows:       [][]string{{"a", "1:00:00"}, {"longer", "10:00:00"}},
		RightAlign: map[int]bool{1: true},
	}.Render())

	assert.Equal(t, ""+
		"NAME        TIME\n"+
		"──────  ────────\n"+
		"a        1:00:00\n"+
		"longer  10:00:00\n", out)
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func TestRenderBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░", stripANSI(RenderBar(0.5, 10, "#ff0000")))
	assert.Equal(t, "░░░░", stripANSI(RenderBar(-1, 4, "")))
	assert.Equal(t, "████", stripANSI(RenderBar(2, 4, "")))
}

func TestFormatRange(t *testing.T) {
	week := domain.TimeRange{
		Start: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 22, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, "2024-01-15 to 2024-01-21", FormatRange(week))

	day := domain.TimeRange{Start: week.Start, End: week.Start.AddDate(0, 0, 1)}
	assert.Equal(t, "2024-01-15", FormatRange(day))
}
