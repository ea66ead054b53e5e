package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/clockwork/internal/aggregate"
	"github.com/alexanderramin/clockwork/internal/domain"
)

// NoActivities is printed for empty reports.
const NoActivities = "No activities found for the specified period."

var weekdayHeaders = []string{"MON", "TUE", "WED", "THU", "FRI", "SAT", "SUN"}

// FormatClockIn is the confirmation line printed after a clock-in, with the
// time shown in loc.
func FormatClockIn(s *domain.Session, loc *time.Location) string {
	return fmt.Sprintf("Clocked in for %s (%s) at %s\n",
		StyleGreen.Render(s.Activity), s.Task, FormatClock(s.StartTime.In(loc)))
}

// FormatClockOut is the confirmation line printed after a clock-out, with
// the time shown in loc.
func FormatClockOut(s *domain.Session, loc *time.Location) string {
	end := s.StartTime
	if s.EndTime != nil {
		end = *s.EndTime
	}
	return fmt.Sprintf("Clocked out from %s at %s | Duration: %s\n",
		StyleGreen.Render(s.Activity), FormatClock(end.In(loc)), Bold(FormatDuration(s.Duration())))
}

// FormatWeeks renders one Monday to Sunday grid per week followed by the
// grand total.
func FormatWeeks(weeks []aggregate.Week) string {
	if len(weeks) == 0 {
		return NoActivities + "\n"
	}

	right := map[int]bool{}
	for i := 1; i <= 8; i++ {
		right[i] = true
	}
	headers := append([]string{"CATEGORY"}, weekdayHeaders...)
	headers = append(headers, "TOTAL")

	var b strings.Builder
	var grand time.Duration
	for i, w := range weeks {
		if i > 0 {
			b.WriteString("\n")
		}
		_, isoWeek := w.Start.ISOWeek()
		end := w.Start.AddDate(0, 0, 6)
		b.WriteString(Header(fmt.Sprintf("Week %02d: %s to %s", isoWeek, w.Start.Format("Jan 2"), end.Format("Jan 2, 2006"))) + "\n")

		rows := make([][]string, 0, len(w.Categories))
		for _, cat := range w.Categories {
			cells := w.Cells[cat]
			row := []string{cat}
			var total time.Duration
			for _, d := range cells {
				row = append(row, gridCell(d))
				total += d
			}
			rows = append(rows, append(row, FormatDuration(total)))
		}

		footer := []string{"TOTAL"}
		for _, d := range w.DayTotals() {
			footer = append(footer, gridCell(d))
		}
		footer = append(footer, FormatDuration(w.Total))

		b.WriteString(Table{Headers: headers, Rows: rows, Footer: footer, RightAlign: right}.Render())
		grand += w.Total
	}
	fmt.Fprintf(&b, "\n%s %s\n", Bold("Total duration:"), FormatDuration(grand))
	return b.String()
}

func gridCell(d time.Duration) string {
	if d == 0 {
		return Dim("-")
	}
	return FormatDuration(d)
}

// FormatSessions renders raw sessions as a table using a strftime layout for
// start and end times.
func FormatSessions(sessions []*domain.Session, timeFormat string) string {
	if len(sessions) == 0 {
		return NoActivities + "\n"
	}

	var total time.Duration
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		end := Dim("running")
		if s.EndTime != nil {
			end = FormatTimestamp(s.EndTime.Local(), timeFormat)
		}
		rows = append(rows, []string{
			Dim(s.DisplayID()),
			s.Category,
			s.Activity,
			s.Task,
			FormatTimestamp(s.StartTime.Local(), timeFormat),
			end,
			FormatDuration(s.Duration()),
			Truncate(s.Notes(), 40),
		})
		total += s.Duration()
	}

	table := Table{
		Headers:    []string{"#", "CATEGORY", "ACTIVITY", "TASK", "START", "END", "DURATION", "NOTES"},
		Rows:       rows,
		RightAlign: map[int]bool{0: true, 6: true},
	}
	return table.Render() + fmt.Sprintf("\n%s %s\n", Bold("Total duration:"), FormatDuration(total))
}

// FormatSummaryTree renders the category → activity → task roll-up with a
// duration beside every node, followed by the grand total.
func FormatSummaryTree(nodes []aggregate.CategoryNode) string {
	if len(nodes) == 0 {
		return NoActivities + "\n"
	}

	var items []TreeItem
	var grand time.Duration
	for _, cat := range nodes {
		items = append(items, TreeItem{Title: cat.Category, Detail: FormatDuration(cat.Total)})
		for ai, act := range cat.Activities {
			items = append(items, TreeItem{
				Title:  act.Activity,
				Level:  1,
				IsLast: ai == len(cat.Activities)-1,
				Detail: FormatDuration(act.Total),
			})
			for ti, task := range act.Tasks {
				items = append(items, TreeItem{
					Title:  task.Task,
					Level:  2,
					IsLast: ti == len(act.Tasks)-1,
					Detail: FormatDuration(task.Total),
				})
			}
		}
		grand += cat.Total
	}
	return RenderTree(items) + fmt.Sprintf("\n%s %s\n", Bold("Total duration:"), FormatDuration(grand))
}

// StatusView is everything the status command shows.
type StatusView struct {
	DBPath     string
	Records    int
	Open       int
	Categories int
	Activities int
	First      *time.Time
	Latest     *domain.Session
	Indexes    []string
	Running    []*domain.Session
	Now        time.Time
	TimeFormat string
}

// FormatStatus renders the database status report and the running sessions.
func FormatStatus(v StatusView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Dim("Database:"), v.DBPath)
	fmt.Fprintf(&b, "%s %d (%d open)\n", Dim("Records:"), v.Records, v.Open)
	fmt.Fprintf(&b, "%s %d  %s %d\n", Dim("Categories:"), v.Categories, Dim("Activities:"), v.Activities)
	if v.First != nil {
		fmt.Fprintf(&b, "%s %s\n", Dim("First record:"), FormatTimestamp(v.First.In(v.Now.Location()), v.TimeFormat))
	}
	if v.Latest != nil {
		fmt.Fprintf(&b, "%s %s/%s/%s %s (%s)\n", Dim("Latest record:"),
			v.Latest.Category, v.Latest.Activity, v.Latest.Task,
			FormatTimestamp(v.Latest.StartTime.In(v.Now.Location()), v.TimeFormat),
			Ago(v.Latest.StartTime, v.Now))
	}
	if len(v.Indexes) > 0 {
		fmt.Fprintf(&b, "%s %s\n", Dim("Indexes:"), strings.Join(v.Indexes, ", "))
	}

	b.WriteString("\n")
	if len(v.Running) == 0 {
		b.WriteString(Dim("Not clocked in.") + "\n")
		return RenderBox("Clockwork status", strings.TrimRight(b.String(), "\n")) + "\n"
	}
	rows := make([][]string, 0, len(v.Running))
	for _, s := range v.Running {
		rows = append(rows, []string{
			SessionIndicator(true),
			s.Category,
			s.Activity,
			s.Task,
			FormatClock(s.StartTime.In(v.Now.Location())),
			FormatDuration(v.Now.Sub(s.StartTime)),
		})
	}
	b.WriteString(RenderTable([]string{"", "CATEGORY", "ACTIVITY", "TASK", "SINCE", "ELAPSED"}, rows))
	return RenderBox("Clockwork status", strings.TrimRight(b.String(), "\n")) + "\n"
}

// FormatInsights renders the dashboard summary and its three histograms.
func FormatInsights(in aggregate.Insights, width int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s   %s %s   %s %d\n",
		Dim("Total:"), Bold(FormatHM(in.Total)),
		Dim("Avg per active day:"), Bold(FormatHM(in.AvgPerActiveDay)),
		Dim("Sessions:"), in.Sessions)
	if in.TopTask != "" {
		fmt.Fprintf(&b, "%s %s (%d sessions)\n", Dim("Most common task:"), in.TopTask, in.TopTaskSessions)
	}

	if len(in.ByDay) > 0 {
		labels := make([]string, len(in.ByDay))
		values := make([]time.Duration, len(in.ByDay))
		for i, d := range in.ByDay {
			labels[i] = d.Day.Format("Mon Jan 02")
			values[i] = d.Total
		}
		b.WriteString("\n" + Header("By day") + "\n")
		b.WriteString(FormatHistogram(labels, values, width))
	}

	labels := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	b.WriteString("\n" + Header("By weekday") + "\n")
	b.WriteString(FormatHistogram(labels, in.ByWeekday[:], width))

	var hourLabels []string
	var hourValues []time.Duration
	for h, d := range in.ByHour {
		if d == 0 {
			continue
		}
		hourLabels = append(hourLabels, fmt.Sprintf("%02d:00", h))
		hourValues = append(hourValues, d)
	}
	if len(hourLabels) > 0 {
		b.WriteString("\n" + Header("By start hour") + "\n")
		b.WriteString(FormatHistogram(hourLabels, hourValues, width))
	}
	return b.String()
}
