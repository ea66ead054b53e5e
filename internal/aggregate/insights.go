package aggregate

import (
	"sort"
	"time"

	"github.com/alexanderramin/clockwork/internal/domain"
)

// Insights is the dashboard summary of a set of sessions.
type Insights struct {
	Total           time.Duration
	Sessions        int
	ActiveDays      int
	AvgPerActiveDay time.Duration
	TopTask         string
	TopTaskSessions int

	// ByDay holds one entry per active day in chronological order.
	ByDay []DayTotal
	// ByWeekday is indexed Monday = 0.
	ByWeekday [7]time.Duration
	// ByHour is indexed by the local hour the session started in.
	ByHour [24]time.Duration
}

// ComputeInsights derives dashboard figures from closed sessions. The most
// common task is the one with the most sessions; ties go to the name that
// sorts first.
func ComputeInsights(sessions []*domain.Session, loc *time.Location) Insights {
	var in Insights
	taskCounts := make(map[string]int)
	dayTotals := make(map[time.Time]time.Duration)
	var days []time.Time

	for _, s := range sessions {
		if s.IsOpen() {
			continue
		}
		d := s.Duration()
		in.Total += d
		in.Sessions++
		taskCounts[s.Task]++

		day := midnight(s.StartTime, loc)
		if _, ok := dayTotals[day]; !ok {
			days = append(days, day)
		}
		dayTotals[day] += d

		local := s.StartTime.In(day.Location())
		in.ByWeekday[(int(local.Weekday())+6)%7] += d
		in.ByHour[local.Hour()] += d
	}

	for task, n := range taskCounts {
		if n > in.TopTaskSessions || (n == in.TopTaskSessions && task < in.TopTask) {
			in.TopTask, in.TopTaskSessions = task, n
		}
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	for _, day := range days {
		in.ByDay = append(in.ByDay, DayTotal{Day: day, Total: dayTotals[day]})
	}
	in.ActiveDays = len(days)
	if in.ActiveDays > 0 {
		in.AvgPerActiveDay = in.Total / time.Duration(in.ActiveDays)
	}
	return in
}
