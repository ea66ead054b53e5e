package aggregate

import (
	"sort"
	"time"

	"github.com/alexanderramin/clockwork/internal/domain"
)

// DayTotal is the time logged for one category on one local calendar day.
type DayTotal struct {
	Day      time.Time // local midnight
	Category string
	Total    time.Duration
}

// Daily buckets closed sessions by the local date of their start time and by
// category. Results are ordered by day, then category.
func Daily(sessions []*domain.Session, loc *time.Location) []DayTotal {
	type key struct {
		day      time.Time
		category string
	}
	totals := make(map[key]time.Duration)
	var keys []key

	for _, s := range sessions {
		if s.IsOpen() {
			continue
		}
		k := key{day: midnight(s.StartTime, loc), category: s.Category}
		if _, ok := totals[k]; !ok {
			keys = append(keys, k)
		}
		totals[k] += s.Duration()
	}

	sort.Slice(keys, func(i, j int) bool {
		if !keys[i].day.Equal(keys[j].day) {
			return keys[i].day.Before(keys[j].day)
		}
		return keys[i].category < keys[j].category
	})

	out := make([]DayTotal, len(keys))
	for i, k := range keys {
		out[i] = DayTotal{Day: k.day, Category: k.category, Total: totals[k]}
	}
	return out
}

// Week is a Monday to Sunday grid of category totals.
type Week struct {
	Start      time.Time // Monday midnight
	Categories []string
	Cells      map[string]*[7]time.Duration
	Total      time.Duration
}

// Weeks folds daily totals into week grids, one per Monday-started week that
// has any time logged, in chronological order.
func Weeks(days []DayTotal) []Week {
	var weeks []Week
	index := make(map[time.Time]int)

	for _, d := range days {
		offset := (int(d.Day.Weekday()) + 6) % 7
		y, m, dd := d.Day.Date()
		monday := time.Date(y, m, dd-offset, 0, 0, 0, 0, d.Day.Location())

		wi, ok := index[monday]
		if !ok {
			wi = len(weeks)
			index[monday] = wi
			weeks = append(weeks, Week{Start: monday, Cells: make(map[string]*[7]time.Duration)})
		}
		w := &weeks[wi]
		cells, ok := w.Cells[d.Category]
		if !ok {
			cells = new([7]time.Duration)
			w.Cells[d.Category] = cells
			w.Categories = append(w.Categories, d.Category)
		}
		cells[offset] += d.Total
		w.Total += d.Total
	}

	for i := range weeks {
		sort.Strings(weeks[i].Categories)
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].Start.Before(weeks[j].Start) })
	return weeks
}

// DayTotals returns the seven daily sums of a week, Monday first.
func (w Week) DayTotals() [7]time.Duration {
	var out [7]time.Duration
	for _, cells := range w.Cells {
		for i, d := range cells {
			out[i] += d
		}
	}
	return out
}

func midnight(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
