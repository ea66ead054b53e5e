package domain

import "time"

// TimeRange is a half-open interval [Start, End).
type TimeRange struct {
	Start time.Time
	End   time.Time
}

func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && t.Before(r.End)
}

func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// LastDay returns the calendar date of the final instant in the range, which
// is the inclusive end date a user typed.
func (r TimeRange) LastDay() time.Time {
	last := r.End.Add(-time.Nanosecond)
	y, m, d := last.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, last.Location())
}
