package domain

import "time"

// SummaryRow is one aggregated group. Only the key fields covered by the
// requesting GroupBy are populated.
type SummaryRow struct {
	Category string
	Activity string
	Task     string
	Total    time.Duration
	Sessions int
}

// GroupKey identifies a summary group. Names may contain any printable
// character, so groups are keyed on the fields themselves rather than a
// joined string.
type GroupKey struct {
	Category string
	Activity string
	Task     string
}

// Key returns the group key for the given level. Fields below the level are
// left empty.
func (r SummaryRow) Key(by GroupBy) GroupKey {
	switch by {
	case GroupByActivity:
		return GroupKey{Category: r.Category, Activity: r.Activity}
	case GroupByTask:
		return GroupKey{Category: r.Category, Activity: r.Activity, Task: r.Task}
	default:
		return GroupKey{Category: r.Category}
	}
}

// Less orders keys field by field: category, then activity, then task.
func (k GroupKey) Less(o GroupKey) bool {
	if k.Category != o.Category {
		return k.Category < o.Category
	}
	if k.Activity != o.Activity {
		return k.Activity < o.Activity
	}
	return k.Task < o.Task
}

// String joins the populated fields with " / " for messages and logs.
func (k GroupKey) String() string {
	s := k.Category
	if k.Activity != "" {
		s += " / " + k.Activity
	}
	if k.Task != "" {
		s += " / " + k.Task
	}
	return s
}

// Label returns the most specific populated key field.
func (r SummaryRow) Label(by GroupBy) string {
	switch by {
	case GroupByActivity:
		return r.Activity
	case GroupByTask:
		return r.Task
	default:
		return r.Category
	}
}
