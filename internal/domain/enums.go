package domain

// GroupBy selects the key a summary is grouped on. Each level includes the
// levels above it, so GroupByActivity groups on (category, activity).
type GroupBy string

const (
	GroupByCategory GroupBy = "category"
	GroupByActivity GroupBy = "activity"
	GroupByTask     GroupBy = "task"
)

// ValidGroupBy is the canonical set of accepted group-by strings.
var ValidGroupBy = map[string]bool{
	"category": true, "activity": true, "task": true,
}
