// Package export flattens sessions and summaries into stable rows for CSV,
// JSON and chart output.
package export

import (
	"strconv"
	"time"

	"github.com/alexanderramin/clockwork/internal/domain"
)

// Columns is the fixed column order of every export.
var Columns = []string{"category", "activity", "task", "start_time", "end_time", "duration_sec", "notes"}

// Row is one exported record. Summary rows leave the time and notes fields
// empty.
type Row struct {
	Category    string `json:"category"`
	Activity    string `json:"activity"`
	Task        string `json:"task"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	DurationSec int64  `json:"duration_sec"`
	Notes       string `json:"notes"`
}

// Values returns the row's fields in Columns order.
func (r Row) Values() []string {
	return []string{
		r.Category,
		r.Activity,
		r.Task,
		r.StartTime,
		r.EndTime,
		strconv.FormatInt(r.DurationSec, 10),
		r.Notes,
	}
}

// FromSessions converts sessions to rows with RFC 3339 times in loc
// (time.Local when nil). Open sessions export with an empty end time and a
// zero duration.
func FromSessions(sessions []*domain.Session, loc *time.Location) []Row {
	if loc == nil {
		loc = time.Local
	}
	rows := make([]Row, 0, len(sessions))
	for _, s := range sessions {
		row := Row{
			Category:    s.Category,
			Activity:    s.Activity,
			Task:        s.Task,
			StartTime:   s.StartTime.In(loc).Format(time.RFC3339),
			DurationSec: seconds(s.Duration()),
			Notes:       s.Notes(),
		}
		if s.EndTime != nil {
			row.EndTime = s.EndTime.In(loc).Format(time.RFC3339)
		}
		rows = append(rows, row)
	}
	return rows
}

func FromSummaries(summaries []domain.SummaryRow) []Row {
	rows := make([]Row, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, Row{
			Category:    s.Category,
			Activity:    s.Activity,
			Task:        s.Task,
			DurationSec: seconds(s.Total),
		})
	}
	return rows
}

// seconds truncates to whole seconds.
func seconds(d time.Duration) int64 {
	return int64(d / time.Second)
}
