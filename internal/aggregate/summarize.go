// Package aggregate groups closed sessions into report totals. Every function
// is pure: sessions in, rows out, with no store or clock access.
package aggregate

import (
	"sort"

	"github.com/alexanderramin/clockwork/internal/domain"
)

// Summarize groups closed sessions by the requested key and sums their
// durations. Open sessions are skipped. Rows are ordered by total descending,
// then by key ascending.
func Summarize(sessions []*domain.Session, by domain.GroupBy) []domain.SummaryRow {
	index := make(map[domain.GroupKey]int)
	var rows []domain.SummaryRow

	for _, s := range sessions {
		if s.IsOpen() {
			continue
		}
		row := keyRow(s, by)
		key := row.Key(by)
		i, ok := index[key]
		if !ok {
			i = len(rows)
			index[key] = i
			rows = append(rows, row)
		}
		rows[i].Total += s.Duration()
		rows[i].Sessions++
	}

	SortRows(rows, by)
	return rows
}

// SortRows applies the canonical summary order in place.
func SortRows(rows []domain.SummaryRow, by domain.GroupBy) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Total != rows[j].Total {
			return rows[i].Total > rows[j].Total
		}
		return rows[i].Key(by).Less(rows[j].Key(by))
	})
}

func keyRow(s *domain.Session, by domain.GroupBy) domain.SummaryRow {
	row := domain.SummaryRow{Category: s.Category}
	switch by {
	case domain.GroupByActivity:
		row.Activity = s.Activity
	case domain.GroupByTask:
		row.Activity = s.Activity
		row.Task = s.Task
	}
	return row
}
