package aggregate

import (
	"sort"

	"github.com/alexanderramin/clockwork/internal/domain"
)

// CategoryNode is one category of a nested summary with its activities.
type CategoryNode struct {
	domain.SummaryRow
	Activities []ActivityNode
}

// ActivityNode is one activity of a nested summary with its tasks.
type ActivityNode struct {
	domain.SummaryRow
	Tasks []domain.SummaryRow
}

// Nest rolls task-level rows up into category → activity → task. Each level
// keeps the canonical summary order.
func Nest(taskRows []domain.SummaryRow) []CategoryNode {
	var cats []CategoryNode
	catIdx := make(map[string]int)
	// Activity positions are only meaningful within their own category.
	actIdx := make(map[string]map[string]int)

	for _, r := range taskRows {
		ci, ok := catIdx[r.Category]
		if !ok {
			ci = len(cats)
			catIdx[r.Category] = ci
			cats = append(cats, CategoryNode{SummaryRow: domain.SummaryRow{Category: r.Category}})
			actIdx[r.Category] = make(map[string]int)
		}
		cat := &cats[ci]
		cat.Total += r.Total
		cat.Sessions += r.Sessions

		ai, ok := actIdx[r.Category][r.Activity]
		if !ok {
			ai = len(cat.Activities)
			actIdx[r.Category][r.Activity] = ai
			cat.Activities = append(cat.Activities, ActivityNode{
				SummaryRow: domain.SummaryRow{Category: r.Category, Activity: r.Activity},
			})
		}
		act := &cat.Activities[ai]
		act.Total += r.Total
		act.Sessions += r.Sessions
		act.Tasks = append(act.Tasks, r)
	}

	for ci := range cats {
		for ai := range cats[ci].Activities {
			SortRows(cats[ci].Activities[ai].Tasks, domain.GroupByTask)
		}
		sortNodes(cats[ci].Activities, func(n ActivityNode) domain.SummaryRow { return n.SummaryRow }, domain.GroupByActivity)
	}
	sortNodes(cats, func(n CategoryNode) domain.SummaryRow { return n.SummaryRow }, domain.GroupByCategory)
	return cats
}

func sortNodes[T any](nodes []T, row func(T) domain.SummaryRow, by domain.GroupBy) {
	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := row(nodes[i]), row(nodes[j])
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.Key(by).Less(b.Key(by))
	})
}
