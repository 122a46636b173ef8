package view

import (
	"github.com/harrisonrobin/taskflow/pkg/model"
	"github.com/harrisonrobin/taskflow/pkg/overdue"
)

// Stats are the summary numbers shown above the board. They always cover
// the whole collection, whatever filter or search is active.
type Stats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"inProgress"`
	Overdue    int `json:"overdue"`
}

func ComputeStats(tasks []model.Task, today model.Date) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case model.COMPLETED:
			s.Completed++
		case model.IN_PROGRESS:
			s.InProgress++
		}
		if overdue.IsOverdue(t, today) {
			s.Overdue++
		}
	}
	return s
}

// CountByFilter returns how many tasks fall under each filter, ignoring any
// search query. Used for the filter bar badges.
func CountByFilter(tasks []model.Task, today model.Date) map[Filter]int {
	counts := make(map[Filter]int, len(Filters))
	for _, opt := range Filters {
		counts[opt.ID] = 0
	}
	for _, t := range tasks {
		for _, opt := range Filters {
			if opt.ID.Matches(t, today) {
				counts[opt.ID]++
			}
		}
	}
	return counts
}
