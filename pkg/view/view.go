package view

import "github.com/harrisonrobin/taskflow/pkg/model"

// View is everything a renderer needs to draw the board.
type View struct {
	Tasks  []model.Task   `json:"tasks"`
	Stats  Stats          `json:"stats"`
	Counts map[Filter]int `json:"counts"`
}

// Recompute derives the visible tasks and the summary numbers. It has no
// hidden state and may be called on every change.
func Recompute(tasks []model.Task, f Filter, query string, today model.Date) View {
	return View{
		Tasks:  Visible(tasks, f, query, today),
		Stats:  ComputeStats(tasks, today),
		Counts: CountByFilter(tasks, today),
	}
}

// State is the board's UI selection: the active filter and search text.
type State struct {
	Filter Filter `json:"filter"`
	Query  string `json:"query"`
}

func DefaultState() State {
	return State{Filter: ALL}
}

// SelectFilter returns s with f active. An invalid filter leaves s as is.
func (s State) SelectFilter(f Filter) State {
	if f.Valid() {
		s.Filter = f
	}
	return s
}

// Search returns s with the search text replaced.
func (s State) Search(query string) State {
	s.Query = query
	return s
}

func (s State) Apply(tasks []model.Task, today model.Date) View {
	return Recompute(tasks, s.Filter, s.Query, today)
}
