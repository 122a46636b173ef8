package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harrisonrobin/taskflow/pkg/model"
	"github.com/harrisonrobin/taskflow/pkg/overdue"
)

var ErrUnknownFilter = errors.New("unknown filter")

// Filter selects which bucket of tasks the board shows.
type Filter string

const (
	ALL         Filter = "all"
	TODAY       Filter = "today"
	OVERDUE     Filter = "overdue"
	IN_PROGRESS Filter = "in-progress"
	COMPLETED   Filter = "completed"
)

// FilterOption is a filter as presented in the filter bar.
type FilterOption struct {
	ID    Filter `json:"id"`
	Label string `json:"label"`
}

// Filters lists every filter in display order.
var Filters = []FilterOption{
	{ALL, "All Tasks"},
	{TODAY, "Due Today"},
	{OVERDUE, "Overdue"},
	{IN_PROGRESS, "In Progress"},
	{COMPLETED, "Completed"},
}

func (f Filter) Valid() bool {
	switch f {
	case ALL, TODAY, OVERDUE, IN_PROGRESS, COMPLETED:
		return true
	}
	return false
}

func (f Filter) Label() string {
	for _, opt := range Filters {
		if opt.ID == f {
			return opt.Label
		}
	}
	return string(f)
}

// ParseFilter maps a filter id to a Filter. The empty string selects ALL.
func ParseFilter(s string) (Filter, error) {
	if s == "" {
		return ALL, nil
	}
	f := Filter(s)
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownFilter, s)
	}
	return f, nil
}

// Matches reports whether t belongs to the bucket selected by f.
//
// ALL matches every task. Every other filter is false for tasks whose
// status or priority is not a known value, so malformed records only ever
// show up under ALL. Unknown filters match nothing.
func (f Filter) Matches(t model.Task, today model.Date) bool {
	if f == ALL {
		return true
	}
	if !t.Known() {
		return false
	}
	switch f {
	case TODAY:
		return overdue.IsDueToday(t, today)
	case OVERDUE:
		return overdue.IsOverdue(t, today)
	case IN_PROGRESS:
		return t.Status == model.IN_PROGRESS
	case COMPLETED:
		return t.Status == model.COMPLETED
	}
	return false
}

// MatchesQuery reports whether query is a case-insensitive substring of the
// task's title, description or any of its tags. An empty query matches
// everything.
func MatchesQuery(t model.Task, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)

	if strings.Contains(strings.ToLower(t.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Description), q) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Visible returns the tasks matching both f and query, in their original
// order. The input slice is not modified.
func Visible(tasks []model.Task, f Filter, query string, today model.Date) []model.Task {
	visible := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Matches(t, today) && MatchesQuery(t, query) {
			visible = append(visible, t)
		}
	}
	return visible
}
