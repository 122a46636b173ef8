package model

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrEmptyTitle      = errors.New("task title is empty")
	ErrInvalidPriority = errors.New("invalid task priority")
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrInvalidDueDate  = errors.New("invalid task due date")
)

type Priority string

const (
	LOW    Priority = "low"
	MEDIUM Priority = "medium"
	HIGH   Priority = "high"
)

// Valid reports whether p is one of LOW, MEDIUM or HIGH.
func (p Priority) Valid() bool {
	switch p {
	case LOW, MEDIUM, HIGH:
		return true
	}
	return false
}

func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
	}
	return p, nil
}

type Status string

const (
	TODO        Status = "todo"
	IN_PROGRESS Status = "in-progress"
	COMPLETED   Status = "completed"
)

// Valid reports whether s is one of TODO, IN_PROGRESS or COMPLETED.
func (s Status) Valid() bool {
	switch s {
	case TODO, IN_PROGRESS, COMPLETED:
		return true
	}
	return false
}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return st, nil
}

// Task is a single unit of work as shown on the board.
type Task struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Priority    Priority `json:"priority" yaml:"priority"`
	Status      Status   `json:"status" yaml:"status"`
	// DueDate is kept as written (YYYY-MM-DD). Use Due to interpret it.
	DueDate    string   `json:"dueDate" yaml:"dueDate"`
	Assignee   string   `json:"assignee" yaml:"assignee"`
	Tags       []string `json:"tags" yaml:"tags"`
	SharedWith []string `json:"sharedWith" yaml:"sharedWith"`
}

// New builds a task and rejects values outside the priority and status
// enumerations.
func New(id, title, description string, priority Priority, status Status, due string) (Task, error) {
	t := Task{
		ID:          id,
		Title:       title,
		Description: description,
		Priority:    priority,
		Status:      status,
		DueDate:     due,
	}
	if err := t.Validate(); err != nil {
		return Task{}, err
	}
	return t, nil
}

// Due parses DueDate. ok is false when the date is empty or malformed.
func (t Task) Due() (d Date, ok bool) {
	d, err := ParseDate(t.DueDate)
	if err != nil {
		return Date{}, false
	}
	return d, true
}

// Known reports whether both enumerated fields hold recognised values.
func (t Task) Known() bool {
	return t.Priority.Valid() && t.Status.Valid()
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if !t.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	if t.DueDate != "" {
		if _, err := ParseDate(t.DueDate); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidDueDate, err)
		}
	}
	return nil
}

// ToggleCompleted flips a task between done and not done. A completed task
// goes back to TODO.
func (t Task) ToggleCompleted() Task {
	out := t.clone()
	if t.Status == COMPLETED {
		out.Status = TODO
	} else {
		out.Status = COMPLETED
	}
	return out
}

// WithTag returns a copy with tag appended. Blank and duplicate tags are ignored.
func (t Task) WithTag(tag string) Task {
	out := t.clone()
	tag = strings.TrimSpace(tag)
	if tag == "" || slices.Contains(out.Tags, tag) {
		return out
	}
	out.Tags = append(out.Tags, tag)
	return out
}

func (t Task) WithoutTag(tag string) Task {
	out := t.clone()
	out.Tags = slices.DeleteFunc(out.Tags, func(s string) bool { return s == tag })
	return out
}

func (t Task) clone() Task {
	out := t
	out.Tags = slices.Clone(t.Tags)
	out.SharedWith = slices.Clone(t.SharedWith)
	return out
}
