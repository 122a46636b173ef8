package google

import (
	"fmt"
	"strings"

	"google.golang.org/api/calendar/v3"

	"github.com/harrisonrobin/taskflow/pkg/model"
	"github.com/harrisonrobin/taskflow/pkg/overdue"
)

// TaskIDProperty is the private extended property linking an event to its task.
const TaskIDProperty = "taskflow_id"

const (
	prefixCompleted  = "✓"
	prefixInProgress = "‣"
	prefixOverdue    = "!"
)

// ColorSource picks a calendar color for an assignee.
type ColorSource interface {
	ColorID(assignee string) string
}

// ConvertTask builds an all-day event on the task's due date. colors may be nil.
func ConvertTask(task model.Task, today model.Date, colors ColorSource) (*calendar.Event, error) {
	due, ok := task.Due()
	if !ok {
		return nil, fmt.Errorf("task %s has no usable due date: %q", task.ID, task.DueDate)
	}

	colorID := ""
	if colors != nil {
		colorID = colors.ColorID(task.Assignee)
	}

	return &calendar.Event{
		Summary:     Summary(task, today),
		Description: describe(task),
		ColorId:     colorID,
		Start:       &calendar.EventDateTime{Date: due.String()},
		End:         &calendar.EventDateTime{Date: due.AddDays(1).String()},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{
				TaskIDProperty: task.ID,
			},
		},
	}, nil
}

// Summary is the event title: the task title with a status marker.
func Summary(task model.Task, today model.Date) string {
	prefix := ""
	switch {
	case task.Status == model.COMPLETED:
		prefix = prefixCompleted
	case overdue.IsOverdue(task, today):
		prefix = prefixOverdue
	case task.Status == model.IN_PROGRESS:
		prefix = prefixInProgress
	}
	if prefix == "" {
		return task.Title
	}
	return prefix + " " + task.Title
}

// OverdueSummary marks an already synced summary as overdue.
func OverdueSummary(title string) string {
	return prefixOverdue + " " + title
}

func describe(task model.Task) string {
	var b strings.Builder

	if len(task.Tags) > 0 {
		for _, tag := range task.Tags {
			fmt.Fprintf(&b, "#%s ", tag)
		}
		b.WriteString("\n\n")
	}
	if task.Description != "" {
		b.WriteString(task.Description)
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "Status: %s\n", task.Status)
	fmt.Fprintf(&b, "Priority: %s\n", task.Priority)
	if task.Assignee != "" {
		fmt.Fprintf(&b, "Assignee: %s\n", task.Assignee)
	}
	if len(task.SharedWith) > 0 {
		fmt.Fprintf(&b, "Shared with: %s\n", strings.Join(task.SharedWith, ", "))
	}
	fmt.Fprintf(&b, "ID: %s\n", task.ID)
	return b.String()
}

// EventNeedsUpdate returns a patch holding the fields of target that differ
// from existing, or nil when they already agree.
func EventNeedsUpdate(existing, target *calendar.Event) *calendar.Event {
	patch := &calendar.Event{}
	needsUpdate := false

	if existing.Summary != target.Summary {
		patch.Summary = target.Summary
		needsUpdate = true
	}
	if existing.Description != target.Description {
		patch.Description = target.Description
		needsUpdate = true
	}
	if existing.ColorId != target.ColorId {
		patch.ColorId = target.ColorId
		needsUpdate = true
	}
	if eventDate(existing.Start) != eventDate(target.Start) || eventDate(existing.End) != eventDate(target.End) {
		patch.Start = target.Start
		patch.End = target.End
		needsUpdate = true
	}

	if needsUpdate {
		return patch
	}
	return nil
}

func eventDate(t *calendar.EventDateTime) string {
	if t == nil {
		return ""
	}
	if t.Date != "" {
		return t.Date
	}
	return t.DateTime
}
