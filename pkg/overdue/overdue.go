package overdue

import "github.com/harrisonrobin/taskflow/pkg/model"

// IsOverdue reports whether t is past its due date and not completed.
// Tasks with an unparseable due date are never overdue.
func IsOverdue(t model.Task, today model.Date) bool {
	if !open(t) {
		return false
	}
	due, ok := t.Due()
	return ok && due.Before(today)
}

// IsDueToday reports whether t is due today and not completed.
func IsDueToday(t model.Task, today model.Date) bool {
	if !open(t) {
		return false
	}
	due, ok := t.Due()
	return ok && due.Equal(today)
}

// DaysUntilDue returns the days left until t is due, negative once it has
// passed. ok is false when the due date does not parse.
func DaysUntilDue(t model.Task, today model.Date) (days int, ok bool) {
	due, ok := t.Due()
	if !ok {
		return 0, false
	}
	return today.DaysUntil(due), true
}

func open(t model.Task) bool {
	return t.Status != model.COMPLETED
}
