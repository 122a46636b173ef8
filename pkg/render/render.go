// Package render draws the board for a terminal: stats cards, the filter
// bar and one card per visible task.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/harrisonrobin/taskflow/pkg/model"
	"github.com/harrisonrobin/taskflow/pkg/overdue"
	"github.com/harrisonrobin/taskflow/pkg/view"
)

// Theme is the color palette used by every renderer in this package.
type Theme struct {
	Accent     lipgloss.Color
	Text       lipgloss.Color
	Faint      lipgloss.Color
	High       lipgloss.Color
	Medium     lipgloss.Color
	Low        lipgloss.Color
	Completed  lipgloss.Color
	InProgress lipgloss.Color
	Overdue    lipgloss.Color
}

var DefaultTheme = Theme{
	Accent:     lipgloss.Color("#7C3AED"),
	Text:       lipgloss.Color("#E5E7EB"),
	Faint:      lipgloss.Color("#6B7280"),
	High:       lipgloss.Color("#EF4444"),
	Medium:     lipgloss.Color("#EAB308"),
	Low:        lipgloss.Color("#22C55E"),
	Completed:  lipgloss.Color("#22C55E"),
	InProgress: lipgloss.Color("#3B82F6"),
	Overdue:    lipgloss.Color("#EF4444"),
}

const cardWidth = 46

func (th Theme) priorityColor(p model.Priority) lipgloss.Color {
	switch p {
	case model.HIGH:
		return th.High
	case model.MEDIUM:
		return th.Medium
	case model.LOW:
		return th.Low
	}
	return th.Faint
}

func (th Theme) statusColor(s model.Status) lipgloss.Color {
	switch s {
	case model.COMPLETED:
		return th.Completed
	case model.IN_PROGRESS:
		return th.InProgress
	}
	return th.Faint
}

// StatsCards renders the four summary numbers side by side.
func (th Theme) StatsCards(s view.Stats) string {
	card := func(title string, value int, color lipgloss.Color) string {
		label := lipgloss.NewStyle().Foreground(th.Faint).Render(title)
		number := lipgloss.NewStyle().Foreground(color).Bold(true).Render(fmt.Sprint(value))
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(color).
			Padding(0, 2).
			Width(16).
			Render(label + "\n" + number)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total Tasks", s.Total, th.Accent),
		card("Completed", s.Completed, th.Completed),
		card("In Progress", s.InProgress, th.Medium),
		card("Overdue", s.Overdue, th.Overdue),
	)
}

// FilterBar renders every filter with its badge count, highlighting active.
func (th Theme) FilterBar(active view.Filter, counts map[view.Filter]int) string {
	parts := make([]string, 0, len(view.Filters))
	for _, opt := range view.Filters {
		text := fmt.Sprintf("%s (%d)", opt.Label, counts[opt.ID])
		style := lipgloss.NewStyle().Padding(0, 1).Foreground(th.Faint)
		if opt.ID == active {
			style = style.Foreground(th.Text).Background(th.Accent).Bold(true)
		}
		parts = append(parts, style.Render(text))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// DueLabel describes how far away the due date is.
func DueLabel(t model.Task, today model.Date) string {
	days, ok := overdue.DaysUntilDue(t, today)
	switch {
	case !ok:
		return "No due date"
	case t.Status == model.COMPLETED:
		return "Due " + t.DueDate
	case days == 0:
		return "Due today"
	case days == 1:
		return "1 day left"
	case days > 1:
		return fmt.Sprintf("%d days left", days)
	case days == -1:
		return "1 day overdue"
	}
	return fmt.Sprintf("%d days overdue", -days)
}

// TaskCard renders a single task with a priority colored left border.
func (th Theme) TaskCard(t model.Task, today model.Date) string {
	var b strings.Builder

	check := "○"
	if t.Status == model.COMPLETED {
		check = "✓"
	}
	title := lipgloss.NewStyle().Bold(true).Foreground(th.Text)
	if t.Status == model.COMPLETED {
		title = title.Strikethrough(true).Foreground(th.Faint)
	}
	b.WriteString(check + " " + title.Render(t.Title))

	if t.Description != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(th.Faint).Render(t.Description))
	}

	badge := func(text string, color lipgloss.Color) string {
		return lipgloss.NewStyle().Foreground(color).Render("[" + text + "]")
	}
	b.WriteString("\n")
	b.WriteString(badge(string(t.Priority), th.priorityColor(t.Priority)))
	b.WriteString(" ")
	b.WriteString(badge(string(t.Status), th.statusColor(t.Status)))

	dueStyle := lipgloss.NewStyle().Foreground(th.Faint)
	if overdue.IsOverdue(t, today) {
		dueStyle = dueStyle.Foreground(th.Overdue).Bold(true)
	}
	b.WriteString(" ")
	b.WriteString(dueStyle.Render(DueLabel(t, today)))

	if t.Assignee != "" {
		b.WriteString("\n@" + t.Assignee)
	}
	if len(t.Tags) > 0 {
		tags := make([]string, len(t.Tags))
		for i, tag := range t.Tags {
			tags[i] = "#" + tag
		}
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(th.Accent).Render(strings.Join(tags, " ")))
	}
	if len(t.SharedWith) > 0 {
		b.WriteString("\nshared with " + strings.Join(t.SharedWith, ", "))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(th.priorityColor(t.Priority)).
		PaddingLeft(1).
		Width(cardWidth).
		Render(b.String())
}

// EmptyState is shown when the board has no tasks at all.
func (th Theme) EmptyState() string {
	return lipgloss.NewStyle().Foreground(th.Faint).Render(
		"No tasks yet\nGet started by creating your first task",
	)
}

// Board renders stats, filter bar and the visible task cards.
func (th Theme) Board(v view.View, state view.State, today model.Date) string {
	sections := []string{th.StatsCards(v.Stats), th.FilterBar(state.Filter, v.Counts)}

	switch {
	case v.Stats.Total == 0:
		sections = append(sections, th.EmptyState())
	case len(v.Tasks) == 0:
		sections = append(sections, lipgloss.NewStyle().Foreground(th.Faint).Render("No tasks match"))
	default:
		for _, t := range v.Tasks {
			sections = append(sections, th.TaskCard(t, today))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
