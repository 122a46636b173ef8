// Package draft holds the state of the "new task" form and turns it into a
// model.Task once submitted.
package draft

import (
	"errors"
	"fmt"
	"net/mail"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/harrisonrobin/taskflow/pkg/model"
)

var ErrInvalidEmail = errors.New("invalid email address")

type Draft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"`
	DueDate     string   `json:"dueDate"`
	Assignee    string   `json:"assignee"`
	Tags        []string `json:"tags"`
	SharedWith  []string `json:"sharedWith"`
}

// NewID returns a fresh task id.
func NewID() string {
	return "t_" + uuid.New().String()
}

// AddTag appends a trimmed tag. It reports false for blank or repeated tags.
func (d *Draft) AddTag(tag string) bool {
	tag = strings.TrimSpace(tag)
	if tag == "" || slices.Contains(d.Tags, tag) {
		return false
	}
	d.Tags = append(d.Tags, tag)
	return true
}

func (d *Draft) RemoveTag(tag string) {
	d.Tags = slices.DeleteFunc(d.Tags, func(s string) bool { return s == tag })
}

// SetSharedWith parses a comma separated list of addresses, as typed into
// the form. Blank entries are skipped and repeats collapsed.
func (d *Draft) SetSharedWith(text string) error {
	var out []string
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		addr, err := mail.ParseAddress(part)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidEmail, part)
		}
		if !slices.Contains(out, addr.Address) {
			out = append(out, addr.Address)
		}
	}
	d.SharedWith = out
	return nil
}

// Reset clears the form.
func (d *Draft) Reset() {
	*d = Draft{}
}

// Build validates the form and returns the new task with status TODO. A
// blank priority becomes MEDIUM. newID is called only when the form is
// valid; nil means NewID.
func (d *Draft) Build(newID func() string) (model.Task, error) {
	priority := model.MEDIUM
	if strings.TrimSpace(d.Priority) != "" {
		p, err := model.ParsePriority(d.Priority)
		if err != nil {
			return model.Task{}, err
		}
		priority = p
	}

	tags := make([]string, 0, len(d.Tags))
	for _, tag := range d.Tags {
		tag = strings.TrimSpace(tag)
		if tag != "" && !slices.Contains(tags, tag) {
			tags = append(tags, tag)
		}
	}

	shared := Draft{}
	if err := shared.SetSharedWith(strings.Join(d.SharedWith, ",")); err != nil {
		return model.Task{}, err
	}
	if shared.SharedWith == nil {
		shared.SharedWith = []string{}
	}

	task := model.Task{
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		Priority:    priority,
		Status:      model.TODO,
		DueDate:     strings.TrimSpace(d.DueDate),
		Assignee:    strings.TrimSpace(d.Assignee),
		Tags:        tags,
		SharedWith:  shared.SharedWith,
	}
	if err := task.Validate(); err != nil {
		return model.Task{}, err
	}

	if newID == nil {
		newID = NewID
	}
	task.ID = newID()
	return task, nil
}
