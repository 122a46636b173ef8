package overdue

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/harrisonrobin/taskflow/pkg/model"
)

const tableFile = "pending_tasks.json"

// Entry is an open task that has a calendar event waiting to be flagged
// once the task becomes overdue.
type Entry struct {
	TaskID  string     `json:"task_id"`
	EventID string     `json:"event_id"`
	Summary string     `json:"summary"`
	Due     model.Date `json:"due"`
}

type Table struct {
	Entries map[string]Entry `json:"entries"`
	Path    string           `json:"-"`
	dirty   bool
}

// NewTable opens the table stored in dir, starting empty if none exists.
func NewTable(dir string) (*Table, error) {
	t := &Table{
		Path:    filepath.Join(dir, tableFile),
		Entries: make(map[string]Entry),
	}

	if _, err := os.Stat(t.Path); err == nil {
		if err := t.Load(); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func (t *Table) Load() error {
	f, err := os.Open(t.Path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(t); err != nil {
		return err
	}
	if t.Entries == nil {
		t.Entries = make(map[string]Entry)
	}
	return nil
}

func (t *Table) Save() error {
	if !t.dirty {
		return nil
	}
	dir := filepath.Dir(t.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	f, err := os.Create(t.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	err = encoder.Encode(t)
	if err == nil {
		t.dirty = false
	}
	return err
}

// Track records an open task with a parseable due date. Completed tasks and
// tasks without a usable due date are removed instead.
func (t *Table) Track(task model.Task, eventID string, today model.Date) {
	due, ok := task.Due()
	if !ok || !open(task) || due.Before(today) {
		t.Remove(task.ID)
		return
	}
	old, exists := t.Entries[task.ID]
	if !exists || !old.Due.Equal(due) || old.EventID != eventID || old.Summary != task.Title {
		t.Entries[task.ID] = Entry{
			TaskID:  task.ID,
			EventID: eventID,
			Summary: task.Title,
			Due:     due,
		}
		t.dirty = true
	}
}

func (t *Table) Remove(taskID string) {
	if _, exists := t.Entries[taskID]; exists {
		delete(t.Entries, taskID)
		t.dirty = true
	}
}

// Sweep returns entries whose due date is before today and removes them.
func (t *Table) Sweep(today model.Date) []Entry {
	var swept []Entry
	for id, entry := range t.Entries {
		if entry.Due.Before(today) {
			swept = append(swept, entry)
			delete(t.Entries, id)
			t.dirty = true
		}
	}
	return swept
}
