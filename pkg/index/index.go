package index

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

const indexFile = "events.json"

// EventIndex remembers which calendar event belongs to which task so a sync
// can skip the search query.
type EventIndex struct {
	Mappings map[string]string `json:"mappings"`
	Path     string            `json:"-"`
	mu       sync.Mutex
	dirty    bool
}

func NewEventIndex(dir string) (*EventIndex, error) {
	idx := &EventIndex{
		Mappings: make(map[string]string),
		Path:     filepath.Join(dir, indexFile),
	}

	if _, err := os.Stat(idx.Path); err == nil {
		if err := idx.Load(); err != nil {
			return nil, err
		}
	}
	return idx, nil
}

func (idx *EventIndex) Load() error {
	f, err := os.Open(idx.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	idx.mu.Lock()
	defer idx.mu.Unlock()
	return json.NewDecoder(f).Decode(&idx.Mappings)
}

func (idx *EventIndex) Save() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if !idx.dirty {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(idx.Path), 0700); err != nil {
		return err
	}
	f, err := os.Create(idx.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(idx.Mappings); err != nil {
		return err
	}
	idx.dirty = false
	return nil
}

func (idx *EventIndex) Get(taskID string) string {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.Mappings[taskID]
}

func (idx *EventIndex) Set(taskID, eventID string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if idx.Mappings[taskID] != eventID {
		idx.Mappings[taskID] = eventID
		idx.dirty = true
	}
}

func (idx *EventIndex) Remove(taskID string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if _, exists := idx.Mappings[taskID]; exists {
		delete(idx.Mappings, taskID)
		idx.dirty = true
	}
}

// Prune drops every mapping whose task keep rejects and returns them,
// ordered by task id, so their events can be deleted.
func (idx *EventIndex) Prune(keep func(taskID string) bool) []Mapping {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	var pruned []Mapping
	for taskID, eventID := range idx.Mappings {
		if keep(taskID) {
			continue
		}
		pruned = append(pruned, Mapping{TaskID: taskID, EventID: eventID})
		delete(idx.Mappings, taskID)
		idx.dirty = true
	}
	sort.Slice(pruned, func(i, j int) bool { return pruned[i].TaskID < pruned[j].TaskID })
	return pruned
}

type Mapping struct {
	TaskID  string
	EventID string
}
