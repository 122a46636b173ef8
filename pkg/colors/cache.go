package colors

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/harrisonrobin/taskflow/pkg/logging"
)

const (
	cacheFile = "assignee_colors.json"

	// Google Calendar event colors 1 through 11.
	paletteSize = 11
	// Graphite, for tasks nobody owns.
	unassignedColor = "8"
)

type AssigneeState struct {
	ColorID  string    `json:"color_id"`
	LastUsed time.Time `json:"last_used"`
}

// ColorCache gives each assignee a stable calendar color. When all colors
// are taken the least recently used assignee gives theirs up.
type ColorCache struct {
	Path      string
	Assignees map[string]*AssigneeState
	now       func() time.Time
	dirty     bool
}

func NewColorCache(dir string) (*ColorCache, error) {
	cache := &ColorCache{
		Path:      filepath.Join(dir, cacheFile),
		Assignees: make(map[string]*AssigneeState),
		now:       time.Now,
	}

	if _, err := os.Stat(cache.Path); err == nil {
		if err := cache.Load(); err != nil {
			return nil, err
		}
	}
	return cache, nil
}

func (c *ColorCache) Load() error {
	f, err := os.Open(c.Path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(&c.Assignees)
}

func (c *ColorCache) Save() error {
	if !c.dirty {
		return nil
	}
	dir := filepath.Dir(c.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		logging.Logger.Errorf("error creating color cache directory: %v", err)
		return err
	}

	f, err := os.Create(c.Path)
	if err != nil {
		logging.Logger.Errorf("error creating color cache file: %v", err)
		return err
	}
	defer f.Close()
	err = json.NewEncoder(f).Encode(c.Assignees)
	if err == nil {
		c.dirty = false
	}
	return err
}

// ColorID returns the color for assignee, assigning one if needed.
func (c *ColorCache) ColorID(assignee string) string {
	if assignee == "" {
		return unassignedColor
	}

	if state, exists := c.Assignees[assignee]; exists {
		state.LastUsed = c.now()
		c.dirty = true
		return state.ColorID
	}
	return c.assignColor(assignee)
}

func (c *ColorCache) assignColor(assignee string) string {
	used := make(map[string]bool)
	for _, s := range c.Assignees {
		used[s.ColorID] = true
	}

	for i := 1; i <= paletteSize; i++ {
		id := strconv.Itoa(i)
		if !used[id] {
			c.Assignees[assignee] = &AssigneeState{ColorID: id, LastUsed: c.now()}
			c.dirty = true
			return id
		}
	}

	// Full: take the color of whoever was used longest ago.
	var oldest string
	var oldestTime time.Time
	for name, s := range c.Assignees {
		if oldest == "" || s.LastUsed.Before(oldestTime) {
			oldest = name
			oldestTime = s.LastUsed
		}
	}

	recycled := c.Assignees[oldest].ColorID
	delete(c.Assignees, oldest)
	c.Assignees[assignee] = &AssigneeState{ColorID: recycled, LastUsed: c.now()}
	c.dirty = true
	return recycled
}
