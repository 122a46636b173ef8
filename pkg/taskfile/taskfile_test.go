package taskfile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harrisonrobin/taskflow/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSONArray(t *testing.T) {
	input := `[
		{
			"id": "1",
			"title": "Buy milk",
			"description": "Don't forget almond milk",
			"priority": "low",
			"status": "todo",
			"dueDate": "2023-01-01",
			"assignee": "Sam",
			"tags": ["buy", "food"],
			"sharedWith": ["pat@example.com"]
		}
	]`

	tasks, err := Decode(strings.NewReader(input), JSON)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	task := tasks[0]
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, model.LOW, task.Priority)
	assert.Equal(t, model.TODO, task.Status)
	assert.Equal(t, []string{"buy", "food"}, task.Tags)
	assert.Equal(t, []string{"pat@example.com"}, task.SharedWith)
	_, ok := task.Due()
	assert.True(t, ok)
}

func TestDecodeJSONStream(t *testing.T) {
	input := `{"id": "1", "title": "one", "priority": "low", "status": "todo"}
{"id": "2", "title": "two", "priority": "high", "status": "completed"}`

	tasks, err := Decode(strings.NewReader(input), JSON)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "2", tasks[1].ID)
}

func TestDecodeEmpty(t *testing.T) {
	tasks, err := Decode(strings.NewReader("  \n"), JSON)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	tasks, err = Decode(strings.NewReader(""), YAML)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestDecodeJSONC(t *testing.T) {
	input := `[
		// shared with the design team
		{"id": "a", "title": "Mockups", "priority": "medium", "status": "in-progress",},
	]`
	tasks, err := Decode(strings.NewReader(input), JSONC)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, model.IN_PROGRESS, tasks[0].Status)
}

func TestDecodeYAML(t *testing.T) {
	input := `
- id: "1"
  title: Plan offsite
  priority: high
  status: todo
  dueDate: "2025-02-01"
  tags: [team, travel]
`
	tasks, err := Decode(strings.NewReader(input), YAML)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Plan offsite", tasks[0].Title)
	assert.Equal(t, "2025-02-01", tasks[0].DueDate)
	assert.Equal(t, []string{"team", "travel"}, tasks[0].Tags)
}

func TestDecodeKeepsInvalidTasks(t *testing.T) {
	input := `[{"id": "1", "title": "odd", "priority": "urgent", "status": "todo"}]`
	tasks, err := Decode(strings.NewReader(input), JSON)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, model.Priority("urgent"), tasks[0].Priority)
}

func TestDecodeRejectsDuplicateIDs(t *testing.T) {
	input := `[{"id": "1", "title": "a"}, {"id": "1", "title": "b"}]`
	_, err := Decode(strings.NewReader(input), JSON)
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestLoadPicksFormatByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.yml")
	require.NoError(t, os.WriteFile(path, []byte("- id: x\n  title: From yaml\n  priority: low\n  status: todo\n"), 0600))

	tasks, err := Load(path)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "From yaml", tasks[0].Title)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestEncodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, Sample()))

	tasks, err := Decode(&buf, JSON)
	require.NoError(t, err)
	assert.Equal(t, Sample(), tasks)
}

func TestSampleIsValid(t *testing.T) {
	for _, task := range Sample() {
		assert.NoError(t, task.Validate(), task.ID)
	}
}

func TestDecodeOrg(t *testing.T) {
	input := `#+TITLE: Board
* TODO [#A] Complete project proposal :work:urgent:
  DEADLINE: <2025-01-08 Wed>
  :PROPERTIES:
  :ID: 1
  :ASSIGNEE: John Doe
  :SHARED_WITH: jane@example.com, pat@example.com
  :END:
  Finish the Q4 project proposal.
* Notes
  not a task
** STARTED Review design mockups
* DONE [#C] Update documentation :docs:
  :PROPERTIES:
  :ID: 3
  :END:
`
	tasks, err := Decode(strings.NewReader(input), Org)
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	first := tasks[0]
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "Complete project proposal", first.Title)
	assert.Equal(t, "Finish the Q4 project proposal.", first.Description)
	assert.Equal(t, model.HIGH, first.Priority)
	assert.Equal(t, model.TODO, first.Status)
	assert.Equal(t, "2025-01-08", first.DueDate)
	assert.Equal(t, "John Doe", first.Assignee)
	assert.Equal(t, []string{"work", "urgent"}, first.Tags)
	assert.Equal(t, []string{"jane@example.com", "pat@example.com"}, first.SharedWith)

	second := tasks[1]
	assert.Equal(t, "L12", second.ID)
	assert.Equal(t, model.MEDIUM, second.Priority)
	assert.Equal(t, model.IN_PROGRESS, second.Status)
	assert.Empty(t, second.DueDate)

	assert.Equal(t, model.COMPLETED, tasks[2].Status)
	assert.Equal(t, model.LOW, tasks[2].Priority)
	assert.Equal(t, []string{"docs"}, tasks[2].Tags)
	assert.Equal(t, Org, FormatOf("board.org"))
}
