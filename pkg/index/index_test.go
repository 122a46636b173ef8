package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventIndexPersists(t *testing.T) {
	dir := t.TempDir()
	idx, err := NewEventIndex(dir)
	require.NoError(t, err)

	idx.Set("t_1", "evt-1")
	idx.Set("t_2", "evt-2")
	idx.Remove("t_2")
	require.NoError(t, idx.Save())

	reloaded, err := NewEventIndex(dir)
	require.NoError(t, err)
	assert.Equal(t, "evt-1", reloaded.Get("t_1"))
	assert.Equal(t, "", reloaded.Get("t_2"))
}

func TestPruneReturnsDroppedMappings(t *testing.T) {
	dir := t.TempDir()
	idx, err := NewEventIndex(dir)
	require.NoError(t, err)
	idx.Set("keep", "evt-1")
	idx.Set("gone-b", "evt-3")
	idx.Set("gone-a", "evt-2")
	require.NoError(t, idx.Save())

	pruned := idx.Prune(func(taskID string) bool { return taskID == "keep" })
	assert.Equal(t, []Mapping{{"gone-a", "evt-2"}, {"gone-b", "evt-3"}}, pruned)
	assert.Equal(t, "evt-1", idx.Get("keep"))

	require.NoError(t, idx.Save())
	reloaded, err := NewEventIndex(dir)
	require.NoError(t, err)
	assert.Len(t, reloaded.Mappings, 1)

	assert.Empty(t, idx.Prune(func(string) bool { return true }))
}
