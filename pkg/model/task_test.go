package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsUnknownEnums(t *testing.T) {
	_, err := New("1", "Write report", "", Priority("urgent"), TODO, "2025-01-08")
	assert.ErrorIs(t, err, ErrInvalidPriority)

	_, err = New("1", "Write report", "", HIGH, Status("blocked"), "2025-01-08")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = New("1", "  ", "", HIGH, TODO, "2025-01-08")
	assert.ErrorIs(t, err, ErrEmptyTitle)

	_, err = New("1", "Write report", "", HIGH, TODO, "next tuesday")
	assert.ErrorIs(t, err, ErrInvalidDueDate)

	task, err := New("1", "Write report", "", HIGH, TODO, "2025-01-08")
	require.NoError(t, err)
	assert.Equal(t, "Write report", task.Title)
}

func TestParseEnums(t *testing.T) {
	p, err := ParsePriority(" High ")
	require.NoError(t, err)
	assert.Equal(t, HIGH, p)

	s, err := ParseStatus("IN-PROGRESS")
	require.NoError(t, err)
	assert.Equal(t, IN_PROGRESS, s)

	_, err = ParseStatus("done")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestDue(t *testing.T) {
	task := Task{DueDate: "2025-01-08"}
	d, ok := task.Due()
	require.True(t, ok)
	assert.Equal(t, Date{2025, time.January, 8}, d)

	task.DueDate = "2025-01-08T23:30:00+02:00"
	d, ok = task.Due()
	require.True(t, ok)
	assert.Equal(t, Date{2025, time.January, 8}, d)

	task.DueDate = "soon"
	_, ok = task.Due()
	assert.False(t, ok)

	task.DueDate = ""
	_, ok = task.Due()
	assert.False(t, ok)
}

func TestDateArithmetic(t *testing.T) {
	a := Date{2024, time.February, 28}
	b := a.AddDays(2)
	assert.Equal(t, Date{2024, time.March, 1}, b)
	assert.Equal(t, 2, a.DaysUntil(b))
	assert.Equal(t, -2, b.DaysUntil(a))
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.True(t, a.Equal(Date{2024, time.February, 28}))
	assert.Equal(t, "2024-03-01", b.String())
}

func TestDateOfUsesLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	instant := time.Date(2025, time.January, 9, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, Date{2025, time.January, 9}, DateOf(instant))
	assert.Equal(t, Date{2025, time.January, 10}, DateOf(instant.In(tokyo)))
}

func TestToggleCompleted(t *testing.T) {
	task := Task{ID: "1", Status: IN_PROGRESS}
	done := task.ToggleCompleted()
	assert.Equal(t, COMPLETED, done.Status)
	assert.Equal(t, IN_PROGRESS, task.Status, "original must not change")
	assert.Equal(t, TODO, done.ToggleCompleted().Status)
}

func TestTags(t *testing.T) {
	task := Task{Tags: []string{"work"}}
	tagged := task.WithTag(" urgent ").WithTag("work").WithTag("")
	assert.Equal(t, []string{"work", "urgent"}, tagged.Tags)
	assert.Equal(t, []string{"work"}, task.Tags)

	untagged := tagged.WithoutTag("work")
	assert.Equal(t, []string{"urgent"}, untagged.Tags)
	assert.Equal(t, []string{"work", "urgent"}, tagged.Tags)
}
