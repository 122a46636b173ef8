package view

import (
	"testing"
	"time"

	"github.com/harrisonrobin/taskflow/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = model.Date{Year: 2025, Month: time.January, Day: 10}

func ids(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func board() []model.Task {
	return []model.Task{
		{ID: "1", Title: "Complete project proposal", Description: "Finish the Q4 project proposal", Priority: model.HIGH, Status: model.IN_PROGRESS, DueDate: "2025-01-08", Tags: []string{"work", "urgent"}},
		{ID: "2", Title: "Review design mockups", Description: "Check the new UI designs", Priority: model.MEDIUM, Status: model.TODO, DueDate: "2025-01-10", Tags: []string{"design", "review"}},
		{ID: "3", Title: "Update documentation", Description: "Update the API documentation", Priority: model.LOW, Status: model.COMPLETED, DueDate: "2025-01-05", Tags: []string{"docs"}},
		{ID: "4", Title: "Plan offsite", Priority: model.LOW, Status: model.TODO, DueDate: "2025-02-01"},
		{ID: "5", Title: "Broken record", Priority: "critical", Status: model.TODO, DueDate: "2025-01-01"},
		{ID: "6", Title: "Odd status", Priority: model.HIGH, Status: "blocked", DueDate: "2025-01-10"},
		{ID: "7", Title: "Bad date", Priority: model.HIGH, Status: model.TODO, DueDate: "01/02/2025"},
	}
}

func TestAllWithEmptyQueryIsIdentity(t *testing.T) {
	tasks := board()
	assert.Equal(t, tasks, Visible(tasks, ALL, "", today))
}

func TestFilterBuckets(t *testing.T) {
	tasks := board()
	cases := []struct {
		filter Filter
		want   []string
	}{
		{ALL, []string{"1", "2", "3", "4", "5", "6", "7"}},
		{TODAY, []string{"2"}},
		{OVERDUE, []string{"1"}},
		{IN_PROGRESS, []string{"1"}},
		{COMPLETED, []string{"3"}},
		{Filter("someday"), []string{}},
	}
	for _, tc := range cases {
		t.Run(string(tc.filter), func(t *testing.T) {
			assert.Equal(t, tc.want, ids(Visible(tasks, tc.filter, "", today)))
		})
	}
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	tasks := board()
	assert.Equal(t, []string{"3"}, ids(Visible(tasks, ALL, "doc", today)))
	assert.Equal(t, []string{"3"}, ids(Visible(tasks, ALL, "DOCUMENTATION", today)))
	// description
	assert.Equal(t, []string{"1"}, ids(Visible(tasks, ALL, "q4", today)))
	// tag
	assert.Equal(t, []string{"1"}, ids(Visible(tasks, ALL, "Urgent", today)))
	assert.Empty(t, Visible(tasks, ALL, "nothing like this", today))
}

func TestSearchAndFilterCombine(t *testing.T) {
	tasks := board()
	assert.Equal(t, []string{"2"}, ids(Visible(tasks, TODAY, "review", today)))
	assert.Empty(t, Visible(tasks, COMPLETED, "review", today))
}

func TestStats(t *testing.T) {
	s := ComputeStats(board(), today)
	assert.Equal(t, Stats{Total: 7, Completed: 1, InProgress: 1, Overdue: 2}, s)
}

func TestStatsInvariants(t *testing.T) {
	tasks := board()
	s := ComputeStats(tasks, today)
	assert.Equal(t, len(tasks), s.Total)

	notCompleted := 0
	for _, task := range tasks {
		if task.Status != model.COMPLETED {
			notCompleted++
		}
	}
	assert.Equal(t, s.Total, s.Completed+notCompleted)
}

func TestStatsIgnoreSelection(t *testing.T) {
	tasks := board()
	a := Recompute(tasks, ALL, "", today)
	b := Recompute(tasks, COMPLETED, "docs", today)
	assert.Equal(t, a.Stats, b.Stats)
	assert.Equal(t, a.Counts, b.Counts)
}

func TestCountByFilter(t *testing.T) {
	counts := CountByFilter(board(), today)
	assert.Equal(t, map[Filter]int{
		ALL:         7,
		TODAY:       1,
		OVERDUE:     1,
		IN_PROGRESS: 1,
		COMPLETED:   1,
	}, counts)
}

func TestRecomputeIsIdempotent(t *testing.T) {
	tasks := board()
	first := Recompute(tasks, OVERDUE, "proposal", today)
	second := Recompute(tasks, OVERDUE, "proposal", today)
	assert.Equal(t, first, second)
	assert.Equal(t, board(), tasks, "input must not be modified")
}

func TestScenarioOverdueAndCompleted(t *testing.T) {
	tasks := []model.Task{
		{ID: "1", Title: "one", Priority: model.LOW, Status: model.COMPLETED, DueDate: "2025-01-05"},
		{ID: "2", Title: "two", Priority: model.LOW, Status: model.TODO, DueDate: "2025-01-08"},
	}

	v := Recompute(tasks, ALL, "", today)
	assert.Equal(t, 1, v.Stats.Overdue)
	assert.Equal(t, 1, v.Stats.Completed)

	v = Recompute(tasks, COMPLETED, "", today)
	assert.Equal(t, []string{"1"}, ids(v.Tasks))
}

func TestScenarioTitleSearch(t *testing.T) {
	tasks := []model.Task{
		{ID: "a", Title: "Update documentation", Priority: model.LOW, Status: model.TODO, DueDate: "2025-03-01"},
		{ID: "b", Title: "Refactor parser", Priority: model.LOW, Status: model.TODO, DueDate: "2025-03-01"},
	}
	v := Recompute(tasks, ALL, "doc", today)
	assert.Equal(t, []string{"a"}, ids(v.Tasks))
}

func TestEmptyCollection(t *testing.T) {
	v := Recompute(nil, ALL, "", today)
	assert.Empty(t, v.Tasks)
	assert.NotNil(t, v.Tasks)
	assert.Equal(t, Stats{}, v.Stats)
	for _, opt := range Filters {
		assert.Zero(t, v.Counts[opt.ID])
	}
}

func TestOverdueProperty(t *testing.T) {
	tasks := board()
	s := ComputeStats(tasks, today)

	want := 0
	for _, task := range tasks {
		due, ok := task.Due()
		if ok && due.Before(today) && task.Status != model.COMPLETED {
			want++
		}
	}
	assert.Equal(t, want, s.Overdue)
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("")
	require.NoError(t, err)
	assert.Equal(t, ALL, f)

	f, err = ParseFilter("in-progress")
	require.NoError(t, err)
	assert.Equal(t, IN_PROGRESS, f)

	_, err = ParseFilter("later")
	assert.ErrorIs(t, err, ErrUnknownFilter)

	assert.Equal(t, "Due Today", TODAY.Label())
}

func TestState(t *testing.T) {
	s := DefaultState()
	assert.Equal(t, ALL, s.Filter)

	s = s.SelectFilter(COMPLETED).Search("doc")
	assert.Equal(t, State{Filter: COMPLETED, Query: "doc"}, s)

	s = s.SelectFilter(Filter("bogus"))
	assert.Equal(t, COMPLETED, s.Filter)

	v := s.Apply(board(), today)
	assert.Equal(t, []string{"3"}, ids(v.Tasks))
}

func TestUnknownStatusCountsAsOverdueButIsNotListed(t *testing.T) {
	tasks := []model.Task{
		{ID: "x", Title: "Stuck", Priority: model.HIGH, Status: "blocked", DueDate: "2025-01-02"},
	}
	v := Recompute(tasks, OVERDUE, "", today)
	assert.Equal(t, 1, v.Stats.Overdue)
	assert.Empty(t, v.Tasks)
	assert.Equal(t, 0, v.Counts[OVERDUE])
	assert.Equal(t, 1, v.Counts[ALL])
}
