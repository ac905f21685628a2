// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

package workspace

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(tasks []Task) []int64 {
	out := make([]int64, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestFilterTasks(t *testing.T) {
	tasks := SeedTasks()

	tests := []struct {
		name   string
		filter TaskFilter
		want   []int64
	}{
		{name: "default sorts by due date", filter: DefaultTaskFilter(), want: []int64{5, 4, 1, 2, 3, 7, 6, 8}},
		{name: "status", filter: TaskFilter{Status: "todo", Sort: SortTaskDueDate}, want: []int64{4, 3, 8}},
		{name: "priority", filter: TaskFilter{Priority: "high", Sort: SortTaskDueDate}, want: []int64{5, 4, 1}},
		{name: "project", filter: TaskFilter{ProjectID: 2, Sort: SortTaskDueDate}, want: []int64{4, 2, 8}},
		{name: "search matches project name", filter: TaskFilter{Search: "website", Sort: SortTaskDueDate}, want: []int64{5}},
		{name: "search matches title case-insensitively", filter: TaskFilter{Search: "OPTIMIZATION", Sort: SortTaskDueDate}, want: []int64{4, 8}},
		{name: "priority sort is high first and stable", filter: TaskFilter{Sort: SortTaskPriority}, want: []int64{1, 4, 5, 2, 6, 7, 3, 8}},
		{name: "status sort", filter: TaskFilter{Sort: SortTaskStatus}, want: []int64{3, 4, 8, 1, 6, 2, 7, 5}},
		{name: "title sort", filter: TaskFilter{Sort: SortTaskTitle}, want: []int64{6, 4, 2, 1, 8, 5, 3, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterTasks(tasks, tt.filter)))
		})
	}

	assert.Equal(t, SeedTasks(), tasks, "input must not be reordered")
}

func TestParseTaskFilter(t *testing.T) {
	q := url.Values{"status": {"review"}, "project": {"2"}, "sort": {"priority"}, "search": {"fix"}}
	f := ParseTaskFilter(q)
	assert.Equal(t, TaskFilter{Search: "fix", Status: "review", Priority: All, ProjectID: 2, Sort: SortTaskPriority}, f)

	f = ParseTaskFilter(url.Values{"sort": {"bogus"}, "project": {"all"}})
	assert.True(t, f.IsDefault())
}

func TestGroupTasks(t *testing.T) {
	groups := GroupTasks(FilterTasks(SeedTasks(), DefaultTaskFilter()))
	require.Len(t, groups, 4)
	assert.Equal(t, []int64{4, 3, 8}, ids(groups[StatusTodo]))
	assert.Equal(t, []int64{1, 6}, ids(groups[StatusInProgress]))
	assert.Equal(t, []int64{2, 7}, ids(groups[StatusReview]))
	assert.Equal(t, []int64{5}, ids(groups[StatusDone]))

	empty := GroupTasks(nil)
	assert.Empty(t, empty[StatusDone])
	assert.NotNil(t, empty[StatusDone])
}

func TestTaskStatsOf(t *testing.T) {
	now := time.Date(2025, 8, 13, 15, 0, 0, 0, time.UTC)
	s := TaskStatsOf(SeedTasks(), now)

	assert.Equal(t, TaskStats{All: 8, Todo: 3, InProgress: 2, Review: 2, Done: 1, HighPriority: 3, Overdue: 3}, s)
}

func TestFilterProjects(t *testing.T) {
	projects := SeedProjects()
	pids := func(ps []Project) []int64 {
		out := make([]int64, len(ps))
		for i, p := range ps {
			out[i] = p.ID
		}
		return out
	}

	assert.Equal(t, []int64{4, 1, 2, 3}, pids(FilterProjects(projects, DefaultProjectFilter())))
	assert.Equal(t, []int64{3, 1, 2, 4}, pids(FilterProjects(projects, ProjectFilter{Sort: SortProjectProgress})))
	assert.Equal(t, []int64{3, 2, 1, 4}, pids(FilterProjects(projects, ProjectFilter{Sort: SortProjectDueDate})))
	assert.Equal(t, []int64{2}, pids(FilterProjects(projects, ProjectFilter{Type: "maintenance"})))
	assert.Equal(t, []int64{1}, pids(FilterProjects(projects, ProjectFilter{Search: "commerce", Status: "active"})))

	f := ParseProjectFilter(url.Values{"type": {"development"}, "sort": {"progress"}})
	assert.Equal(t, ProjectFilter{Type: "development", Status: All, Sort: SortProjectProgress}, f)
}

func TestProjectStatsOf(t *testing.T) {
	assert.Equal(t,
		ProjectStats{All: 4, Development: 3, Maintenance: 1, Active: 2, Completed: 1, OnHold: 1},
		ProjectStatsOf(SeedProjects()))
}
