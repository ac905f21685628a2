// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

package workspace

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"
)

// All is the filter value meaning "no restriction".
const All = "all"

// TaskSort is a task list ordering.
type TaskSort string

const (
	SortTaskTitle    TaskSort = "title"
	SortTaskPriority TaskSort = "priority"
	SortTaskDueDate  TaskSort = "dueDate"
	SortTaskStatus   TaskSort = "status"
)

// TaskFilter narrows and orders a task list. Empty or "all" fields do not filter;
// ProjectID zero means any project.
type TaskFilter struct {
	Search    string
	Status    string
	Priority  string
	ProjectID int64
	Sort      TaskSort
}

// DefaultTaskFilter is what a reset restores.
func DefaultTaskFilter() TaskFilter {
	return TaskFilter{Status: All, Priority: All, Sort: SortTaskDueDate}
}

// ParseTaskFilter reads a filter from query parameters: search, status, priority,
// project and sort. Unknown sort keys fall back to the default.
func ParseTaskFilter(q url.Values) TaskFilter {
	f := DefaultTaskFilter()
	f.Search = q.Get("search")
	if v := q.Get("status"); v != "" {
		f.Status = v
	}
	if v := q.Get("priority"); v != "" {
		f.Priority = v
	}
	if v := q.Get("project"); v != "" && v != All {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			f.ProjectID = id
		}
	}
	switch s := TaskSort(q.Get("sort")); s {
	case SortTaskTitle, SortTaskPriority, SortTaskDueDate, SortTaskStatus:
		f.Sort = s
	}
	return f
}

// IsDefault reports whether f restricts or reorders nothing.
func (f TaskFilter) IsDefault() bool {
	return f == DefaultTaskFilter()
}

var priorityRank = map[Priority]int{PriorityHigh: 3, PriorityMedium: 2, PriorityLow: 1}

var statusRank = map[TaskStatus]int{StatusTodo: 1, StatusInProgress: 2, StatusReview: 3, StatusDone: 4}

// FilterTasks returns the tasks matching f in f's order. The input is not modified.
func FilterTasks(tasks []Task, f TaskFilter) []Task {
	query := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if active(f.Status) && string(t.Status) != f.Status {
			continue
		}
		if active(f.Priority) && string(t.Priority) != f.Priority {
			continue
		}
		if f.ProjectID != 0 && t.ProjectID != f.ProjectID {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(t.Title), query) &&
			!strings.Contains(strings.ToLower(t.ProjectName), query) {
			continue
		}
		out = append(out, t)
	}

	slices.SortStableFunc(out, func(a, b Task) int {
		switch f.Sort {
		case SortTaskTitle:
			return compareText(a.Title, b.Title)
		case SortTaskPriority:
			return priorityRank[b.Priority] - priorityRank[a.Priority]
		case SortTaskStatus:
			return statusRank[a.Status] - statusRank[b.Status]
		default:
			return compareDue(a.DueDate, b.DueDate)
		}
	})
	return out
}

// GroupTasks buckets tasks by status. Every status has an entry.
func GroupTasks(tasks []Task) map[TaskStatus][]Task {
	groups := make(map[TaskStatus][]Task, len(TaskStatuses))
	for _, s := range TaskStatuses {
		groups[s] = []Task{}
	}
	for _, t := range tasks {
		groups[t.Status] = append(groups[t.Status], t)
	}
	return groups
}

// TaskStats summarizes a task list.
type TaskStats struct {
	All          int
	Todo         int
	InProgress   int
	Review       int
	Done         int
	HighPriority int
	Overdue      int
}

// TaskStatsOf counts tasks. A task is overdue when its due date is before the day
// containing now and it is not done.
func TaskStatsOf(tasks []Task, now time.Time) TaskStats {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	var s TaskStats
	s.All = len(tasks)
	for _, t := range tasks {
		switch t.Status {
		case StatusTodo:
			s.Todo++
		case StatusInProgress:
			s.InProgress++
		case StatusReview:
			s.Review++
		case StatusDone:
			s.Done++
		}
		if t.Priority == PriorityHigh {
			s.HighPriority++
		}
		if due, ok := ParseDue(t.DueDate); ok && due.Before(today) && t.Status != StatusDone {
			s.Overdue++
		}
	}
	return s
}

// CountTasks tallies tasks per status.
func CountTasks(tasks []Task) TasksCount {
	s := TaskStatsOf(tasks, time.Time{})
	return TasksCount{Todo: s.Todo, InProgress: s.InProgress, Review: s.Review, Done: s.Done}
}

// ProjectSort is a project list ordering.
type ProjectSort string

const (
	SortProjectName     ProjectSort = "name"
	SortProjectProgress ProjectSort = "progress"
	SortProjectDueDate  ProjectSort = "dueDate"
)

type ProjectFilter struct {
	Search string
	Type   string
	Status string
	Sort   ProjectSort
}

func DefaultProjectFilter() ProjectFilter {
	return ProjectFilter{Type: All, Status: All, Sort: SortProjectName}
}

// ParseProjectFilter reads search, type, status and sort from query parameters.
func ParseProjectFilter(q url.Values) ProjectFilter {
	f := DefaultProjectFilter()
	f.Search = q.Get("search")
	if v := q.Get("type"); v != "" {
		f.Type = v
	}
	if v := q.Get("status"); v != "" {
		f.Status = v
	}
	switch s := ProjectSort(q.Get("sort")); s {
	case SortProjectName, SortProjectProgress, SortProjectDueDate:
		f.Sort = s
	}
	return f
}

func (f ProjectFilter) IsDefault() bool {
	return f == DefaultProjectFilter()
}

// FilterProjects returns the projects matching f in f's order.
func FilterProjects(projects []Project, f ProjectFilter) []Project {
	query := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if active(f.Type) && string(p.Type) != f.Type {
			continue
		}
		if active(f.Status) && string(p.Status) != f.Status {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		out = append(out, p)
	}

	slices.SortStableFunc(out, func(a, b Project) int {
		switch f.Sort {
		case SortProjectProgress:
			return b.Progress - a.Progress
		case SortProjectDueDate:
			return compareDue(a.DueDate, b.DueDate)
		default:
			return compareText(a.Name, b.Name)
		}
	})
	return out
}

type ProjectStats struct {
	All         int
	Development int
	Maintenance int
	Active      int
	Completed   int
	OnHold      int
}

func ProjectStatsOf(projects []Project) ProjectStats {
	s := ProjectStats{All: len(projects)}
	for _, p := range projects {
		switch p.Type {
		case TypeDevelopment:
			s.Development++
		case TypeMaintenance:
			s.Maintenance++
		}
		switch p.Status {
		case ProjectActive:
			s.Active++
		case ProjectCompleted:
			s.Completed++
		case ProjectOnHold:
			s.OnHold++
		}
	}
	return s
}

func active(v string) bool { return v != "" && v != All }

func compareText(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// compareDue orders by date; unparsable dates sort last.
func compareDue(a, b string) int {
	ta, okA := ParseDue(a)
	tb, okB := ParseDue(b)
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return 1
	case !okB:
		return -1
	}
	return ta.Compare(tb)
}
