// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package workspace holds the projects and tasks a signed-in user works with:
// the models, list filtering/sorting/grouping, and the data sources behind them.
package workspace

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when a project or task does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalid is returned for input that fails validation.
	ErrInvalid = errors.New("invalid input")
)

// DateLayout is the format of due dates.
const DateLayout = "2006-01-02"

type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusReview     TaskStatus = "review"
	StatusDone       TaskStatus = "done"
)

// TaskStatuses lists statuses in board order.
var TaskStatuses = []TaskStatus{StatusTodo, StatusInProgress, StatusReview, StatusDone}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

type ProjectType string

const (
	TypeDevelopment ProjectType = "development"
	TypeMaintenance ProjectType = "maintenance"
)

var ProjectTypes = []ProjectType{TypeDevelopment, TypeMaintenance}

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectOnHold    ProjectStatus = "on-hold"
)

var ProjectStatuses = []ProjectStatus{ProjectActive, ProjectCompleted, ProjectOnHold}

// Task is one unit of work within a project.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	ProjectID   int64      `json:"projectId"`
	ProjectName string     `json:"projectName"`
	Status      TaskStatus `json:"status"`
	Priority    Priority   `json:"priority"`
	DueDate     string     `json:"dueDate"`
	Assignee    string     `json:"assignee,omitempty"`
}

// TasksCount is the per-status task tally shown on a project card.
type TasksCount struct {
	Todo       int `json:"todo"`
	InProgress int `json:"inProgress"`
	Review     int `json:"review"`
	Done       int `json:"done"`
}

// Total returns the sum of all buckets.
func (c TasksCount) Total() int { return c.Todo + c.InProgress + c.Review + c.Done }

type Project struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Type        ProjectType   `json:"type"`
	Status      ProjectStatus `json:"status"`
	Progress    int           `json:"progress"`
	DueDate     string        `json:"dueDate"`
	Description string        `json:"description,omitempty"`
	Client      string        `json:"client,omitempty"`
	Team        []string      `json:"team,omitempty"`
	TasksCount  TasksCount    `json:"tasksCount"`
}

// ProjectInput is the payload for creating a project.
type ProjectInput struct {
	Name        string        `json:"name"`
	Type        ProjectType   `json:"type"`
	Status      ProjectStatus `json:"status"`
	DueDate     string        `json:"dueDate"`
	Description string        `json:"description,omitempty"`
	Client      string        `json:"client,omitempty"`
	Team        []string      `json:"team,omitempty"`
}

// ProjectPatch updates only the fields that are set.
type ProjectPatch struct {
	Name        *string        `json:"name,omitempty"`
	Type        *ProjectType   `json:"type,omitempty"`
	Status      *ProjectStatus `json:"status,omitempty"`
	Progress    *int           `json:"progress,omitempty"`
	DueDate     *string        `json:"dueDate,omitempty"`
	Description *string        `json:"description,omitempty"`
	Client      *string        `json:"client,omitempty"`
}

// TaskInput is the payload for creating a task. ProjectName is filled from the
// project when left empty.
type TaskInput struct {
	Title       string     `json:"title"`
	ProjectID   int64      `json:"projectId"`
	ProjectName string     `json:"projectName,omitempty"`
	Status      TaskStatus `json:"status"`
	Priority    Priority   `json:"priority"`
	DueDate     string     `json:"dueDate"`
	Assignee    string     `json:"assignee,omitempty"`
}

// TaskPatch updates only the fields that are set.
type TaskPatch struct {
	Title    *string     `json:"title,omitempty"`
	Status   *TaskStatus `json:"status,omitempty"`
	Priority *Priority   `json:"priority,omitempty"`
	DueDate  *string     `json:"dueDate,omitempty"`
	Assignee *string     `json:"assignee,omitempty"`
}

// Validate checks required fields and enum values, applying defaults for an empty
// status.
func (in *ProjectInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: project name is required", ErrInvalid)
	}
	if in.Type == "" {
		in.Type = TypeDevelopment
	}
	if in.Status == "" {
		in.Status = ProjectActive
	}
	if !slices.Contains(ProjectTypes, in.Type) {
		return fmt.Errorf("%w: unknown project type %q", ErrInvalid, in.Type)
	}
	if !slices.Contains(ProjectStatuses, in.Status) {
		return fmt.Errorf("%w: unknown project status %q", ErrInvalid, in.Status)
	}
	return validDate(in.DueDate)
}

func (p ProjectPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return fmt.Errorf("%w: project name is required", ErrInvalid)
	}
	if p.Type != nil && !slices.Contains(ProjectTypes, *p.Type) {
		return fmt.Errorf("%w: unknown project type %q", ErrInvalid, *p.Type)
	}
	if p.Status != nil && !slices.Contains(ProjectStatuses, *p.Status) {
		return fmt.Errorf("%w: unknown project status %q", ErrInvalid, *p.Status)
	}
	if p.Progress != nil && (*p.Progress < 0 || *p.Progress > 100) {
		return fmt.Errorf("%w: progress must be between 0 and 100", ErrInvalid)
	}
	if p.DueDate != nil {
		return validDate(*p.DueDate)
	}
	return nil
}

// Apply copies the set fields onto dst.
func (p ProjectPatch) Apply(dst *Project) {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Type != nil {
		dst.Type = *p.Type
	}
	if p.Status != nil {
		dst.Status = *p.Status
	}
	if p.Progress != nil {
		dst.Progress = *p.Progress
	}
	if p.DueDate != nil {
		dst.DueDate = *p.DueDate
	}
	if p.Description != nil {
		dst.Description = *p.Description
	}
	if p.Client != nil {
		dst.Client = *p.Client
	}
}

func (in *TaskInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: task title is required", ErrInvalid)
	}
	if in.Status == "" {
		in.Status = StatusTodo
	}
	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	if !slices.Contains(TaskStatuses, in.Status) {
		return fmt.Errorf("%w: unknown task status %q", ErrInvalid, in.Status)
	}
	if !slices.Contains(Priorities, in.Priority) {
		return fmt.Errorf("%w: unknown priority %q", ErrInvalid, in.Priority)
	}
	return validDate(in.DueDate)
}

func (p TaskPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return fmt.Errorf("%w: task title is required", ErrInvalid)
	}
	if p.Status != nil && !slices.Contains(TaskStatuses, *p.Status) {
		return fmt.Errorf("%w: unknown task status %q", ErrInvalid, *p.Status)
	}
	if p.Priority != nil && !slices.Contains(Priorities, *p.Priority) {
		return fmt.Errorf("%w: unknown priority %q", ErrInvalid, *p.Priority)
	}
	if p.DueDate != nil {
		return validDate(*p.DueDate)
	}
	return nil
}

func (p TaskPatch) Apply(dst *Task) {
	if p.Title != nil {
		dst.Title = *p.Title
	}
	if p.Status != nil {
		dst.Status = *p.Status
	}
	if p.Priority != nil {
		dst.Priority = *p.Priority
	}
	if p.DueDate != nil {
		dst.DueDate = *p.DueDate
	}
	if p.Assignee != nil {
		dst.Assignee = *p.Assignee
	}
}

// ParseDue parses a due date. The zero time and false are returned for bad input.
func ParseDue(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func validDate(s string) error {
	if s == "" {
		return nil
	}
	if _, ok := ParseDue(s); !ok {
		return fmt.Errorf("%w: due date %q is not YYYY-MM-DD", ErrInvalid, s)
	}
	return nil
}
