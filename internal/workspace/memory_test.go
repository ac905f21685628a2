package workspace

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestMemoryStore_ProjectLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)

	p, err := s.CreateProject(ctx, ProjectInput{Name: "Billing", DueDate: "2025-12-01"})
	require.NoError(t, err)
	assert.Equal(t, int64(9), p.ID, "IDs continue after the largest seeded ID")
	assert.Equal(t, TypeDevelopment, p.Type)
	assert.Equal(t, ProjectActive, p.Status)
	assert.Zero(t, p.Progress)
	assert.Zero(t, p.TasksCount.Total())

	p, err = s.UpdateProject(ctx, p.ID, ProjectPatch{Progress: ptr(40), Status: ptr(ProjectOnHold)})
	require.NoError(t, err)
	assert.Equal(t, 40, p.Progress)
	assert.Equal(t, ProjectOnHold, p.Status)

	require.NoError(t, s.DeleteProject(ctx, p.ID))
	_, err = s.GetProject(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteProject(ctx, p.ID), ErrNotFound)
}

func TestMemoryStore_TaskLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)

	task, err := s.CreateTask(ctx, TaskInput{Title: "Write changelog", ProjectID: 1})
	require.NoError(t, err)
	assert.Equal(t, "E-Commerce Platform", task.ProjectName)
	assert.Equal(t, StatusTodo, task.Status)
	assert.Equal(t, PriorityMedium, task.Priority)

	task, err = s.UpdateTask(ctx, task.ID, TaskPatch{Status: ptr(StatusDone)})
	require.NoError(t, err)
	assert.Equal(t, StatusDone, task.Status)

	require.NoError(t, s.DeleteTask(ctx, task.ID))
	_, err = s.GetTask(ctx, task.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_RenamingProjectRenamesTasks(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)

	_, err := s.UpdateProject(ctx, 2, ProjectPatch{Name: ptr("Mobile App v2")})
	require.NoError(t, err)

	tasks, err := s.ListTasks(ctx)
	require.NoError(t, err)
	for _, task := range FilterTasks(tasks, TaskFilter{ProjectID: 2}) {
		assert.Equal(t, "Mobile App v2", task.ProjectName)
	}
}

func TestMemoryStore_Validation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)

	tests := []struct {
		name string
		run  func() error
	}{
		{name: "project without name", run: func() error { _, err := s.CreateProject(ctx, ProjectInput{}); return err }},
		{name: "project bad type", run: func() error {
			_, err := s.CreateProject(ctx, ProjectInput{Name: "x", Type: "research"})
			return err
		}},
		{name: "progress out of range", run: func() error {
			_, err := s.UpdateProject(ctx, 1, ProjectPatch{Progress: ptr(101)})
			return err
		}},
		{name: "task bad date", run: func() error {
			_, err := s.CreateTask(ctx, TaskInput{Title: "x", ProjectID: 1, DueDate: "tomorrow"})
			return err
		}},
		{name: "task for unknown project", run: func() error {
			_, err := s.CreateTask(ctx, TaskInput{Title: "x", ProjectID: 99})
			return err
		}},
		{name: "task bad priority", run: func() error {
			_, err := s.UpdateTask(ctx, 1, TaskPatch{Priority: ptr(Priority("urgent"))})
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.run(), ErrInvalid)
		})
	}
}

func TestMemoryStore_LatencyHonorsContext(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := s.ListProjects(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(0)

	tasks, err := s.ListTasks(ctx)
	require.NoError(t, err)
	tasks[0].Title = "mutated"

	again, err := s.GetTask(ctx, tasks[0].ID)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", again.Title)
}
