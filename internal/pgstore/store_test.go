package pgstore

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/cli/internal/workspace"
)

// openTestStore connects to TASKBOARD_TEST_DATABASE_URL inside a throwaway schema.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	url := os.Getenv("TASKBOARD_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TASKBOARD_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	schema := "tb_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	admin, err := Open(ctx, url, "")
	require.NoError(t, err)
	_, err = admin.pool.Exec(ctx, "CREATE SCHEMA "+schema)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = admin.pool.Exec(context.Background(), "DROP SCHEMA "+schema+" CASCADE")
		admin.Close()
	})

	s, err := Open(ctx, url, schema)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	require.NoError(t, s.EnsureSchema(ctx))
	return s
}

func TestStore_SeedAndList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	seeded, err := s.SeedIfEmpty(ctx, workspace.SeedProjects(), workspace.SeedTasks())
	require.NoError(t, err)
	assert.True(t, seeded)

	again, err := s.SeedIfEmpty(ctx, workspace.SeedProjects(), workspace.SeedTasks())
	require.NoError(t, err)
	assert.False(t, again)

	projects, err := s.ListProjects(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, len(workspace.SeedProjects()))

	tasks, err := s.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, len(workspace.SeedTasks()))
	for _, task := range tasks {
		assert.NotEmpty(t, task.ProjectName, "task %d", task.ID)
	}

	var total int
	for _, p := range projects {
		total += p.TasksCount.Total()
	}
	assert.Equal(t, len(tasks), total)
}

func TestStore_TaskLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p, err := s.CreateProject(ctx, workspace.ProjectInput{
		Name:    "Billing",
		Type:    workspace.TypeDevelopment,
		Status:  workspace.ProjectActive,
		DueDate: "2026-12-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-12-01", p.DueDate)

	task, err := s.CreateTask(ctx, workspace.TaskInput{
		Title:     "Invoice export",
		ProjectID: p.ID,
		Status:    workspace.StatusTodo,
		Priority:  workspace.PriorityHigh,
		DueDate:   "2026-11-20",
	})
	require.NoError(t, err)
	assert.Equal(t, "Billing", task.ProjectName)

	done := workspace.StatusDone
	task, err = s.UpdateTask(ctx, task.ID, workspace.TaskPatch{Status: &done})
	require.NoError(t, err)
	assert.Equal(t, workspace.StatusDone, task.Status)

	p, err = s.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, p.TasksCount.Done)

	require.NoError(t, s.DeleteTask(ctx, task.ID))
	_, err = s.GetTask(ctx, task.ID)
	assert.ErrorIs(t, err, workspace.ErrNotFound)
	assert.ErrorIs(t, s.DeleteTask(ctx, task.ID), workspace.ErrNotFound)
}

func TestStore_CreateTaskRejectsUnknownProject(t *testing.T) {
	s := openTestStore(t)

	_, err := s.CreateTask(context.Background(), workspace.TaskInput{
		Title:     "Orphan",
		ProjectID: 9999,
		Status:    workspace.StatusTodo,
		Priority:  workspace.PriorityLow,
		DueDate:   "2026-11-20",
	})
	assert.ErrorIs(t, err, workspace.ErrInvalid)
}
