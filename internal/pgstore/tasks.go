package pgstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"taskboard/cli/internal/workspace"
)

const taskSelect = `
	SELECT t.id, t.title, t.project_id, COALESCE(p.name, ''), t.status, t.priority, t.due_date, t.assignee
	FROM tasks t LEFT JOIN projects p ON p.id = t.project_id`

func scanTask(row pgx.Row) (workspace.Task, error) {
	var (
		t   workspace.Task
		due *time.Time
	)
	err := row.Scan(&t.ID, &t.Title, &t.ProjectID, &t.ProjectName, &t.Status, &t.Priority, &due, &t.Assignee)
	t.DueDate = dateString(due)
	return t, err
}

func (s *Store) ListTasks(ctx context.Context) ([]workspace.Task, error) {
	rows, err := s.pool.Query(ctx, taskSelect+` ORDER BY t.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []workspace.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) GetTask(ctx context.Context, id int64) (workspace.Task, error) {
	t, err := scanTask(s.pool.QueryRow(ctx, taskSelect+` WHERE t.id = $1`, id))
	if err != nil {
		return workspace.Task{}, notFound("task", id, err)
	}
	return t, nil
}

// CreateTask inserts a task. The project must exist; its name is always taken from
// the projects table.
func (s *Store) CreateTask(ctx context.Context, in workspace.TaskInput) (workspace.Task, error) {
	if err := in.Validate(); err != nil {
		return workspace.Task{}, err
	}
	var exists bool
	if err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM projects WHERE id = $1)`, in.ProjectID).Scan(&exists); err != nil {
		return workspace.Task{}, err
	}
	if !exists {
		return workspace.Task{}, fmt.Errorf("%w: project %d does not exist", workspace.ErrInvalid, in.ProjectID)
	}

	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO tasks (title, project_id, status, priority, due_date, assignee)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		in.Title, in.ProjectID, in.Status, in.Priority, dateArg(in.DueDate), in.Assignee).Scan(&id)
	if err != nil {
		return workspace.Task{}, fmt.Errorf("create task: %w", err)
	}
	return s.GetTask(ctx, id)
}

func (s *Store) UpdateTask(ctx context.Context, id int64, patch workspace.TaskPatch) (workspace.Task, error) {
	if err := patch.Validate(); err != nil {
		return workspace.Task{}, err
	}
	cur, err := s.GetTask(ctx, id)
	if err != nil {
		return workspace.Task{}, err
	}
	patch.Apply(&cur)

	tag, err := s.pool.Exec(ctx, `
		UPDATE tasks SET title = $2, status = $3, priority = $4, due_date = $5, assignee = $6
		WHERE id = $1`,
		id, cur.Title, cur.Status, cur.Priority, dateArg(cur.DueDate), cur.Assignee)
	if err != nil {
		return workspace.Task{}, fmt.Errorf("update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return workspace.Task{}, fmt.Errorf("task %d: %w", id, workspace.ErrNotFound)
	}
	return s.GetTask(ctx, id)
}

func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("task %d: %w", id, workspace.ErrNotFound)
	}
	return nil
}
