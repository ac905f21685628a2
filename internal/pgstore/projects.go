package pgstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"taskboard/cli/internal/workspace"
)

const projectColumns = `
	p.id, p.name, p.type, p.status, p.progress, p.due_date, p.description, p.client, p.team,
	count(t.id) FILTER (WHERE t.status = 'todo'),
	count(t.id) FILTER (WHERE t.status = 'in-progress'),
	count(t.id) FILTER (WHERE t.status = 'review'),
	count(t.id) FILTER (WHERE t.status = 'done')`

const projectFrom = `FROM projects p LEFT JOIN tasks t ON t.project_id = p.id`

func scanProject(row pgx.Row) (workspace.Project, error) {
	var (
		p   workspace.Project
		due *time.Time
	)
	err := row.Scan(&p.ID, &p.Name, &p.Type, &p.Status, &p.Progress, &due, &p.Description, &p.Client, &p.Team,
		&p.TasksCount.Todo, &p.TasksCount.InProgress, &p.TasksCount.Review, &p.TasksCount.Done)
	p.DueDate = dateString(due)
	if len(p.Team) == 0 {
		p.Team = nil
	}
	return p, err
}

func (s *Store) ListProjects(ctx context.Context) ([]workspace.Project, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+projectColumns+` `+projectFrom+` GROUP BY p.id ORDER BY p.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []workspace.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) GetProject(ctx context.Context, id int64) (workspace.Project, error) {
	p, err := scanProject(s.pool.QueryRow(ctx, `SELECT `+projectColumns+` `+projectFrom+` WHERE p.id = $1 GROUP BY p.id`, id))
	if err != nil {
		return workspace.Project{}, notFound("project", id, err)
	}
	return p, nil
}

func (s *Store) CreateProject(ctx context.Context, in workspace.ProjectInput) (workspace.Project, error) {
	if err := in.Validate(); err != nil {
		return workspace.Project{}, err
	}
	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO projects (name, type, status, due_date, description, client, team)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		in.Name, in.Type, in.Status, dateArg(in.DueDate), in.Description, in.Client, teamArg(in.Team)).Scan(&id)
	if err != nil {
		return workspace.Project{}, fmt.Errorf("create project: %w", err)
	}
	return s.GetProject(ctx, id)
}

func (s *Store) UpdateProject(ctx context.Context, id int64, patch workspace.ProjectPatch) (workspace.Project, error) {
	if err := patch.Validate(); err != nil {
		return workspace.Project{}, err
	}
	cur, err := s.GetProject(ctx, id)
	if err != nil {
		return workspace.Project{}, err
	}
	patch.Apply(&cur)

	tag, err := s.pool.Exec(ctx, `
		UPDATE projects SET name = $2, type = $3, status = $4, progress = $5, due_date = $6,
			description = $7, client = $8
		WHERE id = $1`,
		id, cur.Name, cur.Type, cur.Status, cur.Progress, dateArg(cur.DueDate), cur.Description, cur.Client)
	if err != nil {
		return workspace.Project{}, fmt.Errorf("update project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return workspace.Project{}, fmt.Errorf("project %d: %w", id, workspace.ErrNotFound)
	}
	return s.GetProject(ctx, id)
}

func (s *Store) DeleteProject(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("project %d: %w", id, workspace.ErrNotFound)
	}
	return nil
}
