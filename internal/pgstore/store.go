// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package pgstore is a PostgreSQL workspace.Source over a pgx connection pool.
// Task counts on projects are computed from the tasks table on every read.
package pgstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taskboard/cli/internal/workspace"
)

var _ workspace.Source = (*Store)(nil)

// Store executes workspace queries using a connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// New wraps an existing pool.
func New(pool *pgxpool.Pool) *Store { return &Store{pool: pool} }

// Open connects to databaseURL and verifies the connection. A non-empty schema is
// used as the search_path of every connection.
func Open(ctx context.Context, databaseURL, schema string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	if schema != "" {
		cfg.ConnConfig.RuntimeParams["search_path"] = schema
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return New(pool), nil
}

// Close releases the pool.
func (s *Store) Close() { s.pool.Close() }

const schemaSQL = `
CREATE TABLE IF NOT EXISTS projects (
	id          BIGSERIAL PRIMARY KEY,
	name        TEXT NOT NULL,
	type        TEXT NOT NULL CHECK (type IN ('development', 'maintenance')),
	status      TEXT NOT NULL CHECK (status IN ('active', 'completed', 'on-hold')),
	progress    INT  NOT NULL DEFAULT 0 CHECK (progress BETWEEN 0 AND 100),
	due_date    DATE,
	description TEXT NOT NULL DEFAULT '',
	client      TEXT NOT NULL DEFAULT '',
	team        TEXT[] NOT NULL DEFAULT '{}'
);
CREATE TABLE IF NOT EXISTS tasks (
	id         BIGSERIAL PRIMARY KEY,
	title      TEXT NOT NULL,
	project_id BIGINT NOT NULL,
	status     TEXT NOT NULL CHECK (status IN ('todo', 'in-progress', 'review', 'done')),
	priority   TEXT NOT NULL CHECK (priority IN ('low', 'medium', 'high')),
	due_date   DATE,
	assignee   TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS tasks_project_id_idx ON tasks (project_id);
`

// EnsureSchema creates the tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// SeedIfEmpty inserts the given records, keeping their IDs, when there are no
// projects yet. It reports whether anything was inserted.
func (s *Store) SeedIfEmpty(ctx context.Context, projects []workspace.Project, tasks []workspace.Task) (bool, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var n int
	if err := tx.QueryRow(ctx, `SELECT count(*) FROM projects`).Scan(&n); err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	for _, p := range projects {
		_, err := tx.Exec(ctx, `
			INSERT INTO projects (id, name, type, status, progress, due_date, description, client, team)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			p.ID, p.Name, p.Type, p.Status, p.Progress, dateArg(p.DueDate), p.Description, p.Client, teamArg(p.Team))
		if err != nil {
			return false, fmt.Errorf("seed project %d: %w", p.ID, err)
		}
	}
	for _, t := range tasks {
		_, err := tx.Exec(ctx, `
			INSERT INTO tasks (id, title, project_id, status, priority, due_date, assignee)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			t.ID, t.Title, t.ProjectID, t.Status, t.Priority, dateArg(t.DueDate), t.Assignee)
		if err != nil {
			return false, fmt.Errorf("seed task %d: %w", t.ID, err)
		}
	}

	for _, table := range []string{"projects", "tasks"} {
		q := fmt.Sprintf(`SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), GREATEST((SELECT max(id) FROM %[1]s), 1))`, table)
		if _, err := tx.Exec(ctx, q); err != nil {
			return false, fmt.Errorf("reset %s sequence: %w", table, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func notFound(kind string, id int64, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %d: %w", kind, id, workspace.ErrNotFound)
	}
	return err
}

func dateArg(s string) any {
	if t, ok := workspace.ParseDue(s); ok {
		return t
	}
	return nil
}

func dateString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(workspace.DateLayout)
}

func teamArg(team []string) []string {
	if team == nil {
		return []string{}
	}
	return team
}
