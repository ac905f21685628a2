// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

package workspace

import "context"

// Source is a CRUD data source for projects and tasks.
// Implementations return ErrNotFound for unknown IDs and wrap ErrInvalid for bad input.
type Source interface {
	ListProjects(ctx context.Context) ([]Project, error)
	GetProject(ctx context.Context, id int64) (Project, error)
	CreateProject(ctx context.Context, in ProjectInput) (Project, error)
	UpdateProject(ctx context.Context, id int64, patch ProjectPatch) (Project, error)
	DeleteProject(ctx context.Context, id int64) error

	ListTasks(ctx context.Context) ([]Task, error)
	GetTask(ctx context.Context, id int64) (Task, error)
	CreateTask(ctx context.Context, in TaskInput) (Task, error)
	UpdateTask(ctx context.Context, id int64, patch TaskPatch) (Task, error)
	DeleteTask(ctx context.Context, id int64) error
}
