// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

package workspace

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"
)

// MemoryStore is an in-process Source with artificial latency on every call.
type MemoryStore struct {
	latency time.Duration

	mu       sync.RWMutex
	projects []Project
	tasks    []Task
	nextID   int64
}

var _ Source = (*MemoryStore)(nil)

// NewMemoryStore returns a store seeded with the demo fixtures.
func NewMemoryStore(latency time.Duration) *MemoryStore {
	return NewMemoryStoreWith(latency, SeedProjects(), SeedTasks())
}

// NewMemoryStoreWith returns a store holding copies of the given records.
func NewMemoryStoreWith(latency time.Duration, projects []Project, tasks []Task) *MemoryStore {
	s := &MemoryStore{
		latency:  latency,
		projects: slices.Clone(projects),
		tasks:    slices.Clone(tasks),
	}
	for _, p := range projects {
		s.nextID = max(s.nextID, p.ID)
	}
	for _, t := range tasks {
		s.nextID = max(s.nextID, t.ID)
	}
	return s
}

func (s *MemoryStore) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *MemoryStore) ListProjects(ctx context.Context) ([]Project, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProjects(s.projects), nil
}

func (s *MemoryStore) GetProject(ctx context.Context, id int64) (Project, error) {
	if err := s.wait(ctx); err != nil {
		return Project{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.projectIndex(id)
	if i < 0 {
		return Project{}, fmt.Errorf("project %d: %w", id, ErrNotFound)
	}
	return cloneProject(s.projects[i]), nil
}

func (s *MemoryStore) CreateProject(ctx context.Context, in ProjectInput) (Project, error) {
	if err := in.Validate(); err != nil {
		return Project{}, err
	}
	if err := s.wait(ctx); err != nil {
		return Project{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	p := Project{
		ID:          s.nextID,
		Name:        in.Name,
		Type:        in.Type,
		Status:      in.Status,
		DueDate:     in.DueDate,
		Description: in.Description,
		Client:      in.Client,
		Team:        slices.Clone(in.Team),
	}
	s.projects = append(s.projects, p)
	return cloneProject(p), nil
}

func (s *MemoryStore) UpdateProject(ctx context.Context, id int64, patch ProjectPatch) (Project, error) {
	if err := patch.Validate(); err != nil {
		return Project{}, err
	}
	if err := s.wait(ctx); err != nil {
		return Project{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.projectIndex(id)
	if i < 0 {
		return Project{}, fmt.Errorf("project %d: %w", id, ErrNotFound)
	}
	patch.Apply(&s.projects[i])
	if patch.Name != nil {
		for j := range s.tasks {
			if s.tasks[j].ProjectID == id {
				s.tasks[j].ProjectName = *patch.Name
			}
		}
	}
	return cloneProject(s.projects[i]), nil
}

// DeleteProject removes the project. Its tasks are kept, as orphans.
func (s *MemoryStore) DeleteProject(ctx context.Context, id int64) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.projectIndex(id)
	if i < 0 {
		return fmt.Errorf("project %d: %w", id, ErrNotFound)
	}
	s.projects = slices.Delete(s.projects, i, i+1)
	return nil
}

func (s *MemoryStore) ListTasks(ctx context.Context) ([]Task, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tasks), nil
}

func (s *MemoryStore) GetTask(ctx context.Context, id int64) (Task, error) {
	if err := s.wait(ctx); err != nil {
		return Task{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.taskIndex(id)
	if i < 0 {
		return Task{}, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	return s.tasks[i], nil
}

func (s *MemoryStore) CreateTask(ctx context.Context, in TaskInput) (Task, error) {
	if err := in.Validate(); err != nil {
		return Task{}, err
	}
	if err := s.wait(ctx); err != nil {
		return Task{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if in.ProjectName == "" {
		i := s.projectIndex(in.ProjectID)
		if i < 0 {
			return Task{}, fmt.Errorf("%w: project %d does not exist", ErrInvalid, in.ProjectID)
		}
		in.ProjectName = s.projects[i].Name
	}
	s.nextID++
	t := Task{
		ID:          s.nextID,
		Title:       in.Title,
		ProjectID:   in.ProjectID,
		ProjectName: in.ProjectName,
		Status:      in.Status,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		Assignee:    in.Assignee,
	}
	s.tasks = append(s.tasks, t)
	return t, nil
}

func (s *MemoryStore) UpdateTask(ctx context.Context, id int64, patch TaskPatch) (Task, error) {
	if err := patch.Validate(); err != nil {
		return Task{}, err
	}
	if err := s.wait(ctx); err != nil {
		return Task{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.taskIndex(id)
	if i < 0 {
		return Task{}, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	patch.Apply(&s.tasks[i])
	return s.tasks[i], nil
}

func (s *MemoryStore) DeleteTask(ctx context.Context, id int64) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.taskIndex(id)
	if i < 0 {
		return fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	return nil
}

func (s *MemoryStore) projectIndex(id int64) int {
	return slices.IndexFunc(s.projects, func(p Project) bool { return p.ID == id })
}

func (s *MemoryStore) taskIndex(id int64) int {
	return slices.IndexFunc(s.tasks, func(t Task) bool { return t.ID == id })
}

func cloneProject(p Project) Project {
	p.Team = slices.Clone(p.Team)
	return p
}

func cloneProjects(ps []Project) []Project {
	out := make([]Project, len(ps))
	for i, p := range ps {
		out[i] = cloneProject(p)
	}
	return out
}
