// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"taskboard/cli/internal/workspace"
)

var _ workspace.Source = (*HTTP)(nil)

func (h *HTTP) ListProjects(ctx context.Context) ([]workspace.Project, error) {
	var out []workspace.Project
	err := h.doJSON(ctx, http.MethodGet, h.endpoints.Projects, nil, &out)
	return out, err
}

func (h *HTTP) GetProject(ctx context.Context, id int64) (workspace.Project, error) {
	var out workspace.Project
	err := h.doJSON(ctx, http.MethodGet, itemPath(h.endpoints.Projects, id), nil, &out)
	return out, err
}

func (h *HTTP) CreateProject(ctx context.Context, in workspace.ProjectInput) (workspace.Project, error) {
	var out workspace.Project
	err := h.doJSON(ctx, http.MethodPost, h.endpoints.Projects, in, &out)
	return out, err
}

func (h *HTTP) UpdateProject(ctx context.Context, id int64, patch workspace.ProjectPatch) (workspace.Project, error) {
	var out workspace.Project
	err := h.doJSON(ctx, http.MethodPatch, itemPath(h.endpoints.Projects, id), patch, &out)
	return out, err
}

func (h *HTTP) DeleteProject(ctx context.Context, id int64) error {
	return h.doJSON(ctx, http.MethodDelete, itemPath(h.endpoints.Projects, id), nil, nil)
}

func (h *HTTP) ListTasks(ctx context.Context) ([]workspace.Task, error) {
	var out []workspace.Task
	err := h.doJSON(ctx, http.MethodGet, h.endpoints.Tasks, nil, &out)
	return out, err
}

func (h *HTTP) GetTask(ctx context.Context, id int64) (workspace.Task, error) {
	var out workspace.Task
	err := h.doJSON(ctx, http.MethodGet, itemPath(h.endpoints.Tasks, id), nil, &out)
	return out, err
}

func (h *HTTP) CreateTask(ctx context.Context, in workspace.TaskInput) (workspace.Task, error) {
	var out workspace.Task
	err := h.doJSON(ctx, http.MethodPost, h.endpoints.Tasks, in, &out)
	return out, err
}

func (h *HTTP) UpdateTask(ctx context.Context, id int64, patch workspace.TaskPatch) (workspace.Task, error) {
	var out workspace.Task
	err := h.doJSON(ctx, http.MethodPatch, itemPath(h.endpoints.Tasks, id), patch, &out)
	return out, err
}

func (h *HTTP) DeleteTask(ctx context.Context, id int64) error {
	return h.doJSON(ctx, http.MethodDelete, itemPath(h.endpoints.Tasks, id), nil, nil)
}

func itemPath(collection string, id int64) string {
	return strings.TrimRight(collection, "/") + "/" + strconv.FormatInt(id, 10)
}

// doJSON performs an authenticated request. Responses may wrap the payload as
// {"data": ...}; a bare payload is accepted too. A 401 fires the unauthorized hook.
func (h *HTTP) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, body)
	if err != nil {
		return err
	}
	h.setStandardHeaders(req)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if _, err := h.setAuth(req); err != nil {
		return fmt.Errorf("load token: %w", err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env struct {
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
	}
	_ = json.Unmarshal(raw, &env)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		h.unauthorized()
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", method, path, workspace.ErrNotFound)
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", workspace.ErrInvalid, env.Message)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%s %s failed: %d %s", method, path, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	payload := []byte(env.Data)
	if len(payload) == 0 {
		payload = raw
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
