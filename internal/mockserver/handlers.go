// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

package mockserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"taskboard/cli/internal/auth"
	"taskboard/cli/internal/backend"
	apperrors "taskboard/cli/internal/errors"
	"taskboard/cli/internal/manifest"
	"taskboard/cli/internal/workspace"
)

const codeAlreadyExists = "already_exists"

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, auth.CodeValidationError, "Request body must be JSON.")
		return
	}

	res, token := s.dir.Authenticate(req.Username, req.Password)
	if !res.Success {
		status := http.StatusUnauthorized
		switch res.Code {
		case auth.CodeValidationError:
			status = http.StatusUnprocessableEntity
		case auth.CodeRateLimited:
			status = http.StatusTooManyRequests
		}
		writeError(w, status, res.Code, res.Message)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": res.Message,
		"data": map[string]any{
			"token": token,
			"user":  res.Identity,
		},
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req backend.Registration
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, auth.CodeValidationError, "Request body must be JSON.")
		return
	}

	id, err := s.dir.Register(req)
	switch apperrors.KindOf(err) {
	case "":
	case apperrors.ValidationError:
		writeError(w, http.StatusUnprocessableEntity, auth.CodeValidationError, apperrors.MessageOf(err))
		return
	case apperrors.AlreadyExists:
		writeError(w, http.StatusConflict, codeAlreadyExists, apperrors.MessageOf(err))
		return
	}
	if err != nil {
		s.log.Error("register failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal", "Internal server error.")
		return
	}

	s.log.Info("account registered", slog.String("username", id.Username))
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Registration successful",
		"data":    map[string]any{"user": id},
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.dir.Revoke(bearer(r))
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Logged out successfully"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	id, err := s.dir.Resolve(bearer(r))
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required.")
		return
	}
	writeData(w, http.StatusOK, map[string]any{"user": id})
}

func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, manifest.Default())
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	out, err := s.data.ListProjects(r.Context())
	s.respond(w, http.StatusOK, out, err)
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	out, err := s.data.GetProject(r.Context(), id)
	s.respond(w, http.StatusOK, out, err)
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var in workspace.ProjectInput
	if !decode(w, r, &in) {
		return
	}
	out, err := s.data.CreateProject(r.Context(), in)
	s.respond(w, http.StatusCreated, out, err)
}

func (s *Server) updateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch workspace.ProjectPatch
	if !decode(w, r, &patch) {
		return
	}
	out, err := s.data.UpdateProject(r.Context(), id, patch)
	s.respond(w, http.StatusOK, out, err)
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.respond(w, http.StatusNoContent, nil, s.data.DeleteProject(r.Context(), id))
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	out, err := s.data.ListTasks(r.Context())
	s.respond(w, http.StatusOK, out, err)
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	out, err := s.data.GetTask(r.Context(), id)
	s.respond(w, http.StatusOK, out, err)
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var in workspace.TaskInput
	if !decode(w, r, &in) {
		return
	}
	if in.Assignee == "" {
		if id, ok := identityFrom(r.Context()); ok {
			in.Assignee = id.DisplayName()
		}
	}
	out, err := s.data.CreateTask(r.Context(), in)
	s.respond(w, http.StatusCreated, out, err)
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch workspace.TaskPatch
	if !decode(w, r, &patch) {
		return
	}
	out, err := s.data.UpdateTask(r.Context(), id, patch)
	s.respond(w, http.StatusOK, out, err)
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.respond(w, http.StatusNoContent, nil, s.data.DeleteTask(r.Context(), id))
}

func (s *Server) respond(w http.ResponseWriter, status int, data any, err error) {
	switch {
	case err == nil && status == http.StatusNoContent:
		w.WriteHeader(status)
	case err == nil:
		writeData(w, status, data)
	case errors.Is(err, workspace.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, workspace.ErrInvalid):
		writeError(w, http.StatusUnprocessableEntity, auth.CodeValidationError, err.Error())
	default:
		s.log.Error("data source failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal", "Internal server error.")
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "Unknown id.")
		return 0, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusUnprocessableEntity, auth.CodeValidationError, "Request body must be JSON.")
		return false
	}
	return true
}

func bearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, map[string]any{"success": true, "data": data})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{"success": false, "code": code, "message": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
