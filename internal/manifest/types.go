// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package manifest handles dynamic backend endpoint configuration.
// An API may publish /cli-endpoints.json to move its routes; when it does not, the
// built-in defaults below are used.
package manifest

// Manifest represents the endpoint configuration from the server.
type Manifest struct {
	Version int           `json:"version"`
	HTTP    HTTPEndpoints `json:"http"`
}

// HTTPEndpoints contains REST API endpoint paths.
type HTTPEndpoints struct {
	Login    string `json:"auth_login"`  // e.g., "/auth/login"
	Logout   string `json:"auth_logout"` // e.g., "/auth/logout"
	Me       string `json:"auth_me"`     // e.g., "/auth/me"
	Register string `json:"register"`    // e.g., "/register"
	Projects string `json:"projects"`    // e.g., "/projects"
	Tasks    string `json:"tasks"`       // e.g., "/tasks"
	Version  string `json:"version"`     // e.g., "/version"
}

// Path is where an API publishes its manifest.
const Path = "/cli-endpoints.json"

// Default returns the manifest used when the API does not publish one.
func Default() *Manifest {
	return &Manifest{
		Version: 1,
		HTTP: HTTPEndpoints{
			Login:    "/auth/login",
			Logout:   "/auth/logout",
			Me:       "/auth/me",
			Register: "/register",
			Projects: "/projects",
			Tasks:    "/tasks",
			Version:  "/version",
		},
	}
}

// withDefaults fills endpoints the server left empty.
func (m *Manifest) withDefaults() *Manifest {
	d := Default().HTTP
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&m.HTTP.Login, d.Login)
	fill(&m.HTTP.Logout, d.Logout)
	fill(&m.HTTP.Me, d.Me)
	fill(&m.HTTP.Register, d.Register)
	fill(&m.HTTP.Projects, d.Projects)
	fill(&m.HTTP.Tasks, d.Tasks)
	fill(&m.HTTP.Version, d.Version)
	return m
}
