// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"taskboard/cli/internal/workspace"
)

var projectFlags struct {
	search, filterType, filterStatus, sort string

	name, typ, status, due, description, client string
	team                                        []string
	progress                                    int
}

// projectsCmd lists projects; its subcommands show and change them.
var projectsCmd = &cobra.Command{
	Use:         "projects",
	Aliases:     []string{"project"},
	Short:       "List and manage projects",
	Args:        cobra.NoArgs,
	Annotations: withRoute(requiresAuth(), "/dashboard/projects"),
	RunE:        listProjects,
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Args:  cobra.NoArgs,
	RunE:  listProjects,
}

var projectsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a project and its tasks",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		_, err = current.nav.Navigate(cmd.Context(), fmt.Sprintf("/dashboard/projects/%d", id))
		return err
	},
}

var projectsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := workspace.ProjectInput{
			Name:        projectFlags.name,
			Type:        workspace.ProjectType(projectFlags.typ),
			Status:      workspace.ProjectStatus(projectFlags.status),
			DueDate:     projectFlags.due,
			Description: projectFlags.description,
			Client:      projectFlags.client,
			Team:        projectFlags.team,
		}
		p, err := current.data.CreateProject(cmd.Context(), in)
		if err != nil {
			return err
		}
		pterm.Printf("✅ Created project #%d %s\n", p.ID, p.Name)
		return nil
	},
}

var projectsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change fields of a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		var patch workspace.ProjectPatch
		f := cmd.Flags()
		if f.Changed("name") {
			patch.Name = &projectFlags.name
		}
		if f.Changed("type") {
			t := workspace.ProjectType(projectFlags.typ)
			patch.Type = &t
		}
		if f.Changed("status") {
			s := workspace.ProjectStatus(projectFlags.status)
			patch.Status = &s
		}
		if f.Changed("progress") {
			patch.Progress = &projectFlags.progress
		}
		if f.Changed("due") {
			patch.DueDate = &projectFlags.due
		}
		if f.Changed("description") {
			patch.Description = &projectFlags.description
		}
		if f.Changed("client") {
			patch.Client = &projectFlags.client
		}

		p, err := current.data.UpdateProject(cmd.Context(), id, patch)
		if err != nil {
			return err
		}
		pterm.Printf("✅ Updated project #%d %s\n", p.ID, p.Name)
		return nil
	},
}

var projectsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := current.data.DeleteProject(cmd.Context(), id); err != nil {
			return err
		}
		pterm.Printf("🗑️  Deleted project #%d\n", id)
		return nil
	},
}

func listProjects(cmd *cobra.Command, _ []string) error {
	q := url.Values{}
	setIf(q, "search", projectFlags.search)
	setIf(q, "type", projectFlags.filterType)
	setIf(q, "status", projectFlags.filterStatus)
	setIf(q, "sort", projectFlags.sort)
	_, err := current.nav.Navigate(cmd.Context(), withQuery("/dashboard/projects", q))
	return err
}

func init() {
	rootCmd.AddCommand(projectsCmd)
	projectsCmd.AddCommand(projectsListCmd, projectsShowCmd, projectsCreateCmd, projectsUpdateCmd, projectsDeleteCmd)

	for _, c := range []*cobra.Command{projectsCmd, projectsListCmd} {
		c.Flags().StringVar(&projectFlags.search, "search", "", "Match project names containing this text")
		c.Flags().StringVar(&projectFlags.filterType, "type", "", "Filter by type: development or maintenance")
		c.Flags().StringVar(&projectFlags.filterStatus, "status", "", "Filter by status: active, completed or on-hold")
		c.Flags().StringVar(&projectFlags.sort, "sort", "", "Sort by name, progress or dueDate")
	}

	for _, c := range []*cobra.Command{projectsCreateCmd, projectsUpdateCmd} {
		c.Flags().StringVar(&projectFlags.name, "name", "", "Project name")
		c.Flags().StringVar(&projectFlags.typ, "type", string(workspace.TypeDevelopment), "development or maintenance")
		c.Flags().StringVar(&projectFlags.status, "status", string(workspace.ProjectActive), "active, completed or on-hold")
		c.Flags().StringVar(&projectFlags.due, "due", "", "Due date (YYYY-MM-DD)")
		c.Flags().StringVar(&projectFlags.description, "description", "", "Description")
		c.Flags().StringVar(&projectFlags.client, "client", "", "Client name")
	}
	projectsCreateCmd.Flags().StringSliceVar(&projectFlags.team, "team", nil, "Team members, comma separated")
	projectsUpdateCmd.Flags().IntVar(&projectFlags.progress, "progress", 0, "Progress in percent")
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
