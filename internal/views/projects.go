package views

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"taskboard/cli/internal/router"
	"taskboard/cli/internal/workspace"
)

func (v *Views) projects(ctx context.Context, loc router.Location) (string, error) {
	all, err := v.data.ListProjects(ctx)
	if err != nil {
		return "", err
	}
	f := workspace.ParseProjectFilter(loc.Query)
	list := workspace.FilterProjects(all, f)

	var b strings.Builder
	b.WriteString(v.header("Projects"))
	if !f.IsDefault() {
		b.WriteString(pterm.FgGray.Sprintf("Showing %d of %d projects (search=%q type=%s status=%s sort=%s)\n\n",
			len(list), len(all), f.Search, f.Type, f.Status, f.Sort))
	}
	if len(list) == 0 {
		b.WriteString("No projects match.\n")
		return b.String(), nil
	}

	data := pterm.TableData{{"ID", "Name", "Type", "Status", "Progress", "Due", "Tasks"}}
	for _, p := range list {
		data = append(data, []string{
			strconv.FormatInt(p.ID, 10), p.Name, string(p.Type), projectStatus(p.Status),
			progressBar(p.Progress, 10), p.DueDate, itoa(p.TasksCount.Total()),
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", err
	}
	b.WriteString(table + "\n")
	return b.String(), nil
}

func (v *Views) projectDetail(ctx context.Context, loc router.Location) (string, error) {
	id, err := strconv.ParseInt(loc.Params["id"], 10, 64)
	if err != nil {
		return v.header("Project") + fmt.Sprintf("Project %q not found.\n", loc.Params["id"]), nil
	}
	p, err := v.data.GetProject(ctx, id)
	if errors.Is(err, workspace.ErrNotFound) {
		return v.header("Project") + fmt.Sprintf("Project %d not found.\n", id), nil
	}
	if err != nil {
		return "", err
	}
	tasks, err := v.data.ListTasks(ctx)
	if err != nil {
		return "", err
	}
	tasks = workspace.FilterTasks(tasks, workspace.TaskFilter{
		Status: workspace.All, Priority: workspace.All, ProjectID: id, Sort: workspace.SortTaskStatus,
	})

	var b strings.Builder
	b.WriteString(v.header(p.Name))

	lines := []string{
		"Type:     " + string(p.Type),
		"Status:   " + projectStatus(p.Status),
		"Progress: " + progressBar(p.Progress, 20),
		"Due:      " + p.DueDate,
	}
	if p.Client != "" {
		lines = append(lines, "Client:   "+p.Client)
	}
	if len(p.Team) > 0 {
		lines = append(lines, "Team:     "+strings.Join(p.Team, ", "))
	}
	if p.Description != "" {
		lines = append(lines, "", p.Description)
	}
	b.WriteString(pterm.DefaultBox.Sprint(strings.Join(lines, "\n")) + "\n\n")

	if len(tasks) == 0 {
		b.WriteString("No tasks yet.\n")
		return b.String(), nil
	}
	s, err := taskTable(tasks)
	if err != nil {
		return "", err
	}
	b.WriteString(s + "\n")
	return b.String(), nil
}

func projectStatus(s workspace.ProjectStatus) string {
	switch s {
	case workspace.ProjectActive:
		return pterm.FgGreen.Sprint(s)
	case workspace.ProjectOnHold:
		return pterm.FgYellow.Sprint(s)
	default:
		return pterm.FgGray.Sprint(s)
	}
}

// progressBar draws percent (clamped to 0..100) as a bar of width cells.
func progressBar(percent, width int) string {
	percent = max(0, min(100, percent))
	filled := percent * width / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + fmt.Sprintf(" %3d%%", percent)
}
