// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package views draws the taskboard screens to a terminal with pterm. Views implements
// router.Renderer: the navigator hands it every admitted location.
package views

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"taskboard/cli/internal/auth"
	"taskboard/cli/internal/router"
	"taskboard/cli/internal/workspace"
)

var _ router.Renderer = (*Views)(nil)

// Options tunes a Views.
type Options struct {
	// LoginHint lines are shown under the sign-in screen, e.g. demo accounts.
	LoginHint []string
	// Now returns the current time for overdue calculations. Defaults to time.Now.
	Now func() time.Time
}

// Views renders locations using the session store and a workspace source.
type Views struct {
	store *auth.Store
	data  workspace.Source
	out   io.Writer
	opts  Options
}

// New returns views writing to out (stdout when nil).
func New(store *auth.Store, data workspace.Source, out io.Writer, opts Options) *Views {
	if out == nil {
		out = os.Stdout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Views{store: store, data: data, out: out, opts: opts}
}

// Render draws the screen for loc.
func (v *Views) Render(ctx context.Context, loc router.Location) error {
	var (
		s   string
		err error
	)
	switch loc.Name {
	case router.NameHome:
		s = v.home()
	case router.NameLogin:
		s = v.login(loc)
	case router.NameDashboard:
		s, err = v.dashboard(ctx)
	case router.NameProjects:
		s, err = v.projects(ctx, loc)
	case router.NameProjectDetail:
		s, err = v.projectDetail(ctx, loc)
	case router.NameTasks:
		s, err = v.tasks(ctx, loc)
	default:
		return fmt.Errorf("no view for route %q", loc.Name)
	}
	if err != nil {
		return err
	}
	_, err = io.WriteString(v.out, s)
	return err
}

func (v *Views) header(title string) string {
	var b strings.Builder
	b.WriteString(pterm.DefaultSection.Sprint(title))
	if snap := v.store.Snapshot(); snap.Identity != nil {
		b.WriteString(pterm.FgGray.Sprintf("Signed in as %s\n", snap.Identity.DisplayName()))
	}
	b.WriteString("\n")
	return b.String()
}

func (v *Views) home() string {
	var b strings.Builder
	b.WriteString(v.header("Taskboard"))
	b.WriteString("Plan projects and track tasks from your terminal.\n\n")
	if v.store.Snapshot().Authenticated() {
		b.WriteString("Open the dashboard with: open " + router.PathDashboard + "\n")
	} else {
		b.WriteString("Sign in with: login\n")
	}
	return b.String()
}

func (v *Views) login(loc router.Location) string {
	var b strings.Builder
	b.WriteString(v.header("Sign in"))
	if msg := v.store.Snapshot().LastError; msg != "" {
		b.WriteString(pterm.FgRed.Sprint("✖ "+msg) + "\n\n")
	}
	if r := router.RedirectTarget(loc.Query, ""); r != "" {
		b.WriteString(fmt.Sprintf("You will continue to %s after signing in.\n\n", r))
	}
	if len(v.opts.LoginHint) > 0 {
		b.WriteString(pterm.DefaultBox.
			WithTitle("Demo accounts").
			Sprint(strings.Join(v.opts.LoginHint, "\n")))
		b.WriteString("\n")
	}
	return b.String()
}

func (v *Views) dashboard(ctx context.Context) (string, error) {
	projects, err := v.data.ListProjects(ctx)
	if err != nil {
		return "", err
	}
	tasks, err := v.data.ListTasks(ctx)
	if err != nil {
		return "", err
	}
	ts := workspace.TaskStatsOf(tasks, v.opts.Now())
	ps := workspace.ProjectStatsOf(projects)

	var b strings.Builder
	b.WriteString(v.header("Dashboard"))

	table, err := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{"Projects", "Active", "Completed", "On hold"},
		{itoa(ps.All), itoa(ps.Active), itoa(ps.Completed), itoa(ps.OnHold)},
	}).Srender()
	if err != nil {
		return "", err
	}
	b.WriteString(table + "\n\n")

	table, err = pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{"Tasks", "To do", "In progress", "Review", "Done", "High priority", "Overdue"},
		{itoa(ts.All), itoa(ts.Todo), itoa(ts.InProgress), itoa(ts.Review), itoa(ts.Done), itoa(ts.HighPriority), itoa(ts.Overdue)},
	}).Srender()
	if err != nil {
		return "", err
	}
	b.WriteString(table + "\n\n")

	upcoming := workspace.FilterTasks(tasks, workspace.TaskFilter{Status: workspace.All, Priority: workspace.All, Sort: workspace.SortTaskDueDate})
	open := upcoming[:0]
	for _, t := range upcoming {
		if t.Status != workspace.StatusDone {
			open = append(open, t)
		}
	}
	if len(open) > 5 {
		open = open[:5]
	}
	if len(open) > 0 {
		b.WriteString(pterm.Bold.Sprint("Up next") + "\n")
		s, err := taskTable(open)
		if err != nil {
			return "", err
		}
		b.WriteString(s + "\n")
	}
	return b.String(), nil
}

func itoa(n int) string { return fmt.Sprintf("%d", n) }
