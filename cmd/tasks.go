// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"net/url"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"taskboard/cli/internal/workspace"
)

var taskFlags struct {
	search, filterStatus, filterPriority, sort string
	project                                   int64
	board                                     bool

	title, status, priority, due, assignee string
}

// tasksCmd lists tasks; its subcommands change them.
var tasksCmd = &cobra.Command{
	Use:         "tasks",
	Aliases:     []string{"task"},
	Short:       "List and manage tasks",
	Args:        cobra.NoArgs,
	Annotations: withRoute(requiresAuth(), "/dashboard/tasks"),
	RunE:        listTasks,
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks, or show the board with --board",
	Args:  cobra.NoArgs,
	RunE:  listTasks,
}

var tasksCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a task",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := workspace.TaskInput{
			Title:     taskFlags.title,
			ProjectID: taskFlags.project,
			Status:    workspace.TaskStatus(taskFlags.status),
			Priority:  workspace.Priority(taskFlags.priority),
			DueDate:   taskFlags.due,
			Assignee:  taskFlags.assignee,
		}
		if in.Assignee == "" {
			if id := current.ctl.Store().Snapshot().Identity; id != nil {
				in.Assignee = id.DisplayName()
			}
		}
		t, err := current.data.CreateTask(cmd.Context(), in)
		if err != nil {
			return err
		}
		pterm.Printf("✅ Created task #%d %s in %s\n", t.ID, t.Title, t.ProjectName)
		return nil
	},
}

var tasksUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change fields of a task, e.g. --status done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		var patch workspace.TaskPatch
		f := cmd.Flags()
		if f.Changed("title") {
			patch.Title = &taskFlags.title
		}
		if f.Changed("status") {
			s := workspace.TaskStatus(taskFlags.status)
			patch.Status = &s
		}
		if f.Changed("priority") {
			p := workspace.Priority(taskFlags.priority)
			patch.Priority = &p
		}
		if f.Changed("due") {
			patch.DueDate = &taskFlags.due
		}
		if f.Changed("assignee") {
			patch.Assignee = &taskFlags.assignee
		}

		t, err := current.data.UpdateTask(cmd.Context(), id, patch)
		if err != nil {
			return err
		}
		pterm.Printf("✅ Updated task #%d %s (%s)\n", t.ID, t.Title, t.Status)
		return nil
	},
}

var tasksDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if err := current.data.DeleteTask(cmd.Context(), id); err != nil {
			return err
		}
		pterm.Printf("🗑️  Deleted task #%d\n", id)
		return nil
	},
}

func listTasks(cmd *cobra.Command, _ []string) error {
	q := url.Values{}
	setIf(q, "search", taskFlags.search)
	setIf(q, "status", taskFlags.filterStatus)
	setIf(q, "priority", taskFlags.filterPriority)
	setIf(q, "sort", taskFlags.sort)
	if taskFlags.project > 0 {
		q.Set("project", strconv.FormatInt(taskFlags.project, 10))
	}
	if taskFlags.board {
		q.Set("view", "board")
	}
	_, err := current.nav.Navigate(cmd.Context(), withQuery("/dashboard/tasks", q))
	return err
}

func init() {
	rootCmd.AddCommand(tasksCmd)
	tasksCmd.AddCommand(tasksListCmd, tasksCreateCmd, tasksUpdateCmd, tasksDeleteCmd)

	for _, c := range []*cobra.Command{tasksCmd, tasksListCmd} {
		c.Flags().StringVar(&taskFlags.search, "search", "", "Match titles or project names containing this text")
		c.Flags().StringVar(&taskFlags.filterStatus, "status", "", "Filter by status: todo, in-progress, review or done")
		c.Flags().StringVar(&taskFlags.filterPriority, "priority", "", "Filter by priority: low, medium or high")
		c.Flags().StringVar(&taskFlags.sort, "sort", "", "Sort by title, priority, dueDate or status")
		c.Flags().Int64Var(&taskFlags.project, "project", 0, "Only tasks of this project id")
		c.Flags().BoolVar(&taskFlags.board, "board", false, "Group tasks by status")
	}

	tasksCreateCmd.Flags().Int64Var(&taskFlags.project, "project", 0, "Project id")
	for _, c := range []*cobra.Command{tasksCreateCmd, tasksUpdateCmd} {
		c.Flags().StringVar(&taskFlags.title, "title", "", "Task title")
		c.Flags().StringVar(&taskFlags.status, "status", string(workspace.StatusTodo), "todo, in-progress, review or done")
		c.Flags().StringVar(&taskFlags.priority, "priority", string(workspace.PriorityMedium), "low, medium or high")
		c.Flags().StringVar(&taskFlags.due, "due", "", "Due date (YYYY-MM-DD)")
		c.Flags().StringVar(&taskFlags.assignee, "assignee", "", "Assignee (defaults to you on create)")
	}
}
