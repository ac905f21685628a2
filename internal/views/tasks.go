package views

import (
	"context"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"taskboard/cli/internal/router"
	"taskboard/cli/internal/workspace"
)

var statusTitles = map[workspace.TaskStatus]string{
	workspace.StatusTodo:       "To do",
	workspace.StatusInProgress: "In progress",
	workspace.StatusReview:     "Review",
	workspace.StatusDone:       "Done",
}

// tasks shows the task list, or the board grouped by status with ?view=board.
func (v *Views) tasks(ctx context.Context, loc router.Location) (string, error) {
	all, err := v.data.ListTasks(ctx)
	if err != nil {
		return "", err
	}
	f := workspace.ParseTaskFilter(loc.Query)
	list := workspace.FilterTasks(all, f)

	var b strings.Builder
	b.WriteString(v.header("Tasks"))
	if !f.IsDefault() {
		b.WriteString(pterm.FgGray.Sprintf("Showing %d of %d tasks\n\n", len(list), len(all)))
	}
	if len(list) == 0 {
		b.WriteString("No tasks match.\n")
		return b.String(), nil
	}

	if loc.Query.Get("view") == "board" {
		b.WriteString(board(list))
		return b.String(), nil
	}

	s, err := taskTable(list)
	if err != nil {
		return "", err
	}
	b.WriteString(s + "\n")
	return b.String(), nil
}

func board(tasks []workspace.Task) string {
	groups := workspace.GroupTasks(tasks)
	var b strings.Builder
	for _, status := range workspace.TaskStatuses {
		group := groups[status]
		b.WriteString(pterm.Bold.Sprintf("%s (%d)", statusTitles[status], len(group)) + "\n")
		items := make([]pterm.BulletListItem, 0, len(group))
		for _, t := range group {
			items = append(items, pterm.BulletListItem{
				Level: 0,
				Text:  "#" + strconv.FormatInt(t.ID, 10) + " " + t.Title + " " + pterm.FgGray.Sprint("["+string(t.Priority)+", due "+t.DueDate+"]"),
			})
		}
		if len(items) == 0 {
			b.WriteString(pterm.FgGray.Sprint("  (empty)") + "\n\n")
			continue
		}
		s, _ := pterm.DefaultBulletList.WithItems(items).Srender()
		b.WriteString(s + "\n")
	}
	return b.String()
}

func taskTable(tasks []workspace.Task) (string, error) {
	data := pterm.TableData{{"ID", "Title", "Project", "Status", "Priority", "Due", "Assignee"}}
	for _, t := range tasks {
		data = append(data, []string{
			strconv.FormatInt(t.ID, 10), t.Title, t.ProjectName, statusTitles[t.Status],
			priority(t.Priority), t.DueDate, t.Assignee,
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

func priority(p workspace.Priority) string {
	switch p {
	case workspace.PriorityHigh:
		return pterm.FgRed.Sprint(p)
	case workspace.PriorityMedium:
		return pterm.FgYellow.Sprint(p)
	default:
		return string(p)
	}
}
