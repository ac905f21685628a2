package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"taskboard/cli/internal/router"
)

// openCmd shows any view by path. The view's own route flags apply, so opening a
// dashboard path without a session shows the sign-in view instead.
var openCmd = &cobra.Command{
	Use:   "open <path>",
	Short: "Show the view at a path, e.g. /dashboard/tasks?status=todo",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := current.nav.Navigate(cmd.Context(), args[0])
		if errors.Is(err, router.ErrNotFound) {
			return fmt.Errorf("no view at %s", args[0])
		}
		return err
	},
}

// dashboardCmd is a shortcut for `open /dashboard`.
var dashboardCmd = &cobra.Command{
	Use:         "dashboard",
	Short:       "Show project and task statistics",
	Args:        cobra.NoArgs,
	Annotations: withRoute(requiresAuth(), router.PathDashboard),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := current.nav.Navigate(cmd.Context(), router.PathDashboard)
		return err
	},
}

func init() {
	rootCmd.AddCommand(openCmd, dashboardCmd)
}
