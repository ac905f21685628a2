package cmd

import (
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"taskboard/cli/internal/router"
)

// Annotation keys carried by commands.
const (
	annRequiresAuth = "requiresAuth"
	annGuestOnly    = "guestOnly"
	// annRoute is the view path a command stands for; it becomes the redirect target.
	annRoute = "route"
	// annNoApp marks commands that run without the session or a data source.
	annNoApp = "noApp"
)

func needsApp(cmd *cobra.Command) bool {
	if cmd.Name() == "help" || strings.HasPrefix(cmd.Name(), cobra.ShellCompRequestCmd) {
		return false
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annNoApp] == "true" {
			return false
		}
	}
	return true
}

// commandChain returns the authorization flags of cmd and its ancestors, root first.
func commandChain(cmd *cobra.Command) []router.Meta {
	var chain []router.Meta
	for c := cmd; c != nil; c = c.Parent() {
		chain = append([]router.Meta{{
			RequiresAuth: c.Annotations[annRequiresAuth] == "true",
			GuestOnly:    c.Annotations[annGuestOnly] == "true",
		}}, chain...)
	}
	return chain
}

func commandRoute(cmd *cobra.Command) string {
	for c := cmd; c != nil; c = c.Parent() {
		if r := c.Annotations[annRoute]; r != "" {
			return r
		}
	}
	return router.PathHome
}

// guardCommand applies the Guard to a command the way the navigator applies it to a
// view: a command that needs a session is refused when there is none, and a guest-only
// command is skipped when there is one.
func guardCommand(cmd *cobra.Command, a *app) error {
	d := a.guard.Check(cmd.Context(), router.Target{
		FullPath: commandRoute(cmd),
		Matched:  commandChain(cmd),
	})
	if d.Action == router.Admit {
		return nil
	}

	snap := a.ctl.Store().Snapshot()
	if snap.Authenticated() {
		pterm.Printf("Already logged in as %s\n", snap.Identity.DisplayName())
		return errHandled
	}
	pterm.Println("🔒 You're not logged in yet!")
	pterm.Println("   Run 'taskboard login' to get started.")
	return errNotSignedIn
}

func requiresAuth() map[string]string { return map[string]string{annRequiresAuth: "true"} }

func withRoute(ann map[string]string, route string) map[string]string {
	ann[annRoute] = route
	return ann
}
