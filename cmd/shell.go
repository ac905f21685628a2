// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/peterh/liner"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"taskboard/cli/internal/auth"
	apperrors "taskboard/cli/internal/errors"
	"taskboard/cli/internal/router"
	"taskboard/cli/internal/xdg"
)

// shellCmd runs an interactive session where views are opened by path and every
// navigation goes through the Guard.
var shellCmd = &cobra.Command{
	Use:   "shell [path]",
	Short: "Interactive session: open views by path, log in and out",
	Long: `The shell keeps one session open and lets you move between views by typing their
paths, e.g. /dashboard/tasks?status=todo. Views under /dashboard require a session;
opening one while signed out shows the sign-in view, and logging in from there
continues to the view you asked for.

Commands: <path>, open <path>, login [username], logout, whoami, refresh, help, exit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start := router.PathHome
		if len(args) == 1 {
			start = args[0]
		}

		line := liner.NewLiner()
		defer line.Close()
		line.SetCtrlCAborts(true)
		line.SetCompleter(completeShell)

		history := historyPath()
		if history != "" {
			if f, err := os.Open(history); err == nil {
				_, _ = line.ReadHistory(f)
				_ = f.Close()
			}
		}
		defer func() {
			if history == "" {
				return
			}
			if f, err := os.Create(history); err == nil {
				_, _ = line.WriteHistory(f)
				_ = f.Close()
			}
		}()

		sh := newShell(current, line, os.Stdout)
		defer sh.Close()
		return sh.Run(cmd.Context(), start)
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

// prompter reads shell input. *liner.State satisfies it.
type prompter interface {
	Prompt(prompt string) (string, error)
	PasswordPrompt(prompt string) (string, error)
}

type shell struct {
	app *app
	in  prompter
	out io.Writer

	unsubscribe func()
}

func newShell(a *app, in prompter, out io.Writer) *shell {
	sh := &shell{app: a, in: in, out: out}

	var signedIn atomic.Bool
	signedIn.Store(a.ctl.Store().Snapshot().Authenticated())
	sh.unsubscribe = a.ctl.Store().Subscribe(func(s auth.Snapshot) {
		if signedIn.Swap(s.Authenticated()) && !s.Authenticated() && s.LastError != "" {
			fmt.Fprintln(sh.out, pterm.FgYellow.Sprint("⚠️  "+s.LastError))
		}
	})
	return sh
}

func (sh *shell) Close() {
	if sh.unsubscribe != nil {
		sh.unsubscribe()
	}
}

// Run shows start and then reads commands until exit or end of input.
func (sh *shell) Run(ctx context.Context, start string) error {
	if err := sh.open(ctx, start); err != nil {
		sh.report(err)
	}
	for {
		input, err := sh.in.Prompt(sh.prompt())
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(sh.out)
			return nil
		}
		if err != nil {
			return err
		}
		if h, ok := sh.in.(interface{ AppendHistory(string) }); ok && strings.TrimSpace(input) != "" {
			h.AppendHistory(input)
		}

		quit, err := sh.exec(ctx, input)
		if err != nil {
			sh.report(err)
		}
		if quit {
			return nil
		}
		if _, _, err := sh.app.nav.Flush(ctx); err != nil {
			sh.report(err)
		}
	}
}

func (sh *shell) prompt() string {
	loc := sh.app.nav.Current()
	if loc.Path == "" {
		return "taskboard> "
	}
	return "taskboard:" + loc.Path + "> "
}

// exec runs one input line. It reports true when the shell should exit.
func (sh *shell) exec(ctx context.Context, input string) (bool, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return false, nil
	}
	if strings.HasPrefix(fields[0], "/") {
		return false, sh.open(ctx, fields[0])
	}

	switch fields[0] {
	case "exit", "quit", "q":
		return true, nil
	case "help", "?":
		sh.help()
	case "open", "cd":
		if len(fields) != 2 {
			return false, errors.New("usage: open <path>")
		}
		return false, sh.open(ctx, fields[1])
	case "refresh", "r":
		return false, sh.open(ctx, sh.app.nav.Current().FullPath())
	case "login":
		username := ""
		if len(fields) > 1 {
			username = fields[1]
		}
		return false, sh.login(ctx, username)
	case "logout":
		sh.app.ctl.Logout(ctx)
		fmt.Fprintln(sh.out, "✅ Logged out")
	case "whoami":
		if sh.app.ctl.CheckSession(ctx) {
			fmt.Fprintf(sh.out, "👤 %s\n", sh.app.ctl.Store().Snapshot().Identity.DisplayName())
		} else {
			fmt.Fprintln(sh.out, "🔒 Not logged in")
		}
	default:
		return false, fmt.Errorf("unknown command %q (type help)", fields[0])
	}
	return false, nil
}

func (sh *shell) open(ctx context.Context, path string) error {
	if path == "" {
		path = router.PathHome
	}
	_, err := sh.app.nav.Navigate(ctx, path)
	return err
}

// login signs in from the login view. A redirect query on that view replaces the
// landing route scheduled by the controller.
func (sh *shell) login(ctx context.Context, username string) error {
	if snap := sh.app.ctl.Store().Snapshot(); snap.Authenticated() {
		fmt.Fprintf(sh.out, "Already logged in as %s\n", snap.Identity.DisplayName())
		return nil
	}
	if sh.app.nav.Current().Name != router.NameLogin {
		if err := sh.open(ctx, router.PathLogin); err != nil {
			return err
		}
		if sh.app.nav.Current().Name != router.NameLogin {
			return nil
		}
	}
	from := sh.app.nav.Current()

	if username == "" {
		u, err := sh.in.Prompt("Username: ")
		if err != nil {
			return err
		}
		username = strings.TrimSpace(u)
	}
	secret, err := sh.in.PasswordPrompt("Password: ")
	if err != nil {
		return err
	}

	var id *auth.Identity
	err = spin("Signing in", func() error {
		var err error
		id, err = sh.app.ctl.Login(ctx, auth.Credentials{Identifier: username, Secret: secret})
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(sh.out, loginGreeting(id.DisplayName()))

	if r := router.RedirectTarget(from.Query, ""); r != "" {
		sh.app.nav.Schedule(r)
	}
	return nil
}

func (sh *shell) report(err error) {
	msg := apperrors.MessageOf(err)
	if errors.Is(err, router.ErrNotFound) {
		msg = "No view at that path. Try /dashboard, /dashboard/projects or /dashboard/tasks."
	}
	sh.app.log.Debug("shell command failed", slog.String("error", err.Error()))
	fmt.Fprintln(sh.out, pterm.FgRed.Sprint("❌ "+msg))
}

func (sh *shell) help() {
	fmt.Fprintln(sh.out, `  <path>             open a view, e.g. /dashboard/tasks?status=todo&view=board
  open <path>        same as typing the path
  refresh            redraw the current view
  login [username]   sign in
  logout             sign out
  whoami             show the signed-in user
  exit               leave the shell`)
}

var shellWords = []string{
	"/", "/auth/login", "/dashboard", "/dashboard/projects", "/dashboard/tasks",
	"/dashboard/tasks?view=board", "open ", "refresh", "login", "logout", "whoami", "help", "exit",
}

func completeShell(line string) []string {
	var out []string
	for _, w := range shellWords {
		if strings.HasPrefix(w, line) {
			out = append(out, w)
		}
	}
	return out
}

func historyPath() string {
	dir, err := xdg.StateDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "shell_history")
}
