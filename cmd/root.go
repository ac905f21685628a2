// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the taskboard CLI.
// Commands are cobra commands whose Annotations carry the same authorization flags as
// the view routes; the root command checks them with the router's Guard before any
// command runs.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"taskboard/cli/internal/auth"
	"taskboard/cli/internal/backend"
	"taskboard/cli/internal/config"
	apperrors "taskboard/cli/internal/errors"
	"taskboard/cli/internal/httperrors"
	"taskboard/cli/internal/logging"
)

var (
	showVersion bool
	verbose     bool

	// current is built by the root command before any subcommand runs.
	current *app
)

var (
	// errHandled stops a command whose outcome was already reported, without a failure.
	errHandled = errors.New("handled")
	// errNotSignedIn fails a command that was refused for lack of a session; the
	// user has already been told.
	errNotSignedIn = errors.New("not signed in")
	// errHandledFailure fails a command whose error was already shown.
	errHandledFailure = errors.New("failed")
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "taskboard",
	Short: "Plan projects and track tasks from the terminal",
	Long: `Taskboard is a terminal client for a project and task board. Views are addressed
by paths such as /dashboard/tasks; views under /dashboard require a signed-in session.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: prepare,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			return printVersion(cmd.Context())
		}
		return cmd.Help()
	},
}

// prepare loads configuration, sets up logging, builds the app and runs the Guard over
// the command's annotations.
func prepare(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger := logging.SetupDefault(os.Stderr, level)

	if !needsApp(cmd) {
		return nil
	}

	a, err := newApp(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	current = a
	return guardCommand(cmd, a)
}

// Execute runs the CLI application.
func Execute() {
	ctx := context.Background()
	err := rootCmd.ExecuteContext(ctx)
	if current != nil {
		current.Close()
	}
	if err == nil || errors.Is(err, errHandled) {
		return
	}

	switch {
	case errors.Is(err, errNotSignedIn), errors.Is(err, errHandledFailure):
	case errors.Is(err, backend.ErrUnauthorized):
		pterm.Println("🔒 " + sessionMessage())
		pterm.Println("   Run 'taskboard login' to sign in again.")
	case apperrors.KindOf(err) != "":
		pterm.Println("❌ " + apperrors.MessageOf(err))
	case httperrors.IsNetworkError(err):
		host := "the taskboard API"
		if current != nil {
			host = httperrors.ExtractHostFromURL(current.cfg.APIURL)
		}
		_ = httperrors.FormatNetworkError(err, "contacting "+host)
	default:
		fmt.Fprintln(os.Stderr, logging.PresentError("Error", err))
	}
	os.Exit(1)
}

func sessionMessage() string {
	if current != nil {
		if msg := current.ctl.Store().Snapshot().LastError; msg != "" {
			return msg
		}
	}
	return auth.MsgSessionExpired
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI and API version information")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
