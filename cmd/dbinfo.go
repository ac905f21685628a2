// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"taskboard/cli/internal/dsn"
)

// dbinfoCmd shows which database the postgres data source uses, with the password
// replaced.
var dbinfoCmd = &cobra.Command{
	Use:   "dbinfo",
	Short: "Show the configured database connection",
	Long: `The dbinfo command displays the PostgreSQL URL used by the postgres data source
with the password masked. TASKBOARD_DATABASE_URL or DATABASE_URL take precedence
over the URL saved by 'taskboard connect'.`,
	Args:        cobra.NoArgs,
	Annotations: requiresAuth(),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := current

		raw, source := a.cfg.DatabaseURL, "environment"
		if raw == "" && a.keys != nil {
			saved, err := a.keys.LoadDatabaseURL()
			if err != nil {
				return err
			}
			raw, source = saved, "OS keychain"
		}
		if raw == "" {
			pterm.Println("⚠️  No database connection configured")
			pterm.Println("   Please run: taskboard connect")
			return nil
		}

		shown := "(unparseable URL)"
		if info, err := dsn.Parse(raw); err == nil {
			shown = info.Redacted()
		}
		pterm.Printf("Using database URL from %s\n\n", source)
		pterm.DefaultBox.
			WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("Database Connection")).
			WithPadding(1).
			Println(shown)
		pterm.Println()
		pterm.Println("To update this connection, run: taskboard connect")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dbinfoCmd)
}
