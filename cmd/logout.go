// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var logoutAll bool

// logoutCmd signs out. The API is told on a best-effort basis; the local session and
// token are always cleared.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and remove the saved session",
	Long: `The logout command ends the current session. The identity provider is notified
when reachable; the locally stored token is removed either way.

With --all the saved database URL is removed from the keychain as well.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := current
		a.ctl.Logout(cmd.Context())

		if logoutAll && a.keys != nil {
			if err := a.keys.ClearAll(); err != nil {
				a.log.Warn("failed to clear keychain", "error", err)
			}
		}
		pterm.Println("✅ Logged out")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
	logoutCmd.Flags().BoolVar(&logoutAll, "all", false, "Also remove the saved database URL")
}
