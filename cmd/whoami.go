package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// whoamiCmd reports the signed-in user, restoring the session from the saved token
// when needed.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := current
		err := spin("Checking session", func() error {
			if !a.ctl.CheckSession(cmd.Context()) {
				return errNotSignedIn
			}
			return nil
		})
		if err != nil {
			pterm.Println("🔒 You're not logged in yet!")
			pterm.Println("   Run 'taskboard login' to get started.")
			return err
		}

		id := a.ctl.Store().Snapshot().Identity
		pterm.Printf("👤 Current user: %s\n", id.DisplayName())
		if id.Email != "" {
			pterm.Printf("   Email: %s\n", id.Email)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
