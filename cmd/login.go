// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bufio"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"taskboard/cli/internal/auth"
	"taskboard/cli/internal/router"
	"taskboard/cli/internal/terminal"
)

var (
	loginUsername string
	loginRedirect string
	loginNoOpen   bool
)

// loginCmd signs in with a username and password.
var loginCmd = &cobra.Command{
	Use:     "login",
	Aliases: []string{"auth"},
	Short:   "Sign in with your username and password",
	Long: `The login command asks for a username and password and exchanges them with the
identity provider for a session. The session token is kept in the OS keychain, so
later commands stay signed in until you log out or the session expires.

When stdin is not a terminal the password is read as one line from stdin.
If a session is already active the command only reports who is signed in.`,
	Annotations: map[string]string{annGuestOnly: "true", annRoute: router.PathLogin},
	Args:        cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a := current

		creds, err := promptCredentials(loginUsername)
		if err != nil {
			return err
		}

		var id *auth.Identity
		err = spin("Signing in", func() error {
			var err error
			id, err = a.ctl.Login(ctx, creds)
			return err
		})
		if err != nil {
			return err
		}
		pterm.Println(loginGreeting(id.DisplayName()))

		if loginRedirect != "" {
			if !router.IsLocalPath(loginRedirect) {
				return fmt.Errorf("--redirect must be a path such as /dashboard/tasks, got %q", loginRedirect)
			}
			a.nav.Schedule(loginRedirect)
		}
		if loginNoOpen {
			return nil
		}
		pterm.Println()
		_, _, err = a.nav.Flush(ctx)
		return err
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "Username (prompted when empty)")
	loginCmd.Flags().StringVar(&loginRedirect, "redirect", "", "View to open after signing in instead of the dashboard")
	loginCmd.Flags().BoolVar(&loginNoOpen, "no-open", false, "Do not show a view after signing in")
}

// promptCredentials asks for whatever is missing. The password is never echoed on a
// terminal.
func promptCredentials(username string) (auth.Credentials, error) {
	reader := bufio.NewReader(os.Stdin)
	if strings.TrimSpace(username) == "" {
		u, err := terminal.ReadLine(reader, os.Stderr, "Username: ")
		if err != nil {
			return auth.Credentials{}, fmt.Errorf("read username: %w", err)
		}
		username = u
	}
	secret, err := terminal.ReadSecret("Password: ", reader)
	if err != nil {
		return auth.Credentials{}, fmt.Errorf("read password: %w", err)
	}
	return auth.Credentials{Identifier: strings.TrimSpace(username), Secret: secret}, nil
}

func loginGreeting(name string) string {
	greetings := []string{
		"🎉 Welcome back, %s!",
		"✨ Great to see you, %s!",
		"🚀 You're all set, %s!",
		"👋 Hello %s! Ready to plan?",
		"🔓 Access granted! Welcome %s!",
	}
	return fmt.Sprintf(greetings[rand.IntN(len(greetings))], name)
}
