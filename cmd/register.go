// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"taskboard/cli/internal/auth"
	"taskboard/cli/internal/backend"
	apperrors "taskboard/cli/internal/errors"
	"taskboard/cli/internal/router"
	"taskboard/cli/internal/terminal"
)

var registerFlags struct {
	username string
	name     string
	email    string
}

var errPasswordMismatch = apperrors.New(apperrors.ValidationError, "Passwords do not match.")

// registerCmd creates an account with the identity provider.
var registerCmd = &cobra.Command{
	Use:     "register",
	Aliases: []string{"signup"},
	Short:   "Create a taskboard account",
	Long: `The register command creates an account with the identity provider. Missing
details are asked for interactively; the password is asked twice and never echoed.

Registering does not sign you in. Run 'taskboard login' afterwards.`,
	Annotations: map[string]string{annGuestOnly: "true", annRoute: router.PathLogin},
	Args:        cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := promptRegistration(backend.Registration{
			Username: registerFlags.username,
			Name:     registerFlags.name,
			Email:    registerFlags.email,
		})
		if err != nil {
			return err
		}

		var id *auth.Identity
		err = spin("Creating account", func() error {
			var err error
			id, err = registerAccount(cmd.Context(), current, reg)
			return err
		})
		if err != nil {
			return err
		}

		pterm.Printf("✅ Account created for %s (%s)\n", id.DisplayName(), id.Username)
		pterm.Printf("   Run 'taskboard login -u %s' to sign in.\n", id.Username)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVarP(&registerFlags.username, "username", "u", "", "Username (prompted when empty)")
	registerCmd.Flags().StringVar(&registerFlags.name, "name", "", "Full name (prompted when empty)")
	registerCmd.Flags().StringVar(&registerFlags.email, "email", "", "Email address (prompted when empty)")
}

// registerAccount validates reg locally and sends it to the provider.
func registerAccount(ctx context.Context, a *app, reg backend.Registration) (*auth.Identity, error) {
	r, ok := a.provider.(backend.Registrar)
	if !ok {
		return nil, errors.New("the configured identity provider does not support registration")
	}
	reg = reg.Normalize()
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return r.Register(ctx, reg)
}

func promptRegistration(reg backend.Registration) (backend.Registration, error) {
	reader := bufio.NewReader(os.Stdin)
	ask := func(field *string, label string) error {
		if strings.TrimSpace(*field) != "" {
			return nil
		}
		v, err := terminal.ReadLine(reader, os.Stderr, label+": ")
		if err != nil {
			return fmt.Errorf("read %s: %w", strings.ToLower(label), err)
		}
		*field = v
		return nil
	}
	if err := ask(&reg.Username, "Username"); err != nil {
		return reg, err
	}
	if err := ask(&reg.Name, "Name"); err != nil {
		return reg, err
	}
	if err := ask(&reg.Email, "Email"); err != nil {
		return reg, err
	}

	password, err := terminal.ReadSecret("Password: ", reader)
	if err != nil {
		return reg, fmt.Errorf("read password: %w", err)
	}
	confirm, err := terminal.ReadSecret("Confirm password: ", reader)
	if err != nil {
		return reg, fmt.Errorf("read password: %w", err)
	}
	if password != confirm {
		return reg, errPasswordMismatch
	}
	reg.Password = password
	return reg, nil
}
