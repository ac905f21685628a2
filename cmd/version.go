// Copyright (c) 2025 Taskboard
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"fmt"
)

var (
	// Version holds the CLI version information.
	// This value is typically set at build time using -ldflags.
	Version = "0.0.0-dev"
)

// printVersion prints the CLI version and, for the http provider, the API's.
func printVersion(ctx context.Context) error {
	fmt.Printf("taskboard %s\n", Version)
	if current == nil || current.api == nil {
		fmt.Println("api mock (in-process)")
		return nil
	}
	v, err := current.api.GetVersion(ctx)
	if err != nil {
		current.log.Debug("version lookup failed", "error", err)
		v = "unknown"
	}
	fmt.Printf("api %s (%s)\n", v, current.api.BaseURL())
	return nil
}
