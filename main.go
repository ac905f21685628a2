// Package main is the entry point for the taskboard CLI.
package main

import (
	"taskboard/cli/cmd"
)

func main() {
	cmd.Execute()
}
