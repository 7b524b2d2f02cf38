// Package cmd implements the lumen CLI's subcommands (run, parse,
// lex, repl), wiring pkg/lumen's embedding facade to a cobra-based
// front end the way go-dws's own cmd package wires its interpreter to
// a CLI (see SPEC_FULL.md's AMBIENT STACK section).
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lumen",
	Short: "lumen is an embeddable interpreter for a small ECMAScript-like scripting language",
}

// Execute runs the root command; main.go's sole responsibility is
// calling this and reporting a non-nil error.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(runCmd, parseCmd, lexCmd, replCmd)
}
