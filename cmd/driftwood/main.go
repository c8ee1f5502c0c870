// Package main provides the entry point for the driftwood CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/driftwood/internal/config"
	"github.com/gorewood/driftwood/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		// Walk up to root to find the persistent flag
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// useColor resolves the effective color setting from the --color flag, the
// config file, and TTY detection, in that order.
func useColor(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("color")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("color")
	}
	mode := "auto"
	if flag != nil {
		mode = flag.Value.String()
	}
	if mode == "auto" {
		if settings, err := config.Load(config.Dir()); err == nil && settings.Color != "" {
			mode = settings.Color
		}
	}
	return output.ResolveColorMode(mode, output.IsTTY(cmd.OutOrStdout()))
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the driftwood CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "driftwood",
		Short: "Navigate an evolving commit graph",
		Long: `Driftwood - step through a commit graph without naming commits.

Driftwood keeps an append-only event log of commits, checkouts, and
rewrites. Every command replays it to learn which commits were obsoleted
by amends and rebases, then navigates over them:
  - prev/next move through the stack, skipping obsolete commits
  - forks resolve by --newest/--oldest, config, or an interactive menu
  - smartlog draws the visible graph with your stacks attached
  - pick jumps straight to any numbered commit

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// If --json flag is set but no subcommand, output JSON error
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'driftwood --help' for usage")
				printer.Error(err)
				return err
			}
			// Otherwise show help
			return cmd.Help()
		},
	}

	// Persistent flags available to all subcommands
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", "auto", "Color output: auto, always, never")

	// Configure lipgloss for TTY detection
	lipgloss.SetHasDarkBackground(true)

	// Define command groups and add commands
	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "nav", Title: "Navigation Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "view", Title: "View Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	// Navigation commands: prev, next, pick
	addGroupedCommand(cmd, newPrevCmd(), "nav")
	addGroupedCommand(cmd, newNextCmd(), "nav")
	addGroupedCommand(cmd, newPickCmd(), "nav")

	// View commands: smartlog, status
	addGroupedCommand(cmd, newSmartlogCmd(), "view")
	addGroupedCommand(cmd, newStatusCmd(), "view")

	// Admin commands: init, hooks, serve
	addGroupedCommand(cmd, newInitCmd(), "admin")
	addGroupedCommand(cmd, newHooksCmd(), "admin")
	addGroupedCommand(cmd, newServeCmd(), "admin")

	// Hidden internal commands
	cmd.AddCommand(newHookCmd())
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
