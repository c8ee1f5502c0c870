package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gorewood/driftwood/internal/git"
	"github.com/gorewood/driftwood/internal/hooks"
	"github.com/gorewood/driftwood/internal/output"
)

// newHooksCmd creates the hooks parent command with subcommands.
func newHooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "Manage git hooks for driftwood",
		Long: `Manage the git hooks that feed the driftwood event log.

Driftwood installs post-commit, post-checkout, and post-rewrite hooks.
They record each commit, HEAD movement, and history rewrite so that
navigation knows which commits are obsolete. The hooks never block git.

Subcommands:
  install    Install driftwood git hooks
  uninstall  Remove driftwood git hooks
  list       Show status of hooks

Examples:
  driftwood hooks list              # Show hook status
  driftwood hooks install           # Install all three hooks
  driftwood hooks install --chain   # Install and preserve existing hooks
  driftwood hooks uninstall         # Remove hooks, restore backups`,
	}

	cmd.AddCommand(newHooksListCmd())
	cmd.AddCommand(newHooksInstallCmd())
	cmd.AddCommand(newHooksUninstallCmd())
	return cmd
}

// newHooksListCmd creates the hooks list subcommand.
func newHooksListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show status of git hooks",
		Long:  `Show the installation status of each driftwood hook.`,
		RunE:  runHooksList,
	}
}

// runHooksList executes the hooks list command.
func runHooksList(cmd *cobra.Command, _ []string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())

	if !git.IsRepo() {
		err := output.NewSystemError("not in a git repository")
		printer.Error(err)
		return err
	}

	hooksDir, err := hooks.Dir()
	if err != nil {
		printer.Error(err)
		return err
	}

	statuses := make(map[string]hooks.Status, len(hooks.Names))
	for _, name := range hooks.Names {
		statuses[name] = hooks.Check(filepath.Join(hooksDir, name))
	}

	if printer.IsJSON() {
		data := make(map[string]any, len(statuses))
		for name, status := range statuses {
			data[name] = map[string]any{
				"installed": status.Installed,
				"chained":   status.Chained,
			}
		}
		return printer.Success(map[string]any{"hooks": data})
	}

	printer.Section("Git Hooks")
	rows := make([][]string, 0, len(hooks.Names))
	for _, name := range hooks.Names {
		rows = append(rows, []string{name, describeStatus(statuses[name])})
	}
	printer.Table([]string{"HOOK", "STATUS"}, rows)
	return nil
}

// describeStatus renders a hook status for the list table.
func describeStatus(status hooks.Status) string {
	if !status.Installed {
		return "not installed"
	}
	if status.Chained {
		return "installed (chained)"
	}
	return "installed"
}
