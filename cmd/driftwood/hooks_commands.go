package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gorewood/driftwood/internal/git"
	"github.com/gorewood/driftwood/internal/hooks"
	"github.com/gorewood/driftwood/internal/output"
)

// newHooksInstallCmd creates the hooks install subcommand.
func newHooksInstallCmd() *cobra.Command {
	var chain bool
	var force bool
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install driftwood git hooks",
		Long: `Install the post-commit, post-checkout, and post-rewrite hooks.

The hooks append events to the driftwood log and never block git.
Use --chain to preserve existing hooks (runs them after driftwood).
Use --force to overwrite existing hooks without backup.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHooksInstall(cmd, chain, force, dryRun)
		},
	}

	cmd.Flags().BoolVar(&chain, "chain", false, "Preserve existing hooks, run them after driftwood")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing hooks without backup")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without doing it")

	return cmd
}

// runHooksInstall executes the hooks install command.
func runHooksInstall(cmd *cobra.Command, chain, force, dryRun bool) error {
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

	if dryRun {
		return handleInstallDryRun(printer, hooksDir, chain, force)
	}

	chained, err := installHooks(hooksDir, chain, force)
	if err != nil {
		printer.Error(err)
		return err
	}
	return outputInstallSuccess(printer, chained)
}

// installHooks writes every driftwood hook, backing up or failing on
// collisions per the flags. Returns which hooks chained to a backup.
func installHooks(hooksDir string, chain, force bool) (map[string]bool, error) {
	chained := make(map[string]bool, len(hooks.Names))
	for _, name := range hooks.Names {
		hookPath := filepath.Join(hooksDir, name)
		existing := hooks.Exists(hookPath)
		ours := hooks.Check(hookPath).Installed

		// A hook we wrote earlier is replaced in place, never backed up
		if existing && !ours && !force {
			if !chain {
				return nil, output.NewConflictError(
					name + " hook already exists; use --chain to preserve or --force to overwrite")
			}
			if err := hooks.Backup(hookPath); err != nil {
				return nil, err
			}
		}

		withChain := chain && existing && !ours
		script := hooks.Script(name, withChain)
		// #nosec G306 -- hook needs execute permission
		if err := os.WriteFile(hookPath, []byte(script), 0o755); err != nil {
			return nil, output.NewSystemErrorWithCause("failed to write "+name+" hook", err)
		}
		chained[name] = withChain
	}
	return chained, nil
}

// outputInstallSuccess outputs the success message for install.
func outputInstallSuccess(printer *output.Printer, chained map[string]bool) error {
	anyChained := false
	for _, c := range chained {
		if c {
			anyChained = true
		}
	}

	if printer.IsJSON() {
		data := make(map[string]any, len(chained))
		for name, c := range chained {
			data[name] = map[string]any{"chained": c}
		}
		return printer.Success(map[string]any{
			"status": "ok",
			"hooks":  data,
		})
	}

	msg := "Installed post-commit, post-checkout, and post-rewrite hooks"
	if anyChained {
		msg += " (existing hooks backed up and chained)"
	}
	return printer.Success(map[string]any{"message": msg})
}

// handleInstallDryRun handles dry-run output for install.
func handleInstallDryRun(printer *output.Printer, hooksDir string, chain, force bool) error {
	if printer.IsJSON() {
		data := make(map[string]any, len(hooks.Names))
		for _, name := range hooks.Names {
			hookPath := filepath.Join(hooksDir, name)
			existing := hooks.Exists(hookPath) && !hooks.Check(hookPath).Installed
			data[name] = map[string]any{
				"exists":          existing,
				"would_chain":     chain && existing,
				"would_overwrite": force && existing,
			}
		}
		return printer.Success(map[string]any{
			"status": "dry_run",
			"hooks":  data,
		})
	}

	printer.Section("Dry Run")
	printer.KeyValue("Directory", hooksDir)
	for _, name := range hooks.Names {
		hookPath := filepath.Join(hooksDir, name)
		existing := hooks.Exists(hookPath) && !hooks.Check(hookPath).Installed
		printer.KeyValue(name, hooks.DescribeInstall(existing, chain, force))
	}
	return nil
}

// newHooksUninstallCmd creates the hooks uninstall subcommand.
func newHooksUninstallCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove driftwood git hooks",
		Long:  `Remove driftwood git hooks and restore any backups.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHooksUninstall(cmd, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without doing it")

	return cmd
}

// runHooksUninstall executes the hooks uninstall command.
func runHooksUninstall(cmd *cobra.Command, dryRun bool) error {
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

	if dryRun {
		return handleUninstallDryRun(printer, hooksDir)
	}

	removed, restored, err := uninstallHooks(hooksDir)
	if err != nil {
		printer.Error(err)
		return err
	}
	return outputUninstallSuccess(printer, removed, restored)
}

// uninstallHooks removes every installed driftwood hook and restores
// backups where present.
func uninstallHooks(hooksDir string) (removed, restored []string, err error) {
	for _, name := range hooks.Names {
		hookPath := filepath.Join(hooksDir, name)
		if !hooks.Check(hookPath).Installed {
			continue
		}

		if err := os.Remove(hookPath); err != nil {
			return nil, nil, output.NewSystemErrorWithCause("failed to remove "+name+" hook", err)
		}
		removed = append(removed, name)

		backupPath := hookPath + ".backup"
		if hooks.Exists(backupPath) {
			if err := os.Rename(backupPath, hookPath); err != nil {
				return nil, nil, output.NewSystemErrorWithCause("failed to restore "+name+" backup", err)
			}
			restored = append(restored, name)
		}
	}
	return removed, restored, nil
}

// outputUninstallSuccess outputs the success message for uninstall.
func outputUninstallSuccess(printer *output.Printer, removed, restored []string) error {
	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"status":   "ok",
			"removed":  append([]string{}, removed...),
			"restored": append([]string{}, restored...),
		})
	}

	if len(removed) == 0 {
		return printer.Success(map[string]any{"message": "No driftwood hooks installed"})
	}

	msg := "Removed " + joinNames(removed)
	if len(restored) > 0 {
		msg += " and restored originals"
	}
	return printer.Success(map[string]any{"message": msg})
}

// handleUninstallDryRun handles dry-run output for uninstall.
func handleUninstallDryRun(printer *output.Printer, hooksDir string) error {
	if printer.IsJSON() {
		data := make(map[string]any, len(hooks.Names))
		for _, name := range hooks.Names {
			hookPath := filepath.Join(hooksDir, name)
			installed := hooks.Check(hookPath).Installed
			hasBackup := hooks.Exists(hookPath + ".backup")
			data[name] = map[string]any{
				"installed":     installed,
				"has_backup":    hasBackup,
				"would_restore": installed && hasBackup,
			}
		}
		return printer.Success(map[string]any{
			"status": "dry_run",
			"hooks":  data,
		})
	}

	printer.Section("Dry Run")
	printer.KeyValue("Directory", hooksDir)
	for _, name := range hooks.Names {
		hookPath := filepath.Join(hooksDir, name)
		installed := hooks.Check(hookPath).Installed
		hasBackup := hooks.Exists(hookPath + ".backup")
		printer.KeyValue(name, hooks.DescribeUninstall(installed, hasBackup))
	}
	return nil
}

// joinNames renders hook names for a human message.
func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return "no hooks"
	case 1:
		return names[0] + " hook"
	}
	out := ""
	for i, name := range names {
		switch {
		case i == 0:
			out = name
		case i == len(names)-1:
			out += " and " + name
		default:
			out += ", " + name
		}
	}
	return out + " hooks"
}
