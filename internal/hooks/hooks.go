// Package hooks generates and inspects the git hooks that feed the
// driftwood event log.
package hooks

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gorewood/driftwood/internal/git"
	"github.com/gorewood/driftwood/internal/output"
)

// Names lists the hooks driftwood installs, in install order.
var Names = []string{"post-commit", "post-checkout", "post-rewrite"}

// purposes maps each hook to the comment line written into its script.
var purposes = map[string]string{
	"post-commit":   "Records new commits in the driftwood event log",
	"post-checkout": "Records HEAD movement in the driftwood event log",
	"post-rewrite":  "Records rewritten commits in the driftwood event log",
}

// Status represents the state of a single git hook file.
type Status struct {
	Installed bool
	Chained   bool
}

// Dir returns the hooks directory for the current repository. Worktrees
// resolve to their own git directory, so each worktree gets its own hooks.
func Dir() (string, error) {
	gitDir, err := git.GitDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(gitDir, "hooks"), nil
}

// Exists checks if a hook file exists at the given path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Check reads a hook file and reports whether it is a driftwood hook and
// whether it chains to a backed-up original.
func Check(path string) Status {
	status := Status{}

	content, err := os.ReadFile(path)
	if err != nil {
		return status
	}

	contentStr := string(content)
	if strings.Contains(contentStr, "driftwood hook run") {
		status.Installed = true
		status.Chained = strings.Contains(contentStr, ".backup")
	}

	return status
}

// Script generates the shell script for the named hook. If withChain is
// true, the script hands off to the backed-up original hook afterwards.
func Script(name string, withChain bool) string {
	script := `#!/bin/sh
# driftwood ` + name + ` hook
# ` + purposes[name] + `

if command -v driftwood >/dev/null 2>&1; then
  driftwood hook run ` + name + ` "$@"
fi
`

	if withChain {
		script += `
# Chain to original hook if it exists
if [ -x "$0.backup" ]; then
  exec "$0.backup" "$@"
fi
`
	}

	return script
}

// Backup moves an existing hook to a .backup location.
func Backup(path string) error {
	if err := os.Rename(path, path+".backup"); err != nil {
		return output.NewSystemErrorWithCause("failed to backup existing hook", err)
	}
	return nil
}

// DescribeInstall returns a human-readable description of what the install
// operation would do given the current state.
func DescribeInstall(existingHook, chain, force bool) string {
	if !existingHook {
		return "would install"
	}
	switch {
	case force:
		return "would overwrite existing hook"
	case chain:
		return "would backup and chain existing hook"
	default:
		return "would fail (hook exists, use --chain or --force)"
	}
}

// DescribeUninstall returns a human-readable description of what the
// uninstall operation would do given the current state.
func DescribeUninstall(installed, hasBackup bool) string {
	switch {
	case !installed:
		return "no driftwood hook installed"
	case hasBackup:
		return "would remove and restore backup"
	default:
		return "would remove"
	}
}
