package git

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/gorewood/driftwood/internal/config"
	"github.com/gorewood/driftwood/internal/output"
)

// Run executes a git command with the given arguments.
// It captures stdout and returns it as a trimmed string.
// Returns an *output.ExitError on failure with appropriate exit code.
func Run(args ...string) (string, error) {
	return RunContext(context.Background(), args...)
}

// RunContext executes a git command with the given context and arguments.
// It captures stdout and returns it as a trimmed string.
// Returns an *output.ExitError on failure with appropriate exit code.
func RunContext(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		// Check if git is not found
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return "", output.NewSystemError("git not found: ensure git is installed and in PATH")
		}

		// Git command failed - include stderr in message
		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = err.Error()
		}
		return "", output.NewSystemErrorWithCause("git command failed: "+errMsg, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// RunExitCode executes a git command with the given writers for stdout and
// stderr and the process's stdin, and returns the command's exit code. A
// non-zero code is not an error here; the caller owns its interpretation.
// Checkout goes through this path so git's own output and exit code reach
// the user unchanged.
func RunExitCode(ctx context.Context, stdout, stderr io.Writer, args ...string) (int, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}

	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return 0, output.NewSystemError("git not found: ensure git is installed and in PATH")
	}
	return 0, output.NewSystemErrorWithCause("git command failed", err)
}

// IsRepo checks if the current directory is inside a git repository.
func IsRepo() bool {
	_, err := Run("rev-parse", "--git-dir")
	return err == nil
}

// RepoRoot returns the root directory of the current git repository.
// Returns an error if not in a git repository.
func RepoRoot() (string, error) {
	root, err := Run("rev-parse", "--show-toplevel")
	if err != nil {
		return "", output.NewSystemErrorWithCause("not in a git repository", err)
	}
	return root, nil
}

// GitDir returns the absolute path of the repository's .git directory.
// Worktrees resolve to their own git directory.
func GitDir() (string, error) {
	dir, err := Run("rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", output.NewSystemErrorWithCause("not in a git repository", err)
	}
	return dir, nil
}

// ConfigGet reads a git config value for the current repository.
// An unset key returns an empty string with no error.
func ConfigGet(key string) (string, error) {
	cmd := exec.Command("git", "config", "--get", key)
	out, err := cmd.Output()
	if err != nil {
		// git config --get exits 1 when the key is simply unset
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return "", nil
		}
		return "", output.NewSystemErrorWithCause("git config --get "+key+" failed", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// ConfigSet writes a git config value for the current repository.
func ConfigSet(key, value string) error {
	_, err := Run("config", key, value)
	return err
}

// MainBranch returns the configured main branch name for the repository,
// falling back to the default when driftwood.mainBranch is unset.
func MainBranch() string {
	name, err := ConfigGet(config.MainBranchKey)
	if err != nil || name == "" {
		return config.DefaultMainBranch
	}
	return name
}
