package main

import (
	"bufio"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/driftwood/internal/eventlog"
	"github.com/gorewood/driftwood/internal/git"
)

// newHookCmd creates the hidden hook parent command for internal hook execution.
func newHookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "hook",
		Short:  "Internal hook runner",
		Long:   `Internal command for running hook logic. Called by git hooks.`,
		Hidden: true,
	}

	cmd.AddCommand(newHookRunCmd())
	return cmd
}

// newHookRunCmd creates the hook run subcommand.
func newHookRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <hook-name> [args...]",
		Short: "Execute hook logic",
		Long:  `Execute the logic for the specified hook. Called by installed git hooks.`,
		Args:  cobra.MinimumNArgs(1),
		RunE:  runHookRun,
	}
}

// runHookRun executes the hook run command. Every path succeeds: a hook
// that fails would block the git operation that triggered it.
func runHookRun(cmd *cobra.Command, args []string) error {
	switch args[0] {
	case "post-commit":
		return runPostCommitHook()
	case "post-checkout":
		return runPostCheckoutHook(args[1:])
	case "post-rewrite":
		return runPostRewriteHook(cmd, args[1:])
	default:
		// Unknown hook - silently succeed to not block operations
		return nil
	}
}

// openHookLog opens the event log if this repository has one. Repositories
// that never ran init have no log, and their hooks stay silent.
func openHookLog() (*eventlog.DB, bool) {
	if !git.IsRepo() {
		return nil, false
	}
	gitDir, err := git.GitDir()
	if err != nil {
		return nil, false
	}
	if !eventlog.Exists(gitDir) {
		return nil, false
	}
	db, err := eventlog.Open(gitDir)
	if err != nil {
		return nil, false
	}
	return db, true
}

// runPostCommitHook records the commit that HEAD now points at.
func runPostCommitHook() error {
	db, ok := openHookLog()
	if !ok {
		return nil
	}
	defer db.Close()

	head, err := git.Run("rev-parse", "HEAD")
	if err != nil {
		return nil //nolint:nilerr // intentional: hooks must not block git operations
	}
	branch, _ := git.Run("branch", "--show-current")
	subject, _ := git.Run("log", "-1", "--format=%s")

	_ = db.Append(&eventlog.Event{
		Kind:    eventlog.KindCommit,
		NewOid:  head,
		RefName: branch,
		Message: subject,
	})
	return nil
}

// runPostCheckoutHook records a HEAD movement. Git invokes the hook with
// the previous oid, the new oid, and a flag that is 1 for branch checkouts
// and 0 for file checkouts; only branch checkouts move HEAD.
func runPostCheckoutHook(args []string) error {
	if len(args) < 3 || args[2] != "1" {
		return nil
	}

	db, ok := openHookLog()
	if !ok {
		return nil
	}
	defer db.Close()

	branch, _ := git.Run("branch", "--show-current")
	_ = db.Append(&eventlog.Event{
		Kind:    eventlog.KindCheckout,
		OldOid:  args[0],
		NewOid:  args[1],
		RefName: branch,
	})
	return nil
}

// runPostRewriteHook records amended or rebased commits. Git writes one
// "old-oid new-oid" pair per rewritten commit on the hook's stdin.
func runPostRewriteHook(cmd *cobra.Command, args []string) error {
	db, ok := openHookLog()
	if !ok {
		return nil
	}
	defer db.Close()

	rewriteKind := ""
	if len(args) > 0 {
		rewriteKind = args[0]
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		_ = db.Append(&eventlog.Event{
			Kind:    eventlog.KindRewrite,
			OldOid:  fields[0],
			NewOid:  fields[1],
			Message: rewriteKind,
		})
	}
	return nil
}
