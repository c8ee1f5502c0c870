package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gorewood/driftwood/internal/git"
	"github.com/gorewood/driftwood/internal/output"
)

// newPrevCmd creates the prev command.
func newPrevCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prev [count]",
		Short: "Check out an ancestor commit",
		Long: `Check out the parent of the current commit, or the nth ancestor.

Going backward follows the single parent chain, so no disambiguation is
needed. After a successful checkout the graph view is printed.

Examples:
  driftwood prev     # Check out the parent commit
  driftwood prev 3   # Check out the great-grandparent`,
		Args: cobra.MaximumNArgs(1),
		RunE: runPrev,
	}
}

// runPrev executes the prev command.
func runPrev(cmd *cobra.Command, args []string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())

	count, err := parseCount(args)
	if err != nil {
		printer.Error(err)
		return err
	}

	if !git.IsRepo() {
		err := output.NewSystemError("not in a git repository")
		printer.Error(err)
		return err
	}

	target := "HEAD^"
	if len(args) == 1 {
		target = fmt.Sprintf("HEAD~%d", count)
	}
	return checkoutAndRefresh(cmd, printer, target)
}

// runCheckout shells out to git checkout. A failed checkout surfaces
// git's own exit code.
func runCheckout(cmd *cobra.Command, printer *output.Printer, target string) error {
	stdout := cmd.OutOrStdout()
	if printer.IsJSON() {
		// Keep stdout parseable; git's chatter belongs on the error stream
		stdout = cmd.ErrOrStderr()
	}
	code, err := git.RunExitCode(cmd.Context(), stdout, cmd.ErrOrStderr(), "checkout", target)
	if err != nil {
		printer.Error(err)
		return err
	}
	if code != 0 {
		// git already explained itself on stderr
		return output.NewCommandExitError(code, "git checkout failed")
	}
	return nil
}

// checkoutAndRefresh runs git checkout and, on success, prints the graph
// view (or the new HEAD in JSON mode).
func checkoutAndRefresh(cmd *cobra.Command, printer *output.Printer, target string) error {
	if err := runCheckout(cmd, printer, target); err != nil {
		return err
	}

	if printer.IsJSON() {
		head, headErr := git.Run("rev-parse", "HEAD")
		if headErr != nil {
			printer.Error(headErr)
			return headErr
		}
		return printer.Success(map[string]any{"checked_out": head})
	}

	settings := loadSettings(printer)
	if err := refreshView(cmd, printer, settings); err != nil {
		printer.Error(err)
		return err
	}
	return nil
}
