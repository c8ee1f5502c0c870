package main

import (
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gorewood/driftwood/internal/eventlog"
	"github.com/gorewood/driftwood/internal/git"
	"github.com/gorewood/driftwood/internal/hooks"
	"github.com/gorewood/driftwood/internal/output"
)

// statusResult holds the data for status output.
type statusResult struct {
	Repo           string `json:"repo"`
	Branch         string `json:"branch"`
	Head           string `json:"head"`
	MainBranch     string `json:"main_branch"`
	DBPath         string `json:"event_db"`
	DBExists       bool   `json:"db_exists"`
	EventCount     int64  `json:"event_count"`
	ObsoleteCount  int    `json:"obsolete_count"`
	HooksInstalled int    `json:"hooks_installed"`
	CommitEvents   int    `json:"commit_events,omitempty"`
	CheckoutEvents int    `json:"checkout_events,omitempty"`
	RewriteEvents  int    `json:"rewrite_events,omitempty"`
}

// newStatusCmd creates the status command.
func newStatusCmd() *cobra.Command {
	var verboseFlag bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show repository and event log state",
		Long: `Show the current state of the repository and the driftwood event log.

Displays repository info (name, branch, HEAD), the event database, and
how many commits the log marks obsolete.

Examples:
  driftwood status            # Show human-readable status
  driftwood status --verbose  # Break the event count down by kind
  driftwood status --json     # Output status as JSON for scripting`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, args, verboseFlag)
		},
	}
	cmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Show detailed event statistics")
	return cmd
}

// runStatus executes the status command.
func runStatus(cmd *cobra.Command, _ []string, verbose bool) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())

	if !git.IsRepo() {
		err := output.NewSystemError("not in a git repository")
		printer.Error(err)
		return err
	}

	result, err := gatherStatus()
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		data := map[string]any{
			"repo":            result.Repo,
			"branch":          result.Branch,
			"head":            result.Head,
			"main_branch":     result.MainBranch,
			"event_db":        result.DBPath,
			"db_exists":       result.DBExists,
			"event_count":     result.EventCount,
			"obsolete_count":  result.ObsoleteCount,
			"hooks_installed": result.HooksInstalled,
		}
		if verbose {
			data["commit_events"] = result.CommitEvents
			data["checkout_events"] = result.CheckoutEvents
			data["rewrite_events"] = result.RewriteEvents
		}
		return printer.Success(data)
	}

	printHumanStatus(printer, result, verbose)
	return nil
}

// gatherStatus collects all status information.
func gatherStatus() (*statusResult, error) {
	root, err := git.RepoRoot()
	if err != nil {
		return nil, err
	}

	branch, err := git.Run("branch", "--show-current")
	if err != nil {
		return nil, err
	}
	if branch == "" {
		branch = "(detached)"
	}

	// An unborn branch has no HEAD commit yet
	head, headErr := git.Run("rev-parse", "HEAD")
	if headErr != nil {
		head = ""
	}

	gitDir, err := git.GitDir()
	if err != nil {
		return nil, err
	}

	result := &statusResult{
		Repo:       filepath.Base(root),
		Branch:     branch,
		Head:       head,
		MainBranch: git.MainBranch(),
		DBPath:     eventlog.Path(gitDir),
		DBExists:   eventlog.Exists(gitDir),
	}

	hooksDir, err := hooks.Dir()
	if err != nil {
		return nil, err
	}
	for _, name := range hooks.Names {
		if hooks.Check(filepath.Join(hooksDir, name)).Installed {
			result.HooksInstalled++
		}
	}

	if !result.DBExists {
		return result, nil
	}

	db, err := eventlog.Open(gitDir)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	count, err := db.Count()
	if err != nil {
		return nil, err
	}
	result.EventCount = count

	events, err := db.Events()
	if err != nil {
		return nil, err
	}
	result.ObsoleteCount = len(eventlog.Replay(events).Obsolete)
	for _, ev := range events {
		switch ev.Kind {
		case eventlog.KindCommit:
			result.CommitEvents++
		case eventlog.KindCheckout:
			result.CheckoutEvents++
		case eventlog.KindRewrite:
			result.RewriteEvents++
		}
	}

	return result, nil
}

// printHumanStatus outputs status in human-readable format.
func printHumanStatus(printer *output.Printer, status *statusResult, verbose bool) {
	printer.Section("Repository")
	printer.KeyValue("Repo", status.Repo)
	printer.KeyValue("Branch", status.Branch)
	if status.Head == "" {
		printer.KeyValue("HEAD", "(none)")
	} else {
		printer.KeyValue("HEAD", status.Head[:min(12, len(status.Head))])
	}
	printer.KeyValue("Main Branch", status.MainBranch)

	printer.Section("Event Log")
	printer.KeyValue("Database", status.DBPath)
	printer.KeyValue("Initialized", formatBool(status.DBExists))
	printer.KeyValue("Hooks", strconv.Itoa(status.HooksInstalled)+"/"+strconv.Itoa(len(hooks.Names)))
	if !status.DBExists {
		return
	}

	printer.KeyValue("Events", strconv.FormatInt(status.EventCount, 10))
	printer.KeyValue("Obsolete Commits", strconv.Itoa(status.ObsoleteCount))
	if verbose {
		printer.KeyValue("Commit Events", strconv.Itoa(status.CommitEvents))
		printer.KeyValue("Checkout Events", strconv.Itoa(status.CheckoutEvents))
		printer.KeyValue("Rewrite Events", strconv.Itoa(status.RewriteEvents))
	}
}

// formatBool returns a human-readable boolean string.
func formatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
