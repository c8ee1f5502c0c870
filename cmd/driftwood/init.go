package main

import (
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/driftwood/internal/config"
	"github.com/gorewood/driftwood/internal/eventlog"
	"github.com/gorewood/driftwood/internal/git"
	"github.com/gorewood/driftwood/internal/hooks"
	"github.com/gorewood/driftwood/internal/output"
)

// initFlags holds the command-line flags for the init command.
type initFlags struct {
	mainBranch string
	noHooks    bool
	dryRun     bool
}

// initStepResult tracks the result of a single initialization step.
type initStepResult struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "skipped", "failed", "dry_run"
	Message string `json:"message,omitempty"`
}

// initState holds the current state of driftwood setup.
type initState struct {
	configuredMain string
	dbExists       bool
	hooksInstalled bool
}

// initStyleSet holds lipgloss styles for init output.
type initStyleSet struct {
	heading lipgloss.Style
	pass    lipgloss.Style
	skip    lipgloss.Style
	fail    lipgloss.Style
	dim     lipgloss.Style
	accent  lipgloss.Style
}

// initStyles returns a TTY-aware style set.
func initStyles(isTTY bool) initStyleSet {
	if !isTTY {
		return initStyleSet{}
	}
	return initStyleSet{
		heading: lipgloss.NewStyle().Bold(true),
		pass:    lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "10", Dark: "10"}),
		skip:    lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "8", Dark: "7"}),
		fail:    lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "9", Dark: "9"}),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "8", Dark: "7"}),
		accent:  lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "12", Dark: "12"}),
	}
}

// newInitCmd creates the init command.
func newInitCmd() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize driftwood in the current repository",
		Long: `Initialize driftwood in the current repository.

This command sets up everything needed to use driftwood:
  - Records the main branch name in git config
  - Creates the event database under .git/driftwood/
  - Installs the post-commit, post-checkout, and post-rewrite hooks

The command is idempotent - safe to run multiple times.

Examples:
  driftwood init                    # Set up with a detected main branch
  driftwood init --main-branch dev  # Name the main branch explicitly
  driftwood init --no-hooks         # Skip hook installation
  driftwood init --dry-run          # Show what would be done`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.mainBranch, "main-branch", "", "Main branch name (default: detected)")
	cmd.Flags().BoolVar(&flags.noHooks, "no-hooks", false, "Skip git hook installation")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Show what would be done without doing it")

	return cmd
}

// runInit executes the init command.
func runInit(cmd *cobra.Command, flags *initFlags) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())
	styles := initStyles(printer.IsTTY())

	if !git.IsRepo() {
		err := output.NewSystemError("not in a git repository")
		printer.Error(err)
		return err
	}

	state, err := gatherInitState()
	if err != nil {
		printer.Error(err)
		return err
	}

	if flags.dryRun {
		return handleInitDryRun(printer, state, flags)
	}

	return performInit(printer, styles, state, flags)
}

// gatherInitState checks the current driftwood setup state.
func gatherInitState() (*initState, error) {
	state := &initState{}

	configured, err := git.ConfigGet(config.MainBranchKey)
	if err != nil {
		return nil, err
	}
	state.configuredMain = configured

	gitDir, err := git.GitDir()
	if err != nil {
		return nil, err
	}
	state.dbExists = eventlog.Exists(gitDir)

	hooksDir, err := hooks.Dir()
	if err != nil {
		return nil, err
	}
	state.hooksInstalled = true
	for _, name := range hooks.Names {
		if !hooks.Check(filepath.Join(hooksDir, name)).Installed {
			state.hooksInstalled = false
		}
	}

	return state, nil
}

// resolveMainBranch picks the branch name to configure. An explicit flag
// wins, then the existing config, then whatever the repository has.
func resolveMainBranch(flagValue string, state *initState) string {
	if flagValue != "" {
		return flagValue
	}
	if state.configuredMain != "" {
		return state.configuredMain
	}
	for _, candidate := range []string{"main", "master", "trunk"} {
		if _, err := git.Run("rev-parse", "--verify", "--quiet", "refs/heads/"+candidate); err == nil {
			return candidate
		}
	}
	if current, err := git.Run("branch", "--show-current"); err == nil && current != "" {
		return current
	}
	return config.DefaultMainBranch
}

// isAlreadyInitialized checks if driftwood is fully initialized.
func isAlreadyInitialized(state *initState, flags *initFlags) bool {
	return state.configuredMain != "" &&
		flags.mainBranch == "" &&
		state.dbExists &&
		(flags.noHooks || state.hooksInstalled)
}

// performInit runs the actual initialization steps.
func performInit(printer *output.Printer, styles initStyleSet, state *initState, flags *initFlags) error {
	repoName := getRepoName()

	if isAlreadyInitialized(state, flags) {
		return outputAlreadyInitialized(printer, styles, repoName)
	}

	if !printer.IsJSON() {
		printer.Println()
		printer.Print("%s %s...\n", styles.heading.Render("Initializing driftwood in"), styles.dim.Render(repoName))
		printer.Println()
	}

	mainBranch := resolveMainBranch(flags.mainBranch, state)
	steps := []initStepResult{
		executeConfigStep(state, flags, mainBranch),
		executeEventDBStep(state),
		executeHooksStep(state, flags),
	}
	if !printer.IsJSON() {
		for _, step := range steps {
			printStepResult(printer, styles, step)
		}
	}

	return outputInitResult(printer, styles, repoName, mainBranch, steps)
}

// executeConfigStep records the main branch name in git config.
func executeConfigStep(state *initState, flags *initFlags, mainBranch string) initStepResult {
	if state.configuredMain == mainBranch {
		return initStepResult{Name: "main_branch", Status: "skipped", Message: "already configured (" + mainBranch + ")"}
	}
	if err := git.ConfigSet(config.MainBranchKey, mainBranch); err != nil {
		return initStepResult{Name: "main_branch", Status: "failed", Message: err.Error()}
	}
	return initStepResult{Name: "main_branch", Status: "ok", Message: "main branch set to " + mainBranch}
}

// executeEventDBStep creates the event database.
func executeEventDBStep(state *initState) initStepResult {
	if state.dbExists {
		return initStepResult{Name: "event_db", Status: "skipped", Message: "already exists"}
	}

	gitDir, err := git.GitDir()
	if err != nil {
		return initStepResult{Name: "event_db", Status: "failed", Message: err.Error()}
	}
	db, err := eventlog.Open(gitDir)
	if err != nil {
		return initStepResult{Name: "event_db", Status: "failed", Message: err.Error()}
	}
	if err := db.Close(); err != nil {
		return initStepResult{Name: "event_db", Status: "failed", Message: err.Error()}
	}
	return initStepResult{Name: "event_db", Status: "ok", Message: "created event log at " + eventlog.Path(gitDir)}
}

// executeHooksStep installs the git hooks, chaining over any existing ones.
func executeHooksStep(state *initState, flags *initFlags) initStepResult {
	if flags.noHooks {
		return initStepResult{Name: "hooks", Status: "skipped", Message: "disabled via --no-hooks"}
	}
	if state.hooksInstalled {
		return initStepResult{Name: "hooks", Status: "skipped", Message: "already installed"}
	}

	hooksDir, err := hooks.Dir()
	if err != nil {
		return initStepResult{Name: "hooks", Status: "failed", Message: err.Error()}
	}
	if _, err := installHooks(hooksDir, true, false); err != nil {
		return initStepResult{Name: "hooks", Status: "failed", Message: err.Error()}
	}
	return initStepResult{Name: "hooks", Status: "ok", Message: "installed post-commit, post-checkout, and post-rewrite hooks"}
}

// printStepResult prints one step line in human mode.
func printStepResult(printer *output.Printer, styles initStyleSet, step initStepResult) {
	switch step.Status {
	case "ok":
		printer.Print("  %s %s\n", styles.pass.Render("+"), step.Message)
	case "skipped":
		printer.Print("  %s %s\n", styles.skip.Render("-"), step.Message)
	case "failed":
		printer.Print("  %s %s\n", styles.fail.Render("!"), step.Message)
	}
}

// outputAlreadyInitialized handles the already-initialized case.
func outputAlreadyInitialized(printer *output.Printer, styles initStyleSet, repoName string) error {
	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"status":              "ok",
			"already_initialized": true,
			"repo_name":           repoName,
		})
	}
	printer.Println()
	printer.Print("%s %s\n", styles.pass.Render("Driftwood is already initialized in"), repoName)
	printer.Println()
	printer.Print("Run '%s' to check its state.\n", styles.accent.Render("driftwood status"))
	return nil
}

// outputInitResult outputs the final initialization result. A failed step
// makes the whole command fail, in JSON mode after the step list has been
// written so the caller can see which one.
func outputInitResult(printer *output.Printer, styles initStyleSet, repoName, mainBranch string, steps []initStepResult) error {
	failed := false
	for _, s := range steps {
		if s.Status == "failed" {
			failed = true
		}
	}

	if printer.IsJSON() {
		status := "ok"
		if failed {
			status = "failed"
		}
		if err := printer.Success(map[string]any{
			"status":              status,
			"repo_name":           repoName,
			"main_branch":         mainBranch,
			"already_initialized": false,
			"steps":               steps,
		}); err != nil {
			return err
		}
		if failed {
			return output.NewSystemError("initialization incomplete; fix the failed steps and re-run")
		}
		return nil
	}

	if failed {
		err := output.NewSystemError("initialization incomplete; fix the failed steps and re-run")
		printer.Error(err)
		return err
	}

	printer.Println()
	printer.Print("Make a commit, then run '%s' to see your graph.\n", styles.accent.Render("driftwood smartlog"))
	return nil
}

// handleInitDryRun outputs what would be done without making changes.
func handleInitDryRun(printer *output.Printer, state *initState, flags *initFlags) error {
	mainBranch := resolveMainBranch(flags.mainBranch, state)
	steps := []initStepResult{
		buildConfigDryRunStep(state, mainBranch),
		buildEventDBDryRunStep(state),
		buildHooksDryRunStep(state, flags),
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"status":    "dry_run",
			"repo_name": getRepoName(),
			"steps":     steps,
		})
	}

	printer.Section("Dry Run")
	for _, step := range steps {
		printer.KeyValue(step.Name, step.Message)
	}
	return nil
}

// buildConfigDryRunStep creates the dry-run step for the main branch config.
func buildConfigDryRunStep(state *initState, mainBranch string) initStepResult {
	if state.configuredMain == mainBranch {
		return initStepResult{Name: "main_branch", Status: "skipped", Message: "already configured (" + mainBranch + ")"}
	}
	return initStepResult{Name: "main_branch", Status: "dry_run", Message: "would set main branch to " + mainBranch}
}

// buildEventDBDryRunStep creates the dry-run step for the event database.
func buildEventDBDryRunStep(state *initState) initStepResult {
	if state.dbExists {
		return initStepResult{Name: "event_db", Status: "skipped", Message: "already exists"}
	}
	return initStepResult{Name: "event_db", Status: "dry_run", Message: "would create the event database"}
}

// buildHooksDryRunStep creates the dry-run step for hooks.
func buildHooksDryRunStep(state *initState, flags *initFlags) initStepResult {
	switch {
	case flags.noHooks:
		return initStepResult{Name: "hooks", Status: "skipped", Message: "disabled via --no-hooks"}
	case state.hooksInstalled:
		return initStepResult{Name: "hooks", Status: "skipped", Message: "already installed"}
	default:
		return initStepResult{Name: "hooks", Status: "dry_run", Message: "would install post-commit, post-checkout, and post-rewrite hooks"}
	}
}

// getRepoName returns the name of the current repository.
func getRepoName() string {
	root, err := git.RepoRoot()
	if err != nil {
		return "unknown"
	}
	return filepath.Base(root)
}
