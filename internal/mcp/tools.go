package mcp

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/driftwood/internal/eventlog"
	"github.com/gorewood/driftwood/internal/git"
	"github.com/gorewood/driftwood/internal/smartlog"
)

// --- Shared types ---

// GraphCommit is one commit of the smartlog graph.
type GraphCommit struct {
	Number   int      `json:"number"             jsonschema:"pick number of this commit"`
	Hash     string   `json:"hash"               jsonschema:"full commit hash"`
	Short    string   `json:"short"              jsonschema:"short hash (8 chars)"`
	Subject  string   `json:"subject"            jsonschema:"commit subject line"`
	Head     bool     `json:"head,omitempty"     jsonschema:"whether this commit is checked out"`
	Public   bool     `json:"public,omitempty"   jsonschema:"whether this commit is on the main branch"`
	Obsolete bool     `json:"obsolete,omitempty" jsonschema:"whether this commit was rewritten"`
	Branches []string `json:"branches,omitempty" jsonschema:"branch names pointing at this commit"`
}

// CheckoutResult reports where a navigation tool moved HEAD.
type CheckoutResult struct {
	CheckedOut string `json:"checked_out" jsonschema:"hash of the commit now checked out"`
	Subject    string `json:"subject"     jsonschema:"subject line of the checked out commit"`
}

// --- Smartlog tool ---

// SmartlogInput is the input for the smartlog tool (no parameters needed).
type SmartlogInput struct{}

// SmartlogOutput is the output for the smartlog tool.
type SmartlogOutput struct {
	Commits  []GraphCommit `json:"commits"  jsonschema:"graph commits, spine first"`
	Rendered []string      `json:"rendered" jsonschema:"graph lines as the CLI draws them, numbered"`
}

func handleSmartlog() mcp.ToolHandlerFor[SmartlogInput, SmartlogOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ SmartlogInput) (*mcp.CallToolResult, SmartlogOutput, error) {
		snap, err := openSnapshot()
		if err != nil {
			return nil, SmartlogOutput{}, fmt.Errorf("loading graph: %w", err)
		}
		g := smartlog.BuildGraph(snap)
		lines := smartlog.Render(g, smartlog.Options{ASCII: true, Numbers: true})
		return nil, SmartlogOutput{Commits: toGraphCommits(g), Rendered: lines}, nil
	}
}

// --- Status tool ---

// StatusInput is the input for the status tool (no parameters needed).
type StatusInput struct{}

// StatusOutput is the output for the status tool.
type StatusOutput struct {
	Repo          string `json:"repo"           jsonschema:"repository name"`
	Branch        string `json:"branch"         jsonschema:"current branch, or (detached)"`
	Head          string `json:"head"           jsonschema:"HEAD commit hash"`
	MainBranch    string `json:"main_branch"    jsonschema:"configured main branch name"`
	DBExists      bool   `json:"db_exists"      jsonschema:"whether the event database exists"`
	EventCount    int64  `json:"event_count"    jsonschema:"total number of recorded events"`
	ObsoleteCount int    `json:"obsolete_count" jsonschema:"commits the log marks obsolete"`
}

func handleStatus() mcp.ToolHandlerFor[StatusInput, StatusOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ StatusInput) (*mcp.CallToolResult, StatusOutput, error) {
		root, err := git.RepoRoot()
		if err != nil {
			return nil, StatusOutput{}, fmt.Errorf("getting repo root: %w", err)
		}

		branch, err := git.Run("branch", "--show-current")
		if err != nil {
			return nil, StatusOutput{}, fmt.Errorf("getting current branch: %w", err)
		}
		if branch == "" {
			branch = "(detached)"
		}

		head, err := git.Run("rev-parse", "HEAD")
		if err != nil {
			return nil, StatusOutput{}, fmt.Errorf("getting HEAD: %w", err)
		}

		gitDir, err := git.GitDir()
		if err != nil {
			return nil, StatusOutput{}, fmt.Errorf("getting git dir: %w", err)
		}

		out := StatusOutput{
			Repo:       filepath.Base(root),
			Branch:     branch,
			Head:       head,
			MainBranch: git.MainBranch(),
			DBExists:   eventlog.Exists(gitDir),
		}
		if !out.DBExists {
			return nil, out, nil
		}

		db, err := eventlog.Open(gitDir)
		if err != nil {
			return nil, StatusOutput{}, fmt.Errorf("opening event log: %w", err)
		}
		defer db.Close()

		count, err := db.Count()
		if err != nil {
			return nil, StatusOutput{}, fmt.Errorf("counting events: %w", err)
		}
		out.EventCount = count

		events, err := db.Events()
		if err != nil {
			return nil, StatusOutput{}, fmt.Errorf("reading events: %w", err)
		}
		out.ObsoleteCount = len(eventlog.Replay(events).Obsolete)

		return nil, out, nil
	}
}
