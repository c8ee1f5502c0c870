package mcp

import (
	"github.com/gorewood/driftwood/internal/dag"
	"github.com/gorewood/driftwood/internal/eventlog"
	"github.com/gorewood/driftwood/internal/git"
	"github.com/gorewood/driftwood/internal/smartlog"
)

// openSnapshot loads the repository graph the same way the CLI does: open
// the repo, replay the event log, build the snapshot. Every tool call
// loads fresh state, since the repository changes between calls.
func openSnapshot() (*dag.Snapshot, error) {
	repo, err := git.OpenRepo()
	if err != nil {
		return nil, err
	}

	// Repositories without a log are navigated plain, no database created
	if !eventlog.Exists(repo.GitDir()) {
		return dag.Build(repo, eventlog.Replay(nil))
	}

	db, err := eventlog.Open(repo.GitDir())
	if err != nil {
		return nil, err
	}
	defer db.Close()

	events, err := db.Events()
	if err != nil {
		return nil, err
	}
	return dag.Build(repo, eventlog.Replay(events))
}

// toGraphCommits converts graph nodes to tool output, numbered the same
// way driftwood pick numbers them.
func toGraphCommits(g *smartlog.Graph) []GraphCommit {
	result := make([]GraphCommit, 0, len(g.Nodes))
	for i, node := range g.Nodes {
		result = append(result, GraphCommit{
			Number:   i + 1,
			Hash:     node.Commit.Hash.String(),
			Short:    dag.ShortHash(node.Commit.Hash),
			Subject:  node.Commit.Subject,
			Head:     node.Head,
			Public:   node.Public,
			Obsolete: node.Obsolete,
			Branches: node.Branches,
		})
	}
	return result
}
