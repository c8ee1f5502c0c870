// Package smartlog arranges the visible commit graph for display. The main
// branch ascends the left lane oldest first and draft stacks attach under
// the commit they fork from. Display order is deterministic, so the node
// numbering handed to the pick prompt is stable for a given repository
// state.
package smartlog

import (
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/gorewood/driftwood/internal/dag"
)

// Node is one displayed commit.
type Node struct {
	Commit   *dag.Commit
	Head     bool
	Public   bool
	Obsolete bool
	Branches []string
	Depth    int
}

// Graph holds the nodes in display order. Elided reports that history
// older than the first node exists but is not shown.
type Graph struct {
	Nodes  []*Node
	Elided bool
}

// BuildGraph arranges a snapshot for display. Main-branch commits come
// oldest first; after each one, the stacks forking from it follow
// depth-first with children in canonical order. The first child of a fork
// continues its parent's lane, later children open a deeper one. Stacks
// with no visible connection to the main branch come last.
func BuildGraph(snap *dag.Snapshot) *Graph {
	g := &Graph{}
	head, _ := snap.Head()
	seen := make(map[plumbing.Hash]bool)

	add := func(c *dag.Commit, depth int) {
		g.Nodes = append(g.Nodes, &Node{
			Commit:   c,
			Head:     c.Hash == head,
			Public:   snap.IsPublic(c.Hash),
			Obsolete: snap.IsObsolete(c.Hash),
			Branches: snap.BranchesAt(c.Hash),
			Depth:    depth,
		})
	}

	var walkStack func(c *dag.Commit, depth int)
	walkStack = func(c *dag.Commit, depth int) {
		if seen[c.Hash] || snap.IsPublic(c.Hash) {
			return
		}
		seen[c.Hash] = true
		add(c, depth)
		for i, k := range draftChildren(snap, c.Hash) {
			if i == 0 {
				walkStack(k, depth)
			} else {
				walkStack(k, depth+1)
			}
		}
	}

	spine := snap.MainSpine()
	if len(spine) > 0 && len(spine[0].Parents) > 0 {
		if _, shown := snap.Commit(spine[0].Parents[0]); !shown {
			g.Elided = true
		}
	}
	for _, c := range spine {
		seen[c.Hash] = true
		add(c, 0)
		for _, k := range draftChildren(snap, c.Hash) {
			walkStack(k, 1)
		}
	}

	// Stacks kept alive by events can lose their footing when their parent
	// objects are gone; show them as roots of their own.
	for _, c := range snap.Commits() {
		if !seen[c.Hash] {
			walkStack(c, 0)
		}
	}
	return g
}

// draftChildren returns the non-public children of h in canonical order.
// Obsolete commits stay in: the graph shows them struck out rather than
// hiding them.
func draftChildren(snap *dag.Snapshot, h plumbing.Hash) []*dag.Commit {
	var kids []*dag.Commit
	for _, c := range snap.SortCommits(snap.Children(h)) {
		if !snap.IsPublic(c.Hash) {
			kids = append(kids, c)
		}
	}
	return kids
}

// NumberNodes labels every node with its 1-based position in display order.
func NumberNodes(g *Graph) map[plumbing.Hash]int {
	m := make(map[plumbing.Hash]int, len(g.Nodes))
	for i, n := range g.Nodes {
		m[n.Commit.Hash] = i + 1
	}
	return m
}

// ByNumber resolves a 1-based label back to its node.
func (g *Graph) ByNumber(n int) (*Node, bool) {
	if n < 1 || n > len(g.Nodes) {
		return nil, false
	}
	return g.Nodes[n-1], true
}
