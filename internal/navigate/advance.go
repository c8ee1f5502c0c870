// Package navigate implements forward traversal over the commit graph. It
// steps from a commit to one of its live children a requested number of
// times, resolving each fork with a Towards preference or by asking the
// user, and never selects an obsolete commit.
package navigate

import (
	"bufio"
	"strconv"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/gorewood/driftwood/internal/dag"
	"github.com/gorewood/driftwood/internal/output"
)

// ChildSource yields the live children of a commit in canonical order
// (committed date ascending, commit id as tie-break). *dag.Snapshot
// satisfies it.
type ChildSource interface {
	LiveChildren(h plumbing.Hash) ([]*dag.Commit, error)
}

// Options control a single Advance invocation. The same Towards preference
// applies at every ambiguous step of the walk.
type Options struct {
	Steps       int
	Towards     Towards
	Interactive bool
}

// Advance walks opts.Steps forward from start, consulting src for the live
// children of each position. Forks are settled by opts.Towards, or
// interactively via the selection prompt when no preference was given.
//
// Running out of children before all steps complete is not a failure: the
// walk stops where it is and that commit is the result. A declined or
// unresolvable fork cancels the whole walk, reported as ok=false with no
// error. Errors from src are returned unchanged.
func Advance(p *output.Printer, in *bufio.Reader, src ChildSource, start plumbing.Hash, opts Options) (plumbing.Hash, bool, error) {
	current := start
	for i := 0; i < opts.Steps; i++ {
		children, err := src.LiveChildren(current)
		if err != nil {
			return plumbing.ZeroHash, false, err
		}

		switch {
		case len(children) == 0:
			return current, true, nil
		case len(children) == 1:
			current = children[0].Hash
		case opts.Towards == TowardsNewest:
			current = children[len(children)-1].Hash
		case opts.Towards == TowardsOldest:
			current = children[0].Hash
		default:
			next, ok, err := resolveFork(p, in, children, i, opts.Interactive)
			if !ok || err != nil {
				return plumbing.ZeroHash, false, err
			}
			current = next
		}
	}
	return current, true, nil
}

// resolveFork handles a step whose commit has several live children and no
// Towards preference. The candidates are listed on standard output;
// interactively the user picks one, otherwise the walk cannot proceed and a
// hint goes to the error stream.
func resolveFork(p *output.Printer, in *bufio.Reader, children []*dag.Commit, traversed int, interactive bool) (plumbing.Hash, bool, error) {
	p.Print("Found multiple possible next commits to go to after traversing %d children:\n", traversed)
	for j, child := range children {
		prefix := ""
		if interactive {
			prefix = "[" + strconv.Itoa(j+1) + "] "
		}
		descriptor := ""
		switch {
		case j == 0:
			descriptor = " (oldest)"
		case j == len(children)-1:
			descriptor = " (newest)"
		}
		p.Print("  - %s%s%s\n", prefix, child.Describe(), descriptor)
	}

	if !interactive {
		p.Stderr("(Pass --oldest (-o) or --newest (-n) to select between ambiguous next commits)\n")
		return plumbing.ZeroHash, false, nil
	}

	selected, ok, err := PromptForRange(p, in, 1, len(children))
	if !ok || err != nil {
		return plumbing.ZeroHash, false, err
	}
	return children[selected-1].Hash, true, nil
}
