package dag

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/gorewood/driftwood/internal/eventlog"
	"github.com/gorewood/driftwood/internal/git"
)

// shortHashLen is the abbreviation used wherever a commit id is shown.
const shortHashLen = 8

// ShortHash abbreviates a commit id for display.
func ShortHash(h plumbing.Hash) string {
	return h.String()[:shortHashLen]
}

// Commit is one node of the snapshot with the metadata navigation needs.
type Commit struct {
	Hash    plumbing.Hash
	Parents []plumbing.Hash
	When    time.Time
	Subject string
}

// Describe returns the one-line form used in listings and prompts.
func (c *Commit) Describe() string {
	if c.Subject == "" {
		return ShortHash(c.Hash)
	}
	return ShortHash(c.Hash) + " " + c.Subject
}

// Snapshot is a read-only view of the visible commit graph, opened once per
// command invocation. The event log may be appended to concurrently by
// hooks in another process; those writes stay invisible until the next
// invocation builds a fresh snapshot.
type Snapshot struct {
	commits  map[plumbing.Hash]*Commit
	children map[plumbing.Hash]CommitSet
	obsolete CommitSet
	spine    map[plumbing.Hash]int
	head     plumbing.Hash
	mainTip  plumbing.Hash
	mainName string
	branches map[plumbing.Hash][]string
}

// Build assembles the visible graph: commits reachable from HEAD, local
// branch tips, and active event-log oids, walked back until they meet the
// main branch's first-parent spine. The spine itself is included from the
// deepest such meeting point up to the main tip, so stepping along the main
// branch works commit by commit.
func Build(repo *git.Repo, st *eventlog.State) (*Snapshot, error) {
	head, _, err := repo.Head()
	if err != nil {
		return nil, err
	}

	mainName := git.MainBranch()
	mainTip, _ := repo.ResolveBranch(mainName)

	branchTips, err := repo.Branches()
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		commits:  make(map[plumbing.Hash]*Commit),
		children: make(map[plumbing.Hash]CommitSet),
		obsolete: CommitSet(st.Obsolete),
		head:     head,
		mainTip:  mainTip,
		mainName: mainName,
		branches: make(map[plumbing.Hash][]string),
	}
	for name, tip := range branchTips {
		snap.branches[tip] = append(snap.branches[tip], name)
	}
	for _, names := range snap.branches {
		slices.Sort(names)
	}

	spineOrder, err := walkSpine(repo, mainTip)
	if err != nil {
		return nil, err
	}
	snap.spine = make(map[plumbing.Hash]int, len(spineOrder))
	for i, c := range spineOrder {
		snap.spine[c.Hash] = i
	}

	var queue []plumbing.Hash
	enqueue := func(h plumbing.Hash) {
		if !h.IsZero() {
			queue = append(queue, h)
		}
	}
	enqueue(head)
	for _, tip := range branchTips {
		enqueue(tip)
	}
	for h := range st.Active {
		enqueue(h)
	}

	// Walk drafts down to the spine, tracking the deepest attachment.
	deepest := -1
	visited := make(map[plumbing.Hash]bool)
	for len(queue) > 0 {
		h := queue[0]
		queue = queue[1:]
		if visited[h] {
			continue
		}
		visited[h] = true

		if idx, onSpine := snap.spine[h]; onSpine {
			deepest = max(deepest, idx)
			continue
		}

		c, err := repo.Commit(h)
		if err != nil {
			// Stale heads happen: an event oid may be gone after gc
			if errors.Is(err, plumbing.ErrObjectNotFound) {
				continue
			}
			return nil, err
		}
		node := newCommit(c)
		snap.commits[h] = node

		for _, p := range node.Parents {
			snap.addChild(p, h)
			if idx, onSpine := snap.spine[p]; onSpine {
				deepest = max(deepest, idx)
				continue
			}
			enqueue(p)
		}
	}

	// Include the spine from the deepest attachment up to the tip.
	for i := 0; i <= deepest && i < len(spineOrder); i++ {
		node := spineOrder[i]
		snap.commits[node.Hash] = node
		if i+1 <= deepest && i+1 < len(spineOrder) {
			snap.addChild(spineOrder[i+1].Hash, node.Hash)
		}
	}

	return snap, nil
}

// walkSpine follows first parents from the main tip to the root, returning
// commits in tip-first order. A zero tip yields an empty spine.
func walkSpine(repo *git.Repo, tip plumbing.Hash) ([]*Commit, error) {
	var spine []*Commit
	cur := tip
	for !cur.IsZero() {
		c, err := repo.Commit(cur)
		if err != nil {
			if errors.Is(err, plumbing.ErrObjectNotFound) {
				break
			}
			return nil, err
		}
		node := newCommit(c)
		spine = append(spine, node)
		if len(node.Parents) == 0 {
			break
		}
		cur = node.Parents[0]
	}
	return spine, nil
}

func newCommit(c *object.Commit) *Commit {
	subject, _, _ := strings.Cut(c.Message, "\n")
	return &Commit{
		Hash:    c.Hash,
		Parents: c.ParentHashes,
		When:    c.Committer.When,
		Subject: strings.TrimSpace(subject),
	}
}

func (s *Snapshot) addChild(parent, child plumbing.Hash) {
	set, ok := s.children[parent]
	if !ok {
		set = make(CommitSet)
		s.children[parent] = set
	}
	set.Add(child)
}

// Head returns the HEAD commit recorded at snapshot time. ok is false when
// the repository had no resolvable HEAD.
func (s *Snapshot) Head() (plumbing.Hash, bool) {
	return s.head, !s.head.IsZero()
}

// MainBranchName returns the configured main branch name.
func (s *Snapshot) MainBranchName() string {
	return s.mainName
}

// MainTip returns the main branch tip. ok is false when the branch does not
// exist.
func (s *Snapshot) MainTip() (plumbing.Hash, bool) {
	return s.mainTip, !s.mainTip.IsZero()
}

// Commit returns the snapshot node for a hash.
func (s *Snapshot) Commit(h plumbing.Hash) (*Commit, bool) {
	c, ok := s.commits[h]
	return c, ok
}

// Len returns the number of commits in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.commits)
}

// Commits returns every commit in the snapshot in canonical order.
func (s *Snapshot) Commits() []*Commit {
	all := make(CommitSet, len(s.commits))
	for h := range s.commits {
		all.Add(h)
	}
	return s.SortCommits(all)
}

// Children returns the direct children of h within the snapshot.
func (s *Snapshot) Children(h plumbing.Hash) CommitSet {
	return s.children[h]
}

// IsObsolete reports whether h was superseded per the replayed event log.
func (s *Snapshot) IsObsolete(h plumbing.Hash) bool {
	return s.obsolete.Contains(h)
}

// IsPublic reports whether h sits on the main branch's first-parent spine.
func (s *Snapshot) IsPublic(h plumbing.Hash) bool {
	_, ok := s.spine[h]
	return ok
}

// BranchesAt returns the local branch names pointing at h, sorted.
func (s *Snapshot) BranchesAt(h plumbing.Hash) []string {
	return s.branches[h]
}

// MainSpine returns the included main-branch commits ordered oldest first,
// ending at the main tip.
func (s *Snapshot) MainSpine() []*Commit {
	var spine []*Commit
	for h, c := range s.commits {
		if _, ok := s.spine[h]; ok {
			spine = append(spine, c)
		}
	}
	slices.SortFunc(spine, func(a, b *Commit) int {
		return s.spine[b.Hash] - s.spine[a.Hash]
	})
	return spine
}

// SortCommits orders set members canonically: committer time ascending,
// ties broken by commit id. Members without a snapshot node are dropped.
func (s *Snapshot) SortCommits(set CommitSet) []*Commit {
	out := make([]*Commit, 0, len(set))
	for h := range set {
		if c, ok := s.commits[h]; ok {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b *Commit) int {
		if !a.When.Equal(b.When) {
			if a.When.Before(b.When) {
				return -1
			}
			return 1
		}
		return bytes.Compare(a.Hash[:], b.Hash[:])
	})
	return out
}

// LiveChildren returns the non-obsolete children of h in canonical order.
// Asking about a commit outside the snapshot is an error: the graph cannot
// answer for commits it never saw.
func (s *Snapshot) LiveChildren(h plumbing.Hash) ([]*Commit, error) {
	if _, ok := s.commits[h]; !ok {
		return nil, fmt.Errorf("commit %s is not in the graph snapshot", h)
	}
	live := s.Children(h).Difference(s.obsolete)
	return s.SortCommits(live), nil
}
