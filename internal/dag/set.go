// Package dag builds the read-only commit-graph snapshot that navigation
// queries: visible commits, child edges, and obsolescence membership.
package dag

import "github.com/go-git/go-git/v5/plumbing"

// CommitSet is an unordered set of commit ids. Display ordering is imposed
// separately by Snapshot.SortCommits, which has the commit metadata.
type CommitSet map[plumbing.Hash]struct{}

// NewCommitSet builds a set holding the given hashes.
func NewCommitSet(hashes ...plumbing.Hash) CommitSet {
	s := make(CommitSet, len(hashes))
	for _, h := range hashes {
		s[h] = struct{}{}
	}
	return s
}

// Add inserts a hash into the set.
func (s CommitSet) Add(h plumbing.Hash) {
	s[h] = struct{}{}
}

// Contains reports membership. Safe on a nil set.
func (s CommitSet) Contains(h plumbing.Hash) bool {
	_, ok := s[h]
	return ok
}

// Len returns the number of members.
func (s CommitSet) Len() int {
	return len(s)
}

// Union returns a new set with the members of both sets.
func (s CommitSet) Union(other CommitSet) CommitSet {
	out := make(CommitSet, len(s)+len(other))
	for h := range s {
		out[h] = struct{}{}
	}
	for h := range other {
		out[h] = struct{}{}
	}
	return out
}

// Difference returns the members of s that are not in other.
func (s CommitSet) Difference(other CommitSet) CommitSet {
	out := make(CommitSet, len(s))
	for h := range s {
		if !other.Contains(h) {
			out[h] = struct{}{}
		}
	}
	return out
}

// Intersect returns the members common to both sets.
func (s CommitSet) Intersect(other CommitSet) CommitSet {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(CommitSet)
	for h := range small {
		if large.Contains(h) {
			out[h] = struct{}{}
		}
	}
	return out
}

// Hashes returns the members in unspecified order.
func (s CommitSet) Hashes() []plumbing.Hash {
	out := make([]plumbing.Hash, 0, len(s))
	for h := range s {
		out = append(out, h)
	}
	return out
}
