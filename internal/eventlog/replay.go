package eventlog

import "github.com/go-git/go-git/v5/plumbing"

// State is the result of replaying the log: which commits are known active,
// which are obsolete, and where the log last saw HEAD move.
type State struct {
	Active   map[plumbing.Hash]struct{}
	Obsolete map[plumbing.Hash]struct{}

	// Position is the destination of the most recent checkout event,
	// zero when the log holds none.
	Position plumbing.Hash
}

// Replay folds events, in order, into obsolescence state. Later events win:
// a rewrite obsoletes its old oid, and a later commit event on that same oid
// resurrects it (the user re-created the commit, so it is live again).
func Replay(events []*Event) *State {
	st := &State{
		Active:   make(map[plumbing.Hash]struct{}),
		Obsolete: make(map[plumbing.Hash]struct{}),
	}

	for _, ev := range events {
		switch ev.Kind {
		case KindCommit:
			if h, ok := parseOid(ev.NewOid); ok {
				st.Active[h] = struct{}{}
				delete(st.Obsolete, h)
			}
		case KindRewrite:
			if h, ok := parseOid(ev.OldOid); ok {
				st.Obsolete[h] = struct{}{}
				delete(st.Active, h)
			}
			// NewOid may be absent when the rewrite dropped the commit
			if h, ok := parseOid(ev.NewOid); ok {
				st.Active[h] = struct{}{}
				delete(st.Obsolete, h)
			}
		case KindCheckout:
			if h, ok := parseOid(ev.NewOid); ok {
				st.Position = h
			}
		}
	}

	return st
}

// IsObsolete reports whether a commit is marked obsolete in this state.
func (st *State) IsObsolete(h plumbing.Hash) bool {
	_, ok := st.Obsolete[h]
	return ok
}

// parseOid converts a hex oid from an event row. Empty strings and the all
// zero oid (git's "no commit" marker in hook arguments) are rejected.
func parseOid(s string) (plumbing.Hash, bool) {
	if len(s) != 40 {
		return plumbing.ZeroHash, false
	}
	h := plumbing.NewHash(s)
	if h.IsZero() {
		return plumbing.ZeroHash, false
	}
	return h, true
}
