// Package eventlog stores and replays the append-only record of
// repository-mutating operations that drives obsolescence tracking.
//
// Hooks append events as the user works: every commit, checkout, and
// history rewrite lands here as one row. Navigation never reads git state
// to decide what is obsolete; it replays this log into a State and treats
// that as the truth for the current invocation.
package eventlog

// Event kinds, matching the hooks that produce them.
const (
	// KindCommit records a newly created commit (post-commit).
	KindCommit = "commit"

	// KindCheckout records a HEAD movement (post-checkout).
	KindCheckout = "checkout"

	// KindRewrite records one old->new commit mapping from an amend or
	// rebase (post-rewrite, one event per rewritten commit).
	KindRewrite = "rewrite"
)

// Event is one row of the append-only log. Rows are never updated or
// deleted; state is reconstructed by replaying them in id order.
type Event struct {
	ID        int64  `xorm:"pk autoincr"`
	Timestamp int64  `xorm:"INDEX notnull"`
	Kind      string `xorm:"notnull"`
	OldOid    string `xorm:"VARCHAR(40)"`
	NewOid    string `xorm:"VARCHAR(40)"`
	RefName   string
	Message   string `xorm:"TEXT"`
}

// TableName maps Event to its table.
func (Event) TableName() string {
	return "event"
}
