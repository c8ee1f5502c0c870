package git

import (
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/gorewood/driftwood/internal/output"
)

// Repo is a read-only handle on an opened repository. It serves the ref and
// commit lookups behind navigation; mutations go through the exec runner.
type Repo struct {
	gg     *gogit.Repository
	gitDir string
}

// OpenRepo opens the repository containing the current working directory.
func OpenRepo() (*Repo, error) {
	gg, err := gogit.PlainOpenWithOptions(".", &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, output.NewSystemError("not in a git repository")
		}
		return nil, output.NewSystemErrorWithCause("opening repository", err)
	}

	// The git binary resolves worktree layouts for us
	gitDir, err := GitDir()
	if err != nil {
		return nil, err
	}

	return &Repo{gg: gg, gitDir: gitDir}, nil
}

// GitDir returns the absolute path of the repository's .git directory.
func (r *Repo) GitDir() string {
	return r.gitDir
}

// Head returns the commit HEAD points at. ok is false on an unborn branch
// (a fresh repository with no commits yet).
func (r *Repo) Head() (plumbing.Hash, bool, error) {
	ref, err := r.gg.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return plumbing.ZeroHash, false, nil
		}
		return plumbing.ZeroHash, false, output.NewSystemErrorWithCause("resolving HEAD", err)
	}
	return ref.Hash(), true, nil
}

// HeadBranch returns the current branch name. ok is false when HEAD is
// detached or unreadable.
func (r *Repo) HeadBranch() (string, bool) {
	ref, err := r.gg.Reference(plumbing.HEAD, false)
	if err != nil || ref.Type() != plumbing.SymbolicReference {
		return "", false
	}
	target := ref.Target()
	if !target.IsBranch() {
		return "", false
	}
	return target.Short(), true
}

// Branches returns the tips of all local branches, keyed by short name.
func (r *Repo) Branches() (map[string]plumbing.Hash, error) {
	iter, err := r.gg.Branches()
	if err != nil {
		return nil, output.NewSystemErrorWithCause("listing branches", err)
	}
	defer iter.Close()

	tips := make(map[string]plumbing.Hash)
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		tips[ref.Name().Short()] = ref.Hash()
		return nil
	})
	if err != nil {
		return nil, output.NewSystemErrorWithCause("listing branches", err)
	}
	return tips, nil
}

// ResolveBranch resolves a local branch name to its tip commit.
func (r *Repo) ResolveBranch(name string) (plumbing.Hash, bool) {
	ref, err := r.gg.Reference(plumbing.NewBranchReferenceName(name), true)
	if err != nil {
		return plumbing.ZeroHash, false
	}
	return ref.Hash(), true
}

// Commit loads the commit object for a hash. Missing objects surface as an
// error wrapping plumbing.ErrObjectNotFound so callers can skip stale ids
// (an event may reference a commit that has since been garbage collected).
func (r *Repo) Commit(h plumbing.Hash) (*object.Commit, error) {
	c, err := r.gg.CommitObject(h)
	if err != nil {
		return nil, fmt.Errorf("loading commit %s: %w", h, err)
	}
	return c, nil
}

// HasCommit reports whether a commit object exists for the hash.
func (r *Repo) HasCommit(h plumbing.Hash) bool {
	_, err := r.gg.CommitObject(h)
	return err == nil
}
