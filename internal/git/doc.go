// Package git provides Git access for the driftwood CLI.
//
// The package is split along a read/write boundary. Reads that feed
// navigation (refs, commit objects, HEAD state) go through go-git and never
// spawn a subprocess; the Repo type wraps an opened repository and serves
// these queries from an in-process snapshot. Mutations and anything that
// must behave exactly like the git binary (checkout, config writes) shell
// out to the real executable.
//
// # In-process reads
//
//	repo, err := git.OpenRepo()
//	head, ok, err := repo.Head()     // HEAD commit, ok=false on unborn branch
//	branch, ok := repo.HeadBranch()  // current branch, ok=false when detached
//	tips, err := repo.Branches()     // local branch tips
//	commit, err := repo.Commit(hash) // full commit object
//
// # Running Git commands
//
// Run and RunContext capture output and wrap failures as *output.ExitError:
//
//	out, err := git.Run("rev-parse", "--absolute-git-dir")
//
// RunExitCode inherits the caller's streams and hands back the child's exit
// code unchanged. Checkout uses this: a non-zero code from `git checkout` is
// the navigation command's own result, not an internal error.
//
//	code, err := git.RunExitCode(ctx, stdout, stderr, "checkout", target)
//
// # Configuration
//
// ConfigGet and ConfigSet wrap `git config`. MainBranch resolves the
// driftwood.mainBranch key with its default.
package git
