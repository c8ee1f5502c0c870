package git

import (
	"strings"
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
)

func TestOpenRepo_NotARepo(t *testing.T) {
	runInDir(t, t.TempDir(), func() {
		if _, err := OpenRepo(); err == nil {
			t.Error("OpenRepo() expected error outside git repo")
		}
	})
}

func TestRepo_Head(t *testing.T) {
	dir := initRepo(t)
	want := strings.TrimSpace(runGitOutput(t, dir, "rev-parse", "HEAD"))

	runInDir(t, dir, func() {
		repo, err := OpenRepo()
		if err != nil {
			t.Fatalf("OpenRepo() error = %v", err)
		}

		head, ok, err := repo.Head()
		if err != nil {
			t.Fatalf("Head() error = %v", err)
		}
		if !ok {
			t.Fatal("Head() ok = false, want true")
		}
		if head.String() != want {
			t.Errorf("Head() = %s, want %s", head, want)
		}
	})
}

func TestRepo_Head_UnbornBranch(t *testing.T) {
	dir := t.TempDir()
	runGit(t, dir, "init", "-b", "master")

	runInDir(t, dir, func() {
		repo, err := OpenRepo()
		if err != nil {
			t.Fatalf("OpenRepo() error = %v", err)
		}

		_, ok, err := repo.Head()
		if err != nil {
			t.Fatalf("Head() error = %v", err)
		}
		if ok {
			t.Error("Head() ok = true on unborn branch, want false")
		}
	})
}

func TestRepo_HeadBranch(t *testing.T) {
	dir := initRepo(t)

	runInDir(t, dir, func() {
		repo, err := OpenRepo()
		if err != nil {
			t.Fatalf("OpenRepo() error = %v", err)
		}

		branch, ok := repo.HeadBranch()
		if !ok {
			t.Fatal("HeadBranch() ok = false, want true")
		}
		if branch != "master" {
			t.Errorf("HeadBranch() = %q, want %q", branch, "master")
		}
	})

	// Detach HEAD and re-open; the branch should no longer resolve
	runGit(t, dir, "checkout", "--detach")
	runInDir(t, dir, func() {
		repo, err := OpenRepo()
		if err != nil {
			t.Fatalf("OpenRepo() error = %v", err)
		}
		if _, ok := repo.HeadBranch(); ok {
			t.Error("HeadBranch() ok = true on detached HEAD, want false")
		}
	})
}

func TestRepo_Branches(t *testing.T) {
	dir := initRepo(t)
	runGit(t, dir, "branch", "feature")
	want := strings.TrimSpace(runGitOutput(t, dir, "rev-parse", "HEAD"))

	runInDir(t, dir, func() {
		repo, err := OpenRepo()
		if err != nil {
			t.Fatalf("OpenRepo() error = %v", err)
		}

		tips, err := repo.Branches()
		if err != nil {
			t.Fatalf("Branches() error = %v", err)
		}
		if len(tips) != 2 {
			t.Fatalf("Branches() returned %d branches, want 2", len(tips))
		}
		for _, name := range []string{"master", "feature"} {
			if tips[name].String() != want {
				t.Errorf("Branches()[%q] = %s, want %s", name, tips[name], want)
			}
		}
	})
}

func TestRepo_ResolveBranch(t *testing.T) {
	dir := initRepo(t)

	runInDir(t, dir, func() {
		repo, err := OpenRepo()
		if err != nil {
			t.Fatalf("OpenRepo() error = %v", err)
		}

		if _, ok := repo.ResolveBranch("master"); !ok {
			t.Error("ResolveBranch(master) ok = false, want true")
		}
		if _, ok := repo.ResolveBranch("no-such-branch"); ok {
			t.Error("ResolveBranch(no-such-branch) ok = true, want false")
		}
	})
}

func TestRepo_Commit(t *testing.T) {
	dir := initRepo(t)
	head := strings.TrimSpace(runGitOutput(t, dir, "rev-parse", "HEAD"))

	runInDir(t, dir, func() {
		repo, err := OpenRepo()
		if err != nil {
			t.Fatalf("OpenRepo() error = %v", err)
		}

		commit, err := repo.Commit(plumbing.NewHash(head))
		if err != nil {
			t.Fatalf("Commit() error = %v", err)
		}
		if !strings.HasPrefix(commit.Message, "initial commit") {
			t.Errorf("Commit() message = %q, want prefix %q", commit.Message, "initial commit")
		}

		if _, err := repo.Commit(plumbing.ZeroHash); err == nil {
			t.Error("Commit(ZeroHash) expected error")
		}

		if !repo.HasCommit(plumbing.NewHash(head)) {
			t.Error("HasCommit(HEAD) = false, want true")
		}
		if repo.HasCommit(plumbing.ZeroHash) {
			t.Error("HasCommit(ZeroHash) = true, want false")
		}
	})
}
