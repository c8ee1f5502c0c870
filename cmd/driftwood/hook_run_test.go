package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorewood/driftwood/internal/eventlog"
)

func TestHookRun_PostCommit(t *testing.T) {
	tempDir := initTestRepo(t)
	head := makeCommit(t, tempDir, "first", "2026-01-01 10:00:00 +0000")
	createEventLog(t, tempDir)

	runInDir(t, tempDir, func() {
		runCommand(t, []string{"hook", "run", "post-commit"})
	})

	events := readEvents(t, tempDir)
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	ev := events[0]
	if ev.Kind != eventlog.KindCommit {
		t.Errorf("kind = %q, want %q", ev.Kind, eventlog.KindCommit)
	}
	if ev.NewOid != head {
		t.Errorf("new oid = %q, want %q", ev.NewOid, head)
	}
	if ev.RefName != "master" {
		t.Errorf("ref = %q, want master", ev.RefName)
	}
	if ev.Message != "first" {
		t.Errorf("message = %q, want first", ev.Message)
	}
	if ev.Timestamp == 0 {
		t.Error("timestamp should be filled in")
	}
}

func TestHookRun_Uninitialized(t *testing.T) {
	tempDir := initTestRepo(t)
	makeCommit(t, tempDir, "first", "2026-01-01 10:00:00 +0000")

	runInDir(t, tempDir, func() {
		// Without an event log the hook is a no-op
		runCommand(t, []string{"hook", "run", "post-commit"})
	})

	if _, err := os.Stat(filepath.Join(tempDir, ".git", "driftwood")); !os.IsNotExist(err) {
		t.Error("hook should not create the event database")
	}
}

func TestHookRun_OutsideRepo(t *testing.T) {
	tempDir := t.TempDir()

	runInDir(t, tempDir, func() {
		var stdout, stderr bytes.Buffer
		cmd := newRootCmd()
		cmd.SetOut(&stdout)
		cmd.SetErr(&stderr)
		cmd.SetArgs([]string{"hook", "run", "post-commit"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("hook run outside a repository should succeed: %v", err)
		}
		if stdout.Len() != 0 || stderr.Len() != 0 {
			t.Errorf("hook run should stay silent, got stdout %q stderr %q", stdout.String(), stderr.String())
		}
	})
}

func TestHookRun_PostCheckout(t *testing.T) {
	tempDir := initTestRepo(t)
	m1 := makeCommit(t, tempDir, "first", "2026-01-01 10:00:00 +0000")
	m2 := makeCommit(t, tempDir, "second", "2026-01-01 10:01:00 +0000")
	createEventLog(t, tempDir)

	runInDir(t, tempDir, func() {
		// Flag 0 means a file checkout; HEAD did not move
		runCommand(t, []string{"hook", "run", "post-checkout", m2, m1, "0"})
	})
	if events := readEvents(t, tempDir); len(events) != 0 {
		t.Fatalf("file checkout should record nothing, got %d events", len(events))
	}

	runInDir(t, tempDir, func() {
		runCommand(t, []string{"hook", "run", "post-checkout", m2, m1, "1"})
	})

	events := readEvents(t, tempDir)
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	ev := events[0]
	if ev.Kind != eventlog.KindCheckout {
		t.Errorf("kind = %q, want %q", ev.Kind, eventlog.KindCheckout)
	}
	if ev.OldOid != m2 || ev.NewOid != m1 {
		t.Errorf("oids = %q -> %q, want %q -> %q", ev.OldOid, ev.NewOid, m2, m1)
	}
}

func TestHookRun_PostRewrite(t *testing.T) {
	tempDir := initTestRepo(t)
	m1 := makeCommit(t, tempDir, "first", "2026-01-01 10:00:00 +0000")
	m2 := makeCommit(t, tempDir, "second", "2026-01-01 10:01:00 +0000")
	createEventLog(t, tempDir)

	// Git feeds one old/new pair per rewritten commit on stdin
	rewrites := m1 + " " + m2 + "\n" + m2 + " " + m1 + "\n"

	runInDir(t, tempDir, func() {
		var stdout, stderr bytes.Buffer
		cmd := newRootCmd()
		cmd.SetOut(&stdout)
		cmd.SetErr(&stderr)
		cmd.SetIn(strings.NewReader(rewrites))
		cmd.SetArgs([]string{"hook", "run", "post-rewrite", "amend"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("post-rewrite failed: %v\nStderr: %s", err, stderr.String())
		}
	})

	events := readEvents(t, tempDir)
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	for _, ev := range events {
		if ev.Kind != eventlog.KindRewrite {
			t.Errorf("kind = %q, want %q", ev.Kind, eventlog.KindRewrite)
		}
		if ev.Message != "amend" {
			t.Errorf("message = %q, want amend", ev.Message)
		}
	}
	if events[0].OldOid != m1 || events[0].NewOid != m2 {
		t.Errorf("first rewrite = %q -> %q, want %q -> %q", events[0].OldOid, events[0].NewOid, m1, m2)
	}
}

func TestHookRun_UnknownHook(t *testing.T) {
	tempDir := initTestRepo(t)

	runInDir(t, tempDir, func() {
		// Unknown hooks succeed so they never block git
		runCommand(t, []string{"hook", "run", "pre-merge-commit"})
	})
}

// createEventLog initializes the event database the way init does.
func createEventLog(t *testing.T, repoDir string) {
	t.Helper()
	db, err := eventlog.Open(filepath.Join(repoDir, ".git"))
	if err != nil {
		t.Fatalf("failed to create event log: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("failed to close event log: %v", err)
	}
}

// readEvents returns every event in the repository's log.
func readEvents(t *testing.T, repoDir string) []*eventlog.Event {
	t.Helper()
	db, err := eventlog.Open(filepath.Join(repoDir, ".git"))
	if err != nil {
		t.Fatalf("failed to open event log: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close event log: %v", err)
		}
	}()

	events, err := db.Events()
	if err != nil {
		t.Fatalf("failed to read events: %v", err)
	}
	return events
}
