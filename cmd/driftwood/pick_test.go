package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/gorewood/driftwood/internal/output"
)

func TestPickCommand_ChecksOut(t *testing.T) {
	tempDir := initTestRepo(t)
	m1 := makeCommit(t, tempDir, "first", "2026-01-01 10:00:00 +0000")
	makeCommit(t, tempDir, "second", "2026-01-01 10:01:00 +0000")
	makeCommit(t, tempDir, "third", "2026-01-01 10:02:00 +0000")

	runInDir(t, tempDir, func() {
		var stdout, stderr bytes.Buffer
		cmd := newRootCmd()
		cmd.SetOut(&stdout)
		cmd.SetErr(&stderr)
		cmd.SetIn(strings.NewReader("1\n"))
		cmd.SetArgs([]string{"pick"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("pick failed: %v\nStderr: %s", err, stderr.String())
		}

		out := stdout.String()
		for _, want := range []string{"[1]", "[3]", "first", "third", "[1-3]"} {
			if !strings.Contains(out, want) {
				t.Errorf("stdout should contain %q:\n%s", want, out)
			}
		}

		// Node 1 is the oldest commit in display order
		head := runGitOutput(t, tempDir, "rev-parse", "HEAD")
		if head != m1 {
			t.Errorf("HEAD = %s, want %s", head, m1)
		}
	})
}

func TestPickCommand_OutOfRange(t *testing.T) {
	tempDir := initTestRepo(t)
	makeCommit(t, tempDir, "first", "2026-01-01 10:00:00 +0000")
	m2 := makeCommit(t, tempDir, "second", "2026-01-01 10:01:00 +0000")

	runInDir(t, tempDir, func() {
		var stdout, stderr bytes.Buffer
		cmd := newRootCmd()
		cmd.SetOut(&stdout)
		cmd.SetErr(&stderr)
		cmd.SetIn(strings.NewReader("9\n"))
		cmd.SetArgs([]string{"pick"})

		err := cmd.Execute()
		if err == nil {
			t.Fatal("expected cancellation for out-of-range selection")
		}
		if code := output.GetExitCode(err); code != 1 {
			t.Errorf("exit code = %d, want 1", code)
		}
		if !strings.Contains(stderr.String(), "Invalid selection. Must be in range [1-2]") {
			t.Errorf("stderr should report the valid range: %q", stderr.String())
		}

		head := runGitOutput(t, tempDir, "rev-parse", "HEAD")
		if head != m2 {
			t.Errorf("HEAD = %s, want %s (unchanged)", head, m2)
		}
	})
}

func TestPickCommand_RejectsJSON(t *testing.T) {
	tempDir := initTestRepo(t)
	makeCommit(t, tempDir, "first", "2026-01-01 10:00:00 +0000")

	runInDir(t, tempDir, func() {
		var stdout, stderr bytes.Buffer
		cmd := newRootCmd()
		cmd.SetOut(&stdout)
		cmd.SetErr(&stderr)
		cmd.SetArgs([]string{"pick", "--json"})

		err := cmd.Execute()
		if err == nil {
			t.Fatal("expected error for pick with --json")
		}

		var result map[string]any
		if jsonErr := json.Unmarshal(stdout.Bytes(), &result); jsonErr != nil {
			t.Fatalf("failed to parse JSON error output: %v\nOutput: %s", jsonErr, stdout.String())
		}
		msg, _ := result["error"].(string)
		if !strings.Contains(msg, "does not support --json") {
			t.Errorf("error = %q, want mention of --json", msg)
		}
	})
}
