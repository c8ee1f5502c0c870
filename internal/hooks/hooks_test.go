package hooks

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestScript(t *testing.T) {
	for _, name := range Names {
		t.Run(name+" without chain", func(t *testing.T) {
			got := Script(name, false)
			if !strings.HasPrefix(got, "#!/bin/sh") {
				t.Error("expected shebang")
			}
			if !strings.Contains(got, "driftwood hook run "+name) {
				t.Error("expected driftwood hook command")
			}
			if strings.Contains(got, ".backup") {
				t.Error("should not contain backup chain")
			}
		})
	}

	t.Run("with chain", func(t *testing.T) {
		got := Script("post-commit", true)
		if !strings.Contains(got, "driftwood hook run post-commit") {
			t.Error("expected driftwood hook command")
		}
		if !strings.Contains(got, `"$0.backup"`) {
			t.Error("expected backup chain section")
		}
	})
}

func TestScriptPurposeLine(t *testing.T) {
	got := Script("post-rewrite", false)
	if !strings.Contains(got, "Records rewritten commits") {
		t.Errorf("expected purpose comment, got:\n%s", got)
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()

	t.Run("nonexistent", func(t *testing.T) {
		if Exists(filepath.Join(dir, "nope")) {
			t.Error("expected false for nonexistent file")
		}
	})

	t.Run("exists", func(t *testing.T) {
		path := filepath.Join(dir, "hook")
		writeTestFile(t, path, "#!/bin/sh\n")
		if !Exists(path) {
			t.Error("expected true for existing file")
		}
	})
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()

	t.Run("no file returns empty status", func(t *testing.T) {
		status := Check(filepath.Join(dir, "nonexistent"))
		if status.Installed || status.Chained {
			t.Error("expected empty status for nonexistent file")
		}
	})

	t.Run("foreign hook", func(t *testing.T) {
		path := filepath.Join(dir, "other-hook")
		writeTestFile(t, path, "#!/bin/sh\necho hello\n")
		status := Check(path)
		if status.Installed {
			t.Error("expected not installed for foreign hook")
		}
	})

	t.Run("driftwood hook without chain", func(t *testing.T) {
		path := filepath.Join(dir, "post-commit")
		writeTestFile(t, path, Script("post-commit", false))
		status := Check(path)
		if !status.Installed {
			t.Error("expected installed")
		}
		if status.Chained {
			t.Error("expected not chained")
		}
	})

	t.Run("driftwood hook with chain", func(t *testing.T) {
		path := filepath.Join(dir, "post-checkout")
		writeTestFile(t, path, Script("post-checkout", true))
		status := Check(path)
		if !status.Installed {
			t.Error("expected installed")
		}
		if !status.Chained {
			t.Error("expected chained")
		}
	})
}

func TestBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "post-commit")
	writeTestFile(t, path, "#!/bin/sh\necho original\n")

	if err := Backup(path); err != nil {
		t.Fatalf("Backup: %v", err)
	}

	if Exists(path) {
		t.Error("original hook should be gone after backup")
	}
	content, err := os.ReadFile(path + ".backup")
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if !strings.Contains(string(content), "echo original") {
		t.Error("backup should preserve original content")
	}
}

func TestDescribeInstall(t *testing.T) {
	tests := []struct {
		name         string
		existingHook bool
		chain        bool
		force        bool
		want         string
	}{
		{"no existing hook", false, false, false, "would install"},
		{"existing with force", true, false, true, "would overwrite"},
		{"existing with chain", true, true, false, "would backup and chain"},
		{"existing no flags", true, false, false, "would fail"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DescribeInstall(tt.existingHook, tt.chain, tt.force)
			if !strings.Contains(got, tt.want) {
				t.Errorf("DescribeInstall(%v,%v,%v) = %q, want to contain %q",
					tt.existingHook, tt.chain, tt.force, got, tt.want)
			}
		})
	}
}

func TestDescribeUninstall(t *testing.T) {
	tests := []struct {
		name      string
		installed bool
		hasBackup bool
		want      string
	}{
		{"not installed", false, false, "no driftwood hook installed"},
		{"installed with backup", true, true, "would remove and restore backup"},
		{"installed no backup", true, false, "would remove"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DescribeUninstall(tt.installed, tt.hasBackup)
			if !strings.Contains(got, tt.want) {
				t.Errorf("DescribeUninstall(%v,%v) = %q, want to contain %q",
					tt.installed, tt.hasBackup, got, tt.want)
			}
		})
	}
}
