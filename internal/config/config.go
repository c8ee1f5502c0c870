package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Git config keys and defaults for per-repository settings.
const (
	// MainBranchKey is the git config key naming the repository's main branch.
	MainBranchKey = "driftwood.mainBranch"

	// DefaultMainBranch is used when MainBranchKey is not set.
	DefaultMainBranch = "master"
)

// Settings holds user-level configuration loaded from config.yaml in Dir().
// All fields are optional; the zero value means "no preference".
type Settings struct {
	// Color controls colored output: "auto", "always", or "never".
	Color string `yaml:"color"`

	Next     NextSettings     `yaml:"next"`
	Smartlog SmartlogSettings `yaml:"smartlog"`
}

// NextSettings configures the next command.
type NextSettings struct {
	// Towards is the default policy for ambiguous steps: "newest" or "oldest".
	// Empty means no default; ambiguity is resolved interactively or fails.
	Towards string `yaml:"towards"`
}

// SmartlogSettings configures smartlog rendering.
type SmartlogSettings struct {
	// ASCII forces plain ASCII glyphs instead of Unicode.
	ASCII bool `yaml:"ascii"`
}

// Load reads config.yaml from dir. A missing file yields zero-value settings;
// a file that cannot be parsed or holds unknown values is an error.
func Load(dir string) (*Settings, error) {
	var s Settings
	if dir == "" {
		return &s, nil
	}

	path := filepath.Join(dir, "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &s, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &s, nil
}

func (s *Settings) validate() error {
	switch s.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("color must be auto, always, or never (got %q)", s.Color)
	}
	switch s.Next.Towards {
	case "", "newest", "oldest":
	default:
		return fmt.Errorf("next.towards must be newest or oldest (got %q)", s.Next.Towards)
	}
	return nil
}
