// Package config provides the global configuration directory and user
// settings for driftwood.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the driftwood configuration directory.
//
// Resolution:
//   - $DRIFTWOOD_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/driftwood if set (respects XDG on any platform)
//   - %AppData%/driftwood on Windows
//   - ~/.config/driftwood on macOS and Linux
func Dir() string {
	// Explicit override
	if dir := os.Getenv("DRIFTWOOD_CONFIG_HOME"); dir != "" {
		return dir
	}

	// XDG override (works on any platform)
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "driftwood")
	}

	// Windows: use AppData
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "driftwood")
		}
	}

	// macOS and Linux: ~/.config/driftwood
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "driftwood")
}
