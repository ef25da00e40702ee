// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// dataDir is where the application keeps its local state when no explicit
// path is configured.
const dataDir = ".local/share/onesource"

// ExpandPath expands a leading ~ and any $VAR environment references in a
// file path. An unresolvable home directory leaves the tilde in place.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}
	return os.ExpandEnv(expandTilde(path))
}

func expandTilde(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

// DatabasePath resolves the lead database location, preferring the
// configured path over the default under the user data directory.
func DatabasePath(configured string) string {
	if configured != "" {
		return ExpandPath(configured)
	}
	return filepath.Join(defaultDataDir(), "crm.db")
}

// ViewsPath resolves the saved-views store location, preferring the
// configured path over the default under the user data directory.
func ViewsPath(configured string) string {
	if configured != "" {
		return ExpandPath(configured)
	}
	return filepath.Join(defaultDataDir(), "views")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, dataDir)
}
