// Package paths resolves user supplied and per-user file locations.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/songmap/pkg/constants"
)

// Expand expands a leading ~ to the user's home directory.
func Expand(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return homeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}
	return path
}

// DataDir returns the per-user data directory for songmap, falling back
// to the temp dir when the platform reports none.
func DataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, constants.AppName)
}
