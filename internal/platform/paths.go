// Package platform contains small path helpers shared by the CLI and the
// web front end.
package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandUser replaces a leading "~" with the current user's home directory.
func ExpandUser(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}
