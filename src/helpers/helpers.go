// Contains few helpers functions which are used througout the project
package helpers

import (
	"fmt"
	"os"
	"path/filepath"
)

// ProjectUserPath returns the directory in which coverd keeps its configuration
// and cache database for the current user.
func ProjectUserPath() (string, error) {
	base, err := userBaseDir()
	if err != nil {
		return "", fmt.Errorf("finding the user directory: %w", err)
	}

	return filepath.Join(base, ProjectDir), nil
}

// AbsolutePath returns `path` if it is absolute. Otherwise it returns it joined
// to `root`.
func AbsolutePath(path, root string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func homeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if home == "" {
		return "", fmt.Errorf("empty home directory")
	}
	return home, nil
}
