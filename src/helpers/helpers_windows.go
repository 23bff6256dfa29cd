//go:build windows

/*
   Helpers for windows machines
*/

package helpers

import "os"

// ProjectDir is the name of the coverd directory in the user's %APPDATA%
const ProjectDir = "journeo"

func userBaseDir() (string, error) {
	if appData := os.Getenv("APPDATA"); appData != "" {
		return appData, nil
	}
	return homeDir()
}
