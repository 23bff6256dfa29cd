//go:build !windows

/*
   Helpers for all non-windows machines
*/

package helpers

// ProjectDir is the name of the coverd directory in the user's home directory
const ProjectDir = ".journeo"

func userBaseDir() (string, error) {
	return homeDir()
}
