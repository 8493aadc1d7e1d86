package capability

import (
	homedir "github.com/mitchellh/go-homedir"
)

// ExpandPath resolves a leading ~ to the current user's home directory.
// Unresolvable paths are returned unchanged; the caller's stat will fail
// with a message naming the literal path.
func ExpandPath(path string) string {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}
