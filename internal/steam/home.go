// Package steam locates the Steam client, its library folders and installed
// apps, and edits per-user launch options.
package steam

import (
	"errors"
	"os"

	"github.com/hachimi-dev/hachimi-installer/internal/fsutil"
)

var (
	// ErrSteamNotFound indicates no Steam installation could be located.
	ErrSteamNotFound = errors.New("steam: installation not found")

	// ErrAppNotFound indicates the app is not installed in any library.
	ErrAppNotFound = errors.New("steam: app not installed")
)

// FindHome returns the Steam installation directory.
func FindHome() (string, error) {
	for _, dir := range homeCandidates() {
		if fsutil.IsDir(dir) {
			return dir, nil
		}
	}
	return "", ErrSteamNotFound
}

func fileExists(p string) bool {
	st, err := os.Stat(p)
	return err == nil && st.Mode().IsRegular()
}
