// Package peinfo reads product metadata from the version resource of a
// Windows PE image.
package peinfo

import (
	"os"

	"github.com/saferwall/pe"

	"github.com/hachimi-dev/hachimi-installer/internal/game"
)

// Read returns the ProductName and ProductVersion of the DLL at path. The
// boolean is false only when the file does not exist; a file that exists but
// cannot be parsed or has no version resource yields empty info.
func Read(path string) (game.VersionInfo, bool) {
	st, err := os.Stat(path)
	if err != nil || !st.Mode().IsRegular() {
		return game.VersionInfo{}, false
	}

	f, err := pe.New(path, &pe.Options{})
	if err != nil {
		return game.VersionInfo{}, true
	}
	defer f.Close()

	if err := f.Parse(); err != nil {
		return game.VersionInfo{}, true
	}
	res, err := f.ParseVersionResources()
	if err != nil {
		return game.VersionInfo{}, true
	}
	return game.VersionInfo{
		Name:    res["ProductName"],
		Version: res["ProductVersion"],
	}, true
}
