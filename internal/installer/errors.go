package installer

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/hachimi-dev/hachimi-installer/internal/i18n"
	"github.com/hachimi-dev/hachimi-installer/internal/patch"
)

// Sentinel errors for installer operations.
var (
	// ErrNoInstallDir indicates no install directory has been selected.
	ErrNoInstallDir = errors.New("installer: no install directory selected")

	// ErrInvalidInstallDir indicates the directory holds no game executable.
	ErrInvalidInstallDir = errors.New("installer: directory does not contain a game executable")

	// ErrCannotFindTarget indicates a file the install method relies on is missing.
	ErrCannotFindTarget = errors.New("installer: cannot find target file")

	// ErrSteamRunning indicates the user gave up waiting for Steam to exit.
	ErrSteamRunning = errors.New("installer: steam is running")
)

// MissingFileError names the file behind ErrCannotFindTarget.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("installer: cannot find %s", e.Path)
}

// Unwrap returns ErrCannotFindTarget.
func (e *MissingFileError) Unwrap() error {
	return ErrCannotFindTarget
}

// VerificationError reports an executable whose digest does not match the
// build the bundled patch was made for.
type VerificationError struct {
	File     string
	Expected string
	Found    string
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("installer: %s failed verification: expected sha256 %s, found %s", e.File, e.Expected, e.Found)
}

// Unwrap returns patch.ErrHashMismatch.
func (e *VerificationError) Unwrap() error {
	return patch.ErrHashMismatch
}

// RegistryError reports a failed registry operation.
type RegistryError struct {
	Op  string
	Err error
}

func (e *RegistryError) Error() string {
	return fmt.Sprintf("installer: registry: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *RegistryError) Unwrap() error {
	return e.Err
}

// Message renders err as a localized message for the user.
func Message(err error, text TextFunc) string {
	if err == nil {
		return ""
	}
	if text == nil {
		text = i18n.Text
	}

	var (
		missing *MissingFileError
		verify  *VerificationError
		reg     *RegistryError
		pathErr *fs.PathError
	)
	switch {
	case errors.Is(err, ErrNoInstallDir):
		return text("error.no_install_dir", nil)
	case errors.Is(err, ErrInvalidInstallDir):
		return text("error.invalid_install_dir", nil)
	case errors.As(err, &missing):
		return text("error.cannot_find_target", i18n.Params{"target": filepath.Base(missing.Path)})
	case errors.Is(err, ErrCannotFindTarget):
		return text("error.cannot_find_target", i18n.Params{"target": "?"})
	case errors.Is(err, ErrSteamRunning):
		return text("error.steam_running", nil)
	case errors.As(err, &verify):
		return text("error.verification", i18n.Params{
			"file":     verify.File,
			"expected": verify.Expected,
			"found":    verify.Found,
		})
	case errors.As(err, &reg):
		return text("error.registry", i18n.Params{"error": reg.Err})
	case errors.As(err, &pathErr):
		return text("error.io", i18n.Params{"error": err})
	}
	return text("error.generic", i18n.Params{"error": err})
}
