// Package patch verifies executables by digest and applies binary deltas.
package patch

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// chunkSize is the read size used while hashing.
const chunkSize = 1 << 20

var (
	// ErrHashMismatch indicates a file does not have the expected digest.
	ErrHashMismatch = errors.New("patch: hash mismatch")

	// ErrCorruptPatch indicates the delta could not be applied.
	ErrCorruptPatch = errors.New("patch: corrupt or mismatched delta")
)

// MismatchError reports the expected and actual SHA-256 digests of a file.
type MismatchError struct {
	Path     string
	Expected string
	Found    string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("patch: %s: expected sha256 %s, found %s", e.Path, e.Expected, e.Found)
}

// Unwrap returns ErrHashMismatch.
func (e *MismatchError) Unwrap() error {
	return ErrHashMismatch
}

// FileHash returns the lowercase hex SHA-256 digest of the file at path.
// The file is streamed and never held in memory as a whole.
func FileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.CopyBuffer(h, f, make([]byte, chunkSize)); err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// VerifyHash checks the file at path against an expected hex digest.
// Digests are compared case-insensitively. A mismatch returns *MismatchError.
func VerifyHash(path, expected string) error {
	found, err := FileHash(path)
	if err != nil {
		return err
	}
	if !strings.EqualFold(found, strings.TrimSpace(expected)) {
		return &MismatchError{Path: path, Expected: strings.ToLower(expected), Found: found}
	}
	return nil
}
