package game

import (
	"fmt"

	goversion "github.com/hashicorp/go-version"
)

// HachimiProductName is the ProductName stamped into every Hachimi build.
const HachimiProductName = "Hachimi"

// VersionInfo is the product metadata read from a DLL's version resource.
// Empty fields mean the resource did not carry them.
type VersionInfo struct {
	Name    string
	Version string
}

// IsHachimi reports whether the DLL is a Hachimi build.
func (v VersionInfo) IsHachimi() bool {
	return v.Name == HachimiProductName
}

// DisplayLabel returns the list label for a target DLL, for example
// "* UnityPlayer.dll (Hachimi)".
func DisplayLabel(t Target, v VersionInfo) string {
	name := v.Name
	if name == "" {
		name = "Unknown"
	}
	return fmt.Sprintf("* %s (%s)", t.DLLName(), name)
}

// UpdateState describes an installed payload relative to the bundled one.
type UpdateState int

const (
	UpdateUnknown UpdateState = iota
	UpdateCurrent
	UpdateAvailable
	UpdateNewerInstalled
)

func (s UpdateState) String() string {
	switch s {
	case UpdateCurrent:
		return "up to date"
	case UpdateAvailable:
		return "update available"
	case UpdateNewerInstalled:
		return "installed build is newer"
	}
	return "unknown"
}

// CompareWithBundled compares the installed Hachimi version against the
// version of the bundled payload. Unparseable versions yield UpdateUnknown.
func (v VersionInfo) CompareWithBundled(bundled string) UpdateState {
	if !v.IsHachimi() || v.Version == "" {
		return UpdateUnknown
	}
	installed, err := goversion.NewVersion(v.Version)
	if err != nil {
		return UpdateUnknown
	}
	want, err := goversion.NewVersion(bundled)
	if err != nil {
		return UpdateUnknown
	}
	switch installed.Compare(want) {
	case -1:
		return UpdateAvailable
	case 1:
		return UpdateNewerInstalled
	}
	return UpdateCurrent
}
