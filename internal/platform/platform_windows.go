//go:build windows

package platform

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

// SystemDir returns the Windows system directory.
func SystemDir() (string, error) {
	return windows.GetSystemDirectory()
}

// IsElevated reports whether the process runs with an elevated token.
func IsElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}

// DevOverrideEnabled reports whether DevOverrideEnable is set to a non-zero
// value. A missing value counts as disabled.
func (r *Registry) DevOverrideEnabled() (bool, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, IFEOKeyPath, registry.QUERY_VALUE)
	if err != nil {
		return false, fmt.Errorf("open %s: %w", IFEOKeyPath, err)
	}
	defer k.Close()

	v, _, err := k.GetIntegerValue(DevOverrideValue)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", DevOverrideValue, err)
	}
	return v != 0, nil
}

// EnableDevOverride sets DevOverrideEnable to 1. It needs administrator
// rights; the change takes effect after a restart.
func (r *Registry) EnableDevOverride() error {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, IFEOKeyPath, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("open %s for writing: %w", IFEOKeyPath, err)
	}
	defer k.Close()

	if err := k.SetDWordValue(DevOverrideValue, 1); err != nil {
		return fmt.Errorf("set %s: %w", DevOverrideValue, err)
	}
	return nil
}
