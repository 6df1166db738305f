// Package platform wraps the Windows facilities the installer depends on:
// the system directory, the DevOverrideEnable machine flag that activates
// ".local" DLL redirection, and the elevation state of the process.
package platform

import "errors"

// ErrUnsupported is returned on systems without the Windows registry.
var ErrUnsupported = errors.New("platform: not supported on this system")

// IFEOKeyPath is the registry key holding DevOverrideEnable, below
// HKEY_LOCAL_MACHINE.
const IFEOKeyPath = `SOFTWARE\Microsoft\Windows NT\CurrentVersion\Image File Execution Options`

// DevOverrideValue is the DWORD value that enables ".local" redirection.
const DevOverrideValue = "DevOverrideEnable"

// Registry reads and sets the DevOverrideEnable flag.
type Registry struct{}

// NewRegistry returns the machine registry accessor.
func NewRegistry() *Registry {
	return &Registry{}
}
