//go:build !windows

package platform

// SystemDir is only meaningful on Windows.
func SystemDir() (string, error) {
	return "", ErrUnsupported
}

// IsElevated always reports false off Windows.
func IsElevated() bool {
	return false
}

// DevOverrideEnabled is only meaningful on Windows.
func (r *Registry) DevOverrideEnabled() (bool, error) {
	return false, ErrUnsupported
}

// EnableDevOverride is only meaningful on Windows.
func (r *Registry) EnableDevOverride() error {
	return ErrUnsupported
}
