package version

import "fmt"

// Build-time variables injected via -ldflags.
var (
	Version = "v0.3.0"
	Commit  = "none"
	Date    = "unknown"

	// Payload is the ProductVersion of the bundled hachimi.dll, stamped by the
	// release build from the DLL's version resource.
	Payload = "unknown"
)

// GetVersion returns the installer version string.
func GetVersion() string {
	return Version
}

// GetPayloadVersion returns the bundled payload version.
func GetPayloadVersion() string {
	return Payload
}

// GetFullVersion returns a formatted full version string.
func GetFullVersion() string {
	return fmt.Sprintf("%s (payload: %s, commit: %s, built: %s)", Version, Payload, Commit, Date)
}
