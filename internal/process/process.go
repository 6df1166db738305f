// Package process answers whether a named process is running.
package process

import (
	"context"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v3/process"
)

// SteamNames are the executable names of the Steam client.
var SteamNames = []string{"steam.exe", "steam"}

// Checker reports whether any process with one of the given names runs.
type Checker struct{}

// NewChecker returns a Checker backed by the OS process table.
func NewChecker() *Checker {
	return &Checker{}
}

// IsRunning reports whether a process whose name equals one of names
// (case-insensitively) exists. Processes that vanish or deny access while
// being inspected are skipped.
func (c *Checker) IsRunning(ctx context.Context, names ...string) (bool, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return false, fmt.Errorf("list processes: %w", err)
	}
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		if matches(name, names) {
			return true, nil
		}
	}
	return false, nil
}

func matches(name string, names []string) bool {
	for _, n := range names {
		if strings.EqualFold(name, n) {
			return true
		}
	}
	return false
}
