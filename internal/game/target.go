package game

import (
	"fmt"
	"strings"
)

// Target is the game DLL the payload is installed in place of.
type Target int

const (
	TargetUnityPlayer Target = iota
	TargetCriManaVpx
)

// Targets lists every supported target.
var Targets = []Target{TargetUnityPlayer, TargetCriManaVpx}

// DLLName returns the file name of the target DLL.
func (t Target) DLLName() string {
	switch t {
	case TargetUnityPlayer:
		return "UnityPlayer.dll"
	case TargetCriManaVpx:
		return "cri_mana_vpx.dll"
	}
	return ""
}

// String returns the short name used in flags and config files.
func (t Target) String() string {
	switch t {
	case TargetUnityPlayer:
		return "unityplayer"
	case TargetCriManaVpx:
		return "cri_mana_vpx"
	}
	return fmt.Sprintf("Target(%d)", int(t))
}

// ParseTarget accepts either the short name or the DLL file name.
func ParseTarget(s string) (Target, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, t := range Targets {
		if v == t.String() || v == strings.ToLower(t.DLLName()) {
			return t, nil
		}
	}
	if v == "crimanavpx" || v == "cri-mana-vpx" {
		return TargetCriManaVpx, nil
	}
	return 0, fmt.Errorf("unknown target %q (want unityplayer or cri_mana_vpx)", s)
}
