// Package game describes the installations Hachimi can be installed into:
// distribution channels, injection targets, and the method used to make the
// game load the payload for each combination.
package game

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Channel is a distribution channel of the game. Each channel ships a
// differently named executable that identifies it on disk.
type Channel int

const (
	// ChannelDMM is the DMM Game Player release.
	ChannelDMM Channel = iota
	// ChannelSteam is the Japanese Steam release. Its executable must be
	// patched before the payload can be loaded.
	ChannelSteam
	// ChannelSteamGlobal is the global Steam release.
	ChannelSteamGlobal
)

// Channels lists every channel in detection priority order.
var Channels = []Channel{ChannelDMM, ChannelSteam, ChannelSteamGlobal}

// Steam application ids.
const (
	SteamAppID       uint32 = 3564400
	SteamGlobalAppID uint32 = 3224770
)

// ExeName returns the marker executable of the channel.
func (c Channel) ExeName() string {
	switch c {
	case ChannelDMM:
		return "umamusume.exe"
	case ChannelSteam:
		return "UmamusumePrettyDerby_Jpn.exe"
	case ChannelSteamGlobal:
		return "UmamusumePrettyDerby.exe"
	}
	return ""
}

// SteamAppID returns the Steam application id, or 0 for non-Steam channels.
func (c Channel) SteamAppID() uint32 {
	switch c {
	case ChannelSteam:
		return SteamAppID
	case ChannelSteamGlobal:
		return SteamGlobalAppID
	}
	return 0
}

// NeedsExePatch reports whether the executable has to be patched.
func (c Channel) NeedsExePatch() bool {
	return c == ChannelSteam
}

// String returns the short name used in flags and config files.
func (c Channel) String() string {
	switch c {
	case ChannelDMM:
		return "dmm"
	case ChannelSteam:
		return "steam"
	case ChannelSteamGlobal:
		return "steam-global"
	}
	return fmt.Sprintf("Channel(%d)", int(c))
}

// DisplayName returns a human readable channel name.
func (c Channel) DisplayName() string {
	switch c {
	case ChannelDMM:
		return "DMM"
	case ChannelSteam:
		return "Steam (JP)"
	case ChannelSteamGlobal:
		return "Steam (Global)"
	}
	return c.String()
}

// ParseChannel parses a channel name as produced by String.
func ParseChannel(s string) (Channel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dmm":
		return ChannelDMM, nil
	case "steam", "steam-jp", "jp":
		return ChannelSteam, nil
	case "steam-global", "global":
		return ChannelSteamGlobal, nil
	}
	return 0, fmt.Errorf("unknown channel %q (want dmm, steam or steam-global)", s)
}

// DetectChannel reports which channel's executable is present in dir.
// When more than one is present the first in Channels wins.
func DetectChannel(dir string) (Channel, bool) {
	if dir == "" {
		return 0, false
	}
	for _, c := range Channels {
		info, err := os.Stat(filepath.Join(dir, c.ExeName()))
		if err == nil && info.Mode().IsRegular() {
			return c, true
		}
	}
	return 0, false
}
