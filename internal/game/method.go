package game

import "fmt"

// Method is the way the game is made to load the payload.
type Method int

const (
	// MethodSideLoad places the payload in the executable's ".local"
	// redirection directory. Windows only honours it when the
	// DevOverrideEnable machine flag is set.
	MethodSideLoad Method = iota
	// MethodShimSwap places the payload in the system directory and parks
	// the game's own copy of the DLL in the install tree's shadow directory.
	MethodShimSwap
	// MethodDirect overwrites the DLL next to the executable.
	MethodDirect
)

func (m Method) String() string {
	switch m {
	case MethodSideLoad:
		return "side-load"
	case MethodShimSwap:
		return "shim-swap"
	case MethodDirect:
		return "direct"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

var methodTable = map[Target]map[Channel]Method{
	TargetUnityPlayer: {
		ChannelDMM:         MethodSideLoad,
		ChannelSteam:       MethodSideLoad,
		ChannelSteamGlobal: MethodSideLoad,
	},
	TargetCriManaVpx: {
		ChannelDMM:         MethodShimSwap,
		ChannelSteam:       MethodDirect,
		ChannelSteamGlobal: MethodDirect,
	},
}

// MethodFor returns the install method for a target on a channel.
func MethodFor(t Target, c Channel) Method {
	if m, ok := methodTable[t][c]; ok {
		return m
	}
	return MethodDirect
}
