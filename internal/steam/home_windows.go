//go:build windows

package steam

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/windows/registry"
)

func homeCandidates() []string {
	var dirs []string
	if p := registryString(registry.CURRENT_USER, `Software\Valve\Steam`, "SteamPath"); p != "" {
		dirs = append(dirs, filepath.Clean(p))
	}
	if p := registryString(registry.LOCAL_MACHINE, `SOFTWARE\WOW6432Node\Valve\Steam`, "InstallPath"); p != "" {
		dirs = append(dirs, filepath.Clean(p))
	}
	if pf := os.Getenv("ProgramFiles(x86)"); pf != "" {
		dirs = append(dirs, filepath.Join(pf, "Steam"))
	}
	return dirs
}

func registryString(root registry.Key, path, name string) string {
	k, err := registry.OpenKey(root, path, registry.QUERY_VALUE)
	if err != nil {
		return ""
	}
	defer k.Close()
	v, _, err := k.GetStringValue(name)
	if err != nil {
		return ""
	}
	return v
}
