package steam

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/c12h/steam-stuff/sVDF"

	"github.com/hachimi-dev/hachimi-installer/internal/defs"
	"github.com/hachimi-dev/hachimi-installer/internal/fsutil"
)

// Client reads the files of one Steam installation.
type Client struct {
	Home string
}

// New returns a Client for the Steam installation at home.
func New(home string) *Client {
	return &Client{Home: home}
}

// Locate finds the Steam installation and returns a Client for it.
func Locate() (*Client, error) {
	home, err := FindHome()
	if err != nil {
		return nil, err
	}
	return New(home), nil
}

// App is an installed Steam application.
type App struct {
	ID         uint32
	Name       string
	InstallDir string
	// Library is the steamapps directory the app is installed in.
	Library string
}

// Dir returns the app's install directory.
func (a App) Dir() string {
	return filepath.Join(a.Library, "common", a.InstallDir)
}

// parseVDF reads a text VDF file. sVDF indexes past the end of truncated
// input, so a panic is turned into an error.
func parseVDF(path string) (f *sVDF.File, err error) {
	defer func() {
		if r := recover(); r != nil {
			f, err = nil, fmt.Errorf("parse %s: malformed file: %v", path, r)
		}
	}()
	st, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if st.Size() == 0 {
		return nil, fmt.Errorf("parse %s: empty file", path)
	}
	return sVDF.FromFile(path)
}

// LibraryDirs returns the steamapps directory of every library folder,
// starting with the one inside the Steam installation. Both the current
// layout ("0" { "path" ... }) and the older flat one ("1" "D:\\Lib") of
// libraryfolders.vdf are understood.
func (c *Client) LibraryDirs() ([]string, error) {
	main := filepath.Join(c.Home, "steamapps")
	if !fsutil.IsDir(main) {
		return nil, fmt.Errorf("%w: %s has no steamapps", ErrSteamNotFound, c.Home)
	}
	dirs := []string{main}
	seen := map[string]bool{filepath.Clean(main): true}

	f, err := parseVDF(filepath.Join(main, defs.LibraryFoldersVDF))
	if err != nil {
		if os.IsNotExist(err) {
			return dirs, nil
		}
		return dirs, fmt.Errorf("read library folders: %w", err)
	}
	top, ok := f.TopValue.(sVDF.NamesValuesList)
	if !ok {
		return dirs, nil
	}
	for _, name := range top.Names() {
		if _, err := strconv.Atoi(name); err != nil {
			continue
		}
		var path string
		switch v := top[name].(type) {
		case string:
			path = v
		case sVDF.NamesValuesList:
			path, _ = v["path"].(string)
		}
		if path == "" {
			continue
		}
		lib := filepath.Clean(filepath.Join(path, "steamapps"))
		if seen[lib] || !fsutil.IsDir(lib) {
			continue
		}
		seen[lib] = true
		dirs = append(dirs, lib)
	}
	return dirs, nil
}

// FindApp looks up an app's manifest in every library folder.
func (c *Client) FindApp(id uint32) (App, error) {
	libs, err := c.LibraryDirs()
	if len(libs) == 0 {
		return App{}, err
	}
	manifest := fmt.Sprintf("appmanifest_%d.acf", id)
	for _, lib := range libs {
		path := filepath.Join(lib, manifest)
		if !fileExists(path) {
			continue
		}
		f, err := parseVDF(path)
		if err != nil {
			continue
		}
		installDir := topString(f, "installdir")
		if installDir == "" {
			continue
		}
		name := topString(f, "name")
		return App{ID: id, Name: name, InstallDir: installDir, Library: lib}, nil
	}
	return App{}, fmt.Errorf("%w: %d", ErrAppNotFound, id)
}

// topString returns a string entry of the file's top-level block.
func topString(f *sVDF.File, key string) string {
	top, ok := f.TopValue.(sVDF.NamesValuesList)
	if !ok {
		return ""
	}
	v, _ := top[key].(string)
	return v
}
