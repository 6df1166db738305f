// Package assets provides the payload files written by the installer. They
// are compiled into the binary, or read from a directory during development.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/klauspost/compress/zstd"
)

//go:embed bundle
var embedded embed.FS

// ErrMissing indicates the bundle does not contain the requested file.
var ErrMissing = errors.New("assets: file not bundled")

const zstdSuffix = ".zst"

// Bundle is a read-only set of payload files.
type Bundle struct {
	fsys fs.FS
}

// Embedded returns the bundle compiled into the binary.
func Embedded() *Bundle {
	sub, err := fs.Sub(embedded, "bundle")
	if err != nil {
		panic(err)
	}
	return &Bundle{fsys: sub}
}

// FromDir returns a bundle backed by a directory on disk.
func FromDir(dir string) *Bundle {
	return &Bundle{fsys: os.DirFS(dir)}
}

// FromFS returns a bundle backed by fsys.
func FromFS(fsys fs.FS) *Bundle {
	return &Bundle{fsys: fsys}
}

// Has reports whether name is available, compressed or not.
func (b *Bundle) Has(name string) bool {
	for _, n := range []string{name, name + zstdSuffix} {
		if st, err := fs.Stat(b.fsys, n); err == nil && !st.IsDir() {
			return true
		}
	}
	return false
}

// Read returns the contents of name. When only name+".zst" is present it is
// decompressed first.
func (b *Bundle) Read(name string) ([]byte, error) {
	name = path.Clean(name)
	data, err := fs.ReadFile(b.fsys, name)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read bundled %s: %w", name, err)
	}

	compressed, err := fs.ReadFile(b.fsys, name+zstdSuffix)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissing, name)
		}
		return nil, fmt.Errorf("read bundled %s: %w", name+zstdSuffix, err)
	}
	return decompress(compressed)
}

func decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	defer dec.Close()

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress payload: %w", err)
	}
	return out, nil
}
