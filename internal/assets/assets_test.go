package assets

import (
	"bytes"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/klauspost/compress/zstd"
)

func compress(t *testing.T, data []byte) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil)
}

func TestBundleRead(t *testing.T) {
	t.Parallel()

	patch := bytes.Repeat([]byte("BSDIFF40"), 128)
	b := FromFS(fstest.MapFS{
		"hachimi.dll":         {Data: []byte("MZ payload")},
		"umamusume.patch.zst": {Data: compress(t, patch)},
		"broken.bin.zst":      {Data: []byte("not zstd")},
	})

	got, err := b.Read("hachimi.dll")
	if err != nil || string(got) != "MZ payload" {
		t.Errorf("Read(raw): got %q, %v", got, err)
	}

	got, err = b.Read("umamusume.patch")
	if err != nil {
		t.Fatalf("Read(zst) error: %v", err)
	}
	if !bytes.Equal(got, patch) {
		t.Error("Read(zst): decompressed content differs")
	}

	if _, err := b.Read("cellar.dll"); !errors.Is(err, ErrMissing) {
		t.Errorf("Read(missing): got %v, want ErrMissing", err)
	}
	if _, err := b.Read("broken.bin"); err == nil {
		t.Error("Read(corrupt zst): expected error")
	}

	if !b.Has("umamusume.patch") || !b.Has("hachimi.dll") || b.Has("cellar.dll") {
		t.Error("Has reported the wrong availability")
	}
}

func TestEmbeddedBundle(t *testing.T) {
	t.Parallel()

	if !Embedded().Has("README.md") {
		t.Error("embedded bundle should contain README.md")
	}
}
