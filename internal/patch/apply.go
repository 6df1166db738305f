package patch

import (
	"fmt"

	"github.com/gabstv/go-bsdiff/pkg/bspatch"
)

// Apply reconstructs a file from original and a BSDIFF40 delta.
// It works on memory only; writing the result is left to the caller.
func Apply(original, delta []byte) ([]byte, error) {
	if len(delta) == 0 {
		return nil, fmt.Errorf("%w: empty delta", ErrCorruptPatch)
	}
	out, err := bspatch.Bytes(original, delta)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptPatch, err)
	}
	return out, nil
}
