// Package rle run-length encodes chunk block data.
//
// The encoding is a flat sequence of 3-byte runs: block id, then the run
// length as a big-endian uint16. Runs never exceed MaxRun.
package rle

import (
	"errors"
	"fmt"

	"github.com/OCharnyshevich/hexterrain/pkg/blocks"
)

// MaxRun is the longest run a single triplet can describe.
const MaxRun = 0xFFFF

// ErrLength is returned when decoded data does not have the expected size.
var ErrLength = errors.New("rle: length mismatch")

// Encode compresses data into runs.
func Encode(data []blocks.ID) []byte {
	if len(data) == 0 {
		return nil
	}
	out := make([]byte, 0, 64)
	cur, n := data[0], 1
	flush := func() {
		out = append(out, byte(cur), byte(n>>8), byte(n))
	}
	for _, id := range data[1:] {
		if id == cur && n < MaxRun {
			n++
			continue
		}
		flush()
		cur, n = id, 1
	}
	flush()
	return out
}

// Decode expands runs into exactly want block ids.
func Decode(enc []byte, want int) ([]blocks.ID, error) {
	if len(enc)%3 != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of runs", ErrLength, len(enc))
	}
	out := make([]blocks.ID, 0, want)
	for i := 0; i < len(enc); i += 3 {
		id := blocks.ID(enc[i])
		n := int(enc[i+1])<<8 | int(enc[i+2])
		if n == 0 {
			return nil, fmt.Errorf("rle: empty run at offset %d", i)
		}
		if len(out)+n > want {
			return nil, fmt.Errorf("%w: runs exceed %d ids", ErrLength, want)
		}
		for j := 0; j < n; j++ {
			out = append(out, id)
		}
	}
	if len(out) != want {
		return nil, fmt.Errorf("%w: got %d ids, want %d", ErrLength, len(out), want)
	}
	return out, nil
}
