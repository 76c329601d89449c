// Package chunk holds the dense voxel buffer produced by terrain generation.
package chunk

import (
	"crypto/sha256"
	"fmt"

	"github.com/OCharnyshevich/hexterrain/pkg/blocks"
)

const (
	// Size is the chunk edge length along both axial axes.
	Size = 16
	// Height is the number of vertical layers.
	Height = 64
	// Volume is the number of voxels in one chunk.
	Volume = Size * Size * Height
)

// Pos identifies a chunk by its axial chunk indices.
type Pos struct{ Q, R int }

// Chunk is a Size×Size×Height grid of block ids. Unwritten voxels are air.
// Index = (lr*Size + lq)*Height + y, so each column is contiguous.
type Chunk struct {
	CQ, CR int
	blocks []blocks.ID
}

// New returns an all-air chunk at (cq, cr).
func New(cq, cr int) *Chunk {
	return &Chunk{CQ: cq, CR: cr, blocks: make([]blocks.ID, Volume)}
}

// FromRaw wraps an existing buffer. The slice is owned by the chunk afterwards.
func FromRaw(cq, cr int, data []blocks.ID) (*Chunk, error) {
	if len(data) != Volume {
		return nil, fmt.Errorf("chunk (%d,%d): buffer length %d, want %d", cq, cr, len(data), Volume)
	}
	return &Chunk{CQ: cq, CR: cr, blocks: data}, nil
}

// Pos returns the chunk's coordinates.
func (c *Chunk) Pos() Pos { return Pos{Q: c.CQ, R: c.CR} }

// InBounds reports whether local coordinates address a voxel in the chunk.
func InBounds(lq, lr, y int) bool {
	return lq >= 0 && lq < Size && lr >= 0 && lr < Size && y >= 0 && y < Height
}

func index(lq, lr, y int) int {
	return (lr*Size+lq)*Height + y
}

func mustInBounds(op string, lq, lr, y int) {
	if !InBounds(lq, lr, y) {
		panic(fmt.Sprintf("chunk: %s(%d,%d,%d) out of range", op, lq, lr, y))
	}
}

// Block returns the id at local coordinates. It panics when the coordinates
// are out of range; callers that may step outside use InBounds first.
func (c *Chunk) Block(lq, lr, y int) blocks.ID {
	mustInBounds("Block", lq, lr, y)
	return c.blocks[index(lq, lr, y)]
}

// SetBlock stores id at local coordinates, panicking when out of range.
func (c *Chunk) SetBlock(lq, lr, y int, id blocks.ID) {
	mustInBounds("SetBlock", lq, lr, y)
	c.blocks[index(lq, lr, y)] = id
}

// Column returns the vertical stack at (lq, lr) as a view into the buffer.
func (c *Chunk) Column(lq, lr int) []blocks.ID {
	mustInBounds("Column", lq, lr, 0)
	i := index(lq, lr, 0)
	return c.blocks[i : i+Height : i+Height]
}

// Raw exposes the underlying buffer for codecs. Callers must not modify it.
func (c *Chunk) Raw() []blocks.ID {
	return c.blocks
}

// TopY returns the highest non-air layer of a column, or -1 if it is empty.
func (c *Chunk) TopY(lq, lr int) int {
	col := c.Column(lq, lr)
	for y := Height - 1; y >= 0; y-- {
		if col[y] != blocks.Air {
			return y
		}
	}
	return -1
}

// ForEach calls fn for every non-air voxel with its global axial coordinates,
// layer by layer from the bottom.
func (c *Chunk) ForEach(fn func(q, r, y int, id blocks.ID)) {
	qOff, rOff := c.CQ*Size, c.CR*Size
	for y := 0; y < Height; y++ {
		for lr := 0; lr < Size; lr++ {
			for lq := 0; lq < Size; lq++ {
				if id := c.blocks[index(lq, lr, y)]; id != blocks.Air {
					fn(qOff+lq, rOff+lr, y, id)
				}
			}
		}
	}
}

// Counts tallies voxels per block id.
func (c *Chunk) Counts() map[blocks.ID]int {
	out := make(map[blocks.ID]int)
	for _, id := range c.blocks {
		out[id]++
	}
	return out
}

// Digest is the SHA-256 of the raw buffer. Equal digests mean equal chunks.
func (c *Chunk) Digest() [32]byte {
	buf := make([]byte, len(c.blocks))
	for i, id := range c.blocks {
		buf[i] = byte(id)
	}
	return sha256.Sum256(buf)
}

// Equal reports whether two chunks share coordinates and contents.
func (c *Chunk) Equal(o *Chunk) bool {
	if c.CQ != o.CQ || c.CR != o.CR || len(c.blocks) != len(o.blocks) {
		return false
	}
	for i := range c.blocks {
		if c.blocks[i] != o.blocks[i] {
			return false
		}
	}
	return true
}
