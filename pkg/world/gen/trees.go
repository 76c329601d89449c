package gen

import (
	"github.com/OCharnyshevich/hexterrain/pkg/blocks"
	"github.com/OCharnyshevich/hexterrain/pkg/hex"
	"github.com/OCharnyshevich/hexterrain/pkg/world/chunk"
)

const (
	minTrunkHeight   = 5
	trunkHeightRange = 7 // heights 5-11
	canopyRadius     = 2
	// headroom is the number of top layers a tree may never reach into.
	headroom = 2
)

// TrunkHeight sizes a tree from its spawn hash.
func TrunkHeight(randSeed float64) int {
	return minTrunkHeight + int(randSeed*trunkHeightRange)
}

// BuildTree grows a trunk at (lq, lr) from startY and a hexagonal canopy
// around its top. It reports false, writing nothing, if the tree would reach
// the top headroom of the chunk. The trunk column must lie inside the chunk;
// leaves falling outside it are skipped, and leaves never replace non-air.
func BuildTree(c *chunk.Chunk, lq, lr, startY int, trunk, leaves blocks.ID, randSeed float64) bool {
	trunkHeight := TrunkHeight(randSeed)
	topY := startY + trunkHeight
	if topY >= chunk.Height-headroom {
		return false
	}

	for y := startY; y < topY; y++ {
		c.SetBlock(lq, lr, y, trunk)
	}

	for dr := -canopyRadius; dr <= canopyRadius; dr++ {
		for dq := -canopyRadius; dq <= canopyRadius; dq++ {
			dist := hex.Length(dq, dr)
			q, r := lq+dq, lr+dr

			if dist <= canopyRadius {
				// Outer ring of the lowest layer is only filled on some trees.
				if dist < canopyRadius || randSeed > 0.5 {
					placeLeaf(c, q, r, topY-2, leaves)
				}
				placeLeaf(c, q, r, topY-1, leaves)
			}
			if dist <= 1 {
				placeLeaf(c, q, r, topY, leaves)
			}
		}
	}
	placeLeaf(c, lq, lr, topY+1, leaves)
	return true
}

// placeLeaf writes a leaf into air only; out-of-chunk positions are a no-op.
func placeLeaf(c *chunk.Chunk, lq, lr, y int, leaves blocks.ID) {
	if !chunk.InBounds(lq, lr, y) {
		return
	}
	if c.Block(lq, lr, y) == blocks.Air {
		c.SetBlock(lq, lr, y, leaves)
	}
}
