package gen

import (
	"github.com/OCharnyshevich/hexterrain/pkg/world/chunk"
)

// flatSurfaceY is the grass layer of a flat world.
const flatSurfaceY = 4

// FlatGenerator generates a superflat world:
// bedrock at y=0, stone y=1..2, dirt y=3, grass y=4.
type FlatGenerator struct {
	palette Palette
}

// NewFlatGenerator creates a FlatGenerator writing palette ids.
func NewFlatGenerator(p Palette) *FlatGenerator {
	return &FlatGenerator{palette: p}
}

func (g *FlatGenerator) Generate(cq, cr int) *chunk.Chunk {
	c := chunk.New(cq, cr)
	for lr := 0; lr < chunk.Size; lr++ {
		for lq := 0; lq < chunk.Size; lq++ {
			c.SetBlock(lq, lr, 0, g.palette.Bedrock)
			c.SetBlock(lq, lr, 1, g.palette.Stone)
			c.SetBlock(lq, lr, 2, g.palette.Stone)
			c.SetBlock(lq, lr, 3, g.palette.Dirt)
			c.SetBlock(lq, lr, flatSurfaceY, g.palette.Grass)
		}
	}
	return c
}

func (g *FlatGenerator) SurfaceAt(_, _ int) int {
	return flatSurfaceY
}
