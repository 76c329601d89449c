// Package gen produces hex-grid terrain chunks deterministically from a seed.
package gen

import (
	"fmt"

	"github.com/OCharnyshevich/hexterrain/pkg/blocks"
	"github.com/OCharnyshevich/hexterrain/pkg/hex"
	"github.com/OCharnyshevich/hexterrain/pkg/noise"
	"github.com/OCharnyshevich/hexterrain/pkg/world/chunk"
)

// Generator produces chunk data deterministically from a seed.
type Generator interface {
	Generate(cq, cr int) *chunk.Chunk
	SurfaceAt(q, r int) int
}

// Config is the immutable world configuration a generator is built from.
type Config struct {
	Seed     string
	SeaLevel int
	// Noise selects the noise field kind; empty means simplex.
	Noise string
	// TreeHash selects the vegetation hash; empty means sine.
	TreeHash string
}

// Validate checks the configuration for values generation cannot honor.
func (c Config) Validate() error {
	if c.SeaLevel < MinSurfaceY || c.SeaLevel >= chunk.Height {
		return fmt.Errorf("sea level %d out of range [%d,%d)", c.SeaLevel, MinSurfaceY, chunk.Height)
	}
	switch c.TreeHash {
	case "", HashSine, HashXXHash:
	default:
		return fmt.Errorf("unknown tree hash %q", c.TreeHash)
	}
	return nil
}

// TerrainGenerator shapes noise into terrain, water, beaches and trees.
// It holds no mutable state, so Generate may run concurrently.
type TerrainGenerator struct {
	seaLevel int
	field    noise.Field
	hash     TreeHash
	palette  Palette
}

// NewTerrainGenerator seeds the noise field once and resolves the palette.
func NewTerrainGenerator(cfg Config, reg *blocks.Registry) (*TerrainGenerator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	field, err := noise.New(cfg.Noise, cfg.Seed)
	if err != nil {
		return nil, err
	}
	palette, err := ResolvePalette(reg)
	if err != nil {
		return nil, fmt.Errorf("resolve palette: %w", err)
	}

	hash := SineHash
	if cfg.TreeHash == HashXXHash {
		hash = NewXXHash(cfg.Seed)
	}
	return &TerrainGenerator{
		seaLevel: cfg.SeaLevel,
		field:    field,
		hash:     hash,
		palette:  palette,
	}, nil
}

// SeaLevel returns the configured sea level.
func (g *TerrainGenerator) SeaLevel() int { return g.seaLevel }

// Palette returns the resolved block ids.
func (g *TerrainGenerator) Palette() Palette { return g.palette }

// Generate builds the chunk at (cq, cr). Columns are filled in raster order,
// lr outer and lq inner; each grass column may then grow a tree.
func (g *TerrainGenerator) Generate(cq, cr int) *chunk.Chunk {
	c := chunk.New(cq, cr)
	qOff, rOff := cq*chunk.Size, cr*chunk.Size

	for lr := 0; lr < chunk.Size; lr++ {
		for lq := 0; lq < chunk.Size; lq++ {
			q, r := qOff+lq, rOff+lr
			x, z := hex.AxialToWorld(q, r)

			surfaceY := ShapeSurface(g.field, x, z, g.seaLevel).SurfaceY
			FillColumn(c, lq, lr, surfaceY, g.seaLevel, g.palette)

			if Classify(surfaceY, surfaceY, g.seaLevel) != MaterialGrass {
				continue
			}
			d := DecideTree(g.field, g.hash, q, r, lq, lr, x, z)
			if d.Spawn {
				BuildTree(c, lq, lr, surfaceY+1, g.palette.Wood, g.palette.Leaves, d.RandSeed)
			}
		}
	}
	return c
}

// Column returns the height profile of global column (q, r).
func (g *TerrainGenerator) Column(q, r int) ColumnProfile {
	x, z := hex.AxialToWorld(q, r)
	return ShapeSurface(g.field, x, z, g.seaLevel)
}

// SurfaceAt returns the terrain surface layer of global column (q, r),
// excluding vegetation.
func (g *TerrainGenerator) SurfaceAt(q, r int) int {
	return g.Column(q, r).SurfaceY
}

// ChunkOf splits a global column into chunk and local coordinates.
func ChunkOf(q, r int) (cq, cr, lq, lr int) {
	cq, lq = floorDiv(q, chunk.Size)
	cr, lr = floorDiv(r, chunk.Size)
	return cq, cr, lq, lr
}

func floorDiv(a, b int) (q, m int) {
	q, m = a/b, a%b
	if m < 0 {
		q--
		m += b
	}
	return q, m
}
