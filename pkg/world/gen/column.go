package gen

import (
	"github.com/OCharnyshevich/hexterrain/pkg/blocks"
	"github.com/OCharnyshevich/hexterrain/pkg/world/chunk"
)

// Material is the role a layer plays in a terrain column.
type Material uint8

const (
	MaterialAir Material = iota
	MaterialBedrock
	MaterialStone
	MaterialDirt
	MaterialSand
	MaterialWater
	MaterialGrass
)

var materialNames = [...]string{"air", "bedrock", "stone", "dirt", "sand", "water", "grass"}

func (m Material) String() string {
	if int(m) < len(materialNames) {
		return materialNames[m]
	}
	return "unknown"
}

// subsurfaceDepth is how many layers under the cap use surface materials.
const subsurfaceDepth = 3

// Classify returns the material of layer y in a column whose surface is
// surfaceY. Rules are evaluated in priority order; every y maps to exactly
// one material.
func Classify(y, surfaceY, seaLevel int) Material {
	switch {
	case y == 0:
		return MaterialBedrock
	case y < surfaceY-subsurfaceDepth:
		return MaterialStone
	case y < surfaceY:
		switch {
		case surfaceY <= seaLevel:
			return MaterialStone // submerged column
		case y <= seaLevel:
			return MaterialSand // wet sand under a beach
		default:
			return MaterialDirt
		}
	case y == surfaceY:
		switch {
		case surfaceY < seaLevel:
			return MaterialStone // exposed ocean floor
		case surfaceY == seaLevel:
			return MaterialSand
		default:
			return MaterialGrass
		}
	case y <= seaLevel:
		return MaterialWater
	default:
		return MaterialAir
	}
}

// Palette holds the block ids the generator writes.
type Palette struct {
	Grass, Dirt, Stone, Sand, Water, Bedrock, Wood, Leaves blocks.ID
}

// paletteNames lists the registry names in Palette field order.
var paletteNames = []string{"grass", "dirt", "stone", "sand", "water", "bedrock", "wood", "leaves"}

// ResolvePalette looks up every generator block in reg.
func ResolvePalette(reg *blocks.Registry) (Palette, error) {
	ids, err := reg.Resolve(paletteNames...)
	if err != nil {
		return Palette{}, err
	}
	return Palette{
		Grass:   ids[0],
		Dirt:    ids[1],
		Stone:   ids[2],
		Sand:    ids[3],
		Water:   ids[4],
		Bedrock: ids[5],
		Wood:    ids[6],
		Leaves:  ids[7],
	}, nil
}

// ID maps a material to its block id.
func (p Palette) ID(m Material) blocks.ID {
	switch m {
	case MaterialBedrock:
		return p.Bedrock
	case MaterialStone:
		return p.Stone
	case MaterialDirt:
		return p.Dirt
	case MaterialSand:
		return p.Sand
	case MaterialWater:
		return p.Water
	case MaterialGrass:
		return p.Grass
	default:
		return blocks.Air
	}
}

// FillColumn writes the terrain stack of column (lq, lr). Air layers are
// left untouched.
func FillColumn(c *chunk.Chunk, lq, lr, surfaceY, seaLevel int, p Palette) {
	col := c.Column(lq, lr)
	for y := range col {
		if m := Classify(y, surfaceY, seaLevel); m != MaterialAir {
			col[y] = p.ID(m)
		}
	}
}
