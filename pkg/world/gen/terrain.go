package gen

import (
	"math"

	"github.com/OCharnyshevich/hexterrain/pkg/noise"
	"github.com/OCharnyshevich/hexterrain/pkg/world/chunk"
)

const (
	// baseFrequency scales world coordinates before the first octave.
	baseFrequency = 0.006

	shapeExponent = 1.8
	flattenFactor = 0.85

	// heightRange and baseHeight map the shaped value onto block layers.
	heightRange = chunk.Height - 20
	baseHeight  = 12

	// waterThreshold is the normalized height that lands on the default sea
	// level. Tuned for shoreline continuity; do not change independently of
	// the shaping constants above.
	waterThreshold = 0.32
	maxOceanDepth  = 14.0

	// MinSurfaceY keeps trench floors above the bedrock layer.
	MinSurfaceY = 3
)

// octaves are the frequency multiplier and weight of each noise layer.
var octaves = [3]struct{ freq, weight float64 }{
	{1, 0.6},
	{2, 0.3},
	{4, 0.1},
}

// ColumnProfile is the intermediate height data for one column.
type ColumnProfile struct {
	// RawHeight is the octave blend normalized to [0, 1], before shaping.
	RawHeight float64
	// SurfaceY is the top terrain layer after shaping and shoreline smoothing.
	SurfaceY int
}

// RawHeight blends three octaves of field at the world position and
// normalizes the result to [0, 1].
func RawHeight(field noise.Field, worldX, worldZ float64) float64 {
	nx := worldX * baseFrequency
	nz := worldZ * baseFrequency

	var v float64
	for _, o := range octaves {
		// The conversion rounds each product, keeping the sum free of
		// fused multiply-add on every platform.
		v += float64(field.Noise2D(nx*o.freq, nz*o.freq) * o.weight)
	}
	return (v + 1) / 2
}

// ShapeSurface computes the surface elevation of the column at the world
// position.
func ShapeSurface(field noise.Field, worldX, worldZ float64, seaLevel int) ColumnProfile {
	h := RawHeight(field, worldX, worldZ)
	return ColumnProfile{RawHeight: h, SurfaceY: shapeHeight(h, seaLevel)}
}

// shapeHeight turns a normalized height into a surface layer. Columns that
// land at or below sea level are re-derived from the unshaped height: below
// waterThreshold they fall off quadratically into a trench, otherwise they
// flatten onto a beach shelf at exactly seaLevel.
func shapeHeight(h float64, seaLevel int) int {
	shaped := math.Pow(h, shapeExponent)
	shaped *= flattenFactor
	surfaceY := int(math.Floor(shaped*heightRange)) + baseHeight

	if surfaceY > seaLevel {
		return surfaceY
	}
	if h >= waterThreshold {
		return seaLevel
	}

	depth := 1 - h/waterThreshold
	depth *= depth
	surfaceY = seaLevel - int(math.Floor(depth*maxOceanDepth))
	if surfaceY < MinSurfaceY {
		surfaceY = MinSurfaceY
	}
	return surfaceY
}
