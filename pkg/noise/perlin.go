package noise

import "github.com/aquilax/go-perlin"

const (
	perlinAlpha   = 2.0
	perlinBeta    = 2.0
	perlinOctaves = 3
)

// Perlin adapts go-perlin's classic gradient noise to the Field contract.
type Perlin struct {
	p *perlin.Perlin
}

// NewPerlin seeds the underlying generator from rng.
func NewPerlin(rng *PRNG) *Perlin {
	seed := int64(rng.Uint32())<<32 | int64(rng.Uint32())
	return &Perlin{p: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed)}
}

// Noise2D returns Perlin noise at (x, z), clamped to [-1, 1].
func (p *Perlin) Noise2D(x, z float64) float64 {
	v := p.p.Noise2D(x, z)
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	}
	return v
}
