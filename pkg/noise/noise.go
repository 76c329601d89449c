// Package noise provides the seeded 2D noise fields terrain generation
// samples. Every Field is read-only after construction, so one instance can
// serve any number of goroutines.
package noise

import "fmt"

// Field is a deterministic 2D noise function with output in [-1, 1].
type Field interface {
	Noise2D(x, z float64) float64
}

// Supported field kinds.
const (
	KindSimplex = "simplex"
	KindPerlin  = "perlin"
)

// New builds a field of the given kind from a world seed.
func New(kind, seed string) (Field, error) {
	switch kind {
	case "", KindSimplex:
		return NewSimplex(NewPRNG(seed)), nil
	case KindPerlin:
		return NewPerlin(NewPRNG(seed)), nil
	default:
		return nil, fmt.Errorf("unknown noise kind %q", kind)
	}
}
