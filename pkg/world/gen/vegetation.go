package gen

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/OCharnyshevich/hexterrain/pkg/noise"
	"github.com/OCharnyshevich/hexterrain/pkg/world/chunk"
)

const (
	forestFrequency = 0.02
	forestOffset    = 1000

	// forestThreshold gates spawning to clustered forest patches.
	forestThreshold = 0.6
	// forestDensity caps the spawn chance at roughly 6% inside a dense patch.
	forestDensity = 0.15

	// TreeMargin keeps every canopy inside its own chunk.
	TreeMargin = 3
)

// TreeHash maps a global column to a pseudo-random value in [0, 1).
// It must depend on its inputs only.
type TreeHash func(q, r int) float64

// Tree hash kinds.
const (
	HashSine   = "sine"
	HashXXHash = "xxhash"
)

// SineHash is the fract-of-sine hash. It reproduces the reference tree layout
// but relies on platform sin rounding.
func SineHash(q, r int) float64 {
	// Each product is rounded on its own so the sum is never fused.
	arg := float64(float64(q)*12.9898) + float64(float64(r)*78.233)
	n := math.Sin(arg) * 43758.5453
	return n - math.Floor(n)
}

// NewXXHash returns an integer hash of (seed, q, r) that is bit-exact on
// every platform.
func NewXXHash(seed string) TreeHash {
	seedSum := xxhash.Sum64String(seed)
	return func(q, r int) float64 {
		var buf [24]byte
		binary.LittleEndian.PutUint64(buf[0:], seedSum)
		binary.LittleEndian.PutUint64(buf[8:], uint64(int64(q)))
		binary.LittleEndian.PutUint64(buf[16:], uint64(int64(r)))
		return float64(xxhash.Sum64(buf[:])>>11) / (1 << 53)
	}
}

// TreeDecision is the outcome of the spawn check for one grass column.
type TreeDecision struct {
	Spawn bool
	// RandSeed is the positional hash value; it also sizes the tree.
	RandSeed float64
}

// ForestNoise samples the low-frequency clustering channel normalized to [0, 1].
func ForestNoise(field noise.Field, worldX, worldZ float64) float64 {
	// Products are rounded before the offset is added so they never fuse.
	v := field.Noise2D(float64(worldX*forestFrequency)+forestOffset, float64(worldZ*forestFrequency)+forestOffset)
	return (v + 1) / 2
}

// TreeChance is the spawn probability for a forest noise value.
func TreeChance(forest float64) float64 {
	if forest <= forestThreshold {
		return 0
	}
	return (forest - forestThreshold) * forestDensity
}

// InTreeMargin reports whether a local column is far enough from every chunk
// edge to hold a full canopy.
func InTreeMargin(lq, lr int) bool {
	const hi = chunk.Size - 1 - TreeMargin
	return lq >= TreeMargin && lq <= hi && lr >= TreeMargin && lr <= hi
}

// DecideTree applies the spawn rule to the grass column at global (q, r),
// local (lq, lr) and world position (worldX, worldZ).
func DecideTree(field noise.Field, hash TreeHash, q, r, lq, lr int, worldX, worldZ float64) TreeDecision {
	rand := hash(q, r)
	return TreeDecision{
		Spawn:    spawns(rand, ForestNoise(field, worldX, worldZ)) && InTreeMargin(lq, lr),
		RandSeed: rand,
	}
}

func spawns(rand, forest float64) bool {
	if forest <= forestThreshold {
		return false
	}
	return rand < TreeChance(forest)
}
