package noise

// Simplex is sampled on a triangular lattice: each point gets contributions
// from the three corners of its cell, each fading out by radial falloff.

// grad3 are the gradient vectors; 2D sampling uses the first two components.
var grad3 = [12][3]float64{
	{1, 1, 0},
	{-1, 1, 0},
	{1, -1, 0},
	{-1, -1, 0},
	{1, 0, 1},
	{-1, 0, 1},
	{1, 0, -1},
	{-1, 0, -1},
	{0, 1, 1},
	{0, -1, 1},
	{0, 1, -1},
	{0, -1, -1},
}

// Simplex is a seeded simplex noise field.
type Simplex struct {
	perm      [512]uint8
	permMod12 [512]uint8
}

// NewSimplex builds the permutation table with a partial Fisher-Yates
// shuffle driven by rng. The same rng sequence yields the same field.
func NewSimplex(rng *PRNG) *Simplex {
	var p [256]uint8
	for i := range p {
		p[i] = uint8(i)
	}
	for i := 0; i < 255; i++ {
		j := i + int(rng.Float64()*float64(256-i))
		p[i], p[j] = p[j], p[i]
	}

	s := &Simplex{}
	for i := range s.perm {
		s.perm[i] = p[i&255]
		s.permMod12[i] = s.perm[i] % 12
	}
	return s
}

// Noise2D returns simplex noise at (x, z).
func (s *Simplex) Noise2D(x, z float64) float64 {
	const (
		skew   = 0.36602540378443864676 // (sqrt(3) - 1) / 2
		unskew = 0.21132486540518711775 // (3 - sqrt(3)) / 6
	)

	// Cell origin in skewed space, and the offset from it in input space.
	sum := (x + z) * skew
	ci := fastFloor(x + sum)
	cj := fastFloor(z + sum)
	back := float64(ci+cj) * unskew
	dx := x - (float64(ci) - back)
	dz := z - (float64(cj) - back)

	// The middle corner is one step along whichever axis dominates.
	var mi, mj int
	if dx > dz {
		mi = 1
	} else {
		mj = 1
	}

	corners := [3]struct {
		di, dj int
		x, z   float64
	}{
		{0, 0, dx, dz},
		{mi, mj, dx - float64(mi) + unskew, dz - float64(mj) + unskew},
		{1, 1, dx - 1 + 2*unskew, dz - 1 + 2*unskew},
	}

	ii, jj := ci&255, cj&255
	var n float64
	for _, c := range corners {
		falloff := 0.5 - float64(c.x*c.x) - float64(c.z*c.z)
		if falloff < 0 {
			continue
		}
		g := grad3[s.permMod12[ii+c.di+int(s.perm[jj+c.dj])]]
		falloff *= falloff
		n += falloff * falloff * dot2(g, c.x, c.z)
	}
	return 70 * n
}

func fastFloor(x float64) int {
	xi := int(x)
	if x < float64(xi) {
		return xi - 1
	}
	return xi
}

// dot2 rounds each product separately so the sum is never fused.
func dot2(g [3]float64, x, z float64) float64 {
	return float64(g[0]*x) + float64(g[1]*z)
}
