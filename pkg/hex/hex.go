// Package hex implements axial-coordinate math for pointy-topped hexagons.
//
// Axial (q, r) maps to cube (q, r, s) with q + r + s = 0. World space is
// Y-up, so the hex plane's second axis is world Z.
package hex

import "math"

// Size is the hexagon radius (center to corner) in world units.
const Size = 1.0

var sqrt3 = math.Sqrt(3)

// Directions lists the six axial neighbor offsets, counter-clockwise from +q.
var Directions = [6][2]int{
	{1, 0}, {1, -1}, {0, -1},
	{-1, 0}, {-1, 1}, {0, 1},
}

// AxialToWorld converts axial coordinates to world X/Z.
func AxialToWorld(q, r int) (x, z float64) {
	fq, fr := float64(q), float64(r)
	x = Size * sqrt3 * (fq + fr/2)
	z = Size * 3 / 2 * fr
	return x, z
}

// WorldToAxialRaw converts world X/Z to fractional axial coordinates.
func WorldToAxialRaw(x, z float64) (q, r float64) {
	q = (sqrt3/3*x - 1.0/3*z) / Size
	r = (2.0 / 3 * z) / Size
	return q, r
}

// WorldToAxial returns the hex cell containing the world position.
func WorldToAxial(x, z float64) (q, r int) {
	return AxialRound(WorldToAxialRaw(x, z))
}

// AxialRound rounds fractional axial coordinates to the nearest cell,
// resetting whichever cube component drifted most.
func AxialRound(fq, fr float64) (q, r int) {
	fs := -fq - fr

	rq := math.Round(fq)
	rr := math.Round(fr)
	rs := math.Round(fs)

	dq := math.Abs(rq - fq)
	dr := math.Abs(rr - fr)
	ds := math.Abs(rs - fs)

	if dq > dr && dq > ds {
		rq = -rr - rs
	} else if dr > ds {
		rr = -rq - rs
	}
	return int(rq), int(rr)
}

// Neighbor returns the cell adjacent to (q, r) in direction dir (0-5).
func Neighbor(q, r, dir int) (int, int) {
	d := Directions[dir]
	return q + d[0], r + d[1]
}

// Length is the hex distance of an axial offset from the origin.
func Length(dq, dr int) int {
	return (abs(dq) + abs(dr) + abs(dq+dr)) / 2
}

// Distance is the number of steps between two cells.
func Distance(q1, r1, q2, r2 int) int {
	return Length(q1-q2, r1-r2)
}

// Ring visits every cell at exactly radius steps from (q, r).
// A radius of 0 visits the center only.
func Ring(q, r, radius int, fn func(q, r int)) {
	if radius == 0 {
		fn(q, r)
		return
	}
	cq, cr := q+Directions[4][0]*radius, r+Directions[4][1]*radius
	for dir := 0; dir < 6; dir++ {
		for range radius {
			fn(cq, cr)
			cq, cr = Neighbor(cq, cr, dir)
		}
	}
}

// Spiral visits every cell within radius steps, innermost ring first.
func Spiral(q, r, radius int, fn func(q, r int)) {
	for k := 0; k <= radius; k++ {
		Ring(q, r, k, fn)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
