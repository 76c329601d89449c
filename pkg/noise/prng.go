package noise

import "unicode/utf16"

// PRNG is a Mulberry32 generator. It is only used while building noise
// tables; generation never draws from it per query.
type PRNG struct {
	state uint32
}

// NewPRNG derives the 32-bit state from the UTF-16 code units of seed.
func NewPRNG(seed string) *PRNG {
	units := utf16.Encode([]rune(seed))
	h := uint32(1779033703) ^ uint32(len(units))
	for _, u := range units {
		h = (h ^ uint32(u)) * 3432918353
		h = h<<13 | h>>19
	}
	return &PRNG{state: h}
}

// Uint32 returns the next 32 random bits.
func (p *PRNG) Uint32() uint32 {
	p.state += 0x6D2B79F5
	t := p.state
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return t ^ t>>14
}

// Float64 returns a value in [0, 1) with 32 bits of precision.
func (p *PRNG) Float64() float64 {
	return float64(p.Uint32()) / 4294967296
}
