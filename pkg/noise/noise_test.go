package noise

import (
	"math"
	"testing"
)

func TestPRNGReferenceSequence(t *testing.T) {
	tests := []struct {
		seed string
		want []uint32
	}{
		{"arkonhex", []uint32{297206618, 65145347, 664144558}},
		{"", []uint32{1790840817, 3989028755}},
	}
	for _, tt := range tests {
		rng := NewPRNG(tt.seed)
		for i, want := range tt.want {
			if got := rng.Uint32(); got != want {
				t.Errorf("seed %q draw %d = %d, want %d", tt.seed, i, got, want)
			}
		}
	}
}

func TestPRNGFloatRange(t *testing.T) {
	rng := NewPRNG("range")
	for range 10000 {
		v := rng.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("Float64() = %f, out of [0,1)", v)
		}
	}
}

func TestSimplexReferenceValues(t *testing.T) {
	s := NewSimplex(NewPRNG("arkonhex"))
	tests := []struct {
		x, z, want float64
	}{
		{0, 0, 0},
		{0.5, 0.25, 0.5140015728190843},
		{12.3, -4.5, -0.1220297149060745},
	}
	for _, tt := range tests {
		if got := s.Noise2D(tt.x, tt.z); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Noise2D(%v,%v) = %v, want %v", tt.x, tt.z, got, tt.want)
		}
	}
}

func TestNoise2DDeterministic(t *testing.T) {
	for _, kind := range []string{KindSimplex, KindPerlin} {
		f1, err := New(kind, "12345")
		if err != nil {
			t.Fatalf("New(%s): %v", kind, err)
		}
		f2, _ := New(kind, "12345")

		for i := 0; i < 100; i++ {
			x := float64(i) * 0.1
			z := float64(i) * 0.2
			if f1.Noise2D(x, z) != f2.Noise2D(x, z) {
				t.Fatalf("%s: Noise2D not deterministic at (%f, %f)", kind, x, z)
			}
		}
	}
}

func TestNoise2DOrderIndependent(t *testing.T) {
	f, _ := New(KindSimplex, "order")
	first := f.Noise2D(3.7, -1.2)
	for i := 0; i < 50; i++ {
		f.Noise2D(float64(i), float64(-i))
	}
	if again := f.Noise2D(3.7, -1.2); again != first {
		t.Fatalf("Noise2D changed after unrelated queries: %v != %v", again, first)
	}
}

func TestNoise2DRange(t *testing.T) {
	for _, kind := range []string{KindSimplex, KindPerlin} {
		f, _ := New(kind, "42")
		for i := 0; i < 10000; i++ {
			x := float64(i)*0.37 - 500
			z := float64(i)*0.53 - 500
			v := f.Noise2D(x, z)
			if v < -1.0 || v > 1.0 {
				t.Fatalf("%s: Noise2D(%f, %f) = %f, out of [-1,1]", kind, x, z, v)
			}
		}
	}
}

func TestDifferentSeedsDifferentNoise(t *testing.T) {
	f1, _ := New(KindSimplex, "1")
	f2, _ := New(KindSimplex, "2")

	different := false
	for i := 0; i < 100; i++ {
		x := float64(i) * 0.1
		z := float64(i) * 0.2
		if f1.Noise2D(x, z) != f2.Noise2D(x, z) {
			different = true
			break
		}
	}
	if !different {
		t.Error("different seeds should produce different noise")
	}
}

func TestNewUnknownKind(t *testing.T) {
	if _, err := New("worley", "seed"); err == nil {
		t.Fatal("expected error for unknown noise kind")
	}
}

func TestSimplexSmoothness(t *testing.T) {
	f := NewSimplex(NewPRNG("smooth"))

	// Adjacent samples should not differ by more than some reasonable amount.
	prev := f.Noise2D(0, 0)
	step := 0.01
	for i := 1; i < 1000; i++ {
		x := float64(i) * step
		curr := f.Noise2D(x, 0)
		if diff := math.Abs(curr - prev); diff > 0.1 {
			t.Fatalf("noise changed too rapidly at x=%f: diff=%f", x, diff)
		}
		prev = curr
	}
}
