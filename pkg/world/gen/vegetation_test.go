package gen

import (
	"math"
	"testing"
)

func TestSineHashReference(t *testing.T) {
	if got := SineHash(8, 8); math.Abs(got-0.553691693705332) > 1e-9 {
		t.Errorf("SineHash(8,8) = %v, want 0.553691693705332", got)
	}
	for q := -50; q < 50; q++ {
		for r := -50; r < 50; r += 7 {
			v := SineHash(q, r)
			if v < 0 || v >= 1 {
				t.Fatalf("SineHash(%d,%d) = %v, out of [0,1)", q, r, v)
			}
			if v != SineHash(q, r) {
				t.Fatalf("SineHash(%d,%d) not deterministic", q, r)
			}
		}
	}
}

func TestXXHash(t *testing.T) {
	h1 := NewXXHash("arkonhex")
	h2 := NewXXHash("arkonhex")
	other := NewXXHash("other")

	differs := false
	for q := -20; q < 20; q++ {
		for r := -20; r < 20; r++ {
			v := h1(q, r)
			if v < 0 || v >= 1 {
				t.Fatalf("xxhash(%d,%d) = %v, out of [0,1)", q, r, v)
			}
			if v != h2(q, r) {
				t.Fatalf("xxhash(%d,%d) not deterministic", q, r)
			}
			if v != other(q, r) {
				differs = true
			}
		}
	}
	if !differs {
		t.Error("seed should change the xxhash layout")
	}
}

func TestTreeChance(t *testing.T) {
	tests := []struct {
		forest, want float64
	}{
		{0.2, 0},
		{0.6, 0},
		{0.9, 0.045},
		{1.0, 0.06},
	}
	for _, tt := range tests {
		if got := TreeChance(tt.forest); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("TreeChance(%v) = %v, want %v", tt.forest, got, tt.want)
		}
	}
}

func TestInTreeMargin(t *testing.T) {
	tests := []struct {
		lq, lr int
		want   bool
	}{
		{3, 3, true},
		{12, 12, true},
		{8, 8, true},
		{2, 8, false},
		{8, 2, false},
		{13, 8, false},
		{8, 13, false},
		{0, 0, false},
		{15, 15, false},
	}
	for _, tt := range tests {
		if got := InTreeMargin(tt.lq, tt.lr); got != tt.want {
			t.Errorf("InTreeMargin(%d,%d) = %v, want %v", tt.lq, tt.lr, got, tt.want)
		}
	}
}

func TestDecideTreeDenseForest(t *testing.T) {
	// Noise 0.8 normalizes to forest 0.9, a spawn chance of 0.045.
	field := constField(0.8)
	hash := func(_, _ int) float64 { return 0.03 }

	d := DecideTree(field, hash, 8, 8, 8, 8, 0, 0)
	if !d.Spawn {
		t.Fatal("rand 0.03 under chance 0.045 should spawn")
	}
	if d.RandSeed != 0.03 {
		t.Errorf("RandSeed = %v, want 0.03", d.RandSeed)
	}
	if h := TrunkHeight(d.RandSeed); h != 5 {
		t.Errorf("trunk height = %d, want 5", h)
	}

	if d := DecideTree(field, hash, 2, 8, 2, 8, 0, 0); d.Spawn {
		t.Error("column outside the margin must not spawn")
	}

	high := func(_, _ int) float64 { return 0.05 }
	if d := DecideTree(field, high, 8, 8, 8, 8, 0, 0); d.Spawn {
		t.Error("rand 0.05 over chance 0.045 must not spawn")
	}
}

func TestDecideTreeSparseForest(t *testing.T) {
	// Noise 0.0 normalizes to forest 0.5, under the gate.
	zero := func(_, _ int) float64 { return 0 }
	if d := DecideTree(constField(0), zero, 8, 8, 8, 8, 0, 0); d.Spawn {
		t.Error("no tree may spawn outside forest patches")
	}
}

// recordingField returns zero and remembers where it was sampled.
type recordingField struct{ x, z float64 }

func (f *recordingField) Noise2D(x, z float64) float64 {
	f.x, f.z = x, z
	return 0
}

func TestForestNoiseSampleCoordinates(t *testing.T) {
	// 0.1*0.02 is inexact, so a fused multiply-add would round differently.
	x, z := 0.1, 123.456789
	f := &recordingField{}
	if got := ForestNoise(f, x, z); got != 0.5 {
		t.Errorf("ForestNoise = %v, want 0.5", got)
	}
	wantX := float64(x*forestFrequency) + forestOffset
	wantZ := float64(z*forestFrequency) + forestOffset
	if f.x != wantX || f.z != wantZ {
		t.Errorf("sampled (%v, %v), want (%v, %v)", f.x, f.z, wantX, wantZ)
	}
}
