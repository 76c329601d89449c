package chunk

import (
	"testing"

	"github.com/OCharnyshevich/hexterrain/pkg/blocks"
)

func TestNewChunkIsAir(t *testing.T) {
	c := New(2, -3)
	if c.CQ != 2 || c.CR != -3 {
		t.Fatalf("coords = (%d,%d), want (2,-3)", c.CQ, c.CR)
	}
	if got := len(c.Raw()); got != Volume {
		t.Fatalf("len(Raw()) = %d, want %d", got, Volume)
	}
	if got := c.Counts()[blocks.Air]; got != Volume {
		t.Errorf("air voxels = %d, want %d", got, Volume)
	}
}

func TestSetGetBlock(t *testing.T) {
	c := New(0, 0)
	c.SetBlock(0, 0, 0, 6)
	c.SetBlock(15, 15, 63, 8)
	c.SetBlock(3, 7, 20, 1)

	tests := []struct {
		lq, lr, y int
		want      blocks.ID
	}{
		{0, 0, 0, 6},
		{15, 15, 63, 8},
		{3, 7, 20, 1},
		{7, 3, 20, 0},
		{3, 7, 21, 0},
	}
	for _, tt := range tests {
		if got := c.Block(tt.lq, tt.lr, tt.y); got != tt.want {
			t.Errorf("Block(%d,%d,%d) = %d, want %d", tt.lq, tt.lr, tt.y, got, tt.want)
		}
	}
}

func TestIndexLayout(t *testing.T) {
	c := New(0, 0)
	c.SetBlock(2, 1, 5, 9)
	if got := c.Raw()[(1*Size+2)*Height+5]; got != 9 {
		t.Errorf("raw index holds %d, want 9", got)
	}
	col := c.Column(2, 1)
	if len(col) != Height || col[5] != 9 {
		t.Errorf("Column(2,1)[5] = %d, len %d", col[5], len(col))
	}
}

func TestOutOfRangePanics(t *testing.T) {
	coords := [][3]int{{-1, 0, 0}, {Size, 0, 0}, {0, -1, 0}, {0, Size, 0}, {0, 0, -1}, {0, 0, Height}}
	for _, p := range coords {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("SetBlock(%v) did not panic", p)
				}
			}()
			New(0, 0).SetBlock(p[0], p[1], p[2], 1)
		}()
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Block(%v) did not panic", p)
				}
			}()
			New(0, 0).Block(p[0], p[1], p[2])
		}()
		if InBounds(p[0], p[1], p[2]) {
			t.Errorf("InBounds(%v) = true", p)
		}
	}
}

func TestForEachGlobalCoords(t *testing.T) {
	c := New(1, -1)
	c.SetBlock(0, 0, 0, 6)
	c.SetBlock(4, 5, 10, 3)

	type hit struct{ q, r, y int }
	var got []hit
	c.ForEach(func(q, r, y int, id blocks.ID) {
		got = append(got, hit{q, r, y})
	})

	want := []hit{{16, -16, 0}, {20, -11, 10}}
	if len(got) != len(want) {
		t.Fatalf("ForEach visited %d voxels, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("voxel %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestTopY(t *testing.T) {
	c := New(0, 0)
	if got := c.TopY(3, 3); got != -1 {
		t.Errorf("TopY of empty column = %d, want -1", got)
	}
	c.SetBlock(3, 3, 0, 6)
	c.SetBlock(3, 3, 17, 1)
	if got := c.TopY(3, 3); got != 17 {
		t.Errorf("TopY = %d, want 17", got)
	}
}

func TestDigestAndEqual(t *testing.T) {
	a, b := New(0, 0), New(0, 0)
	if a.Digest() != b.Digest() || !a.Equal(b) {
		t.Fatal("empty chunks should match")
	}
	b.SetBlock(1, 1, 1, 2)
	if a.Digest() == b.Digest() || a.Equal(b) {
		t.Fatal("modified chunk should differ")
	}
	if New(0, 1).Equal(a) {
		t.Fatal("chunks at different coordinates should not be equal")
	}
}

func TestFromRaw(t *testing.T) {
	if _, err := FromRaw(0, 0, make([]blocks.ID, 10)); err == nil {
		t.Fatal("expected error for short buffer")
	}
	data := make([]blocks.ID, Volume)
	data[index(1, 2, 3)] = 4
	c, err := FromRaw(5, 6, data)
	if err != nil {
		t.Fatalf("FromRaw: %v", err)
	}
	if got := c.Block(1, 2, 3); got != 4 {
		t.Errorf("Block(1,2,3) = %d, want 4", got)
	}
}
