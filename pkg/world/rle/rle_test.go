package rle

import (
	"bytes"
	"errors"
	"testing"

	"github.com/OCharnyshevich/hexterrain/pkg/blocks"
)

func TestEncodeRuns(t *testing.T) {
	data := []blocks.ID{6, 3, 3, 3, 0, 0}
	want := []byte{6, 0, 1, 3, 0, 3, 0, 0, 2}
	if got := Encode(data); !bytes.Equal(got, want) {
		t.Fatalf("Encode = %v, want %v", got, want)
	}
}

func TestEncodeEmpty(t *testing.T) {
	if got := Encode(nil); len(got) != 0 {
		t.Fatalf("Encode(nil) = %v, want empty", got)
	}
	got, err := Decode(nil, 0)
	if err != nil || len(got) != 0 {
		t.Fatalf("Decode(nil, 0) = %v, %v", got, err)
	}
}

func TestEncodeSplitsLongRuns(t *testing.T) {
	data := make([]blocks.ID, MaxRun+10)
	enc := Encode(data)
	want := []byte{0, 0xFF, 0xFF, 0, 0, 10}
	if !bytes.Equal(enc, want) {
		t.Fatalf("Encode = %v, want %v", enc, want)
	}

	dec, err := Decode(enc, len(data))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(dec) != len(data) {
		t.Fatalf("Decode returned %d ids, want %d", len(dec), len(data))
	}
}

func TestDecodeRestoresColumnData(t *testing.T) {
	data := make([]blocks.ID, 16*16*64)
	for i := range data {
		switch y := i % 64; {
		case y == 0:
			data[i] = 6
		case y < 20:
			data[i] = 3
		case y < 23:
			data[i] = 2
		case y == 23:
			data[i] = 1
		}
	}
	dec, err := Decode(Encode(data), len(data))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for i := range data {
		if dec[i] != data[i] {
			t.Fatalf("index %d = %d, want %d", i, dec[i], data[i])
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		enc    []byte
		want   int
		length bool
	}{
		{"partial run", []byte{1, 0}, 2, true},
		{"too short", []byte{1, 0, 2}, 3, true},
		{"too long", []byte{1, 0, 4}, 3, true},
		{"zero run", []byte{1, 0, 0}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.enc, tt.want)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if got := errors.Is(err, ErrLength); got != tt.length {
				t.Errorf("errors.Is(err, ErrLength) = %v, want %v (err %v)", got, tt.length, err)
			}
		})
	}
}
