package sift

import (
	"slices"
	"testing"
)

func collectIndices(v *BitVector) []uint {
	return slices.Collect(v.Indices())
}

func TestBitVectorSetGet(t *testing.T) {
	v := NewBitVector(130)

	if v.Any() {
		t.Fatal("new vector should have no bits set")
	}
	if v.Len() != 130 {
		t.Errorf("Len() = %d, want 130", v.Len())
	}

	for _, i := range []uint{0, 63, 64, 129} {
		v.Set(i)
	}

	tests := []struct {
		bit  uint
		want bool
	}{
		{0, true},
		{1, false},
		{63, true},
		{64, true},
		{65, false},
		{129, true},
		{500, false}, // beyond Len
	}
	for _, tt := range tests {
		if got := v.Get(tt.bit); got != tt.want {
			t.Errorf("Get(%d) = %v, want %v", tt.bit, got, tt.want)
		}
	}

	if !v.Any() {
		t.Error("Any() = false after Set")
	}
	if v.Count() != 4 {
		t.Errorf("Count() = %d, want 4", v.Count())
	}
}

func TestBitVectorSetGrows(t *testing.T) {
	v := NewBitVector(0)
	v.Set(200)

	if !v.Get(200) {
		t.Error("Get(200) = false after growing Set")
	}
	if v.Len() < 201 {
		t.Errorf("Len() = %d, want >= 201", v.Len())
	}
}

func TestBitVectorIndices(t *testing.T) {
	v := NewBitVector(256)
	want := []uint{3, 64, 65, 190, 255}
	for _, i := range []uint{190, 3, 255, 65, 64} {
		v.Set(i)
	}

	if got := collectIndices(v); !slices.Equal(got, want) {
		t.Errorf("Indices() = %v, want %v", got, want)
	}

	// restartable
	if got := collectIndices(v); !slices.Equal(got, want) {
		t.Errorf("second Indices() = %v, want %v", got, want)
	}

	// early exit
	var first []uint
	for i := range v.Indices() {
		first = append(first, i)
		if len(first) == 2 {
			break
		}
	}
	if !slices.Equal(first, []uint{3, 64}) {
		t.Errorf("partial Indices() = %v, want [3 64]", first)
	}

	if got := collectIndices(NewBitVector(64)); len(got) != 0 {
		t.Errorf("Indices() of empty vector = %v, want none", got)
	}
}

func TestBitVectorAnd(t *testing.T) {
	tests := []struct {
		name      string
		size      uint
		otherSize uint
		a         []uint
		b         []uint
		want      []uint
	}{
		{
			name:      "same size",
			size:      128,
			otherSize: 128,
			a:         []uint{1, 5, 70, 100},
			b:         []uint{5, 70, 101},
			want:      []uint{5, 70},
		},
		{
			name:      "other is larger",
			size:      10,
			otherSize: 1000,
			a:         []uint{2, 4, 9},
			b:         []uint{4, 9, 500},
			want:      []uint{4, 9},
		},
		{
			name:      "other is shorter clears the tail",
			size:      300,
			otherSize: 64,
			a:         []uint{1, 200, 299},
			b:         []uint{1, 2},
			want:      []uint{1},
		},
		{
			name:      "disjoint",
			size:      64,
			otherSize: 64,
			a:         []uint{1, 2},
			b:         []uint{3, 4},
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewBitVector(tt.size)
			for _, i := range tt.a {
				a.Set(i)
			}
			b := NewBitVector(tt.otherSize)
			for _, i := range tt.b {
				b.Set(i)
			}

			out := NewBitVector(tt.size)
			a.And(b, out)
			if got := collectIndices(out); !slices.Equal(got, tt.want) {
				t.Errorf("And() = %v, want %v", got, tt.want)
			}
			if out.Any() != (len(tt.want) > 0) {
				t.Errorf("Any() = %v, want %v", out.Any(), len(tt.want) > 0)
			}

			// inputs are untouched
			if got := collectIndices(a); !slices.Equal(got, tt.a) {
				t.Errorf("receiver modified: %v, want %v", got, tt.a)
			}

			// in place
			a.And(b, a)
			if got := collectIndices(a); !slices.Equal(got, tt.want) {
				t.Errorf("in-place And() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewFullBitVector(t *testing.T) {
	for _, size := range []uint{0, 1, 63, 64, 65, 200} {
		v := newFullBitVector(size)
		if v.Count() != size {
			t.Errorf("newFullBitVector(%d).Count() = %d", size, v.Count())
		}
		if size > 0 && v.Get(size) {
			t.Errorf("newFullBitVector(%d) has bit %d set", size, size)
		}
	}
}
