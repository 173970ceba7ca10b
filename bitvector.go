package sift

import (
	"iter"

	"github.com/bits-and-blooms/bitset"
)

// BitVector is a bit array addressed by document id (for postings and
// candidate sets) or by filter slot (for Bloom filters).
//
// Set past Len grows the vector; Get past Len reports false. Callers are
// expected to stay in range on hot paths, there is no error reporting.
type BitVector struct {
	bits *bitset.BitSet
}

// NewBitVector returns a cleared vector with room for size bits.
func NewBitVector(size uint) *BitVector {
	return &BitVector{bits: bitset.New(size)}
}

// newFullBitVector returns a vector of size bits, all set.
func newFullBitVector(size uint) *BitVector {
	v := NewBitVector(size)
	if size > 0 {
		v.bits.FlipRange(0, size)
	}
	return v
}

// Set sets bit i.
func (v *BitVector) Set(i uint) {
	v.bits.Set(i)
}

// Get reports whether bit i is set.
func (v *BitVector) Get(i uint) bool {
	return v.bits.Test(i)
}

// And writes the element-wise AND of v and other into out.
//
// other may be longer than v; only the overlapping range is combined. Bits
// of v beyond the end of other are cleared in out. out may be v itself.
func (v *BitVector) And(other, out *BitVector) {
	if out != v {
		v.bits.CopyFull(out.bits)
	}
	out.bits.InPlaceIntersection(other.bits)
}

// Any reports whether at least one bit is set.
func (v *BitVector) Any() bool {
	return v.bits.Any()
}

// Count returns the number of set bits.
func (v *BitVector) Count() uint {
	return v.bits.Count()
}

// Len returns the capacity of the vector in bits.
func (v *BitVector) Len() uint {
	return v.bits.Len()
}

// Indices yields the positions of set bits in ascending order. The sequence
// can be ranged over any number of times.
func (v *BitVector) Indices() iter.Seq[uint] {
	return func(yield func(uint) bool) {
		for i, ok := v.bits.NextSet(0); ok; i, ok = v.bits.NextSet(i + 1) {
			if !yield(i) {
				return
			}
		}
	}
}
