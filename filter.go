package sift

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/RoaringBitmap/roaring/roaring64"
)

// ErrUnknownFilterKind is returned by ParseFilterKind for unrecognized names.
var ErrUnknownFilterKind = errors.New("sift: unknown filter kind")

// FilterKind selects the MembershipFilter variant used for both the corpus
// filter and the per-document filters.
type FilterKind string

const (
	// BloomFilterKind uses probabilistic Bloom filters. May report false
	// positives, never false negatives.
	BloomFilterKind FilterKind = "bloom"

	// DenseFilterKind uses exact sets of term hashes. Memory grows with the
	// number of distinct terms.
	DenseFilterKind FilterKind = "dense"
)

// DefaultBloomHashes is the number of bit positions derived per hash.
const DefaultBloomHashes = 4

// minFilterBits is the smallest Bloom filter the engine will allocate.
const minFilterBits = 64

// ParseFilterKind maps a configuration string to a FilterKind. An empty
// string selects BloomFilterKind.
func ParseFilterKind(s string) (FilterKind, error) {
	switch FilterKind(strings.ToLower(strings.TrimSpace(s))) {
	case "", BloomFilterKind:
		return BloomFilterKind, nil
	case DenseFilterKind:
		return DenseFilterKind, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFilterKind, s)
	}
}

// MembershipFilter records term hashes and answers membership queries.
type MembershipFilter interface {
	// Add records hash.
	Add(hash uint64)

	// Contains reports whether hash may have been added. A false result is
	// always correct.
	Contains(hash uint64) bool
}

// Compile-time checks to ensure both variants implement MembershipFilter
var (
	_ MembershipFilter = (*BloomFilter)(nil)
	_ MembershipFilter = (*DenseFilter)(nil)
)

// newFilter builds a filter of the given kind. bits only applies to Bloom
// filters; exact filters size themselves.
func newFilter(kind FilterKind, bits uint) MembershipFilter {
	if kind == DenseFilterKind {
		return NewDenseFilter()
	}
	return NewBloomFilter(bits, DefaultBloomHashes)
}

// BloomFilter is a fixed-size Bloom filter over 64-bit term hashes.
//
// Positions are derived by double hashing the two 32-bit halves of the term
// hash: index_i = (h1 + i*h2) mod m for i in [0, k).
type BloomFilter struct {
	bits *BitVector
	m    uint64
	k    uint64
}

// NewBloomFilter creates a filter with m bits and k derived positions per
// hash. m is raised to 64 when smaller, k defaults to DefaultBloomHashes
// when zero.
func NewBloomFilter(m, k uint) *BloomFilter {
	if m < minFilterBits {
		m = minFilterBits
	}
	if k == 0 {
		k = DefaultBloomHashes
	}
	return &BloomFilter{
		bits: NewBitVector(m),
		m:    uint64(m),
		k:    uint64(k),
	}
}

// Add sets all k positions for hash.
func (f *BloomFilter) Add(hash uint64) {
	h1, h2 := splitHash(hash)
	for i := uint64(0); i < f.k; i++ {
		f.bits.Set(uint((h1 + i*h2) % f.m))
	}
}

// Contains reports true only if all k positions for hash are set.
func (f *BloomFilter) Contains(hash uint64) bool {
	h1, h2 := splitHash(hash)
	for i := uint64(0); i < f.k; i++ {
		if !f.bits.Get(uint((h1 + i*h2) % f.m)) {
			return false
		}
	}
	return true
}

// Bits returns the size of the bit array.
func (f *BloomFilter) Bits() uint {
	return uint(f.m)
}

// Hashes returns the number of positions derived per hash.
func (f *BloomFilter) Hashes() uint {
	return uint(f.k)
}

// EstimatedFalsePositiveRate returns (1 - e^(-k*n/m))^k for n inserted
// hashes.
func (f *BloomFilter) EstimatedFalsePositiveRate(n int) float64 {
	if n <= 0 {
		return 0
	}
	kn := float64(f.k) * float64(n)
	return math.Pow(1-math.Exp(-kn/float64(f.m)), float64(f.k))
}

// splitHash returns the low and high 32-bit halves of hash, widened so the
// position arithmetic cannot overflow.
func splitHash(hash uint64) (h1, h2 uint64) {
	return hash & math.MaxUint32, hash >> 32
}

// DenseFilter is an exact set of term hashes.
type DenseFilter struct {
	set *roaring64.Bitmap
}

// NewDenseFilter creates an empty exact filter.
func NewDenseFilter() *DenseFilter {
	return &DenseFilter{set: roaring64.New()}
}

// Add records hash.
func (f *DenseFilter) Add(hash uint64) {
	f.set.Add(hash)
}

// Contains reports whether hash was added.
func (f *DenseFilter) Contains(hash uint64) bool {
	return f.set.Contains(hash)
}

// Len returns the number of distinct hashes recorded.
func (f *DenseFilter) Len() int {
	return int(f.set.GetCardinality())
}
