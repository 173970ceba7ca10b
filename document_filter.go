package sift

import (
	"sync"

	"github.com/RoaringBitmap/roaring"
)

// DocumentFilter restricts a search to an explicit set of document ids.
type DocumentFilter struct {
	eligible *roaring.Bitmap
}

var documentFilterPool = sync.Pool{
	New: func() interface{} {
		return &DocumentFilter{eligible: roaring.New()}
	},
}

// NewDocumentFilter returns a pooled filter over documentIDs, or nil when
// the list is empty. A nil filter restricts nothing. Release the filter with
// ReturnDocumentFilter.
func NewDocumentFilter(documentIDs []uint32) *DocumentFilter {
	if len(documentIDs) == 0 {
		return nil
	}

	f := documentFilterPool.Get().(*DocumentFilter)
	f.eligible.Clear()
	f.eligible.AddMany(documentIDs)
	return f
}

// ReturnDocumentFilter puts f back into the pool.
func ReturnDocumentFilter(f *DocumentFilter) {
	if f != nil {
		documentFilterPool.Put(f)
	}
}

// Restrict clears every bit of candidates whose document id is not
// eligible. Ids at or past candidates.Len() are ignored.
func (f *DocumentFilter) Restrict(candidates *BitVector) {
	if f == nil {
		return
	}

	size := candidates.Len()
	mask := NewBitVector(size)
	it := f.eligible.Iterator()
	for it.HasNext() {
		id := uint(it.Next())
		if id >= size {
			break
		}
		mask.Set(id)
	}
	candidates.And(mask, candidates)
}
