package sift

// invertedIndex maps term hashes to the documents containing them and keeps
// the per-term document frequency used for idf.
type invertedIndex struct {
	// postings: term hash -> docIDs
	postings map[uint64]*BitVector
	// document frequency: term hash -> number of documents
	docFreq map[uint64]int
	// initial capacity of new posting vectors
	capacity uint
}

func newInvertedIndex(capacity uint) *invertedIndex {
	return &invertedIndex{
		postings: make(map[uint64]*BitVector),
		docFreq:  make(map[uint64]int),
		capacity: capacity,
	}
}

// add records that document id contains the term. Callers add each distinct
// term of a document once.
func (ix *invertedIndex) add(hash uint64, id uint32) {
	posting := ix.postings[hash]
	if posting == nil {
		posting = NewBitVector(ix.capacity)
		ix.postings[hash] = posting
	}
	posting.Set(uint(id))
	ix.docFreq[hash]++
}

func (ix *invertedIndex) lookup(hash uint64) (*BitVector, bool) {
	posting, ok := ix.postings[hash]
	return posting, ok
}

// documentFrequency returns the number of documents containing the term,
// or 1 for unknown terms so idf stays finite.
func (ix *invertedIndex) documentFrequency(hash uint64) int {
	if df, ok := ix.docFreq[hash]; ok && df > 0 {
		return df
	}
	return 1
}

func (ix *invertedIndex) terms() int {
	return len(ix.postings)
}
