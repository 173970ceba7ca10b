package sift

import "hash/fnv"

// HashTerm returns the 64-bit FNV-1a fingerprint of a token.
//
// Term hashes key the postings, the document frequencies and every
// membership filter. The token is hashed as-is; case folding is the
// tokenizer's job.
func HashTerm(token string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(token))
	return h.Sum64()
}
