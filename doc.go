/*
Package sift provides an in-memory full-text search engine with tf-idf ranking.

Sift indexes short documents into a bitset-based inverted index and answers
keyword queries by intersecting posting vectors. Membership filters sit on
both sides of the postings: a corpus-wide filter rejects queries whose terms
were never seen, and a per-document filter re-verifies every candidate so a
64-bit hash collision cannot produce a false match.

# Quick Start

	package main

	import (
	    "fmt"

	    "github.com/wizenheimer/sift"
	)

	func main() {
	    e := sift.New()

	    e.AddDocument("The quick brown fox jumps", nil)
	    e.AddDocument("The lazy dog sleeps all day", map[string]any{"kind": "nap"})

	    for _, r := range e.Search("quick fox", sift.Limit(10)) {
	        fmt.Printf("%d  %.4f  %s\n", r.Document.ID, r.Score, r.Document.Text)
	    }
	}

# Documents

AddDocument returns the document's id, which is its zero-based insertion
index. Documents cannot be changed or removed. GetDocument returns the stored
text and metadata; Size returns the number of documents.

# Tokenizers

DefaultTokenizer lower-cases text and keeps runs of ASCII letters and digits.
WhitespaceTokenizer splits on whitespace only, so hyphenated words survive.
UnicodeTokenizer segments NFKC-normalized text on UAX#29 word boundaries.
Any func(string) iter.Seq[string] can be installed with WithTokenizer.

	e := sift.New(sift.WithTokenizer(sift.WhitespaceTokenizer))

# Membership Filters

Two MembershipFilter variants are available and selected with WithFilterKind:

BloomFilter: a fixed-size bit array with four positions derived per term
hash. No false negatives, a small false positive rate. The corpus filter
defaults to 2^20 bits; per-document filters use max(64, 8*distinctTerms).

DenseFilter: an exact set of term hashes backed by a roaring64 bitmap.

# Ranking

A document matches when it contains every query token. Its score sums, over
the distinct query tokens,

	tf * idf * queryTf

where tf is the token's share of the document's tokens, idf is
ln(documents / documentFrequency) and queryTf is the token's share of the
query's tokens. Results are ordered by descending score; scores within 1e-6
of each other are ordered by shorter text first, then lower id.

# Search Builder

Search covers the common case. NewSearch exposes the full set of options:

	results, err := e.NewSearch().
	    WithQuery("brown fox", "lazy dog").
	    WithScoreAggregation(sift.MaxAggregation).
	    WithDocumentIDs(0, 1, 2).
	    WithThreshold(0.01).
	    WithLimit(5).
	    Execute()

# Concurrency

AddDocument calls are serialized. Searches only read the index and run in
parallel; SearchBatch evaluates many queries concurrently.
*/
package sift
