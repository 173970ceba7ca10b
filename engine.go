package sift

import (
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// DefaultCorpusFilterBits is the corpus Bloom filter size used when
// WithCorpusFilterBits is not given.
const DefaultCorpusFilterBits = 1 << 20

// perDocumentBitsPerTerm sizes per-document Bloom filters relative to the
// document's distinct token count.
const perDocumentBitsPerTerm = 8

// Engine is an in-memory full-text index that ranks documents with tf-idf.
//
// Every distinct term of every document is recorded in four places: a
// posting bit vector keyed by the term's 64-bit hash, a document-frequency
// counter, a corpus-wide membership filter used to reject hopeless queries
// early, and a per-document membership filter used to re-verify candidates
// produced by the postings so that hash collisions cannot leak into results.
//
// Documents are append-only and identified by their insertion index. All
// methods are safe for concurrent use; writers are serialized and searches
// run in parallel with each other.
type Engine struct {
	mu sync.RWMutex // protects everything below

	store        documentStore
	index        *invertedIndex
	corpusFilter MembershipFilter
	totalTokens  int

	tokenize   Tokenizer
	filterKind FilterKind
	logger     *logrus.Entry
	metrics    *Metrics
}

// Stats summarizes the contents of an Engine.
type Stats struct {
	Documents   int
	Terms       int
	TotalTokens int
}

// Option configures an Engine.
type Option func(*engineConfig)

type engineConfig struct {
	tokenizer        Tokenizer
	filterKind       FilterKind
	corpusFilterBits uint
	postingCapacity  uint
	logger           *logrus.Entry
	metrics          *Metrics
}

// WithTokenizer replaces DefaultTokenizer.
func WithTokenizer(t Tokenizer) Option {
	return func(c *engineConfig) {
		if t != nil {
			c.tokenizer = t
		}
	}
}

// WithFilterKind selects the membership filter variant for both the corpus
// filter and per-document filters.
func WithFilterKind(kind FilterKind) Option {
	return func(c *engineConfig) {
		c.filterKind = kind
	}
}

// WithCorpusFilterBits sets the size of the corpus Bloom filter. Ignored for
// DenseFilterKind.
func WithCorpusFilterBits(bits uint) Option {
	return func(c *engineConfig) {
		c.corpusFilterBits = bits
	}
}

// WithPostingCapacity sets the initial size of each posting vector. Posting
// vectors grow as documents are added, so this is only a pre-allocation
// hint for corpora of known size.
func WithPostingCapacity(docs uint) Option {
	return func(c *engineConfig) {
		c.postingCapacity = docs
	}
}

// WithLogger sets the logger. Engines log nothing by default.
func WithLogger(logger *logrus.Entry) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *Metrics) Option {
	return func(c *engineConfig) {
		c.metrics = m
	}
}

// New creates an empty Engine.
//
// Example:
//
//	e := sift.New(sift.WithFilterKind(sift.DenseFilterKind))
//	e.AddDocument("the quick brown fox", nil)
//	results := e.Search("fox")
func New(opts ...Option) *Engine {
	cfg := engineConfig{
		tokenizer:        DefaultTokenizer,
		filterKind:       BloomFilterKind,
		corpusFilterBits: DefaultCorpusFilterBits,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.filterKind != DenseFilterKind {
		cfg.filterKind = BloomFilterKind
	}
	if cfg.logger == nil {
		cfg.logger = discardLogger()
	}

	return &Engine{
		index:        newInvertedIndex(cfg.postingCapacity),
		corpusFilter: newFilter(cfg.filterKind, cfg.corpusFilterBits),
		tokenize:     cfg.tokenizer,
		filterKind:   cfg.filterKind,
		logger:       cfg.logger.WithField("component", "sift"),
		metrics:      cfg.metrics,
	}
}

func discardLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// AddDocument indexes text and stores it with metadata, returning the new
// document's id. Ids start at zero and increase by one per call. Empty text
// yields a document with no terms, which no query can match.
//
// Time Complexity: O(m) where m is the number of tokens in text
func (e *Engine) AddDocument(text string, metadata map[string]any) uint32 {
	// Tokenize outside the lock; the tokenizer is pure.
	termCounts := make(map[string]int)
	var order []string
	tokens := 0
	for token := range e.tokenize(text) {
		if termCounts[token] == 0 {
			order = append(order, token)
		}
		termCounts[token]++
		tokens++
	}

	filterBits := uint(len(order) * perDocumentBitsPerTerm)
	if filterBits < minFilterBits {
		filterBits = minFilterBits
	}
	doc := &indexedDocument{
		Document:   Document{Text: text, Metadata: metadata},
		filter:     newFilter(e.filterKind, filterBits),
		termCounts: termCounts,
		tokens:     tokens,
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.store.nextID()
	for _, token := range order {
		hash := HashTerm(token)
		doc.filter.Add(hash)
		e.corpusFilter.Add(hash)
		e.index.add(hash, id)
	}
	e.store.append(doc)
	e.totalTokens += tokens

	e.metrics.documentIndexed()
	e.logger.WithFields(logrus.Fields{
		"doc_id":         id,
		"tokens":         tokens,
		"distinct_terms": len(order),
	}).Debug("document indexed")

	return id
}

// GetDocument returns the document with the given id. The second result is
// false when no such document exists.
func (e *Engine) GetDocument(id uint32) (Document, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	doc, ok := e.store.get(id)
	if !ok {
		return Document{}, false
	}
	return doc.Document, true
}

// Size returns the number of indexed documents.
func (e *Engine) Size() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.len()
}

// Stats returns document, term and token counts.
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Stats{
		Documents:   e.store.len(),
		Terms:       e.index.terms(),
		TotalTokens: e.totalTokens,
	}
}

// FilterKind returns the membership filter variant in use.
func (e *Engine) FilterKind() FilterKind {
	return e.filterKind
}
