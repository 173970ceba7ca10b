package sift

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultLimit is the number of results returned when no limit is given.
const DefaultLimit = 50

// scoreEpsilon is the score difference below which two results are tied.
const scoreEpsilon = 1e-6

var (
	// ErrNoQuery is returned by Execute when neither a query nor a source
	// document was given.
	ErrNoQuery = errors.New("sift: search has no query")

	// ErrDocumentNotFound is returned by Execute when WithSimilarTo names an
	// id that is not in the index.
	ErrDocumentNotFound = errors.New("sift: document not found")
)

// Result is a matched document with its tf-idf score.
type Result struct {
	Document Document
	Score    float64
}

// TextSearch is a search builder returned by Engine.NewSearch.
type TextSearch interface {
	// WithQuery sets the query text(s). Several queries are evaluated
	// independently and merged with the score aggregation.
	WithQuery(queries ...string) TextSearch

	// WithSimilarTo uses the text of indexed documents as additional queries.
	WithSimilarTo(docIDs ...uint32) TextSearch

	// WithLimit caps the number of results. Defaults to DefaultLimit;
	// 0 or negative returns no results.
	WithLimit(limit int) TextSearch

	// WithThreshold drops results scoring below threshold. Defaults to 0.
	WithThreshold(threshold float64) TextSearch

	// WithDocumentIDs restricts the search to the given documents.
	WithDocumentIDs(docIDs ...uint32) TextSearch

	// WithCutoff applies autocut after ranking. -1 (default) disables it.
	WithCutoff(cutoff int) TextSearch

	// WithScoreAggregation sets how scores from several queries combine.
	WithScoreAggregation(kind ScoreAggregationKind) TextSearch

	// Execute runs the search.
	Execute() ([]Result, error)
}

// Compile-time checks to ensure textSearch implements TextSearch
var _ TextSearch = (*textSearch)(nil)

type textSearch struct {
	engine          *Engine
	queries         []string
	similarTo       []uint32
	limit           int
	threshold       float64
	documentIDs     []uint32
	cutoff          int
	aggregationKind ScoreAggregationKind
}

// NewSearch creates a search builder for this engine.
//
// Example:
//
//	results, err := e.NewSearch().
//		WithQuery("quick brown").
//		WithLimit(5).
//		Execute()
func (e *Engine) NewSearch() TextSearch {
	return &textSearch{
		engine: e,
		limit:  DefaultLimit,
		cutoff: -1,
	}
}

// SearchOption adjusts a call to Search.
type SearchOption func(*textSearch)

// Limit caps the number of results. 0 or negative returns nothing.
func Limit(n int) SearchOption {
	return func(s *textSearch) { s.limit = n }
}

// Threshold drops results whose score is below minScore.
func Threshold(minScore float64) SearchOption {
	return func(s *textSearch) { s.threshold = minScore }
}

// Cutoff applies autocut with the given number of extrema; -1 disables it.
func Cutoff(extrema int) SearchOption {
	return func(s *textSearch) { s.cutoff = extrema }
}

// InDocuments restricts the search to the given document ids.
func InDocuments(docIDs ...uint32) SearchOption {
	return func(s *textSearch) { s.documentIDs = docIDs }
}

// Search returns the documents matching every token of query, best first.
// It never fails: an empty query, a query with unknown terms or an empty
// index all produce no results.
func (e *Engine) Search(query string, opts ...SearchOption) []Result {
	s := e.NewSearch().WithQuery(query).(*textSearch)
	for _, opt := range opts {
		opt(s)
	}
	results, err := s.Execute()
	if err != nil {
		// unreachable: a query is set and the aggregation is the default
		return nil
	}
	return results
}

func (s *textSearch) WithQuery(queries ...string) TextSearch {
	s.queries = queries
	return s
}

func (s *textSearch) WithSimilarTo(docIDs ...uint32) TextSearch {
	s.similarTo = docIDs
	return s
}

func (s *textSearch) WithLimit(limit int) TextSearch {
	s.limit = limit
	return s
}

func (s *textSearch) WithThreshold(threshold float64) TextSearch {
	s.threshold = threshold
	return s
}

func (s *textSearch) WithDocumentIDs(docIDs ...uint32) TextSearch {
	s.documentIDs = docIDs
	return s
}

func (s *textSearch) WithCutoff(cutoff int) TextSearch {
	s.cutoff = cutoff
	return s
}

func (s *textSearch) WithScoreAggregation(kind ScoreAggregationKind) TextSearch {
	s.aggregationKind = kind
	return s
}

// Execute evaluates each query, merges their results, applies the
// threshold, ranks, and windows the result list.
func (s *textSearch) Execute() ([]Result, error) {
	if len(s.queries) == 0 && len(s.similarTo) == 0 {
		return nil, ErrNoQuery
	}
	aggregation, err := NewScoreAggregation(s.aggregationKind)
	if err != nil {
		return nil, err
	}

	allQueries := make([]string, 0, len(s.queries)+len(s.similarTo))
	allQueries = append(allQueries, s.queries...)
	if len(s.similarTo) > 0 {
		texts, err := s.lookupTexts()
		if err != nil {
			return nil, err
		}
		allQueries = append(allQueries, texts...)
	}

	start := time.Now()
	var results []Result
	for _, query := range allQueries {
		results = append(results, s.searchSingleQuery(query)...)
	}
	if len(allQueries) > 1 {
		results = aggregation.Aggregate(results)
	}

	results = slices.DeleteFunc(results, func(r Result) bool {
		return r.Score < s.threshold
	})
	results = limitResults(results, s.limit)
	results = autocutResults(results, s.cutoff)

	s.engine.metrics.observeSearch(start, len(results))
	return results, nil
}

// lookupTexts returns the stored text of every WithSimilarTo document.
func (s *textSearch) lookupTexts() ([]string, error) {
	e := s.engine
	e.mu.RLock()
	defer e.mu.RUnlock()

	texts := make([]string, 0, len(s.similarTo))
	for _, id := range s.similarTo {
		doc, ok := e.store.get(id)
		if !ok {
			return nil, fmt.Errorf("%w: id %d", ErrDocumentNotFound, id)
		}
		texts = append(texts, doc.Text)
	}
	return texts, nil
}

// searchSingleQuery returns every document containing all tokens of query,
// scored and ranked, before threshold and limit are applied.
//
// SEARCH ALGORITHM:
//  1. Tokenize the query; no tokens means no results
//  2. If no query term hash is in the corpus filter, no document can match
//  3. Intersect the posting vectors of all query terms, starting from the set
//     of all eligible documents; stop as soon as a term is unknown or the set
//     is empty
//  4. Re-check every query term against each candidate's own filter, which
//     drops candidates produced by colliding hashes
//  5. Score survivors with tf-idf and rank them
//
// Time Complexity: O(q × N/64 + c × q) where q is the number of distinct query
// terms, N the number of documents and c the number of candidates
func (s *textSearch) searchSingleQuery(query string) []Result {
	e := s.engine
	log := e.logger.WithField("query", query)

	qtokens := Collect(e.tokenize, query)
	if len(qtokens) == 0 {
		e.metrics.searched(OutcomeEmptyQuery)
		return nil
	}

	// distinct query terms in first-seen order, with their query counts
	queryCounts := make(map[string]int, len(qtokens))
	var terms []string
	for _, token := range qtokens {
		if queryCounts[token] == 0 {
			terms = append(terms, token)
		}
		queryCounts[token]++
	}
	hashes := make([]uint64, len(terms))
	for i, term := range terms {
		hashes[i] = HashTerm(term)
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	if !slices.ContainsFunc(hashes, e.corpusFilter.Contains) {
		e.metrics.searched(OutcomeFastReject)
		log.Debug("query rejected by corpus filter")
		return nil
	}

	candidates := newFullBitVector(uint(e.store.len()))

	docFilter := NewDocumentFilter(s.documentIDs)
	docFilter.Restrict(candidates)
	ReturnDocumentFilter(docFilter)

	for i, hash := range hashes {
		posting, ok := e.index.lookup(hash)
		if !ok {
			e.metrics.searched(OutcomeMissingTerm)
			log.WithField("term", terms[i]).Debug("query term not indexed")
			return nil
		}
		candidates.And(posting, candidates)
		if !candidates.Any() {
			e.metrics.searched(OutcomeNoCandidates)
			log.Debug("no document contains every query term")
			return nil
		}
	}

	numDocs := float64(e.store.len())
	queryLen := float64(len(qtokens))

	var results []Result
	for id := range candidates.Indices() {
		docID := uint32(id)
		doc, ok := e.store.get(docID)
		if !ok {
			continue
		}
		if !containsAll(doc.filter, hashes) {
			e.metrics.collisionRejected()
			log.WithField("doc_id", docID).Warn("candidate rejected by document filter")
			continue
		}

		score := 0.0
		for i, term := range terms {
			tf := float64(doc.termCounts[term]) / float64(doc.tokens)
			idf := math.Log(numDocs / float64(e.index.documentFrequency(hashes[i])))
			queryTf := float64(queryCounts[term]) / queryLen
			score += tf * idf * queryTf
		}
		results = append(results, Result{Document: doc.Document, Score: score})
	}

	rankResults(results)
	e.metrics.searched(OutcomeMatched)
	log.WithFields(logrus.Fields{
		"candidates": candidates.Count(),
		"matched":    len(results),
	}).Debug("query evaluated")
	return results
}

func containsAll(filter MembershipFilter, hashes []uint64) bool {
	for _, hash := range hashes {
		if !filter.Contains(hash) {
			return false
		}
	}
	return true
}

// rankResults sorts results best first. Scores closer than scoreEpsilon are
// tied; ties go to the shorter document text, then the lower id.
func rankResults(results []Result) {
	slices.SortStableFunc(results, compareResults)
}

func compareResults(a, b Result) int {
	if math.Abs(a.Score-b.Score) >= scoreEpsilon {
		if a.Score > b.Score {
			return -1
		}
		return 1
	}
	if c := cmp.Compare(len(a.Document.Text), len(b.Document.Text)); c != 0 {
		return c
	}
	return cmp.Compare(a.Document.ID, b.Document.ID)
}
