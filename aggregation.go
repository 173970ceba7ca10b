package sift

import (
	"errors"
	"fmt"
)

// ErrUnknownAggregation is returned for unrecognized ScoreAggregationKind values.
var ErrUnknownAggregation = errors.New("sift: unknown score aggregation")

// ScoreAggregationKind defines how scores are combined when the same document
// is returned by several queries of one search.
type ScoreAggregationKind string

const (
	// SumAggregation sums all scores for the same document
	SumAggregation ScoreAggregationKind = "sum"

	// MaxAggregation takes the highest score for the same document
	MaxAggregation ScoreAggregationKind = "max"

	// MeanAggregation averages scores over the queries that matched the document
	MeanAggregation ScoreAggregationKind = "mean"
)

// ScoreAggregation deduplicates results by document id and combines their
// scores. The output is ranked with the engine's result ordering.
type ScoreAggregation interface {
	// Kind returns the kind of aggregation strategy
	Kind() ScoreAggregationKind

	// Aggregate merges results that share a document id.
	Aggregate(results []Result) []Result
}

// Singleton instances
var (
	sumAgg  = &sumAggregation{}
	maxAgg  = &maxAggregation{}
	meanAgg = &meanAggregation{}
)

// NewScoreAggregation returns the aggregation for kind. An empty kind
// selects SumAggregation.
func NewScoreAggregation(kind ScoreAggregationKind) (ScoreAggregation, error) {
	switch kind {
	case "", SumAggregation:
		return sumAgg, nil
	case MaxAggregation:
		return maxAgg, nil
	case MeanAggregation:
		return meanAgg, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAggregation, kind)
	}
}

// group collects results by document id, keeping first-seen order.
func group(results []Result) (order []Result, scores map[uint32][]float64) {
	scores = make(map[uint32][]float64)
	for _, r := range results {
		if _, seen := scores[r.Document.ID]; !seen {
			order = append(order, r)
		}
		scores[r.Document.ID] = append(scores[r.Document.ID], r.Score)
	}
	return order, scores
}

type sumAggregation struct{}

func (s *sumAggregation) Kind() ScoreAggregationKind {
	return SumAggregation
}

func (s *sumAggregation) Aggregate(results []Result) []Result {
	order, scores := group(results)
	for i := range order {
		total := 0.0
		for _, score := range scores[order[i].Document.ID] {
			total += score
		}
		order[i].Score = total
	}
	rankResults(order)
	return order
}

type maxAggregation struct{}

func (m *maxAggregation) Kind() ScoreAggregationKind {
	return MaxAggregation
}

func (m *maxAggregation) Aggregate(results []Result) []Result {
	order, scores := group(results)
	for i := range order {
		best := scores[order[i].Document.ID][0]
		for _, score := range scores[order[i].Document.ID][1:] {
			if score > best {
				best = score
			}
		}
		order[i].Score = best
	}
	rankResults(order)
	return order
}

type meanAggregation struct{}

func (a *meanAggregation) Kind() ScoreAggregationKind {
	return MeanAggregation
}

func (a *meanAggregation) Aggregate(results []Result) []Result {
	order, scores := group(results)
	for i := range order {
		docScores := scores[order[i].Document.ID]
		total := 0.0
		for _, score := range docScores {
			total += score
		}
		order[i].Score = total / float64(len(docScores))
	}
	rankResults(order)
	return order
}
