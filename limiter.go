package sift

// sanitizeLimit clamps limit to [0, maxResults]. A negative limit counts
// as 0.
func sanitizeLimit(limit, maxResults int) int {
	return max(0, min(limit, maxResults))
}

// limitResults keeps at most the first limit results.
func limitResults(results []Result, limit int) []Result {
	return results[:sanitizeLimit(limit, len(results))]
}

// autocutResults cuts ranked results at a natural break in their scores.
//
// A cutoff of -1 disables autocut and returns results unchanged.
func autocutResults(results []Result, cutoff int) []Result {
	if cutoff < 0 || len(results) == 0 {
		return results
	}

	scores := make([]float64, len(results))
	for i, result := range results {
		scores[i] = result.Score
	}

	return results[:Autocut(scores, cutoff)]
}

// Autocut determines a cutoff point in a ranked score distribution.
//
// Scores are normalized against the straight line from the first to the
// last value; local maxima of the difference mark jumps in relevance. The
// returned index is the position just before the cutOff-th such extremum,
// or len(yValues) when there are fewer.
func Autocut(yValues []float64, cutOff int) int {
	if len(yValues) <= 1 {
		return len(yValues)
	}

	first, last := yValues[0], yValues[len(yValues)-1]
	if first == last {
		return len(yValues)
	}

	diff := make([]float64, len(yValues))
	step := 1. / (float64(len(yValues)) - 1.)

	for i := range yValues {
		xValue := float64(i) * step
		yValueNorm := (yValues[i] - first) / (last - first)
		diff[i] = yValueNorm - xValue
	}

	extremaCount := 0
	for i := 1; i < len(diff); i++ {
		var extremum bool
		if i == len(diff)-1 {
			// last element has no "next" point
			extremum = i >= 2 && diff[i] > diff[i-1] && diff[i] > diff[i-2]
		} else {
			extremum = diff[i] > diff[i-1] && diff[i] > diff[i+1]
		}
		if extremum {
			extremaCount++
			if extremaCount >= cutOff {
				return i
			}
		}
	}
	return len(yValues)
}
