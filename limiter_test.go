package sift

import (
	"testing"
)

func TestSanitizeLimit(t *testing.T) {
	tests := []struct {
		name       string
		limit      int
		maxResults int
		want       int
	}{
		{
			name:       "limit is zero",
			limit:      0,
			maxResults: 10,
			want:       0,
		},
		{
			name:       "limit is negative",
			limit:      -5,
			maxResults: 10,
			want:       0,
		},
		{
			name:       "limit exceeds maxResults",
			limit:      100,
			maxResults: 10,
			want:       10,
		},
		{
			name:       "limit is within bounds",
			limit:      5,
			maxResults: 10,
			want:       5,
		},
		{
			name:       "maxResults is zero",
			limit:      5,
			maxResults: 0,
			want:       0,
		},
		{
			name:       "limit is 1",
			limit:      1,
			maxResults: 10,
			want:       1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeLimit(tt.limit, tt.maxResults)
			if got != tt.want {
				t.Errorf("sanitizeLimit(%d, %d) = %d, want %d",
					tt.limit, tt.maxResults, got, tt.want)
			}
		})
	}
}

func makeResults(scores ...float64) []Result {
	results := make([]Result, len(scores))
	for i, score := range scores {
		results[i] = Result{
			Document: Document{ID: uint32(i)},
			Score:    score,
		}
	}
	return results
}

func TestLimitResults(t *testing.T) {
	tests := []struct {
		name        string
		resultsSize int
		limit       int
		wantSize    int
	}{
		{
			name:        "limit is zero - returns none",
			resultsSize: 10,
			limit:       0,
			wantSize:    0,
		},
		{
			name:        "limit is negative - returns none",
			resultsSize: 10,
			limit:       -1,
			wantSize:    0,
		},
		{
			name:        "limit exceeds results - returns all",
			resultsSize: 5,
			limit:       10,
			wantSize:    5,
		},
		{
			name:        "limit within bounds",
			resultsSize: 10,
			limit:       3,
			wantSize:    3,
		},
		{
			name:        "empty results",
			resultsSize: 0,
			limit:       5,
			wantSize:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := makeResults(make([]float64, tt.resultsSize)...)
			got := limitResults(results, tt.limit)

			if len(got) != tt.wantSize {
				t.Errorf("limitResults() returned %d results, want %d",
					len(got), tt.wantSize)
			}

			// Verify that the returned results are the first ones
			for i := range got {
				if got[i].Document.ID != uint32(i) {
					t.Errorf("limitResults()[%d].Document.ID = %d, want %d",
						i, got[i].Document.ID, i)
				}
			}
		})
	}
}

func TestAutocut(t *testing.T) {
	tests := []struct {
		name     string
		scores   []float64
		cutoff   int
		expected int
	}{
		{
			name:     "empty slice",
			scores:   []float64{},
			cutoff:   1,
			expected: 0,
		},
		{
			name:     "single element",
			scores:   []float64{1.0},
			cutoff:   1,
			expected: 1,
		},
		{
			name:     "two elements",
			scores:   []float64{2.0, 1.0},
			cutoff:   1,
			expected: 2,
		},
		{
			name:     "clear drop after three results",
			scores:   []float64{1.0, 0.95, 0.9, 0.2, 0.1},
			cutoff:   1,
			expected: 3,
		},
		{
			name:     "clear drop after four results",
			scores:   []float64{1.0, 0.98, 0.97, 0.96, 0.2, 0.15},
			cutoff:   1,
			expected: 4,
		},
		{
			name:     "cutoff higher than extrema count",
			scores:   []float64{1.0, 0.95, 0.9, 0.2, 0.1},
			cutoff:   5,
			expected: 5,
		},
		{
			name:     "all same values",
			scores:   []float64{0.5, 0.5, 0.5, 0.5, 0.5},
			cutoff:   1,
			expected: 5,
		},
		{
			name:     "ascending tight cluster",
			scores:   []float64{0.1, 0.12, 0.13, 0.14, 0.15, 0.8, 0.9, 1.0},
			cutoff:   1,
			expected: 5,
		},
		{
			name:     "cutoff 2 finds second extremum",
			scores:   []float64{0.1, 0.2, 0.4, 0.45, 0.7, 0.75, 0.9, 1.0},
			cutoff:   2,
			expected: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Autocut(tt.scores, tt.cutoff)
			if got != tt.expected {
				t.Errorf("Autocut() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestAutocutResults(t *testing.T) {
	tests := []struct {
		name         string
		scores       []float64
		cutoff       int
		expectedSize int
	}{
		{
			name:         "cutoff -1 returns all",
			scores:       []float64{1.0, 0.95, 0.9, 0.2, 0.1},
			cutoff:       -1,
			expectedSize: 5,
		},
		{
			name:         "empty results with cutoff 1",
			scores:       []float64{},
			cutoff:       1,
			expectedSize: 0,
		},
		{
			name:         "cutoff 1 finds gap",
			scores:       []float64{1.0, 0.95, 0.9, 0.2, 0.1},
			cutoff:       1,
			expectedSize: 3,
		},
		{
			name:         "single result",
			scores:       []float64{0.5},
			cutoff:       1,
			expectedSize: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := autocutResults(makeResults(tt.scores...), tt.cutoff)

			if len(got) != tt.expectedSize {
				t.Errorf("autocutResults() returned %d results, want %d",
					len(got), tt.expectedSize)
			}
			for i := range got {
				if got[i].Document.ID != uint32(i) || got[i].Score != tt.scores[i] {
					t.Errorf("autocutResults()[%d] = %+v, want id %d score %f",
						i, got[i], i, tt.scores[i])
				}
			}
		})
	}
}
