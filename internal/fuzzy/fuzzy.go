// Package fuzzy ranks catalog records against a typed query by edit distance.
package fuzzy

import (
	"sort"
	"strings"

	"filegrip/internal/domain"
)

// Candidate pairs a record with its computed distance for one ranking pass.
type Candidate struct {
	Record   domain.FileRecord
	Distance int
}

// Distance returns the Levenshtein distance between a and b after case
// folding: the minimum number of single-character insertions, deletions and
// substitutions to transform one into the other. Table-based DP, unit costs.
func Distance(a, b string) int {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))

	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	table := make([][]int, len(ra)+1)
	for i := range table {
		table[i] = make([]int, len(rb)+1)
		table[i][0] = i
	}
	for j := 0; j <= len(rb); j++ {
		table[0][j] = j
	}

	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			table[i][j] = min(
				table[i-1][j]+1,      // deletion
				table[i][j-1]+1,      // insertion
				table[i-1][j-1]+cost, // substitution
			)
		}
	}

	return table[len(ra)][len(rb)]
}

// Threshold is the maximum acceptable distance for a query of the given
// length: max(3, floor(length * 0.6)).
func Threshold(queryLen int) int {
	t := queryLen * 6 / 10
	if t < 3 {
		t = 3
	}
	return t
}

// Rank scores records against the query, sorts them ascending by distance,
// keeps at most keep of the closest, and drops any whose distance exceeds the
// length-proportional threshold. The sort is stable so ties preserve the
// pool's own ordering.
func Rank(query string, records []domain.FileRecord, keep int) []Candidate {
	candidates := make([]Candidate, 0, len(records))
	for _, rec := range records {
		candidates = append(candidates, Candidate{
			Record:   rec,
			Distance: Distance(query, rec.FileName),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Distance < candidates[j].Distance
	})

	if len(candidates) > keep {
		candidates = candidates[:keep]
	}

	limit := Threshold(len([]rune(query)))
	accepted := candidates[:0]
	for _, c := range candidates {
		if c.Distance <= limit {
			accepted = append(accepted, c)
		}
	}

	return accepted
}
