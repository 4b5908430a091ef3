package tfidf

import (
	"cmp"
	"slices"

	"featgen/internal/domain"
)

// TermScore is a vocabulary term with its aggregated weight.
type TermScore struct {
	Term  string
	Score float64
}

// TopTerms ranks the table's columns by mean weight over all rows, scaled so
// the strongest term scores 1. Ties keep vocabulary order. k <= 0 means all.
func TopTerms(table domain.Table, k int) []TermScore {
	if len(table.Rows) == 0 {
		return nil
	}
	scores := make([]TermScore, len(table.Columns))
	maxScore := 0.0
	for j, term := range table.Columns {
		sum := 0.0
		for _, row := range table.Rows {
			sum += row[j]
		}
		mean := sum / float64(len(table.Rows))
		scores[j] = TermScore{Term: term, Score: mean}
		maxScore = max(maxScore, mean)
	}
	if maxScore > 0 {
		for i := range scores {
			scores[i].Score /= maxScore
		}
	}
	slices.SortStableFunc(scores, func(a, b TermScore) int { return cmp.Compare(b.Score, a.Score) })
	if k > 0 && k < len(scores) {
		scores = scores[:k]
	}
	return scores
}

// DocumentTerms returns the k strongest non-zero terms of row i.
func DocumentTerms(table domain.Table, i, k int) []TermScore {
	if i < 0 || i >= len(table.Rows) {
		return nil
	}
	var out []TermScore
	for j, w := range table.Rows[i] {
		if w > 0 {
			out = append(out, TermScore{Term: table.Columns[j], Score: w})
		}
	}
	slices.SortStableFunc(out, func(a, b TermScore) int { return cmp.Compare(b.Score, a.Score) })
	if k > 0 && k < len(out) {
		out = out[:k]
	}
	return out
}
