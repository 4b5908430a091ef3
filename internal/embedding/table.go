// Package embedding loads pretrained word vectors and joins them to a word index.
package embedding

import (
	"sort"

	"github.com/samber/lo"
)

// Table maps tokens to fixed-length vectors.
type Table struct {
	Dim     int
	Vectors map[string][]float32
}

// NewTable returns an empty table of the given dimension.
func NewTable(dim int) *Table {
	return &Table{Dim: dim, Vectors: make(map[string][]float32)}
}

// Len returns the number of tokens in the table.
func (t *Table) Len() int { return len(t.Vectors) }

// Lookup returns the vector of word.
func (t *Table) Lookup(word string) ([]float32, bool) {
	v, ok := t.Vectors[word]
	return v, ok
}

// Words returns the tokens of the table in sorted order.
func (t *Table) Words() []string {
	words := lo.Keys(t.Vectors)
	sort.Strings(words)
	return words
}
