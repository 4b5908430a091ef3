// Package bow encodes documents as fixed-width integer vectors over a corpus
// vocabulary: index positions, binary presence or term counts.
package bow

import (
	"github.com/samber/lo"

	"featgen/internal/corpus"
)

// Index maps every token to its 1-based vocabulary position. All rows have the
// width of the longest document; positions past a document's end hold 0.
func Index(c corpus.Corpus) [][]int {
	width := c.MaxTokens()
	out := make([][]int, len(c.Tokens))
	for i, toks := range c.Tokens {
		row := make([]int, width)
		for j, tok := range toks {
			// every token of the corpus is in the vocabulary; 0 stays the unknown marker
			row[j] = c.Vocabulary.Index(tok) + 1
		}
		out[i] = row
	}
	return out
}

// Binary marks each vocabulary word present in a document with 1.
func Binary(c corpus.Corpus) [][]int {
	return encode(c, func(count int) int {
		if count > 0 {
			return 1
		}
		return 0
	})
}

// Count holds the number of occurrences of each vocabulary word in a document.
func Count(c corpus.Corpus) [][]int {
	return encode(c, func(count int) int { return count })
}

func encode(c corpus.Corpus, value func(count int) int) [][]int {
	out := make([][]int, len(c.Tokens))
	for i, toks := range c.Tokens {
		counts := lo.CountValues(toks)
		row := make([]int, c.Vocabulary.Len())
		for j, word := range c.Vocabulary {
			row[j] = value(counts[word])
		}
		out[i] = row
	}
	return out
}
