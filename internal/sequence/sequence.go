// Package sequence maps texts to integer word-index sequences of fixed length,
// the input shape expected by an embedding layer.
package sequence

import (
	"sort"
	"strings"
)

// DefaultFilters are the characters replaced by spaces before splitting.
const DefaultFilters = "!\"#$%&()*+,-./:;<=>?@[\\]^_`{|}~\t\n"

// Tokenizer builds a frequency-ordered word index. Index 0 is reserved for padding.
type Tokenizer struct {
	filters   string
	counts    map[string]int
	order     []string
	wordIndex map[string]int
}

// NewTokenizer returns a tokenizer using DefaultFilters.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{
		filters:   DefaultFilters,
		counts:    make(map[string]int),
		wordIndex: make(map[string]int),
	}
}

// Words lowercases text, replaces filter characters by spaces and splits.
func (t *Tokenizer) Words(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if strings.ContainsRune(t.filters, r) {
			return ' '
		}
		return r
	}, strings.ToLower(text))
	return strings.Fields(cleaned)
}

// Fit updates word counts and rebuilds the index: most frequent word first,
// ties in order of first appearance.
func (t *Tokenizer) Fit(texts []string) {
	for _, text := range texts {
		for _, w := range t.Words(text) {
			if _, ok := t.counts[w]; !ok {
				t.order = append(t.order, w)
			}
			t.counts[w]++
		}
	}
	ranked := append([]string(nil), t.order...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return t.counts[ranked[i]] > t.counts[ranked[j]]
	})
	t.wordIndex = make(map[string]int, len(ranked))
	for i, w := range ranked {
		t.wordIndex[w] = i + 1
	}
}

// WordIndex returns the word → 1-based index mapping.
func (t *Tokenizer) WordIndex() map[string]int { return t.wordIndex }

// VocabSize is the number of indexed words plus the padding slot.
func (t *Tokenizer) VocabSize() int { return len(t.wordIndex) + 1 }

// TextsToSequences converts texts to index sequences; unknown words are dropped.
func (t *Tokenizer) TextsToSequences(texts []string) [][]int {
	out := make([][]int, len(texts))
	for i, text := range texts {
		words := t.Words(text)
		seq := make([]int, 0, len(words))
		for _, w := range words {
			if idx, ok := t.wordIndex[w]; ok {
				seq = append(seq, idx)
			}
		}
		out[i] = seq
	}
	return out
}

// Pad makes every sequence exactly maxLen long. Short sequences are padded
// with zeros at the front; long ones keep their last maxLen entries.
func Pad(seqs [][]int, maxLen int) [][]int {
	out := make([][]int, len(seqs))
	for i, s := range seqs {
		row := make([]int, maxLen)
		if len(s) > maxLen {
			s = s[len(s)-maxLen:]
		}
		copy(row[maxLen-len(s):], s)
		out[i] = row
	}
	return out
}
