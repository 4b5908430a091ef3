// Package corpus builds the verbatim whitespace vocabulary used by the index
// and bag-of-words encoders.
package corpus

import (
	"sort"
	"strings"
)

// DefaultSeparator splits documents the same way for every encoder.
const DefaultSeparator = " "

// Vocabulary is the sorted set of unique tokens of a corpus.
type Vocabulary []string

// Index returns the 0-based position of token, or -1 when absent.
func (v Vocabulary) Index(token string) int {
	i := sort.SearchStrings(v, token)
	if i < len(v) && v[i] == token {
		return i
	}
	return -1
}

// Len returns the vocabulary size.
func (v Vocabulary) Len() int { return len(v) }

// Corpus holds the original documents, their token sequences and the vocabulary.
type Corpus struct {
	Documents  []string
	Tokens     [][]string
	Vocabulary Vocabulary
}

// Build splits each document on the separator and collects the sorted set of
// tokens. Tokens are kept verbatim: no case folding and no punctuation
// stripping, so "Dog" and "dog." are distinct words.
func Build(documents []string, separator string) Corpus {
	if separator == "" {
		separator = DefaultSeparator
	}
	c := Corpus{
		Documents: append([]string(nil), documents...),
		Tokens:    make([][]string, len(documents)),
	}
	seen := make(map[string]struct{})
	for i, doc := range documents {
		toks := strings.Split(doc, separator)
		c.Tokens[i] = toks
		for _, t := range toks {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			c.Vocabulary = append(c.Vocabulary, t)
		}
	}
	sort.Strings(c.Vocabulary)
	return c
}

// MaxTokens returns the token count of the longest document.
func (c Corpus) MaxTokens() int {
	n := 0
	for _, toks := range c.Tokens {
		if len(toks) > n {
			n = len(toks)
		}
	}
	return n
}
