// Package analysis turns raw documents into keyword lists: regexp
// tokenization, lowercasing, verb-biased lemmatization and stopword removal.
package analysis

import (
	"fmt"
	"regexp"
	"strings"

	"featgen/internal/domain"
)

// WordPattern matches runs of Unicode word characters, discarding punctuation.
const WordPattern = `[\p{L}\p{M}\p{N}_]+`

// RegexpTokenizer extracts every match of a pattern as a token.
type RegexpTokenizer struct {
	pattern *regexp.Regexp
}

// NewRegexpTokenizer compiles pattern; an empty pattern means WordPattern.
func NewRegexpTokenizer(pattern string) (*RegexpTokenizer, error) {
	if pattern == "" {
		pattern = WordPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("token pattern %q: %w", pattern, err)
	}
	return &RegexpTokenizer{pattern: re}, nil
}

func (t *RegexpTokenizer) Tokenize(text string) []string {
	return t.pattern.FindAllString(text, -1)
}

// Pipeline tokenizes, lowercases, normalizes and drops stopwords.
type Pipeline struct {
	tokenizer  domain.Tokenizer
	normalizer domain.Normalizer
	stopwords  map[string]struct{}
}

// NewPipeline assembles an analyzer. A nil stopword set disables filtering.
func NewPipeline(tokenizer domain.Tokenizer, normalizer domain.Normalizer, stopwords map[string]struct{}) *Pipeline {
	if normalizer == nil {
		normalizer = Identity{}
	}
	return &Pipeline{tokenizer: tokenizer, normalizer: normalizer, stopwords: stopwords}
}

// Analyze returns the keywords of text in document order.
func (p *Pipeline) Analyze(text string) []string {
	raw := p.tokenizer.Tokenize(text)
	if len(raw) == 0 {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, tok := range raw {
		lemma := p.normalizer.Normalize(strings.ToLower(tok))
		// stopwords are matched after normalization: "was" -> "be" is dropped
		if _, isStop := p.stopwords[lemma]; isStop {
			continue
		}
		out = append(out, lemma)
	}
	return out
}
