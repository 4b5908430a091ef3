// Package tfidf computes smoothed TF-IDF feature tables over analyzed documents.
package tfidf

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"featgen/internal/domain"
)

// Vectorizer implements a TF-IDF vectorizer over an analyzer's keywords.
// It builds a sorted vocabulary from the corpus and computes smoothed IDF values:
// idf(t) = ln((1+n)/(1+df(t))) + 1. Term frequencies are raw counts and every
// row is L2-normalized.
type Vectorizer struct {
	analyzer   domain.Analyzer
	vocabulary map[string]int
	terms      []string
	idf        []float64
	prepared   bool
}

// NewVectorizer creates an unfitted vectorizer.
func NewVectorizer(analyzer domain.Analyzer) *Vectorizer {
	return &Vectorizer{
		analyzer:   analyzer,
		vocabulary: make(map[string]int),
	}
}

// Name returns the identifier of this vectorizer implementation.
func (v *Vectorizer) Name() string { return "tfidf" }

// Dimension returns the number of vocabulary terms.
func (v *Vectorizer) Dimension() int { return len(v.terms) }

// fit builds the vocabulary and IDF values and returns each document's keywords.
func (v *Vectorizer) fit(corpus []string) ([][]string, error) {
	if len(corpus) == 0 {
		return nil, fmt.Errorf("tfidf fit: %w", domain.ErrEmptyCorpus)
	}
	analyzed := make([][]string, len(corpus))
	df := make(map[string]int)
	for i, text := range corpus {
		keywords := v.analyzer.Analyze(text)
		analyzed[i] = keywords
		seen := make(map[string]struct{})
		for _, kw := range keywords {
			if _, ok := seen[kw]; ok {
				continue
			}
			seen[kw] = struct{}{}
			df[kw]++
		}
	}
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	if len(terms) == 0 {
		return nil, errors.New("tfidf fit: no terms left after analysis; every document is empty or only stopwords")
	}
	v.vocabulary = make(map[string]int, len(terms))
	v.terms = terms
	v.idf = make([]float64, len(terms))
	n := float64(len(corpus))
	for i, term := range terms {
		v.vocabulary[term] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	v.prepared = true
	return analyzed, nil
}

// FitTransform fits the corpus and returns its dense feature table. Columns
// are named after their vocabulary term.
func (v *Vectorizer) FitTransform(corpus []string) (domain.Table, error) {
	analyzed, err := v.fit(corpus)
	if err != nil {
		return domain.Table{}, err
	}
	columns, err := v.columnNames()
	if err != nil {
		return domain.Table{}, err
	}
	rows := make([][]float64, len(analyzed))
	for i, keywords := range analyzed {
		rows[i] = v.weigh(keywords)
	}
	return domain.Table{Columns: columns, Rows: rows}, nil
}

// Transform computes the TF-IDF vector of an unseen text over the fitted vocabulary.
// Terms outside the vocabulary are ignored.
func (v *Vectorizer) Transform(text string) ([]float64, error) {
	if !v.prepared {
		return nil, errors.New("tfidf vectorizer not fitted")
	}
	return v.weigh(v.analyzer.Analyze(text)), nil
}

func (v *Vectorizer) weigh(keywords []string) []float64 {
	vec := make([]float64, len(v.terms))
	for _, kw := range keywords {
		if idx, ok := v.vocabulary[kw]; ok {
			vec[idx]++
		}
	}
	norm := 0.0
	for i := range vec {
		vec[i] *= v.idf[i]
		norm += vec[i] * vec[i]
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// columnNames inverts the vocabulary so column i is named after the term
// mapped to i. The inversion must be a bijection.
func (v *Vectorizer) columnNames() ([]string, error) {
	names := make([]string, len(v.vocabulary))
	filled := make([]bool, len(v.vocabulary))
	for term, idx := range v.vocabulary {
		if idx < 0 || idx >= len(names) || filled[idx] {
			return nil, fmt.Errorf("tfidf: column %d mapped more than once or out of range", idx)
		}
		names[idx] = term
		filled[idx] = true
	}
	return names, nil
}
