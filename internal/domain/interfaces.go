package domain

// Document is a single raw text record loaded from a dataset.
type Document struct {
	ID   int
	Text string
}

// Table is a dense feature matrix whose columns are named after vocabulary terms.
type Table struct {
	Columns []string
	Rows    [][]float64
}

// Tokenizer splits free text into tokens.
type Tokenizer interface {
	Tokenize(text string) []string
}

// Normalizer reduces a lowercased token to its base form.
type Normalizer interface {
	Name() string
	Normalize(token string) string
}

// Analyzer turns a document into the keyword list fed to a vectorizer.
type Analyzer interface {
	Analyze(text string) []string
}

// Vectorizer converts a corpus into a named-column feature table.
// Implementations require a fit over the corpus before Transform.
type Vectorizer interface {
	Name() string
	FitTransform(corpus []string) (Table, error)
	Transform(text string) ([]float64, error)
	Dimension() int
}

// Neighbor is a word with its similarity to a query vector.
type Neighbor struct {
	Word  string
	Score float64
}
