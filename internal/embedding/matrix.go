package embedding

// Matrix is the embedding-layer weight matrix for a word index. Row 0 is the
// padding row; row i holds the vector of the word with index i.
type Matrix struct {
	Rows [][]float32
	// Hits counts indexed words found in the table; other rows stay zero.
	Hits int
}

// Coverage is the share of indexed words that have a pretrained vector.
func (m Matrix) Coverage() float64 {
	if len(m.Rows) <= 1 {
		return 0
	}
	return float64(m.Hits) / float64(len(m.Rows)-1)
}

// BuildMatrix joins a 1-based word index to the table.
func BuildMatrix(wordIndex map[string]int, t *Table) Matrix {
	rows := make([][]float32, len(wordIndex)+1)
	for i := range rows {
		rows[i] = make([]float32, t.Dim)
	}
	hits := 0
	for word, idx := range wordIndex {
		if idx <= 0 || idx >= len(rows) {
			continue
		}
		if v, ok := t.Vectors[word]; ok {
			copy(rows[idx], v)
			hits++
		}
	}
	return Matrix{Rows: rows, Hits: hits}
}
