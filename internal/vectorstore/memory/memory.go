package memory

import (
	"cmp"
	"errors"
	"math"
	"slices"
	"sync"

	"featgen/internal/domain"
)

// Storage is a simple in-memory vector store using brute-force cosine similarity.
// Vectors are L2-normalized on insert so scoring is a dot product.
type Storage struct {
	mu        sync.RWMutex
	dimension int
	vectors   [][]float32
	words     []string
}

func NewStorage() *Storage { return &Storage{} }

func (s *Storage) Init(dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	s.vectors = nil
	s.words = nil
	return nil
}

func (s *Storage) Upsert(words []string, vectors [][]float32) error {
	if len(words) != len(vectors) {
		return errors.New("words and vectors length mismatch")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range vectors {
		if len(v) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
	}
	for i, v := range vectors {
		s.words = append(s.words, words[i])
		s.vectors = append(s.vectors, normalized(v))
	}
	return nil
}

func (s *Storage) Search(vector []float32, topK int) ([]domain.Neighbor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(vector) != s.dimension {
		return nil, errors.New("query dimension mismatch")
	}
	if topK <= 0 {
		topK = 5
	}
	q := normalized(vector)
	scores := make([]float64, len(s.vectors))
	for i := range s.vectors {
		scores[i] = dot(s.vectors[i], q)
	}
	idxs := argsortDesc(scores)
	if topK > len(idxs) {
		topK = len(idxs)
	}
	results := make([]domain.Neighbor, 0, topK)
	for i := 0; i < topK; i++ {
		j := idxs[i]
		results = append(results, domain.Neighbor{Word: s.words[j], Score: scores[j]})
	}
	return results, nil
}

func (s *Storage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vectors = nil
	s.words = nil
	return nil
}

func normalized(v []float32) []float32 {
	norm := 0.0
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	out := make([]float32, len(v))
	if norm == 0 {
		return out
	}
	norm = math.Sqrt(norm)
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

func dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// argsortDesc orders indexes by descending score; equal scores keep insertion order.
func argsortDesc(vals []float64) []int {
	idxs := make([]int, len(vals))
	for i := range vals {
		idxs[i] = i
	}
	slices.SortStableFunc(idxs, func(a, b int) int { return cmp.Compare(vals[b], vals[a]) })
	return idxs
}
