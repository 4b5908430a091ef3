package vectorstore

import "featgen/internal/domain"

// Storage holds word vectors and answers nearest-neighbour queries.
type Storage interface {
	Init(dimension int) error
	Upsert(words []string, vectors [][]float32) error
	Search(vector []float32, topK int) ([]domain.Neighbor, error)
	Clear() error
}
