package embedding

import (
	"context"
	"fmt"
)

// LoadGlove reads a GloVe text file where every line is a token followed by
// dim space-separated values. Malformed lines fail with a *domain.ParseError;
// a missing file fails with domain.ErrNotFound. Blank lines are skipped and a
// repeated token keeps its last vector.
func LoadGlove(ctx context.Context, path string, dim int) (*Table, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("glove dimension must be positive, got %d", dim)
	}
	f, err := openVectors(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t := NewTable(dim)
	r := vectorReader{path: path, dim: dim}
	if _, err := r.read(ctx, newScanner(f), 0, t); err != nil {
		return nil, err
	}
	return t, nil
}
