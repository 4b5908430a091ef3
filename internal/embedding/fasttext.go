package embedding

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"featgen/internal/domain"
)

// LoadFastText reads pretrained FastText vectors in the .vec text format: a
// "count dim" header line followed by GloVe-style lines. Binary .bin models
// are not supported.
func LoadFastText(ctx context.Context, path string) (*Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".bin") {
		return nil, fmt.Errorf("%w: fasttext binary model %s; export it to .vec first", domain.ErrUnsupportedFormat, path)
	}
	f, err := openVectors(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc := newScanner(f)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return nil, domain.NewParseError(path, 1, "missing header")
	}
	count, dim, err := parseHeader(sc.Text())
	if err != nil {
		return nil, domain.NewParseError(path, 1, "%v", err)
	}

	t := NewTable(dim)
	r := vectorReader{path: path, dim: dim}
	parsed, err := r.read(ctx, sc, 1, t)
	if err != nil {
		return nil, err
	}
	if parsed != count {
		return nil, domain.NewParseError(path, 1, "header declares %d vectors, found %d", count, parsed)
	}
	return t, nil
}

func parseHeader(line string) (count, dim int, err error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("header must be \"count dim\", got %q", line)
	}
	if count, err = strconv.Atoi(fields[0]); err != nil || count < 0 {
		return 0, 0, fmt.Errorf("invalid vector count %q", fields[0])
	}
	if dim, err = strconv.Atoi(fields[1]); err != nil || dim <= 0 {
		return 0, 0, fmt.Errorf("invalid dimension %q", fields[1])
	}
	return count, dim, nil
}
