package embedding

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"featgen/internal/domain"
)

const maxLineBytes = 1 << 20

// vectorReader parses "token v1 ... vN" lines separated by single spaces.
type vectorReader struct {
	path string
	dim  int
}

func openVectors(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

func newScanner(f *os.File) *bufio.Scanner {
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)
	return sc
}

// read consumes the remaining lines of sc into t. lineNo is the number of
// lines already consumed. It returns how many vectors were parsed.
func (r vectorReader) read(ctx context.Context, sc *bufio.Scanner, lineNo int, t *Table) (int, error) {
	parsed := 0
	for sc.Scan() {
		lineNo++
		if lineNo%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return parsed, err
			}
		}
		line := strings.TrimRight(sc.Text(), " \r")
		if line == "" {
			continue
		}
		word, vec, err := r.parseLine(line, lineNo)
		if err != nil {
			return parsed, err
		}
		t.Vectors[word] = vec
		parsed++
	}
	if err := sc.Err(); err != nil {
		return parsed, fmt.Errorf("read %s: %w", r.path, err)
	}
	return parsed, nil
}

func (r vectorReader) parseLine(line string, lineNo int) (string, []float32, error) {
	fields := strings.Split(line, " ")
	if len(fields) != r.dim+1 {
		return "", nil, domain.NewParseError(r.path, lineNo, "expected token and %d values, got %d fields", r.dim, len(fields))
	}
	vec := make([]float32, r.dim)
	for i, f := range fields[1:] {
		x, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return "", nil, domain.NewParseError(r.path, lineNo, "value %d of %q: %q is not a number", i+1, fields[0], f)
		}
		vec[i] = float32(x)
	}
	return fields[0], vec, nil
}
