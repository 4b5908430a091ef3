package embedding

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"featgen/internal/domain"
)

func writeVectors(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadGlove(t *testing.T) {
	req := require.New(t)
	path := writeVectors(t, "glove.txt", "the 0.1 0.2\ncat 0.3 0.4\n")

	table, err := LoadGlove(context.Background(), path, 2)
	req.NoError(err)
	req.Equal(2, table.Dim)
	req.Equal(map[string][]float32{
		"the": {0.1, 0.2},
		"cat": {0.3, 0.4},
	}, table.Vectors)
	req.Equal([]string{"cat", "the"}, table.Words())

	v, ok := table.Lookup("cat")
	req.True(ok)
	req.Equal([]float32{0.3, 0.4}, v)
	_, ok = table.Lookup("dog")
	req.False(ok)
}

func TestLoadGlove_ToleratesBlankLinesAndCRLF(t *testing.T) {
	req := require.New(t)
	path := writeVectors(t, "glove.txt", "the 1 2\r\n\r\ncat -3 4e-1\r\nthe 5 6\n")
	table, err := LoadGlove(context.Background(), path, 2)
	req.NoError(err)
	req.Equal(2, table.Len())
	req.Equal([]float32{5, 6}, table.Vectors["the"])
	req.Equal([]float32{-3, 0.4}, table.Vectors["cat"])
}

func TestLoadGlove_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		dim     int
		wantErr error
		line    int
	}{
		{name: "too few values", content: "the 0.1 0.2\ncat 0.3\n", dim: 2, wantErr: domain.ErrParse, line: 2},
		{name: "too many values", content: "the 0.1 0.2 0.3\n", dim: 2, wantErr: domain.ErrParse, line: 1},
		{name: "not a number", content: "the 0.1 abc\n", dim: 2, wantErr: domain.ErrParse, line: 1},
		{name: "double space", content: "the 0.1  0.2\n", dim: 2, wantErr: domain.ErrParse, line: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeVectors(t, "glove.txt", tt.content)
			_, err := LoadGlove(context.Background(), path, tt.dim)
			require.ErrorIs(t, err, tt.wantErr)
			var pe *domain.ParseError
			require.True(t, errors.As(err, &pe))
			require.Equal(t, tt.line, pe.Line)
			require.Equal(t, path, pe.Path)
		})
	}
}

func TestLoadGlove_MissingFile(t *testing.T) {
	_, err := LoadGlove(context.Background(), filepath.Join(t.TempDir(), "missing.txt"), 300)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = LoadGlove(context.Background(), "unused", 0)
	require.Error(t, err)
}

func TestLoadFastText(t *testing.T) {
	req := require.New(t)
	path := writeVectors(t, "wiki.simple.vec", "2 3\nthe 0.1 0.2 0.3 \nof 1 2 3 \n")
	table, err := LoadFastText(context.Background(), path)
	req.NoError(err)
	req.Equal(3, table.Dim)
	req.Equal([]float32{1, 2, 3}, table.Vectors["of"])
}

func TestLoadFastText_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr error
	}{
		{name: "binary model", file: "wiki.simple.bin", content: "\x00\x01", wantErr: domain.ErrUnsupportedFormat},
		{name: "empty file", file: "a.vec", content: "", wantErr: domain.ErrParse},
		{name: "bad header", file: "b.vec", content: "three 2\n", wantErr: domain.ErrParse},
		{name: "count mismatch", file: "c.vec", content: "3 1\na 1\nb 2\n", wantErr: domain.ErrParse},
		{name: "dimension mismatch", file: "d.vec", content: "1 2\na 1\n", wantErr: domain.ErrParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFastText(context.Background(), writeVectors(t, tt.file, tt.content))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBuildMatrix(t *testing.T) {
	req := require.New(t)
	table := NewTable(2)
	table.Vectors["movie"] = []float32{1, 2}
	table.Vectors["good"] = []float32{3, 4}

	m := BuildMatrix(map[string]int{"movie": 1, "good": 2, "zzyzx": 3}, table)
	req.Equal([][]float32{{0, 0}, {1, 2}, {3, 4}, {0, 0}}, m.Rows)
	req.Equal(2, m.Hits)
	req.InDelta(2.0/3.0, m.Coverage(), 1e-9)

	table.Vectors["movie"][0] = 9
	req.Equal(float32(1), m.Rows[1][0])

	req.Zero(BuildMatrix(nil, table).Coverage())
}
