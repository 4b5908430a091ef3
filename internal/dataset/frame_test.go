package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"featgen/internal/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDocuments(t *testing.T) {
	req := require.New(t)
	path := writeFile(t, "reviews.csv", "text,sentiment\n\"cat dog\",positive\n\"dog, dog\",negative\n")

	docs, err := LoadDocuments(path, "text")
	req.NoError(err)
	req.Equal([]domain.Document{{ID: 0, Text: "cat dog"}, {ID: 1, Text: "dog, dog"}}, docs)
	req.Equal([]string{"cat dog", "dog, dog"}, Texts(docs))
}

func TestLoadDocuments_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		column  string
		wantErr error
		line    int
	}{
		{
			name:    "missing file",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.csv") },
			column:  "text",
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "missing column",
			path:    func(t *testing.T) string { return writeFile(t, "a.csv", "review,sentiment\nfine,positive\n") },
			column:  "text",
			wantErr: domain.ErrMissingColumn,
			line:    1,
		},
		{
			name:    "wrong field count",
			path:    func(t *testing.T) string { return writeFile(t, "b.csv", "text,sentiment\nok,positive\nbroken\n") },
			column:  "text",
			wantErr: domain.ErrParse,
			line:    3,
		},
		{
			name:    "binary input",
			path:    func(t *testing.T) string { return writeFile(t, "c.csv", "PK\x03\x04\x14\x00\x00\x00\x08\x00") },
			column:  "text",
			wantErr: domain.ErrParse,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadDocuments(tt.path(t), tt.column)
			require.ErrorIs(t, err, tt.wantErr)
			if tt.line > 0 {
				var pe *domain.ParseError
				require.True(t, errors.As(err, &pe))
				require.Equal(t, tt.line, pe.Line)
			}
		})
	}
}

func TestReadFrame_TSVAndBOM(t *testing.T) {
	req := require.New(t)
	path := writeFile(t, "editions.tsv", "\ufeffEdition\tGrand Total\tCity\n1896\t151\tAthens\n1900\t512\tParis\n")

	frame, err := ReadFrame(path)
	req.NoError(err)
	req.Equal([]string{"Edition", "Grand Total", "City"}, frame.Header)
	req.Len(frame.Records, 2)
	cities, err := frame.Column("City")
	req.NoError(err)
	req.Equal([]string{"Athens", "Paris"}, cities)
	req.NoError(frame.Require("Edition", "City"))
	req.ErrorIs(frame.Require("Country"), domain.ErrMissingColumn)
}

func TestReadFrame_Empty(t *testing.T) {
	req := require.New(t)
	frame, err := ReadFrame(writeFile(t, "empty.csv", ""))
	req.NoError(err)
	req.Empty(frame.Header)
	req.Empty(frame.Records)

	_, err = LoadDocuments(frame.Path, "text")
	req.ErrorIs(err, domain.ErrParse)
}
