// Package dataset reads tabular text datasets and downloads raw archives.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"featgen/internal/domain"
)

// Frame is a header plus string records read from a CSV or TSV file.
type Frame struct {
	Path    string
	Header  []string
	Records [][]string
}

// Index returns the position of the named column or -1.
func (f *Frame) Index(name string) int {
	for i, h := range f.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Require checks that every named column is present.
func (f *Frame) Require(names ...string) error {
	for _, n := range names {
		if f.Index(n) < 0 {
			return domain.NewMissingColumnError(f.Path, n)
		}
	}
	return nil
}

// Column returns every value of the named column in record order.
func (f *Frame) Column(name string) ([]string, error) {
	idx := f.Index(name)
	if idx < 0 {
		return nil, domain.NewMissingColumnError(f.Path, name)
	}
	out := make([]string, len(f.Records))
	for i, r := range f.Records {
		out[i] = r[idx]
	}
	return out, nil
}

// ReadFrame loads a delimited file. Files ending in .tsv are tab separated,
// everything else is comma separated. Every record must have as many fields
// as the header.
func ReadFrame(path string) (*Frame, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, openError(path, err)
	}
	frame := &Frame{Path: path}
	if info.Size() == 0 {
		return frame, nil
	}
	if err := requireText(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, openError(path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		r.Comma = '\t'
		r.LazyQuotes = true
	}
	r.FieldsPerRecord = 0
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return frame, nil
		}
		return nil, csvError(path, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	frame.Header = header
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(path, err)
		}
		frame.Records = append(frame.Records, rec)
	}
	return frame, nil
}

// LoadDocuments reads the given text column of a CSV/TSV file as documents.
func LoadDocuments(path, column string) ([]domain.Document, error) {
	frame, err := ReadFrame(path)
	if err != nil {
		return nil, err
	}
	texts, err := frame.Column(column)
	if err != nil {
		return nil, err
	}
	docs := make([]domain.Document, len(texts))
	for i, t := range texts {
		docs[i] = domain.Document{ID: i, Text: t}
	}
	return docs, nil
}

// Texts extracts the raw text of each document.
func Texts(docs []domain.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.Text
	}
	return out
}

func requireText(path string) error {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return openError(path, err)
	}
	for m := mt; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return nil
		}
	}
	return domain.NewParseError(path, 0, "not a text file (%s)", mt.String())
}

func openError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	}
	return fmt.Errorf("open %s: %w", path, err)
}

func csvError(path string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return domain.NewParseError(path, pe.Line, "%v", pe.Err)
	}
	return fmt.Errorf("read %s: %w", path, err)
}
