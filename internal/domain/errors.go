package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("file not found")
	ErrParse             = errors.New("parse error")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrEmptyCorpus       = errors.New("empty corpus")
	ErrMissingColumn     = fmt.Errorf("%w: missing column", ErrParse)
)

// ParseError reports a malformed input line. It matches ErrParse with errors.Is.
type ParseError struct {
	Path   string
	Line   int
	Reason string
	// Err refines ErrParse; nil means plain ErrParse.
	Err error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrParse
}

// NewParseError builds a ParseError with a formatted reason.
func NewParseError(path string, line int, format string, args ...any) *ParseError {
	return &ParseError{Path: path, Line: line, Reason: fmt.Sprintf(format, args...)}
}

// NewMissingColumnError reports a required header column that is absent.
func NewMissingColumnError(path, column string) *ParseError {
	return &ParseError{Path: path, Line: 1, Reason: fmt.Sprintf("missing column %q", column), Err: ErrMissingColumn}
}
