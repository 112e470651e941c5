package model

import (
	"errors"
	"fmt"
)

// ErrNoPages reports a structurally valid document with an empty page tree.
var ErrNoPages = errors.New("document has no pages")

// DocumentError wraps a failure that invalidates extraction for a whole
// document, such as an unparseable file or an empty page tree.
type DocumentError struct {
	Path string // empty when the source is an in-memory reader
	Err  error
}

func (e *DocumentError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("document: %v", e.Err)
	}
	return fmt.Sprintf("document %s: %v", e.Path, e.Err)
}

func (e *DocumentError) Unwrap() error { return e.Err }

// PageError records a failure confined to a single page. Page numbers
// are 1-based.
type PageError struct {
	Page int
	Err  error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %d: %v", e.Page, e.Err)
}

func (e *PageError) Unwrap() error { return e.Err }
