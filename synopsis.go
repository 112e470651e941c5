// Package synopsis infers a document outline (title plus H1/H2/H3
// headings with page numbers) from PDF files.
//
// Basic usage:
//
//	outline, warnings, err := synopsis.Open("report.pdf").Outline()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", synopsis.FormatWarnings(warnings))
//	}
//
// With options:
//
//	outline, _, err := synopsis.Open("scan.pdf").
//	    WithMethod(synopsis.MethodOCR).
//	    WithOCRLanguage("eng+deu").
//	    Outline()
//
// The default method, MethodAuto, reads the embedded text layer through
// the reader and layout packages and falls back to rasterizing and
// recognizing pages (the render and scan packages) when that fails.
// The fallback needs a binary built with the ocr tag; without it the
// layout pipeline still works and the fallback reports that OCR support
// is not enabled.
package synopsis

import (
	"io"

	"github.com/skagseth/synopsis/model"
)

// Open prepares an Extractor for the PDF at filename. Opening the file
// is deferred to the terminal operation, so errors for a bad path
// surface there.
//
// Example:
//
//	outline, warnings, err := synopsis.Open("document.pdf").Outline()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromReader prepares an Extractor over in-memory document data. The
// OCR pipeline rasterizes from a file on disk, so FromReader chains
// support only the layout pipeline unless a renderer is injected with
// WithRenderer; MethodOCR without one fails with ErrNeedsFile.
//
// Example:
//
//	data, _ := os.ReadFile("document.pdf")
//	outline, _, err := synopsis.FromReader(bytes.NewReader(data), int64(len(data))).Outline()
func FromReader(ra io.ReaderAt, size int64) *Extractor {
	return &Extractor{
		source:     ra,
		sourceSize: size,
		options:    defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := synopsis.Must(synopsis.Open("document.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustOutline wraps a call to Outline and panics if the error is
// non-nil. It discards warnings and returns just the outline.
//
// Example:
//
//	outline := synopsis.MustOutline(synopsis.Open("document.pdf").Outline())
func MustOutline(o model.Outline, _ []Warning, err error) model.Outline {
	if err != nil {
		panic(err)
	}
	return o
}
