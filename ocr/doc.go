// Package ocr recognizes text in rendered page images using the
// Tesseract engine.
//
// The real implementation binds Tesseract through gosseract, which
// requires cgo and an installed Tesseract library, so it compiles only
// when the ocr build tag is set:
//
//	go build -tags ocr
//
// Without the tag a stub takes its place whose New always returns
// ErrOCRNotEnabled, keeping the package importable in pure Go builds.
//
// Install Tesseract on macOS with brew install tesseract, on
// Debian/Ubuntu with apt-get install tesseract-ocr libtesseract-dev.
package ocr

import "errors"

// ErrOCRNotEnabled is returned when recognition is requested from a
// build without the ocr tag.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// DefaultLanguage is the Tesseract language pack used when Config
// leaves Language empty.
const DefaultLanguage = "eng"

// Config holds recognition settings.
type Config struct {
	// Language selects Tesseract language packs. Multiple packs join
	// with "+", such as "eng+deu".
	Language string
}
