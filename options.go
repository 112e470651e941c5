package synopsis

import (
	"time"

	"github.com/skagseth/synopsis/ocr"
	"github.com/skagseth/synopsis/render"
	"github.com/skagseth/synopsis/scan"
)

// extractOptions holds configuration for outline extraction.
type extractOptions struct {
	method      Method
	ocrLanguage string
	renderScale float64
	pageTimeout time.Duration

	// Injected pipeline stages. Nil means build the defaults at the
	// terminal operation: a MuPDF renderer over the input file and a
	// Tesseract recognizer.
	renderer   scan.PageRenderer
	recognizer scan.Recognizer
}

// defaultOptions returns the default extraction options.
func defaultOptions() extractOptions {
	return extractOptions{
		method:      MethodAuto,
		ocrLanguage: ocr.DefaultLanguage,
		renderScale: render.DefaultScale,
		pageTimeout: 0, // no per-page bound
	}
}
