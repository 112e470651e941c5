package synopsis

import (
	"fmt"
	"strings"
)

// Warning codes reported by terminal operations.
const (
	// WarnLayoutFailed records the layout pipeline error that triggered
	// the OCR fallback.
	WarnLayoutFailed = "layout-failed"
	// WarnPageSkipped records a page the OCR pipeline could not render
	// or recognize.
	WarnPageSkipped = "page-skipped"
	// WarnOCREmpty records an OCR pass that produced no headings.
	WarnOCREmpty = "ocr-empty"
)

// Warning describes a non-fatal problem encountered during extraction:
// the outline was produced but may be incomplete.
type Warning struct {
	// Code is a stable machine-readable identifier, one of the Warn
	// constants.
	Code string
	// Message is a human-readable description.
	Message string
	// Page is the 1-based page the warning concerns, or 0 when the
	// warning applies to the whole document.
	Page int
}

// FormatWarnings renders warnings as a human-readable string, one
// warning per line.
//
// Example:
//
//	outline, warnings, err := synopsis.Open("document.pdf").Outline()
//	if len(warnings) > 0 {
//	    log.Println(synopsis.FormatWarnings(warnings))
//	}
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}

	var b strings.Builder
	for i, w := range warnings {
		if i > 0 {
			b.WriteByte('\n')
		}
		if w.Page > 0 {
			fmt.Fprintf(&b, "[%s] page %d: %s", w.Code, w.Page, w.Message)
		} else {
			fmt.Fprintf(&b, "[%s] %s", w.Code, w.Message)
		}
	}
	return b.String()
}
