package synopsis

import (
	"fmt"
	"strings"
)

// Method selects the extraction pipeline.
type Method int

const (
	// MethodAuto tries the layout pipeline first and falls back to OCR
	// when layout extraction fails.
	MethodAuto Method = iota
	// MethodLayout reads the embedded text layer only.
	MethodLayout
	// MethodOCR rasterizes pages and recognizes their text, ignoring
	// any embedded text layer.
	MethodOCR
)

// String returns the method name as accepted by ParseMethod.
func (m Method) String() string {
	switch m {
	case MethodAuto:
		return "auto"
	case MethodLayout:
		return "layout"
	case MethodOCR:
		return "ocr"
	default:
		return "unknown"
	}
}

// ParseMethod converts a method name to a Method. Matching is
// case-insensitive; the empty string means MethodAuto.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return MethodAuto, nil
	case "layout":
		return MethodLayout, nil
	case "ocr":
		return MethodOCR, nil
	default:
		return MethodAuto, fmt.Errorf("unknown extraction method %q", s)
	}
}
