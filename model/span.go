package model

import "strings"

// Span is a contiguous run of page text with uniform style, as produced
// by the PDF reader. It is the input unit for layout analysis.
type Span struct {
	Text     string
	FontName string
	FontSize float64
	Bold     bool
	Page     int // 1-based
	BBox     BBox
}

// Centered reports whether the span's horizontal center lies within 10%
// of the page's horizontal center.
func (s Span) Centered(pageWidth float64) bool {
	if pageWidth <= 0 {
		return false
	}
	offset := s.BBox.Center().X - pageWidth/2
	if offset < 0 {
		offset = -offset
	}
	return offset < 0.1*pageWidth
}

// Candidate is a span that survived heading-candidate filtering, carrying
// only the properties the classifier needs.
type Candidate struct {
	Text     string
	Page     int
	FontSize float64
	Bold     bool
	Centered bool
}

// BoldFontName reports whether a font name indicates a bold face.
// PDF producers encode weight in the base font name ("Helvetica-Bold",
// "ABCDEF+TimesNewRoman,Bold").
func BoldFontName(name string) bool {
	return strings.Contains(strings.ToLower(name), "bold")
}
