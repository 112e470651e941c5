package model

import (
	"bytes"
	"encoding/json"
)

// DefaultTitle is the fallback title when no extraction strategy finds a
// real one.
const DefaultTitle = "Untitled Document"

// Level identifies the depth of a heading in the document hierarchy.
type Level string

const (
	LevelH1 Level = "H1"
	LevelH2 Level = "H2"
	LevelH3 Level = "H3"
)

// Rank returns the numeric depth of the level (H1=1, H2=2, H3=3).
// Unknown levels rank below H3.
func (l Level) Rank() int {
	switch l {
	case LevelH1:
		return 1
	case LevelH2:
		return 2
	case LevelH3:
		return 3
	default:
		return 4
	}
}

// Heading is a single outline entry. Page numbers are 1-based.
type Heading struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// Outline is the extracted document structure: a title and the ordered
// list of headings. How the list is ordered depends on the extraction
// strategy that produced it; see the layout and scan packages.
type Outline struct {
	Title    string    `json:"title"`
	Headings []Heading `json:"outline"`
}

// MarshalJSON guarantees the outline field serializes as [] rather than
// null when no headings were found, and leaves text literal (no HTML
// escaping, non-ASCII runes untouched).
func (o Outline) MarshalJSON() ([]byte, error) {
	headings := o.Headings
	if headings == nil {
		headings = []Heading{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	err := enc.Encode(struct {
		Title    string    `json:"title"`
		Headings []Heading `json:"outline"`
	}{Title: o.Title, Headings: headings})
	if err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Len returns the number of headings in the outline.
func (o Outline) Len() int {
	return len(o.Headings)
}
