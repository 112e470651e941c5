package scan

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/skagseth/synopsis/model"
)

// Title and heading length bounds, in runes. Title bounds are exclusive
// on both ends; heading bounds are inclusive.
const (
	titleMinRunes   = 3
	titleMaxRunes   = 100
	headingMinRunes = 3
	headingMaxRunes = 80
	h1MaxRunes      = 30
)

var (
	pureNumber     = regexp.MustCompile(`^\d+$`)
	allCapsLine    = regexp.MustCompile(`^[A-Z][A-Z\s]+$`)
	numberedLine   = regexp.MustCompile(`^\d+\.\s+[A-Z]`)
	titleCaseLine  = regexp.MustCompile(`^[A-Z][a-z]+(\s+[A-Z][a-z]+)*$`)
	numberedPrefix = regexp.MustCompile(`^\d+\.\s+`)
)

// Page furniture that OCR tends to isolate on a line of its own.
var skipWords = map[string]bool{
	"page":      true,
	"continued": true,
	"...":       true,
}

// ExtractTitle returns the first page-one line of plausible title length,
// or [model.DefaultTitle] when no line qualifies.
func ExtractTitle(lines []string) string {
	for _, line := range lines {
		n := utf8.RuneCountInString(line)
		if n > titleMinRunes && n < titleMaxRunes {
			return line
		}
	}
	return model.DefaultTitle
}

// LooksLikeHeading reports whether a recognized line reads like a
// heading: ALL CAPS, numbered ("3. Results"), or Title Case, within
// heading length bounds and not bare page furniture.
func LooksLikeHeading(line string) bool {
	if pureNumber.MatchString(line) {
		return false
	}
	n := utf8.RuneCountInString(line)
	if n < headingMinRunes || n > headingMaxRunes {
		return false
	}
	if skipWords[strings.ToLower(line)] {
		return false
	}
	return allCapsLine.MatchString(line) ||
		numberedLine.MatchString(line) ||
		titleCaseLine.MatchString(line)
}

// ClassifyLine maps a heading line to a level from its shape alone.
// Short ALL CAPS lines read as chapters, numbered lines as sections,
// everything else as subsections. The ALL CAPS test wins over the number
// prefix, so "1. INTRODUCTION" is a chapter.
func ClassifyLine(line string) model.Level {
	if isUpper(line) && utf8.RuneCountInString(line) < h1MaxRunes {
		return model.LevelH1
	}
	if numberedPrefix.MatchString(line) {
		return model.LevelH2
	}
	return model.LevelH3
}

// isUpper reports whether the line has at least one cased rune and no
// lowercase ones.
func isUpper(s string) bool {
	return s != strings.ToLower(s) && s == strings.ToUpper(s)
}
