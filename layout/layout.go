package layout

import (
	"strings"

	"github.com/skagseth/synopsis/model"
)

// Style thresholds. Title spans must exceed titleMinSize points; heading
// candidates need at least candidateMinSize points and a rune count
// within [minHeadingRunes, maxHeadingRunes].
const (
	titleMinSize     = 14.0
	candidateMinSize = 10.0
	minHeadingRunes  = 3
	maxHeadingRunes  = 100
)

// ExtractTitle picks the document title from the first page's spans: the
// largest span that is bold, centered and over titleMinSize points. Ties
// on size go to the span encountered first. Returns [model.DefaultTitle]
// when nothing qualifies.
func ExtractTitle(spans []model.Span, pageWidth float64) string {
	title := model.DefaultTitle
	best := 0.0
	for _, s := range spans {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		if s.FontSize <= titleMinSize || !s.Bold || !s.Centered(pageWidth) {
			continue
		}
		if s.FontSize > best {
			best = s.FontSize
			title = text
		}
	}
	return title
}

// FilterCandidates keeps the spans that could plausibly be headings:
// big enough, styled (bold or centered), and neither fragment-short nor
// paragraph-long. Candidate text is trimmed of surrounding whitespace.
func FilterCandidates(spans []model.Span, pageWidth float64) []model.Candidate {
	var candidates []model.Candidate
	for _, s := range spans {
		text := strings.TrimSpace(s.Text)
		n := len([]rune(text))
		if n < minHeadingRunes || n > maxHeadingRunes {
			continue
		}
		if s.FontSize < candidateMinSize {
			continue
		}
		centered := s.Centered(pageWidth)
		if !s.Bold && !centered {
			continue
		}
		candidates = append(candidates, model.Candidate{
			Text:     text,
			Page:     s.Page,
			FontSize: s.FontSize,
			Bold:     s.Bold,
			Centered: centered,
		})
	}
	return candidates
}
