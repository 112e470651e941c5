package layout

import (
	"sort"

	"github.com/skagseth/synopsis/model"
)

// Cutpoints on the normalized font size range. Sizes in the top 30% of
// the range read as H1, the next 30% as H2, the rest as H3.
const (
	h1Cut = 0.7
	h2Cut = 0.4
)

// Classify assigns a heading level to every candidate by where its font
// size falls between the smallest and largest candidate size, then orders
// the result by page and level. When every candidate shares one size,
// style decides instead: bold and centered reads as H1, bold alone as H2,
// anything else as H3.
func Classify(candidates []model.Candidate) []model.Heading {
	if len(candidates) == 0 {
		return nil
	}

	// Largest sizes first. After the final ordering pass this keeps the
	// most prominent text ahead of its same-level neighbors on a page.
	ordered := make([]model.Candidate, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].FontSize > ordered[j].FontSize
	})

	maxSize := ordered[0].FontSize
	minSize := ordered[len(ordered)-1].FontSize

	headings := make([]model.Heading, 0, len(ordered))
	for _, c := range ordered {
		headings = append(headings, model.Heading{
			Level: level(c, minSize, maxSize),
			Text:  c.Text,
			Page:  c.Page,
		})
	}

	sort.SliceStable(headings, func(i, j int) bool {
		if headings[i].Page != headings[j].Page {
			return headings[i].Page < headings[j].Page
		}
		return headings[i].Level.Rank() < headings[j].Level.Rank()
	})
	return headings
}

func level(c model.Candidate, minSize, maxSize float64) model.Level {
	if maxSize == minSize {
		switch {
		case c.Bold && c.Centered:
			return model.LevelH1
		case c.Bold:
			return model.LevelH2
		default:
			return model.LevelH3
		}
	}
	normalized := (c.FontSize - minSize) / (maxSize - minSize)
	switch {
	case normalized > h1Cut:
		return model.LevelH1
	case normalized > h2Cut:
		return model.LevelH2
	default:
		return model.LevelH3
	}
}
