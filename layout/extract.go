package layout

import (
	"github.com/skagseth/synopsis/model"
	"github.com/skagseth/synopsis/reader"
)

// Extract runs layout analysis over every page of an open document and
// assembles the outline. The title comes from the first page; heading
// candidates come from all pages, each tested against its own page width.
// Any page that fails to parse aborts the whole pass, since a partial
// text layer cannot be told apart from a missing one.
func Extract(r *reader.Reader) (model.Outline, error) {
	count := r.PageCount()
	if count == 0 {
		return model.Outline{}, &model.DocumentError{Err: model.ErrNoPages}
	}

	var title string
	var candidates []model.Candidate

	for number := 1; number <= count; number++ {
		page, err := r.Page(number)
		if err != nil {
			return model.Outline{}, err
		}
		if number == 1 {
			title = ExtractTitle(page.Spans, page.Width)
		}
		candidates = append(candidates, FilterCandidates(page.Spans, page.Width)...)
	}

	return model.Outline{Title: title, Headings: Classify(candidates)}, nil
}
