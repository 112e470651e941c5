package scan

import (
	"context"
	"fmt"
	"image"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/skagseth/synopsis/model"
)

// PageRenderer rasterizes document pages. Page numbers are 1-based.
type PageRenderer interface {
	PageCount() int
	Render(ctx context.Context, page int) (image.Image, error)
}

// Recognizer turns a rendered page image into text.
type Recognizer interface {
	// Name identifies the recognition engine, for logs and diagnostics.
	Name() string
	Recognize(ctx context.Context, img image.Image) (string, error)
}

// Options tunes a scan pass.
type Options struct {
	// PageTimeout bounds the combined render and recognize time for a
	// single page. Zero means no per-page deadline.
	PageTimeout time.Duration
}

// Extract renders and recognizes every page, collecting title and
// headings. Pages that fail to render or recognize are skipped and
// reported in the returned page errors; the pass only fails outright
// when the document has no pages or the context ends.
func Extract(ctx context.Context, doc PageRenderer, rec Recognizer, opts Options) (model.Outline, []model.PageError, error) {
	count := doc.PageCount()
	if count == 0 {
		return model.Outline{}, nil, &model.DocumentError{Err: model.ErrNoPages}
	}

	title := model.DefaultTitle
	var headings []model.Heading
	var pageErrs []model.PageError

	for number := 1; number <= count; number++ {
		if err := ctx.Err(); err != nil {
			return model.Outline{}, pageErrs, err
		}

		text, err := recognizePage(ctx, doc, rec, number, opts.PageTimeout)
		if err != nil {
			pageErrs = append(pageErrs, model.PageError{Page: number, Err: err})
			continue
		}

		lines := splitLines(text)
		if number == 1 {
			title = ExtractTitle(lines)
		}
		for _, line := range lines {
			if LooksLikeHeading(line) {
				headings = append(headings, model.Heading{
					Level: ClassifyLine(line),
					Text:  line,
					Page:  number,
				})
			}
		}
	}

	return model.Outline{Title: title, Headings: headings}, pageErrs, nil
}

func recognizePage(ctx context.Context, doc PageRenderer, rec Recognizer, page int, timeout time.Duration) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	img, err := doc.Render(ctx, page)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	text, err := rec.Recognize(ctx, img)
	if err != nil {
		return "", fmt.Errorf("recognize: %w", err)
	}
	return text, nil
}

// splitLines breaks recognized text into trimmed, NFC-normalized lines,
// dropping empty ones. Normalization keeps decomposed accents from OCR
// output from defeating string comparisons downstream.
func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(norm.NFC.String(line))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
