package scan

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"github.com/skagseth/synopsis/model"
)

// fakeRenderer serves a fixed number of pages, with optional per-page
// failures and delays.
type fakeRenderer struct {
	pages int
	fail  map[int]error
	delay map[int]time.Duration
}

func (f *fakeRenderer) PageCount() int { return f.pages }

func (f *fakeRenderer) Render(ctx context.Context, page int) (image.Image, error) {
	if err := f.fail[page]; err != nil {
		return nil, err
	}
	if d := f.delay[page]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return image.NewGray(image.Rect(0, 0, 8, 8)), nil
}

// fakeRecognizer returns canned page texts in recognition order.
type fakeRecognizer struct {
	texts []string
	next  int
}

func (f *fakeRecognizer) Name() string { return "fake" }

func (f *fakeRecognizer) Recognize(ctx context.Context, img image.Image) (string, error) {
	if f.next >= len(f.texts) {
		return "", nil
	}
	text := f.texts[f.next]
	f.next++
	return text, nil
}

type errRecognizer struct{}

func (errRecognizer) Name() string { return "err" }

func (errRecognizer) Recognize(context.Context, image.Image) (string, error) {
	return "", errors.New("model unavailable")
}

func TestExtract(t *testing.T) {
	doc := &fakeRenderer{pages: 2}
	rec := &fakeRecognizer{texts: []string{
		"ANNUAL REPORT\nThe Institute\n42\nsome body text in lowercase\n",
		"1. Overview\nanother plain sentence here\nMETHODS AND RESULTS\n",
	}}

	outline, pageErrs, err := Extract(context.Background(), doc, rec, Options{})
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if len(pageErrs) != 0 {
		t.Fatalf("Extract() page errors: %v", pageErrs)
	}

	if outline.Title != "ANNUAL REPORT" {
		t.Errorf("title = %q, want %q", outline.Title, "ANNUAL REPORT")
	}

	want := []model.Heading{
		{Level: model.LevelH1, Text: "ANNUAL REPORT", Page: 1},
		{Level: model.LevelH3, Text: "The Institute", Page: 1},
		{Level: model.LevelH2, Text: "1. Overview", Page: 2},
		{Level: model.LevelH1, Text: "METHODS AND RESULTS", Page: 2},
	}
	if len(outline.Headings) != len(want) {
		t.Fatalf("got %d headings %+v, want %d", len(outline.Headings), outline.Headings, len(want))
	}
	for i := range want {
		if outline.Headings[i] != want[i] {
			t.Errorf("headings[%d] = %+v, want %+v", i, outline.Headings[i], want[i])
		}
	}
}

// Scan output keeps recognition encounter order; it is not re-sorted by
// level the way layout output is.
func TestExtractEncounterOrder(t *testing.T) {
	doc := &fakeRenderer{pages: 1}
	rec := &fakeRecognizer{texts: []string{"Minor Heading\nMAJOR SECTION\n"}}

	outline, _, err := Extract(context.Background(), doc, rec, Options{})
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}

	if len(outline.Headings) != 2 {
		t.Fatalf("got %d headings, want 2", len(outline.Headings))
	}
	if outline.Headings[0].Level != model.LevelH3 || outline.Headings[1].Level != model.LevelH1 {
		t.Errorf("headings re-ordered: %+v", outline.Headings)
	}
}

func TestExtractSkipsFailedPages(t *testing.T) {
	errDamaged := errors.New("damaged page")
	doc := &fakeRenderer{pages: 3, fail: map[int]error{2: errDamaged}}
	rec := &fakeRecognizer{texts: []string{"FIRST PAGE\n", "THIRD PAGE\n"}}

	outline, pageErrs, err := Extract(context.Background(), doc, rec, Options{})
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}

	if len(pageErrs) != 1 {
		t.Fatalf("got %d page errors %v, want 1", len(pageErrs), pageErrs)
	}
	if pageErrs[0].Page != 2 {
		t.Errorf("failed page = %d, want 2", pageErrs[0].Page)
	}
	if !errors.Is(pageErrs[0].Err, errDamaged) {
		t.Errorf("page error = %v, want wrapped %v", pageErrs[0].Err, errDamaged)
	}

	want := []model.Heading{
		{Level: model.LevelH1, Text: "FIRST PAGE", Page: 1},
		{Level: model.LevelH1, Text: "THIRD PAGE", Page: 3},
	}
	if len(outline.Headings) != len(want) {
		t.Fatalf("got %d headings %+v, want %d", len(outline.Headings), outline.Headings, len(want))
	}
	for i := range want {
		if outline.Headings[i] != want[i] {
			t.Errorf("headings[%d] = %+v, want %+v", i, outline.Headings[i], want[i])
		}
	}
}

func TestExtractRecognizeFailure(t *testing.T) {
	doc := &fakeRenderer{pages: 1}

	outline, pageErrs, err := Extract(context.Background(), doc, errRecognizer{}, Options{})
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if len(pageErrs) != 1 || pageErrs[0].Page != 1 {
		t.Fatalf("page errors = %v, want one for page 1", pageErrs)
	}
	if outline.Title != model.DefaultTitle {
		t.Errorf("title = %q, want fallback", outline.Title)
	}
	if len(outline.Headings) != 0 {
		t.Errorf("headings = %+v, want none", outline.Headings)
	}
}

func TestExtractZeroPages(t *testing.T) {
	_, _, err := Extract(context.Background(), &fakeRenderer{pages: 0}, &fakeRecognizer{}, Options{})
	if !errors.Is(err, model.ErrNoPages) {
		t.Errorf("Extract() error = %v, want ErrNoPages", err)
	}
}

func TestExtractPageTimeout(t *testing.T) {
	doc := &fakeRenderer{
		pages: 2,
		delay: map[int]time.Duration{1: 250 * time.Millisecond},
	}
	rec := &fakeRecognizer{texts: []string{"SECOND PAGE\n"}}

	outline, pageErrs, err := Extract(context.Background(), doc, rec, Options{
		PageTimeout: 20 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}

	if len(pageErrs) != 1 || pageErrs[0].Page != 1 {
		t.Fatalf("page errors = %v, want one for page 1", pageErrs)
	}
	if !errors.Is(pageErrs[0].Err, context.DeadlineExceeded) {
		t.Errorf("page error = %v, want deadline exceeded", pageErrs[0].Err)
	}
	if len(outline.Headings) != 1 || outline.Headings[0].Page != 2 {
		t.Errorf("headings = %+v, want one from page 2", outline.Headings)
	}
}

func TestExtractCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := Extract(ctx, &fakeRenderer{pages: 2}, &fakeRecognizer{}, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Extract() error = %v, want context.Canceled", err)
	}
}

// OCR engines emit decomposed accents for some scripts; lines must come
// back NFC-composed.
func TestExtractNormalizesLines(t *testing.T) {
	doc := &fakeRenderer{pages: 1}
	rec := &fakeRecognizer{texts: []string{"Exposé Report\n\n  \n"}}

	outline, _, err := Extract(context.Background(), doc, rec, Options{})
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if outline.Title != "Exposé Report" {
		t.Errorf("title = %q, want composed %q", outline.Title, "Exposé Report")
	}
}
