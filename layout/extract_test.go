package layout

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jung-kurt/gofpdf"

	"github.com/skagseth/synopsis/model"
	"github.com/skagseth/synopsis/reader"
)

// emptyPDF is structurally valid but has a zero-page tree.
const emptyPDF = `%PDF-1.4
1 0 obj
<< /Type /Catalog /Pages 2 0 R >>
endobj
2 0 obj
<< /Type /Pages /Kids [] /Count 0 >>
endobj
xref
0 3
0000000000 65535 f
0000000009 00000 n
0000000058 00000 n
trailer
<< /Size 3 /Root 1 0 R >>
startxref
110
%%EOF`

func writeGuideFixture(t *testing.T) string {
	t.Helper()

	doc := gofpdf.New("P", "pt", "Letter", "")

	doc.AddPage()
	doc.SetFont("Helvetica", "B", 20)
	doc.CellFormat(0, 24, "User Guide", "", 1, "C", false, 0, "")
	doc.Ln(12)
	doc.SetFont("Helvetica", "", 10)
	doc.MultiCell(0, 14, "Opening paragraph with ordinary body text.", "", "L", false)

	doc.AddPage()
	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(0, 20, "Introduction", "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.MultiCell(0, 14, "Body text for the introduction section.", "", "L", false)
	doc.Ln(8)
	doc.SetFont("Helvetica", "B", 13)
	doc.CellFormat(0, 18, "Background", "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.MultiCell(0, 14, "More body text.", "", "L", false)

	doc.AddPage()
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(0, 16, "Details", "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.MultiCell(0, 14, "Closing body text.", "", "L", false)

	path := filepath.Join(t.TempDir(), "guide.pdf")
	if err := doc.OutputFileAndClose(path); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestExtract(t *testing.T) {
	r, err := reader.Open(writeGuideFixture(t))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer r.Close()

	outline, err := Extract(r)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}

	if outline.Title != "User Guide" {
		t.Errorf("title = %q, want %q", outline.Title, "User Guide")
	}

	want := []model.Heading{
		{Level: model.LevelH1, Text: "User Guide", Page: 1},
		{Level: model.LevelH2, Text: "Introduction", Page: 2},
		{Level: model.LevelH3, Text: "Background", Page: 2},
		{Level: model.LevelH3, Text: "Details", Page: 3},
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

// A document with no styled text still gets the fallback title and an
// empty heading list, not an error.
func TestExtractPlainDocument(t *testing.T) {
	doc := gofpdf.New("P", "pt", "Letter", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "", 10)
	doc.MultiCell(0, 14, "Just a page of ordinary prose with nothing standing out.", "", "L", false)

	path := filepath.Join(t.TempDir(), "plain.pdf")
	if err := doc.OutputFileAndClose(path); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	r, err := reader.Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer r.Close()

	outline, err := Extract(r)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if outline.Title != model.DefaultTitle {
		t.Errorf("title = %q, want %q", outline.Title, model.DefaultTitle)
	}
	if len(outline.Headings) != 0 {
		t.Errorf("headings = %+v, want none", outline.Headings)
	}
}

func TestExtractZeroPages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	if err := os.WriteFile(path, []byte(emptyPDF), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	r, err := reader.Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer r.Close()

	_, err = Extract(r)
	if err == nil {
		t.Fatal("Extract() expected error for zero-page document")
	}
	if !errors.Is(err, model.ErrNoPages) {
		t.Errorf("Extract() error = %v, want ErrNoPages", err)
	}
	var docErr *model.DocumentError
	if !errors.As(err, &docErr) {
		t.Errorf("Extract() error = %T, want *model.DocumentError", err)
	}
}
