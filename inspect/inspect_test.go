package inspect

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
)

func writeTextFixture(t *testing.T, pages int) string {
	t.Helper()

	doc := gofpdf.New("P", "pt", "Letter", "")
	for i := 0; i < pages; i++ {
		doc.AddPage()
		doc.SetFont("Helvetica", "", 12)
		doc.MultiCell(0, 16, "Plain page text.", "", "L", false)
	}

	path := filepath.Join(t.TempDir(), "text.pdf")
	if err := doc.OutputFileAndClose(path); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func writeImageFixture(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 128, A: 255})
		}
	}
	imgPath := filepath.Join(dir, "block.png")
	f, err := os.Create(imgPath)
	if err != nil {
		t.Fatalf("failed to create image: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close image: %v", err)
	}

	doc := gofpdf.New("P", "pt", "Letter", "")
	doc.AddPage()
	doc.ImageOptions(imgPath, 72, 72, 144, 144, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	path := filepath.Join(dir, "image.pdf")
	if err := doc.OutputFileAndClose(path); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestFile(t *testing.T) {
	info, err := File(writeTextFixture(t, 3))
	if err != nil {
		t.Fatalf("File() error: %v", err)
	}

	if info.PageCount != 3 {
		t.Errorf("PageCount = %d, want 3", info.PageCount)
	}
	if info.PageWidth < 611.9 || info.PageWidth > 612.1 {
		t.Errorf("PageWidth = %v, want 612", info.PageWidth)
	}
	if info.PageHeight < 791.9 || info.PageHeight > 792.1 {
		t.Errorf("PageHeight = %v, want 792", info.PageHeight)
	}
	if info.Encrypted {
		t.Error("Encrypted = true for a plain document")
	}
	if info.HasImages {
		t.Error("HasImages = true for a text-only document")
	}
	if info.FileSize <= 0 {
		t.Errorf("FileSize = %d, want > 0", info.FileSize)
	}
	if info.Version == "" {
		t.Error("Version is empty")
	}
}

func TestFileMissing(t *testing.T) {
	if _, err := File("nonexistent.pdf"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReader(t *testing.T) {
	data, err := os.ReadFile(writeTextFixture(t, 1))
	if err != nil {
		t.Fatalf("failed to read fixture: %v", err)
	}

	info, err := Reader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Reader() error: %v", err)
	}
	if info.PageCount != 1 {
		t.Errorf("PageCount = %d, want 1", info.PageCount)
	}
	if info.FileSize != 0 {
		t.Errorf("FileSize = %d, want 0 for stream input", info.FileSize)
	}
}

func TestReaderGarbage(t *testing.T) {
	_, err := Reader(bytes.NewReader([]byte("not a pdf")))
	if err == nil {
		t.Fatal("expected error for non-PDF data")
	}
	if !strings.Contains(err.Error(), "pdfcpu") {
		t.Errorf("error %q should mention the parser", err)
	}
}

func TestHasImages(t *testing.T) {
	info, err := File(writeImageFixture(t))
	if err != nil {
		t.Fatalf("File() error: %v", err)
	}
	if !info.HasImages {
		t.Error("HasImages = false for a document with an embedded image")
	}
}
