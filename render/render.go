//go:build ocr

package render

import (
	"context"
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// Document rasterizes the pages of a PDF through MuPDF.
type Document struct {
	doc   *fitz.Document
	scale float64
	pages int
}

// Open loads a document for rendering. A scale of 1 rasterizes at 72
// DPI; zero or negative selects [DefaultScale].
func Open(path string, scale float64) (*Document, error) {
	if scale <= 0 {
		scale = DefaultScale
	}
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	return &Document{doc: doc, scale: scale, pages: doc.NumPage()}, nil
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int { return d.pages }

// Render rasterizes the given 1-based page. The context is checked
// before rendering starts; MuPDF itself cannot be interrupted midway.
func (d *Document) Render(ctx context.Context, page int) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if page < 1 || page > d.pages {
		return nil, fmt.Errorf("page %d out of range (document has %d)", page, d.pages)
	}
	img, err := d.doc.ImageDPI(page-1, baseDPI*d.scale)
	if err != nil {
		return nil, fmt.Errorf("render page %d: %w", page, err)
	}
	return FitWithin(img, maxRenderDim, maxRenderDim), nil
}

// Close releases the MuPDF document.
func (d *Document) Close() error { return d.doc.Close() }
