//go:build !ocr

package render

import (
	"context"
	"image"
)

// Document is a placeholder in builds without the ocr tag.
type Document struct{}

// Open always fails in this build; rebuild with -tags ocr for scanned
// document support.
func Open(path string, scale float64) (*Document, error) {
	return nil, ErrRenderNotEnabled
}

// PageCount returns 0 in this build.
func (d *Document) PageCount() int { return 0 }

// Render always fails in this build.
func (d *Document) Render(ctx context.Context, page int) (image.Image, error) {
	return nil, ErrRenderNotEnabled
}

// Close is a no-op in this build.
func (d *Document) Close() error { return nil }
