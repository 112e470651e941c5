// Package render rasterizes PDF pages to images for text recognition.
//
// The real implementation binds MuPDF through go-fitz, which needs cgo
// and the MuPDF library; it compiles only with the ocr build tag. Default
// builds get a stub whose Open fails with [ErrRenderNotEnabled], keeping
// the module pure Go unless scanned-document support is wanted:
//
//	go build -tags ocr
//
// [FitWithin] is built unconditionally and can be used on any image.
package render

import "errors"

// ErrRenderNotEnabled is returned by Open in builds without the ocr tag.
var ErrRenderNotEnabled = errors.New("render: page rendering requires build tag 'ocr' and the MuPDF library")

// baseDPI is the resolution at which one PDF point maps to one pixel.
// The render scale multiplies it.
const baseDPI = 72.0

// DefaultScale doubles the base resolution, enough for recognizing
// ordinary print sizes.
const DefaultScale = 2.0

// maxRenderDim caps the longer side of a rendered page. MuPDF will
// happily produce gigapixel bitmaps for poster-sized pages; recognition
// gains nothing past this size and memory is bounded by it.
const maxRenderDim = 5000
