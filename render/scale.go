package render

import (
	"image"

	"golang.org/x/image/draw"
)

// FitWithin scales img down to fit inside maxWidth by maxHeight while
// keeping its aspect ratio. Images already within the bounds come back
// unchanged. Upscaling never happens.
func FitWithin(img image.Image, maxWidth, maxHeight int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 || (w <= maxWidth && h <= maxHeight) {
		return img
	}

	// Shrink by whichever dimension overflows the most.
	rw := float64(maxWidth) / float64(w)
	rh := float64(maxHeight) / float64(h)
	ratio := rw
	if rh < rw {
		ratio = rh
	}

	dw := int(float64(w) * ratio)
	dh := int(float64(h) * ratio)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
