package model

import "math"

// Point is a position in PDF user space, in points.
type Point struct {
	X, Y float64
}

// BBox is an axis-aligned bounding box in PDF user space. X and Y locate
// the lower-left corner; PDF's origin is the bottom-left of the page.
type BBox struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// NewBBox builds a box from its lower-left corner and extent.
func NewBBox(x, y, width, height float64) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// Bottom returns the baseline edge of the box.
func (b BBox) Bottom() float64 {
	return b.Y
}

// Center returns the box midpoint.
func (b BBox) Center() Point {
	return Point{X: b.X + b.Width/2, Y: b.Y + b.Height/2}
}

// Union returns the smallest box covering both b and other.
func (b BBox) Union(other BBox) BBox {
	x := math.Min(b.X, other.X)
	y := math.Min(b.Y, other.Y)
	right := math.Max(b.X+b.Width, other.X+other.Width)
	top := math.Max(b.Y+b.Height, other.Y+other.Height)
	return BBox{X: x, Y: y, Width: right - x, Height: top - y}
}
