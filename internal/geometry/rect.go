// Package geometry implements the rectangle algebra the layout engine and
// platform backends use to describe window and monitor bounds.
package geometry

// Rect is a rectangle in virtual screen pixels. New clamps negative
// dimensions to 0; Shrink does not clamp and can return a negative width or
// height, and ApplyGaps reports a non-positive result through its ok flag.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// New returns a Rect, clamping negative width/height to zero.
func New(x, y, width, height int) Rect {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Empty reports whether the rectangle has zero area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// SplitHorizontal splits r into a left and right rectangle at the given
// ratio of the width. The left child's width is floor(width*ratio); the
// right child takes the remainder so the two always sum back to r.Width.
func (r Rect) SplitHorizontal(ratio float64) (left, right Rect) {
	ratio = clampRatio(ratio)
	leftWidth := int(float64(r.Width) * ratio)
	left = Rect{X: r.X, Y: r.Y, Width: leftWidth, Height: r.Height}
	right = Rect{X: r.X + leftWidth, Y: r.Y, Width: r.Width - leftWidth, Height: r.Height}
	return left, right
}

// SplitVertical splits r into a top and bottom rectangle at the given ratio
// of the height, analogous to SplitHorizontal.
func (r Rect) SplitVertical(ratio float64) (top, bottom Rect) {
	ratio = clampRatio(ratio)
	topHeight := int(float64(r.Height) * ratio)
	top = Rect{X: r.X, Y: r.Y, Width: r.Width, Height: topHeight}
	bottom = Rect{X: r.X, Y: r.Y + topHeight, Width: r.Width, Height: r.Height - topHeight}
	return top, bottom
}

// ApplyGaps insets the rectangle by outer on every edge and then takes the
// whole inner gap off the width and the height, so the origin moves by outer
// only and the inner gap comes off the right and bottom edges. When the
// result would have a non-positive dimension, Ok is false
// and the caller should skip emitting geometry for this rectangle.
func (r Rect) ApplyGaps(inner, outer int) (out Rect, ok bool) {
	out = Rect{
		X:      r.X + outer,
		Y:      r.Y + outer,
		Width:  r.Width - 2*outer - inner,
		Height: r.Height - 2*outer - inner,
	}
	if out.Width <= 0 || out.Height <= 0 {
		return Rect{}, false
	}
	return out, true
}

// Shrink insets all four edges by n (n may be negative, see Expand).
func (r Rect) Shrink(n int) Rect {
	return Rect{
		X:      r.X + n,
		Y:      r.Y + n,
		Width:  r.Width - 2*n,
		Height: r.Height - 2*n,
	}
}

// Expand outsets all four edges by n. Expand(n) undoes Shrink(n).
func (r Rect) Expand(n int) Rect {
	return r.Shrink(-n)
}

// ContainsPoint reports whether (x, y) lies within r, with r.X/r.Y
// inclusive and the far edges exclusive.
func (r Rect) ContainsPoint(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Intersects reports whether r and other share any area.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width && other.X < r.X+r.Width &&
		r.Y < other.Y+other.Height && other.Y < r.Y+r.Height
}

// Center returns the rectangle's center point.
func (r Rect) Center() (x, y int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

func clampRatio(ratio float64) float64 {
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}
