package render

import "math"

// Rect is an integer cell rectangle in absolute screen coordinates
type Rect struct {
	X, Y, W, H int
}

// RoundRect snaps a float box to the cell grid by rounding both edges, so
// adjacent boxes never overlap or leave gaps
func RoundRect(x, y, w, h float64) Rect {
	x0, y0 := math.Round(x), math.Round(y)
	return Rect{
		X: int(x0),
		Y: int(y0),
		W: int(math.Round(x+w) - x0),
		H: int(math.Round(y+h) - y0),
	}
}

// Empty reports whether the rect covers no cells
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether (x, y) lies inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Intersect returns the overlap of r and o
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.X+r.W, o.X+o.W)
	y1 := min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Inset shrinks r by the given edges, never below zero size
func (r Rect) Inset(top, right, bottom, left int) Rect {
	out := Rect{X: r.X + left, Y: r.Y + top, W: r.W - left - right, H: r.H - top - bottom}
	if out.W < 0 {
		out.W = 0
	}
	if out.H < 0 {
		out.H = 0
	}
	return out
}

// Translate moves r by (dx, dy)
func (r Rect) Translate(dx, dy int) Rect {
	r.X += dx
	r.Y += dy
	return r
}
