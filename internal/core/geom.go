// Package core provides fundamental types and utilities for the game host.
// It contains no Bubble Tea imports, keeping game logic pure and testable.
package core

import "math"

// Rect represents an axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Viewport projects world coordinates onto screen cells. Cells are
// roughly twice as tall as wide, so ScaleY is usually twice ScaleX.
type Viewport struct {
	OriginX, OriginY float64 // world point drawn at Offset
	ScaleX, ScaleY   float64 // world units per cell
	Offset           Rect    // screen area the world is drawn into
}

// FitViewport maps the world rectangle (x, y, w, h) into area, keeping the
// given cell aspect (cell height / cell width) so shapes are not squashed.
func FitViewport(x, y, w, h float64, area Rect, aspect float64) Viewport {
	if aspect <= 0 {
		aspect = 2
	}
	sx := w / float64(max(area.W, 1))
	sy := h / float64(max(area.H, 1))
	// One scale for both axes, in world units per cell width.
	s := math.Max(sx, sy/aspect)
	return Viewport{
		OriginX: x,
		OriginY: y,
		ScaleX:  s,
		ScaleY:  s * aspect,
		Offset:  area,
	}
}

// Project returns the cell containing world point (x, y).
func (v Viewport) Project(x, y float64) (int, int) {
	cx := int(math.Floor((x - v.OriginX) / v.ScaleX))
	cy := int(math.Floor((y - v.OriginY) / v.ScaleY))
	return v.Offset.X + cx, v.Offset.Y + cy
}

// ProjectRect returns the cells covered by the world rectangle, at least
// one cell in each direction.
func (v Viewport) ProjectRect(x, y, w, h float64) Rect {
	x0, y0 := v.Project(x, y)
	x1, y1 := v.Project(x+w, y+h)
	return Rect{X: x0, Y: y0, W: max(x1-x0, 1), H: max(y1-y0, 1)}
}

// Visible reports whether the cell lies inside the viewport area.
func (v Viewport) Visible(cx, cy int) bool {
	return v.Offset.Contains(cx, cy)
}
