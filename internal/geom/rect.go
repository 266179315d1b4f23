package geom

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// R is shorthand for Rect{X: x, Y: y, W: w, H: h}.
func R(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Contains reports whether p lies inside r. The left and top edges are
// inclusive, the right and bottom edges exclusive.
func (r Rect) Contains(p Vec) bool {
	return r.X <= p.X && p.X < r.Right() && r.Y <= p.Y && p.Y < r.Bottom()
}

// Inflate grows r by dx on the left and right and by dy on the top and bottom.
func (r Rect) Inflate(dx, dy float64) Rect {
	return Rect{X: r.X - dx, Y: r.Y - dy, W: r.W + 2*dx, H: r.H + 2*dy}
}

// Intersects reports whether r and o share any interior area.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Corners returns the top-left, top-right, bottom-left and bottom-right
// corners.
func (r Rect) Corners() [4]Vec {
	return [4]Vec{
		V(r.X, r.Y),
		V(r.Right(), r.Y),
		V(r.X, r.Bottom()),
		V(r.Right(), r.Bottom()),
	}
}

// Center returns the midpoint of r.
func (r Rect) Center() Vec {
	return V(r.X+r.W/2, r.Y+r.H/2)
}
