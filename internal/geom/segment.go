package geom

import "fmt"

// Segment is an immutable line segment from Start to End.
type Segment struct {
	Start Vec
	End   Vec
}

// Seg builds a segment from raw coordinates.
func Seg(x1, y1, x2, y2 float64) Segment {
	return Segment{Start: V(x1, y1), End: V(x2, y2)}
}

// Degenerate reports whether the segment has zero length.
func (s Segment) Degenerate() bool {
	return s.Start == s.End
}

// Direction returns the unit vector from Start to End, or the zero vector
// for a degenerate segment.
func (s Segment) Direction() Vec {
	return s.End.Sub(s.Start).Unit()
}

// DirectedNormal returns the perpendicular n with det(direction, n) < 0.
// In screen coordinates a segment running left to right gets (0, -1).
func (s Segment) DirectedNormal() Vec {
	dir := s.Direction()
	normal := dir.Perp()
	if Determinant(dir, normal) < 0 {
		return normal
	}
	return normal.Neg()
}

// Intersects reports whether s and other intersect.
func (s Segment) Intersects(other Segment) bool {
	return SegmentsIntersectPP(s.Start, s.End, other.Start, other.End, ColinearTolerance)
}

// FindIntersection returns the intersection of s and other.
func (s Segment) FindIntersection(other Segment) (Vec, bool) {
	return IntersectSegmentsPP(s.Start, s.End, other.Start, other.End, ColinearTolerance)
}

// ClosestPoint returns the point of s nearest to center. atEnd is true when
// the perpendicular projection of center falls outside the segment and the
// result was clamped to the nearer endpoint; degenerate segments always
// return Start with atEnd set.
func (s Segment) ClosestPoint(center Vec) (p Vec, atEnd bool) {
	if s.Degenerate() {
		return s.Start, true
	}
	dir := s.Direction()
	closest, ok := IntersectLinesPD(s.Start, dir, center, dir.Perp())
	if !ok {
		return s.Start, true
	}
	if closest.Sub(s.Start).Dot(dir) >= 0 && closest.Sub(s.End).Dot(dir.Neg()) >= 0 {
		return closest, false
	}
	if DistSq(center, s.Start) < DistSq(center, s.End) {
		return s.Start, true
	}
	return s.End, true
}

func (s Segment) String() string {
	return fmt.Sprintf("Start: (%g, %g), End: (%g, %g)", s.Start.X, s.Start.Y, s.End.X, s.End.Y)
}
