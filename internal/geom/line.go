package geom

import "math"

// ColinearTolerance is the absolute tolerance applied to determinants when
// deciding whether two directions are parallel.
const ColinearTolerance = 1e-5

// TolEqual reports whether a and b differ by at most tol.
func TolEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// VecTolEqual compares two vectors component-wise with an absolute tolerance.
func VecTolEqual(a, b Vec, tol float64) bool {
	return TolEqual(a.X, b.X, tol) && TolEqual(a.Y, b.Y, tol)
}

// CheckAligned reports whether v1 and v2 are parallel within tol.
func CheckAligned(v1, v2 Vec, tol float64) bool {
	return TolEqual(Determinant(v1, v2), 0, tol)
}

// IntersectLinesPD returns the intersection of two infinite lines in
// point-direction form. For collinear lines the first line's start is
// returned with ok=true; for parallel disjoint lines ok is false.
func IntersectLinesPD(start1, d1, start2, d2 Vec) (p Vec, ok bool) {
	between := start1.Sub(start2)
	denom := Determinant(d1, d2)
	if TolEqual(denom, 0, ColinearTolerance) {
		return start1, CheckAligned(d1, between, ColinearTolerance)
	}
	t1 := Determinant(d2, between) / denom
	return start1.AddScaled(d1, t1), true
}

func inSegment(t float64) bool {
	return 0 <= t && t <= 1
}

// inSegmentPD tests a point already known to lie on the line through
// start with the given direction. Only one axis is consulted.
func inSegmentPD(start, direction, point Vec) bool {
	diff := point.Sub(start)
	if diff.X != 0 {
		return inSegment(diff.X / direction.X)
	}
	if diff.Y != 0 {
		return inSegment(diff.Y / direction.Y)
	}
	return false
}

// SegmentsIntersectPD reports whether two segments in point-direction form
// intersect. Collinear segments count as intersecting only when an endpoint
// of one lies inside the other; no interval overlap is computed.
func SegmentsIntersectPD(start1, d1, start2, d2 Vec, tol float64) bool {
	between := start1.Sub(start2)
	denom := Determinant(d1, d2)
	if TolEqual(denom, 0, tol) {
		if !CheckAligned(d1, between, tol) {
			return false
		}
		return inSegmentPD(start1, d1, start2) ||
			inSegmentPD(start1, d1, start2.Add(d2)) ||
			inSegmentPD(start2, d2, start1)
	}
	return inSegment(Determinant(d1, between)/denom) &&
		inSegment(Determinant(d2, between)/denom)
}

// SegmentsIntersectPP is SegmentsIntersectPD for segments given by endpoints.
func SegmentsIntersectPP(start1, end1, start2, end2 Vec, tol float64) bool {
	return SegmentsIntersectPD(start1, end1.Sub(start1), start2, end2.Sub(start2), tol)
}

// IntersectSegmentsPD intersects two segments in point-direction form.
// For non-parallel segments p is the intersection of the supporting lines
// even when ok is false. The collinear branch reports the first contained
// endpoint, testing start2, end2 and then start1 in that order.
func IntersectSegmentsPD(start1, d1, start2, d2 Vec, tol float64) (p Vec, ok bool) {
	between := start1.Sub(start2)
	denom := Determinant(d1, d2)
	if TolEqual(denom, 0, tol) {
		if !CheckAligned(d1, between, tol) {
			return start1, false
		}
		if inSegmentPD(start1, d1, start2) {
			return start2, true
		}
		end2 := start2.Add(d2)
		if inSegmentPD(start1, d1, end2) {
			return end2, true
		}
		return start1, inSegmentPD(start2, d2, start1)
	}

	t1 := Determinant(d2, between) / denom
	t2 := Determinant(d1, between) / denom
	return start1.AddScaled(d1, t1), inSegment(t1) && inSegment(t2)
}

// IntersectSegmentsPP is IntersectSegmentsPD for segments given by endpoints.
func IntersectSegmentsPP(start1, end1, start2, end2 Vec, tol float64) (Vec, bool) {
	return IntersectSegmentsPD(start1, end1.Sub(start1), start2, end2.Sub(start2), tol)
}
