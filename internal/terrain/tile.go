package terrain

import (
	"fmt"
	"math"

	"github.com/vovakirdan/opdozitz/internal/geom"
)

var defaultMetrics = DefaultMetrics()

// Tile is a square cell of terrain. Geometry is computed on demand from the
// parts and the current position; nothing is cached.
type Tile struct {
	Parts Part
	Left  int
	Top   int

	metrics *Metrics
}

// NewTile creates a tile measured with m. A nil m selects DefaultMetrics.
func NewTile(parts Part, left, top int, m *Metrics) Tile {
	return Tile{Parts: parts, Left: left, Top: top, metrics: m}
}

// Metrics returns the dimensions the tile is measured with.
func (t Tile) Metrics() *Metrics {
	if t.metrics == nil {
		return &defaultMetrics
	}
	return t.metrics
}

func (t Tile) size() int { return t.Metrics().TileSize }

// Right is the x coordinate of the tile's right edge.
func (t Tile) Right() int { return t.Left + t.size() }

// Bottom is the y coordinate of the tile's bottom edge.
func (t Tile) Bottom() int { return t.Top + t.size() }

// Bounds returns the tile square.
func (t Tile) Bounds() geom.Rect {
	s := float64(t.size())
	return geom.R(float64(t.Left), float64(t.Top), s, s)
}

// Has reports whether the tile carries part.
func (t Tile) Has(part Part) bool {
	return t.Parts.Has(part)
}

// Clone returns a copy of the tile moved to newTop.
func (t Tile) Clone(newTop int) Tile {
	t.Top = newTop
	return t
}

// TogglePart flips part on the tile.
func (t *Tile) TogglePart(part Part) {
	t.Parts = t.Parts.Toggle(part)
}

// Platforms returns the rail segments of the tile. Each rail comes as a
// pair: one surface facing up, offset above the nominal edge by the girder
// width, and one facing down, offset below it, running the other way.
func (t Tile) Platforms() []geom.Segment {
	m := t.Metrics()
	l, r := float64(t.Left), float64(t.Right())
	top, bottom := float64(t.Top), float64(t.Bottom())
	g := float64(m.GirderWidth)

	var out []geom.Segment
	if t.Has(Flat) {
		out = append(out,
			geom.Seg(l, bottom-g, r, bottom-g),
			geom.Seg(r, bottom+g, l, bottom+g),
		)
	}
	if t.Has(SlantUp) {
		out = append(out,
			geom.Seg(l, bottom-g, r, top-g),
			geom.Seg(r, top+g, l, bottom+g),
		)
	}
	if t.Has(SlantDown) {
		out = append(out,
			geom.Seg(l, top-g, r, bottom-g),
			geom.Seg(r, bottom+g, l, top+g),
		)
	}
	if t.Has(TransitionTop) {
		run, rise := m.SlopeRun(), m.SlopeRise()
		slopeEnd := geom.V(l+run, bottom-g-rise)
		out = append(out, geom.Segment{Start: geom.V(l, bottom-g), End: slopeEnd})
		out = arcSegments(out, geom.V(l+run, bottom), slopeEnd, math.Pi/2, m.ArcSteps)
	}
	if t.Has(TransitionBottom) {
		run := m.SlopeRun()
		radius := g + m.SlopeRise()
		out = arcSegments(out, geom.V(l+run, top), geom.V(l+run+radius, top), math.Pi/2, m.ArcSteps)
		out = append(out, geom.Seg(l+run, top+radius, l, top+g))
	}
	return out
}

// arcSegments approximates a clockwise (on screen) arc around center,
// starting at start and sweeping angle radians, with steps chords.
func arcSegments(out []geom.Segment, center, start geom.Vec, angle float64, steps int) []geom.Segment {
	angleStep := -angle / float64(steps)
	spoke := start.Sub(center)
	startAngle := math.Atan2(-spoke.Y, spoke.X)
	radius := spoke.Len()

	for i := 1; i <= steps; i++ {
		a := startAngle + float64(i)*angleStep
		end := center.Add(geom.V(math.Cos(a), -math.Sin(a)).Scale(radius))
		out = append(out, geom.Segment{Start: start, End: end})
		start = end
	}
	return out
}

// Hazards returns the deadly rectangles of the tile.
func (t Tile) Hazards() []geom.Rect {
	m := t.Metrics()
	l, top, bottom := float64(t.Left), float64(t.Top), float64(t.Bottom())
	size := float64(m.TileSize)
	g := float64(m.GirderWidth)
	edge, spikes := float64(m.SpikesEdge), float64(m.SpikesSize)

	var out []geom.Rect
	if t.Has(Block) {
		out = append(out, geom.R(l, top, size, size))
	}
	if t.Has(SpikesUp) {
		out = append(out, geom.R(l+edge, bottom-g-spikes, size-2*edge, spikes))
	}
	if t.Has(SpikesDown) {
		out = append(out, geom.R(l+edge, top+g, size-2*edge, spikes))
	}
	return out
}

// Homes returns the goal rectangle of an End tile, or nothing. The
// rectangle sits on the floor rail so an actor rolling along it passes
// through. Anchoring it under the ceiling girder instead would put it out
// of reach: only a zit hanging from the tile above could touch it.
func (t Tile) Homes() []geom.Rect {
	if !t.Has(End) {
		return nil
	}
	m := t.Metrics()
	hs := float64(m.HomeSize)
	return []geom.Rect{
		geom.R(float64(t.Left)+hs/4, float64(t.Bottom()-m.GirderWidth)-hs, hs/2, hs),
	}
}

// OverlapsRows reports whether the tile's vertical band intersects
// [top, bottom], edges included.
func (t Tile) OverlapsRows(top, bottom float64) bool {
	return float64(t.Top) <= bottom && top <= float64(t.Bottom())
}

func (t Tile) String() string {
	return fmt.Sprintf("Location: %d, %d Parts: %s", t.Left, t.Top, t.Parts)
}
