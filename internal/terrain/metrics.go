package terrain

// Metrics holds the dimensions tile geometry is derived from.
type Metrics struct {
	TileSize    int // edge length of a square tile
	GirderWidth int // inset of platform rails from the nominal tile edge
	MoveStep    int // pixels a shifting column travels per tick

	// Transition pieces: a straight slope covering SlopeFraction of the
	// tile width at SlopeGrade, joined to the flat by ArcSteps segments.
	SlopeFraction float64
	SlopeGrade    float64
	ArcSteps      int

	SpikesSize int
	SpikesEdge int

	// HomeSize is the actor diameter; the home rectangle is sized from it.
	HomeSize int
}

// DefaultMetrics returns the standard 50 pixel tile geometry.
func DefaultMetrics() Metrics {
	const tile = 50
	return Metrics{
		TileSize:      tile,
		GirderWidth:   3,
		MoveStep:      5,
		SlopeFraction: 0.4,
		SlopeGrade:    0.5,
		ArcSteps:      2,
		SpikesSize:    tile / 4,
		SpikesEdge:    tile / 10,
		HomeSize:      20,
	}
}

// SlopeRun is the horizontal extent of a transition slope.
func (m Metrics) SlopeRun() float64 {
	return float64(m.TileSize) * m.SlopeFraction
}

// SlopeRise is the vertical extent of a transition slope.
func (m Metrics) SlopeRise() float64 {
	return m.SlopeRun() * m.SlopeGrade
}

// Valid reports whether the metrics describe usable geometry: a column must
// reach whole tiles in whole steps.
func (m Metrics) Valid() bool {
	return m.TileSize > 0 && m.MoveStep > 0 && m.TileSize%m.MoveStep == 0 &&
		m.GirderWidth >= 0 && m.ArcSteps > 0
}
