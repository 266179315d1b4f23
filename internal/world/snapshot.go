package world

import (
	"math"

	"github.com/vovakirdan/opdozitz/internal/terrain"
)

// ZitSnapshot is the observable state of one zit.
type ZitSnapshot struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Angle  float64 `json:"angle"`
	State  string  `json:"state"`
	Frame  int     `json:"frame"` // explosion frame, -1 if none
	Column int     `json:"column"`
}

// ColumnSnapshot is the observable state of one column.
type ColumnSnapshot struct {
	Left   int            `json:"left"`
	Top    int            `json:"top"` // top of the first tile
	Locked bool           `json:"locked"`
	Moving bool           `json:"moving"`
	Parts  []terrain.Part `json:"parts"`
}

// Snapshot captures the world state for determinism tests and spectators.
type Snapshot struct {
	Tick     uint64           `json:"tick"`
	Level    int              `json:"level"`
	Name     string           `json:"name"`
	Spawned  int              `json:"spawned"`
	Home     int              `json:"home"`
	Dead     int              `json:"dead"`
	Rate     int              `json:"rate"`
	Zoom     bool             `json:"zoom"`
	Selected int              `json:"selected"`
	Done     bool             `json:"done"`
	Columns  []ColumnSnapshot `json:"columns"`
	Zits     []ZitSnapshot    `json:"zits"`
}

// Snapshot returns the current world state.
func (w *World) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:     w.tick,
		Level:    w.current.Number,
		Name:     w.current.Name,
		Spawned:  w.spawned,
		Home:     w.tally.home,
		Dead:     w.tally.dead,
		Rate:     w.rate,
		Zoom:     w.zoom,
		Selected: w.selected,
		Done:     w.Done(),
		Columns:  make([]ColumnSnapshot, len(w.columns)),
		Zits:     make([]ZitSnapshot, len(w.zits)),
	}

	for i, c := range w.columns {
		cs := ColumnSnapshot{
			Left:   c.Left(),
			Locked: c.Locked(),
			Moving: c.Moving(),
			Parts:  make([]terrain.Part, c.Len()),
		}
		for j, t := range c.Tiles() {
			if j == 0 {
				cs.Top = t.Top
			}
			cs.Parts[j] = t.Parts
		}
		snap.Columns[i] = cs
	}

	for i, z := range w.zits {
		loc := z.Location()
		col := -1
		for j, c := range w.columns {
			if c.InColumn(loc.X) {
				col = j
				break
			}
		}
		snap.Zits[i] = ZitSnapshot{
			X:      loc.X,
			Y:      loc.Y,
			Angle:  z.Angle(),
			State:  z.State().String(),
			Frame:  z.ExplosionFrame(),
			Column: col,
		}
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Level)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Spawned)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Home)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Dead)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Rate)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Selected) //#nosec G115 -- hash computation
	h = h*31 + boolBits(snap.Zoom)

	for _, c := range snap.Columns {
		h = h*31 + uint64(c.Top) //#nosec G115 -- hash computation
		h = h*31 + boolBits(c.Moving)
		for _, p := range c.Parts {
			h = h*31 + uint64(p)
		}
	}

	for _, z := range snap.Zits {
		h = h*31 + math.Float64bits(z.X)
		h = h*31 + math.Float64bits(z.Y)
		h = h*31 + math.Float64bits(z.Angle)
		for _, b := range []byte(z.State) {
			h = h*31 + uint64(b)
		}
		h = h*31 + uint64(z.Frame+1) //#nosec G115 -- hash computation
	}

	return h
}

func boolBits(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
