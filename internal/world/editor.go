package world

import (
	"github.com/vovakirdan/opdozitz/internal/level"
	"github.com/vovakirdan/opdozitz/internal/terrain"
)

// Cursor addresses one tile for editing.
type Cursor struct {
	Column int
	Row    int
}

// Cursor returns the editor's tile cursor.
func (w *World) Cursor() Cursor { return w.cursor }

// MoveCursor shifts the tile cursor, clamped to the layout.
func (w *World) MoveCursor(dc, dr int) {
	w.cursor.Column = clamp(w.cursor.Column+dc, 0, len(w.columns)-1)
	w.cursor.Row = clamp(w.cursor.Row+dr, 0, w.current.Rows-1)
}

// TogglePart flips part on the tile under the cursor and reports whether
// the edit was applied. Tiles of a moving column cannot be edited, and the
// spawn tile always keeps a platform.
func (w *World) TogglePart(part terrain.Part) bool {
	c := w.columns[w.cursor.Column]
	if c.Moving() {
		return false
	}
	t := c.Tile(w.cursor.Row)
	next := terrain.NewTile(t.Parts.Toggle(part), t.Left, t.Top, c.Metrics())
	if w.cursor.Column == level.SpawnColumn && w.cursor.Row == level.SpawnRow && len(next.Platforms()) == 0 {
		return false
	}
	t.TogglePart(part)
	w.edited = true
	return true
}

// AdjustStartDelay changes the start delay by steps DelayStep increments,
// never below zero.
func (w *World) AdjustStartDelay(steps int) {
	w.startDelay = max(0, w.startDelay+steps*w.rules.DelayStep)
	w.edited = true
}

// Level exports the current arrangement as a level, including edits and
// the columns' present positions.
func (w *World) Level() level.Level {
	out := level.Level{
		Number:     w.current.Number,
		Name:       w.current.Name,
		StartDelay: w.startDelay,
		Rows:       w.current.Rows,
		Path:       w.source.Path,
		Columns:    make([]level.Column, len(w.columns)),
	}
	for i, c := range w.columns {
		tiles := c.Tiles()
		if c.Moving() && !c.MovingUp() {
			tiles = tiles[1:]
		}
		tiles = tiles[:min(len(tiles), out.Rows)]
		parts := make([]terrain.Part, len(tiles))
		for j, t := range tiles {
			parts[j] = t.Parts
		}
		out.Columns[i] = level.Column{Locked: c.Locked(), Tiles: parts}
	}
	return out
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
