package world

import "github.com/vovakirdan/opdozitz/internal/level"

// Selected returns the index of the selected column, or -1 when no column
// can be selected.
func (w *World) Selected() int { return w.selected }

func (w *World) selectable(i int) bool {
	return i > level.SpawnColumn && i < len(w.columns) && !w.columns[i].Locked()
}

func (w *World) firstSelectable() int {
	for i := range w.columns {
		if w.selectable(i) {
			return i
		}
	}
	return -1
}

// SelectLeft moves the selection to the nearest unlocked column on the
// left. It stays put when there is none.
func (w *World) SelectLeft() {
	for i := w.selected - 1; i >= 0; i-- {
		if w.selectable(i) {
			w.selected = i
			return
		}
	}
}

// SelectRight moves the selection to the nearest unlocked column on the
// right. It stays put when there is none.
func (w *World) SelectRight() {
	for i := w.selected + 1; i < len(w.columns); i++ {
		if w.selectable(i) {
			w.selected = i
			return
		}
	}
}

// CanMove reports whether column i may start a shift now.
func (w *World) CanMove(i int) bool {
	if !w.selectable(i) {
		return false
	}
	c := w.columns[i]
	if c.Moving() {
		return false
	}
	if !w.rules.ColumnsMoveZits {
		for _, z := range w.zits {
			if z.IsAlive() && z.InColumn(c) {
				return false
			}
		}
	}
	return true
}

// MoveUp starts shifting the selected column up and reports whether it did.
func (w *World) MoveUp() bool {
	if !w.CanMove(w.selected) {
		return false
	}
	w.columns[w.selected].MoveUp()
	return true
}

// MoveDown starts shifting the selected column down and reports whether it
// did.
func (w *World) MoveDown() bool {
	if !w.CanMove(w.selected) {
		return false
	}
	w.columns[w.selected].MoveDown()
	return true
}

// ToggleZoom switches fast-forward on or off.
func (w *World) ToggleZoom() {
	w.zoom = !w.zoom
}

// Hurry raises the spawn rate by one step and reports whether it changed.
func (w *World) Hurry() bool {
	if w.rate >= w.rules.MaxRate {
		return false
	}
	w.rate++
	return true
}
