package game

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/opdozitz/internal/actor"
	"github.com/vovakirdan/opdozitz/internal/core"
	"github.com/vovakirdan/opdozitz/internal/geom"
	"github.com/vovakirdan/opdozitz/internal/terrain"
)

// Screen rows outside the playfield: two HUD lines, the box border, the
// selection marker row and the status line.
const (
	hudRows    = 2
	chromeRows = hudRows + 4
	cellAspect = 2
	minCols    = 22
	minRows    = 15
)

var (
	spokes         = []rune{'|', '/', '-', '\\'}
	explosionRunes = []rune(".:oO@Oo:.")
)

const (
	playHelp = "a/d select  w/s shift  z zoom  h hurry  e edit  n/b level  q quit"
	editHelp = "arrows cursor  1-8 parts  [ ] delay  ctrl+s save  e play"
)

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if g.world == nil {
		g.renderOverlay(dst, fmt.Sprintf("No level %d", g.levelNum), "n/b to pick another level")
		return
	}

	vp, ok := g.viewport(dst)
	if !ok {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	box := core.NewRect(vp.Offset.X-1, vp.Offset.Y-1, vp.Offset.W+2, vp.Offset.H+2)
	dst.DrawBoxColor(box, core.ColorFrame)

	g.renderColumns(dst, vp)
	g.renderZits(dst, vp)
	if g.editing {
		g.renderCursor(dst, vp)
	} else {
		g.renderSelection(dst, vp, box.Bottom())
	}
	g.renderStatus(dst)

	switch {
	case g.done:
		r := g.world.Result()
		title := fmt.Sprintf("Level %d failed", r.Level)
		if r.Passed {
			title = fmt.Sprintf("Level %d passed!", r.Level)
		}
		g.renderOverlay(dst, title, fmt.Sprintf("Home %d of %d  n next  r retry", r.Home, r.Spawned))
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// viewport fits the playfield frame under the HUD, centered horizontally.
func (g *Game) viewport(dst *core.Screen) (core.Viewport, bool) {
	inner := core.NewRect(1, hudRows+1, dst.Width()-2, dst.Height()-chromeRows)
	if inner.W < minCols || inner.H < minRows {
		return core.Viewport{}, false
	}

	frame := g.world.Frame()
	vp := core.FitViewport(frame.X, frame.Y, frame.W, frame.H, inner, cellAspect)
	usedW := int(math.Ceil(frame.W / vp.ScaleX))
	usedH := int(math.Ceil(frame.H / vp.ScaleY))
	vp.Offset = core.NewRect(inner.X+(inner.W-usedW)/2, inner.Y, usedW, usedH)
	return vp, true
}

func (g *Game) renderHUD(dst *core.Screen) {
	name := ""
	if g.world != nil {
		name = g.world.Name()
	}
	dst.DrawTextColor(1, 0, fmt.Sprintf("%s  Level %d %s", g.Title(), g.levelNum, name), core.ColorHUD)
	dst.DrawTextRight(dst.Width()-1, 0, fmt.Sprintf("Score %d", g.State().Score), core.ColorHUD)

	if g.world == nil {
		return
	}
	w := g.world
	rules := w.Rules()
	stats := fmt.Sprintf("Home %d/%d  Lost %d  Out %d/%d  Rate %d  Next %.1fs",
		w.HomeCount(), rules.PassHome, w.DeadCount(), w.Spawned(), rules.ZitsPerLevel,
		w.Rate(), math.Max(0, w.SpawnRemaining())/1000)
	if g.editing {
		c := w.Cursor()
		t := w.Columns()[c.Column].At(c.Row)
		stats = fmt.Sprintf("Tile %d,%d %s  Delay %dms", c.Column, c.Row, t.Parts, w.StartDelay())
	}
	dst.DrawTextColor(1, 1, stats, core.ColorDefault)

	var flags []string
	if w.Zoomed() {
		flags = append(flags, "[ZOOM]")
	}
	if g.editing {
		flags = append(flags, "[EDIT]")
	}
	if w.Edited() {
		flags = append(flags, "[MODIFIED]")
	}
	if g.setup.Sound != nil && g.setup.Sound.Muted() {
		flags = append(flags, "[MUTED]")
	}
	dst.DrawTextRight(dst.Width()-1, 1, strings.Join(flags, " "), core.ColorSelected)
}

func (g *Game) renderColumns(dst *core.Screen, vp core.Viewport) {
	selected := g.world.Selected()
	for i, c := range g.world.Columns() {
		color := core.ColorGirder
		switch {
		case c.Locked():
			color = core.ColorLocked
		case i == selected && !g.editing:
			color = core.ColorSelected
		}
		for _, t := range c.Tiles() {
			g.renderTile(dst, vp, t, color)
		}
	}
}

func (g *Game) renderTile(dst *core.Screen, vp core.Viewport, t terrain.Tile, color core.Color) {
	b := t.Bounds()
	size := float64(t.Metrics().TileSize)

	if t.Has(terrain.Block) {
		fillWorldRect(dst, vp, b, '▒', core.ColorBlock)
	}
	for _, h := range t.Hazards() {
		if h.W >= size && h.H >= size {
			continue
		}
		r := '^'
		if h.Center().Y < b.Center().Y {
			r = 'v'
		}
		fillWorldRect(dst, vp, h, r, core.ColorHazard)
	}
	for _, h := range t.Homes() {
		fillWorldRect(dst, vp, h, '⌂', core.ColorHome)
	}
	for _, s := range t.Platforms() {
		drawSegment(dst, vp, s, color)
	}
	if t.Has(terrain.Start) {
		c := b.Center()
		cx, cy := vp.Project(c.X, c.Y)
		set(dst, vp, cx, cy, '>', core.ColorStart)
	}
}

func (g *Game) renderZits(dst *core.Screen, vp core.Viewport) {
	for _, z := range g.world.Zits() {
		loc := z.Location()
		cx, cy := vp.Project(loc.X, loc.Y)
		switch {
		case z.Exploding():
			f := z.ExplosionFrame()
			if f >= 0 && f < len(explosionRunes) {
				set(dst, vp, cx, cy, explosionRunes[f], core.ColorExplosion)
			}
		case z.State() == actor.Home:
			set(dst, vp, cx, cy, '☺', core.ColorHome)
		case z.IsFalling():
			set(dst, vp, cx, cy, 'o', core.ColorZit)
		case z.IsRolling():
			set(dst, vp, cx, cy, spoke(z.Angle()), core.ColorZit)
		}
	}
}

// spoke picks the wheel glyph for a rotation angle.
func spoke(angle float64) rune {
	a := math.Mod(angle, math.Pi)
	if a < 0 {
		a += math.Pi
	}
	i := int(a/(math.Pi/4)+0.5) % len(spokes)
	return spokes[i]
}

func (g *Game) renderSelection(dst *core.Screen, vp core.Viewport, row int) {
	i := g.world.Selected()
	if i < 0 {
		return
	}
	c := g.world.Columns()[i]
	x0, _ := vp.Project(float64(c.Left()), 0)
	x1, _ := vp.Project(float64(c.Right()), 0)
	dst.DrawHLine(x0, row, max(x1-x0, 1), '^', core.ColorSelected)
}

func (g *Game) renderCursor(dst *core.Screen, vp core.Viewport) {
	cur := g.world.Cursor()
	t := g.world.Columns()[cur.Column].At(cur.Row)
	b := t.Bounds()
	r := vp.ProjectRect(b.X, b.Y, b.W, b.H)
	set(dst, vp, r.X, r.Y, '┌', core.ColorCursor)
	set(dst, vp, r.Right()-1, r.Y, '┐', core.ColorCursor)
	set(dst, vp, r.X, r.Bottom()-1, '└', core.ColorCursor)
	set(dst, vp, r.Right()-1, r.Bottom()-1, '┘', core.ColorCursor)
}

func (g *Game) renderStatus(dst *core.Screen) {
	y := dst.Height() - 1
	if msg := g.Message(); msg != "" {
		dst.DrawTextColor(1, y, msg, core.ColorHUD)
		return
	}
	help := playHelp
	if g.editing {
		help = editHelp
	}
	dst.DrawTextColor(1, y, help, core.ColorGray)
}

// renderOverlay draws a centered message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len(line1), len(line2)) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBoxColor(box, core.ColorHUD)
	dst.DrawTextCenteredColor(box.Y+1, line1, core.ColorHUD)
	dst.DrawTextCenteredColor(box.Y+3, line2, core.ColorDefault)
}

func set(dst *core.Screen, vp core.Viewport, cx, cy int, r rune, c core.Color) {
	if vp.Visible(cx, cy) {
		dst.SetColor(cx, cy, r, c)
	}
}

func fillWorldRect(dst *core.Screen, vp core.Viewport, wr geom.Rect, r rune, c core.Color) {
	cr := vp.ProjectRect(wr.X, wr.Y, wr.W, wr.H)
	for y := cr.Y; y < cr.Bottom(); y++ {
		for x := cr.X; x < cr.Right(); x++ {
			set(dst, vp, x, y, r, c)
		}
	}
}

// drawSegment rasterizes a rail by sampling it at half-cell spacing.
func drawSegment(dst *core.Screen, vp core.Viewport, s geom.Segment, c core.Color) {
	d := s.End.Sub(s.Start)
	r := segmentRune(d)
	n := int(math.Ceil(d.Len()/(vp.ScaleX/2))) + 1
	for i := 0; i <= n; i++ {
		p := s.Start.AddScaled(d, float64(i)/float64(n))
		cx, cy := vp.Project(p.X, p.Y)
		set(dst, vp, cx, cy, r, c)
	}
}

func segmentRune(d geom.Vec) rune {
	// Screen y grows downward.
	switch {
	case math.Abs(d.Y) <= math.Abs(d.X)/4:
		return '─'
	case math.Abs(d.X) <= math.Abs(d.Y)/4:
		return '│'
	case (d.X > 0) == (d.Y < 0):
		return '/'
	default:
		return '\\'
	}
}
