// Package actor simulates a zit: a small wheel that rolls along the
// platform rails of the terrain, falls when it loses support, and dies on
// hazards or at the playfield edge. The simulation is deterministic and
// frame-stepped; it never logs and never blocks.
package actor

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/opdozitz/internal/geom"
	"github.com/vovakirdan/opdozitz/internal/terrain"
)

// State is the phase of a zit's life.
type State int

const (
	Rolling State = iota
	Falling
	Dead
	Home
)

func (s State) String() string {
	switch s {
	case Rolling:
		return "rolling"
	case Falling:
		return "falling"
	case Dead:
		return "dead"
	case Home:
		return "home"
	default:
		return "unknown"
	}
}

// ErrNoPlatform is returned when a zit is spawned on a tile without rails.
var ErrNoPlatform = errors.New("actor: spawn tile has no platform")

var up = geom.V(0, -1)

// Zit is a single rolling actor.
type Zit struct {
	location    geom.Vec
	contact     geom.Vec
	angle       float64
	fallSpeed   float64
	speedFactor float64
	state       State

	tile    terrain.Tile
	hasTile bool

	exploding *Playback
	params    Params
	listener  Listener
}

// New spawns a zit one radius along the first rail of tile, resting on it.
func New(tile terrain.Tile, speedFactor float64, params Params, listener Listener) (*Zit, error) {
	platforms := tile.Platforms()
	if len(platforms) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrNoPlatform, tile)
	}
	if listener == nil {
		listener = Nop
	}

	r := params.Radius()
	p := platforms[0]
	contact := p.Start.AddScaled(p.Direction(), r)
	z := &Zit{
		contact:     contact,
		location:    contact.AddScaled(p.DirectedNormal(), r),
		speedFactor: speedFactor,
		state:       Rolling,
		tile:        tile,
		hasTile:     true,
		params:      params,
		listener:    listener,
	}
	listener.OnEvent(EventSpawn, z)
	return z, nil
}

func (z *Zit) State() State           { return z.state }
func (z *Zit) Location() geom.Vec     { return z.location }
func (z *Zit) Contact() geom.Vec      { return z.contact }
func (z *Zit) Angle() float64         { return z.angle }
func (z *Zit) FallSpeed() float64     { return z.fallSpeed }
func (z *Zit) SpeedFactor() float64   { return z.speedFactor }
func (z *Zit) Params() Params         { return z.params }
func (z *Zit) IsRolling() bool        { return z.state == Rolling }
func (z *Zit) IsFalling() bool        { return z.state == Falling }
func (z *Zit) IsHome() bool           { return z.state == Home }
func (z *Zit) IsAlive() bool          { return z.state == Rolling || z.state == Falling }
func (z *Zit) Exploding() bool        { return z.exploding != nil }
func (z *Zit) SetListener(l Listener) { z.listener = l }

// CurrentTile returns the tile the zit last touched. ok is false while
// falling.
func (z *Zit) CurrentTile() (tile terrain.Tile, ok bool) {
	return z.tile, z.hasTile
}

// ExplosionFrame returns the explosion frame to draw, or -1.
func (z *Zit) ExplosionFrame() int {
	if z.exploding == nil {
		return -1
	}
	return z.exploding.Frame()
}

// InColumn reports whether the zit's center lies in the column's band.
func (z *Zit) InColumn(c *terrain.Column) bool {
	return c.InColumn(z.location.X)
}

// Update advances the zit by elapsed milliseconds against the given
// columns. frame is the playfield; leaving it is fatal.
func (z *Zit) Update(elapsed float64, columns []*terrain.Column, frame geom.Rect) {
	remaining := elapsed * z.params.AngleIncrement * z.speedFactor

	for z.IsRolling() && remaining > 0 {
		step := math.Min(remaining, z.params.MaxAngleStep)
		remaining -= step
		z.angle += step

		z.updateRolling(columns, step)
		z.checkBoundaries(frame)
		z.checkHazards(columns)
		z.checkHome(columns)
	}

	if z.IsFalling() {
		z.angle += remaining
		z.updateFalling(columns, elapsed)
		z.checkBoundaries(frame)
		z.checkHazards(columns)
	}

	if z.exploding != nil && z.exploding.Update(elapsed) {
		z.exploding = nil
	}
}

// updateRolling swings the zit around its contact point by rotation and
// resolves the new contact against nearby rails.
func (z *Zit) updateRolling(columns []*terrain.Column, rotation float64) {
	r := z.params.Radius()
	size := z.params.Size

	support := z.location.Sub(z.contact)
	swung := z.contact.Add(geom.FromAngle(support.Angle() + rotation).Scale(r))

	top := math.Floor(math.Min(z.location.Y, swung.Y)) - size
	bottom := math.Ceil(math.Max(z.location.Y, swung.Y)) + size
	left := math.Floor(math.Min(z.location.X, swung.X) - r)
	right := math.Ceil(math.Max(z.location.X, swung.X) + r)

	var (
		found    bool
		platform geom.Segment
		contact  geom.Vec
		tile     terrain.Tile
		atEnd    bool
	)
	minDistSq := r * r * z.params.ContactSlack
	for _, t := range tilesIn(columns, left, right, top, bottom) {
		for _, p := range t.Platforms() {
			pt, end := p.ClosestPoint(swung)
			if d := geom.DistSq(pt, swung); d < minDistSq {
				found = true
				minDistSq = d
				platform, contact, tile, atEnd = p, pt, t, end
			}
		}
	}

	if !found {
		z.location = swung
		z.fall()
		return
	}

	z.contact = contact
	dieRadius := r * z.params.DieRadius
	switch {
	case minDistSq < dieRadius*dieRadius:
		z.Die()
	case atEnd:
		n := swung.Sub(contact).Unit()
		if n.Y > 0 && geom.NormalAngle(platform.DirectedNormal(), n) > z.params.FallAngle {
			z.location = swung
			z.fall()
		} else {
			z.location = contact.AddScaled(n, r)
		}
	default:
		z.location = contact.AddScaled(platform.DirectedNormal(), r)
	}
	if !z.IsFalling() {
		z.tile, z.hasTile = tile, true
	}
}

// updateFalling accelerates the zit downwards and lands it on the highest
// upward-facing rail its leading edge crossed this tick.
func (z *Zit) updateFalling(columns []*terrain.Column, elapsed float64) {
	r := z.params.Radius()
	z.fallSpeed += elapsed * z.params.FallForce
	fallLocation := geom.V(z.location.X, z.location.Y+z.fallSpeed)

	if z.fallSpeed < z.params.FatalVelocity {
		var (
			found    bool
			platform geom.Segment
			contact  geom.Vec
			tile     terrain.Tile
		)
		highest := fallLocation.Y
		tiles := tilesIn(columns,
			math.Floor(z.location.X-r), math.Ceil(z.location.X+r),
			math.Floor(z.location.Y-r), math.Ceil(fallLocation.Y+r+z.params.Size))

		for _, t := range tiles {
			cast := float64(t.Metrics().TileSize)
			for _, p := range t.Platforms() {
				n := p.DirectedNormal()
				if isCeiling(n) {
					continue
				}
				offset := n.Scale(r)
				foot := z.location.Sub(offset)
				c, ok := p.FindIntersection(geom.Segment{Start: foot, End: foot.Add(geom.V(0, cast))})
				if !ok {
					continue
				}
				land := c.Add(offset)
				if z.location.Y < land.Y && land.Y <= highest && (!found || land.Y < highest) {
					found = true
					highest = land.Y
					platform, contact, tile = p, c, t
				}
			}
		}

		if found {
			z.fallSpeed = 0
			z.contact = contact
			z.location = contact.AddScaled(platform.DirectedNormal(), r)
			z.tile, z.hasTile = tile, true
			z.state = Rolling
			z.listener.OnEvent(EventLand, z)
			return
		}
	}
	z.location = fallLocation
}

func isCeiling(directedNormal geom.Vec) bool {
	return geom.NormalAngle(directedNormal, up) > math.Pi/2
}

func (z *Zit) checkBoundaries(frame geom.Rect) {
	r := z.params.Radius()
	switch {
	case z.location.Y < frame.Top()+r:
		z.location.Y = frame.Top() + r
		z.Die()
	case z.location.Y > frame.Bottom()-r:
		z.location.Y = frame.Bottom() - r
		z.Die()
	case z.location.X < frame.Left()+r || frame.Right() < z.location.X:
		z.Die()
	}
}

func (z *Zit) checkHazards(columns []*terrain.Column) {
	for _, t := range z.nearbyTiles(columns) {
		for _, h := range t.Hazards() {
			if z.inHazard(h) {
				z.Die()
			}
		}
	}
}

func (z *Zit) checkHome(columns []*terrain.Column) {
	if !z.IsRolling() {
		return
	}
	loc := z.location.Round()
	for _, t := range z.nearbyTiles(columns) {
		for _, home := range t.Homes() {
			if home.Contains(loc) {
				z.MarkHome()
			}
		}
	}
}

// inHazard tests the zit's circle against a hazard rectangle: the rounded
// center against the rectangle grown along each axis, then every corner
// against the radius.
func (z *Zit) inHazard(hazard geom.Rect) bool {
	half := z.params.Size / 2
	loc := z.location.Round()
	if hazard.Inflate(half, 0).Contains(loc) || hazard.Inflate(0, half).Contains(loc) {
		return true
	}
	r := z.params.Radius()
	for _, corner := range hazard.Corners() {
		if geom.DistSq(corner, z.location) < r*r {
			return true
		}
	}
	return false
}

func (z *Zit) nearbyTiles(columns []*terrain.Column) []terrain.Tile {
	r := z.params.Radius()
	return tilesIn(columns,
		math.Floor(z.location.X-r), math.Ceil(z.location.X+r),
		math.Floor(z.location.Y-r), math.Ceil(z.location.Y+r+z.params.Size))
}

// tilesIn collects the tiles whose square overlaps the given box.
func tilesIn(columns []*terrain.Column, left, right, top, bottom float64) []terrain.Tile {
	var out []terrain.Tile
	for _, c := range columns {
		if !c.OverlapsBand(left, right) {
			continue
		}
		for _, t := range c.Tiles() {
			if t.OverlapsRows(top, bottom) {
				out = append(out, t)
			}
		}
	}
	return out
}

func (z *Zit) fall() {
	if z.IsRolling() {
		z.hasTile = false
		z.state = Falling
	}
}

// Die kills a living zit and starts its explosion. It has no effect on a
// zit that is already dead or home.
func (z *Zit) Die() {
	if !z.IsAlive() {
		return
	}
	z.state = Dead
	z.exploding = NewPlayback(z.params.ExplosionFrameTime, z.params.ExplosionFrames)
	z.listener.OnEvent(EventDie, z)
}

// MarkHome retires a living zit as saved. It has no effect on a zit that
// is already dead or home.
func (z *Zit) MarkHome() {
	if !z.IsAlive() {
		return
	}
	z.state = Home
	z.listener.OnEvent(EventHome, z)
}

// ShiftBy moves a rolling zit vertically together with the rail it rides.
func (z *Zit) ShiftBy(delta float64) {
	if z.IsRolling() {
		z.location.Y += delta
		z.contact.Y += delta
		if z.hasTile {
			z.tile.Top += int(delta)
		}
	}
}
