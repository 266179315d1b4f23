// Package world runs one level: it owns the terrain columns and the zits,
// spawns zits on a schedule, applies player commands and reports the level
// result. It is single-threaded and deterministic for a given sequence of
// Update calls and commands.
package world

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/opdozitz/internal/actor"
	"github.com/vovakirdan/opdozitz/internal/geom"
	"github.com/vovakirdan/opdozitz/internal/level"
	"github.com/vovakirdan/opdozitz/internal/terrain"
)

var (
	// ErrBadMetrics is returned for tile metrics that cannot build terrain.
	ErrBadMetrics = errors.New("world: invalid tile metrics")
	// ErrBadParams is returned for zit params that cannot be simulated.
	ErrBadParams = errors.New("world: invalid zit params")
)

// Config carries everything a World needs besides the level.
type Config struct {
	Rules    Rules
	Metrics  terrain.Metrics
	Params   actor.Params
	Listener actor.Listener
}

// DefaultConfig returns the standard configuration with no listener.
func DefaultConfig() Config {
	return Config{
		Rules:   DefaultRules(),
		Metrics: terrain.DefaultMetrics(),
		Params:  actor.DefaultParams(),
	}
}

// World is a running level.
type World struct {
	rules    Rules
	metrics  *terrain.Metrics
	params   actor.Params
	listener actor.Listener

	source     level.Level // as loaded
	current    level.Level // layout the last reset started from
	startDelay int
	edited     bool

	columns []*terrain.Column
	zits    []*actor.Zit
	tally   tally

	tick           uint64
	elapsed        float64
	sinceLastSpawn float64
	spawned        int
	rate           int
	zoom           bool
	selected       int
	cursor         Cursor
}

// New builds a world for lvl.
func New(lvl level.Level, cfg Config) (*World, error) {
	if !cfg.Metrics.Valid() {
		return nil, fmt.Errorf("%w: %+v", ErrBadMetrics, cfg.Metrics)
	}
	if !cfg.Params.Valid() {
		return nil, fmt.Errorf("%w: %+v", ErrBadParams, cfg.Params)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	m := cfg.Metrics
	w := &World{
		rules:    cfg.Rules,
		metrics:  &m,
		params:   cfg.Params,
		listener: cfg.Listener,
		source:   lvl.Clone(),
	}
	w.load(lvl.Clone())
	return w, nil
}

// load resets all run state and lays out lvl.
func (w *World) load(lvl level.Level) {
	w.current = lvl
	w.startDelay = lvl.StartDelay
	w.columns = w.columns[:0]
	for i, c := range lvl.Columns {
		col := terrain.NewColumn(w.rules.ColumnLeft+i*w.metrics.TileSize, c.Locked, w.metrics)
		for j, p := range c.Tiles {
			col.Add(p, w.rules.ColumnTop+j*w.metrics.TileSize)
		}
		w.columns = append(w.columns, col)
	}
	w.zits = nil
	w.tally = tally{}
	w.tick = 0
	w.elapsed = 0
	w.sinceLastSpawn = 0
	w.spawned = 0
	w.rate = 0
	w.zoom = false
	w.selected = w.firstSelectable()
	w.cursor = Cursor{Column: level.SpawnColumn, Row: level.SpawnRow}
}

// Reset restarts the level. With reload the layout comes from the level as
// it was loaded; otherwise the current arrangement and edits are kept.
func (w *World) Reset(reload bool) {
	if reload {
		w.edited = false
		w.load(w.source.Clone())
		return
	}
	w.load(w.Level())
}

// Update advances the world by elapsed milliseconds. While fast-forwarding
// the whole tick runs ZoomFactor times.
func (w *World) Update(elapsed float64) {
	reps := 1
	if w.zoom {
		reps = max(1, w.rules.ZoomFactor)
	}
	for range reps {
		w.step(elapsed)
	}
}

func (w *World) step(elapsed float64) {
	w.tick++
	w.elapsed += elapsed

	w.sinceLastSpawn += elapsed
	if w.spawned < w.rules.ZitsPerLevel && w.sinceLastSpawn > w.SpawnInterval() {
		w.spawn()
		w.sinceLastSpawn = 0
	}

	active := w.columns
	if !w.rules.ColumnsMoveZits {
		active = make([]*terrain.Column, 0, len(w.columns))
	}
	for _, c := range w.columns {
		delta := c.Update(elapsed)
		if !w.rules.ColumnsMoveZits {
			if !c.Moving() {
				active = append(active, c)
			}
			continue
		}
		if delta != 0 {
			w.carry(c, delta)
		}
	}

	for _, z := range w.zits {
		z.Update(elapsed, active, w.rules.Frame)
	}
	w.prune()
}

// carry shifts the zits riding column c along with it.
func (w *World) carry(c *terrain.Column, delta int) {
	for _, z := range w.zits {
		if t, ok := z.CurrentTile(); ok && t.Left == c.Left() {
			z.ShiftBy(float64(delta))
		}
	}
}

// prune drops dead zits whose explosion has finished.
func (w *World) prune() {
	kept := w.zits[:0]
	for _, z := range w.zits {
		if z.State() == actor.Dead && !z.Exploding() {
			continue
		}
		kept = append(kept, z)
	}
	clear(w.zits[len(kept):])
	w.zits = kept
}

func (w *World) spawn() {
	w.spawned++
	tile := w.columns[level.SpawnColumn].At(level.SpawnRow)
	listeners := actor.Listeners{&w.tally}
	if w.listener != nil {
		listeners = append(listeners, w.listener)
	}
	z, err := actor.New(tile, w.rules.SpeedFactor(w.current.Number), w.params, listeners)
	if err != nil {
		// Spawn tile lost its rails; count the zit as lost.
		w.tally.dead++
		return
	}
	w.zits = append(w.zits, z)
}

// SpawnInterval returns the time that must pass before the next spawn.
func (w *World) SpawnInterval() float64 {
	if w.zoom {
		return w.rules.MinSpawnInterval
	}
	if w.spawned == 0 && w.startDelay > 0 {
		return float64(w.startDelay)
	}
	return w.rules.SpawnInterval(w.current.Number, w.rate)
}

// SpawnRemaining returns the time until the next spawn, or 0 when every
// zit has been spawned.
func (w *World) SpawnRemaining() float64 {
	if w.spawned >= w.rules.ZitsPerLevel {
		return 0
	}
	return max(0, w.SpawnInterval()-w.sinceLastSpawn)
}

func (w *World) Rules() Rules                 { return w.rules }
func (w *World) Metrics() terrain.Metrics     { return *w.metrics }
func (w *World) Frame() geom.Rect             { return w.rules.Frame }
func (w *World) Columns() []*terrain.Column   { return w.columns }
func (w *World) Zits() []*actor.Zit           { return w.zits }
func (w *World) Tick() uint64                 { return w.tick }
func (w *World) Elapsed() float64             { return w.elapsed }
func (w *World) Number() int                  { return w.current.Number }
func (w *World) Name() string                 { return w.current.Name }
func (w *World) Spawned() int                 { return w.spawned }
func (w *World) HomeCount() int               { return w.tally.home }
func (w *World) DeadCount() int               { return w.tally.dead }
func (w *World) Rate() int                    { return w.rate }
func (w *World) Zoomed() bool                 { return w.zoom }
func (w *World) StartDelay() int              { return w.startDelay }
func (w *World) Edited() bool                 { return w.edited }
func (w *World) SetListener(l actor.Listener) { w.listener = l }

// Alive returns the number of zits still rolling or falling.
func (w *World) Alive() int {
	n := 0
	for _, z := range w.zits {
		if z.IsAlive() {
			n++
		}
	}
	return n
}

// Done reports whether every zit has been spawned and none is alive.
func (w *World) Done() bool {
	return w.spawned >= w.rules.ZitsPerLevel && w.Alive() == 0
}

type tally struct {
	home int
	dead int
}

func (t *tally) OnEvent(ev actor.Event, _ *actor.Zit) {
	switch ev {
	case actor.EventHome:
		t.home++
	case actor.EventDie:
		t.dead++
	}
}
