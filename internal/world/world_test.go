package world

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/opdozitz/internal/actor"
	"github.com/vovakirdan/opdozitz/internal/level"
	"github.com/vovakirdan/opdozitz/internal/terrain"
)

// layout builds a four-row level whose column i holds parts[i] on row 1.
// Column 0 and every End column are locked.
func layout(parts ...terrain.Part) level.Level {
	lvl := level.Level{Number: 1, Name: "test", StartDelay: 100, Rows: 4}
	for i, p := range parts {
		tiles := make([]terrain.Part, 4)
		tiles[1] = p
		lvl.Columns = append(lvl.Columns, level.Column{
			Locked: i == 0 || p.Has(terrain.End),
			Tiles:  tiles,
		})
	}
	return lvl
}

// corridor is a straight flat run from the spawn tile to a home n-1
// columns to the right.
func corridor(n int) level.Level {
	parts := []terrain.Part{terrain.Flat | terrain.Start}
	for len(parts) < n-1 {
		parts = append(parts, terrain.Flat)
	}
	parts = append(parts, terrain.Flat|terrain.End)
	return layout(parts...)
}

func newWorld(t *testing.T, lvl level.Level, mutate func(*Config)) *World {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	w, err := New(lvl, cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return w
}

func run(w *World, ticks int, elapsed float64) {
	for range ticks {
		w.Update(elapsed)
	}
}

func TestNewBuildsColumns(t *testing.T) {
	w := newWorld(t, corridor(5), nil)

	if len(w.Columns()) != 5 {
		t.Fatalf("Columns() = %d, expected 5", len(w.Columns()))
	}
	for i, c := range w.Columns() {
		if c.Left() != 25+50*i {
			t.Errorf("column %d left = %d, expected %d", i, c.Left(), 25+50*i)
		}
		if c.Len() != 4 {
			t.Errorf("column %d has %d tiles", i, c.Len())
		}
		if c.At(1).Top != 50 {
			t.Errorf("column %d row 1 top = %d, expected 50", i, c.At(1).Top)
		}
	}
	if w.Selected() != 1 {
		t.Errorf("Selected() = %d, expected 1", w.Selected())
	}
	if w.Spawned() != 0 || len(w.Zits()) != 0 {
		t.Errorf("fresh world has zits")
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	bad := corridor(3)
	bad.Number = 0
	if _, err := New(bad, DefaultConfig()); !errors.Is(err, level.ErrInvalid) {
		t.Errorf("New() error = %v, expected ErrInvalid", err)
	}

	cfg := DefaultConfig()
	cfg.Metrics.MoveStep = 7
	if _, err := New(corridor(3), cfg); !errors.Is(err, ErrBadMetrics) {
		t.Errorf("New() error = %v, expected ErrBadMetrics", err)
	}
}

func TestNewRejectsBadParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*actor.Params)
		valid  bool
	}{
		{"defaults", func(*actor.Params) {}, true},
		{"zero max angle step", func(p *actor.Params) { p.MaxAngleStep = 0 }, false},
		{"negative max angle step", func(p *actor.Params) { p.MaxAngleStep = -0.1 }, false},
		{"zero size", func(p *actor.Params) { p.Size = 0 }, false},
		{"negative angle increment", func(p *actor.Params) { p.AngleIncrement = -1 }, false},
		{"negative fall force", func(p *actor.Params) { p.FallForce = -0.01 }, false},
		{"zero contact slack", func(p *actor.Params) { p.ContactSlack = 0 }, false},
		{"no explosion frames", func(p *actor.Params) { p.ExplosionFrames = 0 }, false},
		{"standing still", func(p *actor.Params) { p.AngleIncrement = 0 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg.Params)
			w, err := New(corridor(3), cfg)
			if tc.valid {
				if err != nil {
					t.Fatalf("New() error = %v, expected nil", err)
				}
				run(w, 30, 50)
				return
			}
			if !errors.Is(err, ErrBadParams) {
				t.Errorf("New() error = %v, expected ErrBadParams", err)
			}
			if w != nil {
				t.Errorf("New() = %v, expected nil world", w)
			}
		})
	}
}

func TestRulesSpawnInterval(t *testing.T) {
	r := DefaultRules()
	tests := []struct {
		level, rate int
		expected    float64
	}{
		{1, 0, 3000},
		{1, 1, 2400},
		{1, 2, 1920},
		{5, 0, 3000 * 0.97 * 0.97 * 0.97 * 0.97},
		{1, 10, 400},
		{25, 10, 400},
	}

	for _, tt := range tests {
		got := r.SpawnInterval(tt.level, tt.rate)
		if math.Abs(got-tt.expected) > 1e-6 {
			t.Errorf("SpawnInterval(%d, %d) = %v, expected %v", tt.level, tt.rate, got, tt.expected)
		}
	}

	if got := r.SpeedFactor(1); math.Abs(got-1.05) > 1e-12 {
		t.Errorf("SpeedFactor(1) = %v, expected 1.05", got)
	}
}

func TestSpawnCadence(t *testing.T) {
	lvl := corridor(5)
	lvl.StartDelay = 1000
	w := newWorld(t, lvl, nil)

	if w.SpawnInterval() != 1000 {
		t.Errorf("SpawnInterval() = %v, expected start delay 1000", w.SpawnInterval())
	}

	run(w, 10, 100)
	if w.Spawned() != 0 {
		t.Fatalf("spawned %d before the start delay passed", w.Spawned())
	}
	w.Update(100)
	if w.Spawned() != 1 {
		t.Fatalf("Spawned() = %d after start delay, expected 1", w.Spawned())
	}
	if w.SpawnInterval() != 3000 {
		t.Errorf("SpawnInterval() = %v, expected 3000", w.SpawnInterval())
	}

	run(w, 30, 100)
	if w.Spawned() != 1 {
		t.Fatalf("Spawned() = %d at exactly one interval, expected 1", w.Spawned())
	}
	w.Update(100)
	if w.Spawned() != 2 {
		t.Errorf("Spawned() = %d after one interval, expected 2", w.Spawned())
	}
}

func TestSpawnWithoutStartDelay(t *testing.T) {
	lvl := corridor(3)
	lvl.StartDelay = 0
	w := newWorld(t, lvl, nil)

	if w.SpawnInterval() != 3000 {
		t.Errorf("SpawnInterval() = %v, expected 3000", w.SpawnInterval())
	}
	if got := w.SpawnRemaining(); got != 3000 {
		t.Errorf("SpawnRemaining() = %v, expected 3000", got)
	}
}

func TestSpawnStopsAtLimit(t *testing.T) {
	w := newWorld(t, corridor(3), func(c *Config) {
		c.Rules.ZitsPerLevel = 3
		c.Rules.BaseSpawnInterval = 100
		c.Rules.MinSpawnInterval = 100
	})

	run(w, 200, 50)
	if w.Spawned() != 3 {
		t.Errorf("Spawned() = %d, expected 3", w.Spawned())
	}
	if w.SpawnRemaining() != 0 {
		t.Errorf("SpawnRemaining() = %v, expected 0", w.SpawnRemaining())
	}
}

func TestSelection(t *testing.T) {
	lvl := corridor(5)
	lvl.Columns[2].Locked = true
	w := newWorld(t, lvl, nil)

	steps := []struct {
		name     string
		cmd      func()
		expected int
	}{
		{"initial", func() {}, 1},
		{"right skips locked", w.SelectRight, 3},
		{"right at last free column", w.SelectRight, 3},
		{"left skips locked", w.SelectLeft, 1},
		{"left never reaches spawn column", w.SelectLeft, 1},
	}

	for _, s := range steps {
		s.cmd()
		if w.Selected() != s.expected {
			t.Errorf("%s: Selected() = %d, expected %d", s.name, w.Selected(), s.expected)
		}
	}
}

func TestSelectionAllLocked(t *testing.T) {
	lvl := corridor(3)
	lvl.Columns[1].Locked = true
	w := newWorld(t, lvl, nil)

	if w.Selected() != -1 {
		t.Errorf("Selected() = %d, expected -1", w.Selected())
	}
	w.SelectRight()
	w.SelectLeft()
	if w.Selected() != -1 {
		t.Errorf("Selected() = %d after moves, expected -1", w.Selected())
	}
	if w.MoveUp() || w.MoveDown() {
		t.Error("moved a column with nothing selected")
	}
}

// rollIntoColumnOne spawns a zit and rolls it to x ≈ 101.
func rollIntoColumnOne(t *testing.T, w *World) *actor.Zit {
	t.Helper()
	run(w, 23, 50)
	if len(w.Zits()) != 1 {
		t.Fatalf("expected 1 zit, got %d", len(w.Zits()))
	}
	z := w.Zits()[0]
	if !z.IsRolling() || !z.InColumn(w.Columns()[1]) {
		t.Fatalf("zit at %v (%v) is not rolling in column 1", z.Location(), z.State())
	}
	return z
}

func TestCanMoveWithZitInBand(t *testing.T) {
	w := newWorld(t, corridor(5), func(c *Config) {
		c.Rules.ColumnsMoveZits = false
	})
	rollIntoColumnOne(t, w)

	if w.CanMove(1) {
		t.Error("CanMove(1) = true with a zit in the band")
	}
	if !w.CanMove(2) {
		t.Error("CanMove(2) = false for an empty column")
	}
	if w.CanMove(0) || w.CanMove(4) {
		t.Error("locked columns must not move")
	}
	if w.MoveUp() {
		t.Error("MoveUp() moved the occupied selected column")
	}
}

func TestMovingColumnCarriesZit(t *testing.T) {
	w := newWorld(t, corridor(5), nil)
	z := rollIntoColumnOne(t, w)

	before := z.Location()
	if math.Abs(before.Y-87) > 1e-9 {
		t.Fatalf("zit y = %v, expected 87", before.Y)
	}
	if !w.CanMove(1) {
		t.Fatal("CanMove(1) = false while zits may ride columns")
	}
	if !w.MoveUp() {
		t.Fatal("MoveUp() = false")
	}
	if w.CanMove(1) {
		t.Error("CanMove(1) = true for a moving column")
	}

	w.Update(50)
	after := z.Location()
	if math.Abs(after.Y-82) > 1e-9 {
		t.Errorf("zit y = %v after one column step, expected 82", after.Y)
	}
	if after.X <= before.X {
		t.Errorf("zit stopped rolling: x %v -> %v", before.X, after.X)
	}
	if tile, ok := z.CurrentTile(); !ok || tile.Top != 45 {
		t.Errorf("CurrentTile() = %v, %v, expected top 45", tile, ok)
	}
}

func TestStrictModeMovingColumnIsTransparent(t *testing.T) {
	w := newWorld(t, corridor(5), func(c *Config) {
		c.Metrics.MoveStep = 1
		c.Rules.ColumnsMoveZits = false
	})
	z := rollIntoColumnOne(t, w)
	next := w.Columns()[2]

	prev := z.Location()
	sawFalling := false
	for tick := 0; tick < 600 && z.IsAlive(); tick++ {
		// Keep the neighbour shifting so the zit never meets it at rest.
		if !next.Moving() {
			if next.MovingUp() {
				next.MoveDown()
			} else {
				next.MoveUp()
			}
		}
		w.Update(1000.0 / 60)

		loc := z.Location()
		if loc.Y < prev.Y-0.5 {
			t.Fatalf("tick %d: zit rose from y %v to %v", tick, prev.Y, loc.Y)
		}
		prev = loc
		if z.IsFalling() {
			sawFalling = true
		}
		if tile, ok := z.CurrentTile(); ok && z.IsRolling() && tile.Left == next.Left() {
			t.Fatalf("tick %d: zit at %v rolls on the moving column", tick, loc)
		}
	}

	if !sawFalling {
		t.Error("zit never fell past the moving column")
	}
	if z.State() != actor.Dead {
		t.Fatalf("zit state = %v at %v, expected dead", z.State(), z.Location())
	}
	if z.Location().Y < 700 {
		t.Errorf("zit died at y %v, expected the bottom of the frame", z.Location().Y)
	}
}

func TestColumnFinishesShift(t *testing.T) {
	w := newWorld(t, corridor(4), nil)
	w.MoveUp()
	run(w, 10, 1000.0/60)

	c := w.Columns()[1]
	if c.Moving() {
		t.Fatal("column still moving after 10 ticks")
	}
	if !c.At(0).Has(terrain.Flat) || c.At(0).Top != 0 {
		t.Errorf("row 0 = %v, expected the flat at top 0", c.At(0))
	}
	if got := w.Level().Columns[1].Tiles; got[0] != terrain.Flat || got[1] != terrain.Empty {
		t.Errorf("Level() column 1 = %v, expected flat on row 0", got)
	}
}

func TestZoomRepeatsTicks(t *testing.T) {
	w1 := newWorld(t, corridor(3), nil)
	w2 := newWorld(t, corridor(3), nil)
	w2.ToggleZoom()

	w1.Update(50)
	w2.Update(50)

	if w1.Tick() != 1 || w2.Tick() != 4 {
		t.Errorf("ticks = %d, %d, expected 1, 4", w1.Tick(), w2.Tick())
	}
	if w2.Elapsed() != 200 {
		t.Errorf("Elapsed() = %v, expected 200", w2.Elapsed())
	}
	if w2.SpawnInterval() != 400 {
		t.Errorf("SpawnInterval() while zoomed = %v, expected 400", w2.SpawnInterval())
	}
	w2.ToggleZoom()
	if w2.Zoomed() {
		t.Error("ToggleZoom() did not switch back")
	}
}

func TestHurryCapsRate(t *testing.T) {
	w := newWorld(t, corridor(3), nil)

	for i := 1; i <= 10; i++ {
		if !w.Hurry() {
			t.Fatalf("Hurry() #%d = false", i)
		}
	}
	if w.Hurry() {
		t.Error("Hurry() raised the rate past the maximum")
	}
	if w.Rate() != 10 {
		t.Errorf("Rate() = %d, expected 10", w.Rate())
	}
}

func TestLevelCompletesWithHomes(t *testing.T) {
	w := newWorld(t, corridor(3), func(c *Config) {
		c.Rules.ZitsPerLevel = 2
		c.Rules.PassHome = 2
	})

	for range 2000 {
		if w.Done() {
			break
		}
		w.Update(50)
	}

	if !w.Done() {
		t.Fatalf("level not done: spawned %d, alive %d", w.Spawned(), w.Alive())
	}
	r := w.Result()
	if r.Home != 2 || r.Dead != 0 || r.Spawned != 2 || !r.Passed {
		t.Errorf("Result() = %+v, expected 2 home and passed", r)
	}
}

func TestDeadZitsArePruned(t *testing.T) {
	w := newWorld(t, layout(terrain.Flat|terrain.Start, terrain.Empty), func(c *Config) {
		c.Rules.ZitsPerLevel = 1
	})

	for range 2000 {
		if w.Done() {
			break
		}
		w.Update(50)
	}
	if !w.Done() || w.DeadCount() != 1 {
		t.Fatalf("Done() = %v, DeadCount() = %d", w.Done(), w.DeadCount())
	}
	if w.Result().Passed {
		t.Error("level with no homes passed")
	}

	run(w, 20, 50)
	if len(w.Zits()) != 0 {
		t.Errorf("dead zit kept after its explosion: %d zits", len(w.Zits()))
	}
}

func TestListenerReceivesEvents(t *testing.T) {
	var events []actor.Event
	w := newWorld(t, corridor(3), func(c *Config) {
		c.Rules.ZitsPerLevel = 1
		c.Listener = actor.ListenerFunc(func(ev actor.Event, _ *actor.Zit) {
			events = append(events, ev)
		})
	})

	run(w, 200, 50)
	if len(events) != 2 || events[0] != actor.EventSpawn || events[1] != actor.EventHome {
		t.Errorf("events = %v, expected [spawn home]", events)
	}
}

func TestEditor(t *testing.T) {
	w := newWorld(t, corridor(3), nil)

	if w.Cursor() != (Cursor{Column: 0, Row: 1}) {
		t.Errorf("Cursor() = %+v, expected spawn tile", w.Cursor())
	}
	if w.TogglePart(terrain.Flat) {
		t.Error("TogglePart() removed the only platform of the spawn tile")
	}
	if w.Edited() {
		t.Error("refused edit marked the level edited")
	}

	w.MoveCursor(1, 1)
	if !w.TogglePart(terrain.SpikesUp) {
		t.Fatal("TogglePart(SpikesUp) = false")
	}
	if got := w.Columns()[1].At(2).Parts; got != terrain.SpikesUp {
		t.Errorf("tile parts = %v, expected SpikesUp", got)
	}
	if !w.Edited() {
		t.Error("Edited() = false after a toggle")
	}

	w.MoveCursor(-5, -5)
	if w.Cursor() != (Cursor{}) {
		t.Errorf("Cursor() = %+v, expected clamped to 0,0", w.Cursor())
	}
	w.MoveCursor(99, 99)
	if w.Cursor() != (Cursor{Column: 2, Row: 3}) {
		t.Errorf("Cursor() = %+v, expected clamped to 2,3", w.Cursor())
	}

	w.AdjustStartDelay(-1)
	if w.StartDelay() != 0 {
		t.Errorf("StartDelay() = %d, expected 0", w.StartDelay())
	}
	w.AdjustStartDelay(3)
	if w.StartDelay() != 1500 {
		t.Errorf("StartDelay() = %d, expected 1500", w.StartDelay())
	}

	exported := w.Level()
	if exported.StartDelay != 1500 || exported.Columns[1].Tiles[2] != terrain.SpikesUp {
		t.Errorf("Level() did not carry edits: %+v", exported)
	}
	if err := exported.Validate(); err != nil {
		t.Errorf("exported level invalid: %v", err)
	}

	w.Reset(false)
	if w.Columns()[1].At(2).Parts != terrain.SpikesUp || w.StartDelay() != 1500 {
		t.Error("Reset(false) dropped edits")
	}

	w.Reset(true)
	if w.Columns()[1].At(2).Parts != terrain.Empty || w.StartDelay() != 100 || w.Edited() {
		t.Error("Reset(true) did not restore the loaded level")
	}
}

func TestResetClearsRun(t *testing.T) {
	w := newWorld(t, corridor(3), nil)
	w.Hurry()
	w.ToggleZoom()
	run(w, 50, 50)

	w.Reset(false)
	if w.Tick() != 0 || w.Spawned() != 0 || w.Rate() != 0 || w.Zoomed() || len(w.Zits()) != 0 {
		t.Errorf("Reset() left run state: %+v", w.Snapshot())
	}
}

func TestScores(t *testing.T) {
	s := Scores{}

	if !s.Record(Result{Level: 1, Home: 5}) {
		t.Error("first Record() = false")
	}
	if s.Record(Result{Level: 1, Home: 3}) {
		t.Error("Record() kept a worse result")
	}
	if !s.Record(Result{Level: 1, Home: 7}) {
		t.Error("Record() ignored a better result")
	}
	s.Record(Result{Level: 2, Home: 4})

	if got := s.Total(Result{Level: 2, Home: 1}); got != 8 {
		t.Errorf("Total() = %d, expected 8", got)
	}
	if got := s.Total(Result{Level: 3, Home: 2}); got != 13 {
		t.Errorf("Total() = %d, expected 13", got)
	}
	if got := s.Levels(); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("Levels() = %v, expected [1 2]", got)
	}
}

func playScripted(t *testing.T, lvl level.Level, commands bool) Snapshot {
	t.Helper()
	w := newWorld(t, lvl, nil)
	for i := range 600 {
		if commands {
			switch i {
			case 30:
				w.MoveDown()
			case 90:
				w.SelectRight()
				w.MoveUp()
			case 200:
				w.Hurry()
			case 300:
				w.ToggleZoom()
			}
		}
		w.Update(1000.0 / 60)
	}
	return w.Snapshot()
}

func TestDeterminism(t *testing.T) {
	lvl, err := level.Builtin().LoadByNumber(1)
	if err != nil {
		t.Fatalf("LoadByNumber(1) failed: %v", err)
	}

	snap1 := playScripted(t, lvl, true)
	snap2 := playScripted(t, lvl, true)
	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}

	idle := playScripted(t, lvl, false)
	if idle.Hash() == snap1.Hash() {
		t.Error("different inputs produced the same hash")
	}
}

func TestSnapshotJSON(t *testing.T) {
	w := newWorld(t, corridor(3), nil)
	run(w, 10, 50)

	data, err := json.Marshal(w.Snapshot())
	if err != nil {
		t.Fatalf("json.Marshal() failed: %v", err)
	}
	for _, want := range []string{`"tick":10`, `"Flat, Start"`, `"zits":[{`, `"state":"rolling"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("snapshot JSON missing %s: %s", want, data)
		}
	}
}
