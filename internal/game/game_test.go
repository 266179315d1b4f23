package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/opdozitz/internal/audio"
	"github.com/vovakirdan/opdozitz/internal/config"
	"github.com/vovakirdan/opdozitz/internal/core"
	"github.com/vovakirdan/opdozitz/internal/level"
	"github.com/vovakirdan/opdozitz/internal/registry"
	"github.com/vovakirdan/opdozitz/internal/storage"
	"github.com/vovakirdan/opdozitz/internal/terrain"
	"github.com/vovakirdan/opdozitz/internal/world"
)

// corridor is a four-row level with a straight run from the spawn tile to
// a home n-1 columns to the right.
func corridor(number, n int) level.Level {
	lvl := level.Level{Number: number, Name: fmt.Sprintf("corridor %d", number), Rows: 4}
	for i := range n {
		p := terrain.Flat
		switch i {
		case 0:
			p |= terrain.Start
		case n - 1:
			p |= terrain.End
		}
		tiles := make([]terrain.Part, 4)
		tiles[1] = p
		lvl.Columns = append(lvl.Columns, level.Column{Locked: i == 0 || i == n-1, Tiles: tiles})
	}
	return lvl
}

type fakeLevels map[int]level.Level

func (f fakeLevels) LoadByNumber(number int) (level.Level, error) {
	lvl, ok := f[number]
	if !ok {
		return level.Level{}, fmt.Errorf("%w: level %d", level.ErrNotFound, number)
	}
	return lvl.Clone(), nil
}

func (f fakeLevels) LoadAll() ([]level.Level, error) {
	var out []level.Level
	for _, l := range f {
		out = append(out, l)
	}
	return out, nil
}

type fakeRecorder struct {
	saved []storage.LevelResult
	best  world.Scores
	err   error
}

func (r *fakeRecorder) SaveLevelResult(lr storage.LevelResult) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.saved = append(r.saved, lr)
	return int64(len(r.saved)), nil
}

func (r *fakeRecorder) BestScores(string) (world.Scores, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make(world.Scores)
	for k, v := range r.best {
		out[k] = v
	}
	return out, nil
}

type countingPublisher struct {
	snaps []world.Snapshot
}

func (p *countingPublisher) Publish(s world.Snapshot) {
	p.snaps = append(p.snaps, s)
}

func testSetup() Setup {
	cfg := config.Default()
	cfg.World.ZitsPerLevel = 2
	cfg.World.PassHome = 2
	return Setup{
		Config: cfg,
		Levels: fakeLevels{1: corridor(1, 3), 2: corridor(2, 5), 3: corridor(3, 4)},
	}
}

// 20 ticks per second gives 50 ms steps.
var testRuntime = core.RuntimeConfig{ScreenW: 80, ScreenH: 40, TickRate: 20}

func newGame(t *testing.T, mode string, s Setup) *Game {
	t.Helper()
	g := New(mode, s)
	g.Reset(testRuntime)
	if g.World() == nil {
		t.Fatalf("Reset() did not load a level")
	}
	return g
}

func idle() core.InputFrame {
	return core.NewInputFrame()
}

func playUntilDone(t *testing.T, g *Game) core.StepResult {
	t.Helper()
	for range 4000 {
		res := g.Step(idle())
		if res.LevelDone {
			return res
		}
	}
	t.Fatalf("level never finished: %+v", g.State())
	return core.StepResult{}
}

func TestRegisteredModes(t *testing.T) {
	for _, id := range []string{ModeClassic, ModeStrict} {
		if !registry.Exists(id) {
			t.Errorf("mode %q not registered", id)
			continue
		}
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) error = %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, expected %q", g.ID(), id)
		}
	}
}

func TestModeSummaries(t *testing.T) {
	summaries := make(map[string]string)
	for _, info := range registry.List() {
		summaries[info.ID] = info.Summary
	}
	classic, strict := summaries[ModeClassic], summaries[ModeStrict]
	if classic == "" || strict == "" {
		t.Fatalf("missing summaries: classic %q, strict %q", classic, strict)
	}
	if classic == strict {
		t.Errorf("classic and strict share summary %q", classic)
	}
}

func TestResetLoadsStartLevel(t *testing.T) {
	s := testSetup()
	s.StartLevel = 3
	g := newGame(t, ModeClassic, s)

	st := g.State()
	if st.Level != 3 || g.World().Number() != 3 {
		t.Errorf("State().Level = %d, expected 3", st.Level)
	}
	if st.GameOver || st.Paused || st.Editing {
		t.Errorf("fresh state = %+v", st)
	}

	s.StartLevel = 99
	g = newGame(t, ModeClassic, s)
	if g.State().Level != 1 {
		t.Errorf("out of range start level gave %d, expected 1", g.State().Level)
	}
}

func TestBuiltinLevelsByDefault(t *testing.T) {
	g := New(ModeClassic, Setup{})
	g.Reset(core.DefaultConfig())
	if g.World() == nil || g.World().Number() != 1 {
		t.Fatal("default setup did not load built-in level 1")
	}
}

func TestMissingLevel(t *testing.T) {
	g := New(ModeClassic, Setup{Levels: fakeLevels{}})
	g.Reset(testRuntime)

	if g.World() != nil {
		t.Fatal("World() should be nil without levels")
	}
	res := g.Step(core.FrameOf(core.ActionUp, core.ActionZoom))
	if res.State.Level != 1 {
		t.Errorf("Level = %d, expected 1", res.State.Level)
	}

	scr := core.NewScreen(80, 40)
	g.Render(scr)
	if !strings.Contains(scr.String(), "No level 1") {
		t.Error("missing level overlay not rendered")
	}
}

func TestStrictModeKeepsZitsOutOfMovingColumns(t *testing.T) {
	classic := newGame(t, ModeClassic, testSetup())
	strict := newGame(t, ModeStrict, testSetup())

	if !classic.World().Rules().ColumnsMoveZits {
		t.Error("classic mode should carry zits")
	}
	if strict.World().Rules().ColumnsMoveZits {
		t.Error("strict mode should not carry zits")
	}
	if strict.Title() == classic.Title() {
		t.Error("modes should have distinct titles")
	}
}

func TestSeparateGamesReplayIdentically(t *testing.T) {
	a := newGame(t, ModeClassic, testSetup())
	b := newGame(t, ModeClassic, testSetup())

	for tick := range 200 {
		a.Step(idle())
		b.Step(idle())
		if sa, sb := a.Snapshot(), b.Snapshot(); !reflect.DeepEqual(sa, sb) {
			t.Fatalf("tick %d: snapshots diverged:\n%+v\n%+v", tick, sa, sb)
		}
	}
	if a.Snapshot().Spawned == 0 {
		t.Error("no zit spawned during replay")
	}
}

func TestLevelNavigation(t *testing.T) {
	g := newGame(t, ModeClassic, testSetup())

	tests := []struct {
		action   core.Action
		expected int
	}{
		{core.ActionPrevLevel, 1}, // already first
		{core.ActionNextLevel, 2},
		{core.ActionNextLevel, 3},
		{core.ActionNextLevel, 3}, // level 4 missing
		{core.ActionPrevLevel, 2},
	}
	for i, tc := range tests {
		res := g.Step(core.FrameOf(tc.action))
		if res.State.Level != tc.expected {
			t.Errorf("step %d (%v): Level = %d, expected %d", i, tc.action, res.State.Level, tc.expected)
		}
	}
}

func TestCommandsReachWorld(t *testing.T) {
	g := newGame(t, ModeClassic, testSetup())
	w := g.World()

	g.Step(core.FrameOf(core.ActionZoom))
	if !w.Zoomed() {
		t.Error("Zoom action did not toggle fast-forward")
	}
	g.Step(core.FrameOf(core.ActionHurry))
	if w.Rate() != 1 {
		t.Errorf("Rate() = %d, expected 1", w.Rate())
	}

	g.Step(core.FrameOf(core.ActionUp))
	if !w.Columns()[w.Selected()].Moving() {
		t.Error("Up action did not shift the selected column")
	}
}

func TestPauseFreezesWorld(t *testing.T) {
	g := newGame(t, ModeClassic, testSetup())

	g.Step(core.FrameOf(core.ActionPause))
	tick := g.World().Tick()
	for range 10 {
		g.Step(idle())
	}
	if g.World().Tick() != tick {
		t.Errorf("paused world advanced from %d to %d", tick, g.World().Tick())
	}
	if !g.State().Paused {
		t.Error("State().Paused = false")
	}

	g.Step(core.FrameOf(core.ActionPause))
	if g.World().Tick() == tick {
		t.Error("unpaused world did not advance")
	}
}

func TestLevelFinishRecordsResult(t *testing.T) {
	rec := &fakeRecorder{best: world.Scores{2: 7}}
	pub := &countingPublisher{}
	s := testSetup()
	s.Recorder = rec
	s.Publisher = pub
	s.Sound = audio.NewPlayer(audio.Silent, 0.5)
	g := newGame(t, ModeClassic, s)

	res := playUntilDone(t, g)

	if !res.State.GameOver || !res.State.Passed {
		t.Errorf("State() = %+v, expected passed level", res.State)
	}
	if res.State.Home != 2 || res.State.Score != 9 {
		t.Errorf("Home = %d, Score = %d, expected 2 and 9", res.State.Home, res.State.Score)
	}
	if len(rec.saved) != 1 {
		t.Fatalf("saved %d results, expected 1", len(rec.saved))
	}
	if got := rec.saved[0]; got.Mode != ModeClassic || got.Level != 1 || got.Home != 2 || !got.Passed {
		t.Errorf("saved result = %+v", got)
	}
	if g.Scores()[1] != 2 {
		t.Errorf("Scores()[1] = %d, expected 2", g.Scores()[1])
	}
	if len(pub.snaps) == 0 || !pub.snaps[len(pub.snaps)-1].Done {
		t.Error("final snapshot not published")
	}

	// Finishing is reported once.
	for range 10 {
		if g.Step(idle()).LevelDone {
			t.Fatal("LevelDone reported twice")
		}
	}

	g.Step(core.FrameOf(core.ActionRestart))
	if g.State().GameOver || g.World().Spawned() != 0 {
		t.Error("restart did not clear the finished level")
	}
}

func TestRecorderErrorsAreNotFatal(t *testing.T) {
	s := testSetup()
	s.Recorder = &fakeRecorder{err: errors.New("disk full")}
	g := newGame(t, ModeClassic, s)

	res := playUntilDone(t, g)
	if !res.State.Passed {
		t.Errorf("State() = %+v, expected passed", res.State)
	}
}

func TestEditorSavesLevel(t *testing.T) {
	dir := t.TempDir()
	s := testSetup()
	s.SaveDir = dir
	g := newGame(t, ModeClassic, s)

	g.Step(core.FrameOf(core.ActionEdit))
	if !g.State().Editing {
		t.Fatal("Edit action did not enter the editor")
	}
	tick := g.World().Tick()

	// Cursor starts on the spawn tile; move to column 1, row 2.
	g.Step(core.FrameOf(core.ActionRight))
	g.Step(core.FrameOf(core.ActionDown))
	g.Step(core.FrameOf(core.ActionToggleSpikesUp))
	g.Step(core.FrameOf(core.ActionDelayUp))

	if g.World().Tick() != tick {
		t.Error("world advanced while editing")
	}
	if c := g.World().Cursor(); c.Column != 1 || c.Row != 2 {
		t.Errorf("Cursor() = %+v, expected {1 2}", c)
	}
	if !g.World().Edited() {
		t.Error("Edited() = false after toggling a part")
	}

	g.Step(core.FrameOf(core.ActionSave))
	if _, err := os.Stat(filepath.Join(dir, level.FileName(1))); err != nil {
		t.Fatalf("saved level missing: %v", err)
	}

	lvl, err := level.NewLoader(dir).LoadByNumber(1)
	if err != nil {
		t.Fatalf("LoadByNumber() error = %v", err)
	}
	if !lvl.Columns[1].Tiles[2].Has(terrain.SpikesUp) {
		t.Errorf("saved tile = %v, expected SpikesUp", lvl.Columns[1].Tiles[2])
	}
	if lvl.StartDelay != 500 {
		t.Errorf("StartDelay = %d, expected 500", lvl.StartDelay)
	}
	if !strings.HasPrefix(g.Message(), "Saved ") {
		t.Errorf("Message() = %q", g.Message())
	}
}

func TestEditorRefusesToClearSpawnTile(t *testing.T) {
	g := newGame(t, ModeClassic, testSetup())

	g.Step(core.FrameOf(core.ActionEdit))
	g.Step(core.FrameOf(core.ActionToggleFlat))

	if g.World().Edited() {
		t.Error("spawn tile lost its platform")
	}
	if g.Message() == "" {
		t.Error("refused edit should explain itself")
	}
}

func TestSaveWithoutDirectory(t *testing.T) {
	g := newGame(t, ModeClassic, testSetup())

	g.Step(core.FrameOf(core.ActionEdit))
	g.Step(core.FrameOf(core.ActionSave))
	if g.Message() != "No level directory configured" {
		t.Errorf("Message() = %q", g.Message())
	}
}

func TestMuteTogglesPlayer(t *testing.T) {
	s := testSetup()
	s.Sound = audio.NewPlayer(audio.Silent, 0.5)
	g := newGame(t, ModeClassic, s)

	g.Step(core.FrameOf(core.ActionMute))
	if !s.Sound.Muted() || g.Message() != "Sound off" {
		t.Errorf("Muted() = %v, Message() = %q", s.Sound.Muted(), g.Message())
	}
}

func TestRender(t *testing.T) {
	g := newGame(t, ModeClassic, testSetup())
	// First spawn comes after 3 s; leave the zit mid-corridor.
	for range 80 {
		g.Step(idle())
	}

	scr := core.NewScreen(80, 40)
	g.Render(scr)
	out := scr.String()

	for _, want := range []string{"Opdozitz", "Level 1", "Score 0", "┌", "─", "⌂", "a/d select"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}

	colored := false
	for y := 0; y < scr.Height(); y++ {
		for x := 0; x < scr.Width(); x++ {
			if scr.GetCell(x, y).Color == core.ColorZit {
				colored = true
			}
		}
	}
	if !colored {
		t.Error("no zit drawn after spawning")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newGame(t, ModeClassic, testSetup())

	scr := core.NewScreen(20, 10)
	g.Render(scr)
	if !strings.Contains(scr.String(), "Window too small") {
		t.Error("small screen overlay not rendered")
	}
}

func TestSpoke(t *testing.T) {
	tests := []struct {
		angle    float64
		expected rune
	}{
		{0, '|'},
		{0.8, '/'},
		{1.6, '-'},
		{2.4, '\\'},
		{3.2, '|'},
		{-0.8, '\\'},
	}
	for _, tc := range tests {
		if got := spoke(tc.angle); got != tc.expected {
			t.Errorf("spoke(%v) = %q, expected %q", tc.angle, got, tc.expected)
		}
	}
}
