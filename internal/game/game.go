// Package game adapts the zit world to the platform's registry.Game
// interface: it maps input actions to world and editor commands, keeps the
// per-level bests, and renders the playfield into a core.Screen.
package game

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/opdozitz/internal/audio"
	"github.com/vovakirdan/opdozitz/internal/config"
	"github.com/vovakirdan/opdozitz/internal/core"
	"github.com/vovakirdan/opdozitz/internal/level"
	"github.com/vovakirdan/opdozitz/internal/registry"
	"github.com/vovakirdan/opdozitz/internal/storage"
	"github.com/vovakirdan/opdozitz/internal/terrain"
	"github.com/vovakirdan/opdozitz/internal/world"
)

// Mode IDs. The strict mode refuses to shift a column with a zit inside
// it instead of carrying the zit along.
const (
	ModeClassic = "opdozitz"
	ModeStrict  = "opdozitz_strict"
)

// Ticks between spectator snapshots.
const publishEvery = 6

// messageTicks is how long a status message stays on screen.
const messageTicks = 120

// Levels supplies layouts by number.
type Levels interface {
	LoadByNumber(number int) (level.Level, error)
	LoadAll() ([]level.Level, error)
}

// Recorder persists finished levels.
type Recorder interface {
	SaveLevelResult(r storage.LevelResult) (int64, error)
	BestScores(mode string) (world.Scores, error)
}

// Publisher receives world snapshots for spectators.
type Publisher interface {
	Publish(snap world.Snapshot)
}

// Setup carries the host dependencies shared by every game instance.
// Zero fields fall back to built-in levels, default config and no
// persistence.
type Setup struct {
	Config     config.Config
	Levels     Levels
	Recorder   Recorder
	Sound      *audio.Player
	Publisher  Publisher
	Logger     *log.Logger
	SaveDir    string // edited levels are written here
	StartLevel int
}

var (
	setupMu sync.RWMutex
	shared  = Setup{Config: config.Default()}
)

// Configure replaces the setup used by games created through the registry.
func Configure(s Setup) {
	setupMu.Lock()
	defer setupMu.Unlock()
	shared = s
}

func currentSetup() Setup {
	setupMu.RLock()
	defer setupMu.RUnlock()
	return shared
}

func init() {
	registry.Register(ModeClassic, func() registry.Game {
		return New(ModeClassic, currentSetup())
	})
	registry.Register(ModeStrict, func() registry.Game {
		return New(ModeStrict, currentSetup())
	})
}

// Game is one player's session.
type Game struct {
	mode   string
	setup  Setup
	logger *log.Logger

	world    *world.World
	scores   world.Scores
	levelNum int
	loadErr  error

	tickMs  float64
	screenW int
	screenH int

	tick    uint64
	paused  bool
	editing bool
	done    bool

	message      string
	messageTicks int
}

// New creates a game for mode with the given setup.
func New(mode string, s Setup) *Game {
	if s.Levels == nil {
		s.Levels = level.Builtin()
	}
	if s.Config.Terrain.TileSize == 0 {
		s.Config = config.Default()
	}
	logger := s.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		mode:   mode,
		setup:  s,
		logger: logger.WithPrefix(mode),
		scores: make(world.Scores),
	}
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return g.mode
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeStrict {
		return "Opdozitz (Strict)"
	}
	return "Opdozitz"
}

// Summary states how the mode treats zits on moving columns.
func (g *Game) Summary() string {
	if g.mode == ModeStrict {
		return "moving columns are closed to zits"
	}
	return "zits ride the columns you move"
}

// Reset starts the session over at the configured start level.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tickMs = cfg.TickMillis()
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tick = 0
	g.paused = false
	g.editing = false
	g.message = ""
	g.messageTicks = 0

	g.scores = make(world.Scores)
	if g.setup.Recorder != nil {
		best, err := g.setup.Recorder.BestScores(g.mode)
		if err != nil {
			g.logger.Warn("cannot load best scores", "err", err)
		} else {
			g.scores = best
		}
	}

	start := g.setup.StartLevel
	if start < level.MinNumber || start > level.MaxNumber {
		start = level.MinNumber
	}
	g.load(start)
}

func (g *Game) worldConfig() world.Config {
	wc := g.setup.Config.WorldConfig(nil)
	if g.setup.Sound != nil {
		wc.Listener = g.setup.Sound
	}
	if g.mode == ModeStrict {
		wc.Rules.ColumnsMoveZits = false
	}
	return wc
}

// load switches to level n and reports whether it succeeded. On failure the
// current world stays in place.
func (g *Game) load(n int) bool {
	lvl, err := g.setup.Levels.LoadByNumber(n)
	if err == nil {
		var w *world.World
		w, err = world.New(lvl, g.worldConfig())
		if err == nil {
			g.world = w
			g.levelNum = n
			g.loadErr = nil
			g.done = false
			g.logger.Info("level loaded", "level", n, "name", lvl.Name, "columns", len(lvl.Columns))
			return true
		}
	}
	g.logger.Warn("cannot load level", "level", n, "err", err)
	if g.world == nil {
		g.levelNum = n
		g.loadErr = err
	}
	g.say(fmt.Sprintf("Level %d unavailable", n))
	return false
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	if g.messageTicks > 0 {
		g.messageTicks--
	}

	if in.Has(core.ActionMute) && g.setup.Sound != nil {
		if g.setup.Sound.ToggleMute() {
			g.say("Sound off")
		} else {
			g.say("Sound on")
		}
	}
	if in.Has(core.ActionPause) && !g.editing {
		g.paused = !g.paused
	}

	switch {
	case in.Has(core.ActionNextLevel):
		g.changeLevel(1)
	case in.Has(core.ActionPrevLevel):
		g.changeLevel(-1)
	}

	if g.world == nil {
		return core.StepResult{State: g.State()}
	}

	switch {
	case in.Has(core.ActionRestart):
		g.world.Reset(false)
		g.done = false
		g.say("Level restarted")
	case in.Has(core.ActionReload):
		g.world.Reset(true)
		g.done = false
		g.say("Level reloaded")
	}

	if in.Has(core.ActionEdit) {
		g.editing = !g.editing
		g.paused = false
	}

	if g.editing {
		g.edit(in)
		return core.StepResult{State: g.State()}
	}

	g.command(in)
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.world.Update(g.tickMs)

	result := core.StepResult{}
	if !g.done && g.world.Done() {
		g.done = true
		result.LevelDone = true
		g.finish()
	}

	if g.setup.Publisher != nil && (g.tick%publishEvery == 0 || result.LevelDone) {
		g.setup.Publisher.Publish(g.world.Snapshot())
	}

	result.State = g.State()
	return result
}

func (g *Game) command(in core.InputFrame) {
	w := g.world
	if in.Has(core.ActionLeft) {
		w.SelectLeft()
	}
	if in.Has(core.ActionRight) {
		w.SelectRight()
	}
	moved := false
	if in.Has(core.ActionUp) {
		moved = w.MoveUp()
	} else if in.Has(core.ActionDown) {
		moved = w.MoveDown()
	}
	if moved && g.setup.Sound != nil {
		g.setup.Sound.Play(audio.CueMove)
	}
	if in.Has(core.ActionZoom) {
		w.ToggleZoom()
	}
	if in.Has(core.ActionHurry) && !w.Hurry() {
		g.say("Spawn rate at maximum")
	}
}

var toggleParts = map[core.Action]terrain.Part{
	core.ActionToggleFlat:             terrain.Flat,
	core.ActionToggleSlantUp:          terrain.SlantUp,
	core.ActionToggleSlantDown:        terrain.SlantDown,
	core.ActionToggleTransitionTop:    terrain.TransitionTop,
	core.ActionToggleTransitionBottom: terrain.TransitionBottom,
	core.ActionToggleBlock:            terrain.Block,
	core.ActionToggleSpikesUp:         terrain.SpikesUp,
	core.ActionToggleSpikesDown:       terrain.SpikesDown,
}

func (g *Game) edit(in core.InputFrame) {
	w := g.world
	switch {
	case in.Has(core.ActionLeft):
		w.MoveCursor(-1, 0)
	case in.Has(core.ActionRight):
		w.MoveCursor(1, 0)
	case in.Has(core.ActionUp):
		w.MoveCursor(0, -1)
	case in.Has(core.ActionDown):
		w.MoveCursor(0, 1)
	}

	for _, a := range core.ToggleActions() {
		if in.Has(a) && !w.TogglePart(toggleParts[a]) {
			g.say("Tile cannot be changed")
		}
	}

	if in.Has(core.ActionDelayUp) {
		w.AdjustStartDelay(1)
	}
	if in.Has(core.ActionDelayDown) {
		w.AdjustStartDelay(-1)
	}
	if in.Has(core.ActionSave) {
		g.save()
	}
}

func (g *Game) save() {
	if g.setup.SaveDir == "" {
		g.say("No level directory configured")
		return
	}
	p, err := level.Store(g.setup.SaveDir, g.world.Level())
	if err != nil {
		g.logger.Error("cannot save level", "level", g.levelNum, "err", err)
		g.say("Save failed")
		return
	}
	g.logger.Info("level saved", "level", g.levelNum, "path", p)
	g.say("Saved " + p)
}

func (g *Game) changeLevel(delta int) {
	n := g.levelNum + delta
	if n < level.MinNumber || n > level.MaxNumber {
		return
	}
	if g.load(n) {
		g.editing = false
		g.paused = false
	}
}

// finish records the result of a completed level.
func (g *Game) finish() {
	r := g.world.Result()
	if g.scores.Record(r) {
		g.logger.Info("new level best", "level", r.Level, "home", r.Home)
	}
	if g.setup.Recorder != nil {
		if _, err := g.setup.Recorder.SaveLevelResult(storage.FromResult(g.mode, r)); err != nil {
			g.logger.Warn("cannot save level result", "err", err)
		}
	}
	if g.setup.Sound != nil {
		g.setup.Sound.Play(audio.CueLevelDone)
	}
	g.logger.Info("level finished", "level", r.Level, "home", r.Home, "dead", r.Dead, "passed", r.Passed)
}

func (g *Game) say(msg string) {
	g.message = msg
	g.messageTicks = messageTicks
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Level:    g.levelNum,
		GameOver: g.done,
		Paused:   g.paused,
		Editing:  g.editing,
	}
	if g.world == nil {
		st.Score = g.scores.Total(world.Result{})
		return st
	}
	r := g.world.Result()
	st.Score = g.scores.Total(r)
	st.Home = r.Home
	st.Dead = r.Dead
	st.Passed = g.done && r.Passed
	return st
}

// World returns the running world, nil if no level could be loaded.
func (g *Game) World() *world.World {
	return g.world
}

// Scores returns the per-level bests of this session.
func (g *Game) Scores() world.Scores {
	return g.scores
}

// Snapshot returns the current world snapshot.
func (g *Game) Snapshot() world.Snapshot {
	if g.world == nil {
		return world.Snapshot{Level: g.levelNum}
	}
	return g.world.Snapshot()
}

// Message returns the active status message, if any.
func (g *Game) Message() string {
	if g.messageTicks == 0 {
		return ""
	}
	return g.message
}

// SetStartLevel sets the level the next Reset starts at.
func (g *Game) SetStartLevel(n int) {
	g.setup.StartLevel = n
}
