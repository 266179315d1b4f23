// Package registry maps mode ids to game factories. The game package
// registers the classic and strict modes from init, and every front end
// (terminal, SSH, sim, scores) resolves modes through here so a mode id is
// the same string in the menu, in the scores table and on the command line.
package registry

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/opdozitz/internal/core"
)

// ErrUnknownMode is returned by Create for an id nobody registered.
var ErrUnknownMode = errors.New("registry: unknown mode")

// Game is one playable mode. Implementations are pure simulation: they never
// touch the terminal, and all timing comes from Step being called once per
// fixed tick.
type Game interface {
	// ID is the mode id the game was registered under. Results are stored
	// against it.
	ID() string

	// Title is the name shown in the menu and on the scoreboard.
	Title() string

	// Reset loads the start level. cfg gives the screen size and the tick
	// rate that fixes how many milliseconds one Step simulates.
	Reset(cfg core.RuntimeConfig)

	// Step runs one tick: it applies the frame's commands and then advances
	// the world.
	Step(in core.InputFrame) core.StepResult

	// Render draws into dst, which the caller has cleared.
	Render(dst *core.Screen)

	// State returns the HUD counters.
	State() core.GameState
}

// Summarizer is implemented by games that can describe their rules in one
// line for the menu.
type Summarizer interface {
	Summary() string
}

// GameInfo describes a registered mode.
type GameInfo struct {
	ID      string
	Title   string
	Summary string // empty when the game is not a Summarizer
}

// Factory returns a fresh game. Each call must return a new instance.
type Factory func() Game

type entry struct {
	factory Factory
	info    GameInfo
}

var (
	mu    sync.RWMutex
	modes = make(map[string]entry)
)

// Register adds a mode. It panics on an empty id, a nil factory, a
// duplicate id, or a factory whose games report a different id, since
// results would then be stored under a mode that cannot be created.
func Register(id string, f Factory) {
	if id == "" {
		panic("registry: empty mode id")
	}
	if f == nil {
		panic(fmt.Sprintf("registry: nil factory for mode %q", id))
	}

	g := f()
	if g.ID() != id {
		panic(fmt.Sprintf("registry: mode %q creates games with id %q", id, g.ID()))
	}
	info := GameInfo{ID: id, Title: g.Title()}
	if s, ok := g.(Summarizer); ok {
		info.Summary = s.Summary()
	}

	mu.Lock()
	defer mu.Unlock()
	if _, exists := modes[id]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", id))
	}
	modes[id] = entry{factory: f, info: info}
}

// List returns every registered mode ordered by id.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(modes))
	for _, e := range modes {
		out = append(out, e.info)
	}
	slices.SortFunc(out, func(a, b GameInfo) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Create returns a new game for mode id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := modes[id]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, id)
	}
	return e.factory(), nil
}

// Exists reports whether mode id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := modes[id]
	return ok
}
