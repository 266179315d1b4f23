package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and tick length. The simulation is
// deterministic without a seed.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Simulation ticks per second (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  40,
		TickRate: 60,
	}
}

// TickMillis returns the simulated time of one tick in milliseconds.
func (c RuntimeConfig) TickMillis() float64 {
	if c.TickRate <= 0 {
		return 1000.0 / 60
	}
	return 1000.0 / float64(c.TickRate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Sum of per-level bests, current level live
	Level    int  // Current level number
	Home     int  // Zits home on the current level
	Dead     int  // Zits lost on the current level
	GameOver bool // Whether the current level has finished
	Passed   bool // Whether a finished level was passed
	Paused   bool // Whether the game is paused
	Editing  bool // Whether the tile editor is active
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State GameState

	// LevelDone is set on the tick the current level finished.
	LevelDone bool
}
