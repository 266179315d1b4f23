package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/opdozitz/internal/core"
	"github.com/vovakirdan/opdozitz/internal/game"
	"github.com/vovakirdan/opdozitz/internal/level"
	"github.com/vovakirdan/opdozitz/internal/platform/spectate"
)

var (
	flagSimMode     string
	flagSimZoom     bool
	flagSimMaxTicks int
	flagSimRecord   bool
	flagSimRealtime bool
)

var simCmd = &cobra.Command{
	Use:   "sim <level>",
	Short: "Run a level without a terminal",
	Long: `Runs a level with no player input until every zit has been spawned
and resolved, then prints the outcome and a hash of the final state.
Two runs of the same level and config always print the same hash.

With --spectate and --realtime the run can be watched over websocket.

Examples:
  opdozitz sim 1
  opdozitz sim 5 --zoom --record
  opdozitz sim 2 --realtime --spectate :8080`,
	Args: cobra.ExactArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagSimMode, "mode", game.ModeClassic, "Game mode")
	simCmd.Flags().BoolVar(&flagSimZoom, "zoom", false, "Fast forward from the first tick")
	simCmd.Flags().IntVar(&flagSimMaxTicks, "max-ticks", 200000, "Give up after this many ticks")
	simCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Save the result to the scores database")
	simCmd.Flags().BoolVar(&flagSimRealtime, "realtime", false, "Pace ticks at --fps")
	simCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a websocket spectator stream on this address")
}

func runSim(_ *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil || n < level.MinNumber || n > level.MaxNumber {
		return fmt.Errorf("level must be a number between %d and %d", level.MinNumber, level.MaxNumber)
	}
	if flagSimMode != game.ModeClassic && flagSimMode != game.ModeStrict {
		return fmt.Errorf("unknown mode %q", flagSimMode)
	}

	logger, err := newLogger(os.Stderr, "opdozitz-sim")
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	setup := game.Setup{
		Config:     cfg,
		Levels:     levelSource(),
		Logger:     logger,
		StartLevel: n,
	}
	if flagSimRecord {
		store := openStore(logger)
		if store != nil {
			defer store.Close()
			setup.Recorder = store
		}
	}
	if flagSpectate != "" {
		hub := spectate.NewHub(logger.WithPrefix("spectate"))
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			if err := hub.ListenAndServe(ctx, flagSpectate); err != nil {
				logger.Error("spectator server stopped", "err", err)
			}
		}()
		setup.Publisher = hub
	}

	g := game.New(flagSimMode, setup)
	rc := core.RuntimeConfig{ScreenW: 80, ScreenH: 40, TickRate: flagFPS}
	g.Reset(rc)
	if g.World() == nil {
		return fmt.Errorf("level %d could not be loaded", n)
	}

	if flagSimZoom {
		g.Step(core.FrameOf(core.ActionZoom))
	}

	var ticker *time.Ticker
	if flagSimRealtime {
		ticker = time.NewTicker(time.Duration(rc.TickMillis() * float64(time.Millisecond)))
		defer ticker.Stop()
	}

	idle := core.NewInputFrame()
	for i := 0; i < flagSimMaxTicks; i++ {
		if ticker != nil {
			<-ticker.C
		}
		if g.Step(idle).LevelDone {
			break
		}
	}

	w := g.World()
	if !w.Done() {
		return fmt.Errorf("level %d did not finish within %d ticks", n, flagSimMaxTicks)
	}

	r := w.Result()
	snap := w.Snapshot()
	outcome := "failed"
	if r.Passed {
		outcome = "passed"
	}
	logger.Info("level finished", "level", r.Level, "outcome", outcome, "ticks", snap.Tick)

	fmt.Printf("Level %d %q: %s\n", r.Level, r.Name, outcome)
	fmt.Printf("  home %d  lost %d  spawned %d\n", r.Home, r.Dead, r.Spawned)
	fmt.Printf("  ticks %d  hash %016x\n", snap.Tick, snap.Hash())
	return nil
}
