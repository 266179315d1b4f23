package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/opdozitz/internal/audio"
	"github.com/vovakirdan/opdozitz/internal/config"
	"github.com/vovakirdan/opdozitz/internal/core"
	"github.com/vovakirdan/opdozitz/internal/game"
	"github.com/vovakirdan/opdozitz/internal/level"
	"github.com/vovakirdan/opdozitz/internal/platform/spectate"
	"github.com/vovakirdan/opdozitz/internal/platform/tui"
	"github.com/vovakirdan/opdozitz/internal/registry"
	"github.com/vovakirdan/opdozitz/internal/storage"
)

var (
	flagMode     string
	flagMute     bool
	flagSpectate string
	flagLogFile  string
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play the game",
	Long: `Start playing. Without a level the menu lets you pick the mode and
the starting level; with one the game starts right away.

Controls:
  A/D or Left/Right  - Select column
  W/S or Up/Down     - Shift the selected column
  Z                  - Fast forward
  H                  - Hurry the spawn rate
  R / L              - Restart / reload level
  N / B              - Next / previous level
  E                  - Level editor (1-8 toggle parts, [ ] delay, Ctrl+S save)
  M                  - Mute
  P/Space            - Pause
  ?                  - Help
  Q/Ctrl+C           - Quit

Examples:
  opdozitz play
  opdozitz play 3
  opdozitz play 7 --mode opdozitz_strict
  opdozitz play --spectate :8080`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", game.ModeClassic, "Game mode when a level is given")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a websocket spectator stream on this address")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (default: discard)")
}

func runPlay(_ *cobra.Command, args []string) error {
	start := 0
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < level.MinNumber || n > level.MaxNumber {
			return fmt.Errorf("level must be a number between %d and %d", level.MinNumber, level.MaxNumber)
		}
		start = n
	}
	if !registry.Exists(flagMode) {
		return fmt.Errorf("unknown mode %q", flagMode)
	}

	// The terminal belongs to the game, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(expandHome(flagLogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger, err := newLogger(logOut, "opdozitz")
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	sound, closeSound := openSound(cfg, logger)
	defer closeSound()

	levels := levelSource()
	setup := game.Setup{
		Config:     cfg,
		Levels:     levels,
		Sound:      sound,
		Logger:     logger,
		SaveDir:    saveDir(),
		StartLevel: start,
	}
	if store != nil {
		setup.Recorder = store
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
	game.Configure(setup)

	rc := runtimeConfig()
	var saver tui.ScoreSaver
	if store != nil {
		saver = store
	}

	if start > 0 {
		g, err := registry.Create(flagMode)
		if err != nil {
			return err
		}
		_, err = tui.Run(g, saver, rc, logger)
		return err
	}

	all, err := levels.LoadAll()
	if err != nil {
		return fmt.Errorf("cannot list levels: %w", err)
	}
	return menuLoop(all, store, saver, rc, logger)
}

// menuLoop alternates between the menu, the scoreboard and games until
// the player quits.
func menuLoop(all []level.Level, store *storage.Store, saver tui.ScoreSaver, rc core.RuntimeConfig, logger *log.Logger) error {
	for {
		res, err := tui.RunMenu(all, rc)
		if err != nil {
			return err
		}
		rc = res.Config
		if res.Quit {
			return nil
		}

		if res.WantsScoreboard {
			if store == nil {
				logger.Warn("scoreboard unavailable without a database")
				continue
			}
			goBack, err := tui.RunScoreboard(store, rc.ScreenW, rc.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		if res.GameID == "" {
			return nil
		}
		g, err := registry.Create(res.GameID)
		if err != nil {
			logger.Error("cannot create game", "mode", res.GameID, "err", err)
			continue
		}
		if gs, ok := g.(*game.Game); ok {
			gs.SetStartLevel(res.StartLevel)
		}

		back, err := tui.Run(g, saver, rc, logger)
		if err != nil {
			return err
		}
		if !back {
			return nil
		}
	}
}

func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}
}

// openSound returns a player on the system speaker, or a silent one when
// sound is off or the device cannot be opened.
func openSound(cfg config.Config, logger *log.Logger) (*audio.Player, func()) {
	if flagMute || !cfg.Audio.Enabled {
		return audio.NewPlayer(audio.Silent, 0), func() {}
	}
	spk, err := audio.OpenSpeaker(audio.SampleRate)
	if err != nil {
		logger.Warn("audio unavailable", "err", err)
		return audio.NewPlayer(audio.Silent, 0), func() {}
	}
	return audio.NewPlayer(spk, cfg.Audio.Volume), spk.Close
}
