// opdozitz is a terminal puzzle game: shift girder columns so the rolling
// zits reach home.
//
// Usage:
//
//	opdozitz play [level]    - Play, starting at the menu or at a level
//	opdozitz levels          - List the available levels
//	opdozitz scores [mode]   - Show recorded level results
//	opdozitz serve           - Start SSH server for remote play
//	opdozitz sim <level>     - Run a level headless and print the outcome
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--db <path>         - Set database path (default: ~/.opdozitz/scores.db)
//	--config <path>     - Load tuning from a YAML file
//	--levels <dir>      - Level directory, also where edits are saved
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/opdozitz/internal/config"
	"github.com/vovakirdan/opdozitz/internal/level"
	"github.com/vovakirdan/opdozitz/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagDBPath     string
	flagConfig     string
	flagLevelsDir  string
	flagLogLevel   string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "opdozitz",
	Short: "Opdozitz - guide rolling zits home in your terminal",
	Long: `Opdozitz is a terminal puzzle game. Zits roll out of the start tile
and follow the girders; shift the columns up and down so they reach the
home tiles instead of falling or landing on spikes.

Available commands:
  play     - Play locally
  levels   - List levels
  scores   - View recorded results
  serve    - Start SSH server for remote play
  sim      - Run a level without a terminal

Examples:
  opdozitz play
  opdozitz play 4 --difficulty easy
  opdozitz serve --ssh :2222
  opdozitz sim 1 --zoom`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.opdozitz/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "~/.opdozitz/levels", "Directory with level files")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
}

func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           lvl,
	}), nil
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, config.DifficultyPreset(flagDifficulty))
	return cfg, nil
}

// expandHome resolves a leading ~ to the user's home directory.
func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

// levelSource prefers files in the level directory over the built-in set.
func levelSource() level.Chain {
	if flagLevelsDir == "" {
		return level.Chain{level.Builtin()}
	}
	return level.Chain{level.NewLoader(expandHome(flagLevelsDir)), level.Builtin()}
}

func saveDir() string {
	if flagLevelsDir == "" {
		return ""
	}
	return expandHome(flagLevelsDir)
}

// openStore opens the score database. Failure is logged and play goes on
// without persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}
