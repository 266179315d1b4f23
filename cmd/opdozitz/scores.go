package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/opdozitz/internal/game"
	"github.com/vovakirdan/opdozitz/internal/registry"
	"github.com/vovakirdan/opdozitz/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show recorded level results",
	Long: `Without a mode, summarizes every mode that has been played.
With a mode, lists its most recent level results and the best total.

Examples:
  opdozitz scores
  opdozitz scores opdozitz
  opdozitz scores opdozitz_strict --limit 50`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 20, "Number of results to show")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	if len(args) == 0 {
		return printModeStats(store)
	}

	mode := args[0]
	if !registry.Exists(mode) {
		fmt.Fprintf(os.Stderr, "Known modes: %s, %s\n", game.ModeClassic, game.ModeStrict)
		return fmt.Errorf("unknown mode %q", mode)
	}

	history, err := store.History(mode, flagScoresLimit)
	if err != nil {
		return err
	}
	total, err := store.TotalScore(mode)
	if err != nil {
		return err
	}

	fmt.Printf("Results - %s\n", mode)
	fmt.Println()

	if len(history) == 0 {
		fmt.Println("No results recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'opdozitz play --mode %s 1' to record the first one!\n", mode)
		return nil
	}

	fmt.Printf("  %-5s  %-20s  %-4s  %-4s  %-6s  %s\n", "Level", "Name", "Home", "Lost", "Result", "Date")
	fmt.Printf("  %-5s  %-20s  %-4s  %-4s  %-6s  %s\n", "-----", "----", "----", "----", "------", "----")
	for _, r := range history {
		result := "failed"
		if r.Passed {
			result = "passed"
		}
		fmt.Printf("  %-5d  %-20s  %-4d  %-4d  %-6s  %s\n",
			r.Level, r.Name, r.Home, r.Dead, result, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Printf("Best total: %d\n", total)
	return nil
}

func printModeStats(store *storage.Store) error {
	stats, err := store.GetAllModeStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		return errors.New("no results recorded yet")
	}

	modes := make([]string, 0, len(stats))
	for m := range stats {
		modes = append(modes, m)
	}
	sort.Strings(modes)

	fmt.Printf("  %-16s  %-5s  %-6s  %-5s  %s\n", "Mode", "Runs", "Passed", "Saved", "Last played")
	fmt.Printf("  %-16s  %-5s  %-6s  %-5s  %s\n", "----", "----", "------", "-----", "-----------")
	for _, m := range modes {
		st := stats[m]
		fmt.Printf("  %-16s  %-5d  %-6d  %-5d  %s\n",
			m, st.Runs, st.LevelsPassed, st.TotalHome, st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
