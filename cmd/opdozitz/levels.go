package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the available levels",
	Long: `Shows every level found in the level directory and the built-in set.
Files in the level directory replace built-in levels with the same number.`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	all, err := levelSource().LoadAll()
	if err != nil {
		return fmt.Errorf("cannot list levels: %w", err)
	}

	if len(all) == 0 {
		fmt.Println("No levels available.")
		return nil
	}

	// Calculate column widths
	maxName := 4 // "Name" header
	for _, l := range all {
		if len(l.Name) > maxName {
			maxName = len(l.Name)
		}
	}

	fmt.Printf("  %-3s  %-*s  %-7s  %-5s  %s\n", "No", maxName, "Name", "Columns", "Homes", "Source")
	fmt.Printf("  %-3s  %-*s  %-7s  %-5s  %s\n", "--", maxName, "----", "-------", "-----", "------")

	for _, l := range all {
		source := l.Path
		if source == "" {
			source = "built-in"
		}
		fmt.Printf("  %-3d  %-*s  %-7d  %-5d  %s\n", l.Number, maxName, l.Name, len(l.Columns), l.HomeCount(), source)
	}

	fmt.Println()
	fmt.Println("Run 'opdozitz play <no>' to play a level.")
	return nil
}
