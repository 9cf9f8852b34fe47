package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/datesim/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List bundled stories",
	Long:  `Shows every story bundled with datesim.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No stories available.")
		return
	}

	fmt.Println("Available stories:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'datesim play <id>' to play a story.")
}
