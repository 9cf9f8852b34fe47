package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	flagHistoryLimit int
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history <story>",
	Short: "Show the conversation journal of a story",
	Long: `Display the latest journal entries for a story: conversations started
and finished, missions collected, flags changed, choices made.

Examples:
  datesim history bunker
  datesim history bunker --limit 200
  datesim history bunker --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 50, "Number of entries to show")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the story's journal")
}

func runHistory(_ *cobra.Command, args []string) {
	gameID := args[0]

	store := openStore()
	defer store.Close()

	if flagHistoryClear {
		if err := store.ClearJournal(gameID); err != nil {
			fatalf("%v", err)
		}
		fmt.Printf("Cleared journal of %s\n", gameID)
		return
	}

	entries, err := store.Journal(gameID, flagHistoryLimit)
	if err != nil {
		fatalf("retrieving journal: %v", err)
	}

	if len(entries) == 0 {
		fmt.Printf("No journal entries for %s.\n", gameID)
		return
	}

	fmt.Printf("Journal - %s\n\n", gameID)
	// Oldest first reads like a story
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		fmt.Printf("  %s  %-10s  %-18s  %-12s  %-10s  %s\n",
			e.CreatedAt.Local().Format("01-02 15:04:05"), e.Slot, e.Event, e.Character, e.Scene, e.Detail)
	}
}
