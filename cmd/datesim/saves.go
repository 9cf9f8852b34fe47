package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/datesim/internal/registry"
)

var flagDeleteSave string

var savesCmd = &cobra.Command{
	Use:   "saves [story]",
	Short: "List save slots",
	Long: `Display save slots, most recently updated first.

Without a story id every story's saves are listed.

Examples:
  datesim saves
  datesim saves bunker
  datesim saves --delete 1b4e28ba-2fa1-11d2-883f-0016d3cca427`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSaves,
}

func init() {
	savesCmd.Flags().StringVar(&flagDeleteSave, "delete", "", "Delete the save with this id")
}

func runSaves(_ *cobra.Command, args []string) {
	store := openStore()
	defer store.Close()

	if flagDeleteSave != "" {
		if err := store.DeleteSave(flagDeleteSave); err != nil {
			fatalf("%v", err)
		}
		fmt.Printf("Deleted save %s\n", flagDeleteSave)
		return
	}

	gameID := ""
	if len(args) > 0 {
		gameID = args[0]
		if !registry.Exists(gameID) {
			fmt.Printf("Note: %q is not a bundled story\n", gameID)
		}
	}

	saves, err := store.ListSaves(gameID)
	if err != nil {
		fatalf("retrieving saves: %v", err)
	}

	if len(saves) == 0 {
		fmt.Println("No saves yet.")
		fmt.Println()
		fmt.Println("Finish a conversation in 'datesim play <story>' to create one.")
		return
	}

	fmt.Printf("  %-36s  %-10s  %-16s  %-8s  %s\n", "ID", "Story", "Slot", "Missions", "Updated")
	fmt.Printf("  %-36s  %-10s  %-16s  %-8s  %s\n", "--", "-----", "----", "--------", "-------")

	for _, sv := range saves {
		fmt.Printf("  %-36s  %-10s  %-16s  %-8d  %s\n",
			sv.ID, sv.GameID, sv.Slot, sv.Score, sv.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
}
