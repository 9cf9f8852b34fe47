package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/datesim/internal/games/datesim"
	"github.com/vovakirdan/datesim/internal/telemetry"
)

var (
	flagExportSlot string
	flagExportOut  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a ledger as CSV or a bundled story as YAML",
}

var exportLedgerCmd = &cobra.Command{
	Use:   "ledger <story>",
	Short: "Write the flags and missions of a save slot as CSV",
	Long: `Write the ledger of a saved session as CSV with the columns
kind, name and value. Flags come first in the order they were first set,
then one row per mission kind with how many were collected.

Examples:
  datesim export ledger bunker
  datesim export ledger bunker --slot alice --out alice.csv`,
	Args: cobra.ExactArgs(1),
	Run:  runExportLedger,
}

var exportStoryCmd = &cobra.Command{
	Use:   "story <story>",
	Short: "Write a bundled story file, as a template for custom stories",
	Long: `Write the YAML source of a bundled story.

Examples:
  datesim export story bunker --out my-story.yaml
  datesim play --file my-story.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runExportStory,
}

func init() {
	for _, c := range []*cobra.Command{exportLedgerCmd, exportStoryCmd} {
		c.Flags().StringVarP(&flagExportOut, "out", "o", "", "Output file (default: stdout)")
	}
	exportLedgerCmd.Flags().StringVar(&flagExportSlot, "slot", "", "Save slot (default: $USER)")

	exportCmd.AddCommand(exportLedgerCmd)
	exportCmd.AddCommand(exportStoryCmd)
}

func runExportLedger(_ *cobra.Command, args []string) {
	gameID := args[0]
	slot := flagExportSlot
	if slot == "" {
		slot = defaultSlot()
	}

	store := openStore()
	sv, err := store.LoadProgress(gameID, slot)
	store.Close()
	if err != nil {
		fatalf("%v", err)
	}
	if sv == nil {
		fatalf("no save for %s in slot %q", gameID, slot)
	}

	var p datesim.Progress
	if err := json.Unmarshal(sv.Data, &p); err != nil {
		fatalf("decoding save: %v", err)
	}

	withOutput(func(w io.Writer) error {
		return telemetry.WriteLedger(w, p.Ledger)
	})
}

func runExportStory(_ *cobra.Command, args []string) {
	data, err := datesim.BundledSource(args[0])
	if err != nil {
		fatalf("unknown story %q", args[0])
	}

	withOutput(func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// withOutput runs write against --out or stdout and exits on failure.
func withOutput(write func(io.Writer) error) {
	if flagExportOut == "" {
		if err := write(os.Stdout); err != nil {
			fatalf("%v", err)
		}
		return
	}

	f, err := os.Create(flagExportOut)
	if err != nil {
		fatalf("%v", err)
	}
	if err := write(f); err != nil {
		f.Close()
		fatalf("%v", err)
	}
	if err := f.Close(); err != nil {
		fatalf("%v", err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", flagExportOut)
}
