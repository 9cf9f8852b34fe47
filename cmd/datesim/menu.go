package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/datesim/internal/platform/tui"
)

var menuSlot string

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start datesim with a story picker",
	Long: `Start datesim in interactive menu mode.

Pick a story to continue it, press N to start it over, or Tab to browse
saves. Press B while idle in a story to come back here.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play (continue if saved)
  N            - New game
  Tab          - Saves browser
  Q            - Quit

Examples:
  datesim menu
  datesim menu --slot alice
  datesim menu --db ./saves.db`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&menuSlot, "slot", "", "Save slot (default: $USER)")
}

func runMenu(_ *cobra.Command, _ []string) {
	slot := menuSlot
	if slot == "" {
		slot = defaultSlot()
	}

	logger, closeLog := newLogger(appConfig, "datesim", true)
	defer closeLog.Close()

	svc, cleanup := openServices(logger, slot)
	err := tui.RunSession(svc, runtimeConfig())
	cleanup()

	if err != nil {
		fatalf("%v", err)
	}
}
