package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/datesim/internal/games/datesim"
	"github.com/vovakirdan/datesim/internal/platform/tui"
	"github.com/vovakirdan/datesim/internal/registry"
	"github.com/vovakirdan/datesim/internal/story"
)

var (
	flagStoryFile string
	flagSlot      string
	flagNew       bool
)

var playCmd = &cobra.Command{
	Use:   "play [story]",
	Short: "Play a story",
	Long: `Start playing a bundled story, or a story file with --file.

Progress in the save slot is resumed unless --new is given, and saved
after every finished conversation.

Controls:
  Left/Right, A/D  - Highlight a character / an answer
  Enter/Space      - Talk, next line, pick answer
  Esc/Backspace    - Leave the conversation
  Tab              - Toggle the ledger
  ?                - Full help
  Ctrl+S           - Screenshot
  Q/Ctrl+C         - Quit

Examples:
  datesim play bunker
  datesim play bunker --slot alice
  datesim play bunker --new
  datesim play --file ./my-story.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagStoryFile, "file", "", "Path to a story file (YAML or JSON)")
	playCmd.Flags().StringVar(&flagSlot, "slot", "", "Save slot (default: $USER)")
	playCmd.Flags().BoolVar(&flagNew, "new", false, "Start over instead of resuming the slot")
}

func runPlay(_ *cobra.Command, args []string) {
	game, err := pickGame(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'datesim list' to see available stories.")
		os.Exit(1)
	}

	slot := flagSlot
	if slot == "" {
		slot = defaultSlot()
	}

	logger, closeLog := newLogger(appConfig, "datesim", true)
	defer closeLog.Close()

	svc, cleanup := openServices(logger, slot)
	svc.Resume = !flagNew

	logger.Info("playing", "game", game.ID(), "slot", slot, "resume", svc.Resume)
	runErr := tui.Run(game, svc, runtimeConfig())
	cleanup()

	if runErr != nil {
		fatalf("running game: %v", runErr)
	}
}

// pickGame resolves the story to play from --file or the argument.
func pickGame(args []string) (registry.Game, error) {
	if flagStoryFile != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("give either a story id or --file, not both")
		}
		s, err := story.Load(flagStoryFile)
		if err != nil {
			return nil, err
		}
		return datesim.New(s), nil
	}

	if len(args) == 0 {
		return nil, fmt.Errorf("missing story id")
	}
	if !registry.Exists(args[0]) {
		return nil, fmt.Errorf("unknown story %q", args[0])
	}
	return registry.Create(args[0])
}
