// datesim is a terminal dating sim: walk up to characters, talk, make
// choices and collect missions.
//
// Usage:
//
//	datesim list                 - List bundled stories
//	datesim play <story>         - Play a story (or --file for a custom one)
//	datesim menu                 - Story picker with saves browser
//	datesim serve                - Start SSH server for remote play
//	datesim saves [story]        - List save slots
//	datesim history <story>      - Show the conversation journal
//	datesim export ledger|story  - Export ledger CSV or a bundled story file
//	datesim validate <file>...   - Check story files
//
// Global flags:
//
//	--fps <rate>         - Input sampling rate
//	--db <path>          - Save database path (default: ~/.datesim/saves.db)
//	--config <path>      - Config file
//	--log-level <level>  - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/datesim/internal/config"
	"github.com/vovakirdan/datesim/internal/games/datesim"
)

var (
	// Global flags
	flagFPS        int
	flagDBPath     string
	flagConfigPath string
	flagLogLevel   string

	// appConfig is loaded before any command runs.
	appConfig config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "datesim",
	Short: "datesim - a dating sim in your terminal",
	Long: `datesim is a small dating sim played in the terminal.

Highlight a character, talk to them, pick answers and collect missions.
Progress is saved per slot and can be resumed later or over SSH.

Available commands:
  list      - Show bundled stories
  play      - Play a story directly
  menu      - Interactive story picker
  serve     - Start SSH server for remote play
  saves     - List save slots
  history   - Show the conversation journal
  export    - Export a ledger as CSV or a bundled story as YAML
  validate  - Check story files for errors

Examples:
  datesim list
  datesim play bunker
  datesim play --file ./my-story.yaml
  datesim serve --ssh :2222
  datesim export ledger bunker --slot alice`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Input sampling rate (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to save database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(validateCmd)
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfigPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.UI.TickRate = flagFPS
		cfg.Server.TickRate = flagFPS
	}
	if flags.Changed("db") {
		cfg.Storage.DBPath = flagDBPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	datesim.SetDefaults(datesim.Options{
		ShowLedger: cfg.UI.ShowLedger,
		BoxWidth:   cfg.UI.BoxWidth,
		BoxHeight:  cfg.UI.BoxHeight,
	})

	appConfig = cfg
	return nil
}

// defaultSlot names the local player's save slot.
func defaultSlot() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}

// fatalf prints an error and exits.
func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
