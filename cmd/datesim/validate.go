package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/datesim/internal/scene"
	"github.com/vovakirdan/datesim/internal/story"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check story files for errors",
	Long: `Load each story file and report malformed scenes and references to
scenes that do not exist. Exits non-zero if any file fails.

Examples:
  datesim validate my-story.yaml
  datesim validate stories/*.json`,
	Args: cobra.MinimumNArgs(1),
	Run:  runValidate,
}

func runValidate(_ *cobra.Command, args []string) {
	logger, _ := newLogger(appConfig, "validate", false)

	failed := 0
	for _, path := range args {
		s, err := story.Load(path)
		if err != nil {
			failed++
			logger.Error("invalid story", append([]any{"file", path}, errorAttrs(err)...)...)
			continue
		}
		logger.Info("ok", "file", path, "story", s.ID, "scenes", s.Catalog.Len(), "cast", len(s.Cast))
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d files failed\n", failed, len(args))
		os.Exit(1)
	}
}

// errorAttrs breaks typed story errors into log attributes.
func errorAttrs(err error) []any {
	var pe *scene.ParseError
	var le *scene.LookupError
	switch {
	case errors.As(err, &pe):
		return []any{"scene", pe.Index, "id", pe.ID, "field", pe.Field, "error", err}
	case errors.As(err, &le):
		return []any{"scene", le.Scene, "field", le.Field, "ref", le.Ref, "error", err}
	default:
		return []any{"error", err}
	}
}
