// Package datesim is the dating-sim game: it wraps a dialogue machine over
// one story and draws it to the platform screen.
package datesim

import (
	"github.com/vovakirdan/datesim/internal/core"
	"github.com/vovakirdan/datesim/internal/dialogue"
	"github.com/vovakirdan/datesim/internal/story"
)

// Minimum screen size for the full layout. The roster strip may need more width.
const (
	minWidth  = 40
	minHeight = 16
)

// Options tune presentation. They never affect progression.
type Options struct {
	ShowLedger bool // Start with the ledger panel open
	BoxWidth   int  // Width of a character box, 0 for automatic
	BoxHeight  int  // Height of a character box, 0 for automatic
}

var defaults = Options{BoxWidth: 14, BoxHeight: 5}

// SetDefaults sets the options used by games created afterwards.
// Call it during startup, before any game is created.
func SetDefaults(o Options) {
	defaults = o
}

// Game implements registry.Game and registry.Saver for one story.
type Game struct {
	story   *story.Story
	machine *dialogue.Machine
	opts    Options

	screenW    int
	screenH    int
	tooSmall   bool
	showLedger bool
}

// New creates a game over the given story. Call Reset before stepping.
func New(s *story.Story) *Game {
	g := &Game{story: s, opts: defaults}
	g.machine = s.NewMachine()
	g.showLedger = g.opts.ShowLedger
	return g
}

// ID returns the story id.
func (g *Game) ID() string {
	return g.story.ID
}

// Title returns the story title.
func (g *Game) Title() string {
	return g.story.Title
}

// Story returns the story being played.
func (g *Game) Story() *story.Story {
	return g.story
}

// Machine returns the underlying progression machine.
func (g *Game) Machine() *dialogue.Machine {
	return g.machine
}

// Reset starts a fresh play session.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.machine = g.story.NewMachine()
	g.showLedger = g.opts.ShowLedger
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize adapts the layout to a new screen size without touching progress.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = w < g.requiredWidth() || h < minHeight
}

// requiredWidth is the narrowest screen that fits every character box.
func (g *Game) requiredWidth() int {
	n := g.machine.Registry().Len()
	return core.Max(minWidth, n*minBoxWidth+(n-1)*rosterGap)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionLedger) {
		g.showLedger = !g.showLedger
	}

	events := g.machine.Step(in)
	return core.StepResult{State: g.State(), Events: events}
}

// State reports missions collected as the score. The game is over once
// nobody is left to talk to.
func (g *Game) State() core.GameState {
	reg := g.machine.Registry()
	over := true
	for _, st := range reg.Statuses() {
		if st.Alive {
			over = false
			break
		}
	}
	return core.GameState{
		Score:    len(g.machine.Ledger().Missions()),
		GameOver: over,
		Busy:     g.machine.State() != dialogue.Chilling,
	}
}
