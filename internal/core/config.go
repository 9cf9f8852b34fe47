package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Input sampling ticks per second
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Progress counter shown by the platform (missions collected)
	GameOver bool // Whether nothing is left to play
	Busy     bool // Whether the game is mid-interaction and should not be saved
}

// Event is a notable thing that happened during a tick.
// Attrs are key/value pairs in the form accepted by structured loggers.
type Event struct {
	Name  string
	Attrs []any
}

// Attr returns the value stored under key, or "" if absent.
func (e Event) Attr(key string) any {
	for i := 0; i+1 < len(e.Attrs); i += 2 {
		if k, ok := e.Attrs[i].(string); ok && k == key {
			return e.Attrs[i+1]
		}
	}
	return ""
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event
}
