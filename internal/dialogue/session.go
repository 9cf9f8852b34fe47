// Package dialogue runs the conversation loop: picking a character, reading
// a scene line by line, and resolving its effects and branches.
//
// A Machine is single-threaded. The platform steps it once per tick and
// renders its View; it never blocks.
package dialogue

import (
	"fmt"

	"github.com/vovakirdan/datesim/internal/scene"
)

// State is the phase of the conversation loop.
type State int

const (
	Chilling State = iota // picking a character
	Talking               // reading a scene
	Choosing              // picking one of two branches
)

func (s State) String() string {
	switch s {
	case Chilling:
		return "chilling"
	case Talking:
		return "talking"
	case Choosing:
		return "choosing"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Session is the scene currently being read and the position in it.
// The scene is borrowed from the catalog.
type Session struct {
	scene  *scene.Scene
	cursor int
}

func newSession(s *scene.Scene) *Session {
	return &Session{scene: s}
}

// Scene returns the scene being played.
func (s *Session) Scene() *scene.Scene {
	return s.scene
}

// Cursor returns the index of the current line.
func (s *Session) Cursor() int {
	return s.cursor
}

// Line returns the current line.
func (s *Session) Line() string {
	return s.scene.Lines[s.cursor]
}

// Last reports whether the current line is the final one.
func (s *Session) Last() bool {
	return s.cursor+1 >= len(s.scene.Lines)
}

func (s *Session) advance() bool {
	if s.Last() {
		return false
	}
	s.cursor++
	return true
}

// Line is one surfaced line of dialogue.
type Line struct {
	Scene   string `json:"scene"`
	Speaker string `json:"speaker,omitempty"`
	Text    string `json:"text"`
}

func (l Line) String() string {
	if l.Speaker == "" {
		return l.Text
	}
	return l.Speaker + ": " + l.Text
}
