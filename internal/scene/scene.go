// Package scene defines dialogue scenes and the immutable catalog they are
// loaded into.
package scene

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/datesim/internal/cast"
)

// MissionKind is a collectible token awarded when a scene completes.
type MissionKind int

const (
	MissionWater MissionKind = iota
	MissionExplore
	MissionOil
	MissionIron
)

var missionTags = [...]string{
	MissionWater:   "water",
	MissionExplore: "explore",
	MissionOil:     "oil",
	MissionIron:    "iron",
}

// Missions returns every mission kind in declaration order.
func Missions() []MissionKind {
	return []MissionKind{MissionWater, MissionExplore, MissionOil, MissionIron}
}

// String returns the wire tag, e.g. "water".
func (m MissionKind) String() string {
	if m < MissionWater || m > MissionIron {
		return fmt.Sprintf("mission(%d)", int(m))
	}
	return missionTags[m]
}

// ParseMission converts a wire tag to a MissionKind. Matching ignores case.
func ParseMission(tag string) (MissionKind, error) {
	norm := strings.ToLower(strings.TrimSpace(tag))
	for m, t := range missionTags {
		if t == norm {
			return MissionKind(m), nil
		}
	}
	return 0, fmt.Errorf("unknown mission %q", tag)
}

// MarshalText implements encoding.TextMarshaler.
func (m MissionKind) MarshalText() ([]byte, error) {
	if m < MissionWater || m > MissionIron {
		return nil, fmt.Errorf("invalid mission kind %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *MissionKind) UnmarshalText(text []byte) error {
	parsed, err := ParseMission(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Outcome is a flag delta applied when a scene completes.
type Outcome struct {
	Flag  string
	Delta int
}

// Option is one branch of a choice.
type Option struct {
	Label  string
	Target string // Scene id played when the option is picked
}

// Choice is a two-way branch offered after a scene's last line.
type Choice struct {
	Options [2]Option
}

// Scene is an ordered block of dialogue lines plus its completion effects.
type Scene struct {
	ID      string
	Speaker *cast.Kind // nil for narration
	Lines   []string
	Outcome []Outcome
	Choice  *Choice
	Mission *MissionKind
	Next    string // Scene the partner's dialogue moves to after completion; "" keeps it
}

// LineCount returns the number of lines in the scene.
func (s *Scene) LineCount() int {
	return len(s.Lines)
}

// SpeakerName returns the display name of the speaker, or "" for narration.
func (s *Scene) SpeakerName() string {
	if s.Speaker == nil {
		return ""
	}
	return s.Speaker.DisplayName()
}
