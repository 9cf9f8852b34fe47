package dialogue

import (
	"github.com/vovakirdan/datesim/internal/cast"
	"github.com/vovakirdan/datesim/internal/ledger"
)

// RosterEntry is one character as shown in the picker.
type RosterEntry struct {
	Character cast.Kind
	Name      string
	Favor     int
	Alive     bool
	Mission   bool // current scene awards a mission
}

// View is the read-only output surface handed to the presentation layer.
type View struct {
	State State

	Roster      []RosterEntry
	Highlighted int  // roster index, meaningful while Chilling
	HasPartner  bool // Partner is set while Talking or Choosing
	Partner     cast.Kind

	Scene     string
	Speaker   string
	Line      string
	LineIndex int
	LineCount int

	Options [2]string
	Option  int

	Ledger ledger.Snapshot
}

// Highlight returns the highlighted roster entry, if any.
func (v View) Highlight() (RosterEntry, bool) {
	if v.Highlighted < 0 || v.Highlighted >= len(v.Roster) {
		return RosterEntry{}, false
	}
	return v.Roster[v.Highlighted], true
}

// View builds a snapshot of the machine for rendering.
func (m *Machine) View() View {
	v := View{
		State:       m.state,
		Highlighted: m.selected,
		Roster:      make([]RosterEntry, 0, m.cast.Len()),
		Ledger:      m.ledger.Snapshot(),
	}

	for _, st := range m.cast.Statuses() {
		entry := RosterEntry{
			Character: st.Character,
			Name:      st.Character.DisplayName(),
			Favor:     st.Favor,
			Alive:     st.Alive,
		}
		if s, ok := m.catalog.Get(st.CurrentScene); ok && st.Alive {
			entry.Mission = s.Mission != nil
		}
		v.Roster = append(v.Roster, entry)
	}

	if p, ok := m.Partner(); ok {
		v.HasPartner = true
		v.Partner = p
	}

	switch m.state {
	case Talking:
		s := m.session.scene
		v.Scene = s.ID
		v.Speaker = s.SpeakerName()
		v.Line = m.session.Line()
		v.LineIndex = m.session.cursor
		v.LineCount = s.LineCount()
	case Choosing:
		v.Options = [2]string{m.choice.Options[0].Label, m.choice.Options[1].Label}
		v.Option = m.option
	}
	return v
}
