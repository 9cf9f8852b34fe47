package dialogue

import (
	"github.com/vovakirdan/datesim/internal/cast"
	"github.com/vovakirdan/datesim/internal/core"
	"github.com/vovakirdan/datesim/internal/ledger"
	"github.com/vovakirdan/datesim/internal/scene"
)

// Machine is the progression state machine for one play session.
// The catalog is shared read-only; registry and ledger belong to the session.
type Machine struct {
	catalog *scene.Catalog
	cast    *cast.Registry
	ledger  *ledger.Ledger

	state    State
	selected int // highlighted roster index while Chilling
	option   int // highlighted option while Choosing

	partner cast.Kind
	session *Session
	choice  *scene.Choice // pending branch while Choosing

	transcript []Line
}

// NewMachine creates a machine in the Chilling state with the first
// character highlighted.
func NewMachine(catalog *scene.Catalog, reg *cast.Registry, led *ledger.Ledger) *Machine {
	return &Machine{
		catalog: catalog,
		cast:    reg,
		ledger:  led,
	}
}

// State returns the current phase.
func (m *Machine) State() State { return m.state }

// Selected returns the highlighted roster index.
func (m *Machine) Selected() int { return m.selected }

// Option returns the highlighted choice option.
func (m *Machine) Option() int { return m.option }

// Session returns the active session, or nil outside Talking.
func (m *Machine) Session() *Session { return m.session }

// Partner returns the character being talked to and whether there is one.
func (m *Machine) Partner() (cast.Kind, bool) {
	if m.state == Chilling {
		return 0, false
	}
	return m.partner, true
}

// Registry returns the character registry driven by the machine.
func (m *Machine) Registry() *cast.Registry { return m.cast }

// Ledger returns the flag/mission ledger driven by the machine.
func (m *Machine) Ledger() *ledger.Ledger { return m.ledger }

// Catalog returns the scene catalog.
func (m *Machine) Catalog() *scene.Catalog { return m.catalog }

// Transcript returns every line surfaced so far, in order.
func (m *Machine) Transcript() []Line {
	return append([]Line(nil), m.transcript...)
}

// Step applies at most one transition for the frame.
// Priority is cancel, then confirm, then left/right.
func (m *Machine) Step(in core.InputFrame) []core.Event {
	switch {
	case in.Has(core.ActionCancel):
		return m.Cancel()
	case in.Has(core.ActionConfirm):
		switch m.state {
		case Chilling:
			return m.Select()
		case Talking:
			return m.Advance()
		case Choosing:
			return m.Pick(m.option)
		}
	}

	delta := 0
	if in.Has(core.ActionLeft) {
		delta--
	}
	if in.Has(core.ActionRight) {
		delta++
	}
	if delta != 0 {
		m.Move(delta)
	}
	return nil
}

// Move shifts the highlight. In Chilling it moves along the roster, in
// Choosing between the two options. Both are clamped.
func (m *Machine) Move(delta int) {
	switch m.state {
	case Chilling:
		if n := m.cast.Len(); n > 0 {
			m.selected = core.Clamp(m.selected+delta, 0, n-1)
		}
	case Choosing:
		m.option = core.Clamp(m.option+delta, 0, 1)
	}
}

// Highlight places the roster cursor at i, clamped. Only valid in Chilling.
func (m *Machine) Highlight(i int) {
	if m.state != Chilling || m.cast.Len() == 0 {
		return
	}
	m.selected = core.Clamp(i, 0, m.cast.Len()-1)
}

// Select starts talking to the highlighted character.
// Dead characters and characters pointing at unknown scenes are rejected.
func (m *Machine) Select() []core.Event {
	if m.state != Chilling {
		return nil
	}
	st, ok := m.cast.At(m.selected)
	if !ok {
		return nil
	}
	if !st.Alive {
		return []core.Event{event(EventTalkRejected, "character", st.Character.String(), "reason", "dead")}
	}
	s, ok := m.catalog.Get(st.CurrentScene)
	if !ok {
		return []core.Event{event(EventTalkRejected, "character", st.Character.String(), "reason", "unknown scene", "scene", st.CurrentScene)}
	}

	m.partner = st.Character
	events := []core.Event{event(EventTalkStarted, "character", st.Character.String(), "scene", s.ID)}
	return append(events, m.open(s))
}

// Advance moves to the next line, or completes the scene on the last line.
func (m *Machine) Advance() []core.Event {
	if m.state != Talking {
		return nil
	}
	if m.session.advance() {
		return []core.Event{m.surface()}
	}
	return m.complete()
}

// Cancel leaves the conversation. From Talking the session is discarded
// with no effects. From Choosing the branch is dropped; effects of the
// completed scene stay applied.
func (m *Machine) Cancel() []core.Event {
	switch m.state {
	case Talking:
		ev := event(EventTalkCancelled,
			"character", m.partner.String(),
			"scene", m.session.scene.ID,
			"line", m.session.cursor)
		m.toChilling()
		return []core.Event{ev}
	case Choosing:
		m.toChilling()
		return []core.Event{event(EventChoiceAbandoned, "character", m.partner.String())}
	}
	return nil
}

// Pick takes branch i of the pending choice and starts its target scene.
func (m *Machine) Pick(i int) []core.Event {
	if m.state != Choosing || i < 0 || i > 1 {
		return nil
	}
	opt := m.choice.Options[i]
	s := m.catalog.MustGet(opt.Target)
	events := []core.Event{event(EventOptionPicked, "option", i, "label", opt.Label, "scene", s.ID)}
	return append(events, m.open(s))
}

func (m *Machine) open(s *scene.Scene) core.Event {
	m.state = Talking
	m.session = newSession(s)
	m.choice = nil
	m.option = 0
	return m.surface()
}

func (m *Machine) surface() core.Event {
	s := m.session.scene
	line := Line{Scene: s.ID, Speaker: s.SpeakerName(), Text: m.session.Line()}
	m.transcript = append(m.transcript, line)
	return event(EventLine,
		"scene", s.ID,
		"index", m.session.cursor,
		"speaker", line.Speaker,
		"text", line.Text)
}

// complete applies the scene's effects once and leaves Talking.
func (m *Machine) complete() []core.Event {
	s := m.session.scene
	m.session = nil
	events := []core.Event{event(EventSceneCompleted, "character", m.partner.String(), "scene", s.ID)}

	if s.Mission != nil {
		m.ledger.CollectMission(*s.Mission)
		events = append(events, event(EventMissionCollected, "mission", s.Mission.String()))
	}

	for _, o := range s.Outcome {
		m.ledger.ApplyOutcome([]scene.Outcome{o})
		events = append(events, event(EventFlagChanged, "flag", o.Flag, "delta", o.Delta, "value", m.ledger.Value(o.Flag)))
		events = append(events, m.reserved(o)...)
	}

	if s.Next != "" {
		if st, ok := m.cast.Get(m.partner); ok && st.Alive && st.CurrentScene != s.Next {
			m.cast.AdvanceDialogue(m.partner, s.Next)
			events = append(events, event(EventDialogueMoved, "character", m.partner.String(), "scene", s.Next))
		}
	}

	st, _ := m.cast.Get(m.partner)
	if s.Choice != nil && st.Alive {
		m.state = Choosing
		m.choice = s.Choice
		m.option = 0
		return append(events, event(EventChoiceOffered,
			"first", s.Choice.Options[0].Label,
			"second", s.Choice.Options[1].Label))
	}

	m.toChilling()
	return events
}

func (m *Machine) reserved(o scene.Outcome) []core.Event {
	st, ok := m.cast.Get(m.partner)
	if !ok || !st.Alive {
		return nil
	}
	switch o.Flag {
	case FlagFavor:
		m.cast.AdjustFavor(m.partner, o.Delta)
		after, _ := m.cast.Get(m.partner)
		return []core.Event{event(EventFavorChanged, "character", m.partner.String(), "favor", after.Favor)}
	case FlagDeath:
		if o.Delta > 0 {
			m.cast.MarkDead(m.partner)
			return []core.Event{event(EventCharacterDied, "character", m.partner.String())}
		}
	}
	return nil
}

func (m *Machine) toChilling() {
	m.state = Chilling
	m.session = nil
	m.choice = nil
	m.option = 0
}
