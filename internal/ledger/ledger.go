// Package ledger accumulates named flags and collected missions over a
// play session. Entries are never removed.
package ledger

import "github.com/vovakirdan/datesim/internal/scene"

// Flag is a named counter and its accumulated value.
type Flag struct {
	Name  string `json:"name" csv:"flag"`
	Value int    `json:"value" csv:"value"`
}

// Ledger holds flag values in first-seen order plus the mission log.
type Ledger struct {
	order    []string
	values   map[string]int
	missions []scene.MissionKind
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{values: make(map[string]int)}
}

// ApplyOutcome adds each delta to its flag. Repeated names accumulate.
func (l *Ledger) ApplyOutcome(outcome []scene.Outcome) {
	for _, o := range outcome {
		l.add(o.Flag, o.Delta)
	}
}

func (l *Ledger) add(name string, delta int) {
	if _, seen := l.values[name]; !seen {
		l.order = append(l.order, name)
	}
	l.values[name] += delta
}

// CollectMission appends a mission token. Duplicates are kept.
func (l *Ledger) CollectMission(m scene.MissionKind) {
	l.missions = append(l.missions, m)
}

// Value returns the accumulated value of a flag, 0 if it was never set.
func (l *Ledger) Value(name string) int {
	return l.values[name]
}

// Missions returns a copy of the mission log in collection order.
func (l *Ledger) Missions() []scene.MissionKind {
	return append([]scene.MissionKind(nil), l.missions...)
}

// Snapshot returns a deep copy of the ledger.
func (l *Ledger) Snapshot() Snapshot {
	snap := Snapshot{
		Flags:    make([]Flag, 0, len(l.order)),
		Missions: l.Missions(),
	}
	for _, name := range l.order {
		snap.Flags = append(snap.Flags, Flag{Name: name, Value: l.values[name]})
	}
	return snap
}

// Restore replaces the ledger contents with snap.
func (l *Ledger) Restore(snap Snapshot) {
	l.order = nil
	l.values = make(map[string]int, len(snap.Flags))
	for _, f := range snap.Flags {
		l.add(f.Name, f.Value)
	}
	l.missions = append([]scene.MissionKind(nil), snap.Missions...)
}

// Snapshot is an immutable view of a ledger.
type Snapshot struct {
	Flags    []Flag              `json:"flags"`
	Missions []scene.MissionKind `json:"missions"`
}

// Flag returns the value of name and whether it was ever set.
func (s Snapshot) Flag(name string) (int, bool) {
	for _, f := range s.Flags {
		if f.Name == name {
			return f.Value, true
		}
	}
	return 0, false
}

// MissionCount returns how many times m was collected.
func (s Snapshot) MissionCount(m scene.MissionKind) int {
	n := 0
	for _, got := range s.Missions {
		if got == m {
			n++
		}
	}
	return n
}

// Empty reports whether nothing has been recorded.
func (s Snapshot) Empty() bool {
	return len(s.Flags) == 0 && len(s.Missions) == 0
}
