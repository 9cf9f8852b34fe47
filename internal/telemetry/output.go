// Package telemetry writes play-session events and ledger snapshots as CSV.
package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/vovakirdan/datesim/internal/core"
	"github.com/vovakirdan/datesim/internal/ledger"
)

// EventRecord is one row of an events CSV file.
type EventRecord struct {
	Time      string `csv:"time"`
	Session   string `csv:"session"`
	Game      string `csv:"game"`
	Tick      uint64 `csv:"tick"`
	Event     string `csv:"event"`
	Character string `csv:"character"`
	Scene     string `csv:"scene"`
	Detail    string `csv:"detail"`
}

// LedgerRow is one row of a ledger export.
type LedgerRow struct {
	Kind  string `csv:"kind"` // "flag" or "mission"
	Name  string `csv:"name"`
	Value int    `csv:"value"`
}

// Recorder appends events to events-<session>.csv in its directory.
// A nil Recorder discards everything.
type Recorder struct {
	session       string
	file          *os.File
	headerWritten bool
}

// NewRecorder creates the output directory and the session's events file.
// Returns nil if dir is empty (output disabled). A leading ~ is the home directory.
func NewRecorder(dir, session string) (*Recorder, error) {
	if dir == "" {
		return nil, nil
	}

	if dir[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("telemetry: cannot expand home directory: %w", err)
		}
		dir = filepath.Join(home, dir[1:])
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating telemetry directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("events-%s.csv", session))
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	return &Recorder{session: session, file: f}, nil
}

// Path returns the events file path.
func (r *Recorder) Path() string {
	if r == nil {
		return ""
	}
	return r.file.Name()
}

// Record writes the events of one tick.
func (r *Recorder) Record(game string, tick uint64, events []core.Event) error {
	if r == nil || len(events) == 0 {
		return nil
	}

	now := time.Now().UTC().Format(time.RFC3339)
	records := make([]EventRecord, 0, len(events))
	for _, ev := range events {
		character, scene, detail := Fields(ev)
		records = append(records, EventRecord{
			Time:      now,
			Session:   r.session,
			Game:      game,
			Tick:      tick,
			Event:     ev.Name,
			Character: character,
			Scene:     scene,
			Detail:    detail,
		})
	}

	if !r.headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, r.file); err != nil {
			return fmt.Errorf("writing events: %w", err)
		}
		r.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, r.file); err != nil {
		return fmt.Errorf("writing events: %w", err)
	}
	return nil
}

// Close closes the events file.
func (r *Recorder) Close() error {
	if r == nil {
		return nil
	}
	return r.file.Close()
}

// Fields splits an event into the character and scene it concerns plus the
// remaining attributes as "key=value" pairs.
func Fields(ev core.Event) (character, scene, detail string) {
	var rest []string
	for i := 0; i+1 < len(ev.Attrs); i += 2 {
		key := fmt.Sprint(ev.Attrs[i])
		val := fmt.Sprint(ev.Attrs[i+1])
		switch key {
		case "character":
			character = val
		case "scene":
			scene = val
		default:
			rest = append(rest, key+"="+val)
		}
	}
	return character, scene, strings.Join(rest, " ")
}

// LedgerRows flattens a snapshot: flags in first-seen order, then one row
// per mission kind with its count, in collection order of first appearance.
func LedgerRows(snap ledger.Snapshot) []LedgerRow {
	rows := make([]LedgerRow, 0, len(snap.Flags)+len(snap.Missions))
	for _, f := range snap.Flags {
		rows = append(rows, LedgerRow{Kind: "flag", Name: f.Name, Value: f.Value})
	}
	seen := make(map[string]bool)
	for _, m := range snap.Missions {
		name := m.String()
		if seen[name] {
			continue
		}
		seen[name] = true
		rows = append(rows, LedgerRow{Kind: "mission", Name: name, Value: snap.MissionCount(m)})
	}
	return rows
}

// WriteLedger writes a snapshot as CSV with a header row.
func WriteLedger(w io.Writer, snap ledger.Snapshot) error {
	rows := LedgerRows(snap)
	if len(rows) == 0 {
		// Header only
		_, err := io.WriteString(w, "kind,name,value\n")
		return err
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("writing ledger: %w", err)
	}
	return nil
}
