package datesim

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vovakirdan/datesim/internal/cast"
	"github.com/vovakirdan/datesim/internal/ledger"
)

const progressVersion = 1

// ErrBusy is returned when saving in the middle of a conversation.
var ErrBusy = errors.New("datesim: cannot save mid-conversation")

// Progress is the persisted state of a play session between conversations.
type Progress struct {
	Version  int             `json:"version"`
	Story    string          `json:"story"`
	Selected int             `json:"selected"`
	Cast     []cast.Status   `json:"cast"`
	Ledger   ledger.Snapshot `json:"ledger"`
}

// Progress captures the session. It fails with ErrBusy outside Chilling.
func (g *Game) Progress() (Progress, error) {
	if g.State().Busy {
		return Progress{}, ErrBusy
	}
	return Progress{
		Version:  progressVersion,
		Story:    g.story.ID,
		Selected: g.machine.Selected(),
		Cast:     g.machine.Registry().Statuses(),
		Ledger:   g.machine.Ledger().Snapshot(),
	}, nil
}

// ExportProgress encodes the session as JSON.
func (g *Game) ExportProgress() ([]byte, error) {
	p, err := g.Progress()
	if err != nil {
		return nil, err
	}
	return json.Marshal(p)
}

// ImportProgress replaces the session with a saved one. Saves from another
// story, from a newer format, or pointing at scenes the story no longer has
// are rejected and leave the current session untouched.
func (g *Game) ImportProgress(data []byte) error {
	var p Progress
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("datesim: decode progress: %w", err)
	}
	return g.Restore(p)
}

// Restore applies decoded progress.
func (g *Game) Restore(p Progress) error {
	if p.Version != progressVersion {
		return fmt.Errorf("datesim: unsupported progress version %d", p.Version)
	}
	if p.Story != g.story.ID {
		return fmt.Errorf("datesim: progress belongs to story %q, not %q", p.Story, g.story.ID)
	}
	if err := g.story.CheckStatuses(p.Cast); err != nil {
		return fmt.Errorf("datesim: %w", err)
	}

	m := g.story.NewMachine()
	m.Registry().Restore(p.Cast)
	m.Ledger().Restore(p.Ledger)
	m.Highlight(p.Selected)
	g.machine = m
	return nil
}
