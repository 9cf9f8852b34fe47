package datesim

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/muesli/reflow/wordwrap"

	"github.com/vovakirdan/datesim/internal/core"
	"github.com/vovakirdan/datesim/internal/dialogue"
)

const (
	hudHeight    = 2 // title + status line
	rosterGap    = 2 // blank columns between character boxes
	minBoxWidth  = 9
	rosterLabels = 3 // name, favor, mission marker
	ledgerWidth  = 24
)

// Render draws the current state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	v := g.machine.View()
	g.renderHUD(dst, v)
	rosterBottom := g.renderRoster(dst, v)

	box := core.NewRect(0, rosterBottom+1, g.screenW, g.screenH-rosterBottom-1)
	if g.showLedger && box.W > ledgerWidth*2 {
		panel := core.NewRect(box.Right()-ledgerWidth, box.Y, ledgerWidth, box.H)
		box.W -= ledgerWidth + 1
		g.renderLedger(dst, v, panel)
	}

	switch v.State {
	case dialogue.Talking:
		g.renderDialogue(dst, v, box)
	case dialogue.Choosing:
		g.renderChoice(dst, v, box)
	default:
		g.renderIdle(dst, v, box)
	}
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y+1, "Please resize terminal", core.ColorDim)
}

func (g *Game) renderHUD(dst *core.Screen, v dialogue.View) {
	dst.DrawTextCentered(0, g.Title(), core.ColorTitle)

	status := fmt.Sprintf("Missions: %d", len(v.Ledger.Missions))
	if len(v.Ledger.Flags) > 0 {
		status += fmt.Sprintf("  Flags: %d", len(v.Ledger.Flags))
	}
	dst.DrawTextColor(1, 1, status, core.ColorDim)

	state := v.State.String()
	dst.DrawTextColor(g.screenW-utf8.RuneCountInString(state)-1, 1, state, core.ColorDim)
}

// renderRoster lays characters out left to right and returns the first
// row below the strip.
func (g *Game) renderRoster(dst *core.Screen, v dialogue.View) int {
	top := hudHeight
	n := len(v.Roster)
	if n == 0 {
		dst.DrawTextCentered(top+1, "Nobody is around.", core.ColorDim)
		return top + 2
	}

	boxH := g.opts.BoxHeight
	if boxH < 3 {
		boxH = 5
	}
	slot := g.screenW / n
	boxW := core.Clamp(g.opts.BoxWidth, minBoxWidth, core.Max(slot-rosterGap, minBoxWidth))
	if g.opts.BoxWidth == 0 {
		boxW = core.Clamp(slot-rosterGap, minBoxWidth, 14)
	}
	stripW := n*boxW + (n-1)*rosterGap
	x0 := core.Max((g.screenW-stripW)/2, 0)

	for i, entry := range v.Roster {
		r := core.NewRect(x0+i*(boxW+rosterGap), top, boxW, boxH)

		color := core.ColorBorder
		switch {
		case !entry.Alive:
			color = core.ColorDead
		case v.HasPartner && entry.Character == v.Partner:
			color = core.ColorHighlight
		case !v.HasPartner && i == v.Highlighted:
			color = core.ColorHighlight
		}
		dst.DrawBox(r, color)

		face := portrait(entry.Character)
		inner := r.Inset(1)
		for j := 0; j < inner.H && j < len(face); j++ {
			centerIn(dst, inner.X, inner.W, inner.Y+j, face[j], color)
		}

		name := entry.Name
		if !entry.Alive {
			name += " (gone)"
		}
		centerIn(dst, r.X, r.W, r.Bottom(), name, color)
		centerIn(dst, r.X, r.W, r.Bottom()+1, fmt.Sprintf("favor %d", entry.Favor), core.ColorFavor)
		if entry.Mission {
			centerIn(dst, r.X, r.W, r.Bottom()+2, "[mission]", core.ColorMission)
		}
	}
	return top + boxH + rosterLabels
}

func (g *Game) renderIdle(dst *core.Screen, v dialogue.View, box core.Rect) {
	dst.DrawBox(box, core.ColorBorder)
	inner := box.Inset(1)

	entry, ok := v.Highlight()
	switch {
	case !ok:
		dst.DrawTextColor(inner.X+1, inner.Y, "There is no one to talk to.", core.ColorDim)
	case !entry.Alive:
		dst.DrawTextColor(inner.X+1, inner.Y, entry.Name+" is gone.", core.ColorDead)
	default:
		dst.DrawTextColor(inner.X+1, inner.Y, "Talk to "+entry.Name+"?", core.ColorDefault)
	}
}

func (g *Game) renderDialogue(dst *core.Screen, v dialogue.View, box core.Rect) {
	dst.DrawBox(box, core.ColorBorder)
	if v.Speaker != "" {
		dst.DrawTextColor(box.X+2, box.Y, " "+v.Speaker+" ", core.ColorSpeaker)
	}
	counter := fmt.Sprintf(" %d/%d ", v.LineIndex+1, v.LineCount)
	dst.DrawTextColor(box.Right()-utf8.RuneCountInString(counter)-2, box.Bottom()-1, counter, core.ColorDim)

	inner := box.Inset(1)
	drawWrapped(dst, core.NewRect(inner.X+1, inner.Y, inner.W-2, inner.H), v.Line, core.ColorDefault)
}

func (g *Game) renderChoice(dst *core.Screen, v dialogue.View, box core.Rect) {
	half := (box.W - 1) / 2
	for i, label := range v.Options {
		r := core.NewRect(box.X+i*(half+1), box.Y, half, box.H)
		color := core.ColorBorder
		if i == v.Option {
			color = core.ColorHighlight
		}
		dst.DrawBox(r, color)

		inner := r.Inset(1)
		text := label
		if i == v.Option {
			text = "> " + label
		}
		drawWrapped(dst, core.NewRect(inner.X+1, inner.Y, inner.W-2, inner.H), text, color)
	}
}

func (g *Game) renderLedger(dst *core.Screen, v dialogue.View, panel core.Rect) {
	dst.DrawBox(panel, core.ColorBorder)
	dst.DrawTextColor(panel.X+2, panel.Y, " Ledger ", core.ColorTitle)

	inner := panel.Inset(1)
	y := inner.Y
	line := func(text string, c core.Color) {
		if y < inner.Bottom() {
			dst.DrawTextColor(inner.X+1, y, truncate(text, inner.W-1), c)
			y++
		}
	}

	if v.Ledger.Empty() {
		line("(empty)", core.ColorDim)
		return
	}
	for _, f := range v.Ledger.Flags {
		line(fmt.Sprintf("%s %+d", f.Name, f.Value), core.ColorFlag)
	}
	if len(v.Ledger.Missions) > 0 {
		names := make([]string, 0, len(v.Ledger.Missions))
		for _, m := range v.Ledger.Missions {
			names = append(names, m.String())
		}
		line("missions:", core.ColorDim)
		for _, wrapped := range strings.Split(wordwrap.String(strings.Join(names, ", "), inner.W-1), "\n") {
			line(wrapped, core.ColorMission)
		}
	}
}

// drawWrapped word-wraps text into r, dropping lines that do not fit.
func drawWrapped(dst *core.Screen, r core.Rect, text string, c core.Color) {
	if r.W <= 0 {
		return
	}
	lines := strings.Split(wordwrap.String(text, r.W), "\n")
	for i, l := range lines {
		if i >= r.H {
			break
		}
		dst.DrawTextColor(r.X, r.Y+i, truncate(l, r.W), c)
	}
}

func centerIn(dst *core.Screen, x, w, y int, text string, c core.Color) {
	text = truncate(text, w)
	dst.DrawTextColor(x+(w-utf8.RuneCountInString(text))/2, y, text, c)
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
