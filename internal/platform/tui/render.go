package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/datesim/internal/core"
)

// colorStyles maps palette slots to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:   lipgloss.NewStyle(),
	core.ColorBorder:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorHighlight: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
	core.ColorSpeaker:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
	core.ColorMission:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorDead:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true),
	core.ColorFavor:     lipgloss.NewStyle().Foreground(lipgloss.Color("205")),
	core.ColorFlag:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorDim:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	core.ColorTitle:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
}

// styleFor returns the style of a palette slot, falling back to default.
func styleFor(c core.Color) lipgloss.Style {
	if style, ok := colorStyles[c]; ok {
		return style
	}
	return colorStyles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if startColor == core.ColorDefault {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(styleFor(startColor).Render(run.String()))
		}
	}
	return sb.String()
}
