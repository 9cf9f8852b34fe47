package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/vovakirdan/datesim/internal/core"
	"github.com/vovakirdan/datesim/internal/registry"
	"github.com/vovakirdan/datesim/internal/storage"
)

// MenuItem represents a selectable story in the menu.
type MenuItem struct {
	GameID string
	Title  string
	Saved  bool // The player's slot has progress for this story
	Score  int  // Missions collected in the saved progress
}

// MenuModel is the Bubble Tea model for the story picker.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	quitting  bool
	selected  *MenuItem // Set when user picks a story
	fresh     bool      // Start over instead of continuing
	openSaves bool      // True if user pressed Tab for the save browser
}

// NewMenuModel creates a new menu model. Stories with progress in slot are
// marked so the player can continue them.
func NewMenuModel(store *storage.Store, slot string, cfg core.RuntimeConfig) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))

	for _, g := range games {
		item := MenuItem{GameID: g.ID, Title: g.Title}
		if store != nil && slot != "" {
			if sv, err := store.LoadProgress(g.ID, slot); err == nil && sv != nil {
				item.Saved = true
				item.Score = sv.Score
			}
		}
		items = append(items, item)
	}

	return MenuModel{
		items:     items,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keyMapper.MapKeyToMenuAction(msg)

	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect, MenuActionNew:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			m.fresh = !selected.Saved || action == MenuActionNew
			return m, tea.Quit
		}

	case MenuActionSaves:
		m.openSaves = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := styleFor(core.ColorTitle).Render("  D A T E S I M  ")
	b.WriteString("\n")
	b.WriteString(centerText(title, m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Pick a story", m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText("No stories installed.", m.width))
		b.WriteString("\n")
	}

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		status := ""
		if item.Saved {
			status = fmt.Sprintf(" (saved, %d missions)", item.Score)
		}

		line := truncate.StringWithTail(cursor+item.Title+status, uint(core.Max(m.width-2, 8)), "…")
		if i == m.cursor {
			line = styleFor(core.ColorHighlight).Render(line)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  N: New game  |  Tab: Saves  |  Q: Quit"
	b.WriteString(styleFor(core.ColorDim).Render(centerText(controls, m.width)))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Fresh reports whether the selected story should start over.
func (m MenuModel) Fresh() bool {
	return m.fresh
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsSaves returns true if user requested the save browser.
func (m MenuModel) WantsSaves() bool {
	return m.openSaves
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width, measuring printable cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
