package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/datesim/internal/core"
	"github.com/vovakirdan/datesim/internal/registry"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenSaves
	screenGame
)

// SessionModel manages the full flow of one player: menu -> game -> menu,
// with the save browser on the side. It is the top-level model for SSH
// sessions and for the local menu command.
type SessionModel struct {
	svc       Services
	config    core.RuntimeConfig
	screen    sessionScreen
	menu      MenuModel
	saves     SavesModel
	gameModel *GameModel
	quitting  bool
}

// NewSessionModel creates a session for the player owning svc.Slot.
func NewSessionModel(svc Services, cfg core.RuntimeConfig) SessionModel {
	return SessionModel{
		svc:    svc,
		config: cfg,
		menu:   NewMenuModel(svc.Store, svc.Slot, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenSaves:
		return m.updateSaves(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsSaves() {
		m.saves = NewSavesModel(m.svc.Store, m.svc.Slot, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenSaves
		return m, m.saves.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		return m.startGame(selected.GameID, m.svc.Slot, !m.menu.Fresh())
	}

	return m, cmd
}

// updateSaves handles updates when in the save browser.
func (m SessionModel) updateSaves(msg tea.Msg) (tea.Model, tea.Cmd) {
	newSaves, cmd := m.saves.Update(msg)
	if savesModel, ok := newSaves.(SavesModel); ok {
		m.saves = savesModel
	}

	if m.saves.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if sv := m.saves.Picked(); sv != nil {
		return m.startGame(sv.GameID, sv.Slot, true)
	}

	if m.saves.IsGoingBack() {
		return m.toMenu()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.BackToMenu() {
		m.gameModel = nil
		return m.toMenu()
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// startGame plays gameID in the given slot, continuing its save if resume is set.
func (m SessionModel) startGame(gameID, slot string, resume bool) (tea.Model, tea.Cmd) {
	game, err := registry.Create(gameID)
	if err != nil {
		m.svc.log().Warn("cannot start game", "game", gameID, "error", err)
		return m.toMenu()
	}
	m.svc.log().Info("game started", "game", gameID, "slot", slot, "resume", resume)

	svc := m.svc
	svc.Slot = slot
	svc.Resume = resume
	gameModel := NewGameModel(game, svc, m.config, true)
	m.gameModel = &gameModel
	m.screen = screenGame
	return m, m.gameModel.Init()
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.svc.Store, m.svc.Slot, m.config)
	m.screen = screenMenu
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		if m.gameModel != nil {
			return m.gameModel.View()
		}
	case screenSaves:
		return m.saves.View()
	}
	return m.menu.View()
}

// RunSession runs the interactive session in the local terminal.
func RunSession(svc Services, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewSessionModel(svc, cfg),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
