package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/datesim/internal/core"
	"github.com/vovakirdan/datesim/internal/dialogue"
	"github.com/vovakirdan/datesim/internal/registry"
	"github.com/vovakirdan/datesim/internal/storage"
	"github.com/vovakirdan/datesim/internal/telemetry"
)

// Services are the optional collaborators of a play session.
// Zero values disable the matching feature.
type Services struct {
	Store    *storage.Store
	Recorder *telemetry.Recorder
	Logger   *log.Logger
	Slot     string // Save slot name; empty disables saving
	Autosave bool   // Save after every finished conversation
	Resume   bool   // Load the slot before the first tick
}

func (s Services) log() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.Default()
}

// resizer is implemented by games that can re-layout without a reset.
type resizer interface {
	Resize(w, h int)
}

// GameModel runs one game: it feeds key presses to the game on each tick,
// records what happens and draws the game with a help footer.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	svc        Services
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	tick       uint64
	status     string
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for the given game and starts a session.
// With svc.Resume set, the slot's saved progress is loaded when present.
// allowBack enables the back-to-menu key.
func NewGameModel(game registry.Game, svc Services, cfg core.RuntimeConfig, allowBack bool) GameModel {
	km := NewKeyMapper()
	keys := km.Keys()
	keys.Back.SetEnabled(allowBack)

	m := GameModel{
		game:       game,
		svc:        svc,
		config:     cfg,
		keyMapper:  km,
		keys:       keys,
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
	}
	m.help.Width = cfg.ScreenW
	m.screen = core.NewScreen(cfg.ScreenW, m.screenHeight())

	game.Reset(m.gameConfig())
	if svc.Resume {
		if ok, err := Resume(game, svc.Store, svc.Slot); err != nil {
			svc.log().Warn("could not resume save", "game", game.ID(), "slot", svc.Slot, "error", err)
			m.status = "save not loaded"
		} else if ok {
			svc.log().Info("resumed save", "game", game.ID(), "slot", svc.Slot)
			m.status = "resumed " + svc.Slot
		}
	}
	m.gameState = game.State()
	return m
}

// Resume loads the slot's progress into the game.
// Returns false if there is nothing to load.
func Resume(game registry.Game, store *storage.Store, slot string) (bool, error) {
	saver, ok := game.(registry.Saver)
	if !ok || store == nil || slot == "" {
		return false, nil
	}
	sv, err := store.LoadProgress(game.ID(), slot)
	if err != nil || sv == nil {
		return false, err
	}
	if err := saver.ImportProgress(sv.Data); err != nil {
		return false, err
	}
	return true, nil
}

// Init starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil

	case key.Matches(msg, m.keys.Back) && !m.gameState.Busy:
		m.persist("back")
		m.backToMenu = true
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.persist("quit")
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleTick runs one game step and records what it produced.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	m.tick++
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if len(result.Events) > 0 {
		m.record(result.Events)
		if m.svc.Autosave && !m.gameState.Busy {
			m.persist("autosave")
		}
	}

	return m, tickCmd(m.config.TickRate)
}

// record logs events and appends them to the journal and telemetry output.
func (m *GameModel) record(events []core.Event) {
	logger := m.svc.log()
	for _, ev := range events {
		if ev.Name == dialogue.EventLine {
			logger.Debug(ev.Name, ev.Attrs...)
			continue
		}
		logger.Info(ev.Name, ev.Attrs...)

		if m.svc.Store == nil {
			continue
		}
		character, scene, detail := telemetry.Fields(ev)
		if _, err := m.svc.Store.RecordEvent(storage.JournalEntry{
			GameID:    m.game.ID(),
			Slot:      m.svc.Slot,
			Event:     ev.Name,
			Character: character,
			Scene:     scene,
			Detail:    detail,
		}); err != nil {
			logger.Warn("could not record event", "event", ev.Name, "error", err)
		}
	}

	if err := m.svc.Recorder.Record(m.game.ID(), m.tick, events); err != nil {
		logger.Warn("could not write telemetry", "error", err)
	}
}

// persist saves progress into the slot. Mid-conversation it does nothing.
func (m *GameModel) persist(reason string) {
	saver, ok := m.game.(registry.Saver)
	if !ok || m.svc.Store == nil || m.svc.Slot == "" || m.gameState.Busy {
		return
	}

	logger := m.svc.log()
	data, err := saver.ExportProgress()
	if err != nil {
		logger.Warn("could not export progress", "reason", reason, "error", err)
		return
	}
	if _, err := m.svc.Store.SaveProgress(m.game.ID(), m.svc.Slot, data, m.gameState.Score); err != nil {
		logger.Error("could not save progress", "reason", reason, "error", err)
		m.status = "save failed"
		return
	}
	logger.Debug("progress saved", "reason", reason, "slot", m.svc.Slot)
	m.status = "saved " + time.Now().Format("15:04:05")
}

// layout resizes the screen and the game to the space above the footer.
func (m *GameModel) layout() {
	m.screen.Resize(m.config.ScreenW, m.screenHeight())
	cfg := m.gameConfig()
	if r, ok := m.game.(resizer); ok {
		r.Resize(cfg.ScreenW, cfg.ScreenH)
		return
	}
	m.game.Reset(cfg)
}

func (m GameModel) screenHeight() int {
	return core.Max(m.config.ScreenH-lipgloss.Height(m.footer()), 0)
}

func (m GameModel) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = m.screenHeight()
	return cfg
}

func (m GameModel) footer() string {
	footer := m.help.View(m.keys)
	if m.status != "" && !m.help.ShowAll {
		footer = m.status + "  " + footer
	}
	return footer
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".datesim", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.svc.log().Warn("could not save screenshot", "error", err)
		return
	}
	m.status = "screenshot saved"
}

// View renders the game and the help footer.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + styleFor(core.ColorDim).Render(m.footer())
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the game state after the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Run plays a single game in the terminal until the user quits.
func Run(game registry.Game, svc Services, cfg core.RuntimeConfig) error {
	model := NewGameModel(game, svc, cfg, false)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
