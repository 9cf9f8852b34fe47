package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/datesim/internal/core"
	_ "github.com/vovakirdan/datesim/internal/games/datesim"
	"github.com/vovakirdan/datesim/internal/registry"
	"github.com/vovakirdan/datesim/internal/storage"
	"github.com/vovakirdan/datesim/internal/telemetry"
)

var testConfig = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "saves.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newGameModel(t *testing.T, id string, svc Services) GameModel {
	t.Helper()
	game, err := registry.Create(id)
	if err != nil {
		t.Fatalf("registry.Create(%q) failed: %v", id, err)
	}
	return NewGameModel(game, svc, testConfig, true)
}

// pressAndTick sends a key followed by a tick, like a player between frames.
func pressAndTick(t *testing.T, m GameModel, msg tea.KeyMsg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	next, _ = next.(GameModel).Update(TickMsg(time.Now()))
	return next.(GameModel)
}

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func TestGameModelAutosavesAfterConversation(t *testing.T) {
	store := openStore(t)
	m := newGameModel(t, "hello", Services{Store: store, Slot: "alice", Autosave: true})

	m = pressAndTick(t, m, enter)
	if !m.State().Busy {
		t.Fatal("expected to be talking after first confirm")
	}
	if sv, _ := store.LoadProgress("hello", "alice"); sv != nil {
		t.Error("progress saved mid-conversation")
	}

	m = pressAndTick(t, m, enter)
	m = pressAndTick(t, m, enter)
	if m.State().Busy {
		t.Fatal("expected conversation to be over")
	}

	sv, err := store.LoadProgress("hello", "alice")
	if err != nil || sv == nil {
		t.Fatalf("LoadProgress() = %v, %v, expected a save", sv, err)
	}
	if sv.Score != 1 {
		t.Errorf("saved score = %d, expected 1", sv.Score)
	}

	journal, err := store.Journal("hello", 50)
	if err != nil {
		t.Fatalf("Journal() failed: %v", err)
	}
	var names []string
	for _, e := range journal {
		if e.Event == "line" {
			t.Error("line events should not be journaled")
		}
		names = append(names, e.Event)
	}
	joined := strings.Join(names, ",")
	for _, want := range []string{"talk_started", "scene_completed", "mission_collected"} {
		if !strings.Contains(joined, want) {
			t.Errorf("journal %v missing %s", names, want)
		}
	}
}

func TestGameModelResume(t *testing.T) {
	store := openStore(t)
	m := newGameModel(t, "hello", Services{Store: store, Slot: "bob", Autosave: true})
	for range 3 {
		m = pressAndTick(t, m, enter)
	}

	resumed := newGameModel(t, "hello", Services{Store: store, Slot: "bob", Resume: true})
	if resumed.State().Score != 1 {
		t.Errorf("resumed score = %d, expected 1", resumed.State().Score)
	}
	if !strings.Contains(resumed.View(), "resumed bob") {
		t.Error("footer does not mention the resumed slot")
	}

	fresh := newGameModel(t, "hello", Services{Store: store, Slot: "bob"})
	if fresh.State().Score != 0 {
		t.Errorf("fresh score = %d, expected 0", fresh.State().Score)
	}
}

func TestGameModelWithoutServices(t *testing.T) {
	m := newGameModel(t, "hello", Services{})
	for range 3 {
		m = pressAndTick(t, m, enter)
	}
	if m.State().Score != 1 {
		t.Errorf("score = %d, expected 1", m.State().Score)
	}
}

func TestGameModelWritesTelemetry(t *testing.T) {
	dir := t.TempDir()
	rec, err := telemetry.NewRecorder(dir, "sess")
	if err != nil {
		t.Fatalf("NewRecorder() failed: %v", err)
	}

	m := newGameModel(t, "hello", Services{Recorder: rec})
	m = pressAndTick(t, m, enter)
	rec.Close()

	data, err := os.ReadFile(filepath.Join(dir, "events-sess.csv"))
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if !strings.Contains(string(data), "talk_started") {
		t.Errorf("telemetry = %q, expected talk_started row", data)
	}
}

func TestGameModelBackToMenu(t *testing.T) {
	store := openStore(t)
	m := newGameModel(t, "hello", Services{Store: store, Slot: "carol"})

	m = pressAndTick(t, m, enter)
	next, _ := m.Update(runeKey("b"))
	m = next.(GameModel)
	if m.BackToMenu() {
		t.Fatal("back accepted mid-conversation")
	}

	m = pressAndTick(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	next, _ = m.Update(runeKey("b"))
	m = next.(GameModel)
	if !m.BackToMenu() {
		t.Fatal("back ignored while idle")
	}
	if sv, _ := store.LoadProgress("hello", "carol"); sv == nil {
		t.Error("leaving the game did not save progress")
	}
}

func TestGameModelQuit(t *testing.T) {
	m := newGameModel(t, "hello", Services{})
	next, cmd := m.Update(runeKey("q"))
	m = next.(GameModel)
	if !m.IsQuitting() || cmd == nil {
		t.Error("q did not quit")
	}
	if m.View() != "" {
		t.Error("View() after quit should be empty")
	}
}

func TestGameModelHelpAndResize(t *testing.T) {
	m := newGameModel(t, "hello", Services{})
	shortView := m.View()

	next, _ := m.Update(runeKey("?"))
	m = next.(GameModel)
	if !strings.Contains(m.View(), "quit") {
		t.Error("full help does not list quit")
	}
	if strings.Count(m.View(), "\n") != strings.Count(shortView, "\n") {
		t.Error("screen height should shrink to keep the total height")
	}

	next, _ = m.Update(tea.WindowSizeMsg{Width: 30, Height: 10})
	m = next.(GameModel)
	if !strings.Contains(m.View(), "too small") {
		t.Errorf("View() = %q, expected too small notice", m.View())
	}
}

func TestSessionFlow(t *testing.T) {
	store := openStore(t)
	s := NewSessionModel(Services{Store: store, Slot: "dave"}, testConfig)

	step := func(msg tea.Msg) {
		t.Helper()
		next, _ := s.Update(msg)
		s = next.(SessionModel)
	}

	if !strings.Contains(s.View(), "Pick a story") {
		t.Fatalf("View() = %q, expected menu", s.View())
	}

	step(tea.KeyMsg{Type: tea.KeyTab})
	if s.screen != screenSaves || !strings.Contains(s.View(), "No saves yet") {
		t.Fatalf("expected empty save browser, got %q", s.View())
	}
	step(tea.KeyMsg{Type: tea.KeyEsc})
	if s.screen != screenMenu {
		t.Fatal("esc did not return to the menu")
	}

	step(enter)
	if s.screen != screenGame {
		t.Fatal("enter did not start a game")
	}
	step(runeKey("b"))
	if s.screen != screenMenu {
		t.Fatal("b did not return to the menu")
	}

	step(runeKey("q"))
	if !s.quitting || s.View() != "" {
		t.Error("q did not end the session")
	}
}

func TestMenuMarksSavedStories(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveProgress("hello", "erin", []byte("{}"), 2); err != nil {
		t.Fatalf("SaveProgress() failed: %v", err)
	}

	m := NewMenuModel(store, "erin", testConfig)
	var found bool
	for _, item := range m.items {
		if item.GameID == "hello" {
			found = true
			if !item.Saved || item.Score != 2 {
				t.Errorf("hello item = %+v, expected saved with score 2", item)
			}
		}
	}
	if !found {
		t.Fatal("hello missing from menu")
	}
	if !strings.Contains(m.View(), "saved, 2 missions") {
		t.Error("menu does not show saved progress")
	}
}

func TestSavesBrowserFiltersSlot(t *testing.T) {
	store := openStore(t)
	store.SaveProgress("bunker", "frank", []byte("{}"), 1)
	store.SaveProgress("bunker", "grace", []byte("{}"), 3)

	all := NewSavesModel(store, "", 100, 30)
	if len(all.saves) != 2 {
		t.Errorf("unfiltered saves = %d, expected 2", len(all.saves))
	}

	own := NewSavesModel(store, "grace", 100, 30)
	if len(own.saves) != 1 || own.saves[0].Slot != "grace" {
		t.Errorf("filtered saves = %+v, expected only grace", own.saves)
	}

	next, _ := own.Update(runeKey("d"))
	own = next.(SavesModel)
	if len(own.saves) != 0 {
		t.Error("delete did not remove the save")
	}
	if sv, _ := store.LoadProgress("bunker", "grace"); sv != nil {
		t.Error("save still stored after delete")
	}
}
