package tui

import (
	"errors"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

type fakeHistory struct {
	saved   []storage.RoundRecord
	saveErr error
}

func (h *fakeHistory) SaveRound(r storage.RoundRecord) (string, error) {
	if h.saveErr != nil {
		return "", h.saveErr
	}
	h.saved = append(h.saved, r)
	return "round-id", nil
}

func (h *fakeHistory) TopRounds(gameID string, limit int) ([]storage.RoundRecord, error) {
	return h.saved, nil
}

func (h *fakeHistory) RecentRounds(gameID string, limit int) ([]storage.RoundRecord, error) {
	out := make([]storage.RoundRecord, 0, len(h.saved))
	for i := len(h.saved) - 1; i >= 0; i-- {
		out = append(out, h.saved[i])
	}
	return out, nil
}

type fakeSounder struct {
	events []core.Event
}

func (s *fakeSounder) PlayEvent(e core.Event) {
	s.events = append(s.events, e)
}

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	game := flappy.New(config.DefaultFlappyConfig(), nil, nil)
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60, Seed: 42}
	return NewModel(game, cfg, opts)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return nm, cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// playUntilCrash starts a round and ticks without flapping until it ends.
func playUntilCrash(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, TickMsg{})
	if !m.gameState.Active {
		t.Fatal("round did not start after enter")
	}
	for i := 0; i < 1000 && m.gameState.Active; i++ {
		m, _ = update(t, m, TickMsg{})
	}
	if m.gameState.Active {
		t.Fatal("round never ended without flapping")
	}
	return m
}

func TestModelStartsOnTitle(t *testing.T) {
	m := newTestModel(t, Options{})

	if m.gameState.Active || m.gameState.GameOver {
		t.Errorf("new model should be on the title screen, got %+v", m.gameState)
	}
	if m.screen.Height() != 24 {
		t.Errorf("one row should be reserved for help, screen height = %d", m.screen.Height())
	}
	if !strings.Contains(m.View(), "Press Enter to Play") {
		t.Error("title screen should prompt to play")
	}
}

func TestModelJumpKeyIsBuffered(t *testing.T) {
	m := newTestModel(t, Options{})

	m, _ = update(t, m, keyRunes("w"))
	if !m.inputFrame.Has(core.ActionJump) {
		t.Error("w should set the jump action")
	}

	m, _ = update(t, m, TickMsg{})
	if m.inputFrame.Has(core.ActionJump) {
		t.Error("input should be cleared after a tick")
	}
}

func TestModelRecordsRoundAndPlaysCues(t *testing.T) {
	history := &fakeHistory{}
	sound := &fakeSounder{}
	m := newTestModel(t, Options{History: history, Sound: sound, Player: "tester"})

	m = playUntilCrash(t, m)

	if !m.gameState.GameOver {
		t.Error("expected game over after crash")
	}
	if len(history.saved) != 1 {
		t.Fatalf("expected one recorded round, got %d", len(history.saved))
	}
	r := history.saved[0]
	if r.GameID != "flappy" || r.Player != "tester" {
		t.Errorf("unexpected identity on recorded round: %+v", r)
	}
	if r.Ticks == 0 || r.Duration == 0 {
		t.Errorf("recorded round should carry ticks and duration: %+v", r)
	}

	var sawStart, sawCrash bool
	for _, e := range sound.events {
		sawStart = sawStart || e == core.EventRoundStart
		sawCrash = sawCrash || e == core.EventCrash
	}
	if !sawStart || !sawCrash {
		t.Errorf("expected round start and crash events, got %v", sound.events)
	}
}

func TestModelHistoryFailureIsNotFatal(t *testing.T) {
	history := &fakeHistory{saveErr: errors.New("disk full")}
	m := newTestModel(t, Options{History: history})

	m = playUntilCrash(t, m)

	if m.quitting {
		t.Error("history failure should not quit")
	}
	m, _ = update(t, m, keyRunes("r"))
	m, _ = update(t, m, TickMsg{})
	if !m.gameState.Active {
		t.Error("should be able to play again after a history failure")
	}
}

func TestModelScoreboardOnlyWhileIdle(t *testing.T) {
	history := &fakeHistory{}
	m := newTestModel(t, Options{History: history})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.showScores {
		t.Fatal("scoreboard should not open during a round")
	}

	for i := 0; i < 1000 && m.gameState.Active; i++ {
		m, _ = update(t, m, TickMsg{})
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.showScores {
		t.Fatal("scoreboard should open while idle")
	}
	if !strings.Contains(m.View(), "HIGH SCORES") {
		t.Error("scoreboard view should show the high score title")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showScores {
		t.Error("esc should close the scoreboard")
	}
}

func TestModelScoreboardNeedsHistory(t *testing.T) {
	m := newTestModel(t, Options{})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.showScores {
		t.Error("scoreboard should stay closed without a history store")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, Options{})

	m, cmd := update(t, m, keyRunes("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModelResize(t *testing.T) {
	m := newTestModel(t, Options{})

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.screen.Width() != 100 || m.screen.Height() != 29 {
		t.Errorf("screen = %dx%d, expected 100x29", m.screen.Width(), m.screen.Height())
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 10, Height: 1})
	if m.screen.Height() != 1 {
		t.Errorf("screen height should not drop below 1, got %d", m.screen.Height())
	}
}

func TestModelScreenshot(t *testing.T) {
	dir := t.TempDir()
	m := newTestModel(t, Options{ScreenshotDir: dir})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 || !strings.HasPrefix(entries[0].Name(), "flappy_") {
		t.Fatalf("expected one flappy screenshot, got %v", entries)
	}
	if m.quitting {
		t.Error("screenshot should not quit")
	}
}
