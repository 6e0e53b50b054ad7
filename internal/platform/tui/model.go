package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Game is the simulation driven by the model.
type Game interface {
	ID() string
	Title() string
	Reset(cfg core.RuntimeConfig)
	Step(in core.InputFrame) core.StepResult
	Render(dst *core.Screen)
	State() core.GameState
	LastRound() flappy.RoundSummary
}

// History records finished rounds and lists them for the scoreboard.
type History interface {
	SaveRound(r storage.RoundRecord) (string, error)
	TopRounds(gameID string, limit int) ([]storage.RoundRecord, error)
	RecentRounds(gameID string, limit int) ([]storage.RoundRecord, error)
}

// Sounder plays cues for game events.
type Sounder interface {
	PlayEvent(e core.Event)
}

// Options carries the optional collaborators of a Model.
// Leave a field nil to disable it; do not pass typed nil pointers.
type Options struct {
	History       History
	Sound         Sounder
	Logger        *log.Logger
	Player        string // Recorded with each round
	ScreenshotDir string // Defaults to ~/.flappy/screenshots
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for one game session.
type Model struct {
	game       Game
	screen     *core.Screen
	opts       Options
	logger     *log.Logger
	keys       KeyMap
	help       help.Model
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	scoreboard ScoreboardModel
	showScores bool
	quitting   bool
}

// NewModel creates a model and resets the game to its title screen.
// One terminal row is reserved for the help bar.
func NewModel(game Game, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	game.Reset(cfg)

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, playfieldHeight(cfg.ScreenH)),
		opts:       opts,
		logger:     logger,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
	}
}

func playfieldHeight(h int) int {
	return core.Max(h-1, 1)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showScores {
			return m.updateScoreboard(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input during play.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil

	case key.Matches(msg, m.keys.Scores):
		if !m.gameState.Active && m.opts.History != nil {
			m.scoreboard = NewScoreboardModel(m.opts.History, m.game.ID(), m.game.Title(), m.config.ScreenW, m.config.ScreenH)
			m.showScores = true
		}
		return m, nil
	}

	if action := m.keys.Action(msg); action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// updateScoreboard forwards input to the scoreboard until it is closed.
func (m Model) updateScoreboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	next, cmd := m.scoreboard.Update(msg)
	if sb, ok := next.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		m.showScores = false
		return m, nil
	}
	return m, cmd
}

// handleResize processes window resize events.
// The logical world does not change size; only the viewport does.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playfieldHeight(msg.Height))
	m.help.Width = msg.Width

	if m.showScores {
		next, _ := m.scoreboard.Update(msg)
		if sb, ok := next.(ScoreboardModel); ok {
			m.scoreboard = sb
		}
	}
	return m, nil
}

// handleTick advances the simulation by one step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	for _, e := range result.Events {
		if m.opts.Sound != nil {
			m.opts.Sound.PlayEvent(e)
		}
		if e == core.EventCrash {
			m.recordRound()
		}
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// recordRound appends the finished round to the history, best effort.
func (m Model) recordRound() {
	if m.opts.History == nil {
		return
	}

	summary := m.game.LastRound()
	id, err := m.opts.History.SaveRound(storage.RoundRecord{
		GameID:       m.game.ID(),
		Player:       m.opts.Player,
		Score:        summary.Score,
		RawScore:     summary.RawScore,
		Ticks:        summary.Ticks,
		Pipes:        summary.Pipes,
		Duration:     summary.Duration,
		NewHighScore: summary.NewHighScore,
	})
	if err != nil {
		m.logger.Warn("could not record round", "error", err)
		return
	}
	m.logger.Debug("round recorded", "id", id, "score", summary.Score)
}

// saveScreenshot writes the current playfield to a text file.
func (m Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			m.logger.Warn("could not save screenshot", "error", err)
			return
		}
		dir = filepath.Join(home, ".flappy", "screenshots")
	}
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showScores {
		return m.scoreboard.View()
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts a Bubble Tea program on the local terminal.
func Run(game Game, cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
