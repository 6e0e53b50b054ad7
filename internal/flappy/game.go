// Package flappy implements a Flappy Bird-style game.
// The player controls a bird that must navigate through gaps in vertical pipes.
// All game logic runs in a fixed 400x600 world; rendering scales it to the
// terminal.
package flappy

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/highscore"
)

// Phase is the round state of the game.
type Phase int

const (
	PhaseTitle    Phase = iota // Idle, no round played yet
	PhaseActive                // Round in progress
	PhaseGameOver              // Idle after a round, waiting for restart
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseTitle:
		return "Title"
	case PhaseActive:
		return "Active"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Idle reports whether no round is in progress.
func (p Phase) Idle() bool {
	return p != PhaseActive
}

// RoundSummary describes the most recently completed round.
type RoundSummary struct {
	Score        int     // Floored score
	RawScore     float64 // Accumulated score
	Ticks        int     // Active ticks survived
	Pipes        int     // Pipe pairs spawned
	NewHighScore bool
	Duration     time.Duration // Ticks converted using the tick rate
}

// Game implements the Flappy Bird game logic.
type Game struct {
	cfg     config.FlappyConfig
	runtime core.RuntimeConfig
	store   highscore.Store
	logger  *log.Logger
	rng     *rand.Rand

	phase      Phase
	bird       Bird
	pipes      []PipePair
	score      float64
	speed      float64
	highScore  int
	spawnEvery int // Ticks between pipe spawns
	spawnTimer int // Ticks since last spawn
	ticks      int // Active ticks in the current round
	spawned    int // Pipe pairs spawned in the current round
	lastRound  RoundSummary
	saveErr    error
}

// New creates a game with a validated config and a high score store.
// A nil store disables persistence; a nil logger discards log output.
func New(cfg config.FlappyConfig, store highscore.Store, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		cfg:    cfg,
		store:  store,
		logger: logger,
		pipes:  make([]PipePair, 0, 8),
	}
}

// ID returns the identifier used for score storage.
func (g *Game) ID() string {
	return "flappy"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Flappy Bird"
}

// Reset prepares the game for a new session: it seeds the RNG, loads the
// high score, and returns to the title screen.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if runtime.TickRate <= 0 {
		runtime.TickRate = 60
	}
	if runtime.Seed == 0 {
		runtime.Seed = time.Now().UnixNano()
	}
	g.runtime = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.spawnEvery = g.cfg.SpawnIntervalTicks(runtime.TickRate)

	g.highScore = 0
	if g.store != nil {
		g.highScore = g.store.Load()
	}

	g.phase = PhaseTitle
	g.bird = newBird(g.cfg.World.Width, g.cfg.World.Height, g.cfg.Bird.Width, g.cfg.Bird.Height)
	g.pipes = g.pipes[:0]
	g.score = 0
	g.speed = g.cfg.Physics.BaseSpeed
	g.lastRound = RoundSummary{}
	g.saveErr = nil

	g.logger.Debug("session reset", "seed", runtime.Seed, "tick_rate", runtime.TickRate, "high_score", g.highScore)
}

// Start begins a new round. It has no effect while a round is active.
func (g *Game) Start() {
	if g.phase == PhaseActive {
		return
	}
	if g.rng == nil {
		g.Reset(g.runtime)
	}

	g.phase = PhaseActive
	g.bird = newBird(g.cfg.World.Width, g.cfg.World.Height, g.cfg.Bird.Width, g.cfg.Bird.Height)
	g.pipes = g.pipes[:0]
	g.score = 0
	g.speed = g.cfg.Physics.BaseSpeed
	g.spawnTimer = 0
	g.ticks = 0
	g.spawned = 0
	g.saveErr = nil

	g.logger.Debug("round started", "high_score", g.highScore)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.phase.Idle() {
		// The start tick only resets; a jump pressed on it is dropped
		if in.Has(core.ActionConfirm) || in.Has(core.ActionRestart) {
			g.Start()
			return core.StepResult{State: g.State(), Events: []core.Event{core.EventRoundStart}}
		}
		return core.StepResult{State: g.State()}
	}

	var events []core.Event
	g.ticks++

	// Handle jump input
	if in.Has(core.ActionJump) {
		g.bird.ApplyImpulse(g.cfg.Physics.JumpImpulse)
		events = append(events, core.EventFlap)
	}

	// Spawn timer
	g.spawnTimer++
	if g.spawnTimer >= g.spawnEvery {
		g.spawnTimer = 0
		g.spawnPipe()
		events = append(events, core.EventSpawn)
	}

	g.bird.ApplyGravity(g.cfg.Physics.Gravity)
	g.pipes = AdvancePipes(g.pipes, g.speed)

	g.score += g.cfg.Scoring.Increment
	g.speed = ComputeSpeed(g.score, g.cfg.Physics.BaseSpeed, g.cfg.Physics.SpeedIncrement)

	if !DetectTermination(g.bird.Rect(), g.pipes, g.cfg.World.Height, g.cfg.World.GroundHeight) {
		events = append(events, g.end()...)
	}

	return core.StepResult{State: g.State(), Events: events}
}

// spawnPipe appends a new pair at the right edge of the world.
func (g *Game) spawnPipe() {
	obs := g.cfg.Obstacles
	pair := NewPipePair(g.rng, g.cfg.World.Width, g.cfg.World.Height, obs.GapHeight, obs.MinMargin, obs.PipeWidth)
	g.pipes = append(g.pipes, pair)
	g.spawned++
}

// end moves from Active to GameOver and commits the high score.
func (g *Game) end() []core.Event {
	events := []core.Event{core.EventCrash}
	g.phase = PhaseGameOver

	final := floorScore(g.score)
	g.lastRound = RoundSummary{
		Score:    final,
		RawScore: g.score,
		Ticks:    g.ticks,
		Pipes:    g.spawned,
		Duration: time.Duration(g.ticks) * time.Second / time.Duration(g.runtime.TickRate),
	}

	// A shared store may hold a better score from another session
	g.raiseHighScore()

	if final > g.highScore {
		g.highScore = final
		record := true
		var saveFailed bool

		if g.store != nil {
			if err := g.store.Save(final); err != nil {
				g.saveErr = err
				saveFailed = true
				g.logger.Warn("could not save high score", "score", final, "error", err)
			} else if g.raiseHighScore() {
				record = false
			}
		}

		if record {
			g.lastRound.NewHighScore = true
			events = append(events, core.EventNewHighScore)
		}
		if saveFailed {
			events = append(events, core.EventSaveFailed)
		}
	}

	g.logger.Info("round ended",
		"score", final,
		"high_score", g.highScore,
		"ticks", g.ticks,
		"pipes", g.spawned,
	)
	return events
}

// raiseHighScore adopts the stored value if it beats the in-memory one and
// reports whether it did. The high score never decreases.
func (g *Game) raiseHighScore() bool {
	if g.store == nil {
		return false
	}
	if stored := g.store.Load(); stored > g.highScore {
		g.highScore = stored
		return true
	}
	return false
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     floorScore(g.score),
		HighScore: g.highScore,
		Active:    g.phase == PhaseActive,
		GameOver:  g.phase == PhaseGameOver,
	}
}

// Phase returns the current round state.
func (g *Game) Phase() Phase {
	return g.phase
}

// Score returns the accumulated score of the current or last round.
func (g *Game) Score() float64 {
	return g.score
}

// Speed returns the current pipe speed.
func (g *Game) Speed() float64 {
	return g.speed
}

// HighScore returns the best score known to this session.
func (g *Game) HighScore() int {
	return g.highScore
}

// Bird returns a copy of the avatar.
func (g *Game) Bird() Bird {
	return g.bird
}

// Pipes returns the active pipe pairs in spawn order.
func (g *Game) Pipes() []PipePair {
	return g.pipes
}

// LastRound returns a summary of the most recently completed round.
func (g *Game) LastRound() RoundSummary {
	return g.lastRound
}

// SaveErr returns the error from the last failed high score save, if any.
// It is cleared when a new round starts.
func (g *Game) SaveErr() error {
	return g.saveErr
}
