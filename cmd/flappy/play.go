package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/flappy"
	"github.com/vovakirdan/tui-flappy/internal/highscore"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var flagSound bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Start the game on the title screen.

Controls:
  Enter/R        - Start or restart a round
  Space/Up/W     - Flap
  Tab            - Finished rounds (between rounds)
  Ctrl+S         - Save a text screenshot
  Q/Ctrl+C       - Quit

Examples:
  flappy play
  flappy play --sound
  flappy play --seed 42 --fps 30
  flappy play --config ./my-flappy.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects")
}

func runPlay(cmd *cobra.Command, _ []string) {
	if err := play(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func play(cmd *cobra.Command) error {
	logger, closeLog := fileLogger()
	defer closeLog()

	cfg, err := config.LoadFlappy(configPath(cmd))
	if err != nil {
		return err
	}

	scores, err := highscore.NewFileStore(scoreFilePath(cmd))
	if err != nil {
		return fmt.Errorf("cannot resolve score file: %w", err)
	}

	runtime := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		runtime.ScreenW = w
		runtime.ScreenH = h
	}
	if flagFPS > 0 {
		runtime.TickRate = flagFPS
	}
	runtime.Seed = flagSeed

	opts := tui.Options{
		Logger: logger,
		Player: os.Getenv("USER"),
	}

	// The game works without history
	history, err := storage.Open(dbPath(cmd))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open round history: %v\n", err)
		logger.Warn("could not open round history", "error", err)
	} else {
		defer history.Close()
		opts.History = history
	}

	if flagSound {
		sound := audio.NewSoundManager()
		if err := sound.Initialize(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: sound disabled: %v\n", err)
			logger.Warn("sound disabled", "error", err)
		} else {
			defer sound.Cleanup()
			opts.Sound = sound
		}
	}

	logger.Info("starting game", "fps", runtime.TickRate, "seed", runtime.Seed, "score_file", scores.Path())

	game := flappy.New(cfg, scores, logger)
	if err := tui.Run(game, runtime, opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
