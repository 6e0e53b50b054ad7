// flappy is a Flappy Bird clone for the terminal.
//
// Usage:
//
//	flappy                   - Play (same as flappy play)
//	flappy play [--sound]    - Play a game
//	flappy scores            - Show the best or latest finished rounds
//	flappy highscore         - Print or reset the stored high score
//	flappy serve             - Start SSH server for remote play
//	flappy config            - Print the default or resolved game config
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--config <path>      - Game config YAML ($FLAPPY_CONFIG)
//	--score-file <path>  - High score file ($FLAPPY_SCORE_FILE)
//	--db <path>          - Round history database ($FLAPPY_DB)
//	--log-file <path>    - Log destination while playing
//	--debug              - Enable debug logging
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

const (
	defaultScoreFile = "~/.flappy/score.txt"
	defaultDBPath    = "~/.flappy/rounds.db"
	defaultLogFile   = "~/.flappy/flappy.log"
)

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagConfig    string
	flagScoreFile string
	flagDBPath    string
	flagLogFile   string
	flagDebug     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy Bird in your terminal",
	Long: `Guide the bird through the gaps between the pipes. The longer you
survive, the faster the pipes come. Your best score is kept between runs.

Available commands:
  play       - Play the game (default)
  scores     - View finished rounds
  highscore  - Print or reset the high score
  serve      - Start SSH server for remote play
  config     - Print the game configuration

Examples:
  flappy
  flappy play --sound
  flappy scores --recent
  flappy serve --ssh :2222`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if err := config.LoadEnv(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	},
	Run: runPlay,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagScoreFile, "score-file", defaultScoreFile, "Path to the high score file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", defaultDBPath, "Path to the round history database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", defaultLogFile, "Log file used while playing")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(highscoreCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}
