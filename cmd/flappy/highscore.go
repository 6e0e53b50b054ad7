package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/highscore"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var flagReset bool

var highscoreCmd = &cobra.Command{
	Use:   "highscore",
	Short: "Print or reset the stored high score",
	Long: `Print the high score kept in the score file, followed by the best
round in the round history when one is recorded.
With --reset the file is overwritten with 0.

Examples:
  flappy highscore
  flappy highscore --reset
  flappy highscore --score-file ./score.txt`,
	Args: cobra.NoArgs,
	Run:  runHighscore,
}

func init() {
	highscoreCmd.Flags().BoolVar(&flagReset, "reset", false, "Reset the high score to 0")
}

func runHighscore(cmd *cobra.Command, _ []string) {
	store, err := highscore.NewFileStore(scoreFilePath(cmd))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving score file: %v\n", err)
		os.Exit(1)
	}

	if flagReset {
		if err := store.Save(0); err != nil {
			fmt.Fprintf(os.Stderr, "Error resetting high score: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("High score reset (%s)\n", store.Path())
		return
	}

	printHighScore(os.Stdout, store, dbPath(cmd))
}

// printHighScore writes the file high score and, if the history can be
// read, the best recorded round.
func printHighScore(w io.Writer, store highscore.Store, historyPath string) {
	fmt.Fprintf(w, "High Score: %d\n", store.Load())

	history, err := storage.Open(historyPath)
	if err != nil {
		return
	}
	defer history.Close()

	best, err := history.BestScore(gameID)
	if err != nil || best == 0 {
		return
	}
	fmt.Fprintf(w, "Best recorded round: %d\n", best)
}
