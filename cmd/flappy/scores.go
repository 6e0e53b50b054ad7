package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/storage"
)

const gameID = "flappy"

var (
	flagLimit  int
	flagRecent bool
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show finished rounds",
	Long: `Display the best finished rounds from the round history.
Rounds that set a new high score are marked with *.

Examples:
  flappy scores
  flappy scores --limit 25
  flappy scores --recent
  flappy scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", storage.DefaultLimit, "Number of rounds to show")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the latest rounds instead of the best")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the round history (the high score file is kept)")
}

func runScores(cmd *cobra.Command, _ []string) {
	store, err := storage.Open(dbPath(cmd))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening round history: %v\n", err)
		os.Exit(1)
	}

	if flagClear {
		err := store.ClearRounds(gameID)
		store.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing round history: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Round history cleared.")
		return
	}

	title := "High Scores"
	var rounds []storage.RoundRecord
	if flagRecent {
		title = "Recent Rounds"
		rounds, err = store.RecentRounds(gameID, flagLimit)
	} else {
		rounds, err = store.TopRounds(gameID, flagLimit)
	}
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving rounds: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	fmt.Printf("%s - Flappy Bird\n", title)
	fmt.Println()

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Println("Run 'flappy play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-7s  %-5s  %-7s  %-10s  %s\n", "Rank", "Score", "Pipes", "Time", "Player", "Date")
	fmt.Printf("  %-4s  %-7s  %-5s  %-7s  %-10s  %s\n", "----", "-----", "-----", "----", "------", "----")

	for i, r := range rounds {
		score := fmt.Sprintf("%d", r.Score)
		if r.NewHighScore {
			score += "*"
		}
		player := r.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-7s  %-5d  %-7s  %-10s  %s\n",
			i+1, score, r.Pipes, fmt.Sprintf("%.1fs", r.Duration.Seconds()), player,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.GameStats(gameID); err == nil {
		fmt.Printf("Rounds: %d  Best: %d  Average: %.1f\n", stats.Rounds, stats.BestScore, stats.AvgScore)
	}
}
