package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-party/internal/registry"
)

var (
	flagLimit int
	flagClear bool
)

var rankingCmd = &cobra.Command{
	Use:   "ranking",
	Short: "Print the party ranking",
	Long: `Print the party ranking: the best total of every player, highest first.

Examples:
  party ranking
  party ranking --db ./party.db`,
	Args: cobra.NoArgs,
	RunE: runRanking,
}

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show score history for a game",
	Long: `Display the best recorded scores of a game, from parties and practice.

Examples:
  party scores memory
  party scores balloons --limit 20
  party scores feeding --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the game's score history")
}

func runRanking(_ *cobra.Command, _ []string) error {
	a, err := setup(false)
	if err != nil {
		return err
	}
	defer a.close()

	entries := a.scores.Ranking()
	fmt.Println("Party Ranking")
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("Nobody on the board yet.")
		fmt.Println()
		fmt.Println("Run 'party play' to claim the top spot!")
		return nil
	}

	now := time.Now()
	fmt.Printf("  %-4s  %-20s  %-8s  %s\n", "Rank", "Name", "Total", "When")
	fmt.Printf("  %-4s  %-20s  %-8s  %s\n", "----", "----", "-----", "----")
	for i, e := range entries {
		fmt.Printf("  %-4d  %-20s  %-8s  %s\n", i+1, e.Name,
			humanize.Comma(int64(e.Total)), humanize.RelTime(e.CreatedAt, now, "ago", "from now"))
	}
	return nil
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'party list' to see available games", gameID)
	}

	a, err := setup(false)
	if err != nil {
		return err
	}
	defer a.close()

	if a.store == nil {
		return fmt.Errorf("score history needs the database at %s", flagDBPath)
	}

	if flagClear {
		if err := a.store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Score history of %s cleared.\n", registry.Title(gameID))
		return nil
	}

	scores, err := a.store.TopScores(gameID, flagLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Best Scores - %s\n", registry.Title(gameID))
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'party game %s' to set the first score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Local().Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10s  %s\n", i+1, humanize.Comma(int64(entry.Score)), dateStr)
	}

	fmt.Println()
	stats, err := a.store.GetGameStats(gameID)
	if err == nil {
		fmt.Printf("Best: %s  Average: %.1f  Rounds: %s  Last played: %s\n",
			humanize.Comma(int64(stats.HighScore)), stats.AvgScore,
			humanize.Comma(int64(stats.GamesCount)), humanize.Time(stats.LastPlayed))
	}
	return nil
}
