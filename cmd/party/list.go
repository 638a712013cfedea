package main

import (
	"fmt"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-party/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows every registered game, its place in the party, and its best score.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return nil
	}

	a, err := setup(false)
	if err != nil {
		return err
	}
	defer a.close()

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	fmt.Printf("  %-*s  %-5s  %-*s  %s\n", maxIDLen, "ID", "Stage", maxTitleLen, "Title", "Best")
	fmt.Printf("  %-*s  %-5s  %-*s  %s\n", maxIDLen, "--", "-----", maxTitleLen, "-----", "----")

	for _, g := range games {
		stage := "-"
		if i := slices.Index(a.party.Session.Stages, g.ID); i >= 0 {
			stage = fmt.Sprintf("%d", i+1)
		}
		best := "-"
		if a.store != nil {
			if high, err := a.store.HighScore(g.ID); err == nil && high > 0 {
				best = humanize.Comma(int64(high))
			}
		}
		fmt.Printf("  %-*s  %-5s  %-*s  %s\n", maxIDLen, g.ID, stage, maxTitleLen, g.Title, best)
	}

	fmt.Println()
	fmt.Println("Run 'party play' to start the party or 'party game <id>' to practice.")
	return nil
}
