package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-party/internal/platform/tui"
)

// runMenu shows the launcher until the player quits. Leaving a practice
// game or the ranking with Esc comes back here.
func runMenu(_ *cobra.Command, _ []string) error {
	a, err := setup(true)
	if err != nil {
		return err
	}
	defer a.close()

	for {
		result, err := tui.RunMenu(a.party.Session.Stages, a.runtime)
		if err != nil {
			return err
		}
		a.runtime = result.Config

		switch result.Choice {
		case tui.MenuParty:
			// The ranking board ends the program on quit.
			return a.runParty()

		case tui.MenuPractice:
			back, err := a.practice(result.GameID)
			if err != nil {
				return err
			}
			if !back {
				return nil
			}

		case tui.MenuRanking:
			err := tui.RunScoreboard(a.scores.Ranking(), a.party.Session.Stages, a.history(),
				a.runtime.ScreenW, a.runtime.ScreenH)
			if err != nil {
				return err
			}

		default:
			return nil
		}
	}
}
