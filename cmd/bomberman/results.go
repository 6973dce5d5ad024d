package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amalg/go-bombman/internal/storage"
)

var flagLimit int

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show recorded games",
	Long: `Lists the latest recorded games and the totals per player slot
across every recorded game.

Examples:
  bombman results
  bombman results --limit 50
  bombman results --db ./results.db`,
	Args: cobra.NoArgs,
	RunE: runResults,
}

func init() {
	resultsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of recent games to show")
}

func runResults(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := storage.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer store.Close()

	games, err := store.RecentGames(flagLimit)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println("Run 'bombman play' or 'bombman sim' to play one.")
		return nil
	}

	fmt.Println("Recent games:")
	fmt.Println()
	fmt.Printf("  %-19s  %-8s  %-10s  %4s  %-6s  %7s  %s\n", "When", "Match", "Map", "Game", "Winner", "Time", "Kills")
	fmt.Printf("  %-19s  %-8s  %-10s  %4s  %-6s  %7s  %s\n", "----", "-----", "---", "----", "------", "----", "-----")
	for _, g := range games {
		winner := "draw"
		if g.WinnerTeam >= 0 {
			winner = fmt.Sprintf("team %d", g.WinnerTeam)
		}
		kills := make([]string, 0, len(g.Players))
		for _, p := range g.Players {
			kills = append(kills, fmt.Sprintf("P%d:%d", p.Slot, p.Kills))
		}
		fmt.Printf("  %-19s  %-8s  %-10s  %4d  %-6s  %6.1fs  %s\n",
			g.CreatedAt.Format("2006-01-02 15:04:05"),
			shortID(g.MatchID),
			g.Map,
			g.GameIndex+1,
			winner,
			float64(g.DurationMs)/1000,
			strings.Join(kills, " "),
		)
	}

	tally, err := store.Tally()
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println("Totals per slot:")
	fmt.Println()
	fmt.Printf("  %-4s  %5s  %4s  %5s\n", "Slot", "Games", "Wins", "Kills")
	fmt.Printf("  %-4s  %5s  %4s  %5s\n", "----", "-----", "----", "-----")
	for _, t := range tally {
		fmt.Printf("  %-4d  %5d  %4d  %5d\n", t.Slot, t.Games, t.Wins, t.Kills)
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
