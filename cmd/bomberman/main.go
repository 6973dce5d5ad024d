// bombman is a terminal arena game: lay bombs, collect items and be the last
// team standing.
//
// Usage:
//
//	bombman play             - Play against AI players in the terminal
//	bombman sim              - Run an AI-only match without a screen
//	bombman results          - Show recorded games and per-slot totals
//	bombman maps             - List built-in maps
//
// Global flags:
//
//	--config <path>  - Configuration file (default search: ~/.bomberman, ./configs)
//	--seed <value>   - RNG seed for reproducible matches
//	--db <path>      - Results database path
//	--log-file <p>   - Write logs to a rotating file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bombman",
	Short: "Bombman - blow up your friends in the terminal",
	Long: `Bombman is a tile-based arena game for the terminal. Up to ten
players in teams lay bombs, collect items and try to be the last
team standing.

Available commands:
  play     - Play a match against AI players
  sim      - Run an AI-only match headless
  results  - View recorded games
  maps     - List built-in maps

Examples:
  bombman play
  bombman play --map arena --games 5
  bombman sim --games 10 --seed 42
  bombman results`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = config value or time based)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the results database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file path (rotated)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(mapsCmd)
}
