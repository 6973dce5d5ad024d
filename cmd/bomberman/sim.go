package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/amalg/go-bombman/internal/match"
)

var flagStep int

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run an AI-only match headless",
	Long: `Play a whole match with every slot driven by the AI, as fast as
possible, and print the totals. Results are recorded like in play.

Examples:
  bombman sim
  bombman sim --games 20 --seed 7 --map open
  bombman sim --step 20 --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagStep, "step", 50, "Simulated milliseconds per step (at most 100)")
}

func runSim(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyMatchFlags(&cfg)
	for i := range cfg.Slots {
		cfg.Slots[i].AI = true
	}

	logger, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	store := openStore(cfg, logger)
	defer closeStore(store, logger)

	opts, err := seriesOptions(cfg, logger, store)
	if err != nil {
		return err
	}
	series, err := match.RunHeadless(opts, flagStep)
	if err != nil {
		return err
	}
	printTotals(series)
	return nil
}

