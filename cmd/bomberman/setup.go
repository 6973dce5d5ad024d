package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/amalg/go-bombman/internal/config"
	"github.com/amalg/go-bombman/internal/maps"
	"github.com/amalg/go-bombman/internal/match"
	"github.com/amalg/go-bombman/internal/storage"
)

// loadConfig reads the configuration and applies the global flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagSeed != 0 {
		cfg.Seed = flagSeed
	}
	if flagDBPath != "" {
		cfg.Database = flagDBPath
	}
	if flagLogFile != "" {
		cfg.Log.File = flagLogFile
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}

// applyMatchFlags applies the flags shared by play and sim.
func applyMatchFlags(cfg *config.Config) {
	if flagMap != "" {
		cfg.Map = flagMap
	}
	if flagGames > 0 {
		cfg.Games = flagGames
	}
}

// newLogger builds the process logger. Without a log file, fallback receives
// the output; the TUI passes io.Discard so logs never corrupt the screen.
func newLogger(cfg config.Config, fallback io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}

	w := fallback
	if cfg.Log.File != "" {
		path, err := config.ExpandHome(cfg.Log.File)
		if err != nil {
			return nil, err
		}
		w = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     7, // days
		}
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "bombman",
		Level:           level,
	}), nil
}

// openStore opens the results database. A failure is logged and the match
// runs without recording.
func openStore(cfg config.Config, logger *log.Logger) *storage.Store {
	if cfg.Database == "" {
		return nil
	}
	store, err := storage.Open(cfg.Database)
	if err != nil {
		logger.Warn("could not open results database", "error", err)
		return nil
	}
	return store
}

// seriesOptions assembles match options from the configuration.
func seriesOptions(cfg config.Config, logger *log.Logger, store *storage.Store) (match.Options, error) {
	data, err := maps.Load(cfg.Map)
	if err != nil {
		return match.Options{}, err
	}
	setup, err := cfg.PlaySetup()
	if err != nil {
		return match.Options{}, err
	}
	opts := match.Options{
		MapName:   cfg.Map,
		MapData:   data,
		Setup:     setup,
		Games:     cfg.Games,
		Seed:      cfg.Seed,
		TimeLimit: cfg.TimeLimit,
		Logger:    logger,
	}
	// A nil *Store in the interface would not compare equal to nil.
	if store != nil {
		opts.Recorder = store
	}
	return opts, nil
}

func printTotals(s *match.Series) {
	totals := s.Totals()
	fmt.Printf("Match %s\n\n", s.ID())
	fmt.Printf("  %-4s  %-4s  %5s  %5s\n", "Slot", "Team", "Wins", "Kills")
	fmt.Printf("  %-4s  %-4s  %5s  %5s\n", "----", "----", "----", "-----")
	for _, p := range s.Map().Players() {
		fmt.Printf("  %-4d  %-4d  %5d  %5d\n", p.ID, p.Team, totals[p.ID].Wins, totals[p.ID].Kills)
	}
	fmt.Println()
}

func closeStore(store *storage.Store, logger *log.Logger) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Warn("could not close results database", "error", err)
	}
}
