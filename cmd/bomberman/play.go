package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/amalg/go-bombman/internal/game"
	"github.com/amalg/go-bombman/internal/match"
	"github.com/amalg/go-bombman/internal/ui"
)

var (
	flagMap   string
	flagGames int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a match",
	Long: `Start a match in the terminal. The first human slot of the
configuration is controlled from the keyboard; without one you spectate.

Controls:
  Arrows/WASD - Move
  Space       - Lay bomb
  B           - Throw (throwing glove) or lay a line (multibomb)
  X/Enter     - Detonate (detonator) or box a bomb (boxing glove)
  ?           - Toggle help
  Q/Ctrl+C    - Quit

Examples:
  bombman play
  bombman play --map arena
  bombman play --games 5 --config ./my-match.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, simCmd} {
		c.Flags().StringVar(&flagMap, "map", "", "Built-in map name or path to a map file")
		c.Flags().IntVar(&flagGames, "games", 0, "Number of games in the match")
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("play needs an interactive terminal; use 'bombman sim' for headless matches")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyMatchFlags(&cfg)

	// Any stderr output would corrupt the Bubbletea rendering.
	logger, err := newLogger(cfg, io.Discard)
	if err != nil {
		return err
	}
	store := openStore(cfg, logger)
	defer closeStore(store, logger)

	opts, err := seriesOptions(cfg, logger, store)
	if err != nil {
		return err
	}
	series, err := match.NewSeries(opts)
	if err != nil {
		return err
	}

	me := -1
	for id, slot := range opts.Setup.Slots {
		if slot != nil && slot.Controller == game.ControllerHuman {
			me = id
			break
		}
	}

	engine := match.NewEngine(series, cfg.TickRate, cfg.MaxDelta)
	snapshots := make(chan match.Snapshot, 4)
	engine.OnTick(ui.Publish(snapshots))

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	runErr := make(chan error, 1)
	go func() {
		err := engine.Run(ctx)
		close(snapshots)
		runErr <- err
	}()

	p := tea.NewProgram(ui.NewModel(engine, snapshots, me), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	cancel()

	if err := <-runErr; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	printTotals(series)
	return nil
}
