// Package match runs series of games: it feeds human and AI intents into the
// simulation, advances it, and records the outcome of every game.
package match

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/amalg/go-bombman/internal/ai"
	"github.com/amalg/go-bombman/internal/game"
	"github.com/amalg/go-bombman/internal/storage"
)

// Recorder persists finished games. *storage.Store implements it.
type Recorder interface {
	SaveGame(r storage.GameResult) (int64, error)
}

// Options configure a series.
type Options struct {
	MapName string
	MapData string
	Setup   game.PlaySetup
	Games   int
	Seed    int64
	// TimeLimit ends a running game as a draw after this many ms; 0 disables it.
	TimeLimit int

	Logger   *log.Logger
	Recorder Recorder
}

// Totals accumulates a slot's score over the series.
type Totals struct {
	Kills int `json:"kills"`
	Wins  int `json:"wins"`
}

// Series plays Options.Games maps in a row with the same setup.
type Series struct {
	id   string
	opts Options
	rng  *rand.Rand

	index   int
	current *game.Map
	ais     []*ai.AI
	totals  [game.MaxPlayers]Totals
	results []storage.GameResult
	done    bool
}

// NewSeries validates the options and loads the first game.
func NewSeries(opts Options) (*Series, error) {
	if opts.Games <= 0 {
		opts.Games = 1
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	s := &Series{
		id:   uuid.NewString(),
		opts: opts,
		rng:  rand.New(rand.NewSource(opts.Seed)),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	s.opts.Logger.Info("match started", "match", s.id, "map", opts.MapName, "games", opts.Games)
	return s, nil
}

func (s *Series) load() error {
	m, err := game.NewMap(s.opts.MapData, s.opts.Setup, s.index, s.opts.Games,
		game.WithRand(rand.New(rand.NewSource(s.rng.Int63()))),
		game.WithLogger(s.opts.Logger))
	if err != nil {
		return fmt.Errorf("failed to load game %d: %w", s.index+1, err)
	}
	s.current = m

	s.ais = s.ais[:0]
	for id, slot := range s.opts.Setup.Slots {
		if slot != nil && slot.Controller == game.ControllerAI {
			s.ais = append(s.ais, ai.New(id, rand.New(rand.NewSource(s.rng.Int63()))))
		}
	}
	return nil
}

// ID returns the unique id of the series.
func (s *Series) ID() string { return s.id }

// Map returns the game in progress, or the last game once the series is done.
func (s *Series) Map() *game.Map { return s.current }

// Done reports whether every game has been played.
func (s *Series) Done() bool { return s.done }

// Totals returns the accumulated kills and wins per slot.
func (s *Series) Totals() [game.MaxPlayers]Totals { return s.totals }

// Results returns the outcome of every finished game.
func (s *Series) Results() []storage.GameResult {
	return append([]storage.GameResult(nil), s.results...)
}

// Step advances the current game by dt ms. human holds the intents of the
// human-controlled players. When the game reaches GameOver its result is
// recorded and the next game is loaded.
func (s *Series) Step(human []game.Intent, dt int) error {
	if s.done {
		return nil
	}
	m := s.current

	intents := append([]game.Intent(nil), human...)
	for _, a := range s.ais {
		intents = append(intents, a.Play(m, dt)...)
	}
	for _, p := range m.Players() {
		m.ReactToInputs(p.ID, intents, dt)
	}
	m.Update(dt)

	timedOut := s.opts.TimeLimit > 0 && m.State() == game.StatePlaying && m.MapTime() >= s.opts.TimeLimit
	if m.State() != game.StateGameOver && !timedOut {
		return nil
	}
	return s.finishGame(timedOut)
}

func (s *Series) finishGame(timedOut bool) error {
	m := s.current
	winner := m.WinnerTeam()
	if timedOut {
		winner = game.NoTeam
		s.opts.Logger.Warn("game hit the time limit", "match", s.id, "game", s.index+1, "time", m.MapTime())
	}

	result := storage.GameResult{
		MatchID:    s.id,
		GameIndex:  s.index,
		Map:        s.opts.MapName,
		WinnerTeam: winner,
		DurationMs: m.MapTime(),
	}
	for _, p := range m.Players() {
		slot := s.opts.Setup.Slots[p.ID]
		won := !timedOut && p.Wins > 0
		s.totals[p.ID].Kills += p.Kills
		if won {
			s.totals[p.ID].Wins++
		}
		result.Players = append(result.Players, storage.PlayerResult{
			Slot:  p.ID,
			Team:  p.Team,
			AI:    slot.Controller == game.ControllerAI,
			Kills: p.Kills,
			Alive: !p.IsDead(),
			Won:   won,
		})
	}
	s.results = append(s.results, result)

	if s.opts.Recorder != nil {
		if _, err := s.opts.Recorder.SaveGame(result); err != nil {
			return fmt.Errorf("failed to record game %d: %w", s.index+1, err)
		}
	}
	s.opts.Logger.Info("game over", "match", s.id, "game", s.index+1, "winner", winner)

	s.index++
	if s.index >= s.opts.Games {
		s.done = true
		return nil
	}
	return s.load()
}

// headlessTimeLimit bounds games between AIs that never meet.
const headlessTimeLimit = 5 * 60 * 1000

// MaxStep is the longest time one step may simulate. It must stay well below
// game.FlameBurnTime or flames burn out before they touch anyone.
const MaxStep = 100

// RunHeadless plays a whole series without a clock, stepping by dt ms,
// capped at MaxStep. It is meant for AI-only setups; human slots simply
// stand still.
func RunHeadless(opts Options, dt int) (*Series, error) {
	if dt <= 0 {
		return nil, fmt.Errorf("step must be positive, got %d", dt)
	}
	dt = min(dt, MaxStep)
	if opts.TimeLimit <= 0 {
		opts.TimeLimit = headlessTimeLimit
	}
	s, err := NewSeries(opts)
	if err != nil {
		return nil, err
	}
	for !s.Done() {
		if err := s.Step(nil, dt); err != nil {
			return s, err
		}
	}
	return s, nil
}
