package game

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

// Map is the authoritative world of one game: the grid, the players and the
// bombs. It is not safe for concurrent use.
type Map struct {
	tiles   [MapHeight][MapWidth]Tile
	players []*Player
	bombs   []*Bomb

	nextBombID int

	state      MapState
	mapTime    int
	finishedAt int
	winnerTeam int

	environment   string
	startingItems []ItemKind
	gameIndex     int
	totalGames    int
	initialBlocks int

	danger      [MapHeight][MapWidth]int
	dangerValid bool

	sounds     []SoundEvent
	animations []AnimationEvent

	rng    *rand.Rand
	logger *log.Logger
}

// Option configures a Map at construction.
type Option func(*Map)

// WithRand sets the random source used for item scattering, random items,
// diseases and trampolines.
func WithRand(rng *rand.Rand) Option {
	return func(m *Map) {
		m.rng = rng
	}
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(m *Map) {
		m.logger = logger
	}
}

// NewMap builds a game from a map descriptor. Every slot in setup must have a
// starting tile in the descriptor. No partial map is returned on error.
func NewMap(data string, setup PlaySetup, gameIndex, totalGames int, opts ...Option) (*Map, error) {
	m := &Map{
		winnerTeam: NoTeam,
		gameIndex:  gameIndex,
		totalGames: totalGames,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard)
	}

	d, err := parseDescriptor(data)
	if err != nil {
		return nil, err
	}
	d.scatterItems(m.rng)

	m.tiles = d.tiles
	m.environment = d.environment
	m.startingItems = d.startingItems

	for id, slot := range setup.Slots {
		if slot == nil {
			continue
		}
		start, ok := d.starts[id]
		if !ok {
			return nil, fmt.Errorf("%w: no starting position for player %d", ErrMalformedMap, id)
		}
		p := newPlayer(id, slot.Team, start)
		for _, item := range m.startingItems {
			m.giveItem(p, item)
		}
		m.players = append(m.players, p)
	}
	m.initialBlocks = m.BlockCount()

	// Events from starting items are not part of the game.
	m.sounds, m.animations = nil, nil

	m.logger.Debug("map loaded",
		"environment", m.environment,
		"players", len(m.players),
		"blocks", m.initialBlocks,
		"game", fmt.Sprintf("%d/%d", gameIndex+1, totalGames))
	return m, nil
}

// TileAt returns the tile at p, or nil outside the map.
func (m *Map) TileAt(p Position) *Tile {
	if p.X < 0 || p.X >= MapWidth || p.Y < 0 || p.Y >= MapHeight {
		return nil
	}
	return &m.tiles[p.Y][p.X]
}

// IsWalkable reports whether a player may enter the tile: it exists, is
// floor or a burning block, and holds no bomb.
func (m *Map) IsWalkable(p Position) bool {
	t := m.TileAt(p)
	if t == nil {
		return false
	}
	if t.Kind == TileWall || (t.Kind == TileBlock && !t.ToBeDestroyed) {
		return false
	}
	return !m.TileHasBomb(p)
}

// TileHasFlame reports whether a flame burns at p.
func (m *Map) TileHasFlame(p Position) bool {
	t := m.TileAt(p)
	return t != nil && t.HasFlame()
}

// TileHasBomb reports whether a bomb on the ground occupies p. Bombs in
// flight block nothing.
func (m *Map) TileHasBomb(p Position) bool {
	for _, b := range m.bombs {
		if !b.IsFlying() && b.Tile() == p {
			return true
		}
	}
	return false
}

// BombsOnTile returns the active bombs occupying p.
func (m *Map) BombsOnTile(p Position) []*Bomb {
	var out []*Bomb
	for _, b := range m.bombs {
		if b.Tile() == p {
			out = append(out, b)
		}
	}
	return out
}

// PlayersAtTile returns the living players standing on p.
func (m *Map) PlayersAtTile(p Position) []*Player {
	var out []*Player
	for _, pl := range m.players {
		if !pl.IsDead() && pl.Tile() == p {
			out = append(out, pl)
		}
	}
	return out
}

// TileHasPlayer reports whether a living player stands on p.
func (m *Map) TileHasPlayer(p Position) bool {
	return len(m.PlayersAtTile(p)) > 0
}

// Players returns all players, dead ones included, ordered by id.
func (m *Map) Players() []*Player {
	return m.players
}

// Player returns the player with the given id, or nil.
func (m *Map) Player(id int) *Player {
	for _, p := range m.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Bombs returns the active bombs.
func (m *Map) Bombs() []*Bomb {
	return m.bombs
}

// Bomb returns the active bomb with the given id, or nil.
func (m *Map) Bomb(id int) *Bomb {
	for _, b := range m.bombs {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// State returns the phase of the game.
func (m *Map) State() MapState { return m.state }

// WinnerTeam returns the winning team, or NoTeam for a draw or while the
// game is still being played.
func (m *Map) WinnerTeam() int { return m.winnerTeam }

// MapTime returns the milliseconds simulated since load.
func (m *Map) MapTime() int { return m.mapTime }

// EnvironmentName returns the visual environment of the map.
func (m *Map) EnvironmentName() string { return m.environment }

// StartingItems returns the items every player received at load.
func (m *Map) StartingItems() []ItemKind { return m.startingItems }

// GameIndex returns the zero-based index of this game within the match.
func (m *Map) GameIndex() int { return m.gameIndex }

// TotalGames returns the number of games in the match.
func (m *Map) TotalGames() int { return m.totalGames }

// InitialBlockCount returns the number of blocks at load.
func (m *Map) InitialBlockCount() int { return m.initialBlocks }

// BlockCount returns the number of blocks not yet destroyed.
func (m *Map) BlockCount() int {
	n := 0
	for y := range m.tiles {
		for x := range m.tiles[y] {
			if m.tiles[y][x].Kind == TileBlock {
				n++
			}
		}
	}
	return n
}

// LivingPlayers returns the players that are not dead.
func (m *Map) LivingPlayers() []*Player {
	var out []*Player
	for _, p := range m.players {
		if !p.IsDead() {
			out = append(out, p)
		}
	}
	return out
}

func (m *Map) invalidateDanger() {
	m.dangerValid = false
}
