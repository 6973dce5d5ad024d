package match

import "github.com/amalg/go-bombman/internal/game"

// Snapshot is a copy of a series at one instant, safe for rendering.
type Snapshot struct {
	MatchID     string        `json:"match_id"`
	Game        int           `json:"game"`
	TotalGames  int           `json:"total_games"`
	State       game.MapState `json:"state"`
	MapTime     int           `json:"map_time"`
	Environment string        `json:"environment"`
	WinnerTeam  int           `json:"winner_team"`
	Done        bool          `json:"done"`

	Tiles   [game.MapHeight][game.MapWidth]game.Tile `json:"tiles"`
	Players []*game.Player                           `json:"players"`
	Bombs   []*game.Bomb                             `json:"bombs"`
	Totals  [game.MaxPlayers]Totals                  `json:"totals"`

	Sounds     []game.SoundEvent     `json:"sounds,omitempty"`
	Animations []game.AnimationEvent `json:"animations,omitempty"`
}

// Player returns the copied player with the given id, or nil.
func (s Snapshot) Player(id int) *game.Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// copyMap creates a deep copy of the series' current game. With drain set
// the queued sound and animation events move into the snapshot.
func copyMap(s *Series, drain bool) Snapshot {
	m := s.Map()
	snap := Snapshot{
		MatchID:     s.ID(),
		Game:        m.GameIndex(),
		TotalGames:  m.TotalGames(),
		State:       m.State(),
		MapTime:     m.MapTime(),
		Environment: m.EnvironmentName(),
		WinnerTeam:  m.WinnerTeam(),
		Done:        s.Done(),
		Totals:      s.Totals(),
	}

	for y := 0; y < game.MapHeight; y++ {
		for x := 0; x < game.MapWidth; x++ {
			snap.Tiles[y][x] = m.TileAt(game.Position{X: x, Y: y}).Clone()
		}
	}

	players := m.Players()
	snap.Players = make([]*game.Player, len(players))
	for i, p := range players {
		snap.Players[i] = p.Clone()
	}

	bombs := m.Bombs()
	snap.Bombs = make([]*game.Bomb, len(bombs))
	for i, b := range bombs {
		snap.Bombs[i] = b.Clone()
	}

	if drain {
		snap.Sounds = m.TakeSoundEvents()
		snap.Animations = m.TakeAnimationEvents()
	}
	return snap
}
