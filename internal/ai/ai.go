// Package ai drives computer-controlled players. An AI looks at the map the
// same way a human does and answers with intents; it never mutates the map.
package ai

import (
	"math/rand"

	"github.com/amalg/go-bombman/internal/game"
)

const (
	minRecompute = 100 // ms
	maxRecompute = 500

	// forceMoveAfter breaks deadlocks where every option scores the same.
	forceMoveAfter = 10000

	nearbyRadius = 3

	// layBombDanger is the danger value above which the own tile counts as
	// calm enough to lay a bomb.
	layBombDanger = 2000
)

// AI is the controller of one player. It keeps only timing and the last
// decision between calls.
type AI struct {
	playerID int
	rng      *rand.Rand

	recomputeIn int
	move        game.Action
	moving      bool

	lastPosition game.Vec
	stillFor     int
}

// New returns a controller for the player with the given id.
func New(playerID int, rng *rand.Rand) *AI {
	return &AI{playerID: playerID, rng: rng}
}

// PlayerID returns the id of the controlled player.
func (a *AI) PlayerID() int { return a.playerID }

// Play returns the intents for the next dt milliseconds. A full decision is
// made every 100 to 500 ms; in between only the last movement is repeated.
func (a *AI) Play(m *game.Map, dt int) []game.Intent {
	p := m.Player(a.playerID)
	if p == nil || p.IsDead() || m.State() != game.StatePlaying {
		return nil
	}
	if p.InAir() || p.IsTeleporting() {
		return nil
	}

	if p.Position == a.lastPosition {
		a.stillFor += dt
	} else {
		a.stillFor = 0
		a.lastPosition = p.Position
	}

	a.recomputeIn -= dt
	if a.recomputeIn > 0 {
		return a.replay()
	}
	a.recomputeIn = minRecompute + a.rng.Intn(maxRecompute-minRecompute+1)

	actions := a.decide(m, p)
	if a.stillFor >= forceMoveAfter {
		a.move, a.moving = game.MoveAction(game.Directions[a.rng.Intn(4)]), true
		a.stillFor = 0
	}

	intents := a.replay()
	for _, act := range actions {
		intents = append(intents, game.Intent{PlayerID: a.playerID, Action: act})
	}
	return intents
}

func (a *AI) replay() []game.Intent {
	if !a.moving {
		return nil
	}
	return []game.Intent{{PlayerID: a.playerID, Action: a.move}}
}

// decide picks the movement (stored on a) and returns the non-movement
// actions for this decision.
func (a *AI) decide(m *game.Map, p *game.Player) []game.Action {
	tile := p.Tile()
	var actions []game.Action
	special := false

	walkable := walkableDirections(m, tile)
	onBomb := m.TileHasBomb(tile)
	ratings := escapeRatings(m, p)

	switch {
	case len(walkable) == 0:
		a.setMove(game.Directions[a.rng.Intn(4)])
		special = p.HasBoxingGlove
	case onBomb:
		a.setMove(a.bestEscape(walkable, ratings))
	default:
		a.chooseTile(m, p, walkable)
	}

	if !onBomb && a.shouldLayBomb(m, p, ratings) {
		actions = append(actions, a.bombAction(m, p, ratings))
	}

	if p.HasBoxingGlove && len(walkable) > 0 && m.TileHasBomb(tile.Add(p.Facing(), 1)) {
		special = true
	}
	if len(p.DetonatorBombs) > 0 && m.DangerValue(tile) >= game.SafeDangerValue && a.rng.Intn(100) < 10 {
		special = true
	}

	// One Special per decision; each one detonates a bomb.
	if special {
		actions = append(actions, game.ActionSpecial)
	}
	return actions
}

func (a *AI) setMove(d game.Direction) {
	a.move, a.moving = game.MoveAction(d), true
}

func walkableDirections(m *game.Map, tile game.Position) []game.Direction {
	var out []game.Direction
	for _, d := range game.Directions {
		if m.IsWalkable(tile.Add(d, 1)) {
			out = append(out, d)
		}
	}
	return out
}

func (a *AI) bestEscape(walkable []game.Direction, ratings [4]int) game.Direction {
	best := -1
	var ties []game.Direction
	for _, d := range walkable {
		switch r := ratings[d]; {
		case r > best:
			best, ties = r, []game.Direction{d}
		case r == best:
			ties = append(ties, d)
		}
	}
	return ties[a.rng.Intn(len(ties))]
}

// chooseTile scores the current tile and its walkable neighbours and walks
// toward the best one, or stops when staying is best.
func (a *AI) chooseTile(m *game.Map, p *game.Player, walkable []game.Direction) {
	tile := p.Tile()
	bias := enemyBias(m, p)

	type option struct {
		dir  game.Direction
		stay bool
	}
	best := scoreTile(m, p, tile)
	ties := []option{{stay: true}}
	for _, d := range walkable {
		s := scoreTile(m, p, tile.Add(d, 1))
		dx, dy := d.Delta()
		if dx != 0 && dx == bias.X {
			s += 2
		}
		if dy != 0 && dy == bias.Y {
			s += 2
		}
		switch {
		case s > best:
			best, ties = s, []option{{dir: d}}
		case s == best:
			ties = append(ties, option{dir: d})
		}
	}

	choice := ties[a.rng.Intn(len(ties))]
	if choice.stay {
		a.moving = false
		return
	}
	a.setMove(choice.dir)
}

func scoreTile(m *game.Map, p *game.Player, at game.Position) int {
	t := m.TileAt(at)
	if t == nil {
		return 0
	}
	score := dangerTier(m.DangerValue(at))
	if t.Special == game.SpecialLava {
		score = 0
	}

	if t.Kind == game.TileFloor && t.Item != game.ItemNone {
		if t.Item.Beneficial() {
			score += 20
		} else {
			score -= 10
		}
	}

	for _, d := range game.Directions {
		if n := m.TileAt(at.Add(d, 1)); n != nil && n.Special == game.SpecialLava {
			score -= 5
			break
		}
	}
	if m.TileHasBomb(at) && !p.HasBoxingGlove {
		score -= 5
	}
	return score
}

func dangerTier(v int) int {
	switch {
	case v < 1000:
		return 0
	case v < 2500:
		return 20
	case v < 4000:
		return 40
	default:
		return 60
	}
}

// enemyBias returns the clamped unit vector toward the nearest living enemy.
func enemyBias(m *game.Map, p *game.Player) game.Position {
	tile := p.Tile()
	var nearest *game.Player
	bestDist := 0
	for _, o := range m.LivingPlayers() {
		if !p.IsEnemy(o) {
			continue
		}
		if d := chebyshev(tile, o.Tile()); nearest == nil || d < bestDist {
			nearest, bestDist = o, d
		}
	}
	if nearest == nil {
		return game.Position{}
	}
	target := nearest.Tile()
	return game.Position{X: sign(target.X - tile.X), Y: sign(target.Y - tile.Y)}
}

// escapeRatings rates each direction for running from a bomb on the current
// tile: every tile along the axis within reach that offers a sideways exit,
// and the tile just beyond the flame, counts once.
func escapeRatings(m *game.Map, p *game.Player) [4]int {
	var ratings [4]int
	tile := p.Tile()
	reach := p.EffectiveFlameLength() + 1

	for _, d := range game.Directions {
		sides := perpendicular(d)
		for i := 1; i <= reach; i++ {
			axis := tile.Add(d, i)
			if !m.IsWalkable(axis) || m.TileHasFlame(axis) {
				break
			}
			if i == reach {
				ratings[d]++
			}
			for _, s := range sides {
				side := axis.Add(s, 1)
				if m.IsWalkable(side) && !m.TileHasFlame(side) {
					ratings[d]++
				}
			}
		}
	}
	return ratings
}

func perpendicular(d game.Direction) [2]game.Direction {
	if d.Horizontal() {
		return [2]game.Direction{game.DirUp, game.DirDown}
	}
	return [2]game.Direction{game.DirLeft, game.DirRight}
}

func (a *AI) shouldLayBomb(m *game.Map, p *game.Player, ratings [4]int) bool {
	if p.BombsLeft <= 0 || p.HasDisease(game.DiseaseNoBomb) {
		return false
	}
	escapable := ratings[0]+ratings[1]+ratings[2]+ratings[3] > 0
	if !p.HasThrowingGlove && (m.DangerValue(p.Tile()) <= layBombDanger || !escapable) {
		return false
	}

	enemies, allies := nearbyPlayers(m, p)
	chance := 5 + 25*enemies - 10*allies

	if initial := m.InitialBlockCount(); initial > 0 {
		depleted := 1 - float64(m.BlockCount())/float64(initial)
		chance += int(30 * depleted)
	}
	if n := adjacentBlocks(m, p.Tile()); n >= 1 && n <= 3 {
		chance /= 3
	}
	return chance > 0 && a.rng.Intn(100) < chance
}

// bombAction prefers a multibomb line when the whole line is safe and
// leaves a way out, and a throw when an enemy is ahead.
func (a *AI) bombAction(m *game.Map, p *game.Player, ratings [4]int) game.Action {
	facing := p.Facing()
	tile := p.Tile()

	if p.HasMultibomb {
		others := 0
		for _, d := range game.Directions {
			if d != facing {
				others += ratings[d]
			}
		}
		if others > 0 && lineSafe(m, tile, facing, p.BombsLeft) {
			return game.ActionBombDouble
		}
	}
	if p.HasThrowingGlove {
		for i := 1; i <= game.BombFlightLength+1; i++ {
			for _, o := range m.PlayersAtTile(tile.Add(facing, i)) {
				if p.IsEnemy(o) {
					return game.ActionBombDouble
				}
			}
		}
	}
	return game.ActionBomb
}

func lineSafe(m *game.Map, from game.Position, d game.Direction, n int) bool {
	for i := 1; i < n; i++ {
		at := from.Add(d, i)
		if !m.IsWalkable(at) {
			return true
		}
		if m.DangerValue(at) < game.SafeDangerValue {
			return false
		}
	}
	return true
}

func nearbyPlayers(m *game.Map, p *game.Player) (enemies, allies int) {
	tile := p.Tile()
	for _, o := range m.LivingPlayers() {
		if o == p || chebyshev(tile, o.Tile()) > nearbyRadius {
			continue
		}
		if p.IsEnemy(o) {
			enemies++
		} else {
			allies++
		}
	}
	return enemies, allies
}

func adjacentBlocks(m *game.Map, tile game.Position) int {
	n := 0
	for _, d := range game.Directions {
		if t := m.TileAt(tile.Add(d, 1)); t != nil && t.Kind == game.TileBlock && !t.ToBeDestroyed {
			n++
		}
	}
	return n
}

func chebyshev(a, b game.Position) int {
	return max(abs(a.X-b.X), abs(a.Y-b.Y))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
