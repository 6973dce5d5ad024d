package game

import "math"

// collision classifies a player position against the grid.
type collision int

const (
	collisionNone collision = iota
	collisionTotal
	// border collisions, in Direction order
	collisionBorderUp
	collisionBorderRight
	collisionBorderDown
	collisionBorderLeft
)

func borderCollision(d Direction) collision {
	return collisionBorderUp + collision(d)
}

// collisionAt reports how pos collides with unwalkable tiles. A border
// collision means pos is within the margin of a tile edge that has an
// unwalkable neighbour behind it.
func (m *Map) collisionAt(pos Vec) collision {
	tile := pos.Tile()
	if !m.IsWalkable(tile) {
		return collisionTotal
	}

	fx := pos.X - math.Floor(pos.X)
	fy := pos.Y - math.Floor(pos.Y)

	switch {
	case fy < collisionMarginVertical && !m.IsWalkable(tile.Add(DirUp, 1)):
		return borderCollision(DirUp)
	case fy > 1-collisionMarginVertical && !m.IsWalkable(tile.Add(DirDown, 1)):
		return borderCollision(DirDown)
	case fx < collisionMarginHorizontal && !m.IsWalkable(tile.Add(DirLeft, 1)):
		return borderCollision(DirLeft)
	case fx > 1-collisionMarginHorizontal && !m.IsWalkable(tile.Add(DirRight, 1)):
		return borderCollision(DirRight)
	}
	return collisionNone
}

// movePlayer walks p one step in dir and resolves collisions. While the
// player stays inside the tile of a bomb it was already standing on, no
// collision is checked so a freshly laid bomb never traps its owner.
func (m *Map) movePlayer(p *Player, dir Direction, dt int) {
	dist := p.EffectiveSpeed() * float64(dt) / 1000
	prev := p.Position
	prevTile := prev.Tile()

	dx, dy := dir.Delta()
	p.Position.X += dist * float64(dx)
	p.Position.Y += dist * float64(dy)
	p.setState(walkingState(dir))

	if p.Tile() == prevTile && m.TileHasBomb(prevTile) {
		return
	}

	c := m.collisionAt(p.Position)
	switch {
	case c == collisionNone:
	case c == collisionTotal || c == borderCollision(dir):
		p.Position = prev
		m.tryKick(p, dir)
	default:
		border := Direction(c - collisionBorderUp)
		if border.Horizontal() != dir.Horizontal() {
			slideTowardCentre(p, border, dist)
		}
	}
}

// slideTowardCentre pushes the player away from a blocked border, along
// the axis perpendicular to its walking direction.
func slideTowardCentre(p *Player, border Direction, dist float64) {
	centre := p.Tile().Centre()
	if border.Horizontal() {
		p.Position.X = approach(p.Position.X, centre.X, dist)
	} else {
		p.Position.Y = approach(p.Position.Y, centre.Y, dist)
	}
}

func approach(v, target, step float64) float64 {
	if math.Abs(target-v) <= step {
		return target
	}
	if v < target {
		return v + step
	}
	return v - step
}

// tryKick sets bombs in front of a shoe wearer rolling.
func (m *Map) tryKick(p *Player, dir Direction) {
	if !p.HasShoe {
		return
	}
	for _, b := range m.BombsOnTile(p.Tile().Add(dir, 1)) {
		m.kickBomb(b, dir)
	}
}
