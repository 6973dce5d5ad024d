package game

import "math"

// BombMovement is the motion state of a bomb.
type BombMovement int

const (
	BombStationary BombMovement = iota
	BombRollingUp
	BombRollingRight
	BombRollingDown
	BombRollingLeft
	BombFlying
)

func rollingMovement(d Direction) BombMovement {
	return BombRollingUp + BombMovement(d)
}

// Flight describes an airborne bomb.
type Flight struct {
	Direction Direction `json:"direction"`
	Total     float64   `json:"total"` // tiles
	Travelled float64   `json:"travelled"`
}

// Bomb is an active bomb. Owner is the id of the player who laid it.
type Bomb struct {
	ID          int          `json:"id"`
	Owner       int          `json:"owner"`
	Position    Vec          `json:"position"`
	FlameLength int          `json:"flame_length"`
	Movement    BombMovement `json:"movement"`
	Flight      *Flight      `json:"flight,omitempty"`
	HasSpring   bool         `json:"has_spring"`
	Exploded    bool         `json:"exploded"`

	// ExplodesIn is the fuse length; TimeOfExistence only advances once
	// DetonatorTime has run out.
	ExplodesIn      int `json:"explodes_in"`
	TimeOfExistence int `json:"time_of_existence"`
	DetonatorTime   int `json:"detonator_time"`
}

// Tile returns the tile the bomb occupies.
func (b *Bomb) Tile() Position {
	return b.Position.Tile()
}

// TimeUntilExplosion returns the milliseconds left before the fuse expires.
func (b *Bomb) TimeUntilExplosion() int {
	return b.DetonatorTime + b.ExplodesIn - b.TimeOfExistence
}

// HasDetonator reports whether the bomb still waits for its owner's trigger.
func (b *Bomb) HasDetonator() bool {
	return b.DetonatorTime > 0
}

// IsFlying reports whether the bomb is airborne.
func (b *Bomb) IsFlying() bool {
	return b.Movement == BombFlying
}

// RollingDirection returns the direction of a rolling bomb.
func (b *Bomb) RollingDirection() (Direction, bool) {
	if b.Movement >= BombRollingUp && b.Movement <= BombRollingLeft {
		return Direction(b.Movement - BombRollingUp), true
	}
	return 0, false
}

func (b *Bomb) age(dt int) {
	if b.DetonatorTime > 0 {
		b.DetonatorTime -= dt
		if b.DetonatorTime >= 0 {
			return
		}
		dt = -b.DetonatorTime
		b.DetonatorTime = 0
	}
	b.TimeOfExistence += dt
}

// layBomb places a bomb for p at the given tile. It returns nil when the
// tile or the player cannot take one.
func (m *Map) layBomb(p *Player, at Position) *Bomb {
	if p.BombsLeft <= 0 || p.HasDisease(DiseaseNoBomb) {
		return nil
	}
	t := m.TileAt(at)
	if t == nil || t.Special.IsTeleport() || m.TileHasBomb(at) {
		return nil
	}

	m.nextBombID++
	b := &Bomb{
		ID:          m.nextBombID,
		Owner:       p.ID,
		Position:    at.Centre(),
		FlameLength: p.EffectiveFlameLength(),
		HasSpring:   p.HasSpring,
		ExplodesIn:  BombExplodesIn,
	}
	if p.HasDisease(DiseaseFastBomb) {
		b.ExplodesIn = FastBombExplodesIn
	}
	if p.DetonatorBombsLeft > 0 {
		p.DetonatorBombsLeft--
		b.DetonatorTime = DetonatorTimeout
		p.DetonatorBombs = append(p.DetonatorBombs, b.ID)
	}

	p.BombsLeft--
	m.bombs = append(m.bombs, b)
	m.playSound(SoundBombLaid)
	m.invalidateDanger()
	return b
}

// updateBombs advances fuses first, then motion.
func (m *Map) updateBombs(dt int) {
	for _, b := range append([]*Bomb(nil), m.bombs...) {
		if b.Exploded {
			continue
		}
		b.age(dt)
		if !b.IsFlying() && b.TimeUntilExplosion() <= 0 {
			m.explodeBomb(b)
			continue
		}

		if dir, ok := b.RollingDirection(); ok {
			m.rollBomb(b, dir, dt)
		} else if b.IsFlying() {
			m.flyBomb(b, dt)
		}

		if b.Exploded || b.IsFlying() {
			continue
		}
		if t := m.TileAt(b.Tile()); t != nil && t.Special == SpecialLava && b.Position.nearCentre() {
			m.explodeBomb(b)
		}
	}
}

func (m *Map) bombBlocked(p Position) bool {
	return !m.IsWalkable(p) || m.TileHasPlayer(p)
}

// rollBomb moves a kicked bomb. Obstacles and arrows are evaluated when the
// bomb reaches the centre of a tile.
func (m *Map) rollBomb(b *Bomb, dir Direction, dt int) {
	dist := BombRollingSpeed * float64(dt) / 1000
	tile := b.Tile()
	centre := tile.Centre()
	dx, dy := dir.Delta()

	before := (b.Position.X-centre.X)*float64(dx) + (b.Position.Y-centre.Y)*float64(dy)
	if before <= 0 && before+dist >= 0 {
		t := m.TileAt(tile)
		if t.Special == SpecialLava {
			b.Position = centre
			m.explodeBomb(b)
			return
		}
		if arrow, ok := t.Special.ArrowDirection(); ok && arrow != dir {
			b.Position = centre
			b.Movement = rollingMovement(arrow)
			m.invalidateDanger()
			return
		}
		if m.bombBlocked(tile.Add(dir, 1)) {
			b.Position = centre
			if b.HasSpring {
				b.Movement = rollingMovement(dir.Opposite())
			} else {
				b.Movement = BombStationary
			}
			m.invalidateDanger()
			return
		}
	}

	b.Position.X += dist * float64(dx)
	b.Position.Y += dist * float64(dy)

	if next := b.Tile(); next != tile {
		if t := m.TileAt(next); t != nil && t.Kind == TileFloor {
			t.Item = ItemNone
		}
		m.invalidateDanger()
	}
}

// flyBomb moves an airborne bomb, wrapping around the map edges. A bomb that
// cannot land flies one more tile.
func (m *Map) flyBomb(b *Bomb, dt int) {
	f := b.Flight
	dist := BombFlyingSpeed * float64(dt) / 1000
	landing := false
	if remaining := f.Total - f.Travelled; dist >= remaining {
		dist = remaining
		landing = true
	}

	dx, dy := f.Direction.Delta()
	b.Position.X = wrap(b.Position.X+dist*float64(dx), MapWidth)
	b.Position.Y = wrap(b.Position.Y+dist*float64(dy), MapHeight)
	f.Travelled += dist

	if !landing {
		return
	}
	tile := b.Tile()
	b.Position = tile.Centre()
	if !m.canLand(b, tile) {
		f.Total++
		return
	}
	b.Movement = BombStationary
	b.Flight = nil
	m.invalidateDanger()
	if b.TimeUntilExplosion() <= 0 {
		m.explodeBomb(b)
	}
}

func (m *Map) canLand(b *Bomb, p Position) bool {
	t := m.TileAt(p)
	if t == nil || t.Kind == TileWall || (t.Kind == TileBlock && !t.ToBeDestroyed) {
		return false
	}
	for _, other := range m.bombs {
		if other != b && other.Tile() == p {
			return false
		}
	}
	return !m.TileHasPlayer(p)
}

func wrap(v float64, size int) float64 {
	v = math.Mod(v, float64(size))
	if v < 0 {
		v += float64(size)
	}
	return v
}

// kickBomb sets a stationary bomb rolling.
func (m *Map) kickBomb(b *Bomb, dir Direction) {
	if b.Movement != BombStationary {
		return
	}
	b.Movement = rollingMovement(dir)
	m.playSound(SoundKick)
	m.invalidateDanger()
}

// launchBomb sends a bomb flying from the centre of its tile.
func (m *Map) launchBomb(b *Bomb, dir Direction) {
	if b.IsFlying() {
		return
	}
	b.Position = b.Tile().Centre()
	b.Movement = BombFlying
	b.Flight = &Flight{Direction: dir, Total: BombFlightLength}
	m.invalidateDanger()
}

func (m *Map) removeBomb(b *Bomb) {
	for i, other := range m.bombs {
		if other == b {
			m.bombs = append(m.bombs[:i], m.bombs[i+1:]...)
			return
		}
	}
}

// explodeBomb detonates b once: the owner gets the bomb back, flames spread
// along the four axes and any bomb they reach explodes immediately.
func (m *Map) explodeBomb(b *Bomb) {
	if b.Exploded {
		return
	}
	b.Exploded = true
	m.removeBomb(b)
	m.invalidateDanger()

	if owner := m.Player(b.Owner); owner != nil {
		owner.BombsLeft++
		owner.DetonatorBombs = removeID(owner.DetonatorBombs, b.ID)
	}

	centre := b.Tile()
	m.playSound(SoundExplosion)
	m.animate(AnimationExplosion, centre.Centre())

	m.placeFlame(centre, b.Owner, FlameAll)

	for _, dir := range Directions {
		last, lastIndex := Position{}, -1
		for i := 1; i <= b.FlameLength; i++ {
			pos := centre.Add(dir, i)
			t := m.TileAt(pos)
			if t == nil || t.Kind == TileWall {
				break
			}
			last, lastIndex = pos, m.placeFlame(pos, b.Owner, axisFlame(dir))
			if t.Kind == TileBlock {
				t.ToBeDestroyed = true
				break
			}
		}
		if lastIndex >= 0 {
			m.tiles[last.Y][last.X].Flames[lastIndex].Direction = endFlame(dir)
		}
	}
}

// placeFlame adds a flame to the tile and returns its index in the tile's
// flame list. Items lying on floor burn; bombs on the tile chain-explode.
func (m *Map) placeFlame(p Position, owner int, dir FlameDirection) int {
	t := m.TileAt(p)
	if t.Kind == TileFloor {
		t.Item = ItemNone
	}
	t.Flames = append(t.Flames, Flame{Owner: owner, BurnTimeLeft: FlameBurnTime, Direction: dir})
	index := len(t.Flames) - 1

	for _, other := range m.BombsOnTile(p) {
		if !other.IsFlying() {
			m.explodeBomb(other)
		}
	}
	return index
}

func removeID(ids []int, id int) []int {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// Clone returns a deep copy of the bomb.
func (b *Bomb) Clone() *Bomb {
	c := *b
	if b.Flight != nil {
		f := *b.Flight
		c.Flight = &f
	}
	return &c
}
