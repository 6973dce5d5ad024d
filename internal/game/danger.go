package game

// DangerValue estimates the milliseconds until the tile at p is covered by
// flame. Tiles no known bomb reaches report SafeDangerValue; tiles outside the
// map, walls, intact blocks and burning tiles report 0. A bomb's own tile
// carries its fuse. Bombs waiting for a detonator count as about to explode.
func (m *Map) DangerValue(p Position) int {
	if m.TileAt(p) == nil {
		return 0
	}
	if !m.dangerValid {
		m.computeDanger()
	}
	return m.danger[p.Y][p.X]
}

func (m *Map) computeDanger() {
	for y := range m.danger {
		for x := range m.danger[y] {
			if !m.flamePassable(Position{X: x, Y: y}) || m.tiles[y][x].HasFlame() {
				m.danger[y][x] = 0
			} else {
				m.danger[y][x] = SafeDangerValue
			}
		}
	}

	for _, b := range m.bombs {
		t := max(b.TimeUntilExplosion(), 0)
		if b.HasDetonator() {
			t = detonatorDangerTime
		}
		centre := b.Tile()
		m.lowerDanger(centre, t)
		for _, dir := range Directions {
			for i := 1; i <= b.FlameLength; i++ {
				pos := centre.Add(dir, i)
				if !m.flamePassable(pos) {
					break
				}
				m.lowerDanger(pos, t)
			}
		}
	}
	m.dangerValid = true
}

func (m *Map) lowerDanger(p Position, t int) {
	if m.TileAt(p) == nil {
		return
	}
	m.danger[p.Y][p.X] = min(m.danger[p.Y][p.X], t)
}

// flamePassable reports whether terrain lets flame through. Bombs do not stop
// flame; they detonate.
func (m *Map) flamePassable(p Position) bool {
	t := m.TileAt(p)
	return t != nil && t.Kind != TileWall && (t.Kind != TileBlock || t.ToBeDestroyed)
}
