package game

// ReactToInputs advances one player by dt milliseconds using the intents
// addressed to it. Intents for other players are ignored. Movement uses the
// first movement intent only; bomb and special intents are applied after
// movement, in order.
func (m *Map) ReactToInputs(playerID int, intents []Intent, dt int) {
	p := m.Player(playerID)
	if p == nil || p.IsDead() {
		return
	}
	if m.state == StateWaitingToPlay || m.state == StateGameOver {
		return
	}

	p.StateTime += dt
	m.tickDisease(p, dt)

	if p.InAir() || p.IsTeleporting() {
		m.updateTimedState(p)
		return
	}

	actions := make([]Action, 0, len(intents)+1)
	for _, in := range intents {
		if in.PlayerID == playerID {
			actions = append(actions, in.Action)
		}
	}
	if p.HasDisease(DiseaseDiarrhea) {
		actions = append(actions, ActionBomb)
	}
	if p.HasDisease(DiseaseReverseControls) {
		for i, a := range actions {
			if dir, ok := a.Direction(); ok {
				actions[i] = MoveAction(dir.Opposite())
			}
		}
	}

	moved := false
	for _, a := range actions {
		if dir, ok := a.Direction(); ok {
			m.movePlayer(p, dir, dt)
			moved = true
			break
		}
	}
	if !moved && p.IsWalking() {
		p.setState(idleState(p.Facing()))
	}

	for _, a := range actions {
		switch a {
		case ActionBomb:
			m.layBomb(p, p.Tile())
		case ActionBombDouble:
			m.bombDouble(p)
		case ActionSpecial:
			m.special(p)
		}
	}
}

// bombDouble throws the bomb under a throwing glove wearer, lays a line of
// bombs for a multibomb owner, and lays a single bomb otherwise.
func (m *Map) bombDouble(p *Player) {
	tile := p.Tile()
	facing := p.Facing()

	switch {
	case p.HasThrowingGlove:
		bombs := m.BombsOnTile(tile)
		if len(bombs) == 0 {
			if b := m.layBomb(p, tile); b != nil {
				bombs = append(bombs, b)
			}
		}
		for _, b := range bombs {
			m.launchBomb(b, facing)
			m.playSound(SoundThrow)
		}
	case p.HasMultibomb:
		if m.layBomb(p, tile) == nil {
			return
		}
		pos := tile
		for p.BombsLeft > 0 {
			pos = pos.Add(facing, 1)
			if !m.IsWalkable(pos) || m.TileHasPlayer(pos) {
				return
			}
			if m.layBomb(p, pos) == nil {
				return
			}
		}
	default:
		m.layBomb(p, tile)
	}
}

// special detonates the oldest detonator bomb still on the ground, or
// punches the bomb in front of a boxing glove wearer.
func (m *Map) special(p *Player) {
	for _, id := range p.DetonatorBombs {
		if b := m.Bomb(id); b != nil && !b.IsFlying() {
			m.explodeBomb(b)
			return
		}
	}

	if !p.HasBoxingGlove {
		return
	}
	facing := p.Facing()
	for _, b := range m.BombsOnTile(p.Tile().Add(facing, 1)) {
		m.launchBomb(b, facing)
		m.playSound(SoundBox)
	}
}

// updateTimedState relocates a jumping or teleporting player halfway
// through and restores the previous state at the end.
func (m *Map) updateTimedState(p *Player) {
	duration := JumpDuration
	if p.IsTeleporting() {
		duration = TeleportDuration
	}

	if !p.relocated && p.StateTime >= duration/2 {
		p.Position = p.destination.Centre()
		p.relocated = true
		p.lastSpecialTile, p.hasSpecialTile = p.destination, true
		m.invalidateDanger()
	}
	if p.StateTime >= duration {
		p.setState(p.stateBeforeTimed)
	}
}

func (m *Map) startJump(p *Player) {
	floors := m.freeFloorTiles()
	if len(floors) == 0 {
		return
	}
	m.startTimedState(p, StateInAir, floors[m.rng.Intn(len(floors))])
	m.playSound(SoundTrampoline)
}

func (m *Map) startTeleport(p *Player, dest Position) {
	m.startTimedState(p, StateTeleporting, dest)
	m.playSound(SoundTeleport)
	m.animate(AnimationTeleport, p.Position)
}

func (m *Map) startTimedState(p *Player, s PlayerState, dest Position) {
	p.stateBeforeTimed = p.State
	p.destination = dest
	p.relocated = false
	p.State = s
	p.StateTime = 0
}

// freeFloorTiles lists walkable floor tiles without special objects.
func (m *Map) freeFloorTiles() []Position {
	var out []Position
	for y := 0; y < MapHeight; y++ {
		for x := 0; x < MapWidth; x++ {
			pos := Position{X: x, Y: y}
			t := &m.tiles[y][x]
			if t.Kind == TileFloor && t.Special == SpecialNone && !t.HasFlame() && m.IsWalkable(pos) {
				out = append(out, pos)
			}
		}
	}
	return out
}
