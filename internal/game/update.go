package game

// Update advances the world by dt milliseconds: map state, bombs, tiles and
// the per-player environment. Player input is applied separately through
// ReactToInputs.
func (m *Map) Update(dt int) {
	if dt < 0 {
		dt = 0
	}
	m.mapTime += dt
	m.invalidateDanger()

	switch m.state {
	case StateGameOver:
		return
	case StateWaitingToPlay:
		if m.mapTime >= StartGameAfter {
			m.state = StatePlaying
			m.playSound(SoundGo)
			m.logger.Debug("game started", "game", m.gameIndex)
		}
		return
	}

	m.updateBombs(dt)
	m.updateTiles(dt)
	m.updatePlayers()
	m.checkGameEnd()
}

// updateTiles detonates bombs lying in flames, burns flames down and clears
// destroyed blocks. The hidden item of a cleared block stays on the floor.
func (m *Map) updateTiles(dt int) {
	for y := range m.tiles {
		for x := range m.tiles[y] {
			t := &m.tiles[y][x]
			if !t.HasFlame() {
				continue
			}
			for _, b := range m.BombsOnTile(Position{X: x, Y: y}) {
				if !b.IsFlying() {
					m.explodeBomb(b)
				}
			}
		}
	}

	for y := range m.tiles {
		for x := range m.tiles[y] {
			t := &m.tiles[y][x]
			kept := t.Flames[:0]
			for _, f := range t.Flames {
				f.BurnTimeLeft -= dt
				if f.BurnTimeLeft > 0 {
					kept = append(kept, f)
				}
			}
			t.Flames = kept
			if len(t.Flames) == 0 {
				t.Flames = nil
				if t.ToBeDestroyed {
					t.Kind = TileFloor
					t.ToBeDestroyed = false
				}
			}
		}
	}
}

func (m *Map) updatePlayers() {
	for _, p := range m.players {
		if p.IsDead() {
			continue
		}
		tile := p.Tile()
		if p.hasSpecialTile && tile != p.lastSpecialTile {
			p.hasSpecialTile = false
		}
		if p.InAir() || p.IsTeleporting() {
			continue
		}

		t := m.TileAt(tile)
		if t == nil {
			continue
		}
		if t.Kind == TileFloor && t.Item != ItemNone {
			item := t.Item
			t.Item = ItemNone
			m.giveItem(p, item)
		}

		// Lethal contact comes before trampolines and teleports.
		if !p.Invincible {
			switch {
			case t.HasFlame():
				m.kill(p, t.Flames[0].Owner)
				continue
			case t.Special == SpecialLava:
				m.kill(p, noPlayer)
				continue
			}
		}

		if !p.hasSpecialTile && p.Position.within(triggerTolerance) {
			switch {
			case t.Special == SpecialTrampoline:
				m.startJump(p)
				continue
			case t.Special.IsTeleport() && t.HasDestination:
				m.startTeleport(p, t.Destination)
				continue
			}
		}

		m.spreadDisease(p)
	}
}

const noPlayer = -1

// kill marks p dead and books the kill to killer. Killing yourself costs a
// kill; lava passes no killer.
func (m *Map) kill(p *Player, killer int) {
	p.setState(StateDead)
	p.Disease, p.DiseaseTime = DiseaseNone, 0
	m.playSound(SoundDeath)
	m.animate(AnimationDeath, p.Position)
	m.invalidateDanger()

	if killer == p.ID {
		p.Kills--
	} else if k := m.Player(killer); k != nil {
		k.Kills++
	}
	m.logger.Debug("player died", "player", p.ID, "killer", killer, "time", m.mapTime)
}

func (m *Map) checkGameEnd() {
	switch m.state {
	case StatePlaying:
		teams := make(map[int]bool)
		for _, p := range m.LivingPlayers() {
			teams[p.Team] = true
		}
		if len(teams) > 1 {
			return
		}
		m.state = StateFinishing
		m.finishedAt = m.mapTime
		for team := range teams {
			m.winnerTeam = team
		}
		if m.winnerTeam != NoTeam {
			for _, p := range m.players {
				if p.Team == m.winnerTeam && !p.IsDead() {
					p.Wins++
				}
			}
			m.playSound(SoundWin)
		}
		m.logger.Info("game finished", "game", m.gameIndex, "winner", m.winnerTeam, "time", m.mapTime)
	case StateFinishing:
		if m.mapTime-m.finishedAt >= FinishingPeriod {
			m.state = StateGameOver
		}
	}
}
