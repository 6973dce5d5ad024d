package game

import "math"

// giveItem applies a picked-up (or starting) item to the player.
func (m *Map) giveItem(p *Player, item ItemKind) {
	if item == ItemNone {
		return
	}
	p.Items[item]++

	switch item {
	case ItemBomb:
		p.BombsLeft++
	case ItemFlame:
		p.FlameLength = min(p.FlameLength+1, MaxFlameLength)
	case ItemSuperflame:
		p.FlameLength = MaxFlameLength
	case ItemSpeedup:
		p.Speed = math.Min(p.Speed+SpeedupValue, MaxSpeed)
	case ItemDisease:
		m.infect(p, m.randomDisease())
	case ItemRandom:
		m.giveItem(p, m.randomItem())
	case ItemSpring:
		p.HasSpring = true
	case ItemShoe:
		p.HasShoe = true
	case ItemMultibomb:
		p.HasMultibomb = true
		p.HasThrowingGlove = false
	case ItemThrowingGlove:
		p.HasThrowingGlove = true
		p.HasMultibomb = false
	case ItemBoxingGlove:
		p.HasBoxingGlove = true
	case ItemDetonator:
		p.DetonatorBombsLeft = DetonatorBombs
	}
	m.playSound(SoundItem)
}

// randomItem picks any concrete item except Random itself.
func (m *Map) randomItem() ItemKind {
	for {
		item := ItemKind(1 + m.rng.Intn(int(ItemThrowingGlove)))
		if item != ItemRandom {
			return item
		}
	}
}

func (m *Map) randomDisease() DiseaseKind {
	return DiseaseKind(1 + m.rng.Intn(diseaseCount))
}

// infect gives p the disease for the full duration. Switching players and
// earthquakes take effect once, on infection.
func (m *Map) infect(p *Player, d DiseaseKind) {
	p.Disease = d
	p.DiseaseTime = DiseaseDuration
	m.playSound(SoundDisease)
	m.logger.Debug("player infected", "player", p.ID, "disease", d)

	switch d {
	case DiseaseSwitchPlayers:
		m.switchWithRandomPlayer(p)
	case DiseaseEarthquake:
		m.playSound(SoundEarthquake)
		m.animate(AnimationEarthquake, p.Position)
	}
}

func (m *Map) switchWithRandomPlayer(p *Player) {
	var others []*Player
	for _, o := range m.players {
		if o != p && !o.IsDead() && !o.InAir() && !o.IsTeleporting() {
			others = append(others, o)
		}
	}
	if len(others) == 0 {
		return
	}
	o := others[m.rng.Intn(len(others))]
	p.Position, o.Position = o.Position, p.Position
	m.playSound(SoundTeleport)
	m.invalidateDanger()
}

func (m *Map) tickDisease(p *Player, dt int) {
	if p.Disease == DiseaseNone {
		return
	}
	p.DiseaseTime -= dt
	if p.DiseaseTime <= 0 {
		p.Disease = DiseaseNone
		p.DiseaseTime = 0
	}
}

// spreadDisease infects healthy players sharing a tile with p.
func (m *Map) spreadDisease(p *Player) {
	if p.Disease == DiseaseNone {
		return
	}
	for _, other := range m.PlayersAtTile(p.Tile()) {
		if other == p || other.Disease != DiseaseNone || other.InAir() || other.IsTeleporting() {
			continue
		}
		m.infect(other, p.Disease)
	}
}
