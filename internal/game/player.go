package game

// PlayerState is the animation/control state of a player.
type PlayerState int

const (
	StateIdleUp PlayerState = iota
	StateIdleRight
	StateIdleDown
	StateIdleLeft
	StateWalkingUp
	StateWalkingRight
	StateWalkingDown
	StateWalkingLeft
	StateInAir
	StateTeleporting
	StateDead
)

func idleState(d Direction) PlayerState    { return StateIdleUp + PlayerState(d) }
func walkingState(d Direction) PlayerState { return StateWalkingUp + PlayerState(d) }

// DiseaseKind is a timed status effect.
type DiseaseKind int

const (
	DiseaseNone DiseaseKind = iota
	DiseaseDiarrhea
	DiseaseSlow
	DiseaseReverseControls
	DiseaseShortFlame
	DiseaseSwitchPlayers
	DiseaseFastBomb
	DiseaseNoBomb
	DiseaseEarthquake
)

// diseaseCount is the number of real diseases (excluding DiseaseNone).
const diseaseCount = int(DiseaseEarthquake)

func (d DiseaseKind) String() string {
	switch d {
	case DiseaseDiarrhea:
		return "diarrhea"
	case DiseaseSlow:
		return "slow"
	case DiseaseReverseControls:
		return "reverse controls"
	case DiseaseShortFlame:
		return "short flame"
	case DiseaseSwitchPlayers:
		return "switch players"
	case DiseaseFastBomb:
		return "fast bomb"
	case DiseaseNoBomb:
		return "no bomb"
	case DiseaseEarthquake:
		return "earthquake"
	default:
		return "none"
	}
}

// Player is a participant on the map. The id equals the setup slot index.
type Player struct {
	ID        int         `json:"id"`
	Team      int         `json:"team"`
	Position  Vec         `json:"position"`
	State     PlayerState `json:"state"`
	StateTime int         `json:"state_time"`

	Speed       float64          `json:"speed"`
	BombsLeft   int              `json:"bombs_left"`
	FlameLength int              `json:"flame_length"`
	Items       map[ItemKind]int `json:"items"`

	HasShoe          bool `json:"has_shoe"`
	HasSpring        bool `json:"has_spring"`
	HasMultibomb     bool `json:"has_multibomb"`
	HasBoxingGlove   bool `json:"has_boxing_glove"`
	HasThrowingGlove bool `json:"has_throwing_glove"`

	Disease     DiseaseKind `json:"disease"`
	DiseaseTime int         `json:"disease_time"`

	DetonatorBombsLeft int   `json:"detonator_bombs_left"`
	DetonatorBombs     []int `json:"detonator_bombs"` // bomb ids, oldest first

	Kills      int  `json:"kills"`
	Wins       int  `json:"wins"`
	Invincible bool `json:"invincible"`

	// timed states
	stateBeforeTimed PlayerState
	destination      Position
	relocated        bool
	// lastSpecialTile suppresses re-triggering a teleport or trampoline
	// until the player leaves the tile it landed on.
	lastSpecialTile Position
	hasSpecialTile  bool
}

func newPlayer(id, team int, start Position) *Player {
	return &Player{
		ID:          id,
		Team:        team,
		Position:    start.Centre(),
		State:       StateIdleDown,
		Speed:       InitialSpeed,
		BombsLeft:   1,
		FlameLength: 1,
		Items:       make(map[ItemKind]int),
	}
}

// Tile returns the tile the player stands on.
func (p *Player) Tile() Position {
	return p.Position.Tile()
}

// IsDead reports whether the player has died.
func (p *Player) IsDead() bool {
	return p.State == StateDead
}

// IsEnemy reports whether other plays for a different team.
func (p *Player) IsEnemy(other *Player) bool {
	return p.Team != other.Team
}

// InAir reports whether the player is mid-jump and untouchable.
func (p *Player) InAir() bool {
	return p.State == StateInAir
}

// IsTeleporting reports whether a teleport is in progress.
func (p *Player) IsTeleporting() bool {
	return p.State == StateTeleporting
}

// Facing returns the direction the player looks in.
func (p *Player) Facing() Direction {
	switch {
	case p.State >= StateIdleUp && p.State <= StateIdleLeft:
		return Direction(p.State - StateIdleUp)
	case p.State >= StateWalkingUp && p.State <= StateWalkingLeft:
		return Direction(p.State - StateWalkingUp)
	case p.stateBeforeTimed <= StateWalkingLeft:
		return Direction(p.stateBeforeTimed % 4)
	}
	return DirDown
}

// IsWalking reports whether the player moved during the last reaction.
func (p *Player) IsWalking() bool {
	return p.State >= StateWalkingUp && p.State <= StateWalkingLeft
}

// HasDisease reports whether the given disease is active.
func (p *Player) HasDisease(d DiseaseKind) bool {
	return p.Disease == d && p.DiseaseTime > 0
}

// EffectiveSpeed returns the walking speed in tiles per second.
func (p *Player) EffectiveSpeed() float64 {
	if p.HasDisease(DiseaseSlow) {
		return SlowSpeed
	}
	return p.Speed
}

// EffectiveFlameLength returns the flame length of newly laid bombs.
func (p *Player) EffectiveFlameLength() int {
	if p.HasDisease(DiseaseShortFlame) {
		return 1
	}
	return p.FlameLength
}

// Clone returns a deep copy of the player.
func (p *Player) Clone() *Player {
	c := *p
	c.Items = make(map[ItemKind]int, len(p.Items))
	for k, v := range p.Items {
		c.Items[k] = v
	}
	c.DetonatorBombs = append([]int(nil), p.DetonatorBombs...)
	return &c
}

func (p *Player) setState(s PlayerState) {
	if p.State != s {
		p.State = s
		p.StateTime = 0
	}
}
