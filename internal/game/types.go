package game

import "math"

// Map dimensions in tiles.
const (
	MapWidth  = 15
	MapHeight = 11

	// MaxPlayers is the number of player slots (starting digits 0-9).
	MaxPlayers = 10
)

// Timing and tuning constants. All durations are in milliseconds.
const (
	StartGameAfter  = 2500 // WaitingToPlay -> Playing
	FinishingPeriod = 2500 // Finishing -> GameOver

	BombExplodesIn     = 3000
	FastBombExplodesIn = 800
	DetonatorTimeout   = 10000 // runs before the normal fuse starts
	FlameBurnTime      = 1000

	BombRollingSpeed = 4.0 // tiles per second
	BombFlyingSpeed  = 5.0
	BombFlightLength = 3 // tiles travelled when boxed or thrown

	JumpDuration     = 2000
	TeleportDuration = 1500
	DiseaseDuration  = 20000

	InitialSpeed   = 3.0
	SpeedupValue   = 1.0
	MaxSpeed       = 10.0
	SlowSpeed      = 1.5
	MaxFlameLength = 15

	DetonatorBombs = 3

	// SafeDangerValue is reported for tiles no known bomb will reach.
	SafeDangerValue = 5000
	// detonatorDangerTime is the assumed time until a detonator bomb goes off.
	detonatorDangerTime = 100
)

// Collision margins as fractions of a tile.
const (
	collisionMarginHorizontal = 0.2
	collisionMarginVertical   = 0.4

	// centreTolerance is how close to a tile centre a bomb must be for lava
	// to take effect.
	centreTolerance = 0.1
	// triggerTolerance is the same for walking players on teleports and
	// trampolines; one tick of walking covers up to a third of a tile.
	triggerTolerance = 0.3
)

// Position is an integer tile coordinate.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p moved by d tiles in direction dir.
func (p Position) Add(dir Direction, d int) Position {
	dx, dy := dir.Delta()
	return Position{X: p.X + dx*d, Y: p.Y + dy*d}
}

// Centre returns the continuous coordinate of the tile centre.
func (p Position) Centre() Vec {
	return Vec{X: float64(p.X) + 0.5, Y: float64(p.Y) + 0.5}
}

// Vec is a continuous map coordinate measured in tiles.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Tile returns the tile the coordinate falls in.
func (v Vec) Tile() Position {
	return Position{X: int(math.Floor(v.X)), Y: int(math.Floor(v.Y))}
}

// nearCentre reports whether v lies within centreTolerance of its tile centre.
func (v Vec) nearCentre() bool {
	return v.within(centreTolerance)
}

func (v Vec) within(tolerance float64) bool {
	c := v.Tile().Centre()
	return math.Abs(v.X-c.X) <= tolerance && math.Abs(v.Y-c.Y) <= tolerance
}

// Direction is one of the four cardinal directions.
type Direction int

const (
	DirUp Direction = iota
	DirRight
	DirDown
	DirLeft
)

// Directions lists the cardinal directions in clockwise order.
var Directions = [4]Direction{DirUp, DirRight, DirDown, DirLeft}

// Delta returns the unit tile offset of the direction.
func (d Direction) Delta() (int, int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	default:
		return -1, 0
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Horizontal reports whether the direction lies on the X axis.
func (d Direction) Horizontal() bool {
	return d == DirRight || d == DirLeft
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	default:
		return "left"
	}
}

// Action is the intent vocabulary shared by human and AI controllers.
type Action int

const (
	ActionUp Action = iota
	ActionRight
	ActionDown
	ActionLeft
	ActionBomb
	ActionBombDouble // double press of the bomb key
	ActionSpecial
)

// MoveAction returns the movement action for a direction.
func MoveAction(d Direction) Action {
	return Action(d)
}

// Direction returns the direction of a movement action.
func (a Action) Direction() (Direction, bool) {
	if a <= ActionLeft {
		return Direction(a), true
	}
	return 0, false
}

func (a Action) String() string {
	switch a {
	case ActionUp:
		return "up"
	case ActionRight:
		return "right"
	case ActionDown:
		return "down"
	case ActionLeft:
		return "left"
	case ActionBomb:
		return "bomb"
	case ActionBombDouble:
		return "bomb-double"
	case ActionSpecial:
		return "special"
	default:
		return "unknown"
	}
}

// Intent is a single action issued for a player during one tick.
type Intent struct {
	PlayerID int    `json:"player_id"`
	Action   Action `json:"action"`
}

// MapState is the phase of a single game.
type MapState int

const (
	StateWaitingToPlay MapState = iota
	StatePlaying
	StateFinishing
	StateGameOver
)

func (s MapState) String() string {
	switch s {
	case StateWaitingToPlay:
		return "waiting"
	case StatePlaying:
		return "playing"
	case StateFinishing:
		return "finishing"
	default:
		return "game over"
	}
}

// NoTeam is reported as the winner of a drawn or unfinished game.
const NoTeam = -1

// Controller says who drives a player slot.
type Controller int

const (
	ControllerHuman Controller = iota
	ControllerAI
)

// Slot describes one occupied player slot.
type Slot struct {
	Team       int        `json:"team" yaml:"team"`
	Controller Controller `json:"controller" yaml:"controller"`
}

// PlaySetup assigns slots to starting positions; the slot index is the
// player id and selects the digit of the starting tile.
type PlaySetup struct {
	Slots [MaxPlayers]*Slot
}

// DefaultPlaySetup returns one human player against three AI players, each on
// their own team.
func DefaultPlaySetup() PlaySetup {
	var s PlaySetup
	s.Slots[0] = &Slot{Team: 0, Controller: ControllerHuman}
	for i := 1; i < 4; i++ {
		s.Slots[i] = &Slot{Team: i, Controller: ControllerAI}
	}
	return s
}
