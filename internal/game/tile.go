package game

// TileKind is the terrain of a tile.
type TileKind int

const (
	TileFloor TileKind = iota
	TileBlock          // destructible
	TileWall           // indestructible
)

// SpecialObject is a fixture lying on a tile.
type SpecialObject int

const (
	SpecialNone SpecialObject = iota
	SpecialTeleportA
	SpecialTeleportB
	SpecialTrampoline
	SpecialArrowUp
	SpecialArrowRight
	SpecialArrowDown
	SpecialArrowLeft
	SpecialLava
)

// ArrowDirection returns the direction of an arrow object.
func (s SpecialObject) ArrowDirection() (Direction, bool) {
	switch s {
	case SpecialArrowUp:
		return DirUp, true
	case SpecialArrowRight:
		return DirRight, true
	case SpecialArrowDown:
		return DirDown, true
	case SpecialArrowLeft:
		return DirLeft, true
	}
	return 0, false
}

// IsTeleport reports whether the object is either end of a teleport pair.
func (s SpecialObject) IsTeleport() bool {
	return s == SpecialTeleportA || s == SpecialTeleportB
}

// ItemKind identifies a power-up.
type ItemKind int

const (
	ItemNone ItemKind = iota
	ItemBomb
	ItemFlame
	ItemSuperflame
	ItemSpeedup
	ItemDisease
	ItemRandom
	ItemSpring
	ItemShoe
	ItemMultibomb
	ItemBoxingGlove
	ItemDetonator
	ItemThrowingGlove
)

// itemLetters maps descriptor letters to items.
var itemLetters = map[rune]ItemKind{
	'f': ItemFlame,
	'F': ItemSuperflame,
	'b': ItemBomb,
	'k': ItemShoe,
	's': ItemSpeedup,
	'p': ItemSpring,
	'd': ItemDisease,
	'm': ItemMultibomb,
	'r': ItemRandom,
	'x': ItemBoxingGlove,
	'e': ItemDetonator,
	't': ItemThrowingGlove,
}

// ItemFromLetter parses a descriptor item letter.
func ItemFromLetter(r rune) (ItemKind, bool) {
	item, ok := itemLetters[r]
	return item, ok
}

// Beneficial reports whether picking up the item is desirable.
func (i ItemKind) Beneficial() bool {
	return i != ItemNone && i != ItemDisease
}

func (i ItemKind) String() string {
	switch i {
	case ItemBomb:
		return "bomb"
	case ItemFlame:
		return "flame"
	case ItemSuperflame:
		return "superflame"
	case ItemSpeedup:
		return "speedup"
	case ItemDisease:
		return "disease"
	case ItemRandom:
		return "random"
	case ItemSpring:
		return "spring"
	case ItemShoe:
		return "shoe"
	case ItemMultibomb:
		return "multibomb"
	case ItemBoxingGlove:
		return "boxing glove"
	case ItemDetonator:
		return "detonator"
	case ItemThrowingGlove:
		return "throwing glove"
	default:
		return "none"
	}
}

// FlameDirection is the rendering shape of a flame segment.
type FlameDirection int

const (
	FlameAll FlameDirection = iota // explosion centre
	FlameHorizontal
	FlameVertical
	FlameUp // endpoint variants
	FlameRight
	FlameDown
	FlameLeft
)

func axisFlame(d Direction) FlameDirection {
	if d.Horizontal() {
		return FlameHorizontal
	}
	return FlameVertical
}

func endFlame(d Direction) FlameDirection {
	return FlameUp + FlameDirection(d)
}

// Flame is a burning segment left on a tile by an explosion.
type Flame struct {
	Owner        int            `json:"owner"`
	BurnTimeLeft int            `json:"burn_time_left"`
	Direction    FlameDirection `json:"direction"`
}

// Tile is a single cell of the grid.
type Tile struct {
	Kind    TileKind      `json:"kind"`
	Special SpecialObject `json:"special"`
	// Destination is the paired tile of a teleport.
	Destination    Position `json:"destination"`
	HasDestination bool     `json:"has_destination"`
	Item           ItemKind `json:"item"`
	Flames         []Flame  `json:"flames"`
	// ToBeDestroyed marks a burning block that becomes floor once its flames die.
	ToBeDestroyed bool `json:"to_be_destroyed"`
}

// Clone returns a copy of the tile that shares no flame storage.
func (t *Tile) Clone() Tile {
	c := *t
	c.Flames = append([]Flame(nil), t.Flames...)
	return c
}

// HasFlame reports whether any flame burns on the tile.
func (t *Tile) HasFlame() bool {
	return len(t.Flames) > 0
}
