package game

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"unicode"
)

// ErrMalformedMap is wrapped by every descriptor parsing failure.
var ErrMalformedMap = errors.New("malformed map descriptor")

// descriptor is a parsed map description before players are placed.
//
// Format: "<environment>;<starting items>;<hidden items>;<tiles>" with all
// whitespace ignored. Tile characters:
//   - '.' floor, 'x' block, '#' wall
//   - 'A', 'B' teleports, 'T' trampoline, 'V' lava
//   - 'u', 'r', 'd', 'l' arrows on floor, 'U', 'R', 'D', 'L' arrows under blocks
//   - '0'-'9' player starting tiles (floor)
type descriptor struct {
	environment   string
	startingItems []ItemKind
	hiddenItems   []ItemKind
	tiles         [MapHeight][MapWidth]Tile
	starts        map[int]Position
}

func parseDescriptor(data string) (*descriptor, error) {
	data = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, data)

	fields := strings.Split(data, ";")
	if len(fields) < 4 {
		return nil, fmt.Errorf("%w: expected 4 fields, got %d", ErrMalformedMap, len(fields))
	}

	tileChars := []rune(fields[3])
	if len(tileChars) != MapWidth*MapHeight {
		return nil, fmt.Errorf("%w: expected %d tile characters, got %d",
			ErrMalformedMap, MapWidth*MapHeight, len(tileChars))
	}

	d := &descriptor{
		environment:   fields[0],
		startingItems: parseItems(fields[1]),
		hiddenItems:   parseItems(fields[2]),
		starts:        make(map[int]Position),
	}

	var teleportsA, teleportsB []Position
	for i, c := range tileChars {
		pos := Position{X: i % MapWidth, Y: i / MapWidth}
		tile := &d.tiles[pos.Y][pos.X]

		switch c {
		case '.':
		case 'x':
			tile.Kind = TileBlock
		case '#':
			tile.Kind = TileWall
		case 'A':
			tile.Special = SpecialTeleportA
			teleportsA = append(teleportsA, pos)
		case 'B':
			tile.Special = SpecialTeleportB
			teleportsB = append(teleportsB, pos)
		case 'T':
			tile.Special = SpecialTrampoline
		case 'V':
			tile.Special = SpecialLava
		case 'u', 'U':
			tile.Special = SpecialArrowUp
		case 'r', 'R':
			tile.Special = SpecialArrowRight
		case 'd', 'D':
			tile.Special = SpecialArrowDown
		case 'l', 'L':
			tile.Special = SpecialArrowLeft
		default:
			if c < '0' || c > '9' {
				return nil, fmt.Errorf("%w: unknown tile character %q at (%d,%d)",
					ErrMalformedMap, c, pos.X, pos.Y)
			}
			id := int(c - '0')
			if _, dup := d.starts[id]; dup {
				return nil, fmt.Errorf("%w: duplicate starting position %d", ErrMalformedMap, id)
			}
			d.starts[id] = pos
		}

		if unicode.IsUpper(c) && strings.ContainsRune("URDL", c) {
			tile.Kind = TileBlock
		}
	}

	// The i-th A is paired with the i-th B.
	for i := 0; i < len(teleportsA) && i < len(teleportsB); i++ {
		a, b := teleportsA[i], teleportsB[i]
		d.tiles[a.Y][a.X].Destination, d.tiles[a.Y][a.X].HasDestination = b, true
		d.tiles[b.Y][b.X].Destination, d.tiles[b.Y][b.X].HasDestination = a, true
	}

	return d, nil
}

func parseItems(letters string) []ItemKind {
	var items []ItemKind
	for _, r := range letters {
		if item, ok := ItemFromLetter(r); ok {
			items = append(items, item)
		}
	}
	return items
}

// scatterItems hides items under randomly chosen blocks, at most one per
// block. Items beyond the number of blocks are dropped.
func (d *descriptor) scatterItems(rng *rand.Rand) {
	var blocks []Position
	for y := 0; y < MapHeight; y++ {
		for x := 0; x < MapWidth; x++ {
			if d.tiles[y][x].Kind == TileBlock {
				blocks = append(blocks, Position{X: x, Y: y})
			}
		}
	}

	for _, item := range d.hiddenItems {
		if len(blocks) == 0 {
			return
		}
		i := rng.Intn(len(blocks))
		pos := blocks[i]
		d.tiles[pos.Y][pos.X].Item = item
		blocks[i] = blocks[len(blocks)-1]
		blocks = blocks[:len(blocks)-1]
	}
}
