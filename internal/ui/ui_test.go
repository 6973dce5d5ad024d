package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amalg/go-bombman/internal/game"
	"github.com/amalg/go-bombman/internal/maps"
	"github.com/amalg/go-bombman/internal/match"
)

func newEngine(t *testing.T) *match.Engine {
	t.Helper()
	data, err := maps.Load("classic")
	if err != nil {
		t.Fatal(err)
	}
	var setup game.PlaySetup
	setup.Slots[0] = &game.Slot{Team: 0, Controller: game.ControllerHuman}
	setup.Slots[1] = &game.Slot{Team: 1, Controller: game.ControllerHuman}
	s, err := match.NewSeries(match.Options{MapName: "classic", MapData: data, Setup: setup, Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	return match.NewEngine(s, 30, 100)
}

func TestRenderBoardNil(t *testing.T) {
	if got := RenderBoard(nil, 0); !strings.Contains(got, "Waiting") {
		t.Errorf("RenderBoard(nil) = %q", got)
	}
	if RenderHUD(nil, 0) != "" {
		t.Error("RenderHUD(nil) should be empty")
	}
}

func TestRenderBoardShape(t *testing.T) {
	snap := newEngine(t).Snapshot()
	board := RenderBoard(&snap, 0)

	lines := strings.Split(board, "\n")
	if len(lines) != game.MapHeight {
		t.Fatalf("Expected %d rows, got %d", game.MapHeight, len(lines))
	}
	if !strings.Contains(board, "P1") || !strings.Contains(board, "██") {
		t.Error("players not drawn")
	}
	if !strings.Contains(board, "▒▒") {
		t.Error("blocks not drawn")
	}
}

func TestRenderCellPriority(t *testing.T) {
	pos := game.Position{X: 1, Y: 1}
	tile := &game.Tile{Kind: game.TileFloor, Item: game.ItemBomb}
	bombs := map[game.Position]*game.Bomb{pos: {Position: pos.Centre()}}
	players := map[game.Position]*game.Player{}

	if got := renderCell(tile, pos, bombs, players, 0); !strings.Contains(got, "()") {
		t.Errorf("bomb should cover the item, got %q", got)
	}
	tile.Flames = []game.Flame{{BurnTimeLeft: 100}}
	if got := renderCell(tile, pos, bombs, players, 0); !strings.Contains(got, "░░") {
		t.Errorf("flame should cover the bomb, got %q", got)
	}
	players[pos] = &game.Player{ID: 3, Team: 1}
	if got := renderCell(tile, pos, bombs, players, 0); !strings.Contains(got, "P3") {
		t.Errorf("player should be on top, got %q", got)
	}

	plain := &game.Tile{Kind: game.TileFloor, Item: game.ItemShoe}
	if got := renderCell(plain, pos, nil, nil, 0); !strings.Contains(got, "sh") {
		t.Errorf("item glyph missing, got %q", got)
	}
}

func TestRenderHUDStates(t *testing.T) {
	snap := newEngine(t).Snapshot()
	if hud := RenderHUD(&snap, 0); !strings.Contains(hud, "GET READY") || !strings.Contains(hud, "game 1/1") {
		t.Errorf("waiting HUD = %q", hud)
	}

	snap.State = game.StateGameOver
	snap.WinnerTeam = 1
	if hud := RenderHUD(&snap, 0); !strings.Contains(hud, "TEAM 1 WINS") {
		t.Errorf("game over HUD = %q", hud)
	}
	snap.WinnerTeam = game.NoTeam
	if hud := RenderHUD(&snap, 0); !strings.Contains(hud, "DRAW") {
		t.Errorf("draw HUD = %q", hud)
	}
}

func TestKeysBecomeIntents(t *testing.T) {
	e := newEngine(t)
	for e.Snapshot().State == game.StateWaitingToPlay {
		e.Step(100)
	}

	m := NewModel(e, nil, 0)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	e.Step(10)
	if snap := e.Snapshot(); len(snap.Bombs) != 1 || snap.Bombs[0].Owner != 0 {
		t.Fatalf("space should lay a bomb, got %d bombs", len(snap.Bombs))
	}

	before := e.Snapshot().Player(0).Position
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	e.Step(50)
	if after := e.Snapshot().Player(0).Position; after.Y <= before.Y {
		t.Errorf("s should walk down: %v -> %v", before, after)
	}
}

func TestQuitKey(t *testing.T) {
	m := NewModel(newEngine(t), nil, 0)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil || !next.(Model).quitting {
		t.Error("q should quit")
	}
}

func TestPublishKeepsEventSnapshots(t *testing.T) {
	ch := make(chan match.Snapshot, 1)
	publish := Publish(ch)

	publish(match.Snapshot{MapTime: 1})
	publish(match.Snapshot{MapTime: 2})
	publish(match.Snapshot{MapTime: 3, Sounds: []game.SoundEvent{game.SoundGo}})

	got := <-ch
	if got.MapTime != 3 {
		t.Errorf("expected the event snapshot to replace the stale one, got %d", got.MapTime)
	}
}

func TestFinishedStopsInput(t *testing.T) {
	ch := make(chan match.Snapshot)
	close(ch)
	m := NewModel(newEngine(t), ch, 0)

	msg := m.Init()()
	if _, ok := msg.(finishedMsg); !ok {
		t.Fatalf("closed channel should finish, got %T", msg)
	}
	next, _ := m.Update(msg)
	if !next.(Model).finished {
		t.Error("model not marked finished")
	}
}
