package game

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

// emptyRows returns an all-floor grid with player 0 at (1,1) and player 1
// at (13,9).
func emptyRows() [][]byte {
	rows := make([][]byte, MapHeight)
	for y := range rows {
		rows[y] = []byte(strings.Repeat(".", MapWidth))
	}
	rows[1][1] = '0'
	rows[9][13] = '1'
	return rows
}

func descriptorOf(rows [][]byte, startingItems, hiddenItems string) string {
	var b strings.Builder
	b.WriteString("test;" + startingItems + ";" + hiddenItems + ";\n")
	for _, r := range rows {
		b.Write(r)
		b.WriteByte('\n')
	}
	return b.String()
}

func twoTeams() PlaySetup {
	var s PlaySetup
	s.Slots[0] = &Slot{Team: 0, Controller: ControllerHuman}
	s.Slots[1] = &Slot{Team: 1, Controller: ControllerAI}
	return s
}

func newTestMap(t *testing.T, rows [][]byte, setup PlaySetup) *Map {
	t.Helper()
	m, err := NewMap(descriptorOf(rows, "", ""), setup, 0, 1, WithRand(rand.New(rand.NewSource(1))))
	if err != nil {
		t.Fatalf("NewMap: %v", err)
	}
	return m
}

// playingMap returns a two-player map that has already started.
func playingMap(t *testing.T, rows [][]byte) *Map {
	t.Helper()
	m := newTestMap(t, rows, twoTeams())
	m.Update(StartGameAfter)
	if m.State() != StatePlaying {
		t.Fatalf("expected playing after countdown, got %v", m.State())
	}
	m.TakeSoundEvents()
	return m
}

func TestNewMapMalformed(t *testing.T) {
	valid := emptyRows()
	tests := []struct {
		name string
		data string
	}{
		{"too few fields", "test;;" + strings.Repeat(".", MapWidth*MapHeight)},
		{"short grid", "test;;;" + strings.Repeat(".", MapWidth*MapHeight-1)},
		{"long grid", "test;;;" + strings.Repeat(".", MapWidth*MapHeight+1)},
		{"unknown character", strings.Replace(descriptorOf(valid, "", ""), "0", "?", 1)},
		{"duplicate start", strings.Replace(descriptorOf(valid, "", ""), "1", "0", 1)},
		{"missing start", strings.Replace(descriptorOf(valid, "", ""), "1", ".", 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMap(tt.data, twoTeams(), 0, 1)
			if !errors.Is(err, ErrMalformedMap) {
				t.Fatalf("expected ErrMalformedMap, got %v", err)
			}
			if m != nil {
				t.Error("no map should be returned on error")
			}
		})
	}
}

func TestNewMapIgnoresWhitespaceAndUnknownItems(t *testing.T) {
	data := descriptorOf(emptyRows(), " f f ?z ", "")
	m, err := NewMap(data, twoTeams(), 2, 5)
	if err != nil {
		t.Fatalf("NewMap: %v", err)
	}
	if got := m.StartingItems(); len(got) != 2 || got[0] != ItemFlame {
		t.Fatalf("expected two flame items, got %v", got)
	}
	for _, p := range m.Players() {
		if p.FlameLength != 3 {
			t.Errorf("player %d flame length = %d, want 3", p.ID, p.FlameLength)
		}
	}
	if m.EnvironmentName() != "test" {
		t.Errorf("environment = %q", m.EnvironmentName())
	}
	if m.GameIndex() != 2 || m.TotalGames() != 5 {
		t.Errorf("game %d of %d, want 2 of 5", m.GameIndex(), m.TotalGames())
	}
	if len(m.TakeSoundEvents()) != 0 {
		t.Error("starting items must not leave sound events")
	}
}

func TestNewMapInitialState(t *testing.T) {
	m := newTestMap(t, emptyRows(), twoTeams())

	if m.State() != StateWaitingToPlay || m.MapTime() != 0 {
		t.Fatalf("state %v at %d, want waiting at 0", m.State(), m.MapTime())
	}
	if m.WinnerTeam() != NoTeam {
		t.Errorf("winner = %d before the game", m.WinnerTeam())
	}
	if m.TileAt(Position{X: -1, Y: 0}) != nil || m.TileAt(Position{X: 0, Y: MapHeight}) != nil {
		t.Error("tiles outside the map must be nil")
	}

	p0 := m.Player(0)
	if p0.Tile() != (Position{X: 1, Y: 1}) {
		t.Errorf("player 0 at %v", p0.Tile())
	}
	if p0.Position != (Vec{X: 1.5, Y: 1.5}) {
		t.Errorf("player 0 not centred: %v", p0.Position)
	}
	if !p0.IsEnemy(m.Player(1)) || p0.IsEnemy(p0) {
		t.Error("team relations wrong")
	}
	if !m.TileHasPlayer(Position{X: 13, Y: 9}) {
		t.Error("player 1 missing at its start")
	}
}

func TestHiddenItemsLieUnderBlocks(t *testing.T) {
	rows := emptyRows()
	for x := 3; x < 8; x++ {
		rows[5][x] = 'x'
	}
	data := descriptorOf(rows, "", "bbbffffffff")
	m, err := NewMap(data, twoTeams(), 0, 1, WithRand(rand.New(rand.NewSource(42))))
	if err != nil {
		t.Fatalf("NewMap: %v", err)
	}

	hidden := 0
	for y := 0; y < MapHeight; y++ {
		for x := 0; x < MapWidth; x++ {
			tile := m.TileAt(Position{X: x, Y: y})
			if tile.Item == ItemNone {
				continue
			}
			if tile.Kind != TileBlock {
				t.Errorf("item %v on non-block (%d,%d)", tile.Item, x, y)
			}
			hidden++
		}
	}
	// More items than blocks: one per block, the rest dropped.
	if hidden != 5 {
		t.Errorf("expected 5 hidden items, got %d", hidden)
	}
	if m.InitialBlockCount() != 5 || m.BlockCount() != 5 {
		t.Errorf("block counts %d/%d, want 5", m.InitialBlockCount(), m.BlockCount())
	}
}

func TestTeleportPairing(t *testing.T) {
	rows := emptyRows()
	rows[3][3] = 'A'
	rows[7][10] = 'B'
	rows[4][3] = 'A'
	rows[8][10] = 'B'
	rows[5][5] = 'U'
	m := newTestMap(t, rows, twoTeams())

	first := m.TileAt(Position{X: 3, Y: 3})
	if !first.HasDestination || first.Destination != (Position{X: 10, Y: 7}) {
		t.Errorf("first A paired with %v", first.Destination)
	}
	second := m.TileAt(Position{X: 10, Y: 8})
	if !second.HasDestination || second.Destination != (Position{X: 3, Y: 4}) {
		t.Errorf("second B paired with %v", second.Destination)
	}

	arrow := m.TileAt(Position{X: 5, Y: 5})
	if arrow.Kind != TileBlock || arrow.Special != SpecialArrowUp {
		t.Errorf("block-covered arrow parsed as %v/%v", arrow.Kind, arrow.Special)
	}
}

func TestMapStateTransitions(t *testing.T) {
	m := newTestMap(t, emptyRows(), twoTeams())

	m.Update(500)
	m.Update(300)
	if m.State() != StateWaitingToPlay {
		t.Fatalf("expected waiting at 800 ms, got %v", m.State())
	}
	m.Update(4000)
	if m.State() != StatePlaying || m.MapTime() != 4800 {
		t.Fatalf("expected playing at 4800, got %v at %d", m.State(), m.MapTime())
	}

	m.Player(1).State = StateDead
	m.Update(100)
	if m.State() != StateFinishing {
		t.Fatalf("expected finishing with one team left, got %v", m.State())
	}
	if m.WinnerTeam() != 0 || m.Player(0).Wins != 1 {
		t.Errorf("winner %d, wins %d", m.WinnerTeam(), m.Player(0).Wins)
	}

	m.Update(FinishingPeriod - 200)
	if m.State() != StateFinishing {
		t.Fatalf("left finishing too early: %v", m.State())
	}
	m.Update(200)
	if m.State() != StateGameOver {
		t.Fatalf("expected game over, got %v", m.State())
	}

	before := m.Player(0).Position
	m.ReactToInputs(0, []Intent{{PlayerID: 0, Action: ActionRight}}, 100)
	if m.Player(0).Position != before {
		t.Error("input must be ignored once the game is over")
	}
}

func TestInputIgnoredWhileWaiting(t *testing.T) {
	m := newTestMap(t, emptyRows(), twoTeams())
	before := m.Player(0).Position
	m.ReactToInputs(0, []Intent{{PlayerID: 0, Action: ActionRight}}, 100)
	if m.Player(0).Position != before {
		t.Error("input must be ignored before the game starts")
	}
}

func TestDrawWhenEveryoneDies(t *testing.T) {
	m := playingMap(t, emptyRows())
	for _, p := range m.Players() {
		p.State = StateDead
	}
	m.Update(100)
	if m.State() != StateFinishing || m.WinnerTeam() != NoTeam {
		t.Fatalf("expected drawn finish, got %v winner %d", m.State(), m.WinnerTeam())
	}
	for _, p := range m.Players() {
		if p.Wins != 0 {
			t.Errorf("player %d credited with a win in a draw", p.ID)
		}
	}
}

func TestTeamWinCreditsLivingMembers(t *testing.T) {
	rows := emptyRows()
	rows[1][13] = '2'
	var setup PlaySetup
	setup.Slots[0] = &Slot{Team: 0}
	setup.Slots[1] = &Slot{Team: 1}
	setup.Slots[2] = &Slot{Team: 0}
	m := newTestMap(t, rows, setup)
	m.Update(StartGameAfter)

	m.Player(0).State = StateDead
	m.Update(100)
	if m.State() != StatePlaying {
		t.Fatal("two teams still alive, game must go on")
	}
	m.Player(1).State = StateDead
	m.Update(100)
	if m.WinnerTeam() != 0 {
		t.Fatalf("winner = %d, want 0", m.WinnerTeam())
	}
	if m.Player(2).Wins != 1 {
		t.Error("surviving team member should get the win")
	}
	if m.Player(0).Wins != 0 {
		t.Error("dead team member should not get the win")
	}
}

func TestEventQueuesDrainOnce(t *testing.T) {
	m := newTestMap(t, emptyRows(), twoTeams())
	m.Update(StartGameAfter)

	sounds := m.TakeSoundEvents()
	if len(sounds) != 1 || sounds[0] != SoundGo {
		t.Fatalf("expected the go sound, got %v", sounds)
	}
	if again := m.TakeSoundEvents(); len(again) != 0 {
		t.Errorf("drained queue returned %v", again)
	}

	m.layBomb(m.Player(0), Position{X: 5, Y: 5})
	m.explodeBomb(m.Bombs()[0])
	anims := m.TakeAnimationEvents()
	if len(anims) != 1 || anims[0].Kind != AnimationExplosion {
		t.Errorf("expected one explosion animation, got %v", anims)
	}
}
