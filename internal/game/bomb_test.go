package game

import "testing"

func pos(x, y int) Position { return Position{X: x, Y: y} }

func TestExplosionShape(t *testing.T) {
	rows := emptyRows()
	rows[5][3] = '#'
	rows[5][7] = 'x'
	rows[7][5] = 'x'
	m := playingMap(t, rows)

	p := m.Player(0)
	p.FlameLength = 3
	b := m.layBomb(p, pos(5, 5))
	if b == nil {
		t.Fatal("bomb not laid")
	}
	m.explodeBomb(b)

	want := map[Position]FlameDirection{
		pos(5, 5): FlameAll,
		pos(4, 5): FlameLeft,
		pos(6, 5): FlameHorizontal,
		pos(7, 5): FlameRight,
		pos(5, 4): FlameVertical,
		pos(5, 3): FlameVertical,
		pos(5, 2): FlameUp,
		pos(5, 6): FlameVertical,
		pos(5, 7): FlameDown,
	}
	for at, dir := range want {
		tile := m.TileAt(at)
		if len(tile.Flames) != 1 {
			t.Errorf("%v: %d flames, want 1", at, len(tile.Flames))
			continue
		}
		if tile.Flames[0].Direction != dir {
			t.Errorf("%v: flame direction %v, want %v", at, tile.Flames[0].Direction, dir)
		}
	}
	for _, at := range []Position{pos(3, 5), pos(8, 5), pos(5, 1), pos(5, 8), pos(6, 6)} {
		if m.TileHasFlame(at) {
			t.Errorf("%v must not burn", at)
		}
	}

	for _, at := range []Position{pos(7, 5), pos(5, 7)} {
		if !m.TileAt(at).ToBeDestroyed || !m.IsWalkable(at) {
			t.Errorf("burning block %v should be pending destruction and walkable", at)
		}
	}

	m.Update(FlameBurnTime)
	for at := range want {
		if m.TileHasFlame(at) {
			t.Errorf("%v still burning after the burn time", at)
		}
	}
	if m.TileAt(pos(7, 5)).Kind != TileFloor {
		t.Error("destroyed block should turn into floor")
	}
	if m.TileAt(pos(3, 5)).Kind != TileWall {
		t.Error("walls are indestructible")
	}
}

func TestChainReactionInSameTick(t *testing.T) {
	m := playingMap(t, emptyRows())
	p0, p1 := m.Player(0), m.Player(1)
	p0.FlameLength = 2

	first := m.layBomb(p0, pos(3, 5))
	second := m.layBomb(p1, pos(5, 5))
	first.TimeOfExistence = BombExplodesIn - 50

	m.Update(100)

	if !first.Exploded || !second.Exploded {
		t.Fatalf("both bombs should explode in one update: %v %v", first.Exploded, second.Exploded)
	}
	if len(m.Bombs()) != 0 {
		t.Errorf("%d bombs left on the map", len(m.Bombs()))
	}
	if !m.TileHasFlame(pos(6, 5)) {
		t.Error("second bomb's flame missing")
	}
	if p0.BombsLeft != 1 || p1.BombsLeft != 1 {
		t.Errorf("capacity not refunded: %d %d", p0.BombsLeft, p1.BombsLeft)
	}

	m.Update(100)
	if p0.BombsLeft != 1 || p1.BombsLeft != 1 {
		t.Errorf("capacity refunded twice: %d %d", p0.BombsLeft, p1.BombsLeft)
	}
}

func TestExplodeTwiceRefundsOnce(t *testing.T) {
	m := playingMap(t, emptyRows())
	p := m.Player(0)
	b := m.layBomb(p, pos(5, 5))
	if p.BombsLeft != 0 {
		t.Fatalf("capacity after laying = %d", p.BombsLeft)
	}
	m.explodeBomb(b)
	m.explodeBomb(b)
	if p.BombsLeft != 1 {
		t.Errorf("BombsLeft = %d, want 1", p.BombsLeft)
	}
}

func TestFlameBurnsFloorItemsOnly(t *testing.T) {
	rows := emptyRows()
	rows[5][7] = 'x'
	m := playingMap(t, rows)
	m.TileAt(pos(6, 5)).Item = ItemBomb
	m.TileAt(pos(7, 5)).Item = ItemShoe

	p := m.Player(0)
	p.FlameLength = 2
	m.explodeBomb(m.layBomb(p, pos(5, 5)))

	if m.TileAt(pos(6, 5)).Item != ItemNone {
		t.Error("item on floor should burn")
	}
	m.Update(FlameBurnTime)
	if got := m.TileAt(pos(7, 5)); got.Kind != TileFloor || got.Item != ItemShoe {
		t.Errorf("hidden item should survive its block: %v %v", got.Kind, got.Item)
	}
}

func TestLayBombRefusals(t *testing.T) {
	rows := emptyRows()
	rows[5][5] = 'A'
	rows[5][9] = 'B'
	m := playingMap(t, rows)
	p := m.Player(0)

	if m.layBomb(p, pos(5, 5)) != nil {
		t.Error("bombs cannot lie on teleports")
	}
	if m.layBomb(p, pos(3, 3)) == nil {
		t.Fatal("first bomb should be laid")
	}
	if m.layBomb(p, pos(4, 4)) != nil {
		t.Error("capacity exhausted")
	}

	p.BombsLeft = 2
	if m.layBomb(p, pos(3, 3)) != nil {
		t.Error("tile already holds a bomb")
	}
	p.Disease, p.DiseaseTime = DiseaseNoBomb, DiseaseDuration
	if m.layBomb(p, pos(4, 4)) != nil {
		t.Error("no-bomb disease must prevent laying")
	}
}

func TestFastBombDisease(t *testing.T) {
	m := playingMap(t, emptyRows())
	p := m.Player(0)
	p.Disease, p.DiseaseTime = DiseaseFastBomb, DiseaseDuration

	b := m.layBomb(p, pos(5, 5))
	if b.TimeUntilExplosion() != FastBombExplodesIn {
		t.Errorf("fast bomb fuse = %d", b.TimeUntilExplosion())
	}
}

func TestDetonatorDelaysFuse(t *testing.T) {
	m := playingMap(t, emptyRows())
	p := m.Player(0)
	m.giveItem(p, ItemDetonator)
	if p.DetonatorBombsLeft != DetonatorBombs {
		t.Fatalf("detonator bombs = %d", p.DetonatorBombsLeft)
	}

	b := m.layBomb(p, pos(5, 5))
	if !b.HasDetonator() {
		t.Fatal("bomb should wait for the detonator")
	}
	if got := b.TimeUntilExplosion(); got != DetonatorTimeout+BombExplodesIn {
		t.Errorf("time until explosion = %d", got)
	}

	m.Update(DetonatorTimeout)
	if b.HasDetonator() || b.TimeOfExistence != 0 {
		t.Fatalf("fuse must start only after the detonator window: %d %d", b.DetonatorTime, b.TimeOfExistence)
	}
	m.Update(BombExplodesIn - 1)
	if b.Exploded {
		t.Fatal("exploded early")
	}
	m.Update(1)
	if !b.Exploded {
		t.Fatal("fuse should have run out")
	}
}

func TestSpecialTriggersOldestDetonatorBomb(t *testing.T) {
	m := playingMap(t, emptyRows())
	p := m.Player(0)
	p.BombsLeft = 2
	m.giveItem(p, ItemDetonator)

	older := m.layBomb(p, pos(5, 5))
	newer := m.layBomb(p, pos(9, 5))

	m.ReactToInputs(0, []Intent{{PlayerID: 0, Action: ActionSpecial}}, 0)
	if !older.Exploded || newer.Exploded {
		t.Fatalf("expected only the older bomb to explode: %v %v", older.Exploded, newer.Exploded)
	}
	if len(p.DetonatorBombs) != 1 || p.DetonatorBombs[0] != newer.ID {
		t.Errorf("detonator list = %v", p.DetonatorBombs)
	}
}

func TestKickedBombStopsBeforeWall(t *testing.T) {
	rows := emptyRows()
	rows[1][8] = '#'
	m := playingMap(t, rows)
	p := m.Player(0)
	p.HasShoe = true
	b := m.layBomb(m.Player(1), pos(3, 1))

	for i := 0; i < 6; i++ {
		m.ReactToInputs(0, []Intent{{PlayerID: 0, Action: ActionRight}}, 100)
	}
	if p.Tile() != pos(2, 1) {
		t.Fatalf("player should be stopped by the bomb, at %v", p.Tile())
	}
	if d, ok := b.RollingDirection(); !ok || d != DirRight {
		t.Fatalf("bomb should roll right, movement %v", b.Movement)
	}
	if len(m.TakeSoundEvents()) == 0 {
		t.Error("kick should make a sound")
	}

	for i := 0; i < 20; i++ {
		m.Update(100)
	}
	if b.Movement != BombStationary || b.Tile() != pos(7, 1) {
		t.Errorf("bomb should rest at (7,1), got %v moving %v", b.Tile(), b.Movement)
	}
	if b.Position != pos(7, 1).Centre() {
		t.Errorf("resting bomb not centred: %v", b.Position)
	}
}

func TestSpringBombBounces(t *testing.T) {
	rows := emptyRows()
	rows[1][8] = '#'
	m := playingMap(t, rows)
	b := m.layBomb(m.Player(1), pos(3, 1))
	b.HasSpring = true
	m.kickBomb(b, DirRight)

	for i := 0; i < 15 && b.Movement != BombRollingLeft; i++ {
		m.Update(100)
	}
	if b.Movement != BombRollingLeft {
		t.Fatalf("spring bomb should bounce back, movement %v", b.Movement)
	}
	if b.Tile() != pos(7, 1) {
		t.Errorf("bounced at %v, want (7,1)", b.Tile())
	}
}

func TestArrowRedirectsRollingBomb(t *testing.T) {
	rows := emptyRows()
	rows[1][6] = 'd'
	m := playingMap(t, rows)
	b := m.layBomb(m.Player(1), pos(3, 1))
	m.kickBomb(b, DirRight)

	for i := 0; i < 15 && b.Movement == BombRollingRight; i++ {
		m.Update(100)
	}
	if b.Movement != BombRollingDown || b.Position != pos(6, 1).Centre() {
		t.Fatalf("expected redirect at the arrow centre, got %v at %v", b.Movement, b.Position)
	}
}

func TestRollingBombExplodesInLava(t *testing.T) {
	rows := emptyRows()
	rows[1][6] = 'V'
	m := playingMap(t, rows)
	b := m.layBomb(m.Player(1), pos(3, 1))
	m.kickBomb(b, DirRight)

	for i := 0; i < 15 && !b.Exploded; i++ {
		m.Update(100)
	}
	if !b.Exploded || !m.TileHasFlame(pos(6, 1)) {
		t.Fatal("bomb should explode on reaching lava")
	}
}

func TestThrownBombLands(t *testing.T) {
	m := playingMap(t, emptyRows())
	p := m.Player(0)
	p.HasThrowingGlove = true
	p.State = StateIdleRight

	m.ReactToInputs(0, []Intent{{PlayerID: 0, Action: ActionBombDouble}}, 0)
	bombs := m.Bombs()
	if len(bombs) != 1 || !bombs[0].IsFlying() {
		t.Fatalf("expected one flying bomb, got %d", len(bombs))
	}
	b := bombs[0]

	for i := 0; i < 6; i++ {
		m.Update(100)
	}
	if b.IsFlying() || b.Tile() != pos(4, 1) {
		t.Errorf("bomb should land three tiles away, at %v flying %v", b.Tile(), b.IsFlying())
	}
}

func TestFlyingBombWrapsAndRelaunches(t *testing.T) {
	rows := emptyRows()
	rows[9][1] = '#'
	m := playingMap(t, rows)
	b := m.layBomb(m.Player(1), pos(13, 9))
	m.launchBomb(b, DirRight)

	for i := 0; i < 10 && b.IsFlying(); i++ {
		m.Update(100)
	}
	if b.IsFlying() {
		t.Fatal("bomb never landed")
	}
	// 13 + 3 wraps to 1, which is a wall, so it flies on to 2.
	if b.Tile() != pos(2, 9) {
		t.Errorf("landed at %v, want (2,9)", b.Tile())
	}
}

func TestFlyingBombIgnoresFuseAndFlames(t *testing.T) {
	m := playingMap(t, emptyRows())
	b := m.layBomb(m.Player(1), pos(5, 5))
	m.launchBomb(b, DirRight)
	b.TimeOfExistence = BombExplodesIn

	m.Update(100)
	if b.Exploded {
		t.Fatal("bombs in flight do not explode")
	}
	for i := 0; i < 6 && !b.Exploded; i++ {
		m.Update(100)
	}
	if !b.Exploded {
		t.Error("an expired bomb should explode on landing")
	}
}

func TestBoxingGlovePunchesBomb(t *testing.T) {
	m := playingMap(t, emptyRows())
	p := m.Player(0)
	p.HasBoxingGlove = true
	p.State = StateIdleDown
	b := m.layBomb(m.Player(1), pos(1, 2))

	m.ReactToInputs(0, []Intent{{PlayerID: 0, Action: ActionSpecial}}, 0)
	if !b.IsFlying() || b.Flight.Direction != DirDown {
		t.Fatalf("bomb should fly down, movement %v", b.Movement)
	}
}

func TestMultibombLaysLine(t *testing.T) {
	rows := emptyRows()
	rows[1][5] = '#'
	m := playingMap(t, rows)
	p := m.Player(0)
	p.HasMultibomb = true
	p.BombsLeft = 6
	p.State = StateIdleRight

	m.ReactToInputs(0, []Intent{{PlayerID: 0, Action: ActionBombDouble}}, 0)
	for _, at := range []Position{pos(1, 1), pos(2, 1), pos(3, 1), pos(4, 1)} {
		if !m.TileHasBomb(at) {
			t.Errorf("expected bomb at %v", at)
		}
	}
	if p.BombsLeft != 2 {
		t.Errorf("BombsLeft = %d, want 2", p.BombsLeft)
	}
}

func TestMultibombNeedsFreeTile(t *testing.T) {
	m := playingMap(t, emptyRows())
	p := m.Player(0)
	p.BombsLeft = 6
	if m.layBomb(p, p.Tile()) == nil {
		t.Fatal("setup bomb not laid")
	}
	p.HasMultibomb = true
	p.State = StateIdleRight

	m.ReactToInputs(0, []Intent{{PlayerID: 0, Action: ActionBombDouble}}, 0)
	if m.TileHasBomb(pos(2, 1)) {
		t.Error("no line may be laid while standing on a bomb")
	}
	if p.BombsLeft != 5 || len(m.Bombs()) != 1 {
		t.Errorf("BombsLeft = %d with %d bombs, want 5 and 1", p.BombsLeft, len(m.Bombs()))
	}
}
