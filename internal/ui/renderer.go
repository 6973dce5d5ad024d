package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/amalg/go-bombman/internal/game"
	"github.com/amalg/go-bombman/internal/match"
)

// Color palette
var (
	floorBg = lipgloss.Color("#1a1a2e")

	wallStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#3a3a3a")).
			Foreground(lipgloss.Color("#555555"))

	blockStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#8B6914")).
			Foreground(lipgloss.Color("#A0772B"))

	floorStyle = lipgloss.NewStyle().
			Background(floorBg).
			Foreground(lipgloss.Color("#44aaff"))

	bombStyle = lipgloss.NewStyle().
			Background(floorBg).
			Foreground(lipgloss.Color("#ff4444")).
			Bold(true)

	flameStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#ff6600")).
			Foreground(lipgloss.Color("#ffcc00")).
			Bold(true)

	lavaStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#aa2200")).
			Foreground(lipgloss.Color("#ff8844"))

	itemStyle = lipgloss.NewStyle().
			Background(floorBg).
			Foreground(lipgloss.Color("#00ffcc")).
			Bold(true)

	// One color per team.
	teamColors = []lipgloss.Color{
		lipgloss.Color("#00ff88"), // Green
		lipgloss.Color("#4488ff"), // Blue
		lipgloss.Color("#ff44ff"), // Magenta
		lipgloss.Color("#ffff44"), // Yellow
		lipgloss.Color("#ff8844"), // Orange
		lipgloss.Color("#44ffff"), // Cyan
		lipgloss.Color("#ffffff"), // White
		lipgloss.Color("#aa88ff"), // Violet
		lipgloss.Color("#88ff44"), // Lime
		lipgloss.Color("#ff4488"), // Pink
	}

	deadPlayerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Strikethrough(true)

	// HUD styles
	hudBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff8844")).
			Bold(true)

	waitingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#44aaff")).
			Bold(true)

	winnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ff88")).
			Bold(true).
			Blink(true)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// itemGlyphs are two cells wide like every board cell.
var itemGlyphs = map[game.ItemKind]string{
	game.ItemBomb:          "b+",
	game.ItemFlame:         "f+",
	game.ItemSuperflame:    "F!",
	game.ItemSpeedup:       "s+",
	game.ItemDisease:       "d?",
	game.ItemRandom:        "??",
	game.ItemSpring:        "sp",
	game.ItemShoe:          "sh",
	game.ItemMultibomb:     "mb",
	game.ItemBoxingGlove:   "bx",
	game.ItemDetonator:     "dt",
	game.ItemThrowingGlove: "tg",
}

var specialGlyphs = map[game.SpecialObject]string{
	game.SpecialTeleportA:  "<>",
	game.SpecialTeleportB:  "<>",
	game.SpecialTrampoline: "^^",
	game.SpecialArrowUp:    "/\\",
	game.SpecialArrowRight: "->",
	game.SpecialArrowDown:  "\\/",
	game.SpecialArrowLeft:  "<-",
	game.SpecialLava:       "~~",
}

func teamColor(team int) lipgloss.Color {
	return teamColors[team%len(teamColors)]
}

// RenderBoard converts a snapshot into a styled terminal string.
func RenderBoard(snap *match.Snapshot, me int) string {
	if snap == nil {
		return "Waiting for game state..."
	}

	bombSet := make(map[game.Position]*game.Bomb)
	for _, b := range snap.Bombs {
		bombSet[b.Tile()] = b
	}

	playerSet := make(map[game.Position]*game.Player)
	for _, p := range snap.Players {
		if p.IsDead() {
			continue
		}
		// The local player is drawn on top of others sharing the tile.
		if _, taken := playerSet[p.Tile()]; !taken || p.ID == me {
			playerSet[p.Tile()] = p
		}
	}

	rows := make([]string, 0, game.MapHeight)
	for y := 0; y < game.MapHeight; y++ {
		var cells strings.Builder
		for x := 0; x < game.MapWidth; x++ {
			pos := game.Position{X: x, Y: y}
			cells.WriteString(renderCell(&snap.Tiles[y][x], pos, bombSet, playerSet, me))
		}
		rows = append(rows, cells.String())
	}
	return strings.Join(rows, "\n")
}

// renderCell renders a single board cell with the appropriate style.
// Each cell is 2 characters wide for a square-ish appearance.
func renderCell(
	tile *game.Tile,
	pos game.Position,
	bombSet map[game.Position]*game.Bomb,
	playerSet map[game.Position]*game.Player,
	me int,
) string {
	// Priority: Player > Flame > Bomb > Tile
	if p, ok := playerSet[pos]; ok {
		style := lipgloss.NewStyle().
			Background(floorBg).
			Foreground(teamColor(p.Team)).
			Bold(true)
		label := fmt.Sprintf("P%d", p.ID)
		switch {
		case p.ID == me:
			label = "██"
		case p.InAir():
			label = "''"
		case p.IsTeleporting():
			label = "**"
		}
		return style.Render(label)
	}

	if tile.HasFlame() {
		return flameStyle.Render("░░")
	}

	if b, ok := bombSet[pos]; ok {
		if b.HasDetonator() {
			return bombStyle.Render("(!")
		}
		return bombStyle.Render("()")
	}

	switch tile.Kind {
	case game.TileWall:
		return wallStyle.Render("██")
	case game.TileBlock:
		return blockStyle.Render("▒▒")
	}
	if tile.Special == game.SpecialLava {
		return lavaStyle.Render("~~")
	}
	if g, ok := itemGlyphs[tile.Item]; ok {
		return itemStyle.Render(g)
	}
	if g, ok := specialGlyphs[tile.Special]; ok {
		return floorStyle.Render(g)
	}
	return floorStyle.Render("  ")
}

// RenderHUD renders the heads-up display showing player info and game status.
func RenderHUD(snap *match.Snapshot, me int) string {
	if snap == nil {
		return ""
	}

	var parts []string
	parts = append(parts, titleStyle.Render("💣 BOMBMAN"))
	parts = append(parts, dimStyle.Render(fmt.Sprintf("game %d/%d  %s  %s",
		snap.Game+1, snap.TotalGames, snap.Environment, formatTime(snap.MapTime))))
	parts = append(parts, "")

	switch snap.State {
	case game.StateWaitingToPlay:
		left := game.StartGameAfter - snap.MapTime
		parts = append(parts, waitingStyle.Render(fmt.Sprintf("⏳ GET READY %d", left/1000+1)))
	case game.StatePlaying:
		parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Render("🔥 GAME IN PROGRESS"))
	default:
		if snap.WinnerTeam != game.NoTeam {
			parts = append(parts, winnerStyle.Render(fmt.Sprintf("🏆 TEAM %d WINS!", snap.WinnerTeam)))
		} else {
			parts = append(parts, dimStyle.Render("💀 DRAW"))
		}
	}
	if snap.Done {
		parts = append(parts, titleStyle.Render("MATCH OVER"))
	}
	parts = append(parts, "")

	parts = append(parts, dimStyle.Render("Players:"))
	for _, p := range snap.Players {
		t := snap.Totals[p.ID]
		// Totals cover finished games only.
		if !snap.Done {
			t.Kills += p.Kills
		}
		parts = append(parts, playerLine(p, t, me))
	}
	return hudBorderStyle.Render(strings.Join(parts, "\n"))
}

func playerLine(p *game.Player, totals match.Totals, me int) string {
	nameStyle := lipgloss.NewStyle().Foreground(teamColor(p.Team))
	status := "❤️ "
	if p.IsDead() {
		status = "💀"
		nameStyle = deadPlayerStyle
	}
	marker := "  "
	if p.ID == me {
		marker = "→ "
	}

	line := fmt.Sprintf("%s%s %s [💣×%d 🔥%d ⚡%.0f] K%d W%d",
		marker,
		status,
		nameStyle.Render(fmt.Sprintf("P%d/T%d", p.ID, p.Team)),
		p.BombsLeft,
		p.FlameLength,
		p.Speed,
		totals.Kills,
		totals.Wins,
	)
	if p.Disease != game.DiseaseNone {
		line += " " + dimStyle.Render(fmt.Sprintf("(%s %ds)", p.Disease, p.DiseaseTime/1000))
	}
	return line
}

func formatTime(ms int) string {
	s := ms / 1000
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
