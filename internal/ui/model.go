package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amalg/go-bombman/internal/game"
	"github.com/amalg/go-bombman/internal/match"
)

// snapshotMsg carries a new snapshot from the engine.
type snapshotMsg match.Snapshot

// finishedMsg reports that the engine stopped publishing.
type finishedMsg struct{}

// Model is the Bubbletea model of a local game.
type Model struct {
	engine    *match.Engine
	snapshots <-chan match.Snapshot
	snap      *match.Snapshot
	playerID  int
	keys      KeyMap
	help      help.Model
	finished  bool
	quitting  bool
}

// NewModel creates a TUI model for the human in slot playerID. snapshots is
// fed from the engine's OnTick callback and closed when the engine stops.
func NewModel(engine *match.Engine, snapshots <-chan match.Snapshot, playerID int) Model {
	h := help.New()
	h.ShowAll = false
	return Model{
		engine:    engine,
		snapshots: snapshots,
		playerID:  playerID,
		keys:      DefaultKeyMap(),
		help:      h,
	}
}

// Init starts listening for snapshots.
func (m Model) Init() tea.Cmd {
	return waitForSnapshot(m.snapshots)
}

// Update handles incoming messages (key presses, snapshots).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case snapshotMsg:
		snap := match.Snapshot(msg)
		m.snap = &snap
		return m, waitForSnapshot(m.snapshots)

	case finishedMsg:
		m.finished = true
	}

	return m, nil
}

// View renders the latest snapshot.
func (m Model) View() string {
	if m.quitting {
		return "Goodbye! 👋\n"
	}

	board := RenderBoard(m.snap, m.playerID)
	hud := RenderHUD(m.snap, m.playerID)

	// Layout: board on the left, HUD on the right
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		board,
		"  ",
		hud,
	) + "\n" + m.help.View(m.keys) + "\n"
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.finished {
		return m, nil
	}
	if a, ok := m.keys.actionFor(msg); ok {
		m.engine.EnqueueAction(game.Intent{PlayerID: m.playerID, Action: a})
	}
	return m, nil
}

// waitForSnapshot returns a Cmd that waits for the next snapshot.
func waitForSnapshot(snapshots <-chan match.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-snapshots
		if !ok {
			return finishedMsg{}
		}
		return snapshotMsg(snap)
	}
}

// Publish returns an OnTick callback that forwards snapshots to ch without
// blocking the engine. A snapshot is dropped when the UI falls behind, but
// one carrying events or the end of the match replaces the oldest entry.
func Publish(ch chan match.Snapshot) func(match.Snapshot) {
	return func(s match.Snapshot) {
		select {
		case ch <- s:
			return
		default:
		}
		if len(s.Sounds) == 0 && len(s.Animations) == 0 && !s.Done {
			return
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- s:
		default:
		}
	}
}
