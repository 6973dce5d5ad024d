package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/amalg/go-bombman/internal/game"
)

// KeyMap defines the key bindings of the local player.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Bomb       key.Binding
	BombDouble key.Binding
	Special    key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Bomb, k.BombDouble, k.Special, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Bomb, k.BombDouble, k.Special},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		Bomb: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "bomb"),
		),
		BombDouble: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "throw/multibomb"),
		),
		Special: key.NewBinding(
			key.WithKeys("x", "enter"),
			key.WithHelp("x", "detonate/box"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// actionFor maps a key press to a game action.
func (k KeyMap) actionFor(km tea.KeyMsg) (game.Action, bool) {
	switch {
	case key.Matches(km, k.Up):
		return game.ActionUp, true
	case key.Matches(km, k.Down):
		return game.ActionDown, true
	case key.Matches(km, k.Left):
		return game.ActionLeft, true
	case key.Matches(km, k.Right):
		return game.ActionRight, true
	case key.Matches(km, k.Bomb):
		return game.ActionBomb, true
	case key.Matches(km, k.BombDouble):
		return game.ActionBombDouble, true
	case key.Matches(km, k.Special):
		return game.ActionSpecial, true
	}
	return 0, false
}
