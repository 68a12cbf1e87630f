package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gunpong/internal/core"
)

// Command is a platform-only request that never reaches the simulation.
type Command int

const (
	CommandNone Command = iota
	CommandHelp
	CommandScreenshot
	CommandCopy
)

// KeyMap defines the key bindings of the game screen.
type KeyMap struct {
	LeftUp     key.Binding
	LeftDown   key.Binding
	LeftFire   key.Binding
	RightUp    key.Binding
	RightDown  key.Binding
	RightFire  key.Binding
	Start      key.Binding
	Pause      key.Binding
	Reset      key.Binding
	Mode       key.Binding
	Help       key.Binding
	Screenshot key.Binding
	Copy       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Pause, k.Reset, k.Mode, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.LeftUp, k.LeftDown, k.LeftFire},
		{k.RightUp, k.RightDown, k.RightFire},
		{k.Start, k.Pause, k.Reset, k.Mode},
		{k.Screenshot, k.Copy, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		LeftUp: key.NewBinding(
			key.WithKeys("w", "W"),
			key.WithHelp("w", "left up"),
		),
		LeftDown: key.NewBinding(
			key.WithKeys("s", "S"),
			key.WithHelp("s", "left down"),
		),
		LeftFire: key.NewBinding(
			key.WithKeys("d", "D"),
			key.WithHelp("d", "left fire"),
		),
		RightUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "right up"),
		),
		RightDown: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "right down"),
		),
		RightFire: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "right fire"),
		),
		Start: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "start"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "P"),
			key.WithHelp("p", "pause"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r", "R"),
			key.WithHelp("r", "reset"),
		),
		Mode: key.NewBinding(
			key.WithKeys("m", "M"),
			key.WithHelp("m", "mode"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy frame"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapKey translates a key message to a game action or a platform command.
// At most one of the results is set.
func (k KeyMap) MapKey(msg tea.KeyMsg) (core.Action, Command) {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, CommandNone
	case key.Matches(msg, k.LeftUp):
		return core.ActionLeftUp, CommandNone
	case key.Matches(msg, k.LeftDown):
		return core.ActionLeftDown, CommandNone
	case key.Matches(msg, k.LeftFire):
		return core.ActionLeftFire, CommandNone
	case key.Matches(msg, k.RightUp):
		return core.ActionRightUp, CommandNone
	case key.Matches(msg, k.RightDown):
		return core.ActionRightDown, CommandNone
	case key.Matches(msg, k.RightFire):
		return core.ActionRightFire, CommandNone
	case key.Matches(msg, k.Start):
		return core.ActionStart, CommandNone
	case key.Matches(msg, k.Pause):
		return core.ActionPause, CommandNone
	case key.Matches(msg, k.Reset):
		return core.ActionReset, CommandNone
	case key.Matches(msg, k.Mode):
		return core.ActionToggleMode, CommandNone
	case key.Matches(msg, k.Help):
		return core.ActionNone, CommandHelp
	case key.Matches(msg, k.Screenshot):
		return core.ActionNone, CommandScreenshot
	case key.Matches(msg, k.Copy):
		return core.ActionNone, CommandCopy
	}
	return core.ActionNone, CommandNone
}

// isHeld reports whether an action is sampled through the key state table
// rather than applied immediately.
func isHeld(a core.Action) bool {
	switch a {
	case core.ActionLeftUp, core.ActionLeftDown, core.ActionLeftFire,
		core.ActionRightUp, core.ActionRightDown, core.ActionRightFire:
		return true
	default:
		return false
	}
}
