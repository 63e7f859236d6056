package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"

	"github.com/vovakirdan/dos-defender/internal/core"
)

// KeyMap defines the key bindings for the game screen.
type KeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Stop       key.Binding
	Fire       key.Binding
	Pause      key.Binding
	Confirm    key.Binding
	Restart    key.Binding
	Mute       key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Fire, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Stop, k.Fire},
		{k.Pause, k.Confirm, k.Restart},
		{k.Mute, k.Screenshot, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		Stop: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/s", "stop"),
		),
		Fire: key.NewBinding(
			key.WithKeys(" ", "up", "w", "k"),
			key.WithHelp("space", "fire"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start/continue"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// DefaultReleaseTimeout is how long a direction stays held without a new
// key event. It must outlast the terminal's initial auto-repeat delay.
const DefaultReleaseTimeout = 550 * time.Millisecond

// HeldKeys emulates key releases for terminals, which only report presses.
// A direction counts as held while its key keeps auto-repeating and is
// released once no repeat arrives within the timeout.
type HeldKeys struct {
	timeout  time.Duration
	lastSeen [2]time.Time
	held     [2]bool
}

const (
	dirLeft = iota
	dirRight
)

// NewHeldKeys creates a tracker with the given release timeout.
func NewHeldKeys(timeout time.Duration) *HeldKeys {
	if timeout <= 0 {
		timeout = DefaultReleaseTimeout
	}
	return &HeldKeys{timeout: timeout}
}

var (
	startCommands = [2]core.Command{core.CommandMoveLeftStart, core.CommandMoveRightStart}
	stopCommands  = [2]core.Command{core.CommandMoveLeftStop, core.CommandMoveRightStop}
)

// Press records a key event for a direction and returns the start command
// on the first press. Repeats only refresh the timeout. Terminals repeat
// only the last key pressed, so pressing one direction releases the other.
func (h *HeldKeys) Press(dir int, now time.Time) []core.Command {
	var cmds []core.Command
	if other := 1 - dir; h.held[other] {
		h.held[other] = false
		cmds = append(cmds, stopCommands[other])
	}
	h.lastSeen[dir] = now
	if !h.held[dir] {
		h.held[dir] = true
		cmds = append(cmds, startCommands[dir])
	}
	return cmds
}

// Expire releases directions whose key stopped repeating.
func (h *HeldKeys) Expire(now time.Time) []core.Command {
	var cmds []core.Command
	for dir := range h.held {
		if h.held[dir] && now.Sub(h.lastSeen[dir]) >= h.timeout {
			h.held[dir] = false
			cmds = append(cmds, stopCommands[dir])
		}
	}
	return cmds
}

// ReleaseAll releases every held direction.
func (h *HeldKeys) ReleaseAll() []core.Command {
	var cmds []core.Command
	for dir := range h.held {
		if h.held[dir] {
			h.held[dir] = false
			cmds = append(cmds, stopCommands[dir])
		}
	}
	return cmds
}

// Held reports whether a direction is currently held.
func (h *HeldKeys) Held(dir int) bool {
	return h.held[dir]
}
