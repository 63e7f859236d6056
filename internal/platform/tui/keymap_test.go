package tui

import (
	"slices"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dos-defender/internal/core"
)

func TestDefaultKeyMap(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name    string
		msg     tea.KeyMsg
		binding key.Binding
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, keys.Left},
		{"a", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}}, keys.Left},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, keys.Right},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, keys.Fire},
		{"p", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}}, keys.Pause},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, keys.Confirm},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, keys.Quit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !key.Matches(tt.msg, tt.binding) {
				t.Errorf("%q should match %v", tt.msg.String(), tt.binding.Keys())
			}
		})
	}

	if len(keys.ShortHelp()) == 0 {
		t.Error("short help should not be empty")
	}
}

func TestHeldKeysPressAndExpire(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	h := NewHeldKeys(500 * time.Millisecond)

	cmds := h.Press(dirLeft, start)
	if !slices.Equal(cmds, []core.Command{core.CommandMoveLeftStart}) {
		t.Fatalf("first press = %v, expected [MoveLeftStart]", cmds)
	}

	// Auto-repeat only refreshes the timeout
	if cmds := h.Press(dirLeft, start.Add(300*time.Millisecond)); len(cmds) != 0 {
		t.Errorf("repeat press = %v, expected none", cmds)
	}
	if cmds := h.Expire(start.Add(700 * time.Millisecond)); len(cmds) != 0 {
		t.Errorf("expire before timeout = %v, expected none", cmds)
	}

	cmds = h.Expire(start.Add(800 * time.Millisecond))
	if !slices.Equal(cmds, []core.Command{core.CommandMoveLeftStop}) {
		t.Errorf("expire after timeout = %v, expected [MoveLeftStop]", cmds)
	}
	if h.Held(dirLeft) {
		t.Error("left should be released")
	}
}

func TestHeldKeysSwitchDirection(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	h := NewHeldKeys(0)

	h.Press(dirLeft, now)
	cmds := h.Press(dirRight, now)
	expected := []core.Command{core.CommandMoveLeftStop, core.CommandMoveRightStart}
	if !slices.Equal(cmds, expected) {
		t.Errorf("switch = %v, expected %v", cmds, expected)
	}

	// Switching back must start left again
	cmds = h.Press(dirLeft, now)
	expected = []core.Command{core.CommandMoveRightStop, core.CommandMoveLeftStart}
	if !slices.Equal(cmds, expected) {
		t.Errorf("switch back = %v, expected %v", cmds, expected)
	}
}

func TestHeldKeysReleaseAll(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	h := NewHeldKeys(time.Second)
	h.Press(dirRight, now)

	cmds := h.ReleaseAll()
	if !slices.Equal(cmds, []core.Command{core.CommandMoveRightStop}) {
		t.Errorf("ReleaseAll = %v, expected [MoveRightStop]", cmds)
	}
	if cmds := h.ReleaseAll(); len(cmds) != 0 {
		t.Errorf("second ReleaseAll = %v, expected none", cmds)
	}
}
