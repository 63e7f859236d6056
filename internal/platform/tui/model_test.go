package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dos-defender/internal/config"
	"github.com/vovakirdan/dos-defender/internal/core"
	"github.com/vovakirdan/dos-defender/internal/games/defender"
)

type recordingSound struct {
	events []defender.Event
	muted  bool
}

func (r *recordingSound) Play(e defender.Event) { r.events = append(r.events, e) }
func (r *recordingSound) SetMuted(muted bool)   { r.muted = muted }
func (r *recordingSound) Muted() bool           { return r.muted }

type recordingFeed struct {
	snaps []defender.Snapshot
}

func (r *recordingFeed) Publish(snap defender.Snapshot) { r.snaps = append(r.snaps, snap) }

func newTestModel(sound SoundPlayer, feed Publisher) Model {
	return NewModel(Options{
		Config: config.DefaultDefenderConfig(),
		Sound:  sound,
		Feed:   feed,
		Runtime: core.RuntimeConfig{
			ScreenW:  80,
			ScreenH:  26,
			TickRate: 60,
			Seed:     7,
		},
	})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return model
}

func TestModelStartsFromMenu(t *testing.T) {
	sound := &recordingSound{}
	m := newTestModel(sound, nil)

	if m.Snapshot().State != defender.StateMenu {
		t.Fatalf("initial state = %v, expected Menu", m.Snapshot().State)
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Snapshot().State != defender.StatePlaying {
		t.Errorf("state after enter = %v, expected Playing", m.Snapshot().State)
	}

	found := false
	for _, e := range sound.events {
		if e.Type == defender.EventStateChanged && e.To == defender.StatePlaying {
			found = true
		}
	}
	if !found {
		t.Error("sound player should receive the state change")
	}
}

func TestModelTickPublishesSnapshot(t *testing.T) {
	feed := &recordingFeed{}
	m := newTestModel(nil, feed)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	now := time.Now()
	m = update(t, m, TickMsg(now))
	m = update(t, m, TickMsg(now.Add(16*time.Millisecond)))

	if len(feed.snaps) != 2 {
		t.Fatalf("published %d snapshots, expected 2", len(feed.snaps))
	}
	last := feed.snaps[1]
	if last.FieldW != 800 || last.FieldH != 480 {
		t.Errorf("field = %vx%v, expected 800x480", last.FieldW, last.FieldH)
	}
	if last.Frame != 2 {
		t.Errorf("frame = %d, expected 2", last.Frame)
	}
}

func TestModelPausesWhenTooSmall(t *testing.T) {
	feed := &recordingFeed{}
	m := newTestModel(nil, feed)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m = update(t, m, tea.WindowSizeMsg{Width: 30, Height: 10})
	m = update(t, m, TickMsg(time.Now()))

	if m.Snapshot().State != defender.StatePaused {
		t.Errorf("state = %v, expected Paused", m.Snapshot().State)
	}
	if !strings.Contains(m.View(), "too small") {
		t.Error("view should show the too-small notice")
	}
	if len(feed.snaps) != 0 {
		t.Errorf("no frames should be published while too small, got %d", len(feed.snaps))
	}
}

func TestModelMuteToggle(t *testing.T) {
	sound := &recordingSound{}
	m := newTestModel(sound, nil)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	if !sound.muted {
		t.Error("m should mute")
	}
	update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}})
	if sound.muted {
		t.Error("second m should unmute")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(nil, nil)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("quit should return a command")
	}
	if view := next.(Model).View(); view != "" {
		t.Errorf("view after quit = %q, expected empty", view)
	}
}
