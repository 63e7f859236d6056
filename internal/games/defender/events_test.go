package defender

import "testing"

func TestEventBusDispatchOrder(t *testing.T) {
	bus := NewEventBus()
	var seen []EventType
	bus.Subscribe(func(e Event) { seen = append(seen, e.Type) })

	bus.Emit(Event{Type: EventShotFired})
	bus.Emit(Event{Type: EventExplosion})
	if len(seen) != 0 {
		t.Fatal("events must not be delivered before Dispatch")
	}
	bus.Dispatch()

	if len(seen) != 2 || seen[0] != EventShotFired || seen[1] != EventExplosion {
		t.Errorf("unexpected delivery order: %v", seen)
	}

	drained := bus.Drain()
	if len(drained) != 2 {
		t.Errorf("expected 2 drained events, got %d", len(drained))
	}
	if again := bus.Drain(); len(again) != 0 {
		t.Errorf("second drain must be empty, got %d", len(again))
	}
}

func TestEventBusBoundsPending(t *testing.T) {
	bus := NewEventBus()
	for i := range maxPending + 10 {
		bus.Emit(Event{Type: EventShotFired, Frame: uint64(i)}) //#nosec G115 -- test index
	}
	bus.Dispatch()

	drained := bus.Drain()
	if len(drained) != maxPending {
		t.Fatalf("expected %d pending events, got %d", maxPending, len(drained))
	}
	if drained[0].Frame != 10 {
		t.Errorf("oldest events must be dropped first, got frame %d", drained[0].Frame)
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to State
		want     bool
	}{
		{StateMenu, StatePlaying, true},
		{StateMenu, StatePaused, false},
		{StatePlaying, StatePaused, true},
		{StatePlaying, StateGameOver, true},
		{StatePlaying, StateLevelComplete, true},
		{StatePlaying, StateMenu, false},
		{StatePaused, StatePlaying, true},
		{StatePaused, StateGameOver, false},
		{StateGameOver, StateMenu, true},
		{StateGameOver, StatePlaying, false},
		{StateLevelComplete, StatePlaying, true},
		{StateLevelComplete, StateMenu, false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
