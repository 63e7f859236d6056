package core

import (
	"testing"
	"time"
)

func TestManualClockAdvance(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewManualClock(start)

	if !c.Now().Equal(start) {
		t.Fatalf("Now() = %v, expected %v", c.Now(), start)
	}

	c.Advance(1500 * time.Millisecond)
	c.AdvanceMs(16.5)

	want := start.Add(1516*time.Millisecond + 500*time.Microsecond)
	if !c.Now().Equal(want) {
		t.Errorf("Now() = %v, expected %v", c.Now(), want)
	}

	c.Set(start)
	if !c.Now().Equal(start) {
		t.Errorf("Set() did not replace current time")
	}
}
