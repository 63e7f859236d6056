package defender

import (
	"testing"
	"time"
)

func drainSlots(s *Scheduler, now time.Time) []TimerSlot {
	var fired []TimerSlot
	for {
		slot, ok := s.Next(now)
		if !ok {
			return fired
		}
		fired = append(fired, slot)
	}
}

func TestSchedulerOneShot(t *testing.T) {
	var s Scheduler
	s.Schedule(SlotShield, testEpoch, time.Second, 0)

	if fired := drainSlots(&s, testEpoch.Add(999*time.Millisecond)); len(fired) != 0 {
		t.Fatalf("fired early: %v", fired)
	}
	if fired := drainSlots(&s, testEpoch.Add(time.Second)); len(fired) != 1 || fired[0] != SlotShield {
		t.Fatalf("expected shield to fire once, got %v", fired)
	}
	if s.Active(SlotShield) {
		t.Error("one-shot timer must disarm after firing")
	}
	if fired := drainSlots(&s, testEpoch.Add(time.Hour)); len(fired) != 0 {
		t.Errorf("one-shot fired twice: %v", fired)
	}
}

func TestSchedulerRepeating(t *testing.T) {
	var s Scheduler
	s.Schedule(SlotSpawn, testEpoch, time.Second, time.Second)

	for i := 1; i <= 3; i++ {
		now := testEpoch.Add(time.Duration(i) * time.Second)
		if fired := drainSlots(&s, now); len(fired) != 1 {
			t.Fatalf("period %d: expected one firing, got %v", i, fired)
		}
	}
	if !s.Active(SlotSpawn) {
		t.Error("repeating timer must stay armed")
	}
}

func TestSchedulerSkipsMissedPeriods(t *testing.T) {
	var s Scheduler
	s.Schedule(SlotSpawn, testEpoch, time.Second, time.Second)

	now := testEpoch.Add(10 * time.Second)
	if fired := drainSlots(&s, now); len(fired) != 1 {
		t.Fatalf("expected a single catch-up firing, got %v", fired)
	}
	if got := s.Remaining(SlotSpawn, now); got != time.Second {
		t.Errorf("expected next firing one period later, got %v", got)
	}
}

func TestSchedulerCancel(t *testing.T) {
	var s Scheduler
	s.Schedule(SlotSpawn, testEpoch, time.Second, time.Second)
	s.Schedule(SlotRapidFire, testEpoch, time.Second, 0)
	s.Cancel(SlotSpawn)

	fired := drainSlots(&s, testEpoch.Add(5*time.Second))
	if len(fired) != 1 || fired[0] != SlotRapidFire {
		t.Errorf("cancelled slot fired: %v", fired)
	}

	s.Schedule(SlotShield, testEpoch, time.Second, time.Second)
	s.CancelAll()
	if fired := drainSlots(&s, testEpoch.Add(time.Hour)); len(fired) != 0 {
		t.Errorf("expected nothing after CancelAll, got %v", fired)
	}
}

func TestSchedulerOrdersByDeadline(t *testing.T) {
	var s Scheduler
	s.Schedule(SlotSpawn, testEpoch, 3*time.Second, 0)
	s.Schedule(SlotRapidFire, testEpoch, 2*time.Second, 0)
	s.Schedule(SlotShield, testEpoch, time.Second, 0)

	fired := drainSlots(&s, testEpoch.Add(5*time.Second))
	want := []TimerSlot{SlotShield, SlotRapidFire, SlotSpawn}
	if len(fired) != len(want) {
		t.Fatalf("expected %v, got %v", want, fired)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Errorf("firing %d: expected %v, got %v", i, want[i], fired[i])
		}
	}
}

func TestSchedulerHandlerCanCancelLaterTimer(t *testing.T) {
	var s Scheduler
	s.Schedule(SlotShield, testEpoch, time.Second, 0)
	s.Schedule(SlotSpawn, testEpoch, 2*time.Second, 0)

	now := testEpoch.Add(3 * time.Second)
	slot, ok := s.Next(now)
	if !ok || slot != SlotShield {
		t.Fatalf("expected shield first, got %v %v", slot, ok)
	}
	s.Cancel(SlotSpawn)
	if _, ok := s.Next(now); ok {
		t.Error("timer cancelled by an earlier handler must not fire")
	}
}

func TestSchedulerSuspend(t *testing.T) {
	var s Scheduler
	s.Schedule(SlotShield, testEpoch, 10*time.Second, 0)

	remaining, ok := s.Suspend(SlotShield, testEpoch.Add(4*time.Second))
	if !ok || remaining != 6*time.Second {
		t.Fatalf("expected 6s remaining, got %v %v", remaining, ok)
	}
	if s.Active(SlotShield) {
		t.Error("suspended slot must be disarmed")
	}
	if _, ok := s.Suspend(SlotShield, testEpoch); ok {
		t.Error("suspending an idle slot must report false")
	}
}
