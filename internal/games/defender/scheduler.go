package defender

import "time"

// TimerSlot names one of the simulation's timers. Each slot holds at most one
// armed timer; scheduling a slot replaces whatever it held.
type TimerSlot int

const (
	SlotSpawn TimerSlot = iota
	SlotRapidFire
	SlotShield
	slotCount
)

// String returns the name of the slot.
func (s TimerSlot) String() string {
	switch s {
	case SlotSpawn:
		return "spawn"
	case SlotRapidFire:
		return "rapid-fire"
	case SlotShield:
		return "shield"
	default:
		return "unknown"
	}
}

type timer struct {
	armed    bool
	deadline time.Time
	interval time.Duration // Zero for one-shot timers
}

// Scheduler keeps cancellable deadlines measured on the simulation clock.
// It never fires on its own: the owner drains due timers with Next at the
// start of each tick, so a cancelled timer can never fire afterwards.
type Scheduler struct {
	timers [slotCount]timer
}

// Schedule arms slot to fire after the given delay. A positive repeat makes
// it fire every repeat after that.
func (s *Scheduler) Schedule(slot TimerSlot, now time.Time, after, repeat time.Duration) {
	if repeat < 0 {
		repeat = 0
	}
	s.timers[slot] = timer{
		armed:    true,
		deadline: now.Add(after),
		interval: repeat,
	}
}

// Cancel disarms slot. Cancelling an idle slot is a no-op.
func (s *Scheduler) Cancel(slot TimerSlot) {
	s.timers[slot] = timer{}
}

// CancelAll disarms every slot.
func (s *Scheduler) CancelAll() {
	for i := range s.timers {
		s.timers[i] = timer{}
	}
}

// Active reports whether slot is armed.
func (s *Scheduler) Active(slot TimerSlot) bool {
	return s.timers[slot].armed
}

// Remaining returns the time left before slot fires, or zero when idle.
func (s *Scheduler) Remaining(slot TimerSlot, now time.Time) time.Duration {
	t := s.timers[slot]
	if !t.armed {
		return 0
	}
	if d := t.deadline.Sub(now); d > 0 {
		return d
	}
	return 0
}

// Suspend disarms slot and returns the time it had left.
func (s *Scheduler) Suspend(slot TimerSlot, now time.Time) (time.Duration, bool) {
	if !s.timers[slot].armed {
		return 0, false
	}
	remaining := s.Remaining(slot, now)
	s.Cancel(slot)
	return remaining, true
}

// Next pops the earliest timer due at now. Ties go to the lower slot.
// One-shot timers are disarmed; repeating timers are re-armed one period
// later, skipping periods that were already missed, so a slot fires at most
// once per drain.
func (s *Scheduler) Next(now time.Time) (TimerSlot, bool) {
	best := TimerSlot(-1)
	for i := range s.timers {
		t := s.timers[i]
		if !t.armed || t.deadline.After(now) {
			continue
		}
		if best < 0 || t.deadline.Before(s.timers[best].deadline) {
			best = TimerSlot(i)
		}
	}
	if best < 0 {
		return 0, false
	}

	t := &s.timers[best]
	if t.interval <= 0 {
		*t = timer{}
		return best, true
	}
	t.deadline = t.deadline.Add(t.interval)
	if !t.deadline.After(now) {
		t.deadline = now.Add(t.interval)
	}
	return best, true
}
