package defender

import (
	"time"

	"github.com/vovakirdan/dos-defender/internal/config"
)

// Buff is the activation record of one power-up kind.
type Buff struct {
	Active      bool
	ActivatedAt time.Time
	Duration    time.Duration

	suspended bool
	remaining time.Duration // Time left when suspended
}

// BuffManager tracks timed buffs. Each kind owns one scheduler slot, so
// re-activating a kind replaces its expiry instead of stacking it.
type BuffManager struct {
	buffs [powerUpKindCount]Buff
	sched *Scheduler
}

// NewBuffManager creates a manager whose expiries live in sched.
func NewBuffManager(cfg config.BuffConfig, sched *Scheduler) *BuffManager {
	m := &BuffManager{sched: sched}
	m.buffs[PowerUpRapidFire].Duration = msDuration(cfg.RapidFireMs)
	m.buffs[PowerUpShield].Duration = msDuration(cfg.ShieldMs)
	return m
}

// buffSlot maps a power-up kind to its expiry timer.
func buffSlot(kind PowerUpKind) TimerSlot {
	if kind == PowerUpShield {
		return SlotShield
	}
	return SlotRapidFire
}

// slotBuff maps an expiry timer back to its kind.
func slotBuff(slot TimerSlot) (PowerUpKind, bool) {
	switch slot {
	case SlotRapidFire:
		return PowerUpRapidFire, true
	case SlotShield:
		return PowerUpShield, true
	default:
		return 0, false
	}
}

// Activate turns a buff on for its full duration, cancelling any pending expiry.
func (m *BuffManager) Activate(kind PowerUpKind, now time.Time) {
	b := &m.buffs[kind]
	m.sched.Cancel(buffSlot(kind))
	b.Active = true
	b.ActivatedAt = now
	b.suspended = false
	b.remaining = 0
	m.sched.Schedule(buffSlot(kind), now, b.Duration, 0)
}

// Expire turns a buff off. It is called when the expiry timer fires.
func (m *BuffManager) Expire(kind PowerUpKind) {
	b := &m.buffs[kind]
	b.Active = false
	b.ActivatedAt = time.Time{}
	b.suspended = false
	b.remaining = 0
}

// Consume uses up an active buff early and reports whether it was active.
func (m *BuffManager) Consume(kind PowerUpKind) bool {
	if !m.buffs[kind].Active {
		return false
	}
	m.sched.Cancel(buffSlot(kind))
	m.Expire(kind)
	return true
}

// Active reports whether a buff is on.
func (m *BuffManager) Active(kind PowerUpKind) bool {
	return m.buffs[kind].Active
}

// Remaining returns how long a buff has left. Suspended buffs report the
// time they had when suspended.
func (m *BuffManager) Remaining(kind PowerUpKind, now time.Time) time.Duration {
	b := m.buffs[kind]
	if !b.Active {
		return 0
	}
	if b.suspended {
		return b.remaining
	}
	return m.sched.Remaining(buffSlot(kind), now)
}

// Suspend freezes every active buff, keeping its remaining time.
func (m *BuffManager) Suspend(now time.Time) {
	for kind := range m.buffs {
		b := &m.buffs[kind]
		if !b.Active || b.suspended {
			continue
		}
		remaining, ok := m.sched.Suspend(buffSlot(PowerUpKind(kind)), now)
		if !ok {
			continue
		}
		b.suspended = true
		b.remaining = remaining
	}
}

// Resume re-arms suspended buffs with the time they had left.
func (m *BuffManager) Resume(now time.Time) {
	for kind := range m.buffs {
		b := &m.buffs[kind]
		if !b.Active || !b.suspended {
			continue
		}
		m.sched.Schedule(buffSlot(PowerUpKind(kind)), now, b.remaining, 0)
		b.ActivatedAt = now.Add(b.remaining - b.Duration)
		b.suspended = false
		b.remaining = 0
	}
}

// Clear cancels every buff and its expiry timer.
func (m *BuffManager) Clear() {
	for kind := range m.buffs {
		m.sched.Cancel(buffSlot(PowerUpKind(kind)))
		m.Expire(PowerUpKind(kind))
	}
}

// msDuration converts fractional milliseconds to a duration.
func msDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
