package defender

// EventType identifies a notification emitted by the simulation.
// Notifications are fire-and-forget; nothing in the simulation waits on them.
type EventType uint8

const (
	EventShotFired EventType = iota
	EventEnemyShotFired
	EventExplosion
	EventPlayerHit
	EventShieldAbsorbed
	EventPowerUpAcquired
	EventPowerUpExpired
	EventLevelUp
	EventGameOver
	EventStateChanged
)

// String returns the name of the event type.
func (t EventType) String() string {
	switch t {
	case EventShotFired:
		return "shot-fired"
	case EventEnemyShotFired:
		return "enemy-shot-fired"
	case EventExplosion:
		return "explosion"
	case EventPlayerHit:
		return "player-hit"
	case EventShieldAbsorbed:
		return "shield-absorbed"
	case EventPowerUpAcquired:
		return "powerup-acquired"
	case EventPowerUpExpired:
		return "powerup-expired"
	case EventLevelUp:
		return "level-up"
	case EventGameOver:
		return "game-over"
	case EventStateChanged:
		return "state-changed"
	default:
		return "unknown"
	}
}

// Event is a single notification. Fields irrelevant to Type are zero.
type Event struct {
	Type  EventType
	Frame uint64

	X, Y  float64     // Explosion, shot and hit positions
	Kind  PowerUpKind // EventPowerUpAcquired, EventPowerUpExpired
	From  State       // EventStateChanged
	To    State       // EventStateChanged
	Level int         // EventLevelUp: the completed level
	Score int         // EventGameOver: the final score
}

// EventHandler receives dispatched events.
type EventHandler func(e Event)

// maxPending bounds the events kept for Drain when nobody drains.
const maxPending = 512

// EventBus queues events during a tick and dispatches them afterwards.
type EventBus struct {
	handlers []EventHandler
	queue    []Event
	pending  []Event
}

// NewEventBus creates an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{}
}

// Subscribe registers a handler for every event type.
func (b *EventBus) Subscribe(h EventHandler) {
	b.handlers = append(b.handlers, h)
}

// Emit queues an event for dispatch.
func (b *EventBus) Emit(e Event) {
	b.queue = append(b.queue, e)
}

// Dispatch delivers queued events to handlers in emission order and keeps
// them for Drain.
func (b *EventBus) Dispatch() {
	for _, e := range b.queue {
		for _, h := range b.handlers {
			h(e)
		}
	}
	b.pending = append(b.pending, b.queue...)
	if over := len(b.pending) - maxPending; over > 0 {
		b.pending = append(b.pending[:0], b.pending[over:]...)
	}
	b.queue = b.queue[:0]
}

// Drain returns the events dispatched since the previous Drain.
func (b *EventBus) Drain() []Event {
	out := b.pending
	b.pending = nil
	return out
}

// Reset discards queued and pending events. Handlers stay registered.
func (b *EventBus) Reset() {
	b.queue = b.queue[:0]
	b.pending = nil
}
