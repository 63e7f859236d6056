package defender

// State is the top-level game phase.
type State int

const (
	StateMenu State = iota
	StatePlaying
	StatePaused
	StateGameOver
	StateLevelComplete
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game-over"
	case StateLevelComplete:
		return "level-complete"
	default:
		return "unknown"
	}
}

// transitions lists the legal moves of the state machine.
var transitions = map[State][]State{
	StateMenu:          {StatePlaying},
	StatePlaying:       {StatePaused, StateGameOver, StateLevelComplete},
	StatePaused:        {StatePlaying},
	StateGameOver:      {StateMenu},
	StateLevelComplete: {StatePlaying},
}

// CanTransition reports whether moving from one state to another is legal.
func CanTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
