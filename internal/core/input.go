package core

// Command represents a discrete, already-debounced player command.
// The simulation consumes commands rather than raw key presses so that any
// input source (keyboard, SSH session, autopilot) can drive it.
type Command int

const (
	CommandNone Command = iota
	CommandMoveLeftStart
	CommandMoveLeftStop
	CommandMoveRightStart
	CommandMoveRightStop
	CommandFire
	CommandPause   // Toggles Playing <-> Paused
	CommandConfirm // Start from menu, continue after level complete
	CommandRestart // Return to menu after game over
)

// String returns a human-readable name for the command.
func (c Command) String() string {
	switch c {
	case CommandNone:
		return "None"
	case CommandMoveLeftStart:
		return "MoveLeftStart"
	case CommandMoveLeftStop:
		return "MoveLeftStop"
	case CommandMoveRightStart:
		return "MoveRightStart"
	case CommandMoveRightStop:
		return "MoveRightStop"
	case CommandFire:
		return "Fire"
	case CommandPause:
		return "Pause"
	case CommandConfirm:
		return "Confirm"
	case CommandRestart:
		return "Restart"
	default:
		return "Unknown"
	}
}
