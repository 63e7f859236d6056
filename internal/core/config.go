package core

import "time"

// RuntimeConfig describes the session a game runs in: the terminal size in
// cells, the frame rate requested from the driver and the RNG seed.
type RuntimeConfig struct {
	ScreenW  int
	ScreenH  int
	TickRate int   // Frames per second (default 60)
	Seed     int64 // 0 picks a seed when the session starts
}

// DefaultConfig returns the settings used when the terminal cannot be queried.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// ResolveSeed returns the configured seed, or one derived from now when unset.
func (c RuntimeConfig) ResolveSeed(now time.Time) int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return now.UnixNano()
}
