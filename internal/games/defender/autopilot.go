package defender

import (
	"math"

	"github.com/vovakirdan/dos-defender/internal/core"
)

// Autopilot is a simple scripted player for headless runs and soak tests.
// It chases the lowest enemy, fires when lined up and sidesteps enemy shots
// that are about to land.
type Autopilot struct {
	// RestartOnGameOver makes the autopilot leave the game-over screen.
	RestartOnGameOver bool

	dir float64 // Direction currently held: -1, 0 or +1
}

// Decide returns the commands to issue for the given snapshot.
func (a *Autopilot) Decide(snap Snapshot) []core.Command {
	switch snap.State {
	case StateMenu, StateLevelComplete:
		a.dir = 0
		return []core.Command{core.CommandConfirm}
	case StateGameOver:
		a.dir = 0
		if a.RestartOnGameOver {
			return []core.Command{core.CommandRestart}
		}
		return nil
	case StatePlaying:
	default:
		return nil
	}

	player, ok := snap.Player()
	if !ok {
		return nil
	}
	pcx := player.X + player.W/2

	want := 0.0
	fire := false
	if threat, ok := incomingShot(snap, player); ok {
		// Step away from the shot, toward the roomier side.
		if threat < pcx || pcx < player.W {
			want = 1
		} else {
			want = -1
		}
		if pcx > snap.FieldW-player.W {
			want = -1
		}
	} else if target, ok := lowestEnemy(snap); ok {
		tcx := target.X + target.W/2
		tolerance := target.W / 3
		switch {
		case tcx < pcx-tolerance:
			want = -1
		case tcx > pcx+tolerance:
			want = 1
		default:
			fire = true
		}
	}

	cmds := a.steer(want)
	if fire {
		cmds = append(cmds, core.CommandFire)
	}
	return cmds
}

// steer emits the start and stop commands that change the held direction.
func (a *Autopilot) steer(want float64) []core.Command {
	if want == a.dir {
		return nil
	}
	var cmds []core.Command
	switch a.dir {
	case -1:
		cmds = append(cmds, core.CommandMoveLeftStop)
	case 1:
		cmds = append(cmds, core.CommandMoveRightStop)
	}
	switch want {
	case -1:
		cmds = append(cmds, core.CommandMoveLeftStart)
	case 1:
		cmds = append(cmds, core.CommandMoveRightStart)
	}
	a.dir = want
	return cmds
}

func lowestEnemy(snap Snapshot) (EntityView, bool) {
	var best EntityView
	found := false
	for _, e := range snap.Entities {
		if e.Kind != KindEnemy || e.Y+e.H < 0 {
			continue
		}
		if !found || e.Y > best.Y {
			best = e
			found = true
		}
	}
	return best, found
}

// incomingShot returns the x of the nearest enemy shot that will reach the
// player's column soon.
func incomingShot(snap Snapshot, player EntityView) (float64, bool) {
	const lookahead = 80.0
	nearest := math.Inf(1)
	x := 0.0
	for _, e := range snap.Entities {
		if e.Kind != KindEnemyShot {
			continue
		}
		dist := player.Y - (e.Y + e.H)
		if dist < 0 || dist > lookahead {
			continue
		}
		if e.X+e.W < player.X-player.W/2 || e.X > player.X+player.W*1.5 {
			continue
		}
		if dist < nearest {
			nearest = dist
			x = e.X + e.W/2
		}
	}
	return x, !math.IsInf(nearest, 1)
}
