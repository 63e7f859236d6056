package defender

import (
	"testing"

	"github.com/vovakirdan/dos-defender/internal/core"
)

func TestAutopilotLeavesScreens(t *testing.T) {
	tests := []struct {
		state   State
		restart bool
		want    []core.Command
	}{
		{StateMenu, false, []core.Command{core.CommandConfirm}},
		{StateLevelComplete, false, []core.Command{core.CommandConfirm}},
		{StateGameOver, false, nil},
		{StateGameOver, true, []core.Command{core.CommandRestart}},
		{StatePaused, true, nil},
	}

	for _, tt := range tests {
		a := &Autopilot{RestartOnGameOver: tt.restart}
		got := a.Decide(Snapshot{State: tt.state})
		if len(got) != len(tt.want) {
			t.Errorf("%v: expected %v, got %v", tt.state, tt.want, got)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%v: expected %v, got %v", tt.state, tt.want, got)
			}
		}
	}
}

func TestAutopilotChasesAndFires(t *testing.T) {
	player := EntityView{Kind: KindPlayer, X: 380, Y: 550, W: 40, H: 20}
	snap := Snapshot{
		State:    StatePlaying,
		FieldW:   800,
		FieldH:   600,
		Entities: []EntityView{player, {Kind: KindEnemy, X: 100, Y: 200, W: 30, H: 30}},
	}
	a := &Autopilot{}

	cmds := a.Decide(snap)
	if len(cmds) != 1 || cmds[0] != core.CommandMoveLeftStart {
		t.Fatalf("expected to steer left, got %v", cmds)
	}
	if cmds = a.Decide(snap); len(cmds) != 0 {
		t.Errorf("held direction must not be repeated, got %v", cmds)
	}

	snap.Entities[1].X = 385
	cmds = a.Decide(snap)
	if len(cmds) != 2 || cmds[0] != core.CommandMoveLeftStop || cmds[1] != core.CommandFire {
		t.Errorf("expected stop and fire when lined up, got %v", cmds)
	}
}
