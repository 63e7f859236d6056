package defender

import (
	"math/rand"
	"testing"
	"time"

	"github.com/vovakirdan/dos-defender/internal/config"
)

func TestSpawnDirectorQuota(t *testing.T) {
	cfg := config.DefaultDefenderConfig()
	cfg.Spawn.BaseQuota = 3
	d := NewSpawnDirector(cfg, rand.New(rand.NewSource(1))) //#nosec G404 -- test
	var sched Scheduler
	d.Begin(1)
	d.Arm(&sched, testEpoch)

	for i := range 3 {
		if e := d.Fire(&sched, 0, 800, testEpoch); e == nil {
			t.Fatalf("spawn %d blocked", i)
		}
	}
	if !d.Exhausted() {
		t.Error("director should be exhausted after the quota")
	}
	if sched.Active(SlotSpawn) {
		t.Error("spawn timer must be cancelled at the quota")
	}

	d.Arm(&sched, testEpoch)
	if sched.Active(SlotSpawn) {
		t.Error("an exhausted director must not re-arm")
	}
}

func TestSpawnDirectorEnemiesInBounds(t *testing.T) {
	cfg := config.DefaultDefenderConfig()
	cfg.Spawn.BaseQuota = 500
	cfg.Enemies.ShooterChance = 1
	cfg.Enemies.ShooterChanceMax = 1
	d := NewSpawnDirector(cfg, rand.New(rand.NewSource(99))) //#nosec G404 -- test
	var sched Scheduler
	d.Begin(1)

	interval := time.Duration(cfg.Enemies.FireIntervalMs * float64(time.Millisecond))
	patterns := make(map[MovementPattern]int)
	for range 500 {
		e := d.Fire(&sched, 0, 800, testEpoch)
		if e == nil {
			t.Fatal("spawn blocked")
		}
		patterns[e.Movement.Pattern]++
		if e.Box.Y != -cfg.Enemies.Height {
			t.Fatalf("expected y=%v, got %v", -cfg.Enemies.Height, e.Box.Y)
		}
		if e.Box.X < -1e-9 || e.Box.X > 770+1e-9 {
			t.Fatalf("x %v outside [0, 770]", e.Box.X)
		}
		if e.Movement.Pattern == PatternSine {
			m := e.Movement
			if m.OriginX-m.Amplitude < -1e-9 || m.OriginX+m.Amplitude > 770+1e-9 {
				t.Fatalf("sine drift [%v, %v] leaves the playfield", m.OriginX-m.Amplitude, m.OriginX+m.Amplitude)
			}
		}
		if e.Movement.Pattern == PatternBounce && e.Movement.Direction != 1 && e.Movement.Direction != -1 {
			t.Fatalf("bounce direction %v", e.Movement.Direction)
		}
		if !e.Shooter {
			t.Fatal("expected every enemy to shoot")
		}
		first := e.NextFireAt.Sub(testEpoch)
		if first < interval/2 || first > interval*3/2 {
			t.Fatalf("first shot delay %v outside [%v, %v]", first, interval/2, interval*3/2)
		}
	}
	for p := range patternCount {
		if patterns[p] == 0 {
			t.Errorf("pattern %v never spawned", p)
		}
	}
}

func TestSpawnDirectorCap(t *testing.T) {
	cfg := config.DefaultDefenderConfig()
	d := NewSpawnDirector(cfg, rand.New(rand.NewSource(1))) //#nosec G404 -- test
	var sched Scheduler
	d.Begin(1)

	if e := d.Fire(&sched, cfg.Spawn.MaxConcurrent, 800, testEpoch); e != nil {
		t.Error("spawn above the cap must be blocked")
	}
	if d.Spawned() != 0 {
		t.Errorf("blocked spawn counted: %d", d.Spawned())
	}
}

func TestSpawnDirectorNarrowField(t *testing.T) {
	cfg := config.DefaultDefenderConfig()
	d := NewSpawnDirector(cfg, rand.New(rand.NewSource(3))) //#nosec G404 -- test
	var sched Scheduler
	d.Begin(1)

	sched.Schedule(SlotSpawn, testEpoch, time.Second, time.Second)

	// Narrower than an enemy: everything pins to x=0.
	for i := range d.Quota() {
		e := d.Fire(&sched, 0, 20, testEpoch)
		if e == nil {
			t.Fatalf("spawn %d: expected an enemy before the quota is reached", i)
		}
		if e.Box.X != 0 {
			t.Fatalf("expected x=0 on a narrow field, got %v", e.Box.X)
		}
	}

	if !d.Exhausted() {
		t.Fatal("director should be exhausted after spawning its quota")
	}
	if e := d.Fire(&sched, 0, 20, testEpoch); e != nil {
		t.Errorf("exhausted director must not spawn, got %+v", e)
	}
	if sched.Active(SlotSpawn) {
		t.Error("spawn timer must be cancelled once the quota is exhausted")
	}
}
