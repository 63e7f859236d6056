package defender

import (
	"math"
	"testing"

	"github.com/vovakirdan/dos-defender/internal/core"
)

func TestMoveProjectileByOwner(t *testing.T) {
	tests := []struct {
		owner Owner
		wantY float64
	}{
		{OwnerPlayer, 93},
		{OwnerEnemy, 107},
	}

	for _, tt := range tests {
		p := &Projectile{Box: core.NewRect(0, 100, 4, 10), Owner: tt.owner, Speed: 7}
		moveProjectile(p, 1)
		if p.Box.Y != tt.wantY {
			t.Errorf("owner %v: expected y=%v, got %v", tt.owner, tt.wantY, p.Box.Y)
		}
	}
}

func TestMoveEnemyLinear(t *testing.T) {
	e := &Enemy{Box: core.NewRect(100, 0, 30, 30), Speed: 2}
	moveEnemy(e, 3, 800)
	if e.Box.X != 100 || e.Box.Y != 6 {
		t.Errorf("expected (100, 6), got (%v, %v)", e.Box.X, e.Box.Y)
	}
}

func TestMoveEnemyBounce(t *testing.T) {
	tests := []struct {
		name    string
		x       float64
		dir     float64
		wantX   float64
		wantDir float64
	}{
		{"drifts right", 100, 1, 101, 1},
		{"drifts left", 100, -1, 99, -1},
		{"flips at right wall", 769.5, 1, 770, -1},
		{"flips at left wall", 0.5, -1, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Enemy{
				Box:      core.NewRect(tt.x, 0, 30, 30),
				Speed:    2,
				Movement: Movement{Pattern: PatternBounce, Direction: tt.dir},
			}
			moveEnemy(e, 1, 800)
			if e.Box.X != tt.wantX {
				t.Errorf("expected x=%v, got %v", tt.wantX, e.Box.X)
			}
			if e.Movement.Direction != tt.wantDir {
				t.Errorf("expected direction %v, got %v", tt.wantDir, e.Movement.Direction)
			}
		})
	}
}

func TestMoveEnemySine(t *testing.T) {
	e := &Enemy{
		Box:      core.NewRect(200, 0, 30, 30),
		Speed:    10,
		Movement: Movement{Pattern: PatternSine, Amplitude: 40, Frequency: 0.05, OriginX: 200},
	}
	moveEnemy(e, 1, 800)

	want := 200 + 40*math.Sin(10*0.05)
	if math.Abs(e.Box.X-want) > 1e-9 {
		t.Errorf("expected x=%v, got %v", want, e.Box.X)
	}
}

func TestMoveParticleFades(t *testing.T) {
	p := &Particle{X: 10, Y: 10, VX: 1, VY: -2, Size: 1, Opacity: 1}
	moveParticle(p, 2, 0.25, 0.1)
	if p.X != 12 || p.Y != 6 {
		t.Errorf("expected (12, 6), got (%v, %v)", p.X, p.Y)
	}
	if p.Size != 0.5 || math.Abs(p.Opacity-0.8) > 1e-9 {
		t.Errorf("expected size 0.5 opacity 0.8, got %v %v", p.Size, p.Opacity)
	}

	moveParticle(p, 4, 0.25, 0.1)
	if p.Alive() {
		t.Error("particle with no size must be dead")
	}
	if p.Size != 0 {
		t.Errorf("size must not go negative, got %v", p.Size)
	}
}

func TestFrameScale(t *testing.T) {
	if got := frameScale(1000.0/60.0, 1000.0/60.0); got != 1 {
		t.Errorf("expected 1, got %v", got)
	}
	if got := frameScale(0, 1000.0/60.0); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
}

func TestRetainKeepsOrder(t *testing.T) {
	in := []int{1, 2, 3, 4, 5, 6}
	out := retain(in, func(v int) bool { return v%2 == 0 })

	want := []int{2, 4, 6}
	if len(out) != len(want) {
		t.Fatalf("expected %v, got %v", want, out)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("index %d: expected %d, got %d", i, want[i], out[i])
		}
	}
	if in[1] != 2 || len(in) != 6 {
		t.Error("retain must not modify its input")
	}
}
