package defender

// World owns every live entity. Collections keep insertion order, which is
// also the collision resolution order.
type World struct {
	Player      *Player
	Enemies     []*Enemy
	PlayerShots []*Projectile
	EnemyShots  []*Projectile
	PowerUps    []*PowerUp
	Particles   []*Particle
}

// NewWorld creates an empty world around the given player.
func NewWorld(player *Player) *World {
	w := &World{}
	w.Reset(player)
	return w
}

// Reset drops every entity and installs a fresh player.
func (w *World) Reset(player *Player) {
	w.Player = player
	w.Enemies = nil
	w.PlayerShots = nil
	w.EnemyShots = nil
	w.PowerUps = nil
	w.Particles = nil
}

// AddEnemy appends an enemy.
func (w *World) AddEnemy(e *Enemy) {
	w.Enemies = append(w.Enemies, e)
}

// AddProjectile routes a projectile to its owner's collection.
func (w *World) AddProjectile(p *Projectile) {
	if p.Owner == OwnerEnemy {
		w.EnemyShots = append(w.EnemyShots, p)
		return
	}
	w.PlayerShots = append(w.PlayerShots, p)
}

// AddPowerUp appends a power-up.
func (w *World) AddPowerUp(p *PowerUp) {
	w.PowerUps = append(w.PowerUps, p)
}

// AddParticle appends a particle.
func (w *World) AddParticle(p *Particle) {
	w.Particles = append(w.Particles, p)
}

// EntityCount returns the number of non-player entities.
func (w *World) EntityCount() int {
	return len(w.Enemies) + len(w.PlayerShots) + len(w.EnemyShots) + len(w.PowerUps) + len(w.Particles)
}

// retain returns a new slice with the items for which keep is true.
// The input slice is never modified, so callers may keep iterating it.
func retain[T any](items []T, keep func(T) bool) []T {
	if len(items) == 0 {
		return items
	}
	kept := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			kept = append(kept, it)
		}
	}
	return kept
}
