package game

import "github.com/pthm-cable/burst/systems"

// autoplay drives the cannon in headless runs: whenever the game is
// aiming, pick a random upward angle and fire. Seeded by Options.Seed, so
// headless runs are reproducible.
func (g *Game) autoplay() {
	if g.phase != PhaseAiming {
		return
	}
	// Keep away from the exact horizontal so the shot always rises.
	deg := 10 + g.rng.Float32()*160
	g.aimAngle = -systems.Radians(deg)
	g.Shoot()
}
