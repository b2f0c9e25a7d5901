package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/burst/components"
	"github.com/pthm-cable/burst/config"
)

// FlightResult describes what happened to the flying bubble this tick.
type FlightResult struct {
	Bounced bool // Reflected off a side wall
	Settled bool // Reached the ceiling or touched a settled bubble
}

// AdvanceFlying moves the flying bubble one tick: apply velocity, reflect
// off the side walls, then test the settle conditions. Reflection is
// applied positionally first and the settle test runs against the
// reflected coordinates, so a bubble never settles straddling a wall.
func AdvanceFlying(self ecs.Entity, pos *components.Position, vel *components.Velocity, grid *Grid, posMap *ecs.Map1[components.Position], cfg *config.Config) FlightResult {
	var res FlightResult

	pos.X += vel.X
	pos.Y += vel.Y

	// Elastic wall bounce: flip vx, keep |vx|, clamp back in bounds so the
	// bubble can neither tunnel nor stick.
	r := cfg.Derived.Radius32
	w := cfg.Derived.ScreenW32
	if pos.X < r {
		pos.X = r
		if vel.X < 0 {
			vel.X = -vel.X
		}
		res.Bounced = true
	} else if pos.X > w-r {
		pos.X = w - r
		if vel.X > 0 {
			vel.X = -vel.X
		}
		res.Bounced = true
	}

	// Ceiling contact.
	if pos.Y <= r {
		pos.Y = r
		res.Settled = true
		return res
	}

	// Contact with any settled bubble.
	contact := FlightContactDist(cfg)
	for _, e := range grid.Entities() {
		if e == self {
			continue
		}
		gp := posMap.Get(e)
		if gp == nil {
			continue
		}
		if Dist(pos.X, pos.Y, gp.X, gp.Y) < contact {
			res.Settled = true
			return res
		}
	}

	return res
}
