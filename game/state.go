package game

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/burst/audio"
	"github.com/pthm-cable/burst/components"
	"github.com/pthm-cable/burst/config"
	"github.com/pthm-cable/burst/systems"
)

// Aim updates the cannon angle from a logical-space pointer position.
// Positions at or below the cannon's horizontal are ignored; the angle only
// ever points into the upper half-plane.
func (g *Game) Aim(px, py float32) {
	if g.paused || g.phase != PhaseAiming {
		return
	}
	cfg := config.Cfg()
	dx := px - cfg.Derived.CannonX
	dy := py - cfg.Derived.CannonY
	if dy >= 0 {
		return
	}
	g.aimAngle = float32(math.Atan2(float64(dy), float64(dx)))
}

// Shoot fires the loaded bubble along the current aim. Only valid while
// aiming with an upward angle; anything else is a no-op, not an error.
func (g *Game) Shoot() {
	if g.paused || g.phase != PhaseAiming {
		return
	}
	sin := float32(math.Sin(float64(g.aimAngle)))
	if sin >= 0 {
		return
	}
	cfg := config.Cfg()
	speed := float32(cfg.Bubble.ShotSpeed)

	pos := components.Position{X: cfg.Derived.CannonX, Y: cfg.Derived.CannonY}
	vel := components.Velocity{
		X: float32(math.Cos(float64(g.aimAngle))) * speed,
		Y: sin * speed,
	}
	bub := components.Bubble{Color: g.nextColor, Role: components.RoleFlying}

	g.flying = g.bubbleMapper.NewEntity(&pos, &vel, &bub)
	g.hasFlying = true
	g.phase = PhaseFlying

	g.collector.RecordShot()
	g.sound.Play(audio.CueShoot)
}

// settle converts the flying bubble into a grid member and runs the full
// resolve sequence: pop pass, then gravity pass, then win/loss. All of it
// completes within the current tick.
func (g *Game) settle() {
	cfg := config.Cfg()
	g.phase = PhaseResolving

	seed := g.flying
	g.hasFlying = false

	pos := g.posMap.Get(seed)
	bub := g.bubMap.Get(seed)
	vel := g.velMap.Get(seed)

	snap := g.grid.NearestFreeCell(pos.X, pos.Y, cfg)
	pos.X, pos.Y = snap.X, snap.Y
	vel.X, vel.Y = 0, 0
	bub.Role = components.RoleGrid
	bub.Row, bub.Col = snap.Row, snap.Col
	g.grid.Add(seed, snap.Row, snap.Col)

	// Pop pass: the seed's same-color component, if big enough. Score
	// updates once for the whole cluster, before the gravity pass starts.
	cluster := systems.SameColorCluster(seed, g.grid, g.posMap, g.bubMap, cfg)
	if len(cluster) >= systems.MinClusterSize {
		for _, e := range cluster {
			b := g.bubMap.Get(e)
			g.grid.Remove(b.Row, b.Col)
			b.Role = components.RolePopping
			b.PopFrames = int16(cfg.Bubble.PopFrames)
		}
		g.score += len(cluster) * cfg.Score.Pop
		g.collector.RecordPop(len(cluster), len(cluster)*cfg.Score.Pop)
		g.sound.Play(audio.CuePop)
	}

	// Gravity pass on the post-pop grid: everything that lost its ceiling
	// anchor falls.
	floating := systems.FloatingBubbles(g.grid, g.posMap, cfg)
	if len(floating) > 0 {
		fall := float32(cfg.Bubble.FallSpeed)
		for _, e := range floating {
			b := g.bubMap.Get(e)
			g.grid.Remove(b.Row, b.Col)
			b.Role = components.RoleFalling
			v := g.velMap.Get(e)
			v.X, v.Y = 0, fall
		}
		g.score += len(floating) * cfg.Score.Drop
		g.collector.RecordDrop(len(floating), len(floating)*cfg.Score.Drop)
		g.sound.Play(audio.CueDrop)
	}

	g.checkEnd()
}

// checkEnd evaluates the terminal conditions, once per settle. The loss
// test is inclusive: a grid bubble whose lower edge sits exactly on the
// loss line loses the game. Falling and popping bubbles do not count.
func (g *Game) checkEnd() {
	cfg := config.Cfg()
	r := cfg.Derived.Radius32

	for _, e := range g.grid.Entities() {
		pos := g.posMap.Get(e)
		if pos != nil && pos.Y+r >= cfg.Derived.LossLineY {
			g.phase = PhaseGameOver
			g.outcome = OutcomeLost
			g.sound.Play(audio.CueLost)
			return
		}
	}

	if g.grid.IsEmpty() && !g.hasFlying {
		g.phase = PhaseGameOver
		g.outcome = OutcomeWon
		g.sound.Play(audio.CueWon)
		return
	}

	g.phase = PhaseAiming
	g.nextColor = g.chooseShotColor()
}

// updateTransients advances falling and popping bubbles and removes the
// finished ones. Removal is an explicit second pass; entities never leave
// the world while a query is iterating.
func (g *Game) updateTransients() {
	cfg := config.Cfg()
	// A falling bubble leaves playable bounds once its top edge passes the
	// bottom of the canvas.
	bottom := cfg.Derived.ScreenH32

	var done []ecs.Entity
	query := g.bubbleFilter.Query()
	for query.Next() {
		pos, vel, bub := query.Get()
		switch bub.Role {
		case components.RoleFalling:
			pos.X += vel.X
			pos.Y += vel.Y
			if pos.Y-cfg.Derived.Radius32 > bottom {
				done = append(done, query.Entity())
			}
		case components.RolePopping:
			bub.PopFrames--
			if bub.PopFrames <= 0 {
				done = append(done, query.Entity())
			}
		}
	}

	for _, e := range done {
		g.world.RemoveEntity(e)
	}
}
