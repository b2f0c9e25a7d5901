// Package game owns the game aggregate: the ECS world, the phase machine,
// score, the single flying-bubble slot and the tick loop.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/burst/audio"
	"github.com/pthm-cable/burst/components"
	"github.com/pthm-cable/burst/config"
	"github.com/pthm-cable/burst/systems"
	"github.com/pthm-cable/burst/telemetry"
)

// Phase is the state of the per-tick state machine.
type Phase uint8

const (
	PhaseAiming   Phase = iota // No flying bubble; cannon angle follows input
	PhaseFlying                // Projectile in flight; aim input ignored
	PhaseResolving             // Settle + pop + gravity, synchronous within one tick
	PhaseGameOver              // Terminal; ticks are no-ops
)

// Outcome is the terminal result of a finished game.
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeLost
	OutcomeWon
)

// Options configures a game instance.
type Options struct {
	Seed      int64
	Headless  bool
	LogStats  bool
	OutputDir string
	Mute      bool

	// StatsWindowSec overrides config when > 0.
	StatsWindowSec float64
}

// Game holds the complete game state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand

	bubbleMapper *ecs.Map3[components.Position, components.Velocity, components.Bubble]
	bubbleFilter *ecs.Filter3[components.Position, components.Velocity, components.Bubble]
	posMap       *ecs.Map1[components.Position]
	velMap       *ecs.Map1[components.Velocity]
	bubMap       *ecs.Map1[components.Bubble]

	grid *systems.Grid

	phase     Phase
	outcome   Outcome
	score     int
	aimAngle  float32 // Radians; -pi/2 points straight up
	flying    ecs.Entity
	hasFlying bool
	nextColor components.Color

	palette []components.Color

	tick   int32
	paused bool

	collector *telemetry.Collector
	output    *telemetry.OutputManager
	sound     *audio.Manager

	opts Options
}

// NewGame creates a game instance. Config must be initialized first.
func NewGame(opts Options) *Game {
	cfg := config.Cfg()

	g := &Game{
		world: ecs.NewWorld(),
		rng:   rand.New(rand.NewSource(opts.Seed)),
		grid:  systems.NewGrid(),
		opts:  opts,
	}
	g.bubbleMapper = ecs.NewMap3[components.Position, components.Velocity, components.Bubble](g.world)
	g.bubbleFilter = ecs.NewFilter3[components.Position, components.Velocity, components.Bubble](g.world)
	g.posMap = ecs.NewMap1[components.Position](g.world)
	g.velMap = ecs.NewMap1[components.Velocity](g.world)
	g.bubMap = ecs.NewMap1[components.Bubble](g.world)

	n := cfg.Bubble.Colors
	if n < 1 || n > components.NumColors {
		n = components.NumColors
	}
	g.palette = make([]components.Color, n)
	for i := range g.palette {
		g.palette[i] = components.Color(i)
	}

	windowSec := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		windowSec = opts.StatsWindowSec
	}
	g.collector = telemetry.NewCollector(windowSec, cfg.Screen.TargetFPS)

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("telemetry output disabled", "error", err)
		} else {
			g.output = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("writing config snapshot", "error", err)
			}
		}
	}

	if !opts.Headless && !opts.Mute && cfg.Audio.Enabled {
		mgr, err := audio.NewManager(cfg.Audio.SampleRate, cfg.Audio.Volume)
		if err != nil {
			slog.Warn("audio unavailable, continuing silent", "error", err)
		} else {
			g.sound = mgr
		}
	}

	g.Reset()
	return g
}

// Reset clears the board and starts a fresh round with the same options.
func (g *Game) Reset() {
	var all []ecs.Entity
	query := g.bubbleFilter.Query()
	for query.Next() {
		all = append(all, query.Entity())
	}
	for _, e := range all {
		g.world.RemoveEntity(e)
	}

	g.grid = systems.NewGrid()
	g.score = 0
	g.outcome = OutcomeNone
	g.phase = PhaseAiming
	g.hasFlying = false
	g.aimAngle = -systems.Radians(90)
	g.paused = false

	g.spawnInitialGrid()
	g.nextColor = g.chooseShotColor()
}

// spawnInitialGrid fills the top rows with the fixed seeded layout.
func (g *Game) spawnInitialGrid() {
	cfg := config.Cfg()
	for row := int16(0); row < int16(cfg.Grid.InitialRows); row++ {
		for col := int16(0); col <= systems.MaxCol(row, cfg); col++ {
			x, y := systems.CellCenter(row, col, cfg)
			pos := components.Position{X: x, Y: y}
			vel := components.Velocity{}
			bub := components.Bubble{
				Color: g.palette[g.rng.Intn(len(g.palette))],
				Role:  components.RoleGrid,
				Row:   row,
				Col:   col,
			}
			e := g.bubbleMapper.NewEntity(&pos, &vel, &bub)
			g.grid.Add(e, row, col)
		}
	}
}

// chooseShotColor picks uniformly among colors on the board, or the full
// palette when the board is empty.
func (g *Game) chooseShotColor() components.Color {
	present := g.grid.ColorsPresent(g.bubMap)
	if len(present) == 0 {
		return g.palette[g.rng.Intn(len(g.palette))]
	}
	return present[g.rng.Intn(len(present))]
}

// Score returns the current score.
func (g *Game) Score() int { return g.score }

// Phase returns the current state machine phase.
func (g *Game) Phase() Phase { return g.phase }

// Outcome returns the terminal outcome, OutcomeNone while playing.
func (g *Game) Outcome() Outcome { return g.outcome }

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 { return g.tick }

// GridCount returns the number of settled bubbles.
func (g *Game) GridCount() int { return g.grid.Len() }

// Update runs one frame in graphical mode: input, then one simulation tick.
func (g *Game) Update() {
	g.handleInput()
	g.step()
}

// UpdateHeadless runs one frame without graphics, using the autoplayer to
// drive the cannon.
func (g *Game) UpdateHeadless() {
	g.autoplay()
	g.step()
}

// step advances the simulation one tick. The whole sequence (advance,
// collide, settle, pop, gravity, win/loss) is synchronous; nothing yields
// mid-tick.
func (g *Game) step() {
	if g.paused {
		return
	}
	if g.phase == PhaseGameOver {
		// Terminal; keep transients draining so pop animations finish.
		g.updateTransients()
		return
	}

	if g.phase == PhaseFlying && g.hasFlying {
		pos := g.posMap.Get(g.flying)
		vel := g.velMap.Get(g.flying)
		res := systems.AdvanceFlying(g.flying, pos, vel, g.grid, g.posMap, config.Cfg())
		if res.Bounced {
			g.collector.RecordBounce()
			g.sound.Play(audio.CueBounce)
		}
		if res.Settled {
			g.settle()
		}
	}

	g.updateTransients()
	g.flushTelemetry()
	g.tick++
}

// Unload releases audio and telemetry resources.
func (g *Game) Unload() {
	if g.sound != nil {
		g.sound.Close()
	}
	if g.output != nil {
		if err := g.output.Close(); err != nil {
			slog.Error("closing telemetry output", "error", err)
		}
	}
}
