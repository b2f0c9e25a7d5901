package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/burst/components"
	"github.com/pthm-cable/burst/config"
	"github.com/pthm-cable/burst/ui"
)

// bubbleColors maps palette entries to render colors.
var bubbleColors = [components.NumColors]rl.Color{
	{R: 224, G: 72, B: 72, A: 255},  // red
	{R: 235, G: 200, B: 70, A: 255}, // yellow
	{R: 88, G: 190, B: 96, A: 255},  // green
	{R: 80, G: 130, B: 230, A: 255}, // blue
	{R: 170, G: 90, B: 220, A: 255}, // purple
	{R: 235, G: 140, B: 60, A: 255}, // orange
}

var backgroundColor = rl.Color{R: 24, G: 26, B: 38, A: 255}

// Draw renders the current frame.
func (g *Game) Draw() {
	cfg := config.Cfg()

	rl.BeginDrawing()
	rl.ClearBackground(backgroundColor)

	g.drawLossLine(cfg)
	g.drawBubbles(cfg)
	g.drawCannon(cfg)

	ui.DrawHUD(g.score, g.paused)

	if g.phase == PhaseGameOver {
		if ui.DrawGameOver(g.outcome == OutcomeWon, g.score) {
			g.Reset()
		}
	}

	rl.EndDrawing()
}

// drawBubbles renders every bubble entity; popping bubbles shrink and fade
// with their countdown.
func (g *Game) drawBubbles(cfg *config.Config) {
	r := cfg.Derived.Radius32

	query := g.bubbleFilter.Query()
	for query.Next() {
		pos, _, bub := query.Get()

		col := bubbleColors[bub.Color]
		radius := r
		if bub.Role == components.RolePopping {
			p := bub.PopProgress(cfg.Bubble.PopFrames)
			col = rl.Fade(col, p)
			radius = r * p
			if radius <= 0 {
				continue
			}
		}

		center := rl.Vector2{X: pos.X, Y: pos.Y}
		rl.DrawCircleV(center, radius, col)
		rl.DrawCircleLines(int32(pos.X), int32(pos.Y), radius, rl.Fade(rl.White, 0.35))
	}
}

// drawCannon renders the barrel, the loaded bubble and the aim guide.
func (g *Game) drawCannon(cfg *config.Config) {
	cx := cfg.Derived.CannonX
	cy := cfg.Derived.CannonY

	// Barrel: rotated about the pivot, pointing along the aim.
	rotation := g.aimAngle*180/math.Pi + 90
	barrel := rl.Rectangle{X: cx, Y: cy, Width: 10, Height: 46}
	rl.DrawRectanglePro(barrel, rl.Vector2{X: 5, Y: 46}, rotation, rl.Gray)

	if g.phase == PhaseAiming {
		guideLen := float32(60)
		end := rl.Vector2{
			X: cx + float32(math.Cos(float64(g.aimAngle)))*guideLen,
			Y: cy + float32(math.Sin(float64(g.aimAngle)))*guideLen,
		}
		rl.DrawLineEx(rl.Vector2{X: cx, Y: cy}, end, 2, rl.Fade(rl.White, 0.4))

		// Loaded bubble preview.
		rl.DrawCircleV(rl.Vector2{X: cx, Y: cy}, cfg.Derived.Radius32*0.8, bubbleColors[g.nextColor])
	}
}

// drawLossLine marks the line grid bubbles must stay above.
func (g *Game) drawLossLine(cfg *config.Config) {
	y := cfg.Derived.LossLineY
	rl.DrawLineEx(
		rl.Vector2{X: 0, Y: y},
		rl.Vector2{X: cfg.Derived.ScreenW32, Y: y},
		1,
		rl.Fade(rl.Red, 0.45),
	)
}
