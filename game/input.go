package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes pointer and keyboard input. The window is the
// logical canvas, so mouse coordinates need no mapping.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeyP) {
		g.paused = !g.paused
	}
	if g.paused {
		return
	}

	if g.phase == PhaseGameOver {
		if rl.IsKeyPressed(rl.KeyR) {
			g.Reset()
		}
		return
	}

	mouse := rl.GetMousePosition()
	g.Aim(mouse.X, mouse.Y)

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) || rl.IsKeyPressed(rl.KeySpace) {
		g.Shoot()
	}
}
