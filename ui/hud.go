// Package ui draws the HUD and the game-over panel.
package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/burst/config"
)

// DrawHUD renders the score readout and pause marker.
func DrawHUD(score int, paused bool) {
	rl.DrawText(fmt.Sprintf("Score: %d", score), 10, 10, 20, rl.White)
	if paused {
		rl.DrawText("PAUSED", 10, 35, 20, rl.Yellow)
	}
}

// DrawGameOver renders the terminal panel with the outcome and final
// score. Returns true when the restart button is clicked.
func DrawGameOver(won bool, score int) bool {
	cfg := config.Cfg()
	w := cfg.Derived.ScreenW32
	h := cfg.Derived.ScreenH32

	panel := rl.Rectangle{X: w/2 - 120, Y: h/2 - 80, Width: 240, Height: 160}

	title := "GAME OVER"
	if won {
		title = "YOU WIN"
	}
	gui.Panel(panel, title)

	msg := fmt.Sprintf("Final score: %d", score)
	textW := rl.MeasureText(msg, 20)
	rl.DrawText(msg, int32(w/2)-textW/2, int32(panel.Y)+60, 20, rl.White)

	button := rl.Rectangle{X: w/2 - 60, Y: panel.Y + 100, Width: 120, Height: 32}
	return gui.Button(button, "Play Again")
}
