// Package components defines ECS components for the game.
package components

// Position represents a bubble's position in logical canvas space
// (origin top-left, 400x600 by default).
type Position struct {
	X, Y float32
}

// Velocity represents a bubble's velocity in px per tick.
type Velocity struct {
	X, Y float32
}

// Color identifies one entry of the fixed bubble palette.
type Color uint8

const (
	ColorRed Color = iota
	ColorYellow
	ColorGreen
	ColorBlue
	ColorPurple
	ColorOrange

	// NumColors is the full palette size; the active palette may be
	// configured smaller.
	NumColors = 6
)

// Role describes who owns a bubble this tick.
type Role uint8

const (
	RoleGrid    Role = iota // Settled, owned by the grid model
	RoleFlying              // The single in-flight projectile
	RoleFalling             // Detached, dropping out of the canvas
	RolePopping             // Match animation, render-only until countdown ends
)

// Bubble holds per-bubble state beyond position and velocity.
type Bubble struct {
	Color Color
	Role  Role

	// Grid cell address; only meaningful while Role == RoleGrid.
	Row, Col int16

	// Pop animation countdown in ticks; 0 when inactive. Scale and opacity
	// are interpolated linearly from the remaining fraction.
	PopFrames int16
}

// PopProgress returns the remaining animation fraction in [0, 1] given the
// configured countdown length. 1 means just started, 0 means finished.
func (b *Bubble) PopProgress(total int) float32 {
	if total <= 0 || b.PopFrames <= 0 {
		return 0
	}
	return float32(b.PopFrames) / float32(total)
}
