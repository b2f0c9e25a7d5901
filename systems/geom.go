// Package systems provides the pure simulation systems of the game:
// hex-grid geometry, the grid model, flight collision and the
// match/gravity resolvers.
package systems

import "math"

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * math.Pi / 180
}

// Dist returns the Euclidean distance between two points.
func Dist(x1, y1, x2, y2 float32) float32 {
	dx := x2 - x1
	dy := y2 - y1
	return float32(math.Sqrt(float64(dx*dx + dy*dy)))
}
