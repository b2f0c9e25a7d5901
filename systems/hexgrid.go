package systems

import (
	"math"

	"github.com/pthm-cable/burst/config"
)

// Snapped is a position aligned to the staggered hex lattice.
type Snapped struct {
	X, Y     float32
	Row, Col int16
}

// RowHeight returns the vertical distance between adjacent rows:
// diameter * sqrt(3)/2.
func RowHeight(cfg *config.Config) float32 {
	return cfg.Derived.RowHeight32
}

// rowOffset returns the horizontal stagger for a row: odd rows are shifted
// right by one radius.
func rowOffset(row int16, radius float32) float32 {
	if row%2 != 0 {
		return radius
	}
	return 0
}

// MaxCol returns the last valid column index for a row. Odd rows lose one
// slot to the stagger.
func MaxCol(row int16, cfg *config.Config) int16 {
	max := int16(cfg.Derived.Cols - 1)
	if row%2 != 0 {
		max--
	}
	return max
}

// CellCenter returns the pixel center of a hex cell.
func CellCenter(row, col int16, cfg *config.Config) (x, y float32) {
	r := cfg.Derived.Radius32
	x = r + rowOffset(row, r) + float32(col)*cfg.Derived.Diameter32
	y = r + float32(row)*cfg.Derived.RowHeight32
	return x, y
}

// SnapToHex maps a logical position to the nearest hex cell and its exact
// center. Snapping a snapped position returns the identical cell and
// center, so settled bubbles can be re-addressed from their stored
// coordinates.
func SnapToHex(x, y float32, cfg *config.Config) Snapped {
	r := cfg.Derived.Radius32

	row := int16(math.Round(float64((y - r) / cfg.Derived.RowHeight32)))
	if row < 0 {
		row = 0
	}

	off := rowOffset(row, r)
	col := int16(math.Round(float64((x - r - off) / cfg.Derived.Diameter32)))
	if col < 0 {
		col = 0
	}
	if max := MaxCol(row, cfg); col > max {
		col = max
	}

	sx, sy := CellCenter(row, col, cfg)
	return Snapped{X: sx, Y: sy, Row: row, Col: col}
}
