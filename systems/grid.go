package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/burst/components"
	"github.com/pthm-cable/burst/config"
)

// Cell addresses one slot of the staggered hex lattice.
type Cell struct {
	Row, Col int16
}

// Grid is the authoritative set of settled bubbles, keyed by hex cell.
// Neighbor relations are geometric and recomputed per query; nothing here
// stores adjacency. The board stays small (≤ ~50 bubbles), so linear scans
// are fine.
type Grid struct {
	cells map[Cell]ecs.Entity
}

// NewGrid creates an empty grid model.
func NewGrid() *Grid {
	return &Grid{cells: make(map[Cell]ecs.Entity, 64)}
}

// Add places an entity at the given cell. Returns false if the cell is
// already occupied; callers resolve placement to a free cell first.
func (g *Grid) Add(e ecs.Entity, row, col int16) bool {
	key := Cell{Row: row, Col: col}
	if _, taken := g.cells[key]; taken {
		return false
	}
	g.cells[key] = e
	return true
}

// Remove clears the given cell.
func (g *Grid) Remove(row, col int16) {
	delete(g.cells, Cell{Row: row, Col: col})
}

// At returns the entity occupying a cell.
func (g *Grid) At(row, col int16) (ecs.Entity, bool) {
	e, ok := g.cells[Cell{Row: row, Col: col}]
	return e, ok
}

// Occupied reports whether a cell holds a bubble.
func (g *Grid) Occupied(row, col int16) bool {
	_, ok := g.cells[Cell{Row: row, Col: col}]
	return ok
}

// Len returns the number of settled bubbles.
func (g *Grid) Len() int {
	return len(g.cells)
}

// IsEmpty reports whether the board is cleared.
func (g *Grid) IsEmpty() bool {
	return len(g.cells) == 0
}

// Entities returns all settled bubbles in container order.
func (g *Grid) Entities() []ecs.Entity {
	out := make([]ecs.Entity, 0, len(g.cells))
	for _, e := range g.cells {
		out = append(out, e)
	}
	return out
}

// AdjacencyDist is the neighbor threshold between settled bubbles. Lattice
// neighbors sit at exactly one diameter, so the tolerance is added here to
// absorb float error; the flight contact test subtracts it instead (see
// FlightContactDist).
func AdjacencyDist(cfg *config.Config) float32 {
	return cfg.Derived.Diameter32 + float32(cfg.Bubble.OverlapTolerance)
}

// FlightContactDist is the contact threshold between a moving bubble and a
// settled one: sum of radii minus the overlap tolerance, so a shot must
// visibly touch before it settles.
func FlightContactDist(cfg *config.Config) float32 {
	return cfg.Derived.Diameter32 - float32(cfg.Bubble.OverlapTolerance)
}

// NeighborsOf returns all settled bubbles within contactDist of (x, y),
// excluding the given entity. Purely geometric; visitation order follows
// map iteration, which is fine for undirected reachability.
func (g *Grid) NeighborsOf(x, y float32, exclude ecs.Entity, posMap *ecs.Map1[components.Position], contactDist float32) []ecs.Entity {
	var out []ecs.Entity
	for _, e := range g.cells {
		if e == exclude {
			continue
		}
		pos := posMap.Get(e)
		if pos == nil {
			continue
		}
		if Dist(x, y, pos.X, pos.Y) < contactDist {
			out = append(out, e)
		}
	}
	return out
}

// ColorsPresent returns the distinct colors currently on the board. Shot
// color selection draws from this set so late-game shots can always match
// something.
func (g *Grid) ColorsPresent(bubMap *ecs.Map1[components.Bubble]) []components.Color {
	var seen [components.NumColors]bool
	var out []components.Color
	for _, e := range g.cells {
		b := bubMap.Get(e)
		if b == nil || seen[b.Color] {
			continue
		}
		seen[b.Color] = true
		out = append(out, b.Color)
	}
	return out
}

// NearestFreeCell finds the unoccupied cell closest to (x, y), searching
// the snapped cell first and widening over nearby rows. The fallback over
// the whole board keeps insertion total even on a pathological layout.
func (g *Grid) NearestFreeCell(x, y float32, cfg *config.Config) Snapped {
	snap := SnapToHex(x, y, cfg)
	if !g.Occupied(snap.Row, snap.Col) {
		return snap
	}

	best, found := g.scanRows(x, y, snap.Row-2, snap.Row+2, cfg)
	if found {
		return best
	}

	// Board-wide fallback; bounded by the loss line, below which nothing
	// can settle anyway.
	maxRow := int16(cfg.Derived.LossLineY/cfg.Derived.RowHeight32) + 1
	best, _ = g.scanRows(x, y, 0, maxRow, cfg)
	return best
}

func (g *Grid) scanRows(x, y float32, fromRow, toRow int16, cfg *config.Config) (Snapped, bool) {
	var best Snapped
	bestDist := float32(math.MaxFloat32)
	found := false

	if fromRow < 0 {
		fromRow = 0
	}
	for row := fromRow; row <= toRow; row++ {
		for col := int16(0); col <= MaxCol(row, cfg); col++ {
			if g.Occupied(row, col) {
				continue
			}
			cx, cy := CellCenter(row, col, cfg)
			d := Dist(x, y, cx, cy)
			if d < bestDist {
				bestDist = d
				best = Snapped{X: cx, Y: cy, Row: row, Col: col}
				found = true
			}
		}
	}
	return best, found
}
