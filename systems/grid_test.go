package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/burst/components"
	"github.com/pthm-cable/burst/config"
)

// testEnv bundles an ECS world with the mappers the grid systems need.
type testEnv struct {
	world  *ecs.World
	mapper *ecs.Map3[components.Position, components.Velocity, components.Bubble]
	posMap *ecs.Map1[components.Position]
	bubMap *ecs.Map1[components.Bubble]
}

func newTestEnv() *testEnv {
	env := &testEnv{world: ecs.NewWorld()}
	env.mapper = ecs.NewMap3[components.Position, components.Velocity, components.Bubble](env.world)
	env.posMap = ecs.NewMap1[components.Position](env.world)
	env.bubMap = ecs.NewMap1[components.Bubble](env.world)
	return env
}

// place creates a settled bubble at the given cell.
func (env *testEnv) place(t *testing.T, grid *Grid, row, col int16, color components.Color, cfg *config.Config) ecs.Entity {
	t.Helper()
	x, y := CellCenter(row, col, cfg)
	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{}
	bub := components.Bubble{Color: color, Role: components.RoleGrid, Row: row, Col: col}
	e := env.mapper.NewEntity(&pos, &vel, &bub)
	if !grid.Add(e, row, col) {
		t.Fatalf("cell (%d,%d) already occupied", row, col)
	}
	return e
}

func TestGridAddRejectsOccupiedCell(t *testing.T) {
	cfg := testConfig(t)
	env := newTestEnv()
	grid := NewGrid()

	env.place(t, grid, 0, 0, components.ColorRed, cfg)

	x, y := CellCenter(0, 0, cfg)
	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{}
	bub := components.Bubble{Color: components.ColorBlue, Role: components.RoleGrid}
	e := env.mapper.NewEntity(&pos, &vel, &bub)

	if grid.Add(e, 0, 0) {
		t.Error("Add succeeded on an occupied cell")
	}
	if grid.Len() != 1 {
		t.Errorf("Len = %d, want 1", grid.Len())
	}
}

func TestGridNeighbors(t *testing.T) {
	cfg := testConfig(t)
	env := newTestEnv()
	grid := NewGrid()

	center := env.place(t, grid, 1, 4, components.ColorRed, cfg)
	sameRow := env.place(t, grid, 1, 5, components.ColorBlue, cfg)
	above := env.place(t, grid, 0, 4, components.ColorGreen, cfg)
	far := env.place(t, grid, 4, 1, components.ColorRed, cfg)

	x, y := CellCenter(1, 4, cfg)
	got := grid.NeighborsOf(x, y, center, env.posMap, AdjacencyDist(cfg))

	want := map[ecs.Entity]bool{sameRow: true, above: true}
	if len(got) < 2 {
		t.Fatalf("NeighborsOf returned %d entities, want at least 2", len(got))
	}
	for _, e := range got {
		if e == far {
			t.Error("distant bubble returned as neighbor")
		}
		if e == center {
			t.Error("NeighborsOf returned the excluded entity")
		}
		delete(want, e)
	}
	if len(want) != 0 {
		t.Errorf("missing %d expected neighbors", len(want))
	}
}

func TestColorsPresent(t *testing.T) {
	cfg := testConfig(t)
	env := newTestEnv()
	grid := NewGrid()

	if got := grid.ColorsPresent(env.bubMap); len(got) != 0 {
		t.Errorf("empty grid ColorsPresent = %v, want empty", got)
	}

	env.place(t, grid, 0, 0, components.ColorRed, cfg)
	env.place(t, grid, 0, 1, components.ColorRed, cfg)
	env.place(t, grid, 0, 2, components.ColorBlue, cfg)

	got := grid.ColorsPresent(env.bubMap)
	if len(got) != 2 {
		t.Fatalf("ColorsPresent = %v, want exactly red and blue", got)
	}
	seen := map[components.Color]bool{}
	for _, c := range got {
		seen[c] = true
	}
	if !seen[components.ColorRed] || !seen[components.ColorBlue] {
		t.Errorf("ColorsPresent = %v, want red and blue", got)
	}
}

func TestNearestFreeCellResolvesCollision(t *testing.T) {
	cfg := testConfig(t)
	env := newTestEnv()
	grid := NewGrid()

	env.place(t, grid, 0, 4, components.ColorRed, cfg)

	// Exactly on the occupied center; must land on a free cell nearby.
	x, y := CellCenter(0, 4, cfg)
	snap := grid.NearestFreeCell(x, y, cfg)

	if grid.Occupied(snap.Row, snap.Col) {
		t.Fatalf("NearestFreeCell returned occupied cell (%d,%d)", snap.Row, snap.Col)
	}
	if d := Dist(x, y, snap.X, snap.Y); d > 2*cfg.Derived.Diameter32 {
		t.Errorf("free cell unreasonably far: %v px", d)
	}

	// An empty grid snaps straight to the nearest cell.
	grid2 := NewGrid()
	snap2 := grid2.NearestFreeCell(x, y, cfg)
	if snap2.Row != 0 || snap2.Col != 4 {
		t.Errorf("empty grid snapped to (%d,%d), want (0,4)", snap2.Row, snap2.Col)
	}
}

func TestGridRemove(t *testing.T) {
	cfg := testConfig(t)
	env := newTestEnv()
	grid := NewGrid()

	env.place(t, grid, 2, 3, components.ColorGreen, cfg)
	if grid.IsEmpty() {
		t.Fatal("grid empty after placement")
	}

	grid.Remove(2, 3)
	if !grid.IsEmpty() {
		t.Error("grid not empty after removal")
	}
	if _, ok := grid.At(2, 3); ok {
		t.Error("At returned entity for cleared cell")
	}
}
