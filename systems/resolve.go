package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/burst/components"
	"github.com/pthm-cable/burst/config"
)

// MinClusterSize is the smallest same-color component that pops.
const MinClusterSize = 3

// SameColorCluster returns the connected component of settled bubbles with
// the seed's color, including the seed. Breadth-first over the geometric
// neighbor relation; visitation order does not affect the resulting set.
func SameColorCluster(seed ecs.Entity, grid *Grid, posMap *ecs.Map1[components.Position], bubMap *ecs.Map1[components.Bubble], cfg *config.Config) []ecs.Entity {
	seedBub := bubMap.Get(seed)
	if seedBub == nil {
		return nil
	}
	color := seedBub.Color
	adjacency := AdjacencyDist(cfg)

	visited := map[ecs.Entity]struct{}{seed: {}}
	cluster := []ecs.Entity{seed}
	queue := []ecs.Entity{seed}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		pos := posMap.Get(cur)
		if pos == nil {
			continue
		}
		for _, n := range grid.NeighborsOf(pos.X, pos.Y, cur, posMap, adjacency) {
			if _, seen := visited[n]; seen {
				continue
			}
			nb := bubMap.Get(n)
			if nb == nil || nb.Color != color {
				continue
			}
			visited[n] = struct{}{}
			cluster = append(cluster, n)
			queue = append(queue, n)
		}
	}

	return cluster
}

// FloatingBubbles returns every settled bubble not connected to the
// ceiling. The fill is seeded by all bubbles within the near-ceiling
// threshold and traverses the geometric neighbor relation over all colors;
// whatever is left unreached has lost its anchor and must fall. Runs on
// the post-pop grid, once per settle.
func FloatingBubbles(grid *Grid, posMap *ecs.Map1[components.Position], cfg *config.Config) []ecs.Entity {
	adjacency := AdjacencyDist(cfg)
	ceilingY := cfg.Derived.CeilingY

	anchored := make(map[ecs.Entity]struct{}, grid.Len())
	var queue []ecs.Entity

	for _, e := range grid.Entities() {
		pos := posMap.Get(e)
		if pos == nil {
			continue
		}
		if pos.Y <= ceilingY {
			anchored[e] = struct{}{}
			queue = append(queue, e)
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		pos := posMap.Get(cur)
		if pos == nil {
			continue
		}
		for _, n := range grid.NeighborsOf(pos.X, pos.Y, cur, posMap, adjacency) {
			if _, seen := anchored[n]; seen {
				continue
			}
			anchored[n] = struct{}{}
			queue = append(queue, n)
		}
	}

	var floating []ecs.Entity
	for _, e := range grid.Entities() {
		if _, ok := anchored[e]; !ok {
			floating = append(floating, e)
		}
	}
	return floating
}
