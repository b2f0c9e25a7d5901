package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one stats window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Events during the window
	Shots          int `csv:"shots"`
	Bounces        int `csv:"bounces"`
	Pops           int `csv:"pops"`
	PoppedBubbles  int `csv:"popped"`
	DroppedBubbles int `csv:"dropped"`
	PopScore       int `csv:"pop_score"`
	DropScore      int `csv:"drop_score"`

	// Accuracy: fraction of shots that popped a cluster
	Accuracy float64 `csv:"accuracy"`

	// Cluster-size distribution across pop events in the window
	ClusterMean float64 `csv:"cluster_mean"`
	ClusterP50  float64 `csv:"cluster_p50"`
	ClusterP90  float64 `csv:"cluster_p90"`

	// Board state at window end
	GridCount int `csv:"grid_count"`
	Score     int `csv:"score"`
}

// clusterDistribution summarizes pop cluster sizes. Returns zeros when no
// cluster popped in the window.
func clusterDistribution(sizes []float64) (mean, p50, p90 float64) {
	if len(sizes) == 0 {
		return 0, 0, 0
	}

	sorted := make([]float64, len(sizes))
	copy(sorted, sizes)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	return mean, p50, p90
}
