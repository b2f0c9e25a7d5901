package game

import (
	"log/slog"

	"github.com/pthm-cable/burst/config"
)

// flushTelemetry emits a window stats record when the current window ends.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, float64(config.Cfg().Screen.TargetFPS), g.grid.Len(), g.score)

	if g.opts.LogStats {
		slog.Info("window stats",
			"tick", stats.WindowEndTick,
			"shots", stats.Shots,
			"bounces", stats.Bounces,
			"pops", stats.Pops,
			"popped", stats.PoppedBubbles,
			"dropped", stats.DroppedBubbles,
			"accuracy", stats.Accuracy,
			"cluster_mean", stats.ClusterMean,
			"score", stats.Score,
			"grid", stats.GridCount,
		)
	}

	if g.output != nil {
		if err := g.output.WriteTelemetry(stats); err != nil {
			slog.Error("writing telemetry", "error", err)
		}
	}
}
