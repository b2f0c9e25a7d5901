package telemetry

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCollectorWindowBoundary(t *testing.T) {
	c := NewCollector(2.0, 60) // 120-tick windows

	if c.ShouldFlush(119) {
		t.Error("flushed before the window elapsed")
	}
	if !c.ShouldFlush(120) {
		t.Error("did not flush at the window boundary")
	}

	c.Flush(120, 60, 0, 0)
	if c.ShouldFlush(239) {
		t.Error("window start did not advance on flush")
	}
	if !c.ShouldFlush(240) {
		t.Error("second window boundary missed")
	}
}

func TestCollectorMinimumWindow(t *testing.T) {
	// Degenerate configs still get a window of at least one tick.
	c := NewCollector(0, 60)
	if !c.ShouldFlush(1) {
		t.Error("zero-length window should clamp to one tick")
	}
}

func TestFlushAggregatesAndResets(t *testing.T) {
	c := NewCollector(1.0, 60)

	c.RecordShot()
	c.RecordShot()
	c.RecordShot()
	c.RecordBounce()
	c.RecordPop(3, 30)
	c.RecordPop(5, 50)
	c.RecordDrop(2, 10)

	stats := c.Flush(60, 60, 7, 90)

	if stats.Shots != 3 || stats.Bounces != 1 || stats.Pops != 2 {
		t.Errorf("counts = %d/%d/%d, want 3/1/2", stats.Shots, stats.Bounces, stats.Pops)
	}
	if stats.PoppedBubbles != 8 || stats.DroppedBubbles != 2 {
		t.Errorf("bubbles = %d/%d, want 8/2", stats.PoppedBubbles, stats.DroppedBubbles)
	}
	if stats.PopScore != 80 || stats.DropScore != 10 {
		t.Errorf("scores = %d/%d, want 80/10", stats.PopScore, stats.DropScore)
	}
	if !almostEqual(stats.Accuracy, 2.0/3.0) {
		t.Errorf("accuracy = %v, want 2/3", stats.Accuracy)
	}
	if !almostEqual(stats.SimTimeSec, 1.0) {
		t.Errorf("sim time = %v, want 1.0", stats.SimTimeSec)
	}
	if stats.GridCount != 7 || stats.Score != 90 {
		t.Errorf("board state = %d/%d, want 7/90", stats.GridCount, stats.Score)
	}

	// Second window starts empty.
	next := c.Flush(120, 60, 7, 90)
	if next.Shots != 0 || next.Pops != 0 || next.ClusterMean != 0 {
		t.Error("flush did not reset window counters")
	}
	if next.WindowStartTick != 60 {
		t.Errorf("window start = %d, want 60", next.WindowStartTick)
	}
}

func TestAccuracyWithoutShots(t *testing.T) {
	c := NewCollector(1.0, 60)
	stats := c.Flush(60, 60, 0, 0)
	if stats.Accuracy != 0 {
		t.Errorf("accuracy = %v, want 0 with no shots", stats.Accuracy)
	}
}

func TestClusterDistribution(t *testing.T) {
	mean, p50, p90 := clusterDistribution([]float64{5, 3, 4})
	if !almostEqual(mean, 4.0) {
		t.Errorf("mean = %v, want 4", mean)
	}
	if !almostEqual(p50, 4.0) {
		t.Errorf("p50 = %v, want 4", p50)
	}
	if !almostEqual(p90, 5.0) {
		t.Errorf("p90 = %v, want 5", p90)
	}

	// Input order must not matter and the input must not be mutated.
	in := []float64{9, 3, 6}
	m1, _, _ := clusterDistribution(in)
	if in[0] != 9 {
		t.Error("clusterDistribution mutated its input")
	}
	m2, _, _ := clusterDistribution([]float64{3, 6, 9})
	if !almostEqual(m1, m2) {
		t.Error("distribution depends on input order")
	}

	mean, p50, p90 = clusterDistribution(nil)
	if mean != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty window should report zeros")
	}
}
