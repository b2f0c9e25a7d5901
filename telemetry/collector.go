// Package telemetry aggregates gameplay events into windowed stats records.
package telemetry

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int32
	windowStartTick     int32

	// Event counters for the current window
	shots          int
	bounces        int
	pops           int
	poppedBubbles  int
	droppedBubbles int
	popScore       int
	dropScore      int

	// One entry per pop event, for the cluster-size distribution
	clusterSizes []float64
}

// NewCollector creates a stats collector.
// windowDurationSec: how long each stats window lasts in wall seconds
// ticksPerSec: simulation tick rate (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, ticksPerSec int) *Collector {
	ticksPerWindow := int32(windowDurationSec * float64(ticksPerSec))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{windowDurationTicks: ticksPerWindow}
}

// RecordShot records a fired bubble.
func (c *Collector) RecordShot() {
	c.shots++
}

// RecordBounce records a wall reflection.
func (c *Collector) RecordBounce() {
	c.bounces++
}

// RecordPop records a popped cluster and the score it earned.
func (c *Collector) RecordPop(size, score int) {
	c.pops++
	c.poppedBubbles += size
	c.popScore += score
	c.clusterSizes = append(c.clusterSizes, float64(size))
}

// RecordDrop records detached bubbles falling and the score they earned.
func (c *Collector) RecordDrop(count, score int) {
	c.droppedBubbles += count
	c.dropScore += score
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, ticksPerSec float64, gridCount, score int) WindowStats {
	var accuracy float64
	if c.shots > 0 {
		accuracy = float64(c.pops) / float64(c.shots)
	}

	mean, p50, p90 := clusterDistribution(c.clusterSizes)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) / ticksPerSec,
		Shots:           c.shots,
		Bounces:         c.bounces,
		Pops:            c.pops,
		PoppedBubbles:   c.poppedBubbles,
		DroppedBubbles:  c.droppedBubbles,
		PopScore:        c.popScore,
		DropScore:       c.dropScore,
		Accuracy:        accuracy,
		ClusterMean:     mean,
		ClusterP50:      p50,
		ClusterP90:      p90,
		GridCount:       gridCount,
		Score:           score,
	}

	c.windowStartTick = currentTick
	c.shots = 0
	c.bounces = 0
	c.pops = 0
	c.poppedBubbles = 0
	c.droppedBubbles = 0
	c.popScore = 0
	c.dropScore = 0
	c.clusterSizes = c.clusterSizes[:0]

	return stats
}
