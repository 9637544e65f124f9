package hotloop

import (
	"fmt"
	"io"
	"os"
	"time"
)

// debugLogEvery is the number of frames between debug stat lines.
const debugLogEvery = 60

// debugStats holds per-frame timing and draw counts.
// Only populated when Scene.debug is true.
type debugStats struct {
	start    time.Time
	drawTime time.Duration
	counts   drawCounts
}

func (d *debugStats) begin() {
	d.start = time.Now()
}

func (d *debugStats) end(counts drawCounts) {
	d.drawTime = time.Since(d.start)
	d.counts = counts
}

// debugLog counts a drawn frame and prints timing and entity stats to
// stderr once every debugLogEvery frames.
func (s *Scene) debugLog(stats debugStats) {
	s.drawFrames++
	if !s.debug || s.drawFrames%debugLogEvery != 0 {
		return
	}
	out := io.Writer(os.Stderr)
	if s.debugOut != nil {
		out = s.debugOut
	}
	_, _ = fmt.Fprintf(out,
		"[hotloop] frame %d tick %d | draw: %v | zoom: %.3f -> %.3f | pending tasks: %d\n",
		s.drawFrames, s.ticks, stats.drawTime, s.camera.Zoom, s.camera.TargetZoom, s.sched.Pending())
	_, _ = fmt.Fprintf(out,
		"[hotloop] roads: %d/%d | cars: %d/%d | particles: %d/%d (drawn/total)\n",
		stats.counts.roads, s.network.Len(),
		stats.counts.cars, s.traffic.Len(),
		stats.counts.particles, s.particles.AliveCount())
}

// Summary returns a one-line description of the scene's entity counts.
func (s *Scene) Summary() string {
	return fmt.Sprintf("tick %d  roads %d  cars %d  particles %d  zoom %.2f",
		s.ticks, s.network.Len(), s.traffic.Len(), s.particles.AliveCount(), s.camera.Zoom)
}
