package hotloop

import "time"

// Headless steps a Scene without a window. Simulated time advances by one
// tick per Step, so deferred tasks and gesture timing follow the tick count
// rather than the wall clock.
type Headless struct {
	Scene *Scene
	Clock *ManualClock
	tick  time.Duration
}

// NewHeadless builds a Scene on a ManualClock starting at the Unix epoch.
// WithClock options are overridden.
func NewHeadless(cfg Config, opts ...SceneOption) *Headless {
	clock := NewManualClock(time.Unix(0, 0))
	opts = append(opts, WithClock(clock))
	s := NewScene(cfg, opts...)
	return &Headless{
		Scene: s,
		Clock: clock,
		tick:  time.Second / time.Duration(s.cfg.TPS),
	}
}

// Step runs one Update and then advances the clock by one tick.
func (h *Headless) Step() {
	h.Scene.Update()
	h.Clock.Advance(h.tick)
}

// StepN runs n steps, calling fn (if not nil) after each one.
func (h *Headless) StepN(n int, fn func(*Scene)) {
	for i := 0; i < n; i++ {
		h.Step()
		if fn != nil {
			fn(h.Scene)
		}
	}
}

// TickDuration returns the simulated time per step.
func (h *Headless) TickDuration() time.Duration {
	return h.tick
}
