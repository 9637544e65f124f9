package hotloop

import (
	"math"
	"time"
)

// Gesture thresholds.
const (
	DefaultHoldDelay      = 500 * time.Millisecond // press without movement this long becomes a hold
	DefaultTapMaxDuration = 300 * time.Millisecond // a release sooner than this is a tap
	DefaultSwipeThreshold = 10.0                   // last-move length in pixels that makes a swipe
)

// Particle counts emitted by gestures.
const (
	holdBurstCount  = 30
	swipeBurstCount = 20
)

// GestureState is the state of the press currently being interpreted.
type GestureState uint8

const (
	GestureIdle     GestureState = iota // no press active
	GesturePressed                      // pressed, not yet moved or held
	GestureHolding                      // hold detector fired
	GestureDragging                     // moved before the hold detector fired
)

func (s GestureState) String() string {
	switch s {
	case GestureIdle:
		return "idle"
	case GesturePressed:
		return "pressed"
	case GestureHolding:
		return "holding"
	case GestureDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// GestureTarget receives the commands the interpreter emits. Coordinates are
// in screen space.
type GestureTarget interface {
	// HoldStart fires when a press has been held long enough.
	HoldStart(sx, sy float64)
	// HoldEnd fires when a hold is released.
	HoldEnd()
	// Swipe fires when a fast drag is released at (sx, sy).
	Swipe(sx, sy float64)
	// Tap fires when a short press is released at (sx, sy).
	Tap(sx, sy float64)
}

// GestureInterpreter classifies a single pointer's presses into tap, swipe
// and hold. It consumes normalized press events; whether they came from a
// mouse, a touch screen or an injected script makes no difference.
type GestureInterpreter struct {
	// HoldDelay is how long a still press lasts before it becomes a hold.
	HoldDelay time.Duration
	// TapMaxDuration is the longest press that still counts as a tap.
	TapMaxDuration time.Duration
	// SwipeThreshold is the minimum last-move length of a swipe.
	SwipeThreshold float64

	target GestureTarget
	sched  *Scheduler

	state     GestureState
	startTime time.Time
	lastX     float64
	lastY     float64
	hasLast   bool
	velocity  Vec2
	holdTimer Timer
}

// NewGestureInterpreter creates an interpreter that schedules its hold
// detector on sched and sends commands to target.
func NewGestureInterpreter(target GestureTarget, sched *Scheduler) *GestureInterpreter {
	return &GestureInterpreter{
		HoldDelay:      DefaultHoldDelay,
		TapMaxDuration: DefaultTapMaxDuration,
		SwipeThreshold: DefaultSwipeThreshold,
		target:         target,
		sched:          sched,
	}
}

// State returns the current gesture state.
func (g *GestureInterpreter) State() GestureState {
	return g.state
}

// Velocity returns the last recorded move delta.
func (g *GestureInterpreter) Velocity() Vec2 {
	return g.velocity
}

// PressStart begins a press at screen point (x, y) at time t. A press that
// arrives while another is active replaces it.
func (g *GestureInterpreter) PressStart(x, y float64, t time.Time) {
	g.holdTimer.Cancel()
	g.startTime = t
	g.lastX, g.lastY, g.hasLast = x, y, true
	g.velocity = Vec2{}
	g.state = GesturePressed
	g.holdTimer = g.sched.After(g.HoldDelay, g.fireHold)
}

// PressMove records pointer movement. The swipe velocity is the delta of this
// move alone. Moves without an active press are ignored.
func (g *GestureInterpreter) PressMove(x, y float64) {
	if !g.hasLast {
		return
	}
	g.velocity = Vec2{X: x - g.lastX, Y: y - g.lastY}
	g.lastX, g.lastY = x, y
	g.holdTimer.Cancel()
	if g.state == GesturePressed {
		g.state = GestureDragging
	}
}

// PressEnd finishes the press at time t and emits at most one command:
// release of a hold, a swipe, or a tap.
func (g *GestureInterpreter) PressEnd(t time.Time) {
	g.holdTimer.Cancel()
	if g.state == GestureIdle {
		return
	}

	speed := math.Hypot(g.velocity.X, g.velocity.Y)
	switch {
	case g.state == GestureHolding:
		g.target.HoldEnd()
	case speed > g.SwipeThreshold:
		g.target.Swipe(g.lastX, g.lastY)
	case t.Sub(g.startTime) < g.TapMaxDuration:
		g.target.Tap(g.lastX, g.lastY)
	}

	g.velocity = Vec2{}
	g.hasLast = false
	g.state = GestureIdle
}

// fireHold is the hold detector callback.
func (g *GestureInterpreter) fireHold() {
	if g.state != GesturePressed {
		return
	}
	g.state = GestureHolding
	g.target.HoldStart(g.lastX, g.lastY)
}
