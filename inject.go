package hotloop

// pointerPhase is the kind of a synthetic pointer event.
type pointerPhase uint8

const (
	phasePress pointerPhase = iota
	phaseMove
	phaseRelease
)

// syntheticPointerEvent is a single injected pointer event in screen
// coordinates, fed through the same gesture path as real input.
type syntheticPointerEvent struct {
	phase pointerPhase
	x, y  float64
}

// InjectPress queues a press at the given screen coordinates. The event is
// consumed on the next Update.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{phase: phasePress, x: x, y: y})
}

// InjectMove queues a pointer move at the given screen coordinates. Use it
// between InjectPress and InjectRelease to simulate a drag.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{phase: phaseMove, x: x, y: y})
}

// InjectRelease queues a release. The gesture interpreter releases at the
// last tracked position, so the coordinates only matter for symmetry with
// real input.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{phase: phaseRelease, x: x, y: y})
}

// InjectTap queues a press followed by a release at the same screen point.
// Consumes two frames.
func (s *Scene) InjectTap(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectSwipe queues a full drag: press at (fromX, fromY), frames-2 linearly
// interpolated moves, and a release at (toX, toY). The sequence consumes
// frames frames; the minimum is 3 so at least one move lands.
func (s *Scene) InjectSwipe(fromX, fromY, toX, toY float64, frames int) {
	if frames < 3 {
		frames = 3
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// InjectPending reports whether injected events are waiting.
func (s *Scene) InjectPending() bool {
	return len(s.injectQueue) > 0
}

// processInjectedInput pops one queued event, if any, and feeds it to the
// gesture interpreter. Game.Update skips real pointer polling while
// InjectPending is true.
func (s *Scene) processInjectedInput() {
	if len(s.injectQueue) == 0 {
		return
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch evt.phase {
	case phasePress:
		s.PressStart(evt.x, evt.y)
	case phaseMove:
		s.PressMove(evt.x, evt.y)
	case phaseRelease:
		s.PressEnd()
	}
}
