package hotloop

import "testing"

func TestInjectTapQueuesPressRelease(t *testing.T) {
	s, _ := testScene(t, quietConfig())
	s.InjectTap(10, 20)
	if len(s.injectQueue) != 2 {
		t.Fatalf("queue len = %d, want 2", len(s.injectQueue))
	}
	if s.injectQueue[0].phase != phasePress || s.injectQueue[1].phase != phaseRelease {
		t.Errorf("phases = %v, %v", s.injectQueue[0].phase, s.injectQueue[1].phase)
	}
}

func TestInjectSwipeInterpolates(t *testing.T) {
	s, _ := testScene(t, quietConfig())
	s.InjectSwipe(0, 0, 100, 50, 6)
	q := s.injectQueue
	if len(q) != 6 {
		t.Fatalf("queue len = %d, want 6", len(q))
	}
	if q[0].phase != phasePress || q[5].phase != phaseRelease {
		t.Fatal("swipe must start with a press and end with a release")
	}
	for i := 1; i <= 4; i++ {
		if q[i].phase != phaseMove {
			t.Fatalf("event %d phase = %v, want move", i, q[i].phase)
		}
		f := float64(i) / 4
		assertNear(t, "move x", q[i].x, 100*f)
		assertNear(t, "move y", q[i].y, 50*f)
	}
}

func TestInjectSwipeMinimumFrames(t *testing.T) {
	s, _ := testScene(t, quietConfig())
	s.InjectSwipe(0, 0, 100, 0, 1)
	if len(s.injectQueue) != 3 {
		t.Errorf("queue len = %d, want 3", len(s.injectQueue))
	}
}

func TestInjectOneEventPerUpdate(t *testing.T) {
	s, _ := testScene(t, quietConfig())
	roads := s.Network().Len()
	s.InjectTap(400, 300)

	s.Update()
	if s.Input().State() != GesturePressed || !s.InjectPending() {
		t.Fatalf("after first update: state %v, pending %v", s.Input().State(), s.InjectPending())
	}
	s.Update()
	if s.InjectPending() {
		t.Error("queue not drained")
	}
	if s.Network().Len() != roads+1 {
		t.Errorf("roads = %d, want %d", s.Network().Len(), roads+1)
	}
}

func TestProcessInjectedInputEmpty(t *testing.T) {
	s, _ := testScene(t, quietConfig())
	s.processInjectedInput()
	if s.InjectPending() || s.Input().State() != GestureIdle {
		t.Errorf("empty queue: pending %v, state %v", s.InjectPending(), s.Input().State())
	}
}
