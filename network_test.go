package hotloop

import (
	"math"
	"testing"
)

func TestAddSegmentNearEmptyAnchorsAtOrigin(t *testing.T) {
	n := NewNetwork(NewRand(3))
	idx := n.AddSegmentNear(0, 0)
	if idx != 0 || n.Len() != 1 {
		t.Fatalf("idx = %d, Len = %d, want 0, 1", idx, n.Len())
	}
	r := n.Road(0)
	if r.X1 != 0 || r.Y1 != 0 {
		t.Errorf("start = (%v, %v), want (0, 0)", r.X1, r.Y1)
	}
	if l := r.Length(); !roadLengthRange.Contains(l) && !approxEqual(l, roadLengthRange.Min, 1e-9) {
		t.Errorf("length = %v, want in %v", l, roadLengthRange)
	}
	if !roadWidthRange.Contains(r.Width) || !roadGlowRange.Contains(r.Glow) {
		t.Errorf("width = %v, glow = %v out of range", r.Width, r.Glow)
	}
}

func TestAddSegmentNearDraws(t *testing.T) {
	// angle 0.25 turn, length min, width min, color index 1, glow min
	rng := &seqRand{vals: []float64{0.25, 0, 0, 0.2, 0}}
	n := NewNetwork(rng)
	n.append(Road{X1: 0, Y1: 0, X2: 100, Y2: 0, Width: 30}, false)

	idx := n.AddSegmentNear(90, 10)
	r := n.Road(idx)
	assertNear(t, "X1", r.X1, 100)
	assertNear(t, "Y1", r.Y1, 0)
	if !approxEqual(r.X2, 100, 1e-9) || !approxEqual(r.Y2, 100, 1e-9) {
		t.Errorf("end = (%v, %v), want (100, 100)", r.X2, r.Y2)
	}
	assertNear(t, "Width", r.Width, 25)
	assertNear(t, "Glow", r.Glow, 15)
	if r.Color != Palette[1] {
		t.Errorf("Color = %v, want %v", r.Color, Palette[1])
	}
	if r.Reveal != 0 {
		t.Errorf("Reveal = %v, want 0 for a new road", r.Reveal)
	}
}

func TestInitRing(t *testing.T) {
	n := NewNetwork(NewRand(1))
	n.Init(DefaultRingSegments, DefaultRingRadius)
	if n.Len() != 8 {
		t.Fatalf("Len = %d, want 8", n.Len())
	}
	for i, r := range n.Roads() {
		if d := math.Hypot(r.X1, r.Y1); !approxEqual(d, 350, 1e-9) {
			t.Errorf("road %d start radius = %v", i, d)
		}
		if d := math.Hypot(r.X2, r.Y2); !approxEqual(d, 350, 1e-9) {
			t.Errorf("road %d end radius = %v", i, d)
		}
		next := n.Road((i + 1) % n.Len())
		if !EndpointsConnected(r.X2, r.Y2, next.X1, next.Y1) {
			t.Errorf("road %d end does not meet road %d start", i, (i+1)%n.Len())
		}
		if r.Color != Palette[i%len(Palette)] {
			t.Errorf("road %d color = %v", i, r.Color)
		}
		if r.Reveal != 1 {
			t.Errorf("ring road %d Reveal = %v, want 1", i, r.Reveal)
		}
	}
}

func TestEndpointsConnectedBoundary(t *testing.T) {
	tests := []struct {
		dx, dy float64
		want   bool
	}{
		{0, 0, true},
		{9.999, 0, true},
		{0, 9.999, true},
		{9.999, 9.999, true},
		{-9.999, 9.999, true},
		{10, 0, false},
		{0, -10, false},
		{10.001, 0, false},
		{5, 10, false},
	}
	for _, tt := range tests {
		if got := EndpointsConnected(100, 100, 100+tt.dx, 100+tt.dy); got != tt.want {
			t.Errorf("EndpointsConnected(delta %v, %v) = %v, want %v", tt.dx, tt.dy, got, tt.want)
		}
	}
}

func TestNearestEndpointTieBreak(t *testing.T) {
	n := NewNetwork(NewRand(1))
	if _, _, ok := n.NearestEndpoint(0, 0); ok {
		t.Error("empty network reported an endpoint")
	}
	n.append(Road{X1: 0, Y1: 0, X2: 100, Y2: 0}, false)
	n.append(Road{X1: 100, Y1: 0, X2: 0, Y2: 0}, false)

	// Equidistant from both endpoints: the first scanned (road 0 start) wins.
	px, py, ok := n.NearestEndpoint(50, 0)
	if !ok || px != 0 || py != 0 {
		t.Errorf("NearestEndpoint = (%v, %v, %v), want (0, 0, true)", px, py, ok)
	}
	px, py, _ = n.NearestEndpoint(80, 3)
	if px != 100 || py != 0 {
		t.Errorf("NearestEndpoint = (%v, %v), want (100, 0)", px, py)
	}
}

func TestConnectedAt(t *testing.T) {
	n := NewNetwork(NewRand(1))
	n.append(Road{X1: 0, Y1: 0, X2: 100, Y2: 0}, false)       // 0: ends at (100, 0)
	n.append(Road{X1: 105, Y1: -5, X2: 200, Y2: 0}, false)    // 1: start touches
	n.append(Road{X1: 300, Y1: 300, X2: 109.9, Y2: 0}, false) // 2: end touches
	n.append(Road{X1: 110, Y1: 0, X2: 300, Y2: 0}, false)     // 3: dx exactly 10
	n.append(Road{X1: 100, Y1: 0, X2: 100, Y2: -100}, false)  // 4: exact junction

	got := n.ConnectedAt(0, nil)
	want := []int{1, 2, 4}
	if len(got) != len(want) {
		t.Fatalf("ConnectedAt = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ConnectedAt = %v, want %v", got, want)
		}
	}
}

func TestConnectedAtExcludesSelf(t *testing.T) {
	n := NewNetwork(NewRand(1))
	// A zero-length road touches its own end.
	n.append(Road{X1: 5, Y1: 5, X2: 5, Y2: 5}, false)
	if got := n.ConnectedAt(0, nil); len(got) != 0 {
		t.Errorf("ConnectedAt = %v, want none", got)
	}
}

func TestNetworkMonotonic(t *testing.T) {
	n := NewNetwork(NewRand(9))
	n.Init(4, 100)
	var prev []Road
	for i := 0; i < 20; i++ {
		prev = append(prev[:0], n.Roads()...)
		n.AddSegmentNear(float64(i*13), float64(-i*7))
		if n.Len() != len(prev)+1 {
			t.Fatalf("Len = %d, want %d", n.Len(), len(prev)+1)
		}
		for j, r := range prev {
			got := n.Road(j)
			if got.X1 != r.X1 || got.Y1 != r.Y1 || got.X2 != r.X2 || got.Y2 != r.Y2 || got.Width != r.Width {
				t.Fatalf("road %d changed: %+v -> %+v", j, r, got)
			}
		}
	}
}

func TestNetworkUpdateRevealAndAge(t *testing.T) {
	n := NewNetwork(NewRand(2))
	n.Init(1, 50)
	idx := n.AddSegmentNear(0, 0)

	last := 0.0
	for i := 0; i < 30; i++ {
		n.update(1.0 / 60)
		r := n.Road(idx)
		if r.Reveal < last {
			t.Fatalf("tick %d: Reveal went from %v to %v", i, last, r.Reveal)
		}
		last = r.Reveal
	}
	if last != 1 {
		t.Errorf("Reveal = %v after 0.5s, want 1", last)
	}
	if n.reveals[idx] != nil {
		t.Error("finished tween not released")
	}
	if age := n.Road(0).Age; age != 30 {
		t.Errorf("Age = %d, want 30", age)
	}
}

func TestRoadPointAt(t *testing.T) {
	r := Road{X1: 0, Y1: 0, X2: 10, Y2: -20}
	x, y := r.PointAt(0.25)
	assertNear(t, "x", x, 2.5)
	assertNear(t, "y", y, -5)
}
