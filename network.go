package hotloop

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	// ConnectThreshold is the per-axis distance under which two endpoints are
	// treated as the same junction. Fixed in world units; it does not scale
	// with zoom or road width.
	ConnectThreshold = 10.0

	// revealSeconds is how long a new road takes to grow to full length.
	revealSeconds = 0.35
)

// Parameter ranges for roads created by a tap.
var (
	roadLengthRange = Range{100, 250}
	roadWidthRange  = Range{25, 40}
	roadGlowRange   = Range{15, 25}
)

// Ring road defaults.
const (
	DefaultRingSegments = 8
	DefaultRingRadius   = 350.0
	ringRoadWidth       = 30.0
	ringRoadGlow        = 20.0
)

// Road is a straight segment in world space. Once created its endpoints and
// width never change.
type Road struct {
	X1, Y1 float64
	X2, Y2 float64
	// Width is the stroke width in world units. Always positive.
	Width float64
	// Glow is the extra halo width drawn under the road.
	Glow  float64
	Color Color
	// Age counts ticks since the road was created.
	Age int
	// Reveal is the drawn fraction of the road, 0 to 1. Purely visual.
	Reveal float64
}

// PointAt linearly interpolates along the road: t=0 is (X1,Y1), t=1 is (X2,Y2).
func (r Road) PointAt(t float64) (x, y float64) {
	return r.X1 + (r.X2-r.X1)*t, r.Y1 + (r.Y2-r.Y1)*t
}

// Length returns the Euclidean length of the road.
func (r Road) Length() float64 {
	return math.Hypot(r.X2-r.X1, r.Y2-r.Y1)
}

// ConnectsAt reports whether either endpoint of r is within ConnectThreshold
// of (x, y).
func (r Road) ConnectsAt(x, y float64) bool {
	return EndpointsConnected(r.X1, r.Y1, x, y) || EndpointsConnected(r.X2, r.Y2, x, y)
}

// EndpointsConnected reports whether two points are close enough to form a
// junction: both axis differences must be strictly less than
// ConnectThreshold.
func EndpointsConnected(ax, ay, bx, by float64) bool {
	return math.Abs(ax-bx) < ConnectThreshold && math.Abs(ay-by) < ConnectThreshold
}

// Network is the append-only set of roads. Indices are stable: a road keeps
// its index for the life of the session.
type Network struct {
	roads   []Road
	reveals []*gween.Tween // index-aligned with roads; nil once fully revealed
	rng     Rand
}

// NewNetwork creates an empty network drawing randomness from rng.
func NewNetwork(rng Rand) *Network {
	return &Network{rng: rng}
}

// Len returns the number of roads.
func (n *Network) Len() int {
	return len(n.roads)
}

// Road returns the road at index i.
func (n *Network) Road(i int) Road {
	return n.roads[i]
}

// Roads returns the road list in creation order. The returned slice MUST NOT
// be mutated.
func (n *Network) Roads() []Road {
	return n.roads
}

// Init appends a closed ring of segments evenly spaced on a circle around the
// origin. Segment i runs from angle 2*pi*i/segments to 2*pi*(i+1)/segments and
// takes palette color i mod len(Palette), so every segment's end is the next
// segment's start.
func (n *Network) Init(segments int, radius float64) {
	for i := 0; i < segments; i++ {
		a0 := float64(i) / float64(segments) * math.Pi * 2
		a1 := float64(i+1) / float64(segments) * math.Pi * 2
		n.append(Road{
			X1:     math.Cos(a0) * radius,
			Y1:     math.Sin(a0) * radius,
			X2:     math.Cos(a1) * radius,
			Y2:     math.Sin(a1) * radius,
			Width:  ringRoadWidth,
			Glow:   ringRoadGlow,
			Color:  Palette[i%len(Palette)],
			Reveal: 1,
		}, false)
	}
}

// NearestEndpoint returns the road endpoint closest to (x, y). Endpoints are
// scanned in road order, start before end; a later endpoint must be strictly
// closer to win. ok is false for an empty network.
func (n *Network) NearestEndpoint(x, y float64) (px, py float64, ok bool) {
	best := math.Inf(1)
	for _, r := range n.roads {
		if d := math.Hypot(x-r.X1, y-r.Y1); d < best {
			best, px, py, ok = d, r.X1, r.Y1, true
		}
		if d := math.Hypot(x-r.X2, y-r.Y2); d < best {
			best, px, py, ok = d, r.X2, r.Y2, true
		}
	}
	return px, py, ok
}

// AddSegmentNear grows the network from the endpoint nearest to the world
// point (x, y), or from the origin when the network is empty. The new road
// points in a random direction with random length, width, glow and color.
// It returns the new road's index.
func (n *Network) AddSegmentNear(x, y float64) int {
	sx, sy, ok := n.NearestEndpoint(x, y)
	if !ok {
		sx, sy = 0, 0
	}
	angle := n.rng.Float64() * math.Pi * 2
	length := roadLengthRange.Random(n.rng)
	width := roadWidthRange.Random(n.rng)
	c := randomColor(n.rng)
	glow := roadGlowRange.Random(n.rng)

	return n.append(Road{
		X1:    sx,
		Y1:    sy,
		X2:    sx + math.Cos(angle)*length,
		Y2:    sy + math.Sin(angle)*length,
		Width: width,
		Glow:  glow,
		Color: c,
	}, true)
}

// ConnectedAt appends to buf the indices of every road other than from that
// touches the end point (X2, Y2) of road from, and returns the extended
// slice.
func (n *Network) ConnectedAt(from int, buf []int) []int {
	cur := n.roads[from]
	for i, r := range n.roads {
		if i == from {
			continue
		}
		if r.ConnectsAt(cur.X2, cur.Y2) {
			buf = append(buf, i)
		}
	}
	return buf
}

func (n *Network) append(r Road, animate bool) int {
	var tw *gween.Tween
	if animate {
		tw = gween.New(0, 1, revealSeconds, ease.OutCubic)
	}
	n.roads = append(n.roads, r)
	n.reveals = append(n.reveals, tw)
	return len(n.roads) - 1
}

// update ages every road and advances reveal animations by dt seconds.
func (n *Network) update(dt float32) {
	for i := range n.roads {
		r := &n.roads[i]
		r.Age++
		tw := n.reveals[i]
		if tw == nil {
			continue
		}
		val, done := tw.Update(dt)
		r.Reveal = float64(val)
		if done {
			r.Reveal = 1
			n.reveals[i] = nil
		}
	}
}
