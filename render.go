package hotloop

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Canvas is the drawing surface the renderer targets. All coordinates and
// sizes are in screen pixels.
type Canvas interface {
	// Size returns the surface size in pixels.
	Size() (w, h float64)
	// FillRect fills an axis-aligned rectangle, blending over what is there.
	FillRect(x, y, w, h float64, c Color)
	// StrokeLine draws a line segment.
	StrokeLine(x0, y0, x1, y1, width float64, c Color)
	// FillCircle draws a filled circle.
	FillCircle(cx, cy, r float64, c Color)
}

// Visual constants.
var (
	// backgroundFade is drawn over the previous frame instead of clearing it,
	// leaving short motion trails.
	backgroundFade = Color{R: 10.0 / 255, G: 0, B: 21.0 / 255, A: 0.3}
	centerline     = Color{1, 1, 1, 0.5}
)

const (
	roadGlowAlpha     = 0.35
	centerlineWidth   = 2.0  // world units
	dashOn            = 10.0 // world units
	dashOff           = 10.0 // world units
	carGlowScale      = 1.6
	carGlowAlpha      = 0.35
	carCoreScale      = 0.6
	particleGlowScale = 2.0
	particleGlowAlpha = 0.3
)

// glowCanvas is a Canvas that keeps glow in its own layer. BeginGlow returns
// the canvas glow primitives are drawn to. EndGlow composites that layer and
// is called once per frame, after every glow and before any solid primitive.
type glowCanvas interface {
	Canvas
	BeginGlow() Canvas
	EndGlow()
}

// drawScene issues drawing commands for the whole scene: fade, the glow of
// every road, car and particle, then their solid shapes. Entities outside
// the viewport are skipped.
func drawScene(cv Canvas, s *Scene) drawCounts {
	w, h := cv.Size()
	cv.FillRect(0, 0, w, h, backgroundFade)

	glow := cv
	layered, ok := cv.(glowCanvas)
	if ok {
		glow = layered.BeginGlow()
	}
	drawGlow(glow, s)
	if ok {
		layered.EndGlow()
	}
	return drawSolids(cv, s)
}

func drawGlow(cv Canvas, s *Scene) {
	cam := s.camera
	view := cam.VisibleBounds()
	z := cam.Zoom

	for _, r := range s.network.Roads() {
		ex, ey := r.PointAt(r.Reveal)
		if !roadVisible(view, r, ex, ey) {
			continue
		}
		drawRoadGlow(cv, cam, r, ex, ey, z)
	}
	for _, c := range s.traffic.Cars() {
		wx, wy := s.traffic.PositionOf(c)
		if !view.Inset(c.Size * carGlowScale).Contains(wx, wy) {
			continue
		}
		sx, sy := cam.WorldToScreen(wx, wy)
		cv.FillCircle(sx, sy, c.Size*z*carGlowScale, c.Color.WithAlpha(carGlowAlpha))
	}
	for _, p := range s.particles.Particles() {
		if !view.Inset(p.Size * particleGlowScale).Contains(p.X, p.Y) {
			continue
		}
		sx, sy := cam.WorldToScreen(p.X, p.Y)
		cv.FillCircle(sx, sy, p.Size*z*particleGlowScale, p.Color.WithAlpha(p.Life*particleGlowAlpha))
	}
}

func drawSolids(cv Canvas, s *Scene) drawCounts {
	var n drawCounts
	cam := s.camera
	view := cam.VisibleBounds()
	z := cam.Zoom

	for _, r := range s.network.Roads() {
		ex, ey := r.PointAt(r.Reveal)
		if !roadVisible(view, r, ex, ey) {
			continue
		}
		drawRoad(cv, cam, r, ex, ey, z)
		n.roads++
	}
	for _, c := range s.traffic.Cars() {
		wx, wy := s.traffic.PositionOf(c)
		if !view.Inset(c.Size * carGlowScale).Contains(wx, wy) {
			continue
		}
		sx, sy := cam.WorldToScreen(wx, wy)
		r := c.Size * z
		cv.FillCircle(sx, sy, r, c.Color)
		cv.FillCircle(sx, sy, r*carCoreScale, ColorWhite)
		n.cars++
	}
	for _, p := range s.particles.Particles() {
		if !view.Inset(p.Size * particleGlowScale).Contains(p.X, p.Y) {
			continue
		}
		sx, sy := cam.WorldToScreen(p.X, p.Y)
		cv.FillCircle(sx, sy, p.Size*z, p.Color.WithAlpha(p.Life))
		n.particles++
	}
	return n
}

func roadVisible(view Rect, r Road, ex, ey float64) bool {
	return view.Intersects(segmentAABB(r.X1, r.Y1, ex, ey, (r.Width+r.Glow)/2))
}

// drawRoadGlow strokes the road's glow halo from its start to (ex, ey).
func drawRoadGlow(cv Canvas, cam *Camera, r Road, ex, ey, z float64) {
	x0, y0 := cam.WorldToScreen(r.X1, r.Y1)
	x1, y1 := cam.WorldToScreen(ex, ey)
	cv.StrokeLine(x0, y0, x1, y1, (r.Width+r.Glow)*z, r.Color.WithAlpha(roadGlowAlpha))
}

// drawRoad strokes the road body and a dashed centerline from the road's
// start to (ex, ey).
func drawRoad(cv Canvas, cam *Camera, r Road, ex, ey, z float64) {
	x0, y0 := cam.WorldToScreen(r.X1, r.Y1)
	x1, y1 := cam.WorldToScreen(ex, ey)
	cv.StrokeLine(x0, y0, x1, y1, r.Width*z, r.Color)

	length := math.Hypot(ex-r.X1, ey-r.Y1)
	if length == 0 {
		return
	}
	ux, uy := (ex-r.X1)/length, (ey-r.Y1)/length
	for d := 0.0; d < length; d += dashOn + dashOff {
		end := math.Min(d+dashOn, length)
		ax, ay := cam.WorldToScreen(r.X1+ux*d, r.Y1+uy*d)
		bx, by := cam.WorldToScreen(r.X1+ux*end, r.Y1+uy*end)
		cv.StrokeLine(ax, ay, bx, by, centerlineWidth*z, centerline)
	}
}

// drawCounts tallies what a frame actually drew.
type drawCounts struct {
	roads, cars, particles int
}

// ebitenCanvas draws onto an ebiten image with the vector package. With a
// glow layer set, glow is drawn offscreen and blurred onto dst.
type ebitenCanvas struct {
	dst  *ebiten.Image
	glow *glowLayer
}

func (c ebitenCanvas) BeginGlow() Canvas {
	if c.glow == nil {
		return c
	}
	return c.glow.begin(c.dst)
}

func (c ebitenCanvas) EndGlow() {
	if c.glow != nil {
		c.glow.composite(c.dst)
	}
}

func (c ebitenCanvas) Size() (w, h float64) {
	b := c.dst.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (c ebitenCanvas) FillRect(x, y, w, h float64, col Color) {
	vector.DrawFilledRect(c.dst, float32(x), float32(y), float32(w), float32(h), col.toRGBA(), false)
}

func (c ebitenCanvas) StrokeLine(x0, y0, x1, y1, width float64, col Color) {
	rgba := col.toRGBA()
	vector.StrokeLine(c.dst, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), rgba, true)
	// Cap both ends of opaque strokes so segments join cleanly at junctions.
	if width > 3 && col.A >= 1 {
		r := float32(width / 2)
		vector.DrawFilledCircle(c.dst, float32(x0), float32(y0), r, rgba, true)
		vector.DrawFilledCircle(c.dst, float32(x1), float32(y1), r, rgba, true)
	}
}

func (c ebitenCanvas) FillCircle(cx, cy, r float64, col Color) {
	vector.DrawFilledCircle(c.dst, float32(cx), float32(cy), float32(r), col.toRGBA(), true)
}

// Draw renders the scene onto screen. The screen is faded, not cleared, so
// the game must disable ebiten's per-frame clear.
func (s *Scene) Draw(screen *ebiten.Image) {
	var stats debugStats
	if s.debug {
		stats.begin()
	}
	if s.glow == nil {
		s.glow = newGlowLayer(glowBlurRadius)
	}
	counts := drawScene(ebitenCanvas{dst: screen, glow: s.glow}, s)
	if s.debug {
		stats.end(counts)
		s.debugLog(stats)
	}
	s.flushScreenshots(screen)
}
