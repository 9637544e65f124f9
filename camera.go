package hotloop

import "math"

// Zoom levels used by the hold gesture.
const (
	DefaultZoom = 0.6 // resting zoom, restored when a hold is released
	HoldZoom    = 0.3 // zoomed-out view while holding

	// zoomEase is the fraction of the remaining distance to TargetZoom covered
	// each tick.
	zoomEase = 0.1
)

// Camera maps between world space and screen space. It centers the world
// point (X, Y) in the viewport and scales by Zoom.
type Camera struct {
	// X and Y are the world-space position the camera centers on.
	X, Y float64
	// Zoom is the current scale factor (1.0 = no zoom, <1 = zoomed out).
	// Always positive.
	Zoom float64
	// TargetZoom is the value Zoom eases toward each tick.
	TargetZoom float64
	// Viewport is the screen-space rectangle the camera renders into.
	Viewport Rect
}

// newCamera creates a Camera resting at zoom with the given viewport.
func newCamera(viewport Rect, zoom float64) *Camera {
	if zoom <= 0 {
		zoom = DefaultZoom
	}
	return &Camera{
		Zoom:       zoom,
		TargetZoom: zoom,
		Viewport:   viewport,
	}
}

// SetViewport resizes the viewport. The screen center moves with it.
func (c *Camera) SetViewport(width, height float64) {
	c.Viewport.Width = width
	c.Viewport.Height = height
}

// center returns the screen-space center of the viewport.
func (c *Camera) center() (cx, cy float64) {
	return c.Viewport.X + c.Viewport.Width/2, c.Viewport.Y + c.Viewport.Height/2
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	cx, cy := c.center()
	return (sx-cx)/c.Zoom + c.X, (sy-cy)/c.Zoom + c.Y
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	cx, cy := c.center()
	return (wx-c.X)*c.Zoom + cx, (wy-c.Y)*c.Zoom + cy
}

// SetTargetZoom sets the zoom the camera eases toward. Non-positive values
// are ignored so Zoom can never reach zero.
func (c *Camera) SetTargetZoom(z float64) {
	if z <= 0 || math.IsNaN(z) || math.IsInf(z, 0) {
		return
	}
	c.TargetZoom = z
}

// update eases Zoom toward TargetZoom. Called once per tick from Scene.Update.
func (c *Camera) update() {
	c.Zoom += (c.TargetZoom - c.Zoom) * zoomEase
}

// VisibleBounds returns the world-space rectangle covered by the viewport.
func (c *Camera) VisibleBounds() Rect {
	x0, y0 := c.ScreenToWorld(c.Viewport.X, c.Viewport.Y)
	x1, y1 := c.ScreenToWorld(c.Viewport.X+c.Viewport.Width, c.Viewport.Y+c.Viewport.Height)
	return Rect{
		X:      math.Min(x0, x1),
		Y:      math.Min(y0, y1),
		Width:  math.Abs(x1 - x0),
		Height: math.Abs(y1 - y0),
	}
}

// segmentAABB returns the bounding box of a line segment padded by pad on
// every side.
func segmentAABB(x1, y1, x2, y2, pad float64) Rect {
	minX, maxX := math.Min(x1, x2), math.Max(x1, x2)
	minY, maxY := math.Min(y1, y2), math.Max(y1, y2)
	return Rect{X: minX - pad, Y: minY - pad, Width: maxX - minX + 2*pad, Height: maxY - minY + 2*pad}
}
