package hotloop

import (
	"fmt"
	"image/color"
	"math"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when the color is handed to ebiten.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the color of car cores and road centerlines.
var ColorWhite = Color{1, 1, 1, 1}

// WithAlpha returns c with its alpha multiplied by a.
func (c Color) WithAlpha(a float64) Color {
	c.A *= a
	return c
}

// Hex formats the color as #rrggbb, ignoring alpha.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel8(c.R), channel8(c.G), channel8(c.B))
}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: channel8(c.R * a),
		G: channel8(c.G * a),
		B: channel8(c.B * a),
		A: channel8(a),
	}
}

func channel8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// rgb8 builds an opaque Color from 8-bit channels.
func rgb8(r, g, b uint8) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255, 1}
}

// Palette is the fixed neon palette. The initial ring picks colors by index;
// everything created afterward picks uniformly at random.
var Palette = [...]Color{
	rgb8(0xff, 0x00, 0xff), // pink
	rgb8(0x00, 0xff, 0xff), // blue
	rgb8(0x00, 0xff, 0x00), // green
	rgb8(0xff, 0xff, 0x00), // yellow
	rgb8(0xff, 0x66, 0x00), // orange
	rgb8(0x88, 0x00, 0xff), // purple
}

// randomColor draws a palette entry uniformly.
func randomColor(r Rand) Color {
	return Palette[randIndex(r, len(Palette))]
}

// Vec2 is a 2D vector used for positions and velocities.
type Vec2 struct {
	X, Y float64
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Inset grows the rectangle by d on every side (shrinks for negative d).
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, Width: r.Width + 2*d, Height: r.Height + 2*d}
}

// Range is a half-open [Min, Max) interval for random draws.
type Range struct {
	Min, Max float64
}

// Random returns a value in [Min, Max) drawn from r.
func (rg Range) Random(r Rand) float64 {
	if rg.Min == rg.Max {
		return rg.Min
	}
	return rg.Min + r.Float64()*(rg.Max-rg.Min)
}

// Contains reports whether v lies in [Min, Max).
func (rg Range) Contains(v float64) bool {
	return v >= rg.Min && v < rg.Max
}

// Tone identifies a feedback sound.
type Tone uint8

const (
	ToneTap   Tone = iota // road created
	ToneBoost             // cars boosted
)

func (t Tone) String() string {
	switch t {
	case ToneTap:
		return "tap"
	case ToneBoost:
		return "boost"
	default:
		return fmt.Sprintf("Tone(%d)", uint8(t))
	}
}
