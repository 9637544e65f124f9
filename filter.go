package hotloop

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// glowBlurRadius is the blur applied to the glow layer, in screen pixels.
const glowBlurRadius = 16

// BlurFilter applies a Kawase iterative blur using downscale/upscale passes.
// Bilinear filtering during DrawImage does the work, so no shader is needed.
type BlurFilter struct {
	Radius int
	temps  []*ebiten.Image
	imgOp  ebiten.DrawImageOptions
}

// NewBlurFilter creates a blur filter with the given radius (in pixels).
func NewBlurFilter(radius int) *BlurFilter {
	if radius < 0 {
		radius = 0
	}
	return &BlurFilter{Radius: radius}
}

// Passes returns the number of halvings Apply performs: ceil(log2(Radius)),
// at least 1. A zero radius copies src unchanged and returns 0.
func (f *BlurFilter) Passes() int {
	if f.Radius <= 0 {
		return 0
	}
	return max(int(math.Ceil(math.Log2(float64(f.Radius)))), 1)
}

// Apply draws a blurred copy of src over dst.
func (f *BlurFilter) Apply(src, dst *ebiten.Image) {
	op := &f.imgOp
	passes := f.Passes()
	if passes == 0 {
		op.GeoM.Reset()
		op.ColorScale.Reset()
		op.Filter = ebiten.FilterNearest
		dst.DrawImage(src, op)
		return
	}

	for len(f.temps) < passes {
		f.temps = append(f.temps, nil)
	}
	for i := passes; i < len(f.temps); i++ {
		if f.temps[i] != nil {
			f.temps[i].Deallocate()
			f.temps[i] = nil
		}
	}
	f.temps = f.temps[:passes]

	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	current := src
	for i := 0; i < passes; i++ {
		w = max(w/2, 1)
		h = max(h/2, 1)
		if f.temps[i] == nil || f.temps[i].Bounds().Dx() != w || f.temps[i].Bounds().Dy() != h {
			if f.temps[i] != nil {
				f.temps[i].Deallocate()
			}
			f.temps[i] = ebiten.NewImage(w, h)
		} else {
			f.temps[i].Clear()
		}
		f.scaleInto(f.temps[i], current)
		current = f.temps[i]
	}

	for i := passes - 2; i >= 0; i-- {
		f.temps[i].Clear()
		f.scaleInto(f.temps[i], current)
		current = f.temps[i]
	}
	f.scaleInto(dst, current)
}

// scaleInto stretches src over the whole of dst with linear filtering.
func (f *BlurFilter) scaleInto(dst, src *ebiten.Image) {
	op := &f.imgOp
	op.GeoM.Reset()
	op.ColorScale.Reset()
	op.GeoM.Scale(
		float64(dst.Bounds().Dx())/float64(src.Bounds().Dx()),
		float64(dst.Bounds().Dy())/float64(src.Bounds().Dy()),
	)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(src, op)
}

// glowLayer is the offscreen target glow primitives are drawn into. Once per
// frame it is blurred and composited onto the screen, below the solid road,
// car and particle shapes.
type glowLayer struct {
	img  *ebiten.Image
	blur *BlurFilter
}

func newGlowLayer(radius int) *glowLayer {
	return &glowLayer{blur: NewBlurFilter(radius)}
}

// begin returns a cleared canvas the size of dst.
func (g *glowLayer) begin(dst *ebiten.Image) Canvas {
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	if g.img == nil || g.img.Bounds().Dx() != w || g.img.Bounds().Dy() != h {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(w, h)
	} else {
		g.img.Clear()
	}
	return ebitenCanvas{dst: g.img}
}

// composite blurs the layer onto dst.
func (g *glowLayer) composite(dst *ebiten.Image) {
	if g.img == nil {
		return
	}
	g.blur.Apply(g.img, dst)
}
