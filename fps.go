package hotloop

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay shows FPS, TPS and entity counts in the top-left corner.
// The text is refreshed every ~0.5 seconds.
type fpsOverlay struct {
	img   *ebiten.Image
	accum float64
	text  string
}

func newFPSOverlay() *fpsOverlay {
	// 220x64 fits four lines of debug text.
	return &fpsOverlay{img: ebiten.NewImage(220, 64), accum: 0.5}
}

// update refreshes the cached text after dt seconds have accumulated.
func (o *fpsOverlay) update(dt float64, s *Scene) {
	o.accum += dt
	if o.accum < 0.5 {
		return
	}
	o.accum = 0
	o.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nroads %d  cars %d\nparticles %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		s.network.Len(), s.traffic.Len(), s.particles.AliveCount())

	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, o.text)
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	screen.DrawImage(o.img, nil)
}
