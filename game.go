package hotloop

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	// Title is the window title.
	Title string
	// Width and Height set the initial window size in device-independent
	// pixels.
	Width, Height int
	// ShowFPS draws an overlay with FPS, TPS and entity counts.
	ShowFPS bool
	// Debug logs per-frame timing and draw counts to stderr.
	Debug bool
	// TPS overrides the ebiten tick rate. Zero uses the scene's TPS.
	TPS int
}

// Game adapts a Scene to ebiten.Game. It polls the real pointer, steps the
// scene and draws it.
type Game struct {
	scene   *Scene
	pointer pointerSource
	fps     *fpsOverlay
}

// NewGame wraps scene for ebiten. showFPS enables the stats overlay.
func NewGame(scene *Scene, showFPS bool) *Game {
	g := &Game{scene: scene}
	if showFPS {
		g.fps = newFPSOverlay()
	}
	return g
}

// Update implements ebiten.Game. Real pointer input is ignored while
// synthetic events are queued so scripted gestures are not interleaved with
// stray mouse state.
func (g *Game) Update() error {
	if !g.scene.InjectPending() {
		g.pointer.poll(g.scene)
	}
	g.scene.Update()
	if g.fps != nil {
		g.fps.update(1/float64(g.scene.cfg.TPS), g.scene)
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
	if g.fps != nil {
		g.fps.draw(screen)
	}
}

// Layout implements ebiten.Game. The scene viewport follows the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scene.SetViewport(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// Run opens a resizable window and runs scene until the window closes.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 800, 600
	}
	if cfg.Title == "" {
		cfg.Title = "hotloop"
	}
	tps := cfg.TPS
	if tps <= 0 {
		tps = scene.cfg.TPS
	}

	scene.SetDebugMode(cfg.Debug)
	scene.SetViewport(float64(cfg.Width), float64(cfg.Height))

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(tps)
	// The renderer fades the previous frame to leave trails.
	ebiten.SetScreenClearedEveryFrame(false)

	if err := ebiten.RunGame(NewGame(scene, cfg.ShowFPS)); err != nil {
		return errors.Wrap(err, "run game")
	}
	return nil
}
