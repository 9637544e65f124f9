// Package hotloop is an endless neon road toy for [Ebitengine].
//
// A ring of glowing road segments sits at the world origin. Tapping grows a
// new segment from the nearest endpoint, cars drive along the segments and
// hop to connected ones at junctions, swiping boosts every car for a second,
// and holding zooms the camera out. Every interaction sparks a burst of
// particles and plays a short tone.
//
// # Quick start
//
// [Run] opens a window and drives the loop:
//
//	scene := hotloop.NewScene(hotloop.DefaultConfig())
//	hotloop.Run(scene, hotloop.RunConfig{
//		Title: "hotloop", Width: 800, Height: 600,
//	})
//
// For full control, implement [ebiten.Game] yourself, feed pointer events to
// [Scene.PressStart], [Scene.PressMove] and [Scene.PressEnd], and call
// [Scene.Update] and [Scene.Draw] directly. The renderer fades the previous
// frame instead of clearing it, so disable ebiten's per-frame clear.
//
// # Headless use
//
// Nothing in the simulation needs a window. Construct the scene with a
// [ManualClock] and a seeded [Rand], advance the clock by one tick per
// [Scene.Update], and drive gestures with [Scene.InjectTap] and
// [Scene.InjectSwipe] or a script loaded by [LoadTestScript]:
//
//	clock := hotloop.NewManualClock(time.Unix(0, 0))
//	scene := hotloop.NewScene(cfg, hotloop.WithClock(clock))
//	scene.InjectTap(400, 300)
//	for range 120 {
//		scene.Update()
//		clock.Advance(time.Second / 60)
//	}
//
// # Coordinates
//
// Roads, cars and particles live in world space. Pointer events arrive in
// screen space and are converted once through the [Camera], which centers the
// world origin in the viewport and scales by its zoom.
//
// [Ebitengine]: https://ebitengine.org
package hotloop
