package hotloop

import (
	"io"
	"time"
)

// Config holds the tunables of a Scene. The zero value is not useful; start
// from DefaultConfig.
type Config struct {
	// Seed feeds the default random source.
	Seed uint64
	// TPS is the simulation rate, used to convert ticks to seconds for
	// animations.
	TPS int

	RingSegments int
	RingRadius   float64

	InitialCars    int
	MaxCars        int
	CarSpawnChance float64
	// TapCarChance is the probability that a tapped road gets a car.
	TapCarChance float64

	MaxParticles int

	DefaultZoom float64
	HoldZoom    float64

	HoldDelay      time.Duration
	TapMaxDuration time.Duration
	SwipeThreshold float64
	// BoostDuration is how long after a boost the speeds are halved again.
	BoostDuration time.Duration
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		Seed:           1,
		TPS:            60,
		RingSegments:   DefaultRingSegments,
		RingRadius:     DefaultRingRadius,
		InitialCars:    DefaultInitialCars,
		MaxCars:        DefaultMaxCars,
		CarSpawnChance: DefaultCarSpawnChance,
		TapCarChance:   0.3,
		MaxParticles:   DefaultMaxParticles,
		DefaultZoom:    DefaultZoom,
		HoldZoom:       HoldZoom,
		HoldDelay:      DefaultHoldDelay,
		TapMaxDuration: DefaultTapMaxDuration,
		SwipeThreshold: DefaultSwipeThreshold,
		BoostDuration:  time.Second,
	}
}

// Particle counts for command feedback.
const (
	tapBurstCount   = 15
	boostBurstCount = 10
	boostFactor     = 2.0
)

// SceneOption customizes a Scene at construction.
type SceneOption func(*Scene)

// WithRand replaces the seeded random source.
func WithRand(r Rand) SceneOption {
	return func(s *Scene) { s.rng = r }
}

// WithClock replaces the wall clock used for deferred tasks and gesture
// timing.
func WithClock(c Clock) SceneOption {
	return func(s *Scene) { s.clock = c }
}

// WithAudio sets the sink for feedback tones.
func WithAudio(a AudioSink) SceneOption {
	return func(s *Scene) { s.audio = a }
}

// WithViewport sets the initial viewport size.
func WithViewport(width, height float64) SceneOption {
	return func(s *Scene) { s.viewW, s.viewH = width, height }
}

// Scene is the single owner of session state: roads, cars, particles, the
// camera, the gesture interpreter and pending deferred tasks. Everything is
// touched only from the goroutine that calls Update and the input methods.
type Scene struct {
	cfg   Config
	rng   Rand
	clock Clock
	audio AudioSink
	sched *Scheduler

	camera    *Camera
	network   *Network
	traffic   *Traffic
	particles *ParticleSystem
	input     *GestureInterpreter

	viewW, viewH float64
	ticks        uint64
	debug        bool

	injectQueue     []syntheticPointerEvent
	testRunner      *TestRunner
	screenshotQueue []string
	glow            *glowLayer
	drawFrames      uint64
	debugOut        io.Writer // nil means stderr
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string
}

// NewScene builds the starting ring road and the initial cars.
func NewScene(cfg Config, opts ...SceneOption) *Scene {
	s := &Scene{
		cfg:           cfg,
		viewW:         800,
		viewH:         600,
		ScreenshotDir: "screenshots",
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = NewRand(cfg.Seed)
	}
	if s.clock == nil {
		s.clock = SystemClock
	}
	if s.audio == nil {
		s.audio = NopAudio{}
	}
	if s.cfg.TPS <= 0 {
		s.cfg.TPS = 60
	}

	s.sched = NewScheduler(s.clock)
	s.camera = newCamera(Rect{Width: s.viewW, Height: s.viewH}, cfg.DefaultZoom)
	s.network = NewNetwork(s.rng)
	s.traffic = newTraffic(s.network, s.rng)
	s.traffic.MaxCars = cfg.MaxCars
	s.traffic.SpawnChance = cfg.CarSpawnChance
	s.particles = newParticleSystem(cfg.MaxParticles, s.rng)

	s.input = NewGestureInterpreter(s, s.sched)
	if cfg.HoldDelay > 0 {
		s.input.HoldDelay = cfg.HoldDelay
	}
	if cfg.TapMaxDuration > 0 {
		s.input.TapMaxDuration = cfg.TapMaxDuration
	}
	if cfg.SwipeThreshold > 0 {
		s.input.SwipeThreshold = cfg.SwipeThreshold
	}

	s.network.Init(cfg.RingSegments, cfg.RingRadius)
	for i := 0; i < cfg.InitialCars; i++ {
		s.traffic.Spawn()
	}
	return s
}

// Config returns the scene's configuration.
func (s *Scene) Config() Config { return s.cfg }

// Camera returns the scene camera.
func (s *Scene) Camera() *Camera { return s.camera }

// Network returns the road network.
func (s *Scene) Network() *Network { return s.network }

// Traffic returns the car simulation.
func (s *Scene) Traffic() *Traffic { return s.traffic }

// Particles returns the particle system.
func (s *Scene) Particles() *ParticleSystem { return s.particles }

// Input returns the gesture interpreter.
func (s *Scene) Input() *GestureInterpreter { return s.input }

// Scheduler returns the deferred task scheduler.
func (s *Scene) Scheduler() *Scheduler { return s.sched }

// Clock returns the scene clock.
func (s *Scene) Clock() Clock { return s.clock }

// Ticks returns the number of completed updates.
func (s *Scene) Ticks() uint64 { return s.ticks }

// SetViewport updates the screen size. The camera keeps the world point it
// centers on.
func (s *Scene) SetViewport(width, height float64) {
	s.viewW, s.viewH = width, height
	s.camera.SetViewport(width, height)
}

// SetDebugMode enables per-frame timing stats on stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// Update advances the simulation by one tick: due deferred tasks, scripted
// and injected input, camera easing, road animation, cars, then particles.
func (s *Scene) Update() {
	s.sched.Run()
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInjectedInput()

	dt := float32(1.0 / float64(s.cfg.TPS))
	s.camera.update()
	s.network.update(dt)
	s.traffic.update()
	s.particles.update()
	s.ticks++
}

// --- Pointer events ---

// PressStart forwards a press at screen point (x, y) to the gesture
// interpreter, stamped with the scene clock.
func (s *Scene) PressStart(x, y float64) {
	s.input.PressStart(x, y, s.clock.Now())
}

// PressMove forwards pointer movement to the gesture interpreter.
func (s *Scene) PressMove(x, y float64) {
	s.input.PressMove(x, y)
}

// PressEnd forwards a release to the gesture interpreter.
func (s *Scene) PressEnd() {
	s.input.PressEnd(s.clock.Now())
}

// --- Commands ---

// CreateRoadAt grows a road from the endpoint nearest to the screen point
// (sx, sy). The new road may get a car; the tap point sparks and a tone
// plays. It returns the new road's index.
func (s *Scene) CreateRoadAt(sx, sy float64) int {
	wx, wy := s.camera.ScreenToWorld(sx, sy)
	idx := s.network.AddSegmentNear(wx, wy)
	if s.rng.Float64() < s.cfg.TapCarChance {
		s.traffic.SpawnOn(idx)
	}
	s.Burst(sx, sy, tapBurstCount)
	s.audio.PlayTone(ToneTap)
	return idx
}

// Boost doubles every car's speed and sparks at each car. After
// BoostDuration every car's speed at that moment is halved. Boosts are not
// coalesced: each one schedules its own halving, and cars spawned in between
// are halved too.
func (s *Scene) Boost() {
	s.traffic.scaleSpeeds(boostFactor)
	for _, c := range s.traffic.Cars() {
		wx, wy := s.traffic.PositionOf(c)
		sx, sy := s.camera.WorldToScreen(wx, wy)
		s.Burst(sx, sy, boostBurstCount)
	}
	s.audio.PlayTone(ToneBoost)
	s.sched.After(s.cfg.BoostDuration, func() {
		s.traffic.scaleSpeeds(1 / boostFactor)
	})
}

// Burst converts the screen point (sx, sy) to world space once and spawns
// count particles there.
func (s *Scene) Burst(sx, sy float64, count int) {
	wx, wy := s.camera.ScreenToWorld(sx, sy)
	s.particles.Burst(wx, wy, count)
}

// --- GestureTarget ---

// HoldStart zooms out and sparks at the hold point.
func (s *Scene) HoldStart(sx, sy float64) {
	s.camera.SetTargetZoom(s.cfg.HoldZoom)
	s.Burst(sx, sy, holdBurstCount)
}

// HoldEnd zooms back in.
func (s *Scene) HoldEnd() {
	s.camera.SetTargetZoom(s.cfg.DefaultZoom)
}

// Swipe boosts every car and sparks at the release point.
func (s *Scene) Swipe(sx, sy float64) {
	s.Boost()
	s.Burst(sx, sy, swipeBurstCount)
}

// Tap creates a road near the tap point.
func (s *Scene) Tap(sx, sy float64) {
	s.CreateRoadAt(sx, sy)
}
