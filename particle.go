package hotloop

import "math"

const (
	// DefaultMaxParticles is the pool size. New particles are silently dropped
	// when full.
	DefaultMaxParticles = 4096

	// particleDamping scales each velocity axis every tick.
	particleDamping = 0.98
)

var (
	particleSpeedRange = Range{2, 7}
	particleSizeRange  = Range{3, 8}
	particleDecayRange = Range{0.015, 0.030}
)

// Particle is one spark of visual feedback in world space.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Size   float64
	Color  Color
	// Life starts at 1 and falls by Decay each tick. The particle is removed
	// once Life <= 0.
	Life  float64
	Decay float64
}

// ParticleSystem owns the live particles. Survivors keep their relative order
// across updates.
type ParticleSystem struct {
	particles []Particle
	max       int
	rng       Rand
}

// newParticleSystem creates a ParticleSystem holding at most max particles.
func newParticleSystem(max int, rng Rand) *ParticleSystem {
	if max <= 0 {
		max = DefaultMaxParticles
	}
	return &ParticleSystem{
		particles: make([]Particle, 0, 256),
		max:       max,
		rng:       rng,
	}
}

// AliveCount returns the number of live particles.
func (ps *ParticleSystem) AliveCount() int {
	return len(ps.particles)
}

// Particles returns the live particles. The returned slice MUST NOT be
// mutated.
func (ps *ParticleSystem) Particles() []Particle {
	return ps.particles
}

// Reset kills all particles.
func (ps *ParticleSystem) Reset() {
	ps.particles = ps.particles[:0]
}

// Burst spawns count particles at the world point (wx, wy), each flying off in
// a random direction.
func (ps *ParticleSystem) Burst(wx, wy float64, count int) {
	for i := 0; i < count; i++ {
		angle := ps.rng.Float64() * math.Pi * 2
		speed := particleSpeedRange.Random(ps.rng)
		size := particleSizeRange.Random(ps.rng)
		c := randomColor(ps.rng)
		decay := particleDecayRange.Random(ps.rng)
		if len(ps.particles) >= ps.max {
			continue
		}
		ps.particles = append(ps.particles, Particle{
			X:     wx,
			Y:     wy,
			VX:    math.Cos(angle) * speed,
			VY:    math.Sin(angle) * speed,
			Size:  size,
			Color: c,
			Life:  1,
			Decay: decay,
		})
	}
}

// update moves, damps and ages every particle, dropping the dead ones in
// place.
func (ps *ParticleSystem) update() {
	alive := ps.particles[:0]
	for _, p := range ps.particles {
		p.X += p.VX
		p.Y += p.VY
		p.Life -= p.Decay
		p.VX *= particleDamping
		p.VY *= particleDamping
		if p.Life > 0 {
			alive = append(alive, p)
		}
	}
	for i := len(alive); i < len(ps.particles); i++ {
		ps.particles[i] = Particle{}
	}
	ps.particles = alive
}
