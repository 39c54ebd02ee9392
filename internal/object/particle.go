package object

import (
	"iter"
	"math"
	"math/rand"

	"github.com/tomz197/moonshot/internal/config"
	"github.com/tomz197/moonshot/internal/physics"
)

// ParticleState is the lifecycle stage of a moon particle.
type ParticleState uint8

const (
	// ParticleActive particles are part of the moon and can be shot.
	ParticleActive ParticleState = iota
	// ParticleShot particles were destroyed by a projectile and stay
	// inert for the rest of the round.
	ParticleShot
	// ParticleEjected particles drifted out of the cluster. They fly back
	// to the center once the field has been quiet long enough.
	ParticleEjected
)

func (s ParticleState) String() string {
	switch s {
	case ParticleActive:
		return "active"
	case ParticleShot:
		return "shot"
	case ParticleEjected:
		return "ejected"
	default:
		return "unknown"
	}
}

// Particle is one destructible piece of the moon.
type Particle struct {
	X, Y   float64 // Position
	VX, VY float64 // Velocity
	Radius float64
	Color  string
	State  ParticleState
}

// Active reports whether the particle is part of the moon.
func (p *Particle) Active() bool {
	return p.State == ParticleActive
}

// WasShot reports whether the particle was destroyed by a projectile.
func (p *Particle) WasShot() bool {
	return p.State == ParticleShot
}

// Shape returns the particle's drawable.
func (p *Particle) Shape() Shape {
	return Shape{Kind: ShapeCircle, X: p.X, Y: p.Y, Size: p.Radius, Color: p.Color}
}

// Field is the moon: a fixed pool of particles clustered around the
// center of the play-field. Particles are addressed by index so the
// spatial grid never holds pointers into a slice that could move.
type Field struct {
	Particles     []Particle
	CenterX       float64
	CenterY       float64
	ClusterRadius float64

	active int // Active particles, maintained incrementally
}

// NewField scatters count particles uniformly in angle and radius over a
// disc of config.ClusterRadius around the center of bounds.
func NewField(count int, bounds Bounds, rng *rand.Rand) *Field {
	cx, cy := bounds.Center()
	f := &Field{
		Particles:     make([]Particle, count),
		CenterX:       cx,
		CenterY:       cy,
		ClusterRadius: config.ClusterRadius,
		active:        count,
	}

	for i := range f.Particles {
		angle := rng.Float64() * 2 * math.Pi
		radius := rng.Float64() * f.ClusterRadius
		f.Particles[i] = Particle{
			X:      cx + math.Cos(angle)*radius,
			Y:      cy + math.Sin(angle)*radius,
			Radius: config.ParticleRadius,
			Color:  config.ParticleColor,
			State:  ParticleActive,
		}
	}
	return f
}

// Len returns the size of the particle pool.
func (f *Field) Len() int {
	return len(f.Particles)
}

// ActiveCount returns the number of particles still part of the moon.
func (f *Field) ActiveCount() int {
	return f.active
}

// Rebuild clears the grid and indexes every active particle.
func (f *Field) Rebuild(g *physics.SpatialGrid) {
	g.Clear()
	for i := range f.Particles {
		p := &f.Particles[i]
		if p.Active() {
			g.Insert(p.X, p.Y, i)
		}
	}
}

// Shoot destroys particle i for good and restarts the regeneration clock.
// It reports false if the particle was not active.
func (f *Field) Shoot(i int, r *Round) bool {
	p := &f.Particles[i]
	if !p.Active() {
		return false
	}
	p.State = ParticleShot
	p.VX, p.VY = 0, 0
	f.active--
	r.RecordHit()
	return true
}

// Update advances every particle by one tick. A round that concludes
// midway (the last particle ejected) stops the update immediately.
func (f *Field) Update(ctx UpdateContext) {
	dt := ctx.Delta.Seconds()
	regenerate := ctx.Round.RegenerationDue()

	for i := range f.Particles {
		if !ctx.Round.Running() {
			return
		}
		p := &f.Particles[i]
		switch p.State {
		case ParticleActive:
			f.updateActive(p, dt, ctx.Round)
		case ParticleEjected:
			if regenerate {
				f.drift(p, dt)
			}
		}
	}
}

// updateActive integrates motion, applies friction and ejects particles
// that came to rest outside the cluster.
func (f *Field) updateActive(p *Particle, dt float64, r *Round) {
	p.X += p.VX * dt
	p.Y += p.VY * dt

	speedSq := p.VX*p.VX + p.VY*p.VY
	if speedSq > 0 {
		speed := math.Sqrt(speedSq)
		p.VX = applyFriction(p.VX, p.VX/speed*config.ParticleFriction*dt)
		p.VY = applyFriction(p.VY, p.VY/speed*config.ParticleFriction*dt)
	}

	if speedSq >= config.EjectSpeedSq {
		return
	}
	if physics.DistanceSquared(p.X, p.Y, f.CenterX, f.CenterY) > f.ClusterRadius*f.ClusterRadius {
		p.State = ParticleEjected
		f.active--
		if f.active == 0 {
			r.Conclude(Won)
		}
	}
}

// applyFriction subtracts step from v, stopping at zero instead of
// reversing direction.
func applyFriction(v, step float64) float64 {
	if math.Abs(v) > math.Abs(step) {
		return v - step
	}
	return 0
}

// drift moves an ejected particle toward the center and reactivates it
// once it is close enough.
func (f *Field) drift(p *Particle, dt float64) {
	dx := f.CenterX - p.X
	dy := f.CenterY - p.Y
	distSq := dx*dx + dy*dy
	if distSq <= config.RegeneratedDistSq {
		p.State = ParticleActive
		p.VX, p.VY = 0, 0
		f.active++
		return
	}

	dist := math.Sqrt(distSq)
	step := min(config.RegenerationRate*dt, dist)
	p.X += dx / dist * step
	p.Y += dy / dist * step
}

// Shapes yields a circle for every active particle.
func (f *Field) Shapes() iter.Seq[Shape] {
	return func(yield func(Shape) bool) {
		for i := range f.Particles {
			p := &f.Particles[i]
			if p.Active() && !yield(p.Shape()) {
				return
			}
		}
	}
}
