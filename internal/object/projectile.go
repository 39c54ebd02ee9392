package object

import (
	"iter"
	"math"

	"github.com/tomz197/moonshot/internal/config"
	"github.com/tomz197/moonshot/internal/physics"
)

// Projectile is a bullet fired by the player. It flies in a straight line
// until it leaves the play-field.
type Projectile struct {
	X, Y   float64 // Position
	Angle  float64 // Heading, 0 = up
	Speed  float64 // Units per second
	Radius float64
	Color  string
}

// Shape returns the projectile's drawable.
func (p *Projectile) Shape() Shape {
	return Shape{Kind: ShapeCircle, X: p.X, Y: p.Y, Size: p.Radius, Angle: p.Angle, Color: p.Color}
}

// move advances the projectile along its heading.
func (p *Projectile) move(dt float64) {
	sin, cos := math.Sincos(p.Angle)
	p.X += sin * p.Speed * dt
	p.Y -= cos * p.Speed * dt
}

// ProjectileSet owns every projectile in flight.
type ProjectileSet struct {
	Radius float64 // Collision radius of new projectiles
	items  []Projectile
}

// NewProjectileSet creates an empty set whose projectiles have the given radius.
func NewProjectileSet(radius float64) *ProjectileSet {
	return &ProjectileSet{Radius: radius}
}

// Len returns the number of projectiles in flight.
func (s *ProjectileSet) Len() int {
	return len(s.items)
}

// At returns the i-th projectile.
func (s *ProjectileSet) At(i int) Projectile {
	return s.items[i]
}

// Clear removes every projectile, keeping the backing array.
func (s *ProjectileSet) Clear() {
	s.items = s.items[:0]
}

// Spawn fires a projectile from the user's position along its heading if
// the round is running and the user's cooldown has elapsed.
func (s *ProjectileSet) Spawn(r *Round, u *User) bool {
	if !r.Running() || !u.CanFire(r.Now) {
		return false
	}
	u.markFired(r.Now)
	s.items = append(s.items, Projectile{
		X:      u.X,
		Y:      u.Y,
		Angle:  u.Angle,
		Speed:  config.ProjectileSpeed,
		Radius: s.Radius,
		Color:  config.ProjectileColor,
	})
	return true
}

// Advance moves every projectile and destroys each active particle it
// overlaps. A projectile may destroy several particles in one tick and
// keeps flying after a hit; it is dropped only once it leaves the
// play-field. If a hit destroys the last particle the round is won, the
// set is cleared and Advance returns at once. It returns the number of
// particles destroyed.
func (s *ProjectileSet) Advance(ctx UpdateContext, grid *physics.SpatialGrid, field *Field) int {
	if !ctx.Round.Running() {
		return 0
	}

	dt := ctx.Delta.Seconds()
	hits := 0
	won := false

	kept := s.items[:0] // reuse backing array
	for i := range s.items {
		p := s.items[i]
		p.move(dt)

		grid.QueryAround(p.X, p.Y, func(idx int) bool {
			target := &field.Particles[idx]
			if !target.Active() {
				return false
			}
			if !physics.CirclesOverlap(p.X, p.Y, p.Radius, target.X, target.Y, target.Radius) {
				return false
			}
			field.Shoot(idx, ctx.Round)
			hits++
			if field.ActiveCount() == 0 {
				won = ctx.Round.Conclude(Won)
				return true
			}
			return false
		})

		if won {
			s.Clear()
			return hits
		}
		if ctx.Bounds.Contains(p.X, p.Y) {
			kept = append(kept, p)
		}
	}
	s.items = kept
	return hits
}

// Shapes yields a circle for every projectile.
func (s *ProjectileSet) Shapes() iter.Seq[Shape] {
	return func(yield func(Shape) bool) {
		for i := range s.items {
			if !yield(s.items[i].Shape()) {
				return
			}
		}
	}
}
