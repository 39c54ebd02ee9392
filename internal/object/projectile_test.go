package object

import (
	"math"
	"testing"
	"time"

	"github.com/tomz197/moonshot/internal/config"
	"github.com/tomz197/moonshot/internal/physics"
)

func newTestGrid(f *Field) *physics.SpatialGrid {
	g := physics.NewSpatialGrid(config.FieldWidth, config.FieldHeight, config.GridCellSize)
	f.Rebuild(g)
	return g
}

func (s *ProjectileSet) add(x, y, angle float64) {
	s.items = append(s.items, Projectile{X: x, Y: y, Angle: angle, Speed: config.ProjectileSpeed, Radius: s.Radius})
}

func TestSpawnRespectsCooldown(t *testing.T) {
	r := NewRound(time.Hour)
	u := NewUser(testBounds, 250*time.Millisecond)
	s := NewProjectileSet(5)

	steps := []struct {
		now  time.Duration
		want bool
	}{
		{0, true},
		{100 * time.Millisecond, false},
		{250 * time.Millisecond, false},
		{251 * time.Millisecond, true},
		{400 * time.Millisecond, false},
		{502 * time.Millisecond, true},
	}
	for _, st := range steps {
		r.Now = st.now
		if got := s.Spawn(r, u); got != st.want {
			t.Errorf("Spawn at %v = %v, want %v", st.now, got, st.want)
		}
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	if last, fired := u.LastShot(); !fired || last != 502*time.Millisecond {
		t.Errorf("LastShot() = %v, %v, want 502ms, true", last, fired)
	}
}

func TestSpawnFromShipHeading(t *testing.T) {
	r := NewRound(time.Hour)
	u := NewUser(testBounds, time.Second)
	u.X, u.Y, u.Angle = 123, 456, 1.25

	s := NewProjectileSet(3)
	if !s.Spawn(r, u) {
		t.Fatal("Spawn returned false")
	}
	p := s.At(0)
	if p.X != 123 || p.Y != 456 || p.Angle != 1.25 {
		t.Errorf("projectile = %+v, want ship position and heading", p)
	}
	if p.Radius != 3 || p.Speed != config.ProjectileSpeed || p.Color != config.ProjectileColor {
		t.Errorf("projectile = %+v, want radius 3 and configured speed and color", p)
	}
}

func TestSpawnIgnoredAfterOutcome(t *testing.T) {
	r := NewRound(time.Hour)
	r.Conclude(Won)
	s := NewProjectileSet(5)
	if s.Spawn(r, NewUser(testBounds, time.Millisecond)) {
		t.Error("Spawn succeeded after the round ended")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestAdvanceMovesAlongHeading(t *testing.T) {
	f := newTestField([2]float64{100, 100})
	g := newTestGrid(f)
	s := NewProjectileSet(5)
	s.add(400, 500, 0)
	s.add(400, 500, math.Pi/2)
	s.add(400, 500, math.Pi)

	s.Advance(tick(NewRound(time.Hour), 100*time.Millisecond), g, f)

	want := [][2]float64{{400, 450}, {450, 500}, {400, 550}}
	for i, w := range want {
		p := s.At(i)
		if !approx(p.X, w[0]) || !approx(p.Y, w[1]) {
			t.Errorf("projectile %d at (%v, %v), want (%v, %v)", i, p.X, p.Y, w[0], w[1])
		}
	}
}

func TestProjectileHitsSeveralParticles(t *testing.T) {
	f := newTestField(
		[2]float64{400, 300},
		[2]float64{401, 300},
		[2]float64{400, 301},
		[2]float64{100, 100},
	)
	g := newTestGrid(f)
	s := NewProjectileSet(5)
	s.add(400, 308, 0)

	r := NewRound(time.Hour)
	hits := s.Advance(tick(r, 16*time.Millisecond), g, f)

	if hits != 3 {
		t.Errorf("hits = %d, want 3", hits)
	}
	for i := range 3 {
		if !f.Particles[i].WasShot() {
			t.Errorf("particle %d state = %v, want shot", i, f.Particles[i].State)
		}
	}
	if !f.Particles[3].Active() {
		t.Error("distant particle was hit")
	}
	if f.ActiveCount() != 1 {
		t.Errorf("ActiveCount() = %d, want 1", f.ActiveCount())
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want the projectile to survive its hits", s.Len())
	}
	if r.LastHit != 16*time.Millisecond {
		t.Errorf("LastHit = %v, want 16ms", r.LastHit)
	}
	if !r.Running() {
		t.Errorf("Outcome() = %v, want running", r.Outcome())
	}
}

func TestProjectileIgnoresInactiveParticles(t *testing.T) {
	f := newTestField([2]float64{400, 300}, [2]float64{100, 100})
	g := newTestGrid(f)
	f.Particles[0].State = ParticleEjected // Still in the grid until the next rebuild
	f.active--

	s := NewProjectileSet(5)
	s.add(400, 308, 0)
	r := NewRound(time.Hour)
	if hits := s.Advance(tick(r, 16*time.Millisecond), g, f); hits != 0 {
		t.Errorf("hits = %d, want 0", hits)
	}
	if r.LastHit != 0 {
		t.Errorf("LastHit = %v, want 0", r.LastHit)
	}
}

func TestProjectileRemovedOnlyOutsideField(t *testing.T) {
	f := newTestField([2]float64{400, 1}, [2]float64{100, 100})
	g := newTestGrid(f)
	s := NewProjectileSet(5)
	s.add(400, 5, 0)   // Leaves the top edge, hitting the particle on the way
	s.add(200, 9, 0)   // Ends at y = 1, still inside
	s.add(795, 300, 0) // Moves straight up, stays inside
	s.add(798, 300, math.Pi/2)

	r := NewRound(time.Hour)
	hits := s.Advance(tick(r, 16*time.Millisecond), g, f)

	if hits != 1 || !f.Particles[0].WasShot() {
		t.Errorf("hits = %d, particle state = %v, want the exiting projectile to hit", hits, f.Particles[0].State)
	}
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if p := s.At(0); p.X != 200 || !approx(p.Y, 1) {
		t.Errorf("first survivor at (%v, %v), want (200, 1)", p.X, p.Y)
	}
	if p := s.At(1); p.X != 795 {
		t.Errorf("second survivor at (%v, %v), want x = 795", p.X, p.Y)
	}
}

func TestLastHitWinsAndClearsProjectiles(t *testing.T) {
	f := newTestField([2]float64{400, 300})
	g := newTestGrid(f)
	s := NewProjectileSet(5)
	s.add(400, 308, 0)
	s.add(100, 500, 0)
	s.add(700, 500, 0)

	r := NewRound(time.Hour)
	hits := s.Advance(tick(r, 16*time.Millisecond), g, f)

	if hits != 1 {
		t.Errorf("hits = %d, want 1", hits)
	}
	if r.Outcome() != Won {
		t.Errorf("Outcome() = %v, want won", r.Outcome())
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestAdvanceFrozenAfterOutcome(t *testing.T) {
	f := newTestField([2]float64{400, 300})
	g := newTestGrid(f)
	s := NewProjectileSet(5)
	s.add(400, 308, 0)

	r := NewRound(time.Hour)
	r.Conclude(Lost)
	if hits := s.Advance(tick(r, 16*time.Millisecond), g, f); hits != 0 {
		t.Errorf("hits = %d, want 0", hits)
	}
	if p := s.At(0); p.Y != 308 {
		t.Errorf("projectile moved to y = %v", p.Y)
	}
}

func TestClearKeepsCapacity(t *testing.T) {
	s := NewProjectileSet(5)
	for range 8 {
		s.add(1, 1, 0)
	}
	s.Clear()
	if s.Len() != 0 || cap(s.items) < 8 {
		t.Errorf("Len, cap = %d, %d after Clear", s.Len(), cap(s.items))
	}
	n := 0
	for range s.Shapes() {
		n++
	}
	if n != 0 {
		t.Errorf("Shapes yielded %d after Clear", n)
	}
}
